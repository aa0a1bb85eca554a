package ports

import (
	"context"
	"nearby-spots-service/internal/domain"
)

// Contract for resolving a free-text destination to coordinates.
type Geocoder interface {
	// Resolve returns the best match for the destination text. A successful
	// lookup with zero matches reports found=false and no error; upstream
	// failures surface as *domain.UpstreamError.
	Resolve(ctx context.Context, destination string) (coord domain.Coordinates, found bool, err error)
}
