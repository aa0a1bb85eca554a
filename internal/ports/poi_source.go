package ports

import (
	"context"
	"nearby-spots-service/internal/domain"
)

// Contract for querying an external POI database for attractions near a
// coordinate.
type POISource interface {
	// FindNearby returns candidate spots within radiusMeters of origin.
	// Candidates carry resolved coordinates, name, category and raw tags;
	// distance computation and ordering are left to the caller.
	FindNearby(ctx context.Context, origin domain.Coordinates, radiusMeters int) ([]domain.Spot, error)
}
