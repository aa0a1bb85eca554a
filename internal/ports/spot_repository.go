package ports

import (
	"context"
	"nearby-spots-service/internal/domain"
)

// Port: a boundary for the durable custom spot store.
type SpotRepository interface {
	// Create inserts a new spot and returns its store-assigned id.
	Create(ctx context.Context, spot domain.CustomSpot) (int64, error)
	// ListAll returns every stored spot in insertion order.
	ListAll(ctx context.Context) ([]domain.CustomSpot, error)
	// SetFeatured toggles the featured flag. Fails with domain.ErrNotFound
	// when no row has the given id.
	SetFeatured(ctx context.Context, id int64, featured bool) error
}
