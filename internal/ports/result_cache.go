package ports

import (
	"context"
	"nearby-spots-service/internal/domain"
)

// Port: a boundary for the durable, time-boxed result cache keyed by
// (destination, radius). The store is append-only; expiry is judged by the
// caller against CacheEntry.CreatedAt.
type ResultCache interface {
	// Get returns the newest entry for the key, or nil when none exists.
	Get(ctx context.Context, destination string, radiusKm int) (*domain.CacheEntry, error)
	// Put inserts a new entry. Existing rows for the same key are left in
	// place.
	Put(ctx context.Context, entry domain.CacheEntry) error
}
