package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nearby-spots-service/internal/domain"
)

// SQLite backed result cache keyed by (destination, radius). Destination
// keys are expected to be normalized (lowercased, trimmed) by the caller.
type SqliteResultCache struct {
	DB *sql.DB
}

func NewSqliteResultCache(db *sql.DB) *SqliteResultCache {
	return &SqliteResultCache{DB: db}
}

// Get returns the newest cached entry for the key, or nil when none exists.
// Stale entries are returned as-is; the caller judges expiry.
func (s *SqliteResultCache) Get(
	ctx context.Context,
	destination string,
	radiusKm int,
) (*domain.CacheEntry, error) {
	if s.DB == nil {
		return nil, errors.New("result cache: db is nil")
	}

	q := `
	SELECT destination, radius_km, lat, lon, result_data, created_at
	FROM nearby_cache
	WHERE destination = ? AND radius_km = ?
	ORDER BY id DESC
	LIMIT 1;
	`

	var (
		entry domain.CacheEntry
		data  string
	)
	row := s.DB.QueryRowContext(ctx, q, destination, radiusKm)
	err := row.Scan(
		&entry.Destination,
		&entry.RadiusKm,
		&entry.Lat,
		&entry.Lon,
		&data,
		&entry.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get result cache: query nearby_cache table: %w", err)
	}
	entry.ResultData = []byte(data)

	return &entry, nil
}

// Put inserts a new entry. The cache is append-only: prior rows for the same
// key are left in place and expire via TTL on read.
func (s *SqliteResultCache) Put(ctx context.Context, entry domain.CacheEntry) error {
	if s.DB == nil {
		return errors.New("result cache: db is nil")
	}

	q := `
	INSERT INTO nearby_cache (destination, radius_km, lat, lon, result_data, created_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`

	_, err := s.DB.ExecContext(
		ctx, q,
		entry.Destination,
		entry.RadiusKm,
		entry.Lat,
		entry.Lon,
		string(entry.ResultData),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert result cache key=%q/%d: %w", entry.Destination, entry.RadiusKm, err)
	}

	return nil
}
