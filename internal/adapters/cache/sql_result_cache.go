package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nearby-spots-service/internal/domain"
	"nearby-spots-service/internal/platform/obs"
)

// SQLResultCache is the Postgres variant of the result cache, used when the
// service runs against DATABASE_URL.
type SQLResultCache struct {
	DB *sql.DB
}

func NewSQLResultCache(db *sql.DB) *SQLResultCache {
	return &SQLResultCache{DB: db}
}

// Get returns the newest cached entry for the key, or nil when none exists.
func (s *SQLResultCache) Get(
	ctx context.Context,
	destination string,
	radiusKm int,
) (_ *domain.CacheEntry, err error) {
	defer obs.Time(ctx, "result.cache.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("result cache: db is nil")
	}

	q := `
	SELECT destination, radius_km, lat, lon, result_data, created_at
	FROM nearby_cache
	WHERE destination = $1 AND radius_km = $2
	ORDER BY id DESC
	LIMIT 1;
	`

	var (
		entry domain.CacheEntry
		data  string
	)
	row := s.DB.QueryRowContext(ctx, q, destination, radiusKm)
	scanErr := row.Scan(
		&entry.Destination,
		&entry.RadiusKm,
		&entry.Lat,
		&entry.Lon,
		&data,
		&entry.CreatedAt,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return nil, nil
	}
	if scanErr != nil {
		return nil, fmt.Errorf("get result cache: query nearby_cache table: %w", scanErr)
	}
	entry.ResultData = []byte(data)

	return &entry, nil
}

// Put inserts a new entry; the cache is append-only.
func (s *SQLResultCache) Put(ctx context.Context, entry domain.CacheEntry) (err error) {
	defer obs.Time(ctx, "result.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("result cache: db is nil")
	}

	q := `
	INSERT INTO nearby_cache (destination, radius_km, lat, lon, result_data, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`

	_, err = s.DB.ExecContext(
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
