package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the SQLite tables idempotently.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createCacheQuery := `
	CREATE TABLE IF NOT EXISTS nearby_cache (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		destination TEXT NOT NULL,
		radius_km INTEGER NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		result_data TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	`

	createSpotsQuery := `
	CREATE TABLE IF NOT EXISTS custom_spots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'custom',
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		owner TEXT NOT NULL,
		featured INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_nearby_cache_key
	ON nearby_cache(destination, radius_km);
	`

	return execAll(db, createCacheQuery, createSpotsQuery, createIndexQuery)
}

// InitPostgresSchema creates the Postgres tables idempotently.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createCacheQuery := `
	CREATE TABLE IF NOT EXISTS nearby_cache (
		id BIGSERIAL PRIMARY KEY,
		destination TEXT NOT NULL,
		radius_km INTEGER NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		result_data TEXT NOT NULL,
		created_at BIGINT NOT NULL
	);
	`

	createSpotsQuery := `
	CREATE TABLE IF NOT EXISTS custom_spots (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'custom',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		owner TEXT NOT NULL,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_nearby_cache_key
	ON nearby_cache(destination, radius_km);
	`

	return execAll(db, createCacheQuery, createSpotsQuery, createIndexQuery)
}

func execAll(db *sql.DB, statements ...string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
