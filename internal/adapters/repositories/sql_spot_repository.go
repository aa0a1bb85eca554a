package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nearby-spots-service/internal/domain"
	"nearby-spots-service/internal/platform/obs"
)

// SQLSpotRepository is the Postgres variant of the custom spot store.
type SQLSpotRepository struct{ DB *sql.DB }

func NewSQLSpotRepository(db *sql.DB) *SQLSpotRepository {
	return &SQLSpotRepository{DB: db}
}

// Create inserts a new custom spot and returns its store-assigned id.
func (s *SQLSpotRepository) Create(ctx context.Context, spot domain.CustomSpot) (_ int64, err error) {
	defer obs.Time(ctx, "spots.Create")(&err)

	if s.DB == nil {
		return 0, errors.New("sql spot repository: DB is nil")
	}

	q := `
	INSERT INTO custom_spots (name, category, lat, lon, description, owner, featured, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id;
	`

	var id int64
	err = s.DB.QueryRowContext(
		ctx, q,
		spot.Name,
		spot.Category,
		spot.Lat,
		spot.Lon,
		spot.Description,
		spot.Owner,
		spot.Featured,
		spot.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create custom spot %q: %w", spot.Name, err)
	}

	return id, nil
}

// ListAll returns every stored custom spot in insertion order.
func (s *SQLSpotRepository) ListAll(ctx context.Context) (_ []domain.CustomSpot, err error) {
	defer obs.Time(ctx, "spots.ListAll")(&err)

	if s.DB == nil {
		return nil, errors.New("sql spot repository: DB is nil")
	}

	q := `
	SELECT id, name, category, lat, lon, description, owner, featured, created_at
	FROM custom_spots
	ORDER BY id;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list custom spots: query custom_spots table: %w", err)
	}
	defer rows.Close()

	spots := make([]domain.CustomSpot, 0, 16)
	for rows.Next() {
		var spot domain.CustomSpot
		err := rows.Scan(
			&spot.ID,
			&spot.Name,
			&spot.Category,
			&spot.Lat,
			&spot.Lon,
			&spot.Description,
			&spot.Owner,
			&spot.Featured,
			&spot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list custom spots: scan row: %w", err)
		}
		spots = append(spots, spot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list custom spots: row iteration: %w", err)
	}

	return spots, nil
}

// SetFeatured toggles the featured flag on one spot.
func (s *SQLSpotRepository) SetFeatured(ctx context.Context, id int64, featured bool) (err error) {
	defer obs.Time(ctx, "spots.SetFeatured")(&err)

	if s.DB == nil {
		return errors.New("sql spot repository: DB is nil")
	}

	q := `UPDATE custom_spots SET featured = $1 WHERE id = $2;`

	res, err := s.DB.ExecContext(ctx, q, featured, id)
	if err != nil {
		return fmt.Errorf("set featured id=%d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set featured id=%d: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("set featured id=%d: %w", id, domain.ErrNotFound)
	}

	return nil
}
