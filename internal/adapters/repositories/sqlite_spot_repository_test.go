package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"nearby-spots-service/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSpotRepositoryCreateAndList(t *testing.T) {
	repo := NewSqliteSpotRepository(newTestDB(t))
	ctx := context.Background()

	id1, err := repo.Create(ctx, domain.CustomSpot{
		Name: "Miradouro", Category: "viewpoint",
		Lat: 38.7131, Lon: -9.1334,
		Description: "river view", Owner: "alex", CreatedAt: 1700000000000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	id2, err := repo.Create(ctx, domain.CustomSpot{
		Name: "Pastelaria", Category: "custom",
		Lat: 38.7101, Lon: -9.1402, Owner: "admin", CreatedAt: 1700000001000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if id1 == id2 {
		t.Fatalf("ids not unique: %d", id1)
	}

	spots, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(spots) != 2 {
		t.Fatalf("got %d spots, want 2", len(spots))
	}

	// Insertion order.
	if spots[0].ID != id1 || spots[1].ID != id2 {
		t.Fatalf("order = %d, %d, want %d, %d", spots[0].ID, spots[1].ID, id1, id2)
	}
	if spots[0].Name != "Miradouro" || spots[0].Owner != "alex" {
		t.Fatalf("row mismatch: %+v", spots[0])
	}
	if spots[0].Featured {
		t.Fatal("new spots must not be featured")
	}
}

func TestSpotRepositorySetFeatured(t *testing.T) {
	repo := NewSqliteSpotRepository(newTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.CustomSpot{
		Name: "Castelo", Category: "custom", Lat: 1, Lon: 2, Owner: "admin",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.SetFeatured(ctx, id, true); err != nil {
		t.Fatalf("set featured: %v", err)
	}

	spots, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !spots[0].Featured {
		t.Fatal("featured flag not persisted")
	}

	if err := repo.SetFeatured(ctx, id, false); err != nil {
		t.Fatalf("unset featured: %v", err)
	}

	spots, err = repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if spots[0].Featured {
		t.Fatal("featured flag not cleared")
	}
}

func TestSpotRepositorySetFeaturedUnknownID(t *testing.T) {
	repo := NewSqliteSpotRepository(newTestDB(t))

	err := repo.SetFeatured(context.Background(), 999, true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
