package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	_ "github.com/jackc/pgx/v5/stdlib"

	"nearby-spots-service/internal/adapters/cache"
	"nearby-spots-service/internal/adapters/geocode"
	"nearby-spots-service/internal/adapters/poi"
	"nearby-spots-service/internal/adapters/repositories"
	"nearby-spots-service/internal/api"
	pgdb "nearby-spots-service/internal/platform/db"
	"nearby-spots-service/internal/ports"
	"nearby-spots-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Nominatim, Overpass)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "3001")
	// Nominatim's usage policy requires a distinct, contactable identifier.
	userAgent := getEnv("NOMINATIM_USER_AGENT", "Wanderlust/1.0 (contact@example.com)")

	db, resultCache, spotRepo, err := openStores()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	svc := services.NewNearbyService(
		geocode.NewNominatimClient(userAgent),
		poi.NewOverpassClient(),
		resultCache,
		spotRepo,
	)
	router := api.NewRouter(svc, spotRepo)

	// Write timeout leaves room for cold-cache requests (two upstream calls).
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Printf("Server listening addr=:%s", port)
	log.Fatal(srv.ListenAndServe())
}

// openStores selects the storage engine: Postgres when DATABASE_URL is set,
// a local SQLite file otherwise. Both create their schema idempotently.
func openStores() (*sql.DB, ports.ResultCache, ports.SpotRepository, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		db, err := pgdb.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitPostgresSchema(db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, cache.NewSQLResultCache(db), repositories.NewSQLSpotRepository(db), nil
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	db, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repositories.InitSchema(db); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return db, cache.NewSqliteResultCache(db), repositories.NewSqliteSpotRepository(db), nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
