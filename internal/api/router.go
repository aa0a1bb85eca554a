package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"nearby-spots-service/internal/api/handlers"
	"nearby-spots-service/internal/ports"
	"nearby-spots-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.NearbyService, spots ports.SpotRepository) http.Handler {
	mux := http.NewServeMux()

	nearbyHandler := &handlers.NearbyHandler{Service: svc}
	adminHandler := &handlers.AdminHandler{Spots: spots}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/nearby-spots", nearbyHandler.Get)
	mux.HandleFunc("/api/nearby-spots/custom", adminHandler.CreateSpot)
	mux.HandleFunc("/api/nearby-spots/feature", adminHandler.FeatureSpot)

	var h http.Handler = mux
	h = metricsMiddleware(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)

	// The browser-resident trip planner may be served from another origin.
	return cors.AllowAll().Handler(h)
}
