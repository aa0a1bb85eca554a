package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"nearby-spots-service/internal/api/dto"
	"nearby-spots-service/internal/domain"
	"nearby-spots-service/internal/services"
)

const defaultRadiusKm = 5

// NearbyFinder is the slice of the aggregator the read handler needs.
type NearbyFinder interface {
	NearbySpots(ctx context.Context, destination string, radiusKm int) (services.NearbyResult, error)
}

// NearbyHandler exposes the public read endpoint.
type NearbyHandler struct {
	Service NearbyFinder
}

func (h *NearbyHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	destination := strings.TrimSpace(r.URL.Query().Get("destination"))
	if destination == "" {
		writeError(w, r, http.StatusBadRequest, "destination is required")
		return
	}

	radiusKm := defaultRadiusKm
	if raw := r.URL.Query().Get("radius"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "radius must be an integer")
			return
		}
		radiusKm = parsed
	}

	result, err := h.Service.NearbySpots(r.Context(), destination, radiusKm)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NearbyResponse{
		Cached:  result.Cached,
		Results: result.Results,
	})
}

// writeServiceError maps aggregator failures onto the response contract:
// 404 for unresolvable destinations, 502 with upstream detail for external
// failures, 500 otherwise.
func (h *NearbyHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, r, http.StatusBadRequest, "destination is required")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "destination not found")
	case errors.As(err, &upstream):
		writeJSON(w, r, http.StatusBadGateway, map[string]string{
			"error":  upstream.Service + " failed",
			"detail": upstream.Detail,
		})
	default:
		log.Printf("nearby spots failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
