package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"nearby-spots-service/internal/api/dto"
	"nearby-spots-service/internal/domain"
	"nearby-spots-service/internal/ports"
)

// AdminHandler exposes the two curated-spot write endpoints. Both require
// the admin role header.
type AdminHandler struct {
	Spots ports.SpotRepository
}

// CreateSpot adds a curated spot. The creator identity is taken from the
// x-user header.
func (h *AdminHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !requireAdmin(w, r) {
		return
	}

	var req dto.CreateSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Name) == "" || req.Lat == nil || req.Lon == nil {
		writeError(w, r, http.StatusBadRequest, "name, lat and lon required")
		return
	}

	category := req.Category
	if category == "" {
		category = "custom"
	}

	owner := r.Header.Get("x-user")
	if owner == "" {
		owner = "admin"
	}

	spot := domain.CustomSpot{
		Name:        req.Name,
		Category:    category,
		Lat:         *req.Lat,
		Lon:         *req.Lon,
		Description: req.Description,
		Owner:       owner,
		CreatedAt:   time.Now().UnixMilli(),
	}

	id, err := h.Spots.Create(r.Context(), spot)
	if err != nil {
		log.Printf("create custom spot failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "db error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CreateSpotResponse{ID: id, Success: true})
}

// FeatureSpot toggles the featured flag on a curated spot. Only custom
// spots may be featured, so the id must match the custom_<n> scheme.
func (h *AdminHandler) FeatureSpot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !requireAdmin(w, r) {
		return
	}

	var req dto.FeatureSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	defer r.Body.Close()

	if req.ID == "" {
		writeError(w, r, http.StatusBadRequest, "id required")
		return
	}

	id, err := domain.ParseCustomID(req.ID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "only custom spots may be featured via API")
		return
	}

	if err := h.Spots.SetFeatured(r.Context(), id, req.Featured); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "custom spot not found")
			return
		}
		log.Printf("set featured failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "db error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FeatureSpotResponse{Success: true})
}
