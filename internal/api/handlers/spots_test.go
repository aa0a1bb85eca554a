package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearby-spots-service/internal/domain"
	"nearby-spots-service/internal/services"
)

type stubFinder struct {
	result services.NearbyResult
	err    error
	calls  int
}

func (s *stubFinder) NearbySpots(ctx context.Context, destination string, radiusKm int) (services.NearbyResult, error) {
	s.calls++
	return s.result, s.err
}

func doNearby(t *testing.T, finder *stubFinder, target string) *httptest.ResponseRecorder {
	t.Helper()

	h := &NearbyHandler{Service: finder}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	return rec
}

func TestNearbyMissingDestination(t *testing.T) {
	finder := &stubFinder{}

	rec := doNearby(t, finder, "/api/nearby-spots?destination=")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, finder.calls)
}

func TestNearbyInvalidRadius(t *testing.T) {
	finder := &stubFinder{}

	rec := doNearby(t, finder, "/api/nearby-spots?destination=lisbon&radius=wide")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, finder.calls)
}

func TestNearbyUnresolvableDestination(t *testing.T) {
	finder := &stubFinder{err: fmt.Errorf("nearby spots: %w", domain.ErrNotFound)}

	rec := doNearby(t, finder, "/api/nearby-spots?destination=nowhereville")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNearbyUpstreamFailure(t *testing.T) {
	finder := &stubFinder{err: fmt.Errorf("nearby spots: %w", &domain.UpstreamError{
		Service: "geocoding",
		Status:  http.StatusServiceUnavailable,
		Detail:  "Nominatim 503 Service Unavailable",
	})}

	rec := doNearby(t, finder, "/api/nearby-spots?destination=lisbon")

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "geocoding failed", body["error"])
	assert.Equal(t, "Nominatim 503 Service Unavailable", body["detail"])
}

func TestNearbyOK(t *testing.T) {
	featured := true
	finder := &stubFinder{result: services.NearbyResult{
		Cached: true,
		Results: []domain.Spot{
			{ID: "node_1", Name: "Castelo", Category: "attraction", Lat: 38.71, Lon: -9.14, DistanceKm: 0.42, Source: domain.SourceOSM},
			{ID: "custom_1", Name: "Cafe", Category: "custom", Lat: 38.72, Lon: -9.15, DistanceKm: 1.2, Source: domain.SourceCustom, Featured: &featured},
		},
	}}

	rec := doNearby(t, finder, "/api/nearby-spots?destination=Lisbon&radius=10")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Cached  bool              `json:"cached"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Cached)
	assert.Len(t, body.Results, 2)
}

func TestNearbyMethodNotAllowed(t *testing.T) {
	h := &NearbyHandler{Service: &stubFinder{}}
	req := httptest.NewRequest(http.MethodPost, "/api/nearby-spots?destination=lisbon", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
