package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearby-spots-service/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *NominatimClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewNominatimClient("nearby-spots-test/1.0 (test@example.com)")
	client.baseURL = srv.URL
	return client
}

func TestResolveParsesStringCoordinates(t *testing.T) {
	var gotAgent, gotQuery, gotLimit string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`[{"lat":"38.7077507","lon":"-9.1365919","display_name":"Lisboa, Portugal"}]`))
	})

	coord, found, err := client.Resolve(context.Background(), "lisbon")
	require.NoError(t, err)
	require.True(t, found)

	assert.InDelta(t, 38.7077507, coord.Lat, 1e-9)
	assert.InDelta(t, -9.1365919, coord.Lon, 1e-9)
	assert.Equal(t, "nearby-spots-test/1.0 (test@example.com)", gotAgent)
	assert.Equal(t, "lisbon", gotQuery)
	assert.Equal(t, "1", gotLimit)
}

func TestResolveZeroMatchesIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	_, found, err := client.Resolve(context.Background(), "zzzzzz")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResolveNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusServiceUnavailable)
	})

	_, _, err := client.Resolve(context.Background(), "lisbon")

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "geocoding", upstream.Service)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
	assert.Contains(t, upstream.Detail, "503")
}

func TestResolveNonJSONContentType(t *testing.T) {
	// Nominatim serves HTML during maintenance windows.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html>maintenance</html>`))
	})

	_, _, err := client.Resolve(context.Background(), "lisbon")

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "Nominatim returned non-JSON response", upstream.Detail)
}

func TestResolveUnparseableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"an array`))
	})

	_, _, err := client.Resolve(context.Background(), "lisbon")

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "Invalid JSON from Nominatim", upstream.Detail)
}
