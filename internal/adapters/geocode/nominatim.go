package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nearby-spots-service/internal/domain"
	"nearby-spots-service/internal/platform/obs"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimClient implements the Geocoder port against the Nominatim forward
// geocoding service. Nominatim's usage policy requires a distinct,
// contactable User-Agent, so the identifier is injected at construction.
//
// The client is safe for concurrent use.
type NominatimClient struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewNominatimClient(userAgent string) *NominatimClient {
	return &NominatimClient{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
	}
}

type nominatimMatch struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up the destination text, requesting at most one match.
func (c *NominatimClient) Resolve(
	ctx context.Context,
	destination string,
) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "nominatim.resolve")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode: create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("format", "json")
	q.Set("q", destination)
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		// Timeouts and transport failures count as upstream failures.
		log.Printf("nominatim request failed: %v", err)
		return domain.Coordinates{}, false, &domain.UpstreamError{
			Service: "geocoding",
			Detail:  "Nominatim request failed",
		}
	}
	defer resp.Body.Close()

	// Nominatim serves HTML on rate limiting or maintenance; surface those
	// as upstream failures with a truncated diagnostic.
	if resp.StatusCode != http.StatusOK {
		log.Printf("nominatim error status=%d body=%q", resp.StatusCode, snippet(resp.Body))
		return domain.Coordinates{}, false, &domain.UpstreamError{
			Service: "geocoding",
			Status:  resp.StatusCode,
			Detail:  fmt.Sprintf("Nominatim %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		log.Printf("nominatim non-json content-type=%q body=%q", ct, snippet(resp.Body))
		return domain.Coordinates{}, false, &domain.UpstreamError{
			Service: "geocoding",
			Status:  resp.StatusCode,
			Detail:  "Nominatim returned non-JSON response",
		}
	}

	var matches []nominatimMatch
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		log.Printf("nominatim decode failed: %v", err)
		return domain.Coordinates{}, false, &domain.UpstreamError{
			Service: "geocoding",
			Status:  resp.StatusCode,
			Detail:  "Invalid JSON from Nominatim",
		}
	}

	if len(matches) == 0 {
		return domain.Coordinates{}, false, nil
	}

	// Nominatim encodes coordinates as strings.
	lat, latErr := strconv.ParseFloat(matches[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(matches[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Coordinates{}, false, &domain.UpstreamError{
			Service: "geocoding",
			Status:  resp.StatusCode,
			Detail:  "Invalid coordinates from Nominatim",
		}
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

// snippet reads a bounded prefix of an upstream body for diagnostics.
func snippet(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 800))
	if err != nil {
		return "<no body>"
	}
	return strings.TrimSpace(string(b))
}
