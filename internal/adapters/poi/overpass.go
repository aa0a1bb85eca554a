package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"nearby-spots-service/internal/domain"
	"nearby-spots-service/internal/platform/obs"
)

const defaultInterpreterURL = "https://overpass-api.de/api/interpreter"

// OverpassClient implements the POISource port against the Overpass API.
// The client is safe for concurrent use.
type OverpassClient struct {
	session *http.Client
	baseURL string
}

func NewOverpassClient() *OverpassClient {
	return &OverpassClient{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultInterpreterURL,
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassBounds struct {
	MinLat float64 `json:"minlat"`
	MinLon float64 `json:"minlon"`
	MaxLat float64 `json:"maxlat"`
	MaxLon float64 `json:"maxlon"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *latLon           `json:"center"`
	Bounds *overpassBounds   `json:"bounds"`
	Tags   map[string]string `json:"tags"`
}

// FindNearby executes a taxonomy-filtered spatial query and parses the
// returned elements into candidate spots. Elements without a resolvable
// coordinate are dropped.
func (c *OverpassClient) FindNearby(
	ctx context.Context,
	origin domain.Coordinates,
	radiusMeters int,
) (_ []domain.Spot, err error) {
	defer obs.Time(ctx, "overpass.findNearby")(&err)

	query := BuildQuery(origin.Lat, origin.Lon, radiusMeters)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL, strings.NewReader(query),
	)
	if err != nil {
		return nil, fmt.Errorf("overpass: create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		log.Printf("overpass request failed: %v", err)
		return nil, &domain.UpstreamError{
			Service: "overpass",
			Detail:  "Overpass request failed",
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("overpass error status=%d body=%q", resp.StatusCode, snippet(resp.Body))
		return nil, &domain.UpstreamError{
			Service: "overpass",
			Status:  resp.StatusCode,
			Detail:  fmt.Sprintf("Overpass %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		log.Printf("overpass non-json content-type=%q body=%q", ct, snippet(resp.Body))
		return nil, &domain.UpstreamError{
			Service: "overpass",
			Status:  resp.StatusCode,
			Detail:  "Overpass returned non-JSON response",
		}
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Printf("overpass decode failed: %v", err)
		return nil, &domain.UpstreamError{
			Service: "overpass",
			Status:  resp.StatusCode,
			Detail:  "Invalid JSON from Overpass",
		}
	}

	spots := make([]domain.Spot, 0, len(decoded.Elements))
	for _, el := range decoded.Elements {
		if spot, ok := parseElement(el); ok {
			spots = append(spots, spot)
		}
	}

	return spots, nil
}

// parseElement turns an Overpass element into a candidate spot. The
// coordinate comes from the element's own lat/lon when present, else from
// its centroid, else from its bounding-box center.
func parseElement(el overpassElement) (domain.Spot, bool) {
	var lat, lon float64
	switch {
	case el.Lat != nil && el.Lon != nil:
		lat, lon = *el.Lat, *el.Lon
	case el.Center != nil:
		lat, lon = el.Center.Lat, el.Center.Lon
	case el.Bounds != nil:
		lat = (el.Bounds.MinLat + el.Bounds.MaxLat) / 2
		lon = (el.Bounds.MinLon + el.Bounds.MaxLon) / 2
	default:
		return domain.Spot{}, false
	}

	name := el.Tags["name"]
	if name == "" {
		name = el.Tags["name:en"]
	}
	if name == "" {
		name = "Unknown"
	}

	category := "attraction"
	for _, key := range []string{"tourism", "leisure", "historic", "heritage"} {
		if v := el.Tags[key]; v != "" {
			category = v
			break
		}
	}

	tags := el.Tags
	if tags == nil {
		tags = map[string]string{}
	}

	return domain.Spot{
		ID:       fmt.Sprintf("%s_%d", el.Type, el.ID),
		Name:     name,
		Category: category,
		Lat:      lat,
		Lon:      lon,
		Source:   domain.SourceOSM,
		Tags:     tags,
	}, true
}

// snippet reads a bounded prefix of an upstream body for diagnostics.
func snippet(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 800))
	if err != nil {
		return "<no body>"
	}
	return strings.TrimSpace(string(b))
}
