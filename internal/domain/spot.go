package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Spot is a read-only projection assembled per request. It is never persisted
// directly; external-source spots are persisted only as the serialized
// result_data of a CacheEntry.
type Spot struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Category   string            `json:"category"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	DistanceKm float64           `json:"distance_km"`
	Source     string            `json:"source"`
	Featured   *bool             `json:"featured,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
}

// Spot sources.
const (
	SourceOSM    = "osm"
	SourceCustom = "custom"
)

// Operator-curated point of interest, stored independently of the external
// POI source. Mutated only via the feature toggle; never deleted.
type CustomSpot struct {
	ID          int64
	Name        string
	Category    string
	Lat         float64
	Lon         float64
	Description string
	Owner       string
	Featured    bool
	CreatedAt   int64 // epoch millis
}

// A cached result set for one (destination, radius) pair. Append-only:
// entries are created on cache miss and never updated; staleness is judged
// by the reader against CreatedAt.
type CacheEntry struct {
	Destination string
	RadiusKm    int
	Lat         float64
	Lon         float64
	ResultData  []byte // serialized external-source []Spot
	CreatedAt   int64  // epoch millis
}

var customIDPattern = regexp.MustCompile(`^custom_(\d+)$`)

// CustomID renders the public identifier for a stored custom spot.
func CustomID(id int64) string {
	return "custom_" + strconv.FormatInt(id, 10)
}

// ParseCustomID extracts the integer row id from a "custom_<n>" identifier.
// Identifiers in any other shape fail with ErrBadRequest.
func ParseCustomID(id string) (int64, error) {
	m := customIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, fmt.Errorf("parse custom id %q: %w", id, ErrBadRequest)
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse custom id %q: %w", id, ErrBadRequest)
	}

	return n, nil
}
