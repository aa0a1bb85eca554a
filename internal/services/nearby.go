package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"nearby-spots-service/internal/domain"
	"nearby-spots-service/internal/ports"
)

// Effective query radius bounds in meters. Caller input is clamped here
// regardless of what radius was requested.
const (
	minRadiusMeters = 1000
	maxRadiusMeters = 50000
)

// CacheTTL is the validity window for stored result sets. Older entries are
// treated as misses but left in place for the next insert.
const CacheTTL = 24 * time.Hour

// NearbyResult is the aggregator's answer for one request: the merged spot
// list and whether the external block came from cache.
type NearbyResult struct {
	Cached  bool
	Results []domain.Spot
}

// NearbyService orchestrates the read path: consult cache, on miss resolve
// the destination and query the POI source, merge in custom spots, persist,
// respond. Custom spots are recomputed fresh on every read and never cached,
// so operator edits propagate immediately.
type NearbyService struct {
	geocoder ports.Geocoder
	pois     ports.POISource
	cache    ports.ResultCache
	spots    ports.SpotRepository

	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group
}

func NewNearbyService(
	geocoder ports.Geocoder,
	pois ports.POISource,
	cache ports.ResultCache,
	spots ports.SpotRepository,
) *NearbyService {
	return &NearbyService{
		geocoder: geocoder,
		pois:     pois,
		cache:    cache,
		spots:    spots,
		ttl:      CacheTTL,
		now:      time.Now,
	}
}

type externalResult struct {
	origin domain.Coordinates
	spots  []domain.Spot
}

// NearbySpots serves one nearby-spots request.
func (s *NearbyService) NearbySpots(
	ctx context.Context,
	destination string,
	radiusKm int,
) (NearbyResult, error) {
	dest := strings.ToLower(strings.TrimSpace(destination))
	if dest == "" {
		return NearbyResult{}, fmt.Errorf("nearby spots: %w: destination is required", domain.ErrBadRequest)
	}

	entry, err := s.cache.Get(ctx, dest, radiusKm)
	if err != nil {
		return NearbyResult{}, fmt.Errorf("nearby spots: check cache: %w", err)
	}

	if entry != nil && s.now().UnixMilli()-entry.CreatedAt < s.ttl.Milliseconds() {
		var external []domain.Spot
		if err := json.Unmarshal(entry.ResultData, &external); err != nil {
			return NearbyResult{}, fmt.Errorf("nearby spots: decode cached results: %w", err)
		}

		// Custom spots are filtered against the cached coordinate so spots
		// added after the cache was populated are still visible.
		origin := domain.Coordinates{Lat: entry.Lat, Lon: entry.Lon}
		merged := append(external, s.customWithin(ctx, origin, radiusKm)...)

		return NearbyResult{Cached: true, Results: merged}, nil
	}

	// Concurrent misses for the same key share one upstream sequence. The
	// custom merge stays per-request so operator edits are always live.
	// The shared fetch is detached from the leading request's context so
	// its cancellation cannot fail the piggybacked callers.
	key := fmt.Sprintf("%s|%d", dest, radiusKm)
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.fetchAndCache(fetchCtx, dest, radiusKm)
	})
	if err != nil {
		return NearbyResult{}, err
	}
	ext := v.(*externalResult)

	merged := append(append([]domain.Spot(nil), ext.spots...), s.customWithin(ctx, ext.origin, radiusKm)...)

	return NearbyResult{Cached: false, Results: merged}, nil
}

// fetchAndCache performs the miss path: geocode, POI query, ranking, and a
// best-effort cache write of the external-only result set.
func (s *NearbyService) fetchAndCache(
	ctx context.Context,
	dest string,
	radiusKm int,
) (*externalResult, error) {
	origin, found, err := s.geocoder.Resolve(ctx, dest)
	if err != nil {
		return nil, fmt.Errorf("nearby spots: resolve %q: %w", dest, err)
	}
	if !found {
		return nil, fmt.Errorf("nearby spots: destination %q: %w", dest, domain.ErrNotFound)
	}

	candidates, err := s.pois.FindNearby(ctx, origin, clampRadiusMeters(radiusKm))
	if err != nil {
		return nil, fmt.Errorf("nearby spots: query pois near %q: %w", dest, err)
	}

	external := rankByDistance(origin, candidates)

	// External results only: cache write failure must never block the
	// response.
	if data, err := json.Marshal(external); err != nil {
		log.Printf("encode cache entry failed key=%q/%d: %v", dest, radiusKm, err)
	} else {
		entry := domain.CacheEntry{
			Destination: dest,
			RadiusKm:    radiusKm,
			Lat:         origin.Lat,
			Lon:         origin.Lon,
			ResultData:  data,
			CreatedAt:   s.now().UnixMilli(),
		}
		if err := s.cache.Put(ctx, entry); err != nil {
			log.Printf("cache write failed key=%q/%d: %v", dest, radiusKm, err)
		}
	}

	return &externalResult{origin: origin, spots: external}, nil
}

// customWithin returns curated spots within radiusKm of origin, in store
// order. Store failures degrade to an external-only response rather than
// failing the read.
func (s *NearbyService) customWithin(
	ctx context.Context,
	origin domain.Coordinates,
	radiusKm int,
) []domain.Spot {
	stored, err := s.spots.ListAll(ctx)
	if err != nil {
		log.Printf("list custom spots failed: %v", err)
		return nil
	}

	out := make([]domain.Spot, 0, len(stored))
	for _, cs := range stored {
		d := domain.HaversineKm(origin.Lat, origin.Lon, cs.Lat, cs.Lon)
		if d > float64(radiusKm) {
			continue
		}

		featured := cs.Featured
		out = append(out, domain.Spot{
			ID:         domain.CustomID(cs.ID),
			Name:       cs.Name,
			Category:   cs.Category,
			Lat:        cs.Lat,
			Lon:        cs.Lon,
			DistanceKm: roundKm(d),
			Source:     domain.SourceCustom,
			Featured:   &featured,
		})
	}

	return out
}

// rankByDistance computes each candidate's distance from the origin and
// sorts ascending. The ordering is a response contract.
func rankByDistance(origin domain.Coordinates, candidates []domain.Spot) []domain.Spot {
	ranked := make([]domain.Spot, 0, len(candidates))
	for _, c := range candidates {
		c.DistanceKm = roundKm(domain.HaversineKm(origin.Lat, origin.Lon, c.Lat, c.Lon))
		ranked = append(ranked, c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		// Tie-breaker keeps the ordering deterministic.
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}

func clampRadiusMeters(radiusKm int) int {
	m := radiusKm * 1000
	if m < minRadiusMeters {
		return minRadiusMeters
	}
	if m > maxRadiusMeters {
		return maxRadiusMeters
	}
	return m
}

func roundKm(v float64) float64 {
	return math.Round(v*1000) / 1000
}
