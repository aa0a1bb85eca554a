package domain

import (
	"math"
	"testing"
)

func TestHaversineKmZeroAtCoincidence(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{48.8566, 2.3522},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}

	for _, p := range points {
		if d := HaversineKm(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("HaversineKm(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestHaversineKmSymmetry(t *testing.T) {
	d1 := HaversineKm(48.8566, 2.3522, 51.5074, -0.1278)
	d2 := HaversineKm(51.5074, -0.1278, 48.8566, 2.3522)

	if d1 != d2 {
		t.Fatalf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversineKmKnownCityPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
	}{
		{"Paris-London", 48.8566, 2.3522, 51.5074, -0.1278, 343.5},
		{"NewYork-LosAngeles", 40.7128, -74.0060, 34.0522, -118.2437, 3935.7},
		{"Tokyo-Osaka", 35.6762, 139.6503, 34.6937, 135.5023, 392.4},
	}

	for _, tt := range tests {
		got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
		if rel := math.Abs(got-tt.wantKm) / tt.wantKm; rel > 0.005 {
			t.Errorf("%s: got %.1f km, want %.1f km (off by %.2f%%)",
				tt.name, got, tt.wantKm, rel*100)
		}
	}
}
