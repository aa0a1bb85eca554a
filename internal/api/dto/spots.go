package dto

import "nearby-spots-service/internal/domain"

type NearbyResponse struct {
	Cached  bool          `json:"cached"`
	Results []domain.Spot `json:"results"`
}

// Lat and Lon are pointers so a missing field is distinguishable from a
// legitimate zero coordinate.
type CreateSpotRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Description string   `json:"description"`
}

type CreateSpotResponse struct {
	ID      int64 `json:"id"`
	Success bool  `json:"success"`
}

type FeatureSpotRequest struct {
	ID       string `json:"id"`
	Featured bool   `json:"featured"`
}

type FeatureSpotResponse struct {
	Success bool `json:"success"`
}
