package dto

// SnapshotRequest asks for nearby same-trade competitors of a known place.
type SnapshotRequest struct {
	PlaceID      string `json:"placeId"`
	BusinessType string `json:"businessType,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// Competitor is one ranked entry in a competitive snapshot.
type Competitor struct {
	PlaceID          string  `json:"placeId"`
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	Strength         float64 `json:"strength"`
}

// SnapshotResponse lists competitors ranked strongest first.
type SnapshotResponse struct {
	Success     bool          `json:"success"`
	Place       *PlaceSummary `json:"place,omitempty"`
	Competitors []Competitor  `json:"competitors"`
}
