package places

// LatLng is a geographic point.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Circle is a location bias: a center point plus a radius in meters.
type Circle struct {
	Center LatLng
	Radius int
}

// Candidate is an unconfirmed search result considered during disambiguation.
// It lives only for the duration of one request.
type Candidate struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address"`
	Rating           float64 `json:"rating,omitempty"`
	UserRatingsTotal int     `json:"user_ratings_total,omitempty"`
	Website          string  `json:"website,omitempty"`
}

// Details is the enriched directory profile for a place. Immutable once cached.
type Details struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Website          string   `json:"website,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Categories       []string `json:"categories,omitempty"`
	HasPhotos        bool     `json:"has_photos"`
	HasHours         bool     `json:"has_hours"`
	OpenNow          *bool    `json:"open_now,omitempty"`
	Location         LatLng   `json:"location"`
}

// GeocodeResult is the resolved center of a free-text area plus the
// administrative types the geocoder reported for it.
type GeocodeResult struct {
	Location         LatLng
	FormattedAddress string
	Types            []string
}
