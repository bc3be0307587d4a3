package dto

import "time"

// AnalysisRecord is one persisted analysis in the recent listing.
type AnalysisRecord struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	PlaceID      string    `json:"place_id,omitempty"`
	Path         string    `json:"path"`
	GBPScore     *int      `json:"gbp_score,omitempty"`
	SiteScore    *int      `json:"site_score,omitempty"`
	FinalScore   int       `json:"final_score"`
	CreatedAt    time.Time `json:"created_at"`
}
