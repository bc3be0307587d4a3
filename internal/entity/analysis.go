package entity

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is one completed visibility analysis recorded for history.
type Analysis struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	PlaceID      *string   `json:"place_id,omitempty"`
	ServiceArea  *string   `json:"service_area,omitempty"`
	Website      *string   `json:"website,omitempty"`
	Path         string    `json:"path"`
	GBPScore     *int      `json:"gbp_score,omitempty"`
	SiteScore    *int      `json:"site_score,omitempty"`
	FinalScore   int       `json:"final_score"`
	CreatedAt    time.Time `json:"created_at"`
}
