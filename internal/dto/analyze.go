package dto

// AnalyzeRequest is the payload for the analysis endpoint. At least one of
// BusinessName or PlaceID must be present; ServiceArea is required unless
// PlaceID is supplied directly.
type AnalyzeRequest struct {
	BusinessName string `json:"businessName"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
	ServiceArea  string `json:"serviceArea,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
	PlaceID      string `json:"placeId,omitempty"`
	Fast         bool   `json:"fast,omitempty"`
	SiteOnly     bool   `json:"siteOnly,omitempty"`
	SkipCache    bool   `json:"skipCache,omitempty"`
}

// PlaceSummary is the resolved profile returned to clients.
type PlaceSummary struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Website          string  `json:"website,omitempty"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	OpenNow          *bool   `json:"open_now"`
}

// CandidateSummary is one clarification choice for ambiguous resolutions.
type CandidateSummary struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	PlaceID string `json:"placeId"`
}

// GBPSignals carries the profile sub-score and its normalized components.
type GBPSignals struct {
	Score         int     `json:"score"`
	RatingQuality float64 `json:"rating_quality"`
	ReviewVolume  float64 `json:"review_volume"`
	CategoryMatch float64 `json:"category_match"`
	Photos        float64 `json:"photos"`
	Hours         float64 `json:"hours"`
}

// SiteSignals carries the website sub-scores.
type SiteSignals struct {
	Score     int            `json:"score"`
	SEO       int            `json:"seo"`
	CTA       int            `json:"cta"`
	Reachable bool           `json:"reachable"`
	HTTPS     bool           `json:"https"`
	Breakdown map[string]int `json:"breakdown,omitempty"`
}

// QualitativeSignals carries optional model-estimated sub-scores. Absent
// fields were not produced, which is distinct from zero.
type QualitativeSignals struct {
	PainPointResonance *int `json:"pain_point_resonance,omitempty"`
	CTAWording         *int `json:"cta_wording,omitempty"`
	OnPageSEO          *int `json:"on_page_seo,omitempty"`
}

// Signals groups every scored dimension of the analysis.
type Signals struct {
	GBP         *GBPSignals         `json:"gbp,omitempty"`
	Site        *SiteSignals        `json:"site,omitempty"`
	Qualitative *QualitativeSignals `json:"qualitative,omitempty"`
	AdSnippets  []string            `json:"ad_snippets,omitempty"`
}

// AnalyzeResponse is the full analysis result. FinalScore is only set when
// Status is OK; clarification statuses carry Candidates and Message instead.
type AnalyzeResponse struct {
	Success     bool               `json:"success"`
	Status      string             `json:"status"`
	Path        string             `json:"path,omitempty"`
	FinalScore  *int               `json:"finalScore,omitempty"`
	Place       *PlaceSummary      `json:"place,omitempty"`
	Signals     *Signals           `json:"signals,omitempty"`
	Rationale   string             `json:"rationale,omitempty"`
	MapEmbedURL string             `json:"mapEmbedUrl,omitempty"`
	Candidates  []CandidateSummary `json:"candidates,omitempty"`
	Message     string             `json:"message,omitempty"`
}
