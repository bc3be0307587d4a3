// Package score blends directory-profile and website signals into the final
// 0-100 visibility score.
package score

import (
	"fmt"
	"math"
	"strings"
)

// Path is the selected blending state. It determines which signals feed the
// final score.
type Path string

const (
	PathNeedsInput     Path = "NEEDS_INPUT"
	PathSiteOnly       Path = "SITE_ONLY"
	PathSiteOnlyForced Path = "SITE_ONLY_FORCED"
	PathGBPOnly        Path = "GBP_ONLY"
	PathBlended        Path = "BLENDED_60_40"
)

// Weights is the scoring constant table. The exact numbers are policy, not
// load-bearing behavior; keeping them here lets the rubric be versioned.
type Weights struct {
	Rating       float64 // GBP: rating quality
	ReviewVolume float64 // GBP: review volume
	Category     float64 // GBP: trade/category match
	Photos       float64 // GBP: photos present
	Hours        float64 // GBP: hours present

	CategoryMatch    float64 // category norm on trade match
	CategoryMismatch float64 // category norm on mismatch
	CategoryUnknown  float64 // category norm when no trade supplied

	BlendGBP  float64 // blended path: GBP share
	BlendSite float64 // blended path: site share

	SiteSEO float64 // site sub-score: SEO share
	SiteCTA float64 // site sub-score: CTA share
}

// DefaultWeights returns the production constants.
func DefaultWeights() Weights {
	return Weights{
		Rating:       0.40,
		ReviewVolume: 0.25,
		Category:     0.15,
		Photos:       0.10,
		Hours:        0.10,

		CategoryMatch:    1.0,
		CategoryMismatch: 0.6,
		CategoryUnknown:  0.8,

		BlendGBP:  0.6,
		BlendSite: 0.4,

		SiteSEO: 0.5,
		SiteCTA: 0.5,
	}
}

// GBPInputs are the normalized profile facts feeding the GBP sub-score.
type GBPInputs struct {
	Rating      float64 // 0-5
	ReviewCount int
	Categories  []string
	Trade       string // empty when the caller supplied no business type
	HasPhotos   bool
	HasHours    bool
}

// GBPBreakdown labels each normalized component of the GBP sub-score.
type GBPBreakdown struct {
	RatingNorm       float64 `json:"rating_quality"`
	ReviewVolumeNorm float64 `json:"review_volume"`
	CategoryNorm     float64 `json:"category_match"`
	PhotosNorm       float64 `json:"photos"`
	HoursNorm        float64 `json:"hours"`
}

// GBPScore computes the directory-profile sub-score on [0,100].
func GBPScore(in GBPInputs, w Weights) (int, GBPBreakdown) {
	b := GBPBreakdown{
		RatingNorm:       clampF(in.Rating/5, 0, 1),
		ReviewVolumeNorm: ReviewVolumeNorm(in.ReviewCount),
		CategoryNorm:     categoryNorm(in.Categories, in.Trade, w),
		PhotosNorm:       boolNorm(in.HasPhotos),
		HoursNorm:        boolNorm(in.HasHours),
	}

	raw := 100 * (w.Rating*b.RatingNorm +
		w.ReviewVolume*b.ReviewVolumeNorm +
		w.Category*b.CategoryNorm +
		w.Photos*b.PhotosNorm +
		w.Hours*b.HoursNorm)
	return clampInt(int(math.Round(raw)), 0, 100), b
}

// ReviewVolumeNorm is a fixed step function of review count: monotonic, and
// invariant within each bucket.
func ReviewVolumeNorm(reviews int) float64 {
	switch {
	case reviews >= 250:
		return 1.0
	case reviews >= 100:
		return 0.90
	case reviews >= 50:
		return 0.80
	case reviews >= 20:
		return 0.60
	case reviews >= 5:
		return 0.40
	case reviews >= 1:
		return 0.25
	default:
		return 0
	}
}

// SiteScore combines the SEO and CTA sub-scores.
func SiteScore(seo, cta int, w Weights) int {
	raw := w.SiteSEO*float64(seo) + w.SiteCTA*float64(cta)
	return clampInt(int(math.Round(raw)), 0, 100)
}

// DecidePath is the total decision table over the three booleans. Identical
// inputs always map to the same state.
func DecidePath(placeResolved, siteReachable, forcedSiteOnly bool) Path {
	if forcedSiteOnly {
		if siteReachable {
			return PathSiteOnlyForced
		}
		return PathNeedsInput
	}
	switch {
	case placeResolved && siteReachable:
		return PathBlended
	case placeResolved:
		return PathGBPOnly
	case siteReachable:
		return PathSiteOnly
	default:
		return PathNeedsInput
	}
}

// Final computes the blended score for a path. The NEEDS_INPUT path has no
// score; callers must not fabricate one.
func Final(path Path, gbp, site int, w Weights) (int, error) {
	switch path {
	case PathBlended:
		raw := w.BlendGBP*float64(gbp) + w.BlendSite*float64(site)
		return clampInt(int(math.Round(raw)), 0, 100), nil
	case PathGBPOnly:
		return clampInt(gbp, 0, 100), nil
	case PathSiteOnly, PathSiteOnlyForced:
		return clampInt(site, 0, 100), nil
	case PathNeedsInput:
		return 0, fmt.Errorf("score: path %s carries no score", path)
	default:
		return 0, fmt.Errorf("score: unknown path %q", path)
	}
}

// Rationale produces the human-readable explanation attached to a result.
// Blend percentages come from the weights so the text tracks configuration.
func Rationale(path Path, gbp, site int, w Weights) string {
	switch path {
	case PathBlended:
		return fmt.Sprintf("Blended score: %.0f%% business profile (%d) + %.0f%% website (%d).",
			w.BlendGBP*100, gbp, w.BlendSite*100, site)
	case PathGBPOnly:
		return fmt.Sprintf("Business profile only (%d): website missing or unreachable.", gbp)
	case PathSiteOnly:
		return fmt.Sprintf("Website only (%d): no directory listing matched.", site)
	case PathSiteOnlyForced:
		return fmt.Sprintf("Website only (%d) as requested.", site)
	default:
		return "Not enough signal to score: provide a business name with a service area, or a website."
	}
}

func categoryNorm(categories []string, trade string, w Weights) float64 {
	trade = strings.ToLower(strings.TrimSpace(trade))
	if trade == "" {
		return w.CategoryUnknown
	}
	for _, c := range categories {
		normalized := strings.ToLower(strings.ReplaceAll(c, "_", " "))
		if strings.Contains(normalized, trade) || strings.Contains(trade, normalized) {
			return w.CategoryMatch
		}
	}
	return w.CategoryMismatch
}

func boolNorm(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
