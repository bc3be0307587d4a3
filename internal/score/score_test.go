package score

import (
	"math"
	"strings"
	"testing"
)

func TestGBPScore_WorkedExamples(t *testing.T) {
	// rating 4.6, photos, hours, category match. With 75 reviews (0.80
	// bucket): 100 × (0.40×0.92 + 0.25×0.80 + 0.15 + 0.10 + 0.10) = 92.
	// With 120 reviews (0.90 bucket) the same profile scores 94.
	in := GBPInputs{
		Rating:      4.6,
		ReviewCount: 75,
		Categories:  []string{"roofing_contractor", "point_of_interest"},
		Trade:       "roofing",
		HasPhotos:   true,
		HasHours:    true,
	}

	got, breakdown := GBPScore(in, DefaultWeights())
	if got != 92 {
		t.Fatalf("expected 92, got %d (breakdown %+v)", got, breakdown)
	}
	if math.Abs(breakdown.RatingNorm-0.92) > 1e-9 {
		t.Fatalf("expected rating norm 0.92, got %f", breakdown.RatingNorm)
	}
	if breakdown.ReviewVolumeNorm != 0.80 {
		t.Fatalf("expected review norm 0.80, got %f", breakdown.ReviewVolumeNorm)
	}

	in.ReviewCount = 120
	got, breakdown = GBPScore(in, DefaultWeights())
	if got != 94 {
		t.Fatalf("expected 94 for the 0.90 bucket, got %d", got)
	}
	if breakdown.ReviewVolumeNorm != 0.90 {
		t.Fatalf("expected review norm 0.90, got %f", breakdown.ReviewVolumeNorm)
	}
}

func TestGBPScore_MonotonicInRating(t *testing.T) {
	w := DefaultWeights()
	base := GBPInputs{ReviewCount: 50, HasPhotos: true, HasHours: true}

	prev := -1
	for r := 0.0; r <= 5.0; r += 0.5 {
		in := base
		in.Rating = r
		got, _ := GBPScore(in, w)
		if got < prev {
			t.Fatalf("score decreased as rating rose: rating=%f score=%d prev=%d", r, got, prev)
		}
		prev = got
	}
}

func TestGBPScore_RatingClamped(t *testing.T) {
	w := DefaultWeights()
	in := GBPInputs{Rating: 9.9}
	_, b := GBPScore(in, w)
	if b.RatingNorm != 1.0 {
		t.Fatalf("rating norm must clamp to 1, got %f", b.RatingNorm)
	}
	in.Rating = -2
	_, b = GBPScore(in, w)
	if b.RatingNorm != 0 {
		t.Fatalf("rating norm must clamp to 0, got %f", b.RatingNorm)
	}
}

func TestReviewVolumeNorm_StepFunction(t *testing.T) {
	cases := []struct {
		reviews int
		want    float64
	}{
		{0, 0}, {1, 0.25}, {4, 0.25}, {5, 0.40}, {19, 0.40},
		{20, 0.60}, {49, 0.60}, {50, 0.80}, {99, 0.80},
		{100, 0.90}, {249, 0.90}, {250, 1.0}, {10000, 1.0},
	}
	for _, tc := range cases {
		if got := ReviewVolumeNorm(tc.reviews); got != tc.want {
			t.Fatalf("ReviewVolumeNorm(%d)=%f, want %f", tc.reviews, got, tc.want)
		}
	}

	// Monotonic non-decreasing across the whole range.
	prev := 0.0
	for r := 0; r <= 300; r++ {
		got := ReviewVolumeNorm(r)
		if got < prev {
			t.Fatalf("step function decreased at %d reviews", r)
		}
		prev = got
	}
}

func TestCategoryNorm(t *testing.T) {
	w := DefaultWeights()

	if _, b := GBPScore(GBPInputs{Categories: []string{"roofing_contractor"}, Trade: "roofing"}, w); b.CategoryNorm != w.CategoryMatch {
		t.Fatalf("expected category match norm, got %f", b.CategoryNorm)
	}
	if _, b := GBPScore(GBPInputs{Categories: []string{"bakery"}, Trade: "roofing"}, w); b.CategoryNorm != w.CategoryMismatch {
		t.Fatalf("expected mismatch norm, got %f", b.CategoryNorm)
	}
	if _, b := GBPScore(GBPInputs{Categories: []string{"bakery"}}, w); b.CategoryNorm != w.CategoryUnknown {
		t.Fatalf("expected unknown-trade norm, got %f", b.CategoryNorm)
	}
}

func TestDecidePath_TotalAndDeterministic(t *testing.T) {
	cases := []struct {
		place, site, forced bool
		want                Path
	}{
		{true, true, false, PathBlended},
		{true, false, false, PathGBPOnly},
		{false, true, false, PathSiteOnly},
		{false, false, false, PathNeedsInput},
		{true, true, true, PathSiteOnlyForced},
		{false, true, true, PathSiteOnlyForced},
		{true, false, true, PathNeedsInput},
		{false, false, true, PathNeedsInput},
	}
	for _, tc := range cases {
		got := DecidePath(tc.place, tc.site, tc.forced)
		if got != tc.want {
			t.Fatalf("DecidePath(%v,%v,%v)=%s, want %s", tc.place, tc.site, tc.forced, got, tc.want)
		}
		// Same inputs, same state.
		if again := DecidePath(tc.place, tc.site, tc.forced); again != got {
			t.Fatalf("path selection not deterministic for %+v", tc)
		}
	}
}

func TestFinal_BlendedWorkedExample(t *testing.T) {
	w := DefaultWeights()

	site := SiteScore(80, 70, w) // 75
	if site != 75 {
		t.Fatalf("expected site score 75, got %d", site)
	}

	got, err := Final(PathBlended, 92, site, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := int(math.Round(0.6*92 + 0.4*75)) // 85
	if got != want {
		t.Fatalf("expected blended %d, got %d", want, got)
	}
}

func TestFinal_SingleSignalPaths(t *testing.T) {
	w := DefaultWeights()

	if got, err := Final(PathGBPOnly, 92, 0, w); err != nil || got != 92 {
		t.Fatalf("gbp-only: got %d err %v", got, err)
	}
	if got, err := Final(PathSiteOnly, 0, 63, w); err != nil || got != 63 {
		t.Fatalf("site-only: got %d err %v", got, err)
	}
	if got, err := Final(PathSiteOnlyForced, 92, 63, w); err != nil || got != 63 {
		t.Fatalf("forced site-only must ignore gbp: got %d err %v", got, err)
	}
}

func TestFinal_NeedsInputNeverFabricatesAScore(t *testing.T) {
	if _, err := Final(PathNeedsInput, 50, 50, DefaultWeights()); err == nil {
		t.Fatalf("NEEDS_INPUT must not produce a score")
	}
}

func TestFinal_AlwaysIntegerInRange(t *testing.T) {
	w := DefaultWeights()
	paths := []Path{PathBlended, PathGBPOnly, PathSiteOnly, PathSiteOnlyForced}
	for _, p := range paths {
		for gbp := 0; gbp <= 100; gbp += 10 {
			for site := 0; site <= 100; site += 10 {
				got, err := Final(p, gbp, site, w)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got < 0 || got > 100 {
					t.Fatalf("score out of range: path=%s gbp=%d site=%d got=%d", p, gbp, site, got)
				}
			}
		}
	}
}

func TestRationale_BlendTracksWeights(t *testing.T) {
	w := DefaultWeights()
	got := Rationale(PathBlended, 80, 60, w)
	want := "Blended score: 60% business profile (80) + 40% website (60)."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	w.BlendGBP, w.BlendSite = 0.7, 0.3
	got = Rationale(PathBlended, 80, 60, w)
	if !strings.Contains(got, "70%") || !strings.Contains(got, "30%") {
		t.Fatalf("rationale does not follow configured blend: %q", got)
	}
}
