// Package signals scores a homepage against a fixed SEO and call-to-action
// rubric. All point values live in the Rubric table so the scoring policy can
// be versioned and tested apart from the parsing.
package signals

// Rubric is the immutable point table for homepage scoring.
type Rubric struct {
	// Call-to-action points.
	TelLinkBase      int // first valid tel: link
	TelLinkExtraEach int // each additional tel: link
	TelLinkExtraMax  int // cap on additional tel: points
	ActionWordBase   int // first action word on a link or button
	ActionRepeatEach int // each repeated action element
	ActionRepeatMax  int // cap on repetition points
	FormPoints       int // a <form> exists
	ProfilePhone     int // directory profile lists a phone
	ProfileHours     int // directory profile lists hours
	Emergency        int // emergency / 24-7 language
	FrictionPenalty  int // no phone, no form, no CTA words at all

	// SEO points.
	TitleSweetSpot   int // title length 20-65
	TitleOffRange    int // non-empty title outside the sweet spot
	TitleBadPenalty  int // empty or absurdly long title
	MetaSweetSpot    int // meta description 120-160
	MetaAdjacent     int // adjacent length ranges
	MetaMissing      int // missing meta description
	H1Present        int // at least one h1
	H1ExcessPenalty  int // more than two h1s
	WordTierHigh     int // >= 600 words
	WordTierMid      int // >= 300 words
	WordTierLow      int // >= 100 words
	WordTierPenalty  int // < 100 words
	LinkTier40       int // >= 40 internal links
	LinkTier20       int // >= 20
	LinkTier10       int // >= 10
	LinkTier1        int // >= 1
	NavBonus         int // a nav with >= 3 links
	LocalMarkup      int // structured local-business markup
	MapEmbed         int // embedded map iframe
	PhoneAndAddress  int // phone and street address co-occur in text
	ScriptBulk       int // script/style bulk over the threshold
	ImageAltBonus    int // >= 80% of images carry alt text
	ResourceHintEach int // preconnect / dns-prefetch / preload hints

	// Thresholds.
	TitleMin, TitleMax       int
	TitleAbsurd              int
	MetaMin, MetaMax         int
	MetaAdjacentLo           int
	MetaAdjacentHi           int
	ScriptBulkRatio          float64
	ImageAltCoverage         float64
}

// DefaultRubric returns the production point table.
func DefaultRubric() Rubric {
	return Rubric{
		TelLinkBase:      25,
		TelLinkExtraEach: 3,
		TelLinkExtraMax:  5,
		ActionWordBase:   15,
		ActionRepeatEach: 2,
		ActionRepeatMax:  10,
		FormPoints:       5,
		ProfilePhone:     10,
		ProfileHours:     5,
		Emergency:        5,
		FrictionPenalty:  -15,

		TitleSweetSpot:   12,
		TitleOffRange:    5,
		TitleBadPenalty:  -10,
		MetaSweetSpot:    10,
		MetaAdjacent:     6,
		MetaMissing:      -8,
		H1Present:        8,
		H1ExcessPenalty:  -6,
		WordTierHigh:     10,
		WordTierMid:      6,
		WordTierLow:      2,
		WordTierPenalty:  -4,
		LinkTier40:       12,
		LinkTier20:       8,
		LinkTier10:       5,
		LinkTier1:        2,
		NavBonus:         3,
		LocalMarkup:      10,
		MapEmbed:         5,
		PhoneAndAddress:  10,
		ScriptBulk:       -6,
		ImageAltBonus:    3,
		ResourceHintEach: 2,

		TitleMin:         20,
		TitleMax:         65,
		TitleAbsurd:      120,
		MetaMin:          120,
		MetaMax:          160,
		MetaAdjacentLo:   60,
		MetaAdjacentHi:   220,
		ScriptBulkRatio:  0.6,
		ImageAltCoverage: 0.8,
	}
}

// actionWords are the phrases that mark a link or button as a call to action.
var actionWords = []string{
	"call", "quote", "estimate", "book", "schedule", "contact",
	"get started", "free estimate",
}

// emergencyWords signal around-the-clock availability.
var emergencyWords = []string{
	"emergency", "24/7", "24-7", "24 hour", "same day",
}
