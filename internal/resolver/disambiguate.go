package resolver

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/idna"

	"github.com/octobees/visibility-score/internal/places"
)

// similarityDominance is the score gap the top candidate needs over the
// runner-up to be auto-selected without flagging ambiguity.
const similarityDominance = 2.0

// Decision is the disambiguator outcome: the chosen candidate plus the full
// ranked list so a caller can override the automatic choice.
type Decision struct {
	Selected  *places.Candidate
	Ranked    []places.Candidate
	Ambiguous bool
}

// Disambiguate ranks candidates against the requested name and optional
// user-supplied website and picks one. The ranking is deterministic: stable
// sort with explicit tie-breaks, so identical inputs always choose the same
// candidate.
func Disambiguate(candidates []places.Candidate, businessName, suppliedWebsite string) Decision {
	if len(candidates) == 0 {
		return Decision{}
	}
	if len(candidates) == 1 {
		only := candidates[0]
		return Decision{Selected: &only, Ranked: candidates}
	}

	// A website host match settles it regardless of count.
	if host := normalizeHost(suppliedWebsite); host != "" {
		for i := range candidates {
			if normalizeHost(candidates[i].Website) == host {
				match := candidates[i]
				return Decision{Selected: &match, Ranked: rankCandidates(candidates, businessName)}
			}
		}
	}

	ranked := rankCandidates(candidates, businessName)
	top := ranked[0]

	gap := nameSimilarity(businessName, top.Name) - nameSimilarity(businessName, ranked[1].Name)
	return Decision{
		Selected:  &top,
		Ranked:    ranked,
		Ambiguous: gap < similarityDominance,
	}
}

// rankCandidates orders by name similarity, then profile strength, then raw
// review count, then place ID as a final stable key.
func rankCandidates(candidates []places.Candidate, businessName string) []places.Candidate {
	ranked := make([]places.Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := nameSimilarity(businessName, ranked[i].Name), nameSimilarity(businessName, ranked[j].Name)
		if si != sj {
			return si > sj
		}
		pi, pj := profileStrength(ranked[i]), profileStrength(ranked[j])
		if pi != pj {
			return pi > pj
		}
		if ranked[i].UserRatingsTotal != ranked[j].UserRatingsTotal {
			return ranked[i].UserRatingsTotal > ranked[j].UserRatingsTotal
		}
		return ranked[i].PlaceID < ranked[j].PlaceID
	})
	return ranked
}

// nameSimilarity scores how closely a candidate name matches the requested
// one: shared tokens count double, with a length-proximity term so "Acme
// Roofing" beats "Acme Roofing and Siding Supply Warehouse".
func nameSimilarity(requested, candidate string) float64 {
	reqTokens := nameTokens(requested)
	candTokens := nameTokens(candidate)
	if len(reqTokens) == 0 || len(candTokens) == 0 {
		return 0
	}

	candSet := make(map[string]struct{}, len(candTokens))
	for _, t := range candTokens {
		candSet[t] = struct{}{}
	}

	overlap := 0
	for _, t := range reqTokens {
		if _, ok := candSet[t]; ok {
			overlap++
		}
	}

	lenDiff := len(candTokens) - len(reqTokens)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	return float64(overlap*2) + 1.0/float64(1+lenDiff)
}

func nameTokens(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,&'-")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Strength scores a candidate's directory profile for ranking purposes.
func Strength(c places.Candidate) float64 {
	return profileStrength(c)
}

// profileStrength weighs rating against review volume, with volume capped so
// a review farm cannot outrank a well-matched name.
func profileStrength(c places.Candidate) float64 {
	reviews := c.UserRatingsTotal
	if reviews > 100 {
		reviews = 100
	}
	return c.Rating*20 + float64(reviews)
}

// normalizeHost extracts a lowercase, www-stripped, punycode-normalized host
// for exact comparison. Returns "" when the input is not a usable URL.
func normalizeHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return host
	}
	return ascii
}
