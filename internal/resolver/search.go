package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/visibility-score/internal/places"
)

// ErrNoMatch reports that candidate search exhausted every query variant and
// fallback stage without finding a result.
var ErrNoMatch = errors.New("resolver: no directory match")

// Directory is the subset of the places client the resolver depends on.
type Directory interface {
	FindPlace(ctx context.Context, query string, bias *places.Circle) ([]places.Candidate, error)
	TextSearch(ctx context.Context, query string) ([]places.Candidate, error)
	Details(ctx context.Context, placeID string) (*places.Details, error)
	Geocode(ctx context.Context, address string) (*places.GeocodeResult, error)
	NearbySearch(ctx context.Context, center places.LatLng, radius int, keyword string) ([]places.Candidate, error)
}

// tradeSynonyms expands a supplied business type into the spellings people
// actually use in directory listings.
var tradeSynonyms = map[string][]string{
	"roofing":     {"roofer", "roofing contractor"},
	"plumbing":    {"plumber", "plumbing contractor"},
	"hvac":        {"heating and cooling", "air conditioning repair"},
	"electrical":  {"electrician", "electrical contractor"},
	"landscaping": {"lawn care", "landscaper"},
	"painting":    {"painter", "painting contractor"},
	"cleaning":    {"cleaning service", "house cleaning"},
	"pest":        {"pest control", "exterminator"},
}

// TradeSynonyms returns the supplied trade plus its known alternate spellings.
func TradeSynonyms(trade string) []string {
	trade = strings.ToLower(strings.TrimSpace(trade))
	if trade == "" {
		return nil
	}
	out := []string{trade}
	for key, syns := range tradeSynonyms {
		if strings.Contains(trade, key) {
			out = append(out, syns...)
		}
	}
	return out
}

// queryVariants builds the prioritized list of search inputs: every name
// variant with the area, then without it, then trade-expanded forms.
func queryVariants(name, area, trade string) []string {
	names := NameVariants(name)
	trades := TradeSynonyms(trade)

	var queries []string
	seen := make(map[string]struct{})
	add := func(q string) {
		q = strings.Join(strings.Fields(q), " ")
		if q == "" {
			return
		}
		key := strings.ToLower(q)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		queries = append(queries, q)
	}

	for _, n := range names {
		if area != "" {
			add(n + " " + area)
		}
		add(n)
	}
	for _, n := range names {
		for _, tr := range trades {
			if area != "" {
				add(n + " " + tr + " " + area)
			}
			add(n + " " + tr)
		}
	}
	return queries
}

// strategy is one search attempt; strategies are evaluated in order and the
// first non-empty result wins.
type strategy struct {
	name string
	run  func(ctx context.Context) ([]places.Candidate, error)
}

// firstNonEmpty evaluates strategies in order, returning the first non-empty
// candidate list. Quota errors abort immediately; other errors are retained
// and surfaced only if every stage comes up empty.
func firstNonEmpty(ctx context.Context, strategies []strategy) ([]places.Candidate, error) {
	var lastErr error
	for _, s := range strategies {
		candidates, err := s.run(ctx)
		if err != nil {
			if errors.Is(err, places.ErrQuota) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = fmt.Errorf("search stage %s: %w", s.name, err)
			continue
		}
		if len(candidates) > 0 {
			return candidates, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

// searchCandidates runs the full fallback ladder for one query: biased
// find-place, unbiased find-place, then broad text search filtered by state.
func (r *Resolver) searchCandidates(ctx context.Context, query string, bias *places.Circle, stateCode string) ([]places.Candidate, error) {
	strategies := []strategy{
		{name: "find_place_unbiased", run: func(ctx context.Context) ([]places.Candidate, error) {
			return r.directory.FindPlace(ctx, query, nil)
		}},
		{name: "text_search", run: func(ctx context.Context) ([]places.Candidate, error) {
			candidates, err := r.directory.TextSearch(ctx, query)
			if err != nil {
				return nil, err
			}
			return filterByState(candidates, stateCode), nil
		}},
	}
	if bias != nil {
		biased := strategy{name: "find_place_biased", run: func(ctx context.Context) ([]places.Candidate, error) {
			return r.directory.FindPlace(ctx, query, bias)
		}}
		strategies = append([]strategy{biased}, strategies...)
	}
	return firstNonEmpty(ctx, strategies)
}

// filterByState keeps candidates whose address mentions the state code. The
// filter never reduces a non-empty set to zero: when it would, the original
// list is returned untouched.
func filterByState(candidates []places.Candidate, stateCode string) []places.Candidate {
	if stateCode == "" || len(candidates) == 0 {
		return candidates
	}

	code := strings.ToUpper(stateCode)
	filtered := make([]places.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if addressMentionsState(c.FormattedAddress, code) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

func addressMentionsState(address, code string) bool {
	upper := strings.ToUpper(address)
	for _, sep := range []string{", " + code + " ", ", " + code + ",", " " + code + " "} {
		if strings.Contains(upper+" ", sep) {
			return true
		}
	}
	return strings.HasSuffix(strings.TrimRight(upper, ". "), " "+code)
}
