package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/octobees/visibility-score/internal/places"
)

func TestFilterByState_NeverEmptiesNonEmptySet(t *testing.T) {
	candidates := []places.Candidate{
		{PlaceID: "a", FormattedAddress: "1 Main St, Austin, TX 78701"},
		{PlaceID: "b", FormattedAddress: "2 Elm St, Portland, OR 97201"},
	}

	filtered := filterByState(candidates, "TX")
	if len(filtered) != 1 || filtered[0].PlaceID != "a" {
		t.Fatalf("expected TX-only filter, got %+v", filtered)
	}

	// No candidate matches: the unfiltered list must come back.
	unfiltered := filterByState(candidates, "NJ")
	if len(unfiltered) != 2 {
		t.Fatalf("filter must not empty a non-empty set, got %+v", unfiltered)
	}
}

func TestFilterByState_NoCode(t *testing.T) {
	candidates := []places.Candidate{{PlaceID: "a"}}
	if got := filterByState(candidates, ""); len(got) != 1 {
		t.Fatalf("empty code must pass candidates through")
	}
}

func TestFirstNonEmpty_OrderAndShortCircuit(t *testing.T) {
	calls := []string{}
	strategies := []strategy{
		{name: "first", run: func(context.Context) ([]places.Candidate, error) {
			calls = append(calls, "first")
			return nil, nil
		}},
		{name: "second", run: func(context.Context) ([]places.Candidate, error) {
			calls = append(calls, "second")
			return []places.Candidate{{PlaceID: "hit"}}, nil
		}},
		{name: "third", run: func(context.Context) ([]places.Candidate, error) {
			calls = append(calls, "third")
			return []places.Candidate{{PlaceID: "never"}}, nil
		}},
	}

	got, err := firstNonEmpty(context.Background(), strategies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].PlaceID != "hit" {
		t.Fatalf("expected first non-empty result, got %+v", got)
	}
	if len(calls) != 2 {
		t.Fatalf("expected short-circuit after second strategy, calls=%v", calls)
	}
}

func TestFirstNonEmpty_QuotaAborts(t *testing.T) {
	reached := false
	strategies := []strategy{
		{name: "quota", run: func(context.Context) ([]places.Candidate, error) {
			return nil, places.ErrQuota
		}},
		{name: "after", run: func(context.Context) ([]places.Candidate, error) {
			reached = true
			return []places.Candidate{{PlaceID: "x"}}, nil
		}},
	}

	_, err := firstNonEmpty(context.Background(), strategies)
	if !errors.Is(err, places.ErrQuota) {
		t.Fatalf("expected quota error to surface, got %v", err)
	}
	if reached {
		t.Fatalf("quota error must abort the strategy ladder")
	}
}

func TestFirstNonEmpty_ErrorsOnlySurfaceWhenAllEmpty(t *testing.T) {
	strategies := []strategy{
		{name: "broken", run: func(context.Context) ([]places.Candidate, error) {
			return nil, errors.New("boom")
		}},
		{name: "working", run: func(context.Context) ([]places.Candidate, error) {
			return []places.Candidate{{PlaceID: "ok"}}, nil
		}},
	}

	got, err := firstNonEmpty(context.Background(), strategies)
	if err != nil {
		t.Fatalf("later success must absorb earlier failure, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected result from working strategy")
	}

	allBroken := []strategy{
		{name: "broken", run: func(context.Context) ([]places.Candidate, error) {
			return nil, errors.New("boom")
		}},
	}
	if _, err := firstNonEmpty(context.Background(), allBroken); err == nil {
		t.Fatalf("expected error when every stage failed")
	}
}

func TestQueryVariants_Prioritized(t *testing.T) {
	got := queryVariants("Acme Roofing LLC", "Newark, NJ", "roofing")
	if len(got) == 0 {
		t.Fatalf("expected query variants")
	}
	if got[0] != "Acme Roofing LLC Newark, NJ" {
		t.Fatalf("expected original name with area first, got %q", got[0])
	}

	seen := make(map[string]int)
	for _, q := range got {
		seen[q]++
	}
	for q, n := range seen {
		if n > 1 {
			t.Fatalf("duplicate query variant %q", q)
		}
	}
}

func TestTradeSynonyms(t *testing.T) {
	got := TradeSynonyms("Roofing")
	if len(got) < 2 || got[0] != "roofing" {
		t.Fatalf("expected trade plus synonyms, got %v", got)
	}
	if TradeSynonyms("") != nil {
		t.Fatalf("expected nil for empty trade")
	}
}
