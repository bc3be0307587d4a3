package resolver

import (
	"reflect"
	"testing"

	"github.com/octobees/visibility-score/internal/places"
)

func TestDisambiguate_SingleCandidate(t *testing.T) {
	candidates := []places.Candidate{{PlaceID: "only", Name: "Acme Roofing"}}

	d := Disambiguate(candidates, "Acme Roofing", "")
	if d.Selected == nil || d.Selected.PlaceID != "only" {
		t.Fatalf("expected sole candidate selected, got %+v", d)
	}
	if d.Ambiguous {
		t.Fatalf("single candidate must never be ambiguous")
	}
}

func TestDisambiguate_WebsiteHostMatchWins(t *testing.T) {
	candidates := []places.Candidate{
		{PlaceID: "a", Name: "Acme Roofing", Website: "https://other.example.com", Rating: 5, UserRatingsTotal: 500},
		{PlaceID: "b", Name: "Acme Roofing Co", Website: "http://www.ACMEROOFING.com/home"},
	}

	d := Disambiguate(candidates, "Totally Different Name", "acmeroofing.com")
	if d.Selected == nil || d.Selected.PlaceID != "b" {
		t.Fatalf("expected host match to win, got %+v", d.Selected)
	}
	if d.Ambiguous {
		t.Fatalf("host match must settle ambiguity")
	}
}

func TestDisambiguate_ReviewCountTieBreak(t *testing.T) {
	// Near-identical names: the higher review count must win.
	candidates := []places.Candidate{
		{PlaceID: "low", Name: "Acme Roofing", Rating: 4.5, UserRatingsTotal: 5},
		{PlaceID: "high", Name: "Acme Roofing", Rating: 4.5, UserRatingsTotal: 200},
	}

	d := Disambiguate(candidates, "Acme Roofing", "")
	if d.Selected == nil || d.Selected.PlaceID != "high" {
		t.Fatalf("expected higher review count to win tie-break, got %+v", d.Selected)
	}
}

func TestDisambiguate_Deterministic(t *testing.T) {
	candidates := []places.Candidate{
		{PlaceID: "c", Name: "Acme Roofing and Siding", Rating: 4.0, UserRatingsTotal: 40},
		{PlaceID: "a", Name: "Acme Roofing", Rating: 4.6, UserRatingsTotal: 120},
		{PlaceID: "b", Name: "Acme Roof Pros", Rating: 4.9, UserRatingsTotal: 80},
	}

	first := Disambiguate(candidates, "Acme Roofing", "")
	second := Disambiguate(candidates, "Acme Roofing", "")

	if first.Selected.PlaceID != second.Selected.PlaceID {
		t.Fatalf("selection not deterministic: %s vs %s", first.Selected.PlaceID, second.Selected.PlaceID)
	}
	if !reflect.DeepEqual(first.Ranked, second.Ranked) {
		t.Fatalf("ranked list not deterministic")
	}
}

func TestDisambiguate_AmbiguousWhenNoDominantName(t *testing.T) {
	candidates := []places.Candidate{
		{PlaceID: "a", Name: "Acme Roofing", Rating: 4.5, UserRatingsTotal: 50},
		{PlaceID: "b", Name: "Acme Roofing", Rating: 4.4, UserRatingsTotal: 48},
	}

	d := Disambiguate(candidates, "Acme Roofing", "")
	if !d.Ambiguous {
		t.Fatalf("expected ambiguity for equally similar names")
	}
	if d.Selected == nil {
		t.Fatalf("a top-ranked candidate must still be surfaced")
	}
	if len(d.Ranked) != 2 {
		t.Fatalf("full ranked list must be returned, got %d", len(d.Ranked))
	}
}

func TestDisambiguate_DominantNameNotAmbiguous(t *testing.T) {
	candidates := []places.Candidate{
		{PlaceID: "a", Name: "Acme Roofing", Rating: 4.5, UserRatingsTotal: 50},
		{PlaceID: "b", Name: "Completely Unrelated Plumbing", Rating: 4.9, UserRatingsTotal: 300},
	}

	d := Disambiguate(candidates, "Acme Roofing", "")
	if d.Ambiguous {
		t.Fatalf("clear name winner must not be flagged ambiguous")
	}
	if d.Selected.PlaceID != "a" {
		t.Fatalf("expected name match to beat profile strength, got %s", d.Selected.PlaceID)
	}
}

func TestNormalizeHost(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.Example.com/path", "example.com"},
		{"example.com", "example.com"},
		{"http://sub.example.com", "sub.example.com"},
		{"", ""},
		{"not a url", ""},
	}
	for _, tc := range cases {
		if got := normalizeHost(tc.in); got != tc.want {
			t.Fatalf("normalizeHost(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}
