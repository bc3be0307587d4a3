package resolver

import (
	"strings"
	"testing"
)

func TestNameVariants_SuffixStripping(t *testing.T) {
	got := NameVariants("Acme Roofing LLC")
	if len(got) != 2 {
		t.Fatalf("expected original plus stripped variant, got %v", got)
	}
	if got[0] != "Acme Roofing LLC" {
		t.Fatalf("original must come first, got %v", got)
	}
	if got[1] != "Acme Roofing" {
		t.Fatalf("expected stripped variant, got %q", got[1])
	}
}

func TestNameVariants_TrailingPunctuation(t *testing.T) {
	got := NameVariants("Smith & Sons Plumbing, Inc.")
	if len(got) != 2 || got[1] != "Smith & Sons Plumbing" {
		t.Fatalf("expected comma and period stripped, got %v", got)
	}
}

func TestNameVariants_NeverEmpty(t *testing.T) {
	// Stripping the suffix from a name that is only a suffix would yield "",
	// so only the original survives.
	got := NameVariants("LLC")
	if len(got) != 1 || got[0] != "LLC" {
		t.Fatalf("expected only the original, got %v", got)
	}

	if got := NameVariants("   "); got != nil {
		t.Fatalf("expected nil for blank name, got %v", got)
	}
}

func TestNameVariants_BrandAlias(t *testing.T) {
	got := NameVariants("All State Insurance")
	found := false
	for _, v := range got {
		if strings.Contains(v, "Allstate") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected fused brand alias variant, got %v", got)
	}
}

func TestNameVariants_StableOrder(t *testing.T) {
	// A name matching several brand aliases must expand in the same order
	// every time, since variant position drives search priority.
	first := NameVariants("All State Farm Insurance")
	if len(first) < 3 {
		t.Fatalf("expected multiple alias variants, got %v", first)
	}
	for i := 0; i < 50; i++ {
		got := NameVariants("All State Farm Insurance")
		if len(got) != len(first) {
			t.Fatalf("run %d: variant count changed: %v vs %v", i, got, first)
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("run %d: variant order changed: %v vs %v", i, got, first)
			}
		}
	}
}

func TestNameVariants_Deduplicated(t *testing.T) {
	got := NameVariants("Acme")
	if len(got) != 1 {
		t.Fatalf("expected single variant for unsuffixed name, got %v", got)
	}
}
