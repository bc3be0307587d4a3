// Package resolver disambiguates a free-text business name and service area
// into a single directory entry.
package resolver

import "strings"

// legalSuffixes are stripped from the end of a business name to produce a
// looser search variant.
var legalSuffixes = []string{
	"incorporated", "inc", "llc", "l.l.c", "co", "corp", "corporation", "ltd", "limited",
}

// brandAliases pairs spaced spellings with their fused brand form. Order is
// fixed so variant priority is stable across runs.
var brandAliases = []struct {
	spaced, fused string
}{
	{"All State", "Allstate"},
	{"State Farm", "StateFarm"},
	{"Home Depot", "HomeDepot"},
	{"Sun Run", "Sunrun"},
}

// NameVariants returns the ordered, de-duplicated set of name spellings to
// try in search: the original first, then the suffix-stripped form, then
// brand-alias substitutions. Never returns an empty-string variant.
func NameVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	variants := []string{name}
	seen := map[string]struct{}{strings.ToLower(name): {}}

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		variants = append(variants, v)
	}

	add(stripLegalSuffix(name))

	lower := strings.ToLower(name)
	for _, alias := range brandAliases {
		if strings.Contains(lower, strings.ToLower(alias.spaced)) {
			add(replaceFold(name, alias.spaced, alias.fused))
		}
		if strings.Contains(lower, strings.ToLower(alias.fused)) {
			add(replaceFold(name, alias.fused, alias.spaced))
		}
	}

	return variants
}

// stripLegalSuffix removes a trailing legal form (Inc., LLC, ...) along with
// any separating comma or period. Returns "" when nothing remains.
func stripLegalSuffix(name string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(name), ".,")
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return ""
	}

	last := strings.ToLower(strings.TrimRight(fields[len(fields)-1], ".,"))
	for _, suffix := range legalSuffixes {
		if last == suffix {
			stripped := strings.Join(fields[:len(fields)-1], " ")
			return strings.TrimRight(strings.TrimSpace(stripped), ".,")
		}
	}
	return ""
}

// replaceFold replaces the first case-insensitive occurrence of old with new.
func replaceFold(s, old, new string) string {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(old))
	if idx < 0 {
		return s
	}
	return s[:idx] + new + s[idx+len(old):]
}
