package resolver

import "strings"

// RegionLevel is the inferred geographic granularity of a service area.
type RegionLevel string

const (
	LevelState    RegionLevel = "state"
	LevelRegion   RegionLevel = "region"
	LevelCounty   RegionLevel = "county"
	LevelLocality RegionLevel = "locality"
	LevelUnknown  RegionLevel = "unknown"
)

// radiusByLevel maps a granularity to a search radius in meters. Broader
// areas get wider circles; unknown gets a conservative default.
var radiusByLevel = map[RegionLevel]int{
	LevelState:    200000,
	LevelRegion:   120000,
	LevelCounty:   60000,
	LevelLocality: 40000,
	LevelUnknown:  80000,
}

// stateNames maps lowercase full US state names to their postal codes.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

var stateCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(stateNames))
	for _, code := range stateNames {
		codes[strings.ToLower(code)] = struct{}{}
	}
	return codes
}()

var directionWords = []string{
	"north", "south", "east", "west", "northern", "southern", "eastern", "western",
	"central", "upstate", "downstate", "greater",
}

// InferRegionLevel classifies a freeform service-area string.
func InferRegionLevel(area string) RegionLevel {
	normalized := strings.ToLower(strings.TrimSpace(area))
	if normalized == "" {
		return LevelUnknown
	}

	if _, ok := stateNames[normalized]; ok {
		return LevelState
	}
	if _, ok := stateCodes[normalized]; ok {
		return LevelState
	}

	if hasDirectionWord(normalized) && mentionsState(normalized) {
		return LevelRegion
	}
	if strings.Contains(normalized, "county") {
		return LevelCounty
	}
	if trailingStateToken(normalized) != "" {
		return LevelLocality
	}
	return LevelUnknown
}

// RadiusFor returns the search radius in meters for a granularity.
func RadiusFor(level RegionLevel) int {
	if r, ok := radiusByLevel[level]; ok {
		return r
	}
	return radiusByLevel[LevelUnknown]
}

// CorrectLevel reconciles the heuristic level with the administrative types
// the geocoder reported. Authoritative data wins on disagreement.
func CorrectLevel(inferred RegionLevel, geocodeTypes []string) RegionLevel {
	for _, t := range geocodeTypes {
		switch t {
		case "administrative_area_level_1":
			return LevelState
		case "administrative_area_level_2":
			return LevelCounty
		case "locality", "postal_town", "sublocality", "neighborhood":
			return LevelLocality
		}
	}
	return inferred
}

// StateCodeFrom extracts a trailing two-letter state code or full state name
// from an area string, for post-hoc filtering of broad search results.
func StateCodeFrom(area string) string {
	normalized := strings.ToLower(strings.TrimSpace(area))
	if normalized == "" {
		return ""
	}
	if code, ok := stateNames[normalized]; ok {
		return code
	}
	return trailingStateToken(normalized)
}

func hasDirectionWord(area string) bool {
	for _, token := range strings.Fields(area) {
		for _, dir := range directionWords {
			if token == dir {
				return true
			}
		}
	}
	return false
}

func mentionsState(area string) bool {
	for name := range stateNames {
		if strings.Contains(area, name) {
			return true
		}
	}
	return trailingStateToken(area) != ""
}

// trailingStateToken returns the postal code when the area ends in a state
// abbreviation or full state name, "" otherwise.
func trailingStateToken(area string) string {
	area = strings.TrimRight(area, ". ")
	for name, code := range stateNames {
		if strings.HasSuffix(area, name) {
			return code
		}
	}
	fields := strings.Fields(strings.ReplaceAll(area, ",", " "))
	if len(fields) < 2 {
		return ""
	}
	last := strings.ToUpper(fields[len(fields)-1])
	if len(last) == 2 {
		if _, ok := stateCodes[strings.ToLower(last)]; ok {
			return last
		}
	}
	return ""
}
