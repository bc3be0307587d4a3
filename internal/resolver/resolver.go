package resolver

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/octobees/visibility-score/internal/cache"
	"github.com/octobees/visibility-score/internal/places"
)

const (
	// maxEnrich bounds how many candidates get a details call per request.
	maxEnrich = 5
	// enrichConcurrency bounds in-flight details calls to respect upstream
	// rate limits while still cutting wall-clock latency.
	enrichConcurrency = 2
)

// Input is a resolution request. At least one of BusinessName or PlaceID
// must be present.
type Input struct {
	BusinessName string
	ServiceArea  string
	BusinessType string
	WebsiteURL   string
	PlaceID      string
	SkipCache    bool
}

// Resolution is the outcome of place resolution. A nil Place with NoMatch
// set means every query variant and fallback stage came up empty.
type Resolution struct {
	Place      *places.Details
	Candidates []places.Candidate
	Ambiguous  bool
	NoMatch    bool
	Level      RegionLevel
	Center     *places.LatLng
	Suggestion string
}

// Resolver turns a free-text business description into a directory entry.
type Resolver struct {
	directory Directory
	details   *cache.TTL[*places.Details]
}

// New builds a resolver around a directory client and a shared details cache.
func New(directory Directory, details *cache.TTL[*places.Details]) *Resolver {
	return &Resolver{directory: directory, details: details}
}

// Resolve runs the full pipeline: geocode the area, search candidates across
// query variants with fallbacks, enrich the top results, disambiguate.
func (r *Resolver) Resolve(ctx context.Context, in Input) (*Resolution, error) {
	if in.PlaceID != "" {
		d, err := r.placeDetails(ctx, in.PlaceID, in.SkipCache)
		if err != nil {
			return nil, fmt.Errorf("resolve place %s: %w", in.PlaceID, err)
		}
		loc := d.Location
		return &Resolution{Place: d, Center: &loc}, nil
	}

	if strings.TrimSpace(in.BusinessName) == "" {
		return &Resolution{NoMatch: true, Suggestion: "provide a business name or a place identifier"}, nil
	}

	level := InferRegionLevel(in.ServiceArea)
	bias, center := r.locationBias(ctx, in.ServiceArea, &level)
	stateCode := StateCodeFrom(in.ServiceArea)

	var candidates []places.Candidate
	var err error
	for _, query := range queryVariants(in.BusinessName, in.ServiceArea, in.BusinessType) {
		candidates, err = r.searchCandidates(ctx, query, bias, stateCode)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			break
		}
	}

	if len(candidates) == 0 {
		return &Resolution{
			NoMatch:    true,
			Level:      level,
			Center:     center,
			Suggestion: refinementHint(level),
		}, nil
	}

	enriched := r.enrich(ctx, candidates, in.SkipCache)
	decision := Disambiguate(enriched, in.BusinessName, in.WebsiteURL)

	res := &Resolution{
		Candidates: decision.Ranked,
		Ambiguous:  decision.Ambiguous,
		Level:      level,
		Center:     center,
	}
	if decision.Selected != nil {
		d, err := r.placeDetails(ctx, decision.Selected.PlaceID, in.SkipCache)
		if err != nil {
			return nil, fmt.Errorf("details for selected candidate: %w", err)
		}
		res.Place = d
	}
	return res, nil
}

// locationBias issues at most one geocoding call per request. Failure only
// disables biasing, never aborts resolution.
func (r *Resolver) locationBias(ctx context.Context, area string, level *RegionLevel) (*places.Circle, *places.LatLng) {
	if strings.TrimSpace(area) == "" {
		return nil, nil
	}

	geo, err := r.directory.Geocode(ctx, area)
	if err != nil {
		log.Printf("resolver: geocode failed for %q: %v", area, err)
		return nil, nil
	}
	if geo == nil {
		return nil, nil
	}

	*level = CorrectLevel(*level, geo.Types)
	center := geo.Location
	return &places.Circle{Center: center, Radius: RadiusFor(*level)}, &center
}

// enrich fetches details for the top candidates through the cache with
// bounded concurrency, merging rating, review and website data back onto the
// candidate list. A failed details call keeps the bare search result.
func (r *Resolver) enrich(ctx context.Context, candidates []places.Candidate, skipCache bool) []places.Candidate {
	n := len(candidates)
	if n > maxEnrich {
		n = maxEnrich
	}

	enriched := make([]places.Candidate, n)
	copy(enriched, candidates[:n])

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range enriched {
		g.Go(func() error {
			d, err := r.placeDetails(gctx, enriched[i].PlaceID, skipCache)
			if err != nil {
				log.Printf("resolver: enrich %s failed: %v", enriched[i].PlaceID, err)
				return nil
			}
			if d.Name != "" {
				enriched[i].Name = d.Name
			}
			if d.FormattedAddress != "" {
				enriched[i].FormattedAddress = d.FormattedAddress
			}
			enriched[i].Rating = d.Rating
			enriched[i].UserRatingsTotal = d.UserRatingsTotal
			enriched[i].Website = d.Website
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers only log

	return enriched
}

// placeDetails reads through the shared TTL cache.
func (r *Resolver) placeDetails(ctx context.Context, placeID string, skipCache bool) (*places.Details, error) {
	if !skipCache {
		if d, ok := r.details.Get(placeID); ok {
			return d, nil
		}
	}
	d, err := r.directory.Details(ctx, placeID)
	if err != nil {
		return nil, err
	}
	r.details.Set(placeID, d)
	return d, nil
}

// refinementHint suggests how a caller could narrow a no-match search.
func refinementHint(level RegionLevel) string {
	switch level {
	case LevelState, LevelRegion:
		return "try narrowing the service area to a city, e.g. \"Newark, NJ\""
	case LevelUnknown:
		return "add a service area such as \"<city>, <state>\""
	default:
		return "check the business name spelling or supply the website"
	}
}
