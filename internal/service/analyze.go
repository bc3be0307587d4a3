package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/octobees/visibility-score/internal/adscrape"
	"github.com/octobees/visibility-score/internal/dto"
	"github.com/octobees/visibility-score/internal/entity"
	"github.com/octobees/visibility-score/internal/llm"
	"github.com/octobees/visibility-score/internal/places"
	"github.com/octobees/visibility-score/internal/probe"
	"github.com/octobees/visibility-score/internal/repository"
	"github.com/octobees/visibility-score/internal/resolver"
	"github.com/octobees/visibility-score/internal/score"
	"github.com/octobees/visibility-score/internal/signals"
)

// Outcome statuses carried in every analyze response.
const (
	StatusOK              = "OK"
	StatusNoMatch         = "NO_MATCH"
	StatusAmbiguous       = "AMBIGUOUS"
	StatusNeedsInput      = "NEEDS_INPUT"
	StatusUpstreamQuota   = "UPSTREAM_QUOTA"
	StatusUpstreamFailure = "UPSTREAM_FAILURE"
)

// PlaceResolver narrows resolver.Resolver for substitution in tests.
type PlaceResolver interface {
	Resolve(ctx context.Context, in resolver.Input) (*resolver.Resolution, error)
}

// SiteProber narrows probe.Prober for substitution in tests.
type SiteProber interface {
	Check(ctx context.Context, rawURL string) probe.Result
}

// QualitativeScorer produces optional model-estimated sub-scores.
type QualitativeScorer interface {
	Assess(ctx context.Context, homepageHTML string) (llm.Assessment, error)
}

// AnalyzeService runs the full pipeline: resolve, probe, extract, score.
type AnalyzeService struct {
	resolver PlaceResolver
	prober   SiteProber
	pages    PageFetcher
	rubric   signals.Rubric
	weights  score.Weights

	// Optional collaborators. Any of these may be nil; their failures are
	// absorbed and never fail a request.
	quali   QualitativeScorer
	ads     adscrape.SnippetFetcher
	history repository.AnalysesRepository

	mapsEmbedKey string
}

// AnalyzeOption configures optional collaborators.
type AnalyzeOption func(*AnalyzeService)

func WithQualitativeScorer(q QualitativeScorer) AnalyzeOption {
	return func(s *AnalyzeService) { s.quali = q }
}

func WithAdSnippets(f adscrape.SnippetFetcher) AnalyzeOption {
	return func(s *AnalyzeService) { s.ads = f }
}

func WithHistory(h repository.AnalysesRepository) AnalyzeOption {
	return func(s *AnalyzeService) { s.history = h }
}

func WithMapsEmbedKey(key string) AnalyzeOption {
	return func(s *AnalyzeService) { s.mapsEmbedKey = key }
}

// NewAnalyzeService wires the mandatory pipeline stages.
func NewAnalyzeService(res PlaceResolver, prober SiteProber, pages PageFetcher, opts ...AnalyzeOption) *AnalyzeService {
	s := &AnalyzeService{
		resolver: res,
		prober:   prober,
		pages:    pages,
		rubric:   signals.DefaultRubric(),
		weights:  score.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs one end-to-end analysis. The returned response always
// carries a status from the taxonomy above; the error is reserved for
// conditions with no meaningful structured answer.
func (s *AnalyzeService) Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.ServiceArea = strings.TrimSpace(req.ServiceArea)
	req.WebsiteURL = strings.TrimSpace(req.WebsiteURL)
	req.PlaceID = strings.TrimSpace(req.PlaceID)

	if msg := validateRequest(req); msg != "" {
		return &dto.AnalyzeResponse{
			Success: false,
			Status:  StatusNeedsInput,
			Message: msg,
		}, nil
	}

	res, resolveStatus := s.resolvePlace(ctx, req)
	if resolveStatus == StatusUpstreamQuota || resolveStatus == StatusUpstreamFailure {
		return &dto.AnalyzeResponse{
			Success: false,
			Status:  resolveStatus,
			Message: "directory lookup failed, try again shortly",
		}, nil
	}

	var place *places.Details
	var candidates []places.Candidate
	if res != nil {
		place = res.Place
		candidates = res.Candidates
	}

	if res != nil && res.Ambiguous && !req.SiteOnly {
		return &dto.AnalyzeResponse{
			Success:    true,
			Status:     StatusAmbiguous,
			Candidates: candidateSummaries(candidates),
			Message:    "several listings match; pick one and retry with its placeId",
		}, nil
	}

	website := req.WebsiteURL
	if website == "" && place != nil {
		website = place.Website
	}

	var probeRes probe.Result
	if website != "" {
		probeRes = s.prober.Check(ctx, website)
	}

	// Fast mode skips site extraction, but only when a profile-only answer
	// exists; otherwise the site is the only signal and must be fetched.
	fast := req.Fast && !req.SiteOnly && place != nil

	// The extractor needs the homepage body; a HEAD that succeeded but a
	// GET that fails downgrades the site to unreachable.
	var homepage string
	if probeRes.Reachable && !fast {
		page, err := s.pages.Fetch(ctx, probeRes.URL)
		if err != nil {
			log.Printf("analyze: homepage fetch failed url=%s err=%v", probeRes.URL, err)
			probeRes.Reachable = false
		} else {
			homepage = page
		}
	}

	path := score.DecidePath(place != nil, homepage != "", req.SiteOnly)

	if path == score.PathNeedsInput {
		if res != nil && res.NoMatch && website == "" {
			return &dto.AnalyzeResponse{
				Success: false,
				Status:  StatusNoMatch,
				Message: noMatchMessage(res),
			}, nil
		}
		return &dto.AnalyzeResponse{
			Success: false,
			Status:  StatusNeedsInput,
			Message: "no resolvable listing and no reachable website; supply more input",
		}, nil
	}

	return s.assemble(ctx, req, path, place, candidates, probeRes, homepage, website)
}

// assemble computes scores for a decided path and merges the optional
// enrichments into the response contract.
func (s *AnalyzeService) assemble(
	ctx context.Context,
	req dto.AnalyzeRequest,
	path score.Path,
	place *places.Details,
	candidates []places.Candidate,
	probeRes probe.Result,
	homepage, website string,
) (*dto.AnalyzeResponse, error) {
	sig := &dto.Signals{}

	gbpScore := 0
	if place != nil {
		var breakdown score.GBPBreakdown
		gbpScore, breakdown = score.GBPScore(score.GBPInputs{
			Rating:      place.Rating,
			ReviewCount: place.UserRatingsTotal,
			Categories:  place.Categories,
			Trade:       req.BusinessType,
			HasPhotos:   place.HasPhotos,
			HasHours:    place.HasHours,
		}, s.weights)
		sig.GBP = &dto.GBPSignals{
			Score:         gbpScore,
			RatingQuality: breakdown.RatingNorm,
			ReviewVolume:  breakdown.ReviewVolumeNorm,
			CategoryMatch: breakdown.CategoryNorm,
			Photos:        breakdown.PhotosNorm,
			Hours:         breakdown.HoursNorm,
		}
	}

	siteScore := 0
	if homepage != "" {
		facts := signals.ProfileFacts{}
		if place != nil {
			facts.Phone = place.Phone
			facts.HasHours = place.HasHours
		}
		extraction, err := signals.Extract(homepage, facts, s.rubric)
		if err != nil {
			log.Printf("analyze: signal extraction failed url=%s err=%v", probeRes.URL, err)
		} else {
			siteScore = score.SiteScore(extraction.SEO, extraction.CTA, s.weights)
			sig.Site = &dto.SiteSignals{
				Score:     siteScore,
				SEO:       extraction.SEO,
				CTA:       extraction.CTA,
				Reachable: probeRes.Reachable,
				HTTPS:     probeRes.HTTPS,
				Breakdown: extraction.Breakdown,
			}
		}
	} else if probeRes.Reachable {
		sig.Site = &dto.SiteSignals{
			Reachable: probeRes.Reachable,
			HTTPS:     probeRes.HTTPS,
		}
	}

	final, err := score.Final(path, gbpScore, siteScore, s.weights)
	if err != nil {
		return nil, fmt.Errorf("compute final score: %w", err)
	}

	if !req.Fast {
		s.enrichOptional(ctx, sig, homepage, website)
	}

	resp := &dto.AnalyzeResponse{
		Success:    true,
		Status:     StatusOK,
		Path:       string(path),
		FinalScore: &final,
		Signals:    sig,
		Rationale:  score.Rationale(path, gbpScore, siteScore, s.weights),
	}
	if place != nil {
		resp.Place = &dto.PlaceSummary{
			Name:             place.Name,
			Address:          place.FormattedAddress,
			Website:          place.Website,
			Rating:           place.Rating,
			UserRatingsTotal: place.UserRatingsTotal,
			OpenNow:          place.OpenNow,
		}
		resp.MapEmbedURL = s.mapEmbedURL(place.PlaceID)
	}
	if len(candidates) > 1 {
		resp.Candidates = candidateSummaries(candidates)
	}

	s.recordHistory(ctx, req, path, place, sig, final, website)

	return resp, nil
}

// resolvePlace runs resolution and maps failures to statuses. When the
// caller forces site-only scoring the directory is a nice-to-have, so its
// failures are absorbed instead of surfaced.
func (s *AnalyzeService) resolvePlace(ctx context.Context, req dto.AnalyzeRequest) (*resolver.Resolution, string) {
	res, err := s.resolver.Resolve(ctx, resolver.Input{
		BusinessName: req.BusinessName,
		ServiceArea:  req.ServiceArea,
		BusinessType: req.BusinessType,
		WebsiteURL:   req.WebsiteURL,
		PlaceID:      req.PlaceID,
		SkipCache:    req.SkipCache,
	})
	if err != nil {
		if req.SiteOnly {
			log.Printf("analyze: resolution failed in site-only mode err=%v", err)
			return nil, ""
		}
		if errors.Is(err, places.ErrQuota) {
			return nil, StatusUpstreamQuota
		}
		return nil, StatusUpstreamFailure
	}
	return res, ""
}

// enrichOptional attaches the LLM assessment and ad snippets. Every failure
// here is logged and dropped.
func (s *AnalyzeService) enrichOptional(ctx context.Context, sig *dto.Signals, homepage, website string) {
	if s.quali != nil && homepage != "" {
		assessment, err := s.quali.Assess(ctx, homepage)
		if err != nil {
			log.Printf("analyze: qualitative scoring failed err=%v", err)
		} else if !assessment.Empty() {
			sig.Qualitative = &dto.QualitativeSignals{
				PainPointResonance: assessment.PainPointResonance,
				CTAWording:         assessment.CTAWording,
				OnPageSEO:          assessment.OnPageSEO,
			}
		}
	}

	if s.ads != nil && website != "" {
		if host := websiteHost(website); host != "" {
			snippets, err := s.ads.FetchSnippets(ctx, host)
			if err != nil {
				log.Printf("analyze: ad snippet fetch failed domain=%s err=%v", host, err)
			} else {
				sig.AdSnippets = snippets
			}
		}
	}
}

func (s *AnalyzeService) recordHistory(ctx context.Context, req dto.AnalyzeRequest, path score.Path, place *places.Details, sig *dto.Signals, final int, website string) {
	if s.history == nil {
		return
	}

	record := &entity.Analysis{
		BusinessName: req.BusinessName,
		Path:         string(path),
		FinalScore:   final,
	}
	if record.BusinessName == "" && place != nil {
		record.BusinessName = place.Name
	}
	if place != nil {
		record.PlaceID = &place.PlaceID
	}
	if req.ServiceArea != "" {
		record.ServiceArea = &req.ServiceArea
	}
	if website != "" {
		record.Website = &website
	}
	if sig.GBP != nil {
		record.GBPScore = &sig.GBP.Score
	}
	if sig.Site != nil && sig.Site.Score > 0 {
		record.SiteScore = &sig.Site.Score
	}

	if err := s.history.Record(ctx, record); err != nil {
		log.Printf("analyze: history record failed err=%v", err)
	}
}

func (s *AnalyzeService) mapEmbedURL(placeID string) string {
	if s.mapsEmbedKey == "" || placeID == "" {
		return ""
	}
	return "https://www.google.com/maps/embed/v1/place?key=" + url.QueryEscape(s.mapsEmbedKey) +
		"&q=place_id:" + url.QueryEscape(placeID)
}

func validateRequest(req dto.AnalyzeRequest) string {
	if req.BusinessName == "" && req.PlaceID == "" {
		return "businessName or placeId is required"
	}
	if req.PlaceID == "" && req.ServiceArea == "" && !req.SiteOnly {
		return "serviceArea is required unless placeId is supplied"
	}
	return ""
}

func candidateSummaries(candidates []places.Candidate) []dto.CandidateSummary {
	out := make([]dto.CandidateSummary, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, dto.CandidateSummary{
			Name:    c.Name,
			Address: c.FormattedAddress,
			PlaceID: c.PlaceID,
		})
	}
	return out
}

func noMatchMessage(res *resolver.Resolution) string {
	if res.Suggestion != "" {
		return "no listing matched; " + res.Suggestion
	}
	return "no listing matched the given name and area"
}

func websiteHost(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
