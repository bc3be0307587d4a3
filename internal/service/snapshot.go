package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/octobees/visibility-score/internal/dto"
	"github.com/octobees/visibility-score/internal/places"
	"github.com/octobees/visibility-score/internal/resolver"
)

const (
	snapshotRadius  = 5000
	defaultSnapshot = 5
	maxSnapshot     = 10
)

// SnapshotDirectory is the directory surface the snapshot needs.
type SnapshotDirectory interface {
	Details(ctx context.Context, placeID string) (*places.Details, error)
	NearbySearch(ctx context.Context, center places.LatLng, radius int, keyword string) ([]places.Candidate, error)
}

// SnapshotService ranks nearby same-trade businesses around a known place.
type SnapshotService struct {
	directory SnapshotDirectory
}

func NewSnapshotService(directory SnapshotDirectory) *SnapshotService {
	return &SnapshotService{directory: directory}
}

// Snapshot resolves the subject place and returns its nearby competitors
// ranked by directory-profile strength, strongest first.
func (s *SnapshotService) Snapshot(ctx context.Context, req dto.SnapshotRequest) (*dto.SnapshotResponse, error) {
	if strings.TrimSpace(req.PlaceID) == "" {
		return nil, fmt.Errorf("placeId is required")
	}

	subject, err := s.directory.Details(ctx, req.PlaceID)
	if err != nil {
		return nil, fmt.Errorf("resolve subject place: %w", err)
	}

	keyword := strings.TrimSpace(req.BusinessType)
	if keyword == "" && len(subject.Categories) > 0 {
		keyword = strings.ReplaceAll(subject.Categories[0], "_", " ")
	}

	nearby, err := s.directory.NearbySearch(ctx, subject.Location, snapshotRadius, keyword)
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSnapshot
	}
	if limit > maxSnapshot {
		limit = maxSnapshot
	}

	competitors := make([]dto.Competitor, 0, len(nearby))
	for _, c := range nearby {
		if c.PlaceID == subject.PlaceID {
			continue
		}
		competitors = append(competitors, dto.Competitor{
			PlaceID:          c.PlaceID,
			Name:             c.Name,
			Address:          c.FormattedAddress,
			Rating:           c.Rating,
			UserRatingsTotal: c.UserRatingsTotal,
			Strength:         resolver.Strength(c),
		})
	}

	sort.SliceStable(competitors, func(i, j int) bool {
		if competitors[i].Strength != competitors[j].Strength {
			return competitors[i].Strength > competitors[j].Strength
		}
		return competitors[i].PlaceID < competitors[j].PlaceID
	})
	if len(competitors) > limit {
		competitors = competitors[:limit]
	}

	return &dto.SnapshotResponse{
		Success: true,
		Place: &dto.PlaceSummary{
			Name:             subject.Name,
			Address:          subject.FormattedAddress,
			Website:          subject.Website,
			Rating:           subject.Rating,
			UserRatingsTotal: subject.UserRatingsTotal,
			OpenNow:          subject.OpenNow,
		},
		Competitors: competitors,
	}, nil
}
