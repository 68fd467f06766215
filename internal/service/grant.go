package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/internal/discovery"
	"github.com/WanderingWalnut/Grantly/internal/model"
)

// SearchResult is the envelope returned for a discovery request.
type SearchResult struct {
	Mode        discovery.Mode `json:"mode"`
	Count       int            `json:"count"`
	Results     []model.Grant  `json:"results"`
	GeneratedAt time.Time      `json:"generated_at"`
}

type GrantService interface {
	Search(ctx context.Context, profile model.OrganizationProfile, filters *model.SearchFilters) (*SearchResult, error)
}

type grantService struct {
	finder discovery.Finder
	now    func() time.Time
}

func NewGrantService(finder discovery.Finder, now func() time.Time) GrantService {
	if now == nil {
		now = time.Now
	}
	return &grantService{finder: finder, now: now}
}

func (s *grantService) Search(ctx context.Context, profile model.OrganizationProfile, filters *model.SearchFilters) (*SearchResult, error) {
	mode := string(s.finder.Mode())
	ctx = logger.WithLogFields(ctx, logger.LogFields{Mode: &mode, Component: "grantly.service.grants"})

	profile, err := validateProfile(profile)
	if err != nil {
		return nil, err
	}

	grants, err := s.finder.Find(ctx, profile, filters)
	if err != nil {
		slog.WarnContext(ctx, "grant search failed", "error", err)
		return nil, err
	}
	if grants == nil {
		grants = []model.Grant{}
	}

	slog.InfoContext(ctx, "grant search completed", "count", len(grants))

	return &SearchResult{
		Mode:        s.finder.Mode(),
		Count:       len(grants),
		Results:     grants,
		GeneratedAt: s.now().UTC(),
	}, nil
}
