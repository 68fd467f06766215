package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/locator"
	"github.com/WanderingWalnut/Grantly/internal/model"
)

const opLocateLink = "application_link.locate"

type ApplicationLink struct {
	GrantURL string `json:"grant_url"`
	PDFLink  string `json:"pdf_link"`
	Cached   bool   `json:"cached"`
}

type ApplicationLinkService interface {
	Locate(ctx context.Context, grantURL string) (*ApplicationLink, error)
}

type applicationLinkService struct {
	locator locator.Locator
	cache   locator.LinkCache
}

func NewApplicationLinkService(loc locator.Locator, cache locator.LinkCache) ApplicationLinkService {
	if cache == nil {
		cache = locator.NoopCache()
	}
	return &applicationLinkService{locator: loc, cache: cache}
}

// Locate returns the application PDF link for a grant page. Cache failures
// are logged and treated as misses.
func (s *applicationLinkService) Locate(ctx context.Context, grantURL string) (*ApplicationLink, error) {
	grantURL = strings.TrimSpace(grantURL)
	if !model.IsAbsoluteURL(grantURL) {
		return nil, domain.ValidationError(opLocateLink, "grant_url must be an absolute http(s) url")
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{GrantURL: &grantURL, Component: "grantly.service.application_link"})

	link, ok, err := s.cache.Get(ctx, grantURL)
	if err != nil {
		slog.WarnContext(ctx, "link cache lookup failed", "error", err)
	}
	if ok {
		slog.DebugContext(ctx, "application link served from cache", "pdf_link", link)
		return &ApplicationLink{GrantURL: grantURL, PDFLink: link, Cached: true}, nil
	}

	link, err = s.locator.Locate(ctx, grantURL)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, grantURL, link); err != nil {
		slog.WarnContext(ctx, "link cache store failed", "error", err)
	}

	slog.InfoContext(ctx, "application link located", "pdf_link", link)
	return &ApplicationLink{GrantURL: grantURL, PDFLink: link}, nil
}
