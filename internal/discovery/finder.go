package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/search"
)

const (
	opNewFinder       = "discovery.new_finder"
	opValidateFilters = "discovery.validate_filters"

	DefaultMaxTokensPerPage = 1024
)

// Mode selects where grants come from. It is fixed when the Finder is built.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// ParseMode parses a mode name case-insensitively; empty means ModeMock.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeMock:
		return ModeMock, nil
	case ModeLive:
		return ModeLive, nil
	}
	return "", domain.ConfigurationError(opNewFinder, fmt.Sprintf("unknown grant finder mode %q", s))
}

type Config struct {
	Mode             Mode
	DatasetPath      string
	QueryStrategy    QueryStrategy
	// SearchDomains restrict the provider search. nil means
	// DefaultSearchDomains; an empty list sends no domain filter.
	SearchDomains []string
	// TrustedDomains skip the activity and audience gates. nil means
	// DefaultSearchDomains.
	TrustedDomains []string
	// AllowedDomains is the relevance allow-list. nil follows SearchDomains;
	// an empty list lets the domain gate fall back to the country TLD and
	// jurisdiction hints.
	AllowedDomains   []string
	MaxTokensPerPage int
}

// Finder discovers grants for an organization.
type Finder interface {
	Mode() Mode
	Find(ctx context.Context, profile model.OrganizationProfile, filters *model.SearchFilters) ([]model.Grant, error)
}

// NewFinder dispatches on cfg.Mode. Live mode requires client; mock mode
// ignores it.
func NewFinder(cfg Config, client search.Client) (Finder, error) {
	switch cfg.Mode {
	case ModeMock, "":
		return &mockFinder{dataset: NewDataset(cfg.DatasetPath)}, nil
	case ModeLive:
		if client == nil {
			return nil, domain.ConfigurationError(opNewFinder, "live mode requires a search client")
		}
		domains := cfg.SearchDomains
		if domains == nil {
			domains = DefaultSearchDomains
		}
		trusted := cfg.TrustedDomains
		if trusted == nil {
			trusted = DefaultSearchDomains
		}
		allowed := cfg.AllowedDomains
		if allowed == nil {
			allowed = domains
		}
		tokens := cfg.MaxTokensPerPage
		if tokens <= 0 {
			tokens = DefaultMaxTokensPerPage
		}
		return &liveFinder{
			client:           client,
			builder:          NewQueryBuilder(cfg.QueryStrategy, domains),
			normalizer:       Normalizer{Filter: NewRelevanceFilter(allowed, trusted)},
			domains:          domains,
			maxTokensPerPage: tokens,
		}, nil
	}
	return nil, domain.ConfigurationError(opNewFinder, fmt.Sprintf("unknown grant finder mode %q", cfg.Mode))
}

// ValidateFilters rejects out-of-range caps and negative amounts before any
// work is done.
func ValidateFilters(filters *model.SearchFilters) error {
	if filters == nil {
		return nil
	}
	if filters.MaxResults != nil {
		n := *filters.MaxResults
		if n < model.MinMaxResults || n > model.MaxMaxResults {
			return domain.ValidationError(opValidateFilters,
				fmt.Sprintf("max_results must be between %d and %d, got %d", model.MinMaxResults, model.MaxMaxResults, n))
		}
	}
	if filters.MinAmount != nil && *filters.MinAmount < 0 {
		return domain.ValidationError(opValidateFilters, "min_amount must not be negative")
	}
	return nil
}

type mockFinder struct {
	dataset *Dataset
}

func (f *mockFinder) Mode() Mode {
	return ModeMock
}

func (f *mockFinder) Find(ctx context.Context, profile model.OrganizationProfile, filters *model.SearchFilters) ([]model.Grant, error) {
	if err := ValidateFilters(filters); err != nil {
		return nil, err
	}

	grants, err := f.dataset.Grants()
	if err != nil {
		return nil, err
	}

	out := Truncate(PostFilter(grants, filters), filters.ResultCap())

	slog.DebugContext(ctx, "mock discovery completed",
		"dataset", f.dataset.Path(),
		"available", len(grants),
		"returned", len(out))

	return out, nil
}

type liveFinder struct {
	client           search.Client
	builder          QueryBuilder
	normalizer       Normalizer
	domains          []string
	maxTokensPerPage int
}

func (f *liveFinder) Mode() Mode {
	return ModeLive
}

func (f *liveFinder) Find(ctx context.Context, profile model.OrganizationProfile, filters *model.SearchFilters) ([]model.Grant, error) {
	if err := ValidateFilters(filters); err != nil {
		return nil, err
	}

	resultCap := filters.ResultCap()
	query, err := f.builder.Build(profile, filters, resultCap)
	if err != nil {
		return nil, err
	}

	sp := logger.StartSpan(ctx, "discovery.live_search")
	defer sp.End()
	ctx = sp.Context()
	sp.SetAttributes(
		attribute.Int("search.query_count", len(query.Strings())),
		attribute.Bool("search.batched", query.IsBatch()),
		attribute.Int("search.max_results", resultCap),
	)

	start := time.Now()
	raw, err := f.client.Search(ctx, search.Request{
		Query:            query,
		MaxResults:       resultCap,
		DomainFilter:     f.domains,
		MaxTokensPerPage: f.maxTokensPerPage,
	})
	if err != nil {
		sp.Fail(err)
		slog.WarnContext(ctx, "live search failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	grants, err := f.normalizer.Normalize(raw)
	if err != nil {
		sp.Fail(err)
		return nil, err
	}

	out := Truncate(PostFilter(grants, filters), resultCap)
	sp.SetAttributes(attribute.Int("search.returned", len(out)))

	slog.InfoContext(ctx, "live discovery completed",
		"queries", len(query.Strings()),
		"relevant", len(grants),
		"returned", len(out),
		"duration_ms", time.Since(start).Milliseconds())

	return out, nil
}
