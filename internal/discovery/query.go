package discovery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/search"
)

const opBuildQueries = "discovery.build_queries"

// QueryStrategy selects how the live search payload is shaped.
type QueryStrategy string

const (
	// QuerySingle assembles one query string for the whole request.
	QuerySingle QueryStrategy = "single"
	// QueryFanout issues one query per known program sub-page in a single batch.
	QueryFanout QueryStrategy = "fanout"
)

func ParseQueryStrategy(s string) (QueryStrategy, error) {
	switch QueryStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", QuerySingle:
		return QuerySingle, nil
	case QueryFanout:
		return QueryFanout, nil
	}
	return "", domain.ConfigurationError(opBuildQueries, fmt.Sprintf("unknown query strategy %q", s))
}

// QueryBuilder turns a profile and filters into the search payload.
type QueryBuilder struct {
	Strategy QueryStrategy
	// Domains feed the site: clause of the single-query design.
	Domains []string
	// SubPages are the program pages targeted by the fan-out design.
	SubPages []string
}

// NewQueryBuilder uses DefaultSearchDomains when domains is nil. An empty
// list drops the site: clause.
func NewQueryBuilder(strategy QueryStrategy, domains []string) QueryBuilder {
	if domains == nil {
		domains = DefaultSearchDomains
	}
	return QueryBuilder{
		Strategy: strategy,
		Domains:  domains,
		SubPages: ProgramSubPages,
	}
}

// Build returns the query payload for one discovery request. It fails with a
// configuration error when the profile has no legal name.
func (b QueryBuilder) Build(profile model.OrganizationProfile, filters *model.SearchFilters, resultCap int) (search.Query, error) {
	legalName := strings.TrimSpace(profile.LegalName)
	if legalName == "" {
		return search.Query{}, domain.ConfigurationError(opBuildQueries, "organization legal name is required to build search queries")
	}

	if b.Strategy == QueryFanout {
		if queries := b.fanout(legalName, profile, filters, resultCap); len(queries) > 0 {
			return search.Batch(queries), nil
		}
	}
	return search.Single(b.single(legalName, profile, filters)), nil
}

func (b QueryBuilder) single(legalName string, profile model.OrganizationProfile, filters *model.SearchFilters) string {
	parts := []string{
		quote(model.DefaultSponsor) + " funding program for nonprofits",
		siteClause(b.Domains),
		quote(legalName) + " nonprofit",
	}
	if code := strings.TrimSpace(profile.NAICSCode); code != "" {
		parts = append(parts, "NAICS "+code)
	}
	if province := targetProvince(profile, filters); province != "" {
		parts = append(parts, quote(province))
	}
	if tags := profile.UniqueSectorTags(); len(tags) > 0 {
		parts = append(parts, strings.Join(tags, " "))
	}
	if filters != nil && filters.MinAmount != nil {
		parts = append(parts, "minimum funding "+strconv.FormatInt(*filters.MinAmount, 10)+" "+model.DefaultCurrency)
	}
	if filters != nil && filters.DeadlineBefore != nil {
		parts = append(parts, "currently open funding "+strconv.Itoa(filters.DeadlineBefore.Year))
	}
	return joinNonEmpty(parts)
}

func (b QueryBuilder) fanout(legalName string, profile model.OrganizationProfile, filters *model.SearchFilters, resultCap int) []string {
	limit := max(resultCap, 1)

	variants := make([]string, len(HowToApplyVariants))
	for i, v := range HowToApplyVariants {
		variants[i] = quote(v)
	}
	applyClause := "(" + strings.Join(variants, " OR ") + ")"

	province := targetProvince(profile, filters)
	tags := strings.Join(profile.UniqueSectorTags(), " ")

	queries := make([]string, 0, min(limit, len(b.SubPages)))
	for _, page := range b.SubPages {
		if len(queries) == limit {
			break
		}
		parts := []string{"site:" + page, applyClause, quote(legalName)}
		if province != "" {
			parts = append(parts, quote(province))
		}
		parts = append(parts, tags)
		queries = append(queries, joinNonEmpty(parts))
	}
	return queries
}

// targetProvince prefers the organization's address over the filter and
// returns the display name so the search engine sees natural text.
func targetProvince(profile model.OrganizationProfile, filters *model.SearchFilters) string {
	if p := strings.TrimSpace(profile.Province()); p != "" {
		return ProvinceName(p)
	}
	if filters != nil && strings.TrimSpace(filters.Province) != "" {
		return ProvinceName(filters.Province)
	}
	return ""
}

func siteClause(domains []string) string {
	sites := make([]string, 0, len(domains))
	for _, d := range domains {
		if d = strings.TrimSpace(d); d != "" {
			sites = append(sites, "site:"+d)
		}
	}
	return strings.Join(sites, " OR ")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "") + `"`
}

func joinNonEmpty(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
