package model

import (
	"net/url"
	"slices"
)

const (
	DefaultGrantTitle = "Unnamed Program"
	DefaultCurrency   = "CAD"
	DefaultSponsor    = "Government of Canada"
	RegionNational    = "National"
)

// Grant is a government funding program normalized into the service schema.
// AmountMin and AmountMax are taken as-is from the source; no ordering
// between them is enforced.
type Grant struct {
	Title           string   `json:"title"`
	Link            string   `json:"link"`
	Summary         *string  `json:"summary"`
	Eligibility     *string  `json:"eligibility"`
	Deadline        *Date    `json:"deadline"`
	AmountMin       *int64   `json:"amount_min"`
	AmountMax       *int64   `json:"amount_max"`
	Currency        string   `json:"currency"`
	Sponsor         string   `json:"sponsor"`
	Program         string   `json:"program,omitempty"`
	Region          string   `json:"region,omitempty"`
	Tags            []string `json:"tags"`
	SourceCitations []string `json:"source_citations"`
}

// ApplyDefaults fills the fields that have a schema default when the source
// left them empty.
func (g *Grant) ApplyDefaults() {
	if g.Title == "" {
		g.Title = DefaultGrantTitle
	}
	if g.Currency == "" {
		g.Currency = DefaultCurrency
	}
	if g.Sponsor == "" {
		g.Sponsor = DefaultSponsor
	}
	if g.Tags == nil {
		g.Tags = []string{}
	}
	if len(g.SourceCitations) == 0 && g.Link != "" {
		g.SourceCitations = []string{g.Link}
	}
}

// Clone returns a copy that shares no slices or pointers with g.
func (g Grant) Clone() Grant {
	out := g
	out.Summary = clonePtr(g.Summary)
	out.Eligibility = clonePtr(g.Eligibility)
	out.Deadline = clonePtr(g.Deadline)
	out.AmountMin = clonePtr(g.AmountMin)
	out.AmountMax = clonePtr(g.AmountMax)
	out.Tags = slices.Clone(g.Tags)
	out.SourceCitations = slices.Clone(g.SourceCitations)
	return out
}

// IsAbsoluteURL reports whether raw parses as an absolute http(s) URL with a host.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
