package discovery

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
)

const opNormalize = "discovery.normalize"

// Document is one raw search result as the provider returns it.
type Document struct {
	URL         string `json:"url"`
	Link        string `json:"link"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Text        string `json:"text"`
	Eligibility string `json:"extracted_eligibility"`
	Program     string   `json:"program"`
	Tags        []string `json:"tags"`
}

// Href returns the document URL, preferring url over link. It is "" when
// neither field holds an absolute http(s) URL.
func (d Document) Href() string {
	for _, candidate := range []string{d.URL, d.Link} {
		candidate = strings.TrimSpace(candidate)
		if candidate != "" && model.IsAbsoluteURL(candidate) {
			return candidate
		}
	}
	return ""
}

// CombinedText is the lowercase title, snippet and body joined by newlines,
// the text every phrase table is matched against.
func (d Document) CombinedText() string {
	return strings.ToLower(d.Title + "\n" + d.Snippet + "\n" + d.Text)
}

// DecodeResults extracts the result documents from a raw provider response.
// A response without a "results" list is a data shape error; individual
// entries that are not objects are skipped.
func DecodeResults(raw json.RawMessage) ([]Document, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, domain.DataShapeError(opNormalize, "search response is not a JSON object")
	}

	results, ok := envelope["results"]
	if !ok || !isJSONArray(results) {
		return nil, domain.DataShapeError(opNormalize, `search response has no "results" list`)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(results, &items); err != nil {
		return nil, domain.DataShapeError(opNormalize, `search response "results" is not a list`)
	}

	docs := make([]Document, 0, len(items))
	for _, item := range items {
		var doc Document
		if err := json.Unmarshal(item, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Normalizer maps raw search responses to grants in provider order. When
// Filter is set, documents it rejects are dropped before normalization.
type Normalizer struct {
	Filter *RelevanceFilter
}

func (n Normalizer) Normalize(raw json.RawMessage) ([]model.Grant, error) {
	docs, err := DecodeResults(raw)
	if err != nil {
		return nil, err
	}

	grants := make([]model.Grant, 0, len(docs))
	for _, doc := range docs {
		if n.Filter != nil && !n.Filter.IsRelevant(doc) {
			continue
		}
		grant, ok := ToGrant(doc)
		if !ok {
			continue
		}
		grants = append(grants, grant)
	}
	return grants, nil
}

// ToGrant normalizes one document. ok is false when the document has no
// usable URL.
func ToGrant(doc Document) (grant model.Grant, ok bool) {
	link := doc.Href()
	if link == "" {
		return model.Grant{}, false
	}

	sponsor, region := model.DefaultSponsor, model.RegionNational
	if j, found := InferJurisdiction(link); found {
		sponsor, region = j.Sponsor, j.Region
	}

	title := strings.TrimSpace(doc.Title)
	grant = model.Grant{
		Title:           title,
		Link:            link,
		Summary:         optionalText(doc.Snippet, doc.Text),
		Eligibility:     optionalText(doc.Eligibility),
		Sponsor:         sponsor,
		Region:          region,
		Program:         inferProgram(link, doc),
		Tags:            cleanTags(doc.Tags),
		SourceCitations: []string{link},
	}
	grant.ApplyDefaults()
	return grant, true
}

// cleanTags keeps provider tags in order, dropping blanks. The result is
// never nil.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// inferProgram resolves a specific program name for generic hub pages from
// the snippet; any other page keeps its own program or title.
func inferProgram(link string, doc Document) string {
	if IsHubPage(link) {
		snippet := strings.ToLower(doc.Snippet)
		for _, pk := range ProgramKeywords {
			if strings.Contains(snippet, pk.Keyword) {
				return pk.Program
			}
		}
	}
	if p := strings.TrimSpace(doc.Program); p != "" {
		return p
	}
	if t := strings.TrimSpace(doc.Title); t != "" {
		return t
	}
	return model.DefaultGrantTitle
}

// IsHubPage reports whether link is one of the generic funding landing pages,
// ignoring case and a trailing slash.
func IsHubPage(link string) bool {
	key := strings.TrimRight(strings.ToLower(strings.TrimSpace(link)), "/")
	for _, hub := range HubPages {
		if key == strings.TrimRight(strings.ToLower(hub), "/") {
			return true
		}
	}
	return false
}

// optionalText returns the first non-blank candidate, or nil.
func optionalText(candidates ...string) *string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return &c
		}
	}
	return nil
}
