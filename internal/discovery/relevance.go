package discovery

import (
	"strings"
)

// RelevanceFilter accepts live search documents that look like open,
// organization-facing government programs.
//
// Gates run in order and the first rejection wins:
//  1. domain: host in Allowed, or when Allowed is empty, a country TLD host
//     or a jurisdiction hint in the text
//  2. activity: no closed phrase and at least one apply phrase
//  3. audience: no individual phrase and at least one organization phrase
//
// Hosts under Trusted skip the activity and audience gates.
type RelevanceFilter struct {
	Allowed []string
	Trusted []string
}

func NewRelevanceFilter(allowed, trusted []string) *RelevanceFilter {
	return &RelevanceFilter{Allowed: allowed, Trusted: trusted}
}

type relevanceInput struct {
	host    string
	text    string
	trusted bool
}

type gate func(f *RelevanceFilter, in relevanceInput) bool

var relevanceGates = []gate{
	(*RelevanceFilter).domainGate,
	(*RelevanceFilter).activityGate,
	(*RelevanceFilter).audienceGate,
}

func (f *RelevanceFilter) IsRelevant(doc Document) bool {
	host := hostOf(doc.Href())
	if host == "" {
		return false
	}
	in := relevanceInput{
		host:    host,
		text:    doc.CombinedText(),
		trusted: hostMatchesAny(host, f.Trusted),
	}
	for _, g := range relevanceGates {
		if !g(f, in) {
			return false
		}
	}
	return true
}

func (f *RelevanceFilter) domainGate(in relevanceInput) bool {
	if len(f.Allowed) > 0 {
		return hostMatchesAny(in.host, f.Allowed)
	}
	if strings.HasSuffix(in.host, CountryTLD) {
		return true
	}
	return containsAny(in.text, JurisdictionHints)
}

func (f *RelevanceFilter) activityGate(in relevanceInput) bool {
	if in.trusted {
		return true
	}
	if containsAny(in.text, ClosedPhrases) {
		return false
	}
	return containsAny(in.text, ApplyPhrases)
}

func (f *RelevanceFilter) audienceGate(in relevanceInput) bool {
	if in.trusted {
		return true
	}
	if containsAny(in.text, IndividualPhrases) {
		return false
	}
	return containsAny(in.text, OrganizationPhrases)
}

// containsAny reports whether lowercase text contains any of the phrases.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
