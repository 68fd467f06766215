package drafter

import (
	"fmt"
	"strings"

	"github.com/WanderingWalnut/Grantly/internal/model"
)

const systemPrompt = `You are an expert grant writer helping Canadian nonprofits draft responses to government grant applications.
Answer every question in the application using only the organization summary and the application text you are given.
Where a question has no explicit answer, give your best assumption and say that it is inferred.
Keep answers concise but specific so they can be copied into the real application.`

// Answers is the structured draft returned by the model.
type Answers struct {
	OrganizationFit   string         `json:"organization_fit" jsonschema:"description=Why the organization qualifies for the program"`
	ProjectOverview   string         `json:"project_overview" jsonschema:"description=Project description matching the application prompts"`
	FundingDetails    FundingDetails `json:"funding_details"`
	Timeline          []Milestone    `json:"timeline"`
	CommunityBenefits string         `json:"community_benefits" jsonschema:"description=Narrative of community impact"`
	AttachmentsNeeded []string       `json:"attachments_needed" jsonschema:"description=Documents to prepare before submitting"`
	OpenQuestions     []string       `json:"open_questions" jsonschema:"description=Items the organization must clarify"`
}

type FundingDetails struct {
	RequestedAmount       string   `json:"requested_amount"`
	MatchingContributions string   `json:"matching_contributions"`
	FundingSources        []string `json:"funding_sources"`
}

type Milestone struct {
	Milestone string `json:"milestone"`
	Date      string `json:"date"`
}

func buildUserPrompt(pdfText, organizationSummary string) string {
	return fmt.Sprintf(`Organization summary:
%s

Application PDF extract:
%s

Draft an answer for each section of the application.`, strings.TrimSpace(organizationSummary), strings.TrimSpace(pdfText))
}

// SummarizeProfile renders a stored profile as the free-text organization
// summary the drafter expects.
func SummarizeProfile(p model.OrganizationProfile) string {
	var b strings.Builder
	line := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	line("Legal name", p.LegalName)
	if p.OperatingName != "" && p.OperatingName != p.LegalName {
		line("Operating name", p.OperatingName)
	}
	line("Structure", string(p.Structure))
	line("Registration number", p.RegistrationNumber)
	line("NAICS code", p.NAICSCode)
	line("Sectors", strings.Join(p.UniqueSectorTags(), ", "))
	if a := p.Address; a != nil {
		parts := make([]string, 0, 4)
		for _, s := range []string{a.Street, a.City, a.Province, a.PostalCode} {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		line("Address", strings.Join(parts, ", "))
	}
	line("Website", p.Website)
	line("Contact", p.ContactEmail)

	return strings.TrimRight(b.String(), "\n")
}
