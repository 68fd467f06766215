package drafter

import (
	"fmt"
	"strings"

	"github.com/gingfrederik/docx"
)

// WriteDocx saves a draft as a Word document with one section per answer,
// ready to be pasted into the real application.
func WriteDocx(path, title string, draft *Draft) error {
	f := docx.NewFile()

	f.AddParagraph().AddText(title).Size(20)
	meta := f.AddParagraph().AddText(fmt.Sprintf("Drafted with %s", draft.Model))
	meta.Size(10)
	meta.Color("808080")
	f.AddParagraph()

	a := draft.Answers
	section(f, "Organization fit", a.OrganizationFit)
	section(f, "Project overview", a.ProjectOverview)

	heading(f, "Funding details")
	body(f, "Requested amount: "+a.FundingDetails.RequestedAmount)
	body(f, "Matching contributions: "+a.FundingDetails.MatchingContributions)
	bullets(f, a.FundingDetails.FundingSources)

	heading(f, "Timeline")
	for _, m := range a.Timeline {
		body(f, fmt.Sprintf("%s: %s", m.Date, m.Milestone))
	}

	section(f, "Community benefits", a.CommunityBenefits)

	heading(f, "Attachments needed")
	bullets(f, a.AttachmentsNeeded)

	heading(f, "Open questions")
	bullets(f, a.OpenQuestions)

	if err := f.Save(path); err != nil {
		return fmt.Errorf("saving draft to %s: %w", path, err)
	}
	return nil
}

func section(f *docx.File, title, text string) {
	heading(f, title)
	for _, p := range strings.Split(text, "\n\n") {
		body(f, p)
	}
}

func heading(f *docx.File, title string) {
	f.AddParagraph().AddText(title).Size(16)
}

func body(f *docx.File, text string) {
	if text = strings.TrimSpace(text); text != "" {
		f.AddParagraph().AddText(text)
	}
}

func bullets(f *docx.File, items []string) {
	for _, item := range items {
		body(f, "• "+item)
	}
}
