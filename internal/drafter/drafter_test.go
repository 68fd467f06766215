package drafter_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/WanderingWalnut/Grantly/common/llm"
	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/drafter"
	"github.com/WanderingWalnut/Grantly/internal/model"
)

const draftReply = `{
	"organization_fit": "Registered nonprofit serving Edmonton youth.",
	"project_overview": "Renovate the community kitchen.",
	"funding_details": {"requested_amount": "$50,000", "matching_contributions": "$50,000 cash", "funding_sources": ["fundraising", "city grant"]},
	"timeline": [{"milestone": "Contractor selected", "date": "2025-03-01"}],
	"community_benefits": "Hot meals for 200 families.",
	"attachments_needed": ["Board approval"],
	"open_questions": ["Confirm matching funds"]
}`

var _ = Describe("Drafter", func() {
	var (
		server    *httptest.Server
		pdfStatus int
		hits      int
		chat      *mockLLM
		extractor *mockExtractor
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		pdfStatus = http.StatusOK
		hits = 0
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(pdfStatus)
			if pdfStatus == http.StatusOK {
				_, _ = w.Write([]byte("%PDF-1.4 sample"))
				return
			}
			_, _ = w.Write([]byte("gone"))
		}))
		DeferCleanup(server.Close)

		chat = &mockLLM{chatFn: replyWith(draftReply, 120, 80)}
		extractor = &mockExtractor{text: "Section 1: Organization information"}
	})

	newDrafter := func(client llm.Client) drafter.Drafter {
		return drafter.New(client, extractor, drafter.Config{})
	}

	It("downloads the pdf, prompts the model and returns structured answers", func() {
		draft, err := newDrafter(chat).Draft(ctx, drafter.Request{
			PDFURL:              server.URL + "/cfep.pdf",
			OrganizationSummary: "Legal name: Riverbend Youth Centre",
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(extractor.received).To(Equal([]byte("%PDF-1.4 sample")))
		Expect(extractor.maxChars).To(Equal(drafter.DefaultMaxPDFChars))

		Expect(draft.Model).To(Equal("gemini-2.5-flash"))
		Expect(draft.PromptTokens).To(Equal(120))
		Expect(draft.CompletionTokens).To(Equal(80))
		Expect(draft.Answers.FundingDetails.FundingSources).To(ConsistOf("fundraising", "city grant"))
		Expect(draft.Answers.Timeline).To(Equal([]drafter.Milestone{{Milestone: "Contractor selected", Date: "2025-03-01"}}))
		Expect(draft.Answers.OpenQuestions).To(Equal([]string{"Confirm matching funds"}))

		Expect(chat.requests).To(HaveLen(1))
		req := chat.requests[0]
		Expect(req.UserPrompt).To(ContainSubstring("Riverbend Youth Centre"))
		Expect(req.UserPrompt).To(ContainSubstring("Section 1: Organization information"))
		Expect(req.SchemaName).To(Equal("grant_application_draft"))
		Expect(*req.Temperature).To(Equal(drafter.DefaultTemperature))
	})

	It("fails with a configuration error before any download when no model is configured", func() {
		_, err := newDrafter(nil).Draft(ctx, drafter.Request{PDFURL: server.URL + "/cfep.pdf"})
		Expect(errors.Is(err, domain.ErrConfiguration)).To(BeTrue())
		Expect(hits).To(BeZero())
	})

	It("maps a failed pdf download to an upstream http error", func() {
		pdfStatus = http.StatusNotFound

		_, err := newDrafter(chat).Draft(ctx, drafter.Request{PDFURL: server.URL + "/missing.pdf"})
		var de *domain.Error
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Kind).To(Equal(domain.KindUpstream))
		Expect(de.Status).To(Equal(http.StatusNotFound))
		Expect(chat.requests).To(BeEmpty())
	})

	It("maps an unreachable host to an upstream transport error", func() {
		server.Close()

		_, err := newDrafter(chat).Draft(ctx, drafter.Request{PDFURL: server.URL + "/cfep.pdf"})
		var de *domain.Error
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Kind).To(Equal(domain.KindUpstream))
		Expect(de.Status).To(BeZero())
	})

	DescribeTable("rejects unusable pdf text as a data shape error",
		func(text string, extractErr error) {
			extractor.text, extractor.err = text, extractErr

			_, err := newDrafter(chat).Draft(ctx, drafter.Request{PDFURL: server.URL + "/cfep.pdf"})
			Expect(errors.Is(err, domain.ErrDataShape)).To(BeTrue())
			Expect(chat.requests).To(BeEmpty())
		},
		Entry("unreadable pdf", "", errors.New("malformed xref")),
		Entry("no text", "", nil),
		Entry("whitespace only", "  \n\n ", nil),
	)

	It("reports an unparseable model reply as a data shape error", func() {
		chat.chatFn = func(context.Context, llm.Request, any) (*llm.Response, error) {
			return nil, fmt.Errorf("%w: unexpected end of JSON input", llm.ErrMalformedReply)
		}

		_, err := newDrafter(chat).Draft(ctx, drafter.Request{PDFURL: server.URL + "/cfep.pdf"})
		Expect(errors.Is(err, domain.ErrDataShape)).To(BeTrue())
	})

	It("reports an API rejection as an upstream http error with its status", func() {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
		}))
		DeferCleanup(api.Close)

		client, err := llm.New(llm.Config{APIKey: "test-key", BaseURL: api.URL + "/"})
		Expect(err).NotTo(HaveOccurred())

		_, err = newDrafter(client).Draft(ctx, drafter.Request{PDFURL: server.URL + "/cfep.pdf"})
		var de *domain.Error
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Kind).To(Equal(domain.KindUpstream))
		Expect(de.Status).To(Equal(http.StatusTooManyRequests))
	})
})

var _ = Describe("PDF extractor", func() {
	It("rejects bytes that are not a pdf", func() {
		_, err := drafter.NewPDFExtractor().Extract([]byte("not a pdf"), 100)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SummarizeProfile", func() {
	It("renders the populated fields of a profile", func() {
		summary := drafter.SummarizeProfile(model.OrganizationProfile{
			LegalName:     "Riverbend Youth Centre Society",
			OperatingName: "Riverbend Youth Centre",
			Structure:     model.StructureNonprofit,
			SectorTags:    []string{"youth", "recreation", "youth"},
			Address:       &model.Address{City: "Edmonton", Province: "AB"},
		})

		Expect(summary).To(Equal("Legal name: Riverbend Youth Centre Society\n" +
			"Operating name: Riverbend Youth Centre\n" +
			"Structure: nonprofit\n" +
			"Sectors: youth, recreation\n" +
			"Address: Edmonton, AB"))
	})

	It("omits the operating name when it repeats the legal name", func() {
		summary := drafter.SummarizeProfile(model.OrganizationProfile{LegalName: "Hope Shelter", OperatingName: "Hope Shelter"})
		Expect(summary).To(Equal("Legal name: Hope Shelter"))
	})
})

var _ = Describe("WriteDocx", func() {
	It("saves the draft as a word document", func() {
		path := filepath.Join(GinkgoT().TempDir(), "draft.docx")
		draft := &drafter.Draft{
			Model: "gemini-2.5-flash",
			Answers: drafter.Answers{
				OrganizationFit: "Registered nonprofit.\n\nServes 300 youth.",
				FundingDetails:  drafter.FundingDetails{RequestedAmount: "$50,000", FundingSources: []string{"fundraising"}},
				Timeline:        []drafter.Milestone{{Milestone: "Build", Date: "2025-05-01"}},
				OpenQuestions:   []string{"Confirm matching funds"},
			},
		}

		Expect(drafter.WriteDocx(path, "CFEP Small draft", draft)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(data[:2]).To(Equal([]byte("PK")))
	})

	It("reports an unwritable path", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "draft.docx")
		Expect(drafter.WriteDocx(path, "x", &drafter.Draft{})).NotTo(Succeed())
	})
})
