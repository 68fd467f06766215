package discovery_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/WanderingWalnut/Grantly/internal/discovery"
)

var _ = Describe("RelevanceFilter", func() {
	var filter *discovery.RelevanceFilter

	doc := func(url, snippet string) discovery.Document {
		return discovery.Document{URL: url, Title: "Program page", Snippet: snippet}
	}

	BeforeEach(func() {
		filter = discovery.NewRelevanceFilter(
			[]string{"canada.ca", "ontario.ca"},
			[]string{"canada.ca"},
		)
	})

	It("accepts an open organization-facing program on an allowed host", func() {
		Expect(filter.IsRelevant(doc("https://www.ontario.ca/page/grant", "How to apply: eligible organizations include nonprofits."))).To(BeTrue())
	})

	It("rejects documents without a usable URL", func() {
		Expect(filter.IsRelevant(discovery.Document{Snippet: "how to apply nonprofit"})).To(BeFalse())
		Expect(filter.IsRelevant(doc("/relative/path", "how to apply nonprofit"))).To(BeFalse())
	})

	Describe("domain gate", func() {
		It("rejects hosts outside the allow-list", func() {
			Expect(filter.IsRelevant(doc("https://grants.example.com/x", "how to apply nonprofit"))).To(BeFalse())
		})

		Context("without an allow-list", func() {
			BeforeEach(func() {
				filter = discovery.NewRelevanceFilter(nil, nil)
			})

			It("accepts hosts under the country TLD", func() {
				Expect(filter.IsRelevant(doc("https://www.otf.ca/grants", "how to apply nonprofit"))).To(BeTrue())
			})

			It("accepts other hosts whose text names a jurisdiction", func() {
				Expect(filter.IsRelevant(doc("https://foundation.example.org/x", "Saskatchewan nonprofit grants: how to apply"))).To(BeTrue())
			})

			It("rejects other hosts with no jurisdiction hint", func() {
				Expect(filter.IsRelevant(doc("https://foundation.example.org/x", "how to apply nonprofit"))).To(BeFalse())
			})
		})
	})

	Describe("activity gate", func() {
		It("rejects closed programs even when domain and audience match", func() {
			Expect(filter.IsRelevant(doc("https://www.ontario.ca/page/grant",
				"Applications are closed. How to apply: eligible organizations include nonprofits."))).To(BeFalse())
		})

		It("requires an apply phrase", func() {
			Expect(filter.IsRelevant(doc("https://www.ontario.ca/page/grant", "Background on nonprofits in the sector."))).To(BeFalse())
		})

		for _, phrase := range discovery.ClosedPhrases {
			It("rejects closed phrase "+phrase, func() {
				Expect(filter.IsRelevant(doc("https://www.ontario.ca/g", phrase+" - how to apply for nonprofit funding"))).To(BeFalse())
			})
		}

		for _, phrase := range discovery.ApplyPhrases {
			It("accepts apply phrase "+phrase, func() {
				Expect(filter.IsRelevant(doc("https://www.ontario.ca/g", phrase+" - nonprofit funding"))).To(BeTrue())
			})
		}
	})

	Describe("audience gate", func() {
		It("rejects programs aimed at individuals", func() {
			Expect(filter.IsRelevant(doc("https://www.ontario.ca/g", "How to apply for income support. Nonprofit partners deliver it."))).To(BeFalse())
		})

		It("requires an organization phrase", func() {
			Expect(filter.IsRelevant(doc("https://www.ontario.ca/g", "How to apply for this program."))).To(BeFalse())
		})

		for _, phrase := range discovery.IndividualPhrases {
			It("rejects individual phrase "+phrase, func() {
				Expect(filter.IsRelevant(doc("https://www.ontario.ca/g", "how to apply: "+phrase+" for nonprofit clients"))).To(BeFalse())
			})
		}

		for _, phrase := range discovery.OrganizationPhrases {
			It("accepts organization phrase "+phrase, func() {
				Expect(filter.IsRelevant(doc("https://www.ontario.ca/g", "how to apply: open to "+phrase))).To(BeTrue())
			})
		}
	})

	It("lets trusted hosts bypass the activity and audience gates", func() {
		Expect(filter.IsRelevant(doc("https://www.canada.ca/en/x.html", "Applications are closed. Income support for individuals."))).To(BeTrue())
		Expect(filter.IsRelevant(doc("https://www.canada.ca/en/x.html", ""))).To(BeTrue())
	})

	It("matches phrases across title, snippet and body text", func() {
		d := discovery.Document{
			URL:     "https://www.ontario.ca/g",
			Title:   "HOW TO APPLY",
			Snippet: "Program overview",
			Text:    "Eligible organizations must be incorporated.",
		}
		Expect(filter.IsRelevant(d)).To(BeTrue())
	})
})
