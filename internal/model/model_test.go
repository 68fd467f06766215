package model_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/WanderingWalnut/Grantly/internal/model"
)

var _ = Describe("Date", func() {
	It("round-trips through JSON as YYYY-MM-DD", func() {
		d := model.NewDate(2025, time.January, 1)
		data, err := json.Marshal(d)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`"2025-01-01"`))

		var back model.Date
		Expect(json.Unmarshal(data, &back)).To(Succeed())
		Expect(back).To(Equal(d))
	})

	It("leaves a nil pointer for JSON null", func() {
		var g struct {
			Deadline *model.Date `json:"deadline"`
		}
		Expect(json.Unmarshal([]byte(`{"deadline":null}`), &g)).To(Succeed())
		Expect(g.Deadline).To(BeNil())
	})

	It("rejects malformed dates", func() {
		var d model.Date
		Expect(json.Unmarshal([]byte(`"01/06/2024"`), &d)).NotTo(Succeed())
		Expect(json.Unmarshal([]byte(`20240601`), &d)).NotTo(Succeed())
	})

	It("compares calendar dates", func() {
		Expect(model.NewDate(2024, time.June, 1).Before(model.NewDate(2025, time.January, 1))).To(BeTrue())
		Expect(model.NewDate(2025, time.January, 1).Before(model.NewDate(2025, time.January, 1))).To(BeFalse())
	})
})

var _ = Describe("Grant", func() {
	It("applies schema defaults to empty fields only", func() {
		g := model.Grant{Link: "https://www.canada.ca/x", Sponsor: "Government of Alberta"}
		g.ApplyDefaults()
		Expect(g.Title).To(Equal(model.DefaultGrantTitle))
		Expect(g.Currency).To(Equal("CAD"))
		Expect(g.Sponsor).To(Equal("Government of Alberta"))
	})

	It("clones without sharing slices", func() {
		g := model.Grant{Tags: []string{"youth"}, AmountMax: model.Ptr(int64(5000))}
		c := g.Clone()
		c.Tags[0] = "changed"
		*c.AmountMax = 1
		Expect(g.Tags[0]).To(Equal("youth"))
		Expect(*g.AmountMax).To(Equal(int64(5000)))
	})

	DescribeTable("IsAbsoluteURL",
		func(raw string, expected bool) {
			Expect(model.IsAbsoluteURL(raw)).To(Equal(expected))
		},
		Entry("https url", "https://www.alberta.ca/funding-for-non-profits", true),
		Entry("http url", "http://gc.ca", true),
		Entry("relative path", "/funding", false),
		Entry("empty", "", false),
		Entry("mailto", "mailto:grants@canada.ca", false),
	)
})

var _ = Describe("OrganizationProfile", func() {
	It("deduplicates sector tags preserving order", func() {
		p := model.OrganizationProfile{SectorTags: []string{"youth", "sport", "youth", "", "arts"}}
		Expect(p.UniqueSectorTags()).To(Equal([]string{"youth", "sport", "arts"}))
	})

	It("reads the province from the address", func() {
		Expect(model.OrganizationProfile{}.Province()).To(BeEmpty())
		p := model.OrganizationProfile{Address: &model.Address{Province: "AB"}}
		Expect(p.Province()).To(Equal("AB"))
	})

	DescribeTable("structure enumeration",
		func(s model.OrgStructure, valid bool) {
			Expect(s.Valid()).To(Equal(valid))
		},
		Entry("nonprofit", model.StructureNonprofit, true),
		Entry("charity", model.StructureCharity, true),
		Entry("coop", model.StructureCoop, true),
		Entry("other", model.StructureOther, true),
		Entry("corporation", model.OrgStructure("corporation"), false),
	)
})

var _ = Describe("SearchFilters", func() {
	It("defaults the result cap to 10", func() {
		var f *model.SearchFilters
		Expect(f.ResultCap()).To(Equal(10))
		Expect((&model.SearchFilters{}).ResultCap()).To(Equal(10))
		Expect((&model.SearchFilters{MaxResults: model.Ptr(3)}).ResultCap()).To(Equal(3))
	})
})
