package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/WanderingWalnut/Grantly/internal/discovery"
	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

var _ = Describe("GrantService", func() {
	var (
		finder *mockFinder
		now    time.Time
		svc    service.GrantService
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		finder = &mockFinder{}
		now = time.Date(2025, 2, 3, 9, 30, 0, 0, time.FixedZone("MST", -7*3600))
		svc = service.NewGrantService(finder, func() time.Time { return now })
	})

	It("wraps the finder results with mode, count and a UTC timestamp", func() {
		finder.mode = discovery.ModeLive
		finder.findFn = func(_ context.Context, profile model.OrganizationProfile, filters *model.SearchFilters) ([]model.Grant, error) {
			Expect(profile.LegalName).To(Equal("Riverbend Youth Centre"))
			Expect(filters.Province).To(Equal("AB"))
			return []model.Grant{{Title: "CFEP"}, {Title: "NHSP"}}, nil
		}

		res, err := svc.Search(ctx, model.OrganizationProfile{LegalName: "Riverbend Youth Centre"}, &model.SearchFilters{Province: "AB"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Mode).To(Equal(discovery.ModeLive))
		Expect(res.Count).To(Equal(2))
		Expect(res.Results).To(HaveLen(2))
		Expect(res.GeneratedAt).To(Equal(now.UTC()))
		Expect(res.GeneratedAt.Location()).To(Equal(time.UTC))
	})

	It("returns an empty list rather than nil when nothing matches", func() {
		res, err := svc.Search(ctx, model.OrganizationProfile{LegalName: "X"}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Results).NotTo(BeNil())
		Expect(res.Count).To(BeZero())
	})

	DescribeTable("rejects an invalid inline profile before searching",
		func(profile model.OrganizationProfile) {
			finder.findFn = func(context.Context, model.OrganizationProfile, *model.SearchFilters) ([]model.Grant, error) {
				Fail("finder must not be called")
				return nil, nil
			}

			res, err := svc.Search(ctx, profile, nil)
			Expect(res).To(BeNil())
			Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
		},
		Entry("blank legal name with unknown structure", model.OrganizationProfile{LegalName: "", Structure: "llc"}),
		Entry("unknown structure", model.OrganizationProfile{LegalName: "A", Structure: "llc"}),
		Entry("relative website", model.OrganizationProfile{LegalName: "A", Website: "riverbend.ca"}),
	)

	It("passes the trimmed profile with a default country to the finder", func() {
		finder.findFn = func(_ context.Context, profile model.OrganizationProfile, _ *model.SearchFilters) ([]model.Grant, error) {
			Expect(profile.LegalName).To(Equal("Hope Shelter"))
			Expect(profile.Address.Country).To(Equal(model.DefaultCountry))
			return nil, nil
		}

		input := model.OrganizationProfile{LegalName: " Hope Shelter ", Address: &model.Address{City: "Calgary"}}
		_, err := svc.Search(ctx, input, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(input.Address.Country).To(BeEmpty())
	})

	It("returns finder errors unchanged", func() {
		upstream := domain.UpstreamHTTPError("search.perplexity", 503, "busy")
		finder.findFn = func(context.Context, model.OrganizationProfile, *model.SearchFilters) ([]model.Grant, error) {
			return nil, upstream
		}

		_, err := svc.Search(ctx, model.OrganizationProfile{LegalName: "X"}, nil)
		Expect(err).To(BeIdenticalTo(upstream))
		Expect(errors.Is(err, domain.ErrUpstream)).To(BeTrue())
	})
})
