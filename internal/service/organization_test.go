package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/WanderingWalnut/Grantly/common/id"
	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/service"
	"github.com/WanderingWalnut/Grantly/internal/store"
)

var _ = Describe("OrganizationService", func() {
	var (
		svc     service.OrganizationService
		mockOrg *mockOrganizationStore
		finder  *mockFinder
		txCalls int
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockOrg = &mockOrganizationStore{}
		finder = &mockFinder{}
		txCalls = 0
		tx := &mockTxRunner{
			withTxFn: func(ctx context.Context, fn func(stores service.StoreProvider) error) error {
				txCalls++
				return fn(&mockStoreProvider{org: mockOrg})
			},
		}
		svc = service.NewOrganizationService(mockOrg, tx, service.NewGrantService(finder, nil))
		Expect(id.Init(1)).To(Succeed())
	})

	It("creates an organization with a generated id and trimmed names", func() {
		mockOrg.createFn = func(_ context.Context, org *model.Organization) error {
			Expect(org.ID).NotTo(BeZero())
			Expect(org.Profile.LegalName).To(Equal("Riverbend Youth Centre"))
			return nil
		}

		org, err := svc.Create(ctx, model.OrganizationProfile{
			LegalName: "  Riverbend Youth Centre ",
			Structure: model.StructureNonprofit,
			Address:   &model.Address{Province: "Alberta"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(org.Profile.LegalName).To(Equal("Riverbend Youth Centre"))
		Expect(org.Profile.Address.Country).To(Equal(model.DefaultCountry))
		Expect(mockOrg.createCalls).To(Equal(1))
	})

	DescribeTable("rejects invalid profiles without touching the store",
		func(profile model.OrganizationProfile) {
			_, err := svc.Create(ctx, profile)
			Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
			Expect(mockOrg.createCalls).To(BeZero())
		},
		Entry("blank legal name", model.OrganizationProfile{LegalName: "   "}),
		Entry("unknown structure", model.OrganizationProfile{LegalName: "A", Structure: "corporation"}),
		Entry("unknown province", model.OrganizationProfile{LegalName: "A", Address: &model.Address{Province: "Narnia"}}),
		Entry("relative website", model.OrganizationProfile{LegalName: "A", Website: "riverbend.ca"}),
	)

	It("wraps store errors so not found stays detectable", func() {
		_, err := svc.Get(ctx, 42)
		Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
	})

	It("updates the stored profile inside a transaction", func() {
		mockOrg.getByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
			return &model.Organization{ID: orgID, Profile: model.OrganizationProfile{LegalName: "Old"}}, nil
		}
		mockOrg.updateFn = func(_ context.Context, org *model.Organization) error {
			Expect(org.Profile.LegalName).To(Equal("New"))
			return nil
		}

		org, err := svc.Update(ctx, 7, model.OrganizationProfile{LegalName: "New"})
		Expect(err).NotTo(HaveOccurred())
		Expect(org.ID).To(Equal(int64(7)))
		Expect(txCalls).To(Equal(1))
		Expect(mockOrg.updateCalls).To(Equal(1))
	})

	It("does not update a missing organization", func() {
		_, err := svc.Update(ctx, 7, model.OrganizationProfile{LegalName: "New"})
		Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		Expect(mockOrg.updateCalls).To(BeZero())
	})

	It("propagates delete errors", func() {
		mockOrg.deleteFn = func(context.Context, int64) error { return store.ErrNotFound }
		Expect(errors.Is(svc.Delete(ctx, 3), store.ErrNotFound)).To(BeTrue())
	})

	It("searches grants with the stored profile", func() {
		profile := model.OrganizationProfile{LegalName: "Hope Shelter", SectorTags: []string{"housing"}}
		mockOrg.getByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
			return &model.Organization{ID: orgID, Profile: profile}, nil
		}
		finder.findFn = func(_ context.Context, got model.OrganizationProfile, filters *model.SearchFilters) ([]model.Grant, error) {
			Expect(got).To(Equal(profile))
			Expect(*filters.MaxResults).To(Equal(3))
			return []model.Grant{{Title: "NHSP"}}, nil
		}

		res, err := svc.SearchGrants(ctx, 9, &model.SearchFilters{MaxResults: model.Ptr(3)})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Count).To(Equal(1))
	})

	Describe("List", func() {
		page := func(ids ...int64) []model.Organization {
			out := make([]model.Organization, len(ids))
			for i, v := range ids {
				out[i] = model.Organization{ID: v}
			}
			return out
		}

		It("asks for one extra row and returns a cursor when more exist", func() {
			mockOrg.listFn = func(_ context.Context, afterID int64, limit int) ([]model.Organization, error) {
				Expect(afterID).To(Equal(int64(5)))
				Expect(limit).To(Equal(3))
				return page(6, 7, 8), nil
			}

			res, err := svc.List(ctx, 5, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Organizations).To(HaveLen(2))
			Expect(res.NextAfter).To(Equal(int64(7)))
		})

		It("uses the default page size and ends without a cursor", func() {
			mockOrg.listFn = func(_ context.Context, _ int64, limit int) ([]model.Organization, error) {
				Expect(limit).To(Equal(service.DefaultPageSize + 1))
				return page(1, 2), nil
			}

			res, err := svc.List(ctx, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Organizations).To(HaveLen(2))
			Expect(res.NextAfter).To(BeZero())
		})

		DescribeTable("rejects bad paging arguments",
			func(after int64, limit int) {
				_, err := svc.List(ctx, after, limit)
				Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
			},
			Entry("limit too large", int64(0), service.MaxPageSize+1),
			Entry("negative limit", int64(0), -1),
			Entry("negative cursor", int64(-1), 10),
		)
	})
})
