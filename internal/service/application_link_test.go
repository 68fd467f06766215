package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/locator"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

var _ = Describe("ApplicationLinkService", func() {
	const grantURL = "https://www.alberta.ca/community-facility-enhancement-program"

	var (
		loc   *mockLocator
		cache *mockLinkCache
		svc   service.ApplicationLinkService
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		loc = &mockLocator{locateFn: func(context.Context, string) (string, error) {
			return "https://open.alberta.ca/cfep-small-sample.pdf", nil
		}}
		cache = &mockLinkCache{}
		svc = service.NewApplicationLinkService(loc, cache)
	})

	It("locates the link and caches it for the next request", func() {
		first, err := svc.Locate(ctx, grantURL)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.PDFLink).To(Equal("https://open.alberta.ca/cfep-small-sample.pdf"))
		Expect(first.Cached).To(BeFalse())

		second, err := svc.Locate(ctx, grantURL)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Cached).To(BeTrue())
		Expect(second.PDFLink).To(Equal(first.PDFLink))
		Expect(loc.calls).To(Equal(1))
	})

	It("treats cache failures as misses", func() {
		cache.getFn = func(context.Context, string) (string, bool, error) {
			return "", false, errors.New("redis down")
		}
		cache.setFn = func(context.Context, string, string) error {
			return errors.New("redis down")
		}

		link, err := svc.Locate(ctx, grantURL)
		Expect(err).NotTo(HaveOccurred())
		Expect(link.Cached).To(BeFalse())
		Expect(loc.calls).To(Equal(1))
	})

	It("rejects relative urls before locating", func() {
		_, err := svc.Locate(ctx, "/funding")
		Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
		Expect(loc.calls).To(BeZero())
	})

	It("does not cache a failed lookup", func() {
		loc.locateFn = func(context.Context, string) (string, error) {
			return "", locator.ErrLinkNotFound
		}

		_, err := svc.Locate(ctx, grantURL)
		Expect(errors.Is(err, locator.ErrLinkNotFound)).To(BeTrue())
		Expect(cache.stored).To(BeEmpty())
	})

	It("works without a cache", func() {
		svc = service.NewApplicationLinkService(loc, nil)
		link, err := svc.Locate(ctx, grantURL)
		Expect(err).NotTo(HaveOccurred())
		Expect(link.Cached).To(BeFalse())
	})
})
