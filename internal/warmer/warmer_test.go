package warmer_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/service"
	"github.com/WanderingWalnut/Grantly/internal/warmer"
)

type mockLinkService struct {
	mu       sync.Mutex
	located  []string
	locateFn func(ctx context.Context, grantURL string) (*service.ApplicationLink, error)
}

func (m *mockLinkService) Locate(ctx context.Context, grantURL string) (*service.ApplicationLink, error) {
	m.mu.Lock()
	m.located = append(m.located, grantURL)
	m.mu.Unlock()
	if m.locateFn != nil {
		return m.locateFn(ctx, grantURL)
	}
	return &service.ApplicationLink{GrantURL: grantURL, PDFLink: grantURL + "/sample.pdf"}, nil
}

func (m *mockLinkService) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.located...)
}

var _ = Describe("Warmer", func() {
	var (
		links  *mockLinkService
		grants []model.Grant
		ctx    context.Context
	)

	source := func() ([]model.Grant, error) { return grants, nil }

	BeforeEach(func() {
		ctx = context.Background()
		links = &mockLinkService{}
		grants = []model.Grant{
			{Link: "https://www.alberta.ca/cfep"},
			{Link: "https://www.canada.ca/nhsp"},
			{Link: "https://www.alberta.ca/cfep"},
			{Link: "not-a-url"},
		}
	})

	It("locates each distinct absolute link once", func() {
		res := warmer.New("@every 1h", links, source).RunOnce(ctx)

		Expect(res).To(Equal(warmer.Result{Located: 2}))
		Expect(links.calls()).To(Equal([]string{"https://www.alberta.ca/cfep", "https://www.canada.ca/nhsp"}))
	})

	It("counts failures and keeps going", func() {
		links.locateFn = func(_ context.Context, grantURL string) (*service.ApplicationLink, error) {
			if grantURL == "https://www.alberta.ca/cfep" {
				return nil, errors.New("no link")
			}
			return &service.ApplicationLink{}, nil
		}

		res := warmer.New("@every 1h", links, source).RunOnce(ctx)
		Expect(res).To(Equal(warmer.Result{Located: 1, Failed: 1}))
	})

	It("does nothing when the source fails", func() {
		w := warmer.New("@every 1h", links, func() ([]model.Grant, error) { return nil, errors.New("missing dataset") })
		Expect(w.RunOnce(ctx)).To(Equal(warmer.Result{}))
		Expect(links.calls()).To(BeEmpty())
	})

	It("stops early when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		Expect(warmer.New("@every 1h", links, source).RunOnce(cancelled)).To(Equal(warmer.Result{}))
		Expect(links.calls()).To(BeEmpty())
	})

	It("rejects an invalid schedule", func() {
		Expect(warmer.New("every now and then", links, source).Start(ctx)).NotTo(Succeed())
	})

	It("runs a pass as soon as it starts", func() {
		w := warmer.New("@every 1h", links, source)
		Expect(w.Start(ctx)).To(Succeed())
		DeferCleanup(func() { <-w.Stop().Done() })

		Eventually(links.calls).Should(HaveLen(2))
	})

	It("cancels the startup pass on stop and waits for it", func() {
		started := make(chan struct{})
		var once sync.Once
		links.locateFn = func(ctx context.Context, _ string) (*service.ApplicationLink, error) {
			once.Do(func() { close(started) })
			<-ctx.Done()
			return nil, ctx.Err()
		}

		w := warmer.New("@every 1h", links, source)
		Expect(w.Start(ctx)).To(Succeed())
		Eventually(started).Should(BeClosed())

		stopped := w.Stop()
		Eventually(stopped.Done()).Should(BeClosed())
		Expect(links.calls()).To(HaveLen(1))
	})

	It("can be stopped without being started", func() {
		Eventually(warmer.New("@every 1h", links, source).Stop().Done()).Should(BeClosed())
	})
})
