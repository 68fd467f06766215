package service

import (
	"context"
	"time"

	"github.com/WanderingWalnut/Grantly/internal/discovery"
	"github.com/WanderingWalnut/Grantly/internal/drafter"
	"github.com/WanderingWalnut/Grantly/internal/locator"
	"github.com/WanderingWalnut/Grantly/internal/store"
)

type ServicesConfig struct {
	Finder  discovery.Finder
	Locator locator.Locator
	Cache   locator.LinkCache
	Drafter drafter.Drafter

	// Stores and TxRunner are nil when persistence is disabled.
	Stores   *store.Stores
	TxRunner TxRunner

	Now func() time.Time

	// Probes are dependency checks run by Ready, keyed by dependency name.
	Probes map[string]func(ctx context.Context) error
}

type Services struct {
	cfg ServicesConfig
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{cfg: cfg}
}

func (s *Services) Grants() GrantService {
	return NewGrantService(s.cfg.Finder, s.cfg.Now)
}

// HasOrganizations reports whether organization profiles can be stored.
func (s *Services) HasOrganizations() bool {
	return s.cfg.Stores != nil && s.cfg.TxRunner != nil
}

// Organizations panics when persistence is disabled; check HasOrganizations.
func (s *Services) Organizations() OrganizationService {
	if !s.HasOrganizations() {
		panic("service: organizations requested without a database")
	}
	return NewOrganizationService(s.cfg.Stores.Organizations(), s.cfg.TxRunner, s.Grants())
}

func (s *Services) ApplicationLinks() ApplicationLinkService {
	return NewApplicationLinkService(s.cfg.Locator, s.cfg.Cache)
}

func (s *Services) Drafts() DraftService {
	var orgs store.OrganizationStore
	if s.cfg.Stores != nil {
		orgs = s.cfg.Stores.Organizations()
	}
	return NewDraftService(s.cfg.Drafter, orgs)
}

// Ready runs every probe and returns a status per dependency. ok is false
// if any probe failed.
func (s *Services) Ready(ctx context.Context) (statuses map[string]string, ok bool) {
	statuses = make(map[string]string, len(s.cfg.Probes))
	ok = true
	for name, probe := range s.cfg.Probes {
		if err := probe(ctx); err != nil {
			statuses[name] = err.Error()
			ok = false
			continue
		}
		statuses[name] = "ok"
	}
	return statuses, ok
}
