package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/WanderingWalnut/Grantly/common/id"
	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/store"
)

const (
	opListOrgs = "organization.list"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// OrganizationPage is one keyset page. NextAfter is the cursor for the next
// page and is 0 when this page is the last.
type OrganizationPage struct {
	Organizations []model.Organization
	NextAfter     int64
}

type OrganizationService interface {
	Create(ctx context.Context, profile model.OrganizationProfile) (*model.Organization, error)
	Get(ctx context.Context, id int64) (*model.Organization, error)
	List(ctx context.Context, afterID int64, limit int) (*OrganizationPage, error)
	Update(ctx context.Context, id int64, profile model.OrganizationProfile) (*model.Organization, error)
	Delete(ctx context.Context, id int64) error
	SearchGrants(ctx context.Context, id int64, filters *model.SearchFilters) (*SearchResult, error)
}

type organizationService struct {
	orgs   store.OrganizationStore
	tx     TxRunner
	grants GrantService
}

func NewOrganizationService(orgs store.OrganizationStore, tx TxRunner, grants GrantService) OrganizationService {
	return &organizationService{orgs: orgs, tx: tx, grants: grants}
}

func (s *organizationService) Create(ctx context.Context, profile model.OrganizationProfile) (*model.Organization, error) {
	profile, err := validateProfile(profile)
	if err != nil {
		return nil, err
	}

	org := &model.Organization{ID: id.New(), Profile: profile}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID, "legal_name", profile.LegalName)
	return org, nil
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*model.Organization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("getting organization %d: %w", orgID, err)
	}
	return org, nil
}

// List pages through stored organizations in ID order. A zero limit means
// DefaultPageSize.
func (s *organizationService) List(ctx context.Context, afterID int64, limit int) (*OrganizationPage, error) {
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 1 || limit > MaxPageSize {
		return nil, domain.ValidationError(opListOrgs, fmt.Sprintf("limit must be between 1 and %d, got %d", MaxPageSize, limit))
	}
	if afterID < 0 {
		return nil, domain.ValidationError(opListOrgs, "after must not be negative")
	}

	// One extra row tells us whether another page exists.
	orgs, err := s.orgs.List(ctx, afterID, limit+1)
	if err != nil {
		return nil, err
	}

	page := &OrganizationPage{Organizations: orgs}
	if len(orgs) > limit {
		page.Organizations = orgs[:limit]
		page.NextAfter = orgs[limit-1].ID
	}
	return page, nil
}

func (s *organizationService) Update(ctx context.Context, orgID int64, profile model.OrganizationProfile) (*model.Organization, error) {
	profile, err := validateProfile(profile)
	if err != nil {
		return nil, err
	}

	var updated *model.Organization
	err = s.tx.WithTx(ctx, func(stores StoreProvider) error {
		orgs := stores.Organizations()
		org, err := orgs.GetByID(ctx, orgID)
		if err != nil {
			return fmt.Errorf("getting organization %d: %w", orgID, err)
		}

		org.Profile = profile
		if err := orgs.Update(ctx, org); err != nil {
			return fmt.Errorf("updating organization %d: %w", orgID, err)
		}
		updated = org
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization updated", "organization_id", orgID)
	return updated, nil
}

func (s *organizationService) Delete(ctx context.Context, orgID int64) error {
	if err := s.orgs.Delete(ctx, orgID); err != nil {
		return fmt.Errorf("deleting organization %d: %w", orgID, err)
	}
	slog.InfoContext(ctx, "organization deleted", "organization_id", orgID)
	return nil
}

// SearchGrants runs discovery with the stored profile of the organization.
func (s *organizationService) SearchGrants(ctx context.Context, orgID int64, filters *model.SearchFilters) (*SearchResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &orgID})

	org, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.grants.Search(ctx, org.Profile, filters)
}
