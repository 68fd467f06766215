package handler_test

import (
	"context"

	"github.com/WanderingWalnut/Grantly/internal/drafter"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

type mockGrantService struct {
	searchFn func(ctx context.Context, profile model.OrganizationProfile, filters *model.SearchFilters) (*service.SearchResult, error)
}

func (m *mockGrantService) Search(ctx context.Context, profile model.OrganizationProfile, filters *model.SearchFilters) (*service.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, profile, filters)
	}
	return &service.SearchResult{Results: []model.Grant{}}, nil
}

type mockLinkService struct {
	locateFn func(ctx context.Context, grantURL string) (*service.ApplicationLink, error)
}

func (m *mockLinkService) Locate(ctx context.Context, grantURL string) (*service.ApplicationLink, error) {
	if m.locateFn != nil {
		return m.locateFn(ctx, grantURL)
	}
	return &service.ApplicationLink{GrantURL: grantURL}, nil
}

type mockDraftService struct {
	generateFn func(ctx context.Context, params service.DraftParams) (*drafter.Draft, error)
}

func (m *mockDraftService) Generate(ctx context.Context, params service.DraftParams) (*drafter.Draft, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, params)
	}
	return &drafter.Draft{}, nil
}

type mockOrganizationService struct {
	createFn       func(ctx context.Context, profile model.OrganizationProfile) (*model.Organization, error)
	getFn          func(ctx context.Context, id int64) (*model.Organization, error)
	listFn         func(ctx context.Context, afterID int64, limit int) (*service.OrganizationPage, error)
	updateFn       func(ctx context.Context, id int64, profile model.OrganizationProfile) (*model.Organization, error)
	deleteFn       func(ctx context.Context, id int64) error
	searchGrantsFn func(ctx context.Context, id int64, filters *model.SearchFilters) (*service.SearchResult, error)
}

func (m *mockOrganizationService) Create(ctx context.Context, profile model.OrganizationProfile) (*model.Organization, error) {
	if m.createFn != nil {
		return m.createFn(ctx, profile)
	}
	return &model.Organization{Profile: profile}, nil
}

func (m *mockOrganizationService) Get(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Organization{ID: id}, nil
}

func (m *mockOrganizationService) List(ctx context.Context, afterID int64, limit int) (*service.OrganizationPage, error) {
	if m.listFn != nil {
		return m.listFn(ctx, afterID, limit)
	}
	return &service.OrganizationPage{Organizations: []model.Organization{}}, nil
}

func (m *mockOrganizationService) Update(ctx context.Context, id int64, profile model.OrganizationProfile) (*model.Organization, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, profile)
	}
	return &model.Organization{ID: id, Profile: profile}, nil
}

func (m *mockOrganizationService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockOrganizationService) SearchGrants(ctx context.Context, id int64, filters *model.SearchFilters) (*service.SearchResult, error) {
	if m.searchGrantsFn != nil {
		return m.searchGrantsFn(ctx, id, filters)
	}
	return &service.SearchResult{Results: []model.Grant{}}, nil
}
