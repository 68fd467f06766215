package dto

import (
	"time"

	"github.com/WanderingWalnut/Grantly/internal/model"
)

type OrganizationRequest struct {
	model.OrganizationProfile
}

type OrganizationResponse struct {
	model.OrganizationProfile
	ID        int64     `json:"id,string"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToOrganizationResponse(org *model.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		OrganizationProfile: org.Profile,
		ID:                  org.ID,
		CreatedAt:           org.CreatedAt,
		UpdatedAt:           org.UpdatedAt,
	}
}

type ListOrganizationsQuery struct {
	After int64 `form:"after"`
	Limit int   `form:"limit"`
}

type OrganizationListResponse struct {
	Organizations []*OrganizationResponse `json:"organizations"`
	NextAfter     int64                   `json:"next_after,string,omitempty"`
}

func ToOrganizationListResponse(orgs []model.Organization, nextAfter int64) *OrganizationListResponse {
	out := make([]*OrganizationResponse, len(orgs))
	for i := range orgs {
		out[i] = ToOrganizationResponse(&orgs[i])
	}
	return &OrganizationListResponse{Organizations: out, NextAfter: nextAfter}
}
