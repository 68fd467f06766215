package dto

import (
	"github.com/WanderingWalnut/Grantly/internal/model"
)

type SearchGrantsRequest struct {
	Organization *model.OrganizationProfile `json:"organization" binding:"required"`
	Filters      *model.SearchFilters       `json:"filters,omitempty"`
}

type ApplicationLinkRequest struct {
	GrantURL string `json:"grant_url" binding:"required"`
}

// DraftRequest names the organization either by free-text summary or by a
// stored organization ID.
type DraftRequest struct {
	PDFURL              string `json:"pdf_url" binding:"required"`
	OrganizationSummary string `json:"organization_summary,omitempty"`
	OrganizationID      *int64 `json:"organization_id,string,omitempty"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
