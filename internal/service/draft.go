package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/drafter"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/store"
)

const opDraft = "draft.generate"

// DraftParams names the application PDF and the organization, either as a
// free-text summary or as a stored organization ID.
type DraftParams struct {
	PDFURL              string
	OrganizationSummary string
	OrganizationID      *int64
}

type DraftService interface {
	Generate(ctx context.Context, params DraftParams) (*drafter.Draft, error)
}

type draftService struct {
	drafter drafter.Drafter
	orgs    store.OrganizationStore
}

// NewDraftService builds a DraftService. orgs may be nil when persistence is
// disabled; requests by organization ID then fail with a configuration error.
func NewDraftService(d drafter.Drafter, orgs store.OrganizationStore) DraftService {
	return &draftService{drafter: d, orgs: orgs}
}

func (s *draftService) Generate(ctx context.Context, params DraftParams) (*drafter.Draft, error) {
	pdfURL := strings.TrimSpace(params.PDFURL)
	if !model.IsAbsoluteURL(pdfURL) {
		return nil, domain.ValidationError(opDraft, "pdf_url must be an absolute http(s) url")
	}

	summary := strings.TrimSpace(params.OrganizationSummary)
	if params.OrganizationID != nil {
		ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: params.OrganizationID})
		if s.orgs == nil {
			return nil, domain.ConfigurationError(opDraft, "organization profiles are not configured")
		}
		org, err := s.orgs.GetByID(ctx, *params.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("getting organization %d: %w", *params.OrganizationID, err)
		}
		summary = drafter.SummarizeProfile(org.Profile)
	}
	if summary == "" {
		return nil, domain.ValidationError(opDraft, "organization_summary or organization_id is required")
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{GrantURL: &pdfURL, Component: "grantly.service.drafts"})
	return s.drafter.Draft(ctx, drafter.Request{PDFURL: pdfURL, OrganizationSummary: summary})
}
