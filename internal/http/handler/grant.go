package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WanderingWalnut/Grantly/internal/http/dto"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

type GrantHandler struct {
	grants service.GrantService
	links  service.ApplicationLinkService
	drafts service.DraftService
}

func NewGrantHandler(grants service.GrantService, links service.ApplicationLinkService, drafts service.DraftService) *GrantHandler {
	return &GrantHandler{grants: grants, links: links, drafts: drafts}
}

func (h *GrantHandler) Search(c *gin.Context) {
	var req dto.SearchGrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.grants.Search(c.Request.Context(), *req.Organization, req.Filters)
	if err != nil {
		respondError(c, err, "search grants")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GrantHandler) ApplicationLink(c *gin.Context) {
	var req dto.ApplicationLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	link, err := h.links.Locate(c.Request.Context(), req.GrantURL)
	if err != nil {
		respondError(c, err, "locate application link")
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *GrantHandler) Draft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := h.drafts.Generate(c.Request.Context(), service.DraftParams{
		PDFURL:              req.PDFURL,
		OrganizationSummary: req.OrganizationSummary,
		OrganizationID:      req.OrganizationID,
	})
	if err != nil {
		respondError(c, err, "generate draft")
		return
	}
	c.JSON(http.StatusOK, draft)
}
