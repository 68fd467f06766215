package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WanderingWalnut/Grantly/common/id"
	"github.com/WanderingWalnut/Grantly/internal/http/dto"
	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), req.OrganizationProfile)
	if err != nil {
		respondError(c, err, "create organization")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := parseID(c)
	if !ok {
		return
	}

	org, err := h.orgService.Get(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "get organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) List(c *gin.Context) {
	var q dto.ListOrganizationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.orgService.List(c.Request.Context(), q.After, q.Limit)
	if err != nil {
		respondError(c, err, "list organizations")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(page.Organizations, page.NextAfter))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), orgID, req.OrganizationProfile)
	if err != nil {
		respondError(c, err, "update organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	orgID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orgService.Delete(c.Request.Context(), orgID); err != nil {
		respondError(c, err, "delete organization")
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchGrants runs discovery for a stored organization. An empty body means
// no filters.
func (h *OrganizationHandler) SearchGrants(c *gin.Context) {
	orgID, ok := parseID(c)
	if !ok {
		return
	}

	filters := &model.SearchFilters{}
	if err := c.ShouldBindJSON(filters); err != nil {
		if !errors.Is(err, io.EOF) {
			respondBindError(c, err)
			return
		}
		filters = nil
	}

	res, err := h.orgService.SearchGrants(c.Request.Context(), orgID, filters)
	if err != nil {
		respondError(c, err, "search grants")
		return
	}
	c.JSON(http.StatusOK, res)
}

func parseID(c *gin.Context) (int64, bool) {
	orgID, err := id.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid organization id"})
		return 0, false
	}
	return orgID, true
}
