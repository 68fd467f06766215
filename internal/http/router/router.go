package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/WanderingWalnut/Grantly/internal/http/handler"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

const readyTimeout = 2 * time.Second

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		checks, ok := services.Ready(ctx)
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
	})

	grantHandler := handler.NewGrantHandler(services.Grants(), services.ApplicationLinks(), services.Drafts())
	GrantRouter(router.Group("/api/grants"), grantHandler)

	if services.HasOrganizations() {
		v1 := router.Group("/api/v1")
		orgHandler := handler.NewOrganizationHandler(services.Organizations())
		OrganizationRouter(v1.Group("/organizations"), orgHandler)
	}
}

func GrantRouter(rg *gin.RouterGroup, h *handler.GrantHandler) {
	rg.POST("/search", h.Search)
	rg.POST("/application-link", h.ApplicationLink)
	rg.POST("/drafts", h.Draft)
}

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/grants/search", h.SearchGrants)
}
