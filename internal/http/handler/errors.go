package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/http/dto"
	"github.com/WanderingWalnut/Grantly/internal/locator"
	"github.com/WanderingWalnut/Grantly/internal/store"
)

// StatusFor maps an error to the HTTP status the API reports for it.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, locator.ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpstream):
		var de *domain.Error
		if errors.As(err, &de) && de.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()
	status := StatusFor(err)

	resp := dto.ErrorResponse{Error: publicMessage(status, action)}
	var de *domain.Error
	if errors.As(err, &de) && (de.Kind == domain.KindValidation || de.Kind == domain.KindConfiguration) {
		resp.Detail = de.Msg
	}

	if status >= 500 {
		slog.ErrorContext(ctx, "failed to "+action, "error", err, "status", status)
	} else {
		slog.WarnContext(ctx, "failed to "+action, "error", err, "status", status)
	}
	c.JSON(status, resp)
}

func publicMessage(status int, action string) string {
	switch status {
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnprocessableEntity:
		return "invalid request"
	case http.StatusServiceUnavailable:
		return "service not available"
	case http.StatusBadGateway:
		return "upstream service error"
	case http.StatusGatewayTimeout:
		return "upstream service timed out"
	default:
		return "failed to " + action
	}
}

func respondBindError(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request", "error", err)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Detail: err.Error()})
}
