package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/WanderingWalnut/Grantly/internal/http/dto"
)

// Recovery converts a handler panic into a 500 with the standard error body
// and marks the request span as failed. Panics with http.ErrAbortHandler are
// re-raised so net/http can drop the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			ctx := c.Request.Context()
			msg := fmt.Sprint(rec)
			span := trace.SpanFromContext(ctx)
			span.AddEvent("panic", trace.WithAttributes(attribute.String("exception.message", msg)))
			span.SetStatus(codes.Error, "panic: "+msg)

			slog.ErrorContext(ctx, "panic recovered",
				"panic", msg,
				"method", c.Request.Method,
				"route", c.FullPath(),
				"stack", string(debug.Stack()))

			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		}()
		c.Next()
	}
}
