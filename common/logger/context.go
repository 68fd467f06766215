package logger

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
)

type ctxKey struct{}

var logFieldsKey ctxKey

// LogFields are request-scoped values stamped onto every log record and span
// started under the context. Nil and empty fields are omitted.
type LogFields struct {
	OrganizationID *int64
	Mode           *string // "mock" or "live"
	GrantURL       *string
	Component      string // e.g. "grantly.discovery.finder"
	RequestID      string
}

// WithLogFields merges fields into those already on ctx. Set fields in the
// argument win; unset ones keep the existing value.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	return context.WithValue(ctx, logFieldsKey, GetLogFields(ctx).merge(fields))
}

func GetLogFields(ctx context.Context) LogFields {
	fields, _ := ctx.Value(logFieldsKey).(LogFields)
	return fields
}

func (f LogFields) merge(next LogFields) LogFields {
	if next.OrganizationID != nil {
		f.OrganizationID = next.OrganizationID
	}
	if next.Mode != nil {
		f.Mode = next.Mode
	}
	if next.GrantURL != nil {
		f.GrantURL = next.GrantURL
	}
	if next.Component != "" {
		f.Component = next.Component
	}
	if next.RequestID != "" {
		f.RequestID = next.RequestID
	}
	return f
}

func (f LogFields) attrs() []slog.Attr {
	var out []slog.Attr
	if f.OrganizationID != nil {
		out = append(out, slog.Int64("organization_id", *f.OrganizationID))
	}
	if f.Mode != nil {
		out = append(out, slog.String("mode", *f.Mode))
	}
	if f.GrantURL != nil {
		out = append(out, slog.String("grant_url", *f.GrantURL))
	}
	if f.Component != "" {
		out = append(out, slog.String("component", f.Component))
	}
	if f.RequestID != "" {
		out = append(out, slog.String("request_id", f.RequestID))
	}
	return out
}

func (f LogFields) spanAttrs() []attribute.KeyValue {
	var out []attribute.KeyValue
	if f.OrganizationID != nil {
		out = append(out, attribute.Int64("grantly.organization_id", *f.OrganizationID))
	}
	if f.Mode != nil {
		out = append(out, attribute.String("grantly.mode", *f.Mode))
	}
	if f.GrantURL != nil {
		out = append(out, attribute.String("grantly.grant_url", *f.GrantURL))
	}
	if f.Component != "" {
		out = append(out, attribute.String("grantly.component", f.Component))
	}
	if f.RequestID != "" {
		out = append(out, attribute.String("grantly.request_id", f.RequestID))
	}
	return out
}

func Ptr[T any](v T) *T {
	return &v
}

// Truncate shortens s to at most maxLen runes and appends "..." when it cut
// anything.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
