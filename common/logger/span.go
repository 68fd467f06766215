package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "grantly"

// Span is a started span paired with the context that carries it.
type Span struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan opens a child span of whatever trace ctx carries. The request's
// LogFields are copied onto the span as grantly.* attributes.
//
//	sp := logger.StartSpan(ctx, "discovery.live_search")
//	defer sp.End()
//	ctx = sp.Context()
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *Span {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	sp := &Span{ctx: ctx, span: span}
	sp.SetAttributes(GetLogFields(ctx).spanAttrs()...)
	return sp
}

func (s *Span) Context() context.Context {
	return s.ctx
}

func (s *Span) SetAttributes(attrs ...attribute.KeyValue) {
	if len(attrs) > 0 {
		s.span.SetAttributes(attrs...)
	}
}

// Fail records err and marks the span as errored. A nil err is ignored.
func (s *Span) Fail(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// End may be called more than once.
func (s *Span) End() {
	s.span.End()
}
