// Package tracer wraps OpenTelemetry so workflow services can record one span
// per operation without depending on otel APIs throughout the codebase.
package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute is a key/value pair attached to a span.
type Attribute struct {
	Key   string
	Value string
}

// String builds a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Tracer starts spans for workflow operations.
type Tracer struct {
	tracer trace.Tracer
}

// Option configures the Tracer.
type Option func(*Tracer)

// WithTracer injects a pre-configured OpenTelemetry tracer, useful in tests.
func WithTracer(t trace.Tracer) Option {
	return func(tr *Tracer) {
		tr.tracer = t
	}
}

// New creates an OpenTelemetry-backed tracer. By default it uses the global
// tracer provider under the "allograft/workflow" instrumentation name.
func New(opts ...Option) *Tracer {
	t := &Tracer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer("allograft/workflow")
	}
	return t
}

// Span is a started span; End records the outcome.
type Span struct {
	span trace.Span
}

// Start creates a new span with the given name and attributes.
func (t *Tracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(a.Key, a.Value))
	}
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(otelAttrs...))
	return ctx, Span{span: span}
}

// End completes the span, recording any error.
func (s Span) End(err error) {
	if s.span == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}
