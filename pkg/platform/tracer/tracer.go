// Package tracer wraps OpenTelemetry spans behind a small interface so the
// services can end a span with its error in one deferred call.
//
// Nothing here installs an SDK. Until the process registers a provider
// through otel.SetTracerProvider, spans are recorded nowhere.
package tracer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Attribute = attribute.KeyValue

func String(key, value string) Attribute {
	return attribute.String(key, value)
}

func Bool(key string, value bool) Attribute {
	return attribute.Bool(key, value)
}

func Int64(key string, value int64) Attribute {
	return attribute.Int64(key, value)
}

func Float64(key string, value float64) Attribute {
	return attribute.Float64(key, value)
}

// Duration records value in whole milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return attribute.Int64(key, value.Milliseconds())
}

// Span is an open span. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// OTelTracer starts spans on an OpenTelemetry tracer.
type OTelTracer struct {
	tracer trace.Tracer
}

// NewOTel resolves name against the global provider.
func NewOTel(name string) *OTelTracer {
	return New(otel.Tracer(name))
}

// New wraps an already configured tracer.
func New(t trace.Tracer) *OTelTracer {
	return &OTelTracer{tracer: t}
}

// NewNoop returns a tracer whose spans are never sampled.
func NewNoop() *OTelTracer {
	return New(noop.NewTracerProvider().Tracer(""))
}

func (t *OTelTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, otelSpan{span: span}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}

func (s otelSpan) SetAttributes(attrs ...Attribute) {
	s.span.SetAttributes(attrs...)
}

func (s otelSpan) AddEvent(name string, attrs ...Attribute) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Span names.
const (
	SpanGrantAccess      = "entitlement.grant"
	SpanConvertRental    = "entitlement.convert"
	SpanReaderLock       = "entitlement.reader_lock"
	SpanChargePoints     = "points.charge"
	SpanPaymentProcessed = "points.payment"
)

// Attribute keys.
const (
	AttrReaderID        = "reader.id"
	AttrEpisodeID       = "episode.id"
	AttrKind            = "entitlement.kind"
	AttrGranted         = "entitlement.granted"
	AttrAlreadyEntitled = "entitlement.already_entitled"
	AttrConverted       = "entitlement.converted"
	AttrPointsCharged   = "points.charged"
	AttrPaymentMethod   = "payment.method"
	AttrAmountWon       = "payment.amount_won"
	AttrLockWaitMs      = "lock.wait_ms"
)
