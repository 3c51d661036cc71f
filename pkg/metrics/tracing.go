package metrics

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Tracer starts spans around policy operations. Implementations exist for
// no-op, in-memory recording, and OpenTelemetry (built with -tags otel).
type Tracer interface {
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder)
}

// SpanEnder ends a span. Pass nil on success or the error that ended it.
type SpanEnder func(err error)

// SpanOption configures span behavior.
type SpanOption func(*spanConfig)

type spanConfig struct {
	kind       SpanKind
	attributes map[string]interface{}
}

func newSpanConfig(opts []SpanOption) *spanConfig {
	cfg := &spanConfig{
		kind:       SpanKindInternal,
		attributes: make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// SpanKind identifies the type of span.
type SpanKind int

const (
	SpanKindInternal SpanKind = iota
	SpanKindServer
	SpanKindClient
)

// WithSpanKind sets the span kind.
func WithSpanKind(kind SpanKind) SpanOption {
	return func(c *spanConfig) { c.kind = kind }
}

// WithAttributes merges attributes into the span.
func WithAttributes(attrs map[string]interface{}) SpanOption {
	return func(c *spanConfig) {
		for k, v := range attrs {
			c.attributes[k] = v
		}
	}
}

// Span names.
const (
	SpanResolve    = "suitepolicy.resolve"
	SpanApply      = "suitepolicy.apply"
	SpanLoadConfig = "suitepolicy.config.load"
)

// NoOpTracer is the default tracer.
type NoOpTracer struct{}

// StartSpan returns ctx unchanged and a no-op end function.
func (NoOpTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return ctx, func(error) {}
}

// SimpleTracer records finished spans in memory. Intended for tests and
// the CLI's --tracing simple mode.
type SimpleTracer struct {
	mu     sync.Mutex
	spans  []RecordedSpan
	nextID atomic.Uint64
}

// RecordedSpan is a finished span.
type RecordedSpan struct {
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	Kind       SpanKind
	Attributes map[string]interface{}
	Error      error
	SpanID     string
	ParentID   string
}

// NewSimpleTracer creates a new SimpleTracer.
func NewSimpleTracer() *SimpleTracer {
	return &SimpleTracer{}
}

// StartSpan starts a span, nesting it under any span already in ctx.
func (t *SimpleTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	cfg := newSpanConfig(opts)
	span := &RecordedSpan{
		Name:       name,
		StartTime:  time.Now(),
		Kind:       cfg.kind,
		Attributes: cfg.attributes,
		SpanID:     strconv.FormatUint(t.nextID.Add(1), 16),
	}
	if parent, ok := ctx.Value(spanContextKey{}).(*RecordedSpan); ok {
		span.ParentID = parent.SpanID
	}

	ctx = context.WithValue(ctx, spanContextKey{}, span)
	return ctx, func(err error) {
		span.Duration = time.Since(span.StartTime)
		span.Error = err

		t.mu.Lock()
		t.spans = append(t.spans, *span)
		t.mu.Unlock()
	}
}

// Spans returns all recorded spans in completion order.
func (t *SimpleTracer) Spans() []RecordedSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]RecordedSpan, len(t.spans))
	copy(out, t.spans)
	return out
}

// Reset clears all recorded spans.
func (t *SimpleTracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = t.spans[:0]
}

type spanContextKey struct{}

// --- Global Tracer ---

var (
	globalTracer   Tracer = NoOpTracer{}
	globalTracerMu sync.RWMutex
)

// SetTracer sets the global tracer. A nil tracer restores the no-op tracer.
func SetTracer(t Tracer) {
	if t == nil {
		t = NoOpTracer{}
	}
	globalTracerMu.Lock()
	defer globalTracerMu.Unlock()
	globalTracer = t
}

// GetTracer returns the global tracer.
func GetTracer() Tracer {
	globalTracerMu.RLock()
	defer globalTracerMu.RUnlock()
	return globalTracer
}

// StartSpan starts a span on the global tracer.
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return GetTracer().StartSpan(ctx, name, opts...)
}

// PolicyAttributes describes the inputs of one resolution.
type PolicyAttributes struct {
	DefaultCount   int
	SupportedCount int
	Adjusted       bool
	HasWhitelist   bool
	HasBlacklist   bool
	HasOrdering    bool
}

// ToMap converts PolicyAttributes to a generic map for use with tracers.
func (a PolicyAttributes) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"policy.default_count":   a.DefaultCount,
		"policy.supported_count": a.SupportedCount,
		"policy.adjusted":        a.Adjusted,
		"policy.whitelist":       a.HasWhitelist,
		"policy.blacklist":       a.HasBlacklist,
		"policy.ordering":        a.HasOrdering,
	}
}
