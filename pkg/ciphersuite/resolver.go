package ciphersuite

import (
	"context"
	"time"

	"github.com/pzverkov/suitepolicy/pkg/metrics"
)

// Resolver runs Explain with logging, tracing and metrics attached.
// A Resolver is safe for concurrent use.
type Resolver struct {
	logger    *metrics.Logger
	tracer    metrics.Tracer
	collector *metrics.Collector
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *metrics.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// WithTracer sets the tracer. Defaults to the global tracer.
func WithTracer(t metrics.Tracer) ResolverOption {
	return func(r *Resolver) { r.tracer = t }
}

// WithCollector sets the metrics collector. Defaults to metrics.Global().
func WithCollector(c *metrics.Collector) ResolverOption {
	return func(r *Resolver) { r.collector = c }
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = metrics.GetLogger().Named("ciphersuite")
	}
	if r.tracer == nil {
		r.tracer = metrics.GetTracer()
	}
	if r.collector == nil {
		r.collector = metrics.Global()
	}
	return r
}

// Resolve computes the final suite list for in. The returned error is
// non-nil only for invalid input; an empty result is logged as a warning
// and returned as is so the caller decides whether it is fatal.
func (r *Resolver) Resolve(ctx context.Context, in Input) (Resolution, error) {
	attrs := metrics.PolicyAttributes{
		DefaultCount:   len(in.Default),
		SupportedCount: in.Supported.Len(),
		Adjusted:       in.AdjustByRecommendation,
		HasWhitelist:   in.Whitelist != nil,
		HasBlacklist:   in.Blacklist != nil,
		HasOrdering:    in.Ordering != nil,
	}
	_, end := r.tracer.StartSpan(ctx, metrics.SpanResolve, metrics.WithAttributes(attrs.ToMap()))

	start := time.Now()
	res, err := Explain(in)
	latency := time.Since(start)
	end(err)

	if err != nil {
		r.collector.RecordResolutionError()
		r.logger.Error("cipher suite resolution rejected", metrics.Fields{"error": err.Error()})
		return res, err
	}

	r.collector.RecordResolution(metrics.ResolutionStats{
		ResultSize:            len(res.Suites),
		Injected:              len(res.Injected),
		DroppedRecommendation: len(res.RemovedBy(ReasonRecommendation)),
		DroppedBlacklist:      len(res.RemovedBy(ReasonBlacklist)),
		DroppedUnsupported:    len(res.RemovedBy(ReasonUnsupported)),
		Latency:               latency,
	})

	if len(res.Suites) == 0 {
		r.logger.Warn("no cipher suites left after resolution", metrics.Fields{
			"default_count":   len(in.Default),
			"supported_count": in.Supported.Len(),
			"removed":         len(res.Removed),
		})
		return res, nil
	}

	if r.logger.Enabled(metrics.LevelDebug) {
		r.logger.Debug("cipher suites resolved", metrics.Fields{
			"count":       len(res.Suites),
			"suites":      res.Suites,
			"injected":    res.Injected,
			"fingerprint": Fingerprint(res.Suites),
		})
	}
	return res, nil
}
