package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector aggregates counters for cipher-suite policy resolution.
type Collector struct {
	resolutions      atomic.Uint64
	resolutionErrors atomic.Uint64
	emptyResults     atomic.Uint64
	applyErrors      atomic.Uint64

	droppedRecommendation atomic.Uint64
	droppedBlacklist      atomic.Uint64
	droppedUnsupported    atomic.Uint64
	whitelistInjected     atomic.Uint64

	lastResultSize atomic.Int64

	resolveLatency *Histogram

	createdAt time.Time
	labels    Labels
}

// Labels represents key-value pairs for metric labeling.
type Labels map[string]string

// ResolveLatencyBuckets are upper bounds in microseconds.
var ResolveLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

// NewCollector creates a new metrics collector.
func NewCollector(labels Labels) *Collector {
	if labels == nil {
		labels = make(Labels)
	}
	c := &Collector{
		resolveLatency: NewHistogram(ResolveLatencyBuckets),
		createdAt:      time.Now(),
		labels:         labels,
	}
	c.lastResultSize.Store(-1)
	return c
}

// ResolutionStats describes one finished resolution.
type ResolutionStats struct {
	ResultSize            int
	Injected              int
	DroppedRecommendation int
	DroppedBlacklist      int
	DroppedUnsupported    int
	Latency               time.Duration
}

// RecordResolution records a successful resolution.
func (c *Collector) RecordResolution(s ResolutionStats) {
	c.resolutions.Add(1)
	if s.ResultSize == 0 {
		c.emptyResults.Add(1)
	}
	c.whitelistInjected.Add(uint64(s.Injected))
	c.droppedRecommendation.Add(uint64(s.DroppedRecommendation))
	c.droppedBlacklist.Add(uint64(s.DroppedBlacklist))
	c.droppedUnsupported.Add(uint64(s.DroppedUnsupported))
	c.lastResultSize.Store(int64(s.ResultSize))
	c.resolveLatency.Observe(float64(s.Latency.Microseconds()))
}

// RecordResolutionError records a rejected resolution.
func (c *Collector) RecordResolutionError() {
	c.resolutionErrors.Add(1)
}

// RecordApplyError records a failure to apply a list to a TLS config.
func (c *Collector) RecordApplyError() {
	c.applyErrors.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	Timestamp time.Time
	Uptime    time.Duration

	Resolutions      uint64
	ResolutionErrors uint64
	EmptyResults     uint64
	ApplyErrors      uint64

	DroppedRecommendation uint64
	DroppedBlacklist      uint64
	DroppedUnsupported    uint64
	WhitelistInjected     uint64

	// LastResultSize is -1 until the first resolution.
	LastResultSize int64

	ResolveLatency HistogramSummary

	Labels Labels
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Timestamp:             time.Now(),
		Uptime:                time.Since(c.createdAt),
		Resolutions:           c.resolutions.Load(),
		ResolutionErrors:      c.resolutionErrors.Load(),
		EmptyResults:          c.emptyResults.Load(),
		ApplyErrors:           c.applyErrors.Load(),
		DroppedRecommendation: c.droppedRecommendation.Load(),
		DroppedBlacklist:      c.droppedBlacklist.Load(),
		DroppedUnsupported:    c.droppedUnsupported.Load(),
		WhitelistInjected:     c.whitelistInjected.Load(),
		LastResultSize:        c.lastResultSize.Load(),
		ResolveLatency:        c.resolveLatency.Summary(),
		Labels:                c.labels,
	}
}

// Reset clears all metrics.
func (c *Collector) Reset() {
	c.resolutions.Store(0)
	c.resolutionErrors.Store(0)
	c.emptyResults.Store(0)
	c.applyErrors.Store(0)
	c.droppedRecommendation.Store(0)
	c.droppedBlacklist.Store(0)
	c.droppedUnsupported.Store(0)
	c.whitelistInjected.Store(0)
	c.lastResultSize.Store(-1)
	c.resolveLatency.Reset()
}

// --- Global Collector ---

var (
	globalCollector   *Collector
	globalCollectorMu sync.Mutex
)

// Global returns the global collector, creating it on first use.
func Global() *Collector {
	globalCollectorMu.Lock()
	defer globalCollectorMu.Unlock()
	if globalCollector == nil {
		globalCollector = NewCollector(Labels{"instance": "default"})
	}
	return globalCollector
}

// SetGlobal replaces the global collector.
func SetGlobal(c *Collector) {
	globalCollectorMu.Lock()
	defer globalCollectorMu.Unlock()
	globalCollector = c
}
