package metrics

import (
	"math"
	"sort"
	"sync"
)

// Histogram counts observations into fixed upper-bound buckets.
// Safe for concurrent use.
type Histogram struct {
	mu     sync.Mutex
	bounds []float64 // ascending upper bounds
	counts []uint64  // per bucket, last entry is +Inf
	sum    float64
	count  uint64
}

// NewHistogram creates a histogram with the given bucket upper bounds.
func NewHistogram(bounds []float64) *Histogram {
	b := append([]float64(nil), bounds...)
	sort.Float64s(b)
	return &Histogram{
		bounds: b,
		counts: make([]uint64, len(b)+1),
	}
}

// Observe records v.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[sort.SearchFloat64s(h.bounds, v)]++
	h.sum += v
	h.count++
}

// HistogramSummary is a point-in-time copy of a histogram.
type HistogramSummary struct {
	Count   uint64        `json:"count"`
	Sum     float64       `json:"sum"`
	Mean    float64       `json:"mean"`
	Buckets []BucketCount `json:"buckets"`
}

// BucketCount is a cumulative bucket count.
type BucketCount struct {
	UpperBound float64 `json:"le"`
	Count      uint64  `json:"count"`
}

// Summary returns cumulative bucket counts including the +Inf bucket.
func (h *Histogram) Summary() HistogramSummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := HistogramSummary{
		Count:   h.count,
		Sum:     h.sum,
		Buckets: make([]BucketCount, 0, len(h.counts)),
	}
	if h.count > 0 {
		s.Mean = h.sum / float64(h.count)
	}

	var cumulative uint64
	for i, c := range h.counts {
		cumulative += c
		bound := math.Inf(1)
		if i < len(h.bounds) {
			bound = h.bounds[i]
		}
		s.Buckets = append(s.Buckets, BucketCount{UpperBound: bound, Count: cumulative})
	}
	return s
}

// Reset clears all observations.
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.counts {
		h.counts[i] = 0
	}
	h.sum = 0
	h.count = 0
}
