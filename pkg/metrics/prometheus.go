package metrics

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
)

// PrometheusExporter exports a Collector in Prometheus text format.
type PrometheusExporter struct {
	collector *Collector
	namespace string
}

// NewPrometheusExporter creates an exporter. namespace is prepended to all
// metric names, e.g. "suitepolicy".
func NewPrometheusExporter(c *Collector, namespace string) *PrometheusExporter {
	return &PrometheusExporter{collector: c, namespace: namespace}
}

// Handler returns an http.Handler that serves the metrics.
func (e *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		e.WriteMetrics(w)
	})
}

type promSample struct {
	name  string
	help  string
	typ   string
	value float64
}

// WriteMetrics writes all metrics in Prometheus text format to w.
func (e *PrometheusExporter) WriteMetrics(w io.Writer) {
	snap := e.collector.Snapshot()
	labels := formatLabels(snap.Labels)

	samples := []promSample{
		{"resolutions_total", "Total cipher-suite resolutions", "counter", float64(snap.Resolutions)},
		{"resolution_errors_total", "Resolutions rejected for invalid input", "counter", float64(snap.ResolutionErrors)},
		{"empty_results_total", "Resolutions that left no cipher suite", "counter", float64(snap.EmptyResults)},
		{"apply_errors_total", "Failures applying a suite list to a TLS config", "counter", float64(snap.ApplyErrors)},
		{"whitelist_injected_total", "Suites appended from the whitelist", "counter", float64(snap.WhitelistInjected)},
		{"last_result_size", "Number of suites in the most recent result, -1 before the first", "gauge", float64(snap.LastResultSize)},
		{"uptime_seconds", "Seconds since the collector was created", "gauge", snap.Uptime.Seconds()},
	}
	for _, s := range samples {
		e.writeHeader(w, s.name, s.help, s.typ)
		e.writeSample(w, s.name, labels, s.value)
	}

	e.writeHeader(w, "suites_dropped_total", "Suites removed during resolution by reason", "counter")
	for _, d := range []struct {
		reason string
		n      uint64
	}{
		{"recommendation", snap.DroppedRecommendation},
		{"blacklist", snap.DroppedBlacklist},
		{"unsupported", snap.DroppedUnsupported},
	} {
		e.writeSample(w, "suites_dropped_total", joinLabels(labels, `reason="`+d.reason+`"`), float64(d.n))
	}

	e.writeHistogram(w, "resolve_duration_microseconds", "Resolution latency in microseconds", labels, snap.ResolveLatency)
}

func (e *PrometheusExporter) writeHeader(w io.Writer, name, help, typ string) {
	fmt.Fprintf(w, "# HELP %s_%s %s\n", e.namespace, name, help)
	fmt.Fprintf(w, "# TYPE %s_%s %s\n", e.namespace, name, typ)
}

func (e *PrometheusExporter) writeSample(w io.Writer, name, labels string, value float64) {
	if labels != "" {
		fmt.Fprintf(w, "%s_%s{%s} %g\n", e.namespace, name, labels, value)
		return
	}
	fmt.Fprintf(w, "%s_%s %g\n", e.namespace, name, value)
}

func (e *PrometheusExporter) writeHistogram(w io.Writer, name, help, labels string, h HistogramSummary) {
	e.writeHeader(w, name, help, "histogram")
	for _, b := range h.Buckets {
		le := fmt.Sprintf("%g", b.UpperBound)
		if math.IsInf(b.UpperBound, 1) {
			le = "+Inf"
		}
		e.writeSample(w, name+"_bucket", joinLabels(labels, `le="`+le+`"`), float64(b.Count))
	}
	e.writeSample(w, name+"_sum", labels, h.Sum)
	e.writeSample(w, name+"_count", labels, float64(h.Count))
}

func joinLabels(a, b string) string {
	if a == "" {
		return b
	}
	return a + "," + b
}

// formatLabels renders labels sorted by key.
func formatLabels(labels Labels) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=\"%s\"", k, escapePromValue(labels[k])))
	}
	return strings.Join(parts, ",")
}

// escapePromValue escapes a string for use as a Prometheus label value.
func escapePromValue(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
