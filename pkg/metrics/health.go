package metrics

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// HealthStatus represents the overall health state.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// CheckFunc performs a health check. A nil return means healthy.
type CheckFunc func() error

// HealthCheck runs named checks and reports policy metrics alongside them.
type HealthCheck struct {
	mu        sync.RWMutex
	checks    map[string]CheckFunc
	collector *Collector
	startTime time.Time
	version   string
}

// HealthResponse is the JSON body served by the health endpoint.
type HealthResponse struct {
	Status    HealthStatus           `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Version   string                 `json:"version,omitempty"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Metrics   *HealthMetrics         `json:"metrics,omitempty"`
}

// CheckResult is the result of a single check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthMetrics summarizes the collector for health responses.
type HealthMetrics struct {
	Resolutions      uint64  `json:"resolutions"`
	ResolutionErrors uint64  `json:"resolution_errors"`
	EmptyResults     uint64  `json:"empty_results"`
	ApplyErrors      uint64  `json:"apply_errors"`
	LastResultSize   int64   `json:"last_result_size"`
	ErrorRate        float64 `json:"error_rate"`
}

// NewHealthCheck creates a health check. collector may be nil.
func NewHealthCheck(collector *Collector, version string) *HealthCheck {
	return &HealthCheck{
		checks:    make(map[string]CheckFunc),
		collector: collector,
		startTime: time.Now(),
		version:   version,
	}
}

// AddCheck registers a named check, replacing any check with that name.
func (h *HealthCheck) AddCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// RemoveCheck removes a named check.
func (h *HealthCheck) RemoveCheck(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.checks, name)
}

// Check runs every registered check. Any failing check makes the service
// unhealthy; an error rate above maxErrorRate makes it degraded.
func (h *HealthCheck) Check() HealthResponse {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	checks := make(map[string]CheckFunc, len(h.checks))
	for k, v := range h.checks {
		checks[k] = v
	}
	h.mu.RUnlock()
	sort.Strings(names)

	resp := HealthResponse{
		Status:    HealthStatusHealthy,
		Timestamp: time.Now(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    make(map[string]CheckResult, len(names)),
	}

	for _, name := range names {
		start := time.Now()
		err := checks[name]()
		result := CheckResult{Status: HealthStatusHealthy, Latency: time.Since(start).String()}
		if err != nil {
			result.Status = HealthStatusUnhealthy
			result.Message = err.Error()
			resp.Status = HealthStatusUnhealthy
		}
		resp.Checks[name] = result
	}

	if h.collector != nil {
		snap := h.collector.Snapshot()
		resp.Metrics = &HealthMetrics{
			Resolutions:      snap.Resolutions,
			ResolutionErrors: snap.ResolutionErrors,
			EmptyResults:     snap.EmptyResults,
			ApplyErrors:      snap.ApplyErrors,
			LastResultSize:   snap.LastResultSize,
		}
		resp.Metrics.ErrorRate = errorRate(snap)
		if resp.Status == HealthStatusHealthy && resp.Metrics.ErrorRate > maxErrorRate {
			resp.Status = HealthStatusDegraded
		}
	}

	return resp
}

// maxErrorRate is the failure share above which health reports degraded.
const maxErrorRate = 0.01

// errorRate is the share of attempted resolutions that were rejected or
// could not be applied.
func errorRate(snap Snapshot) float64 {
	errs := snap.ResolutionErrors + snap.ApplyErrors
	total := snap.Resolutions + snap.ResolutionErrors
	if total < errs {
		total = errs
	}
	if total == 0 {
		return 0
	}
	return float64(errs) / float64(total)
}

// Handler serves the full health response. Unhealthy maps to 503.
func (h *HealthCheck) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := h.Check()
		code := http.StatusOK
		if resp.Status == HealthStatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, resp)
	})
}

// LivenessHandler always reports alive while the process serves requests.
func (h *HealthCheck) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})
}

// ReadinessHandler reports ready only when no check is failing.
func (h *HealthCheck) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := h.Check()
		ready := resp.Status != HealthStatusUnhealthy
		code := http.StatusOK
		if !ready {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]interface{}{
			"status": resp.Status,
			"ready":  ready,
		})
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
