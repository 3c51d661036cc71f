package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pzverkov/suitepolicy/internal/constants"
)

const (
	metricsReadHeaderTimeout = 5 * time.Second
	metricsReadTimeout       = 10 * time.Second
	metricsWriteTimeout      = 10 * time.Second
	metricsIdleTimeout       = 120 * time.Second
	metricsShutdownTimeout   = 5 * time.Second
)

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
		ReadTimeout:       metricsReadTimeout,
		WriteTimeout:      metricsWriteTimeout,
		IdleTimeout:       metricsIdleTimeout,
	}
}

// Server exposes /metrics, /health, /healthz and /readyz.
type Server struct {
	mux    *http.ServeMux
	health *HealthCheck
}

// ServerConfig configures the observability server.
type ServerConfig struct {
	Collector *Collector
	Version   string
	Namespace string // Prometheus namespace, defaults to the project name
}

// NewServer creates an observability server.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Collector == nil {
		cfg.Collector = Global()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = constants.MetricsNamespace
	}

	s := &Server{
		mux:    http.NewServeMux(),
		health: NewHealthCheck(cfg.Collector, cfg.Version),
	}
	s.mux.Handle("/metrics", NewPrometheusExporter(cfg.Collector, cfg.Namespace).Handler())
	s.mux.Handle("/health", s.health.Handler())
	s.mux.Handle("/healthz", s.health.LivenessHandler())
	s.mux.Handle("/readyz", s.health.ReadinessHandler())
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// AddHealthCheck registers a named health check.
func (s *Server) AddHealthCheck(name string, check CheckFunc) {
	s.health.AddCheck(name, check)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := newHTTPServer(addr, s.mux)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
