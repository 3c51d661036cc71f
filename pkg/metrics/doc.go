// Package metrics provides observability for cipher-suite policy resolution.
//
// The package includes:
//   - Collector counters and a latency Histogram for resolutions
//   - Prometheus text export
//   - Tracing with no-op, in-memory and OpenTelemetry backends
//   - Structured logging with levels
//   - Health checks and an HTTP server exposing all of the above
//
// # Metrics
//
//	collector := metrics.NewCollector(metrics.Labels{"host": "edge-1"})
//	resolver := ciphersuite.NewResolver(ciphersuite.WithCollector(collector))
//
// # Tracing
//
//	metrics.SetTracer(metrics.NewSimpleTracer())
//	// Build with -tags otel to back NewOTelTracer with the global
//	// OpenTelemetry provider.
//	metrics.SetTracer(metrics.NewOTelTracer("suitepolicy"))
//
// # Structured Logging
//
//	logger := metrics.NewLogger(
//		metrics.WithLevel(metrics.LevelInfo),
//		metrics.WithFormat(metrics.FormatJSON),
//	)
//	logger.Info("policy resolved", metrics.Fields{"suites": 12})
//
// # Observability Server
//
//	server := metrics.NewServer(metrics.ServerConfig{Collector: collector})
//	server.AddHealthCheck("policy", func() error { ... })
//	go server.ListenAndServe(ctx, ":9090")
//
// Endpoints: /metrics, /health, /healthz (liveness), /readyz (readiness).
package metrics
