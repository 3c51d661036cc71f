// Package suitepolicy computes the ordered list of TLS cipher suites a TLS
// context should offer.
//
// Inputs are the suites a TLS implementation enables by default, the set it
// supports, and three optional preferences: a whitelist of suites to add, a
// blacklist of suites to remove and a priority ordering. An optional
// recommendation adjustment drops NULL, anonymous, RC4, export-grade and
// 3DES suites and falls back to a static preferred ordering.
//
// # Quick Start
//
// Resolve against crypto/tls and apply the result to a server config:
//
//	import (
//		"github.com/pzverkov/suitepolicy/pkg/ciphersuite"
//		"github.com/pzverkov/suitepolicy/pkg/config"
//		"github.com/pzverkov/suitepolicy/pkg/provider"
//	)
//
//	prefs, _ := config.Load("suitepolicy.yaml", nil)
//	res, _ := ciphersuite.NewResolver().Resolve(ctx, prefs.Input(provider.Go{}))
//	cfg := &tls.Config{Certificates: certs}
//	if err := provider.Apply(cfg, res.Suites); err != nil {
//		// empty result or a name crypto/tls does not know
//	}
//
// The pure function form needs no configuration or observability:
//
//	suites, err := ciphersuite.ComputeFinalList(defaults, supported, blacklist, whitelist, ordering, true)
//
// # Package Structure
//
//   - pkg/ciphersuite: Resolution, recommendation filter, preferred order, fingerprints
//   - pkg/provider: crypto/tls suite catalog and tls.Config application
//   - pkg/config: Preference loading from file, environment and flags
//   - pkg/metrics: Logging, tracing, metrics, health checks
//   - internal/constants: Suite names, banned markers, configuration keys
//   - internal/errors: Sentinel and typed errors
//
// # Build Tags
//
//   - fips: restrict the crypto/tls provider to AES-GCM suites
//   - otel: back metrics.NewOTelTracer with OpenTelemetry
//
// # Testing
//
//	go test ./...                                        # All tests
//	go test -fuzz=FuzzComputeFinalList ./test/fuzz/      # Fuzz tests
//	go test -tags fips ./pkg/provider                    # FIPS provider
//	go test -bench=. ./test/benchmark                    # Benchmarks
package suitepolicy
