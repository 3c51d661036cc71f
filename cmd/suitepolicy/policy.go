package main

import (
	"context"
	"crypto/tls"

	"github.com/spf13/cobra"

	qerrors "github.com/pzverkov/suitepolicy/internal/errors"
	"github.com/pzverkov/suitepolicy/pkg/ciphersuite"
	"github.com/pzverkov/suitepolicy/pkg/config"
	"github.com/pzverkov/suitepolicy/pkg/metrics"
	"github.com/pzverkov/suitepolicy/pkg/provider"
)

// loadPreferences reads preferences with the command's flags bound over
// the file and environment.
func loadPreferences(ctx context.Context, cmd *cobra.Command, opts *globalOptions) (config.Preferences, error) {
	_, end := metrics.StartSpan(ctx, metrics.SpanLoadConfig)
	prefs, err := config.Load(opts.configFile, cmd.Flags())
	end(err)
	if err != nil {
		return config.Preferences{}, err
	}
	metrics.GetLogger().Debug("preferences loaded", metrics.Fields{
		"whitelist": config.FormatSet(prefs.Whitelist),
		"blacklist": config.FormatSet(prefs.Blacklist),
		"ordering":  config.FormatList(prefs.Ordering),
		"adjust":    prefs.AdjustByRecommendation,
	})
	return prefs, nil
}

// applyToConfig hands suites to a fresh tls.Config to confirm crypto/tls
// accepts them. Failures are counted on c.
func applyToConfig(ctx context.Context, c *metrics.Collector, suites []string) (*tls.Config, error) {
	_, end := metrics.StartSpan(ctx, metrics.SpanApply,
		metrics.WithAttributes(map[string]interface{}{"suites": suites}))
	cfg := &tls.Config{}
	err := provider.Apply(cfg, suites)
	end(err)
	if err != nil {
		c.RecordApplyError()
		return nil, err
	}
	return cfg, nil
}

// resolvePolicy loads preferences and resolves them against src, recording
// the resolution on c.
func resolvePolicy(ctx context.Context, cmd *cobra.Command, opts *globalOptions, src provider.Provider, c *metrics.Collector) (ciphersuite.Resolution, error) {
	prefs, err := loadPreferences(ctx, cmd, opts)
	if err != nil {
		return ciphersuite.Resolution{}, err
	}
	return ciphersuite.NewResolver(ciphersuite.WithCollector(c)).Resolve(ctx, prefs.Input(src))
}

// policyCheck reports whether the configured policy still yields a non-empty
// list that crypto/tls accepts. Health probes are counted on their own
// collector so they do not show up in the served resolution metrics.
func policyCheck(ctx context.Context, cmd *cobra.Command, opts *globalOptions, src provider.Provider) metrics.CheckFunc {
	probes := metrics.NewCollector(metrics.Labels{"source": "health"})
	return func() error {
		res, err := resolvePolicy(ctx, cmd, opts, src, probes)
		if err != nil {
			return err
		}
		if len(res.Suites) == 0 {
			return qerrors.ErrEmptySuiteList
		}
		_, err = applyToConfig(ctx, probes, res.Suites)
		return err
	}
}
