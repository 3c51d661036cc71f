package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	qerrors "github.com/pzverkov/suitepolicy/internal/errors"
	"github.com/pzverkov/suitepolicy/pkg/ciphersuite"
	"github.com/pzverkov/suitepolicy/pkg/config"
	"github.com/pzverkov/suitepolicy/pkg/metrics"
	"github.com/pzverkov/suitepolicy/pkg/provider"
)

type resolveOptions struct {
	output    string
	explain   bool
	check     bool
	defaults  string
	supported string
}

// resolveReport is the machine-readable output of resolve.
type resolveReport struct {
	Suites      []string              `json:"suites" yaml:"suites"`
	Fingerprint string                `json:"fingerprint" yaml:"fingerprint"`
	Injected    []string              `json:"injected,omitempty" yaml:"injected,omitempty"`
	Removed     []ciphersuite.Removal `json:"removed,omitempty" yaml:"removed,omitempty"`
}

func newResolveCmd(gopts *globalOptions) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the cipher suites to offer",
		Long: `Resolve the configured preferences against the suites crypto/tls supports
and print the resulting list. Exits non-zero when no suite is left.

--default and --supported replace the crypto/tls suites, which allows
evaluating a policy for another TLS implementation.`,
		Example: `  suitepolicy resolve
  suitepolicy resolve --blacklist TLS_RSA_WITH_AES_128_CBC_SHA --explain
  suitepolicy resolve --default A,B --supported A,B,C --whitelist C --adjust=false -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, gopts, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "text", "Output format: text, json or yaml")
	f.BoolVar(&opts.explain, "explain", false, "Show which suites were added or removed and why")
	f.BoolVar(&opts.check, "check", false, "Verify that crypto/tls accepts the result")
	f.StringVar(&opts.defaults, "default", "", "Comma-separated default suites (replaces crypto/tls defaults)")
	f.StringVar(&opts.supported, "supported", "", "Comma-separated supported suites (replaces crypto/tls supported set)")
	return cmd
}

// sourceFor returns the crypto/tls provider unless the defaults or the
// supported set were overridden on the command line.
func sourceFor(opts *resolveOptions) provider.Provider {
	if opts.defaults == "" && opts.supported == "" {
		return provider.Go{}
	}
	var goSrc provider.Go
	src := provider.Static{Default: config.ParseList(opts.defaults), Supported: config.ParseSet(opts.supported)}
	if opts.defaults == "" {
		src.Default = goSrc.DefaultSuites()
	}
	if opts.supported == "" {
		src.Supported = goSrc.SupportedSuites()
	}
	return src
}

func runResolve(cmd *cobra.Command, gopts *globalOptions, opts *resolveOptions) error {
	ctx := cmd.Context()
	res, err := resolvePolicy(ctx, cmd, gopts, sourceFor(opts), metrics.Global())
	if err != nil {
		return err
	}

	if err := writeResolution(cmd.OutOrStdout(), opts.output, opts.explain, res); err != nil {
		return err
	}

	if len(res.Suites) == 0 {
		return qerrors.ErrEmptySuiteList
	}
	if opts.check {
		if _, err := applyToConfig(ctx, metrics.Global(), res.Suites); err != nil {
			return err
		}
	}
	return nil
}

func writeResolution(w io.Writer, format string, explain bool, res ciphersuite.Resolution) error {
	report := resolveReport{Suites: res.Suites, Fingerprint: ciphersuite.Fingerprint(res.Suites)}
	if explain {
		report.Injected = res.Injected
		report.Removed = res.Removed
	}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "text":
		for _, s := range report.Suites {
			fmt.Fprintln(w, s)
		}
		if explain {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "fingerprint: %s\n", report.Fingerprint)
			for _, s := range report.Injected {
				fmt.Fprintf(w, "+ %s (whitelist)\n", s)
			}
			for _, r := range report.Removed {
				fmt.Fprintf(w, "- %s (%s)\n", r.Suite, r.Reason)
			}
		}
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (use text, json or yaml)", format)
	}
}
