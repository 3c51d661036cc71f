package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pzverkov/suitepolicy/internal/constants"
	"github.com/pzverkov/suitepolicy/pkg/config"
	"github.com/pzverkov/suitepolicy/pkg/metrics"
	pkgversion "github.com/pzverkov/suitepolicy/pkg/version"
)

// Build-time variables (set via -ldflags)
var (
	version   = ""        // Set via -ldflags "-X main.version=x.y.z"
	buildTime = "unknown" // Set via -ldflags "-X main.buildTime=..."
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	logLevel   string
	logFormat  string
	tracing    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   constants.ProjectName,
		Short: "Resolve the TLS cipher suites a server should offer",
		Long: `suitepolicy computes the ordered list of TLS cipher suites to offer from
the suites crypto/tls supports and the configured whitelist, blacklist and
priority ordering.

Preferences are read from suitepolicy.yaml, SUITEPOLICY_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupObservability(opts.logLevel, opts.logFormat, opts.tracing)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default searches ./suitepolicy.yaml, the user config dir and /etc/suitepolicy)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error, silent")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&opts.tracing, "tracing", "none", "Tracing mode: none, simple, otel (requires -tags otel)")
	pf.String(config.FlagWhitelist, "", "Comma-separated suites to add when supported")
	pf.String(config.FlagBlacklist, "", "Comma-separated suites to remove")
	pf.String(config.FlagOrdering, "", "Comma-separated priority ordering")
	pf.Bool(config.FlagAdjust, true, "Drop weak suites and fall back to the preferred ordering")

	cmd.AddCommand(
		newResolveCmd(opts),
		newSuitesCmd(),
		newConfigCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", constants.ProjectName, getVersion())
			if buildTime != "unknown" {
				fmt.Fprintf(out, "Built: %s\n", buildTime)
			}
			if gitCommit != "unknown" {
				fmt.Fprintf(out, "Commit: %s\n", gitCommit)
			}
		},
	}
}

func setupObservability(logLevel, logFormat, tracing string) error {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	format, err := parseLogFormat(logFormat)
	if err != nil {
		return err
	}

	metrics.SetLogger(metrics.NewLogger(
		metrics.WithOutput(os.Stderr),
		metrics.WithLevel(level),
		metrics.WithFormat(format),
	))

	switch strings.ToLower(tracing) {
	case "none":
		metrics.SetTracer(metrics.NoOpTracer{})
	case "simple":
		metrics.SetTracer(metrics.NewSimpleTracer())
	case "otel":
		if !metrics.OTelEnabled() {
			return fmt.Errorf("otel tracing not enabled (build with -tags otel)")
		}
		metrics.SetTracer(metrics.NewOTelTracer(constants.ProjectName))
	default:
		return fmt.Errorf("invalid tracing mode: %s (use none, simple, or otel)", tracing)
	}
	return nil
}

func parseLogLevel(level string) (metrics.Level, error) {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error", "silent", "off", "none":
		return metrics.ParseLevel(level), nil
	default:
		return metrics.LevelInfo, fmt.Errorf("invalid log level: %s (use debug, info, warn, error, silent)", level)
	}
}

func parseLogFormat(format string) (metrics.Format, error) {
	switch strings.ToLower(format) {
	case "text", "json":
		return metrics.ParseFormat(format), nil
	default:
		return metrics.FormatText, fmt.Errorf("invalid log format: %s (use text or json)", format)
	}
}
