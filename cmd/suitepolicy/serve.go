package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pzverkov/suitepolicy/internal/constants"
	"github.com/pzverkov/suitepolicy/pkg/metrics"
	"github.com/pzverkov/suitepolicy/pkg/provider"
)

func newServeCmd(gopts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve metrics and health endpoints for the configured policy",
		Long: `Expose /metrics, /health, /healthz and /readyz. Every health check
re-resolves the configured policy, so readiness fails as soon as the
preferences leave no usable cipher suite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collector := metrics.NewCollector(metrics.Labels{"service": constants.ProjectName})
			metrics.SetGlobal(collector)

			server := metrics.NewServer(metrics.ServerConfig{
				Collector: collector,
				Version:   getVersion(),
			})
			server.AddHealthCheck("policy", policyCheck(cmd.Context(), cmd, gopts, provider.Go{}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := metrics.GetLogger()
			logger.Info("observability server listening", metrics.Fields{"addr": addr})
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s (/metrics, /health, /healthz, /readyz)\n", addr)
			if err := server.ListenAndServe(ctx, addr); err != nil {
				return err
			}
			logger.Info("observability server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9090", "Listen address")
	return cmd
}
