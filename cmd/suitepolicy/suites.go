package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pzverkov/suitepolicy/pkg/ciphersuite"
	"github.com/pzverkov/suitepolicy/pkg/provider"
)

func newSuitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List the cipher suites crypto/tls supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p provider.Go
			defaults := p.DefaultSuites()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SUITE\tID\tDEFAULT\tRECOMMENDED\tINSECURE")
			for _, name := range p.SupportedSuites().Sorted() {
				id, _ := provider.Lookup(name)
				fmt.Fprintf(tw, "%s\t0x%04X\t%s\t%s\t%s\n",
					name, id,
					yesNo(slices.Contains(defaults, name)),
					yesNo(ciphersuite.IsRecommended(name)),
					yesNo(provider.Insecure(name)),
				)
			}
			if provider.FIPSMode() {
				fmt.Fprintln(tw, "\nFIPS mode: only AES-GCM suites are listed")
			}
			return tw.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
