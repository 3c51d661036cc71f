package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(gopts *globalOptions) *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective preferences as YAML",
		Long: `Print the preferences after merging the config file, environment and
flags. With --write the result is saved to a file that can be passed
back with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := loadPreferences(cmd.Context(), cmd, gopts)
			if err != nil {
				return err
			}
			if write != "" {
				if err := prefs.WriteFile(write); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", write)
				return nil
			}
			data, err := prefs.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&write, "write", "", "Write the preferences to this file instead of stdout")
	return cmd
}
