package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "logroute",
		Short:         "Inspect and exercise logroute sink documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newEmitCommand())
	rootCmd.AddCommand(newStressCommand())

	return rootCmd
}
