package main

import (
	"github.com/spf13/cobra"

	"github.com/raftario/eslite/internal/cli"
)

func newLicensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "licenses",
		Short: "Print the licenses of third-party code linked into esctl",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.PrintLicenses()
			return nil
		},
	}
}
