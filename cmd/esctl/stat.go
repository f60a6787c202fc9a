package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raftario/eslite"
	"github.com/raftario/eslite/internal/cli"
)

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <table>",
		Short: "Report the direct child count of a table's root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDBPath(cmd); err != nil {
				return err
			}
			db, err := eslite.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			h, err := db.Table(args[0])
			if err != nil {
				return err
			}
			var children int
			for e := range h.Entries() {
				if e.Err != nil {
					return e.Err
				}
				children++
			}
			fmt.Fprintf(cli.Stdout, "table:          %s\n", args[0])
			fmt.Fprintf(cli.Stdout, "direct children: %d\n", children)
			return nil
		},
	}
}
