package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raftario/eslite"
	"github.com/raftario/eslite/internal/cli"
)

func newDBInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dbinit [tables...]",
		Short: "Create the database file, and optionally pre-create named tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDBPath(cmd); err != nil {
				return err
			}
			db, err := eslite.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			for _, name := range args {
				if _, err := db.Table(name); err != nil {
					return fmt.Errorf("table %q: %w", name, err)
				}
				fmt.Fprintf(cli.Stdout, "created table %q\n", name)
			}
			fmt.Fprintf(cli.Stdout, "%s ready\n", dbPath)
			return nil
		},
	}
}
