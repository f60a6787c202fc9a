package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raftario/eslite"
	"github.com/raftario/eslite/internal/cli"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <key> [key...]",
		Short: "Navigate a path of keys from a table's root and print the value found",
		Args:  cobra.MinimumNArgs(2),
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
			v, ok, err := navigate(h, args[1:])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cli.Stdout, "<absent>")
				return nil
			}
			printValue(v)
			return nil
		},
	}
}

// navigate walks h through each key in path in turn, following into
// nested records/arrays for all but the last key.
func navigate(h *eslite.Handle, path []string) (any, bool, error) {
	var v any = h
	for _, key := range path {
		cur, ok := v.(*eslite.Handle)
		if !ok {
			return nil, false, fmt.Errorf("esctl: %q is not a record or array", key)
		}
		var err error
		v, ok, err = cur.Get(key)
		if err != nil || !ok {
			return nil, ok, err
		}
	}
	return v, true, nil
}

func printValue(v any) {
	switch x := v.(type) {
	case *eslite.Handle:
		if x.IsArray() {
			n, err := x.Length()
			if err != nil {
				fmt.Fprintf(cli.Stdout, "<array: %v>\n", err)
				return
			}
			fmt.Fprintf(cli.Stdout, "<array, length=%d>\n", n)
			return
		}
		fmt.Fprintln(cli.Stdout, "<record>")
	default:
		fmt.Fprintf(cli.Stdout, "%v\n", x)
	}
}
