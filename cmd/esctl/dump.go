package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/raftario/eslite"
	"github.com/raftario/eslite/internal/cli"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <table>",
		Short: "Print a table's contents as indented JSON",
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
			tree, err := dumpTree(h)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cli.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tree)
		},
	}
}

// dumpTree walks h depth-first and builds a plain Go value suitable for
// json.Marshal: map[string]any for the root/records, []any for arrays.
func dumpTree(h *eslite.Handle) (any, error) {
	if h.IsArray() {
		var out []any
		for e := range h.Entries() {
			if e.Err != nil {
				return nil, e.Err
			}
			if e.Key == "length" {
				continue
			}
			v, err := dumpValue(e.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	out := map[string]any{}
	for e := range h.Entries() {
		if e.Err != nil {
			return nil, e.Err
		}
		v, err := dumpValue(e.Value)
		if err != nil {
			return nil, err
		}
		out[e.Key] = v
	}
	return out, nil
}

func dumpValue(v any) (any, error) {
	if child, ok := v.(*eslite.Handle); ok {
		return dumpTree(child)
	}
	return v, nil
}
