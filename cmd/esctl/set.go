package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raftario/eslite"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <table> <key> <json-value>",
		Short: "Set a single top-level key of a table to a JSON-decoded scalar or composite",
		Args:  cobra.ExactArgs(3),
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

			var decoded any
			if err := json.Unmarshal([]byte(args[2]), &decoded); err != nil {
				return fmt.Errorf("esctl: invalid JSON value: %w", err)
			}
			return h.Set(args[1], jsonToValue(decoded))
		},
	}
}

// jsonToValue converts the generic tree encoding/json produces
// (map[string]any, []any, float64, string, bool, nil) into the named
// Record/Array types Handle.Set recognizes as composites.
func jsonToValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		rec := make(eslite.Record, len(x))
		for k, elem := range x {
			rec[k] = jsonToValue(elem)
		}
		return rec
	case []any:
		arr := make(eslite.Array, len(x))
		for i, elem := range x {
			arr[i] = jsonToValue(elem)
		}
		return arr
	default:
		return x
	}
}
