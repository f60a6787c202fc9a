// Command esctl is a small diagnostic and administration tool for eslite
// database files: initializing tables, dumping their contents, and
// inspecting basic stats. It plays the role camtool plays for
// perkeep.org's pkg/sorted backends (pkg/sorted/sqlite/dbschema.go's
// initDB, driven there via "camtool dbinit"), rebuilt on a cobra
// subcommand tree instead of camtool's flatter mode dispatch.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/raftario/eslite/internal/cli"
	"github.com/raftario/eslite/pkg/buildinfo"
)

var dbPath string

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "esctl",
		Short:         "Inspect and administer eslite database files",
		SilenceUsage:  true,
		SilenceErrors: false,
		Version:       buildinfo.Summary(),
	}
	root.PersistentFlags().StringVar(&dbPath, "file", "", "path to the eslite database file (required)")

	root.AddCommand(
		newDBInitCmd(),
		newDumpCmd(),
		newStatCmd(),
		newGetCmd(),
		newSetCmd(),
		newLicensesCmd(),
	)
	return root
}

func requireDBPath(cmd *cobra.Command) error {
	if dbPath == "" {
		return cli.UsageError(fmt.Sprintf("%s requires --file", cmd.Name()))
	}
	return nil
}
