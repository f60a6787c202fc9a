package cli

import "go4.org/legal"

func init() {
	// modernc.org/sqlite is the pure-Go SQLite engine backing every table;
	// esctl's "licenses" command should be able to point at it.
	legal.RegisterLicense(
		"modernc.org/sqlite is distributed under a BSD-style license.\n" +
			"See https://pkg.go.dev/modernc.org/sqlite?tab=licenses for the full text.")
}
