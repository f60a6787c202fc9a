/*
Copyright 2013 The Camlistore Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cli holds the small amount of machinery esctl's cobra commands
// share: output indirection for tests, a usage-error type, and license
// printing. Adapted from perkeep.org's pkg/cmdmain, which built a whole
// subcommand dispatcher of its own (mode registry, per-mode flag sets,
// help/usage rendering) — esctl uses cobra for that instead, so only the
// output-stream and licensing pieces carried over.
package cli

import (
	"fmt"
	"io"
	"os"

	"go4.org/legal"
)

// Stdout and Stderr are indirections over the real streams so tests can
// capture esctl's output, the same reason pkg/cmdmain kept its own Stdout/
// Stderr vars instead of writing to os.Stdout/os.Stderr directly.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// UsageError marks an error that should be reported as an invalid
// invocation rather than an operational failure.
type UsageError string

func (e UsageError) Error() string { return "usage: " + string(e) }

// Errorf writes a formatted message to Stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintf(Stderr, format, args...)
}

// PrintLicenses prints every license go4.org/legal has collected from the
// packages linked into this binary, for esctl's "licenses" command.
func PrintLicenses() {
	for _, text := range legal.Licenses() {
		fmt.Fprintln(Stdout, text)
		fmt.Fprintln(Stdout)
	}
}
