/*
Copyright 2013 Google Inc.

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

// Package closecheck detects *sql.Rows cursors that a consumer forgot to
// close: Entries' lazy sequence is supposed to close its cursor as soon as
// the consumer stops ranging, but a caller that keeps a partially-drained
// iter.Seq around without ever finishing the range (or breaking out of it)
// would otherwise leak a cursor silently.
package closecheck

import (
	"bytes"
	"fmt"
	"log"
	"runtime"
)

// Checker remembers the stack trace of its creation and logs it if it is
// garbage collected before Close is called.
type Checker struct {
	pc []uintptr // nil once closed
}

// New returns a Checker armed with the caller's current stack.
func New() *Checker {
	pc := make([]uintptr, 50)
	c := &Checker{pc[:runtime.Callers(0, pc)]}
	runtime.SetFinalizer(c, (*Checker).finalize)
	return c
}

// Close disarms the checker. Safe to call on a nil Checker.
func (c *Checker) Close() {
	if c != nil {
		c.pc = nil
	}
}

func (c *Checker) finalize() {
	if testHookFinalize != nil {
		defer testHookFinalize()
	}
	if c == nil || c.pc == nil {
		return
	}
	var buf bytes.Buffer
	buf.WriteString("closecheck: cursor leaked, allocated at:\n")
	for _, pc := range c.pc {
		f := runtime.FuncForPC(pc)
		if f == nil {
			break
		}
		file, line := f.FileLine(f.Entry())
		fmt.Fprintf(&buf, "  %s:%d\n", file, line)
	}
	onLeak(buf.String())
}

// testHookFinalize optionally runs after finalization, for tests.
var testHookFinalize func()

// onLeak is swapped out by tests.
var onLeak = func(stack string) { log.Println(stack) }
