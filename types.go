package eslite

import "github.com/raftario/eslite/pkg/valueenc"

// Record is an unordered keyed mapping, the Go-side representation of a
// composite record written at a path:
//
//	h.Set("config", eslite.Record{"retries": 3, "name": "prod"})
type Record = valueenc.Record

// Array is a dense, zero-indexed sequence, the Go-side representation of a
// composite array written at a path:
//
//	h.Set("tags", eslite.Array{"a", "b", "c"})
type Array = valueenc.Array

// Regexp is the textual form of a regular-expression literal, source and
// flags together (e.g. Regexp("/[a-z]+/i")). The module stores and
// round-trips it as an opaque string; it never parses or executes it.
type Regexp = valueenc.Regexp
