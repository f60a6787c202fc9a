// Package config opens a database from a go4.org/jsonconfig object, the
// same configuration idiom perkeep.org's pkg/sorted backends use
// (jsonconfig.Obj.RequiredString / Validate), adapted from a registry of
// interchangeable KeyValue backends to this module's single SQLite-backed
// one.
package config

import (
	"go4.org/jsonconfig"

	"github.com/raftario/eslite"
)

// Open reads the "file" key from cfg as the database path and opens it.
// Unrecognized keys are rejected by cfg.Validate, the same strictness
// jsonconfig.Obj-driven backend constructors in perkeep.org/pkg/sorted
// enforce.
func Open(cfg jsonconfig.Obj) (*eslite.DB, error) {
	file := cfg.RequiredString("file")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return eslite.Open(file)
}
