package config_test

import (
	"path/filepath"
	"testing"

	"go4.org/jsonconfig"

	"github.com/raftario/eslite/config"
)

func TestOpenReadsFileKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := config.Open(jsonconfig.Obj{"file": path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	h, err := db.Table("objects")
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if err := h.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func TestOpenRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	_, err := config.Open(jsonconfig.Obj{"file": path, "bogus": true})
	if err == nil {
		t.Fatalf("Open with an unrecognized key: got nil error, want a validation error")
	}
}

func TestOpenRequiresFileKey(t *testing.T) {
	_, err := config.Open(jsonconfig.Obj{})
	if err == nil {
		t.Fatalf("Open without \"file\": got nil error, want a validation error")
	}
}
