// Package eslite provides persistent hierarchical objects — nested records
// and arrays of scalars — backed by a single SQLite-compatible embedded
// database file. Every read traverses the store; every top-level write is
// committed durably before returning.
//
// Open a database file, name a table, and the returned Handle behaves like
// a mutable nested map/array: Get/Set/Delete/Entries/Length navigate and
// mutate it by walking range-bounded queries over one ordered path/value
// table per named table, encoded and decoded by the pkg/pathenc and
// pkg/valueenc codecs.
package eslite

import (
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/raftario/eslite/internal/store"
)

// schemaVersion is recorded in every database file's meta table. Open
// refuses to open a file written by an incompatible future version rather
// than silently misreading its bytes.
const schemaVersion = 1

const metaTable = `"__eslite_meta__"`

// DB is an open database file. It owns the OS file resource; Close releases
// it, and any Handle derived from a closed DB fails its next operation
// rather than panicking.
type DB struct {
	sqldb *sql.DB
	path  string

	mu     sync.Mutex
	tables map[string]*store.Table
}

// Open opens (creating if necessary) the SQLite-compatible database file at
// path, configured with WAL journaling and normal synchronous mode.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "eslite: open")
	}
	// Connections are left uncapped: a held Entries cursor and a nested
	// call from inside its range loop (another Entries, a Get, a Length)
	// need separate connections or the nested call blocks forever behind
	// the cursor's own. Writers still serialize through Table.mu; WAL mode
	// lets concurrent readers and a single writer coexist the way perkeep
	// relies on it to under pkg/sorted/sqlite.
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA synchronous = NORMAL`,
		`PRAGMA foreign_keys = OFF`,
	} {
		if _, err := sqldb.Exec(pragma); err != nil {
			sqldb.Close()
			return nil, errors.Wrapf(err, "eslite: %s", pragma)
		}
	}

	db := &DB{sqldb: sqldb, path: path, tables: make(map[string]*store.Table)}
	if err := db.ensureSchema(); err != nil {
		sqldb.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) ensureSchema() error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key   TEXT PRIMARY KEY NOT NULL,
	value TEXT NOT NULL
) WITHOUT ROWID`, metaTable)
	if _, err := db.sqldb.Exec(ddl); err != nil {
		return errors.Wrap(err, "eslite: create meta table")
	}

	var v string
	err := db.sqldb.QueryRow(fmt.Sprintf(`SELECT value FROM %s WHERE key = 'schema_version'`, metaTable)).Scan(&v)
	switch {
	case err == sql.ErrNoRows:
		_, err := db.sqldb.Exec(
			fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ('schema_version', ?)`, metaTable),
			strconv.Itoa(schemaVersion))
		return errors.Wrap(err, "eslite: record schema version")
	case err != nil:
		return errors.Wrap(err, "eslite: read schema version")
	default:
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n != schemaVersion {
			return fmt.Errorf("eslite: database schema version %q incompatible with %d (re-init needed?)", v, schemaVersion)
		}
		return nil
	}
}

// Close releases the database file. Handles derived from db become unusable
// afterwards.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.tables == nil {
		return nil
	}
	err := db.sqldb.Close()
	db.tables = nil
	return errors.Wrap(err, "eslite: close")
}

// Table returns the root handle for the named table, creating it on first
// request. Table names are quoted literally as a SQL identifier; a name
// containing a double quote is rejected.
func (db *DB) Table(name string) (*Handle, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.tables == nil {
		return nil, ErrClosed
	}
	t, ok := db.tables[name]
	if !ok {
		var err error
		t, err = store.Open(db.sqldb, name)
		if err != nil {
			return nil, err
		}
		db.tables[name] = t
	}
	return &Handle{h: t.Root()}, nil
}
