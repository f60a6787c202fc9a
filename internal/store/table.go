// Package store implements the navigator and table façade: mapping
// get/set/delete/enumerate/length operations for a (table, prefix) pair
// onto range-bounded queries over a single ordered path/value table.
//
// It is grounded on perkeep.org's pkg/sorted/sqlkv, generalized from a flat
// string-keyed KeyValue store to a BLOB-keyed, path-prefixed one, and from a
// single mutation per call to a recursive composite write sharing one
// transaction.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Table is a per-table handle holding prepared statements and the backing
// *sql.DB. It is shared by every Handle descended from it; Handle creation
// is O(1) and touches no rows until an operation runs.
type Table struct {
	db   *sql.DB
	name string

	// mu serializes top-level writes on this table, the same role
	// sqlkv.KeyValue.Serial's mutex plays around a SQLite *sql.DB.
	mu sync.Mutex

	selectOne       *sql.Stmt
	selectRange     *sql.Stmt
	selectAll       *sql.Stmt
	insertStmt      *sql.Stmt
	deleteRangeStmt *sql.Stmt
	maxNumericChild *sql.Stmt
}

// Open ensures the backing table exists and prepares the statements the
// navigator needs, then returns a façade bound to it.
func Open(db *sql.DB, name string) (*Table, error) {
	quoted, err := quoteIdentifier(name)
	if err != nil {
		return nil, err
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	path  BLOB PRIMARY KEY NOT NULL,
	value BLOB NOT NULL
) WITHOUT ROWID`, quoted)
	if _, err := db.Exec(ddl); err != nil {
		return nil, wrapBackend(errors.Wrapf(err, "create table %s", name))
	}

	t := &Table{db: db, name: name}
	prep := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&t.selectOne, fmt.Sprintf(`SELECT value FROM %s WHERE path = ?`, quoted)},
		{&t.selectRange, fmt.Sprintf(`SELECT path, value FROM %s WHERE path >= ? AND path < ? ORDER BY path`, quoted)},
		{&t.selectAll, fmt.Sprintf(`SELECT path, value FROM %s ORDER BY path`, quoted)},
		{&t.insertStmt, fmt.Sprintf(`INSERT INTO %s (path, value) VALUES (?, ?)`, quoted)},
		{&t.deleteRangeStmt, fmt.Sprintf(`DELETE FROM %s WHERE path >= ? AND path < ?`, quoted)},
		{&t.maxNumericChild, fmt.Sprintf(
			`SELECT path FROM %s WHERE LENGTH(path) = LENGTH(?) AND path >= ? AND path < ? ORDER BY path DESC LIMIT 1`,
			quoted)},
	}
	for _, p := range prep {
		stmt, err := db.Prepare(p.query)
		if err != nil {
			return nil, wrapBackend(errors.Wrapf(err, "prepare %q", p.query))
		}
		*p.dst = stmt
	}
	return t, nil
}

// Root returns the handle bound to the table's root prefix.
func (t *Table) Root() *Handle {
	return &Handle{table: t, kind: KindRoot}
}

// quoteIdentifier double-quotes a SQL identifier literally. A name
// containing a double quote is rejected rather than silently interpolated.
func quoteIdentifier(name string) (string, error) {
	if strings.Contains(name, `"`) {
		return "", ErrInvalidTableName
	}
	return `"` + name + `"`, nil
}

// writeContext carries the state shared across a top-level write's
// recursive composite walk: the open transaction and the cycle guard. It is
// threaded explicitly through Handle.writeValue rather than stashed as
// hidden state on the handle.
type writeContext struct {
	tx   *sql.Tx
	seen map[uintptr]struct{}
}

// runWrite opens the single transaction a top-level set/delete gets,
// commits on success, and rolls back and propagates the error otherwise.
// The table mutex serializes top-level writes: nesting one top-level write
// inside another is forbidden, and this is the simplest way to make that
// true rather than merely documented.
func (t *Table) runWrite(fn func(*writeContext) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, err := t.db.Begin()
	if err != nil {
		return wrapBackend(err)
	}
	wc := &writeContext{tx: tx, seen: make(map[uintptr]struct{})}
	if err := fn(wc); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return errors.Wrapf(err, "rollback also failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapBackend(err)
	}
	return nil
}
