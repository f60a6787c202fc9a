package store

import (
	"database/sql"
	"iter"
	"reflect"

	"github.com/pkg/errors"

	"github.com/raftario/eslite/internal/closecheck"
	"github.com/raftario/eslite/pkg/keyrange"
	"github.com/raftario/eslite/pkg/pathenc"
	"github.com/raftario/eslite/pkg/valueenc"
)

// Kind distinguishes a table's root handle from the record and array
// handles that descend from it. Only array handles respond to the "length"
// key specially.
type Kind int

const (
	KindRoot Kind = iota
	KindRecord
	KindArray
)

// Handle is a lightweight value binding a *Table, a path prefix, and a
// kind. It implements get/has/set/delete/enumerate/length over the
// (table, prefix) pair it names.
type Handle struct {
	table  *Table
	prefix pathenc.Path
	kind   Kind
}

// Entry is one direct child yielded by Entries: either a decoded scalar
// Value, or a *Handle bound to a deeper prefix for a record/array child.
type Entry struct {
	Key   string
	Value any
	Err   error
}

// Kind reports whether h is the table root, or a nested record or array.
func (h *Handle) Kind() Kind { return h.kind }

func (h *Handle) child(seg pathenc.Segment, kind Kind) *Handle {
	return &Handle{table: h.table, prefix: h.prefix.Child(seg), kind: kind}
}

// Get looks up key and returns its decoded scalar value, a child *Handle
// for a record/array, or ok=false if no row exists at that path.
func (h *Handle) Get(key string) (value any, ok bool, err error) {
	seg := pathenc.Normalize(key)
	q := h.prefix.Child(seg)
	encQ, err := pathenc.Encode(q)
	if err != nil {
		return nil, false, err
	}
	var raw []byte
	err = h.table.selectOne.QueryRow(encQ).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapBackend(err)
	}
	return h.decodeRow(q, raw)
}

func (h *Handle) decodeRow(path pathenc.Path, raw []byte) (any, bool, error) {
	tag, err := valueenc.PeekTag(raw)
	if err != nil {
		return nil, false, err
	}
	switch tag {
	case valueenc.TagRecord:
		return &Handle{table: h.table, prefix: path, kind: KindRecord}, true, nil
	case valueenc.TagArray:
		return &Handle{table: h.table, prefix: path, kind: KindArray}, true, nil
	default:
		v, err := valueenc.Decode(raw)
		return v, err == nil, err
	}
}

// Has reports whether key names an existing row.
func (h *Handle) Has(key string) (bool, error) {
	seg := pathenc.Normalize(key)
	encQ, err := pathenc.Encode(h.prefix.Child(seg))
	if err != nil {
		return false, err
	}
	var raw []byte
	err = h.table.selectOne.QueryRow(encQ).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, wrapBackend(err)
	}
	return true, nil
}

// Length returns an array handle's length: one more than the greatest
// numeric child index, or 0 if it has no numeric children. It is only valid
// on array handles.
func (h *Handle) Length() (uint32, error) {
	if h.kind != KindArray {
		return 0, ErrNotArray
	}
	lower, err := pathenc.Encode(h.prefix.Child(pathenc.Number(0)))
	if err != nil {
		return 0, err
	}
	upper, err := pathenc.Encode(h.prefix.Child(pathenc.Number(pathenc.MaxIndex + 1)))
	if err != nil {
		return 0, err
	}
	var raw []byte
	err = h.table.maxNumericChild.QueryRow(lower, lower, upper).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, wrapBackend(err)
	}
	p, err := pathenc.Decode(raw)
	if err != nil {
		return 0, err
	}
	last := p[len(p)-1]
	return last.Num() + 1, nil
}

// Set writes value at key. Scalars overwrite any existing subtree at key;
// records and arrays recursively write their own children under it. The
// call is wrapped in a single transaction that rolls back entirely if any
// part of the write fails.
func (h *Handle) Set(key string, value any) error {
	if h.kind == KindArray && key == "length" {
		return h.setLength(value)
	}
	seg := pathenc.Normalize(key)
	return h.table.runWrite(func(wc *writeContext) error {
		return h.writeValue(wc, seg, value, true)
	})
}

func (h *Handle) setLength(value any) error {
	n, err := arrayLength(value)
	if err != nil {
		return err
	}
	return h.table.runWrite(func(wc *writeContext) error {
		lower, err := pathenc.Encode(h.prefix.Child(pathenc.Number(n)))
		if err != nil {
			return err
		}
		upper, err := pathenc.Encode(h.prefix.Child(pathenc.Number(pathenc.MaxIndex + 1)))
		if err != nil {
			return err
		}
		_, err = wc.tx.Stmt(h.table.deleteRangeStmt).Exec(lower, upper)
		return wrapBackend(err)
	})
}

func arrayLength(value any) (uint32, error) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	default:
		return 0, ErrInvalidArrayLength
	}
	if f < 0 || f != float64(uint32(f)) || uint32(f) > pathenc.MaxIndex {
		return 0, ErrInvalidArrayLength
	}
	return uint32(f), nil
}

// writeValue performs the recursive write for Set. deleteExisting is true
// only for the outermost call: the top-level deleteRange wipes the entire
// prior subtree at q (including every descendant, since its range covers
// them), so recursive children never need to delete anything of their own.
func (h *Handle) writeValue(wc *writeContext, seg pathenc.Segment, value any, deleteExisting bool) error {
	q := h.prefix.Child(seg)
	encQ, err := pathenc.Encode(q)
	if err != nil {
		return err
	}
	if deleteExisting {
		lower, upper := keyrange.Range(encQ)
		if _, err := wc.tx.Stmt(h.table.deleteRangeStmt).Exec(lower, upper); err != nil {
			return wrapBackend(err)
		}
	}

	switch v := value.(type) {
	case valueenc.Array:
		if err := checkCycle(wc, v); err != nil {
			return err
		}
		if _, err := wc.tx.Stmt(h.table.insertStmt).Exec(encQ, valueenc.ArrayMarker()); err != nil {
			return wrapBackend(err)
		}
		child := &Handle{table: h.table, prefix: q, kind: KindArray}
		for i, elem := range v {
			if err := child.writeValue(wc, pathenc.Number(uint32(i)), elem, false); err != nil {
				return err
			}
		}
		return nil

	case valueenc.Record:
		if err := checkCycle(wc, v); err != nil {
			return err
		}
		if _, err := wc.tx.Stmt(h.table.insertStmt).Exec(encQ, valueenc.RecordMarker()); err != nil {
			return wrapBackend(err)
		}
		child := &Handle{table: h.table, prefix: q, kind: KindRecord}
		for k, elem := range v {
			if err := child.writeValue(wc, pathenc.Normalize(k), elem, false); err != nil {
				return err
			}
		}
		return nil

	default:
		enc, err := valueenc.Encode(value)
		if err != nil {
			return err
		}
		if _, err := wc.tx.Stmt(h.table.insertStmt).Exec(encQ, enc); err != nil {
			return wrapBackend(err)
		}
		return nil
	}
}

// checkCycle fails if v's identity is already being written in this
// top-level call, otherwise records it. Empty composites are exempt: their
// identity pointer may be the zero value shared by every empty map/slice,
// and they have no children to recurse into regardless.
func checkCycle(wc *writeContext, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Len() == 0 {
		return nil
	}
	p := rv.Pointer()
	if p == 0 {
		return nil
	}
	if _, ok := wc.seen[p]; ok {
		return ErrCycle
	}
	wc.seen[p] = struct{}{}
	return nil
}

// Delete removes the subtree at key and reports whether any row was
// removed. Deleting the "length" key of an array handle is rejected: length
// is derived, not a stored row.
func (h *Handle) Delete(key string) (bool, error) {
	if h.kind == KindArray && key == "length" {
		return false, ErrLengthNotDeletable
	}
	seg := pathenc.Normalize(key)
	var removed bool
	err := h.table.runWrite(func(wc *writeContext) error {
		encQ, err := pathenc.Encode(h.prefix.Child(seg))
		if err != nil {
			return err
		}
		lower, upper := keyrange.Range(encQ)
		res, err := wc.tx.Stmt(h.table.deleteRangeStmt).Exec(lower, upper)
		if err != nil {
			return wrapBackend(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapBackend(err)
		}
		removed = n > 0
		return nil
	})
	return removed, err
}

// Entries returns a lazy sequence over this handle's direct children. The
// underlying cursor closes as soon as the consumer stops ranging, even if
// that is before exhaustion.
func (h *Handle) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if h.kind == KindArray {
			n, err := h.Length()
			ent := Entry{Key: "length", Value: float64(n)}
			if err != nil {
				ent = Entry{Key: "length", Err: err}
			}
			if !yield(ent) {
				return
			}
		}

		// The root has no prefix of its own: every row in the table is one
		// of its descendants, at depths the len(p) check below filters down
		// to direct children. A root scan has to run unbounded rather than
		// through keyrange.Range, since encoded keys can start with either
		// tag byte (0x00 or 0x01) and an empty prefix's "increment" can only
		// bound one of them.
		var rows *sql.Rows
		var err error
		if h.kind == KindRoot {
			rows, err = h.table.selectAll.Query()
		} else {
			lower, upper := keyrange.Range(mustEncode(h.prefix))
			rows, err = h.table.selectRange.Query(lower, upper)
		}
		if err != nil {
			yield(Entry{Err: wrapBackend(err)})
			return
		}
		check := closecheck.New()
		defer check.Close()
		defer rows.Close()

		for rows.Next() {
			var pb, vb []byte
			if err := rows.Scan(&pb, &vb); err != nil {
				yield(Entry{Err: wrapBackend(err)})
				return
			}
			p, err := pathenc.Decode(pb)
			if err != nil {
				yield(Entry{Err: err})
				return
			}
			if len(p) != len(h.prefix)+1 {
				continue
			}
			val, ok, err := h.decodeRow(p, vb)
			if err != nil {
				yield(Entry{Err: err})
				return
			}
			if !ok {
				continue
			}
			if !yield(Entry{Key: p[len(p)-1].Key(), Value: val}) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Entry{Err: wrapBackend(err)})
		}
	}
}

func mustEncode(p pathenc.Path) []byte {
	b, err := pathenc.Encode(p)
	if err != nil {
		// p is built exclusively from segments this package has already
		// validated on the way in; a path built only of Number/Normalize
		// segments cannot fail to encode.
		panic(errors.Wrap(err, "store: encoding an already-validated path"))
	}
	return b
}
