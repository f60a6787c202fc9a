package eslite

import (
	"iter"

	"github.com/raftario/eslite/internal/store"
)

// Handle is an opaque binding of a database handle, a path prefix, and a
// kind (record/array/root). It is returned by DB.Table for a table's root,
// and by Get/Entries/Values for any record or array nested under it.
type Handle struct {
	h *store.Handle
}

// Entry is one direct child of a handle: a key and either a decoded scalar
// value or a *Handle for a nested record/array.
type Entry struct {
	Key   string
	Value any
	Err   error
}

// Get returns the value stored at key: a decoded scalar, a *Handle for a
// nested record or array, or ok=false if no row exists there.
func (h *Handle) Get(key string) (value any, ok bool, err error) {
	v, ok, err := h.h.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	return wrapChild(v), true, nil
}

// Has reports whether key names an existing row.
func (h *Handle) Has(key string) (bool, error) {
	return h.h.Has(key)
}

// IsArray reports whether h was reached through an array composite (as
// opposed to the table root or a record).
func (h *Handle) IsArray() bool {
	return h.h.Kind() == store.KindArray
}

// Set writes value at key. value must be nil, bool, float64, int (stored as
// a float64 number), string, *big.Int, time.Time, Regexp, Record, or Array;
// anything else returns
// ErrUnsupportedType. Assigning to the "length" key of an array handle
// truncates it instead of writing a row — see Length.
func (h *Handle) Set(key string, value any) error {
	return h.h.Set(key, value)
}

// Delete removes the subtree at key and reports whether a row was removed.
func (h *Handle) Delete(key string) (bool, error) {
	return h.h.Delete(key)
}

// Length returns an array handle's length. It is only valid on a handle
// obtained by navigating into an Array; other handles return ErrNotArray.
func (h *Handle) Length() (uint32, error) {
	return h.h.Length()
}

// Entries returns a lazy sequence over the handle's direct children. For an
// array handle, a synthetic ("length", n) entry is yielded first. The
// underlying database cursor closes as soon as the consumer stops ranging.
func (h *Handle) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for e := range h.h.Entries() {
			out := Entry{Key: e.Key, Err: e.Err}
			if e.Err == nil {
				out.Value = wrapChild(e.Value)
			}
			if !yield(out) {
				return
			}
		}
	}
}

// Keys returns a lazy sequence over the handle's direct children's keys,
// in the same order as Entries. It stops at the first error from Entries.
func (h *Handle) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for e := range h.Entries() {
			if e.Err != nil {
				return
			}
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Values returns a lazy sequence over the handle's direct children's
// values, in the same order as Entries. It stops at the first error from
// Entries.
func (h *Handle) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for e := range h.Entries() {
			if e.Err != nil {
				return
			}
			if !yield(e.Value) {
				return
			}
		}
	}
}

func wrapChild(v any) any {
	if sh, ok := v.(*store.Handle); ok {
		return &Handle{h: sh}
	}
	return v
}
