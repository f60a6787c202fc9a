package store

import (
	"github.com/pkg/errors"
)

// These sentinels cover the store-level error kinds the lower pkg/pathenc
// and pkg/valueenc packages don't already expose (InvalidCodeUnit and
// UnknownTag live there; ErrUnsupportedType in pkg/valueenc). Callers
// compare with errors.Is.
var (
	ErrInvalidArrayLength   = errors.New("store: invalid array length")
	ErrCycle                = errors.New("store: source object graph contains a cycle")
	ErrLengthNotDeletable   = errors.New("store: array length cannot be deleted")
	ErrInvalidTableName     = errors.New("store: table name contains a double quote")
	ErrClosed               = errors.New("store: database is closed")
	ErrNotArray             = errors.New("store: length is only defined for array handles")
)

// BackendError wraps an error reported by the backing SQL engine, carrying
// a stack trace from where it was first observed.
type BackendError struct {
	err error
}

func (e *BackendError) Error() string { return "store: backend: " + e.err.Error() }
func (e *BackendError) Unwrap() error { return e.err }

func wrapBackend(err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{err: errors.WithStack(err)}
}
