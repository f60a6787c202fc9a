package eslite

import (
	"github.com/raftario/eslite/internal/store"
	"github.com/raftario/eslite/pkg/pathenc"
	"github.com/raftario/eslite/pkg/valueenc"
)

// Error sentinels returned by Handle and DB methods. Callers compare with
// errors.Is; errors.As recovers the underlying backend error from a wrapped
// failure via *store.BackendError.
var (
	// ErrUnsupportedType: a write received a value that is neither a
	// supported scalar nor a plain composite.
	ErrUnsupportedType = valueenc.ErrUnsupportedType
	// ErrInvalidCodeUnit: a string to be encoded contains a UTF-16 code
	// unit >= 0xFFFE.
	ErrInvalidCodeUnit = pathenc.ErrInvalidCodeUnit
	// ErrInvalidArrayLength: array length set to a non-safe-integer,
	// negative, or out-of-range value.
	ErrInvalidArrayLength = store.ErrInvalidArrayLength
	// ErrCycle: the source object graph being serialized contains itself.
	ErrCycle = store.ErrCycle
	// ErrUnknownPathTag, ErrUnknownValueTag: decode encountered an unknown
	// path or value tag.
	ErrUnknownPathTag  = pathenc.ErrUnknownTag
	ErrUnknownValueTag = valueenc.ErrUnknownTag

	// ErrNotArray: Length was called on a non-array handle.
	ErrNotArray = store.ErrNotArray
	ErrLengthNotDeletable = store.ErrLengthNotDeletable
	ErrInvalidTableName   = store.ErrInvalidTableName
	// ErrClosed: DB.Table was called after Close. Operations on a Handle
	// obtained before Close fail with a wrapped backend error instead.
	ErrClosed = store.ErrClosed
)
