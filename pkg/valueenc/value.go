// Package valueenc implements the tagged binary encoding of leaf scalar
// values and composite markers stored as a row's value bytes.
package valueenc

import (
	"encoding/binary"
	"errors"
	"math"
	"math/big"
	"time"

	"github.com/raftario/eslite/pkg/utf16enc"
)

// Tag bytes, the first byte of every stored value.
const (
	TagNull      byte = 0
	TagTrue      byte = 1
	TagFalse     byte = 2
	TagNumber    byte = 3
	TagString    byte = 4
	TagBigInt    byte = 5
	TagTimestamp byte = 6
	TagRegexp    byte = 7
	TagArray     byte = 0xFE
	TagRecord    byte = 0xFF
)

var (
	// ErrUnknownTag is returned on decode when the value's tag byte is not
	// one of the tags above.
	ErrUnknownTag = errors.New("valueenc: unknown value tag")
	// ErrTruncated is returned on decode when the buffer is empty or ends
	// in the middle of a fixed-width body.
	ErrTruncated = errors.New("valueenc: truncated value")
	// ErrUnsupportedType is returned when Encode is given a Go value that
	// is not one of the supported scalar or composite kinds.
	ErrUnsupportedType = errors.New("valueenc: unsupported value type")
)

// Regexp is the textual form of a regular-expression literal, source and
// flags together (e.g. "/foo/i"). The module treats it as an opaque string;
// it does not parse or execute it.
type Regexp string

// Record is an unordered keyed mapping, the Go-side representation of a
// composite written at a path. Values may be scalars, Records, or Arrays.
type Record map[string]any

// Array is a dense, zero-indexed sequence, the Go-side representation of an
// array composite. Values may be scalars, Records, or Arrays.
type Array []any

// ArrayMarker returns the single-byte row value stored at an array's own
// path.
func ArrayMarker() []byte { return []byte{TagArray} }

// RecordMarker returns the single-byte row value stored at a record's own
// path.
func RecordMarker() []byte { return []byte{TagRecord} }

// PeekTag returns the tag byte of an encoded value without decoding its
// body.
func PeekTag(b []byte) (byte, error) {
	if len(b) == 0 {
		return 0, ErrTruncated
	}
	return b[0], nil
}

// Encode serializes a Go scalar value to its tagged binary form. v must be
// one of: nil, bool, float64, int (stored as a float64 number), string,
// *big.Int, time.Time, Regexp. Any other type returns ErrUnsupportedType. Composite values (Record, Array) are not
// encoded by Encode — their marker is written directly and their children
// recurse; see the store package.
func Encode(v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return []byte{TagNull}, nil
	case bool:
		if x {
			return []byte{TagTrue}, nil
		}
		return []byte{TagFalse}, nil
	case float64:
		return encodeFloat(TagNumber, x), nil
	case int:
		return encodeFloat(TagNumber, float64(x)), nil
	case string:
		body, err := utf16enc.Encode(x)
		if err != nil {
			return nil, err
		}
		return append([]byte{TagString}, body...), nil
	case *big.Int:
		body, err := utf16enc.Encode(x.String())
		if err != nil {
			return nil, err
		}
		return append([]byte{TagBigInt}, body...), nil
	case time.Time:
		return encodeFloat(TagTimestamp, float64(x.UnixMilli())), nil
	case Regexp:
		body, err := utf16enc.Encode(string(x))
		if err != nil {
			return nil, err
		}
		return append([]byte{TagRegexp}, body...), nil
	default:
		return nil, ErrUnsupportedType
	}
}

func encodeFloat(tag byte, f float64) []byte {
	out := make([]byte, 9)
	out[0] = tag
	binary.BigEndian.PutUint64(out[1:], math.Float64bits(f))
	return out
}

// Decode parses an encoded value back into the Go scalar type Encode
// produced it from. The composite markers (TagArray / TagRecord) are not
// scalars and Decode returns ErrUnknownTag for them; check PeekTag first, as
// the store package does.
func Decode(b []byte) (any, error) {
	if len(b) == 0 {
		return nil, ErrTruncated
	}
	tag, body := b[0], b[1:]
	switch tag {
	case TagNull:
		return nil, nil
	case TagTrue:
		return true, nil
	case TagFalse:
		return false, nil
	case TagNumber:
		f, err := decodeFloat(body)
		return f, err
	case TagString:
		return utf16enc.Decode(body)
	case TagBigInt:
		s, err := utf16enc.Decode(body)
		if err != nil {
			return nil, err
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.New("valueenc: invalid bigint digits")
		}
		return n, nil
	case TagTimestamp:
		ms, err := decodeFloat(body)
		if err != nil {
			return nil, err
		}
		return time.UnixMilli(int64(ms)).UTC(), nil
	case TagRegexp:
		s, err := utf16enc.Decode(body)
		return Regexp(s), err
	default:
		return nil, ErrUnknownTag
	}
}

func decodeFloat(body []byte) (float64, error) {
	if len(body) != 8 {
		return 0, ErrTruncated
	}
	return math.Float64frombits(binary.BigEndian.Uint64(body)), nil
}
