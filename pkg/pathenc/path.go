// Package pathenc implements the order-preserving binary encoding of table
// paths: sequences of segments leading from a table root to a stored cell.
//
// Encoding is a straight concatenation of per-segment tagged encodings with
// no length prefix. A number segment sorts before any string segment at the
// same position, numbers sort numerically, and strings sort by UTF-16 code
// unit sequence — see the package-level tests for the ordering proof this
// relies on.
package pathenc

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"

	"github.com/raftario/eslite/pkg/utf16enc"
)

// Tag bytes that introduce a path segment.
const (
	tagNumber byte = 0x00
	tagString byte = 0x01
)

// terminator follows every encoded string segment. It is strictly greater
// than any legal code unit, so "a" sorts before "ab".
const terminator uint16 = 0xFFFE

// MaxIndex is the largest legal number segment value (2^32 - 2). The value
// 2^32-1 is reserved as the exclusive upper bound used by array-length and
// truncation range queries.
const MaxIndex uint32 = math.MaxUint32 - 1

var (
	// ErrInvalidCodeUnit is returned when a string segment contains a UTF-16
	// code unit >= 0xFFFE.
	ErrInvalidCodeUnit = utf16enc.ErrInvalidCodeUnit
	// ErrUnknownTag is returned on decode when a segment tag byte is
	// neither 0x00 nor 0x01.
	ErrUnknownTag = errors.New("pathenc: unknown segment tag")
	// ErrTruncated is returned on decode when the buffer ends in the
	// middle of a segment.
	ErrTruncated = errors.New("pathenc: truncated path")
)

// Segment is one step of a path: either a non-negative integer (array
// index) or a string (record key).
type Segment struct {
	isNumber bool
	num      uint32
	str      string
}

// Number returns a numeric segment. Callers are responsible for keeping n
// within [0, MaxIndex]; Encode does not re-validate it.
func Number(n uint32) Segment {
	return Segment{isNumber: true, num: n}
}

// Str returns a string segment.
func Str(s string) Segment {
	return Segment{str: s}
}

// IsNumber reports whether the segment is a numeric (array index) segment.
func (s Segment) IsNumber() bool { return s.isNumber }

// Num returns the numeric value of the segment. It is only meaningful when
// IsNumber reports true.
func (s Segment) Num() uint32 { return s.num }

// Text returns the string value of the segment. It is only meaningful when
// IsNumber reports false.
func (s Segment) Text() string { return s.str }

// Key returns the segment rendered the way a caller would spell it as a
// lookup key: the decimal form of a numeric segment, or the string itself.
func (s Segment) Key() string {
	if s.isNumber {
		return strconv.FormatUint(uint64(s.num), 10)
	}
	return s.str
}

// Normalize turns an external lookup key into a segment: canonical decimal
// representations of integers in [0, MaxIndex] become number segments,
// everything else becomes a string segment. "08" and "-1" are string
// segments, since they are not the canonical decimal form of a valid index.
func Normalize(key string) Segment {
	n, err := strconv.ParseUint(key, 10, 32)
	if err == nil && uint32(n) <= MaxIndex && strconv.FormatUint(n, 10) == key {
		return Number(uint32(n))
	}
	return Str(key)
}

// Path is an ordered sequence of segments from a table root to a specific
// stored cell. The empty path denotes the table root.
type Path []Segment

// Child returns a new path with seg appended, without mutating p.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Encode serializes a path to its order-preserving binary form.
func Encode(p Path) ([]byte, error) {
	var out []byte
	for _, seg := range p {
		if seg.isNumber {
			buf := make([]byte, 5)
			buf[0] = tagNumber
			binary.BigEndian.PutUint32(buf[1:], seg.num)
			out = append(out, buf...)
			continue
		}
		body, err := utf16enc.Encode(seg.str)
		if err != nil {
			return nil, err
		}
		out = append(out, tagString)
		out = append(out, body...)
		var term [2]byte
		binary.BigEndian.PutUint16(term[:], terminator)
		out = append(out, term[:]...)
	}
	return out, nil
}

// Decode parses a path from its binary form.
func Decode(b []byte) (Path, error) {
	var p Path
	for len(b) > 0 {
		tag := b[0]
		b = b[1:]
		switch tag {
		case tagNumber:
			if len(b) < 4 {
				return nil, ErrTruncated
			}
			n := binary.BigEndian.Uint32(b[:4])
			b = b[4:]
			p = append(p, Number(n))
		case tagString:
			i := 0
			for {
				if i+2 > len(b) {
					return nil, ErrTruncated
				}
				if binary.BigEndian.Uint16(b[i:i+2]) == terminator {
					break
				}
				i += 2
			}
			s, err := utf16enc.Decode(b[:i])
			if err != nil {
				return nil, err
			}
			b = b[i+2:]
			p = append(p, Str(s))
		default:
			return nil, ErrUnknownTag
		}
	}
	return p, nil
}
