// Package utf16enc encodes and decodes strings as big-endian UTF-16 code
// units, the wire representation shared by path string segments and the
// string/bigint/regexp leaf value tags.
package utf16enc

import (
	"encoding/binary"
	"errors"
	"unicode/utf16"
)

// ErrInvalidCodeUnit is returned when a string to encode contains a code
// unit that cannot appear in a path or value (0xFFFE or above); 0xFFFE is
// reserved as the path string-segment terminator.
var ErrInvalidCodeUnit = errors.New("utf16enc: code unit >= 0xFFFE")

// ErrOddLength is returned when decoding a buffer whose length is not a
// multiple of 2.
var ErrOddLength = errors.New("utf16enc: odd-length buffer")

// Encode converts s to big-endian UTF-16 code units. Non-BMP runes become
// surrogate pairs. Invalid UTF-8 bytes and surrogate code points in s are
// replaced with U+FFFD, so Encode never emits an unpaired surrogate.
func Encode(s string) ([]byte, error) {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	var buf [2]byte
	for _, u := range units {
		if u >= 0xFFFE {
			return nil, ErrInvalidCodeUnit
		}
		binary.BigEndian.PutUint16(buf[:], u)
		out = append(out, buf[:]...)
	}
	return out, nil
}

// Decode converts big-endian UTF-16 code units back to a string. An
// unpaired surrogate in b is not rejected; it decodes to U+FFFD.
func Decode(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", ErrOddLength
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(b[i*2 : i*2+2])
	}
	return string(utf16.Decode(units)), nil
}
