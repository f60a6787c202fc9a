package pathenc

import (
	"bytes"
	"sort"
	"testing"
)

func encodeOrFail(t *testing.T, p Path) []byte {
	t.Helper()
	b, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode(%v): %v", p, err)
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	cases := []Path{
		{},
		{Number(0)},
		{Number(4294967293)},
		{Str("")},
		{Str("hello")},
		{Number(0), Str("a"), Number(3)},
		{Str("a"), Str("ab"), Str("b")},
	}
	for _, p := range cases {
		enc := encodeOrFail(t, p)
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%x): %v", enc, err)
		}
		if len(dec) != len(p) {
			t.Fatalf("round trip %v -> %v: length mismatch", p, dec)
		}
		for i := range p {
			if p[i].IsNumber() != dec[i].IsNumber() {
				t.Fatalf("segment %d kind mismatch: %v vs %v", i, p[i], dec[i])
			}
			if p[i].IsNumber() && p[i].Num() != dec[i].Num() {
				t.Fatalf("segment %d number mismatch: %v vs %v", i, p[i], dec[i])
			}
			if !p[i].IsNumber() && p[i].Text() != dec[i].Text() {
				t.Fatalf("segment %d string mismatch: %q vs %q", i, p[i].Text(), dec[i].Text())
			}
		}
	}
}

func TestOrderingNumberBeforeString(t *testing.T) {
	num := encodeOrFail(t, Path{Number(4294967293)})
	str := encodeOrFail(t, Path{Str("")})
	if bytes.Compare(num, str) >= 0 {
		t.Fatalf("expected every number segment to sort before every string segment")
	}
}

func TestOrderingNumbersNumeric(t *testing.T) {
	a := encodeOrFail(t, Path{Number(2)})
	b := encodeOrFail(t, Path{Number(10)})
	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("expected encode(2) < encode(10)")
	}
}

func TestOrderingPrefixBeforeLonger(t *testing.T) {
	a := encodeOrFail(t, Path{Str("a")})
	ab := encodeOrFail(t, Path{Str("ab")})
	if bytes.Compare(a, ab) >= 0 {
		t.Fatalf("expected encode(\"a\") < encode(\"ab\")")
	}
}

func TestOrderingSubtreeContainment(t *testing.T) {
	// Every row under the record at "a" (i.e. paths starting with the
	// segment "a" followed by more segments) must sort strictly between
	// encode(["a"]) and encode(["ab"]) — the range scan for "a"'s subtree
	// must never spill into "ab"'s.
	a := encodeOrFail(t, Path{Str("a")})
	aChild := encodeOrFail(t, Path{Str("a"), Str("z")})
	ab := encodeOrFail(t, Path{Str("ab")})
	if bytes.Compare(a, aChild) >= 0 || bytes.Compare(aChild, ab) >= 0 {
		t.Fatalf("expected encode(a) < encode(a,z) < encode(ab); got %x, %x, %x", a, aChild, ab)
	}
}

func TestOrderingMatchesSegmentOrder(t *testing.T) {
	type kase struct {
		p Path
	}
	paths := []Path{
		{Number(0)},
		{Number(1)},
		{Number(2), Str("x")},
		{Str("")},
		{Str("a")},
		{Str("a"), Number(0)},
		{Str("aa")},
		{Str("b")},
	}
	encoded := make([][]byte, len(paths))
	for i, p := range paths {
		encoded[i] = encodeOrFail(t, p)
	}
	if !sort.SliceIsSorted(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	}) {
		t.Fatalf("paths are not encoded in sorted order: %v", paths)
	}
}

func TestInvalidCodeUnitRejected(t *testing.T) {
	_, err := Encode(Path{Str(string(rune(0xFFFE)))})
	if err != ErrInvalidCodeUnit {
		t.Fatalf("Encode with code unit 0xFFFE: got %v, want ErrInvalidCodeUnit", err)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode([]byte{0x02})
	if err != ErrUnknownTag {
		t.Fatalf("Decode with unknown tag: got %v, want ErrUnknownTag", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x01, 0x02})
	if err != ErrTruncated {
		t.Fatalf("Decode truncated number: got %v, want ErrTruncated", err)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		key      string
		isNumber bool
	}{
		{"0", true},
		{"1", true},
		{"4294967294", true},  // == MaxIndex, still a valid index
		{"4294967295", false}, // == MaxIndex+1, reserved, not a valid index
		{"01", false},         // not canonical
		{"-1", false},
		{"1.0", false},
		{"hello", false},
		{"", false},
	}
	for _, c := range cases {
		seg := Normalize(c.key)
		if seg.IsNumber() != c.isNumber {
			t.Errorf("Normalize(%q).IsNumber() = %v, want %v", c.key, seg.IsNumber(), c.isNumber)
		}
	}
}

func TestChildDoesNotMutateParent(t *testing.T) {
	base := Path{Number(1)}
	child := base.Child(Number(2))
	if len(base) != 1 {
		t.Fatalf("Child mutated its receiver: %v", base)
	}
	if len(child) != 2 {
		t.Fatalf("Child did not extend: %v", child)
	}
}
