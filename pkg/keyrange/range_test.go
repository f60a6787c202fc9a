package keyrange

import (
	"bytes"
	"testing"
)

func TestIncrementEmpty(t *testing.T) {
	got := Increment(nil)
	if !bytes.Equal(got, []byte{0x01}) {
		t.Fatalf("Increment(nil) = %x, want 01", got)
	}
}

func TestIncrementLastByte(t *testing.T) {
	got := Increment([]byte{0x00, 0x01, 0xFE})
	want := []byte{0x00, 0x01, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("Increment = %x, want %x", got, want)
	}
}

func TestIncrementPropagatesCarryPastTrailingFF(t *testing.T) {
	got := Increment([]byte{0x00, 0x00, 0x00, 0x00, 0xFF})
	want := []byte{0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(got, want) {
		t.Fatalf("Increment = %x, want %x", got, want)
	}
}

func TestIncrementAllFFBytes(t *testing.T) {
	got := Increment([]byte{0xFF, 0xFF, 0xFF})
	want := []byte{0x01}
	if !bytes.Equal(got, want) {
		t.Fatalf("Increment = %x, want %x", got, want)
	}
}

func TestRangeCoversIndex255StyleTrailingFFPrefix(t *testing.T) {
	// A number segment whose low byte is 0xFF (array index 255, 511, ...)
	// encodes to a prefix ending in 0xFF. Its range must still be
	// non-empty and cover the prefix's own descendants.
	prefix := []byte{0x00, 0x00, 0x00, 0x00, 0xFF}
	lower, upper := Range(prefix)
	if bytes.Compare(upper, lower) <= 0 {
		t.Fatalf("Range(%x) produced empty or inverted range [%x, %x)", prefix, lower, upper)
	}
	child := append(append([]byte(nil), prefix...), 0x00, 0x61)
	if bytes.Compare(child, lower) < 0 || bytes.Compare(child, upper) >= 0 {
		t.Fatalf("descendant %x not within range [%x, %x)", child, lower, upper)
	}
}

func TestIncrementDoesNotMutateInput(t *testing.T) {
	in := []byte{0x00, 0x01}
	cp := append([]byte(nil), in...)
	Increment(in)
	if !bytes.Equal(in, cp) {
		t.Fatalf("Increment mutated its input: %x, originally %x", in, cp)
	}
}

func TestRangeCoversPrefixedKeys(t *testing.T) {
	prefix := []byte{0x01, 0x00, 0x61, 0xFF, 0xFE}
	lower, upper := Range(prefix)
	if !bytes.Equal(lower, prefix) {
		t.Fatalf("Range lower bound = %x, want %x", lower, prefix)
	}
	longer := append(append([]byte(nil), prefix...), 0x00, 0x00, 0x00, 0x00, 0x01)
	if bytes.Compare(longer, lower) < 0 || bytes.Compare(longer, upper) >= 0 {
		t.Fatalf("extension of prefix %x not within range [%x, %x)", longer, lower, upper)
	}
	if bytes.Compare(prefix, lower) < 0 || bytes.Compare(prefix, upper) >= 0 {
		t.Fatalf("prefix itself %x not within its own range [%x, %x)", prefix, lower, upper)
	}
}

func TestRangeExcludesSiblingPrefix(t *testing.T) {
	// encode(["a"]) vs encode(["ab"]): the range for "a" must not reach "ab".
	a := []byte{0x01, 0x00, 0x61, 0xFF, 0xFE}
	ab := []byte{0x01, 0x00, 0x61, 0x00, 0x62, 0xFF, 0xFE}
	_, upper := Range(a)
	if bytes.Compare(ab, upper) < 0 {
		t.Fatalf("range for %x reaches into sibling prefix %x (upper=%x)", a, ab, upper)
	}
}
