package valueenc

import (
	"math"
	"math/big"
	"testing"
	"time"
)

func TestScalarRoundTrip(t *testing.T) {
	cases := []any{
		nil,
		true,
		false,
		float64(0),
		float64(-42.5),
		3.141592653589793,
		"",
		"hello, world",
		Regexp("/foo.*bar/i"),
	}
	for _, v := range cases {
		enc, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%#v): %v", v, err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%x): %v", enc, err)
		}
		if dec != v {
			t.Fatalf("round trip %#v -> %#v", v, dec)
		}
	}
}

func TestIntEncodesAsFloat64(t *testing.T) {
	enc, err := Encode(7)
	if err != nil {
		t.Fatalf("Encode(7): %v", err)
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dec != float64(7) {
		t.Fatalf("Encode(int(7)) decoded as %#v, want float64(7)", dec)
	}
}

func TestNaNRoundTripsByBitPattern(t *testing.T) {
	nan := math.NaN()
	enc, err := Encode(nan)
	if err != nil {
		t.Fatalf("Encode(NaN): %v", err)
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	f, ok := dec.(float64)
	if !ok {
		t.Fatalf("Decode(NaN) returned %T, want float64", dec)
	}
	// NaN != NaN under ==, so the round trip must be checked bit for bit.
	if math.Float64bits(f) != math.Float64bits(nan) {
		t.Fatalf("NaN round trip changed bit pattern: %x vs %x", math.Float64bits(f), math.Float64bits(nan))
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	cases := []string{
		"0",
		"-1",
		"12345678901234567890123456789",
		"-99999999999999999999999999999999999999",
	}
	for _, s := range cases {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			t.Fatalf("test bug: %q is not a valid bigint literal", s)
		}
		enc, err := Encode(n)
		if err != nil {
			t.Fatalf("Encode(%s): %v", s, err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		got, ok := dec.(*big.Int)
		if !ok {
			t.Fatalf("Decode returned %T, want *big.Int", dec)
		}
		if got.Cmp(n) != 0 {
			t.Fatalf("bigint round trip %s -> %s", s, got.String())
		}
	}
}

func TestTimestampRoundTripMillisecondPrecision(t *testing.T) {
	in := time.Date(2024, time.March, 5, 12, 30, 0, 123_000_000, time.UTC)
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode(time.Time): %v", err)
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, ok := dec.(time.Time)
	if !ok {
		t.Fatalf("Decode returned %T, want time.Time", dec)
	}
	if !out.Equal(in) {
		t.Fatalf("timestamp round trip %v -> %v", in, out)
	}
}

func TestEncodeUnsupportedType(t *testing.T) {
	_, err := Encode(struct{}{})
	if err != ErrUnsupportedType {
		t.Fatalf("Encode(struct{}{}): got %v, want ErrUnsupportedType", err)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode([]byte{0x42})
	if err != ErrUnknownTag {
		t.Fatalf("Decode unknown tag: got %v, want ErrUnknownTag", err)
	}
}

func TestDecodeEmptyIsTruncated(t *testing.T) {
	_, err := Decode(nil)
	if err != ErrTruncated {
		t.Fatalf("Decode(nil): got %v, want ErrTruncated", err)
	}
}

func TestPeekTagDoesNotConsumeMarkers(t *testing.T) {
	tag, err := PeekTag(ArrayMarker())
	if err != nil || tag != TagArray {
		t.Fatalf("PeekTag(ArrayMarker()) = %v, %v, want TagArray, nil", tag, err)
	}
	tag, err = PeekTag(RecordMarker())
	if err != nil || tag != TagRecord {
		t.Fatalf("PeekTag(RecordMarker()) = %v, %v, want TagRecord, nil", tag, err)
	}
}
