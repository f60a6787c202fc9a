// Package keyrange computes the byte-key range that covers everything
// stored under a path-encoded prefix.
package keyrange

// Increment treats b as a big-endian unsigned integer and adds one to it,
// propagating the carry past any trailing 0xFF bytes (which it truncates,
// since 0xFF+1 wraps to 0x00 and the carry moves left). An empty buffer, or
// one made entirely of 0xFF bytes, increments to a single 0x01 byte — every
// path-encoded prefix has room below it, so this never needs to signal
// overflow to its caller.
func Increment(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0xFF {
		i--
	}
	if i == 0 {
		return []byte{0x01}
	}
	out := make([]byte, i)
	copy(out, b[:i])
	out[i-1]++
	return out
}

// Range returns the [lower, upper) byte range that holds every row whose
// path extends prefix, prefix itself included.
func Range(prefix []byte) (lower, upper []byte) {
	lower = prefix
	upper = Increment(prefix)
	return lower, upper
}
