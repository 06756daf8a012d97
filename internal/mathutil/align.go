// Package mathutil holds the size arithmetic shared by the decoder packages.
package mathutil

// Unsigned is every unsigned integer width.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// AlignUp rounds n up to the next multiple of align.
// align must be a power of two.
func AlignUp[T Unsigned](n, align T) T {
	return (n + align - 1) &^ (align - 1)
}

// AlignDown rounds n down to a multiple of align.
// align must be a power of two.
func AlignDown[T Unsigned](n, align T) T {
	return n &^ (align - 1)
}

// IsPow2 reports whether n is a power of two. Zero is not.
func IsPow2[T Unsigned](n T) bool {
	return n != 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for 0.
func NextPowerOfTwo(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}
