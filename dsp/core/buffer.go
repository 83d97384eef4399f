package core

import "github.com/cwbudde/algo-vecmath"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// AddAt accumulates src into dst starting at offset. Samples that would
// land past the end of dst are dropped; the number of accumulated samples
// is returned.
func AddAt(dst, src []float64, offset int) int {
	if offset < 0 || offset >= len(dst) {
		return 0
	}
	n := min(len(dst)-offset, len(src))
	if n == 0 {
		return 0
	}
	vecmath.AddBlockInPlace(dst[offset:offset+n], src[:n])
	return n
}
