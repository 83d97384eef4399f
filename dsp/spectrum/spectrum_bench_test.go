package spectrum

import "testing"

func BenchmarkMagnitude(b *testing.B) {
	in := make([]complex128, 16384)
	for i := range in {
		in[i] = complex(float64(i)/10.0, float64(len(in)-i)/10.0)
	}

	b.SetBytes(int64(len(in) * 16))
	b.ReportAllocs()
	for b.Loop() {
		_ = Magnitude(in)
	}
}
