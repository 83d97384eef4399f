package playback

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
)

func readAll(t *testing.T, r io.Reader, chunk int) []float32 {
	t.Helper()
	var out []float32
	buf := make([]byte, chunk)
	for {
		n, err := r.Read(buf)
		if n%4 != 0 {
			t.Fatalf("Read() returned %d bytes, not whole samples", n)
		}
		for i := 0; i < n; i += 4 {
			out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(buf[i:])))
		}
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
}

func TestReaderInterleavesAndClamps(t *testing.T) {
	r := NewReader([]float64{0.25, 0.75, -0.5}, []float64{-0.25, 0.1}, 2)
	if r.Len() != 24 {
		t.Fatalf("Len() = %d, want 24", r.Len())
	}

	got := readAll(t, r, 7)
	want := []float32{0.5, -0.5, 1, 0.2, -1, 0}
	if len(got) != len(want) {
		t.Fatalf("samples = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-7 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if r.Len() != 0 {
		t.Fatalf("Len() after drain = %d, want 0", r.Len())
	}
}

func TestReaderEmpty(t *testing.T) {
	n, err := NewReader(nil, nil, 1).Read(make([]byte, 16))
	if n != 0 || err != io.EOF {
		t.Fatalf("Read() = %d, %v, want 0, EOF", n, err)
	}
}
