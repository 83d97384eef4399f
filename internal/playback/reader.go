// Package playback plays rendered stereo buffers on the default audio
// device through oto.
package playback

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cwbudde/algo-playnoise/dsp/core"
	"github.com/cwbudde/algo-playnoise/dsp/signal"
)

const bytesPerSample = 4

// Reader streams an interleaved stereo pair as 32-bit float little-endian
// PCM, the format oto consumes.
type Reader struct {
	frames []float64
	gain   float64
	pos    int
}

// NewReader interleaves left and right. Samples are multiplied by gain and
// clamped to [-1, 1] as they are read.
func NewReader(left, right []float64, gain float64) *Reader {
	return &Reader{frames: signal.Interleave(left, right), gain: gain}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return (len(r.frames) - r.pos) * bytesPerSample
}

// Read implements io.Reader. Only whole samples are written.
func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.frames) {
		return 0, io.EOF
	}
	n := min(len(p)/bytesPerSample, len(r.frames)-r.pos)
	for i := range n {
		v := core.Clamp(r.frames[r.pos+i]*r.gain, -1, 1)
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(float32(v)))
	}
	r.pos += n
	return n * bytesPerSample, nil
}
