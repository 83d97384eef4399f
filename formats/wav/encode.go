package wav

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/cwbudde/algo-playnoise/dsp/core"
)

// Encode writes a 16-bit stereo WAV stream through go-audio. Samples are
// clamped to [-1, 1] and scaled by 32767; use Serialize for the
// volume-divided export used by the byte-buffer path.
func Encode(w io.WriteSeeker, left, right []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav: invalid sample rate: %d", sampleRate)
	}

	const channels = 2
	enc := gowav.NewEncoder(w, sampleRate, defaultBits, channels, formatPCM)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(left)*channels),
		SourceBitDepth: defaultBits,
	}
	for i, l := range left {
		var r float64
		if i < len(right) {
			r = right[i]
		}
		buf.Data[2*i] = toInt16(l)
		buf.Data[2*i+1] = toInt16(r)
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("wav: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: encode: %w", err)
	}
	return nil
}

func toInt16(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	return int(math.Round(core.Clamp(x, -1, 1) * int16Max))
}
