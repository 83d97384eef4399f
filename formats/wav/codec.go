package wav

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-playnoise/dsp/core"
)

// DefaultVolume is the volume divisor used by the export path.
const DefaultVolume = 5000

const (
	int16Max   = 32767
	int16Scale = 32768
)

// Audio is a decoded mono signal.
type Audio struct {
	SampleRate    int
	Channels      int // channel count of the source
	BitsPerSample int
	Samples       []float64
	// Truncated is set when the data ended before the declared length or
	// mid-frame; Samples holds everything read up to that point.
	Truncated bool
}

// Duration returns the length of a in seconds.
func (a Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// Serialize renders a stereo pair as a canonical 16-bit WAV file. Each
// sample is scaled by 32767/volume and clamped to [-1, 1] before
// quantization. A shorter right channel is padded with silence.
func Serialize(left, right []float64, sampleRate int, volume float64) ([]byte, error) {
	if volume <= 0 || math.IsNaN(volume) || math.IsInf(volume, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVolume, volume)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate: %d", sampleRate)
	}

	const channels = 2
	scale := int16Max / volume
	dataLength := len(left) * channels * bytesPerInt16

	out := make([]byte, HeaderSize+dataLength)
	copy(out, WriteHeader(dataLength, sampleRate, channels, defaultBits))

	data := out[HeaderSize:]
	for i, l := range left {
		var r float64
		if i < len(right) {
			r = right[i]
		}
		binary.LittleEndian.PutUint16(data[i*4:], uint16(quantize(l, scale)))
		binary.LittleEndian.PutUint16(data[i*4+2:], uint16(quantize(r, scale)))
	}
	return out, nil
}

func quantize(x, scale float64) int16 {
	if math.IsNaN(x) {
		return 0
	}
	v := core.Clamp(x*scale, -1, 1)
	return int16(math.Floor(v * int16Max))
}

// Parse decodes a canonical 16-bit PCM WAV buffer. Stereo input keeps the
// left channel. A data section shorter than declared yields the samples
// read so far with Truncated set.
func Parse(buf []byte) (Audio, error) {
	h, err := ReadHeader(buf)
	if err != nil {
		return Audio{}, err
	}
	if h.Format != formatPCM || h.BitsPerSample != defaultBits || h.Channels < 1 {
		return Audio{}, fmt.Errorf("%w: format=%d bits=%d channels=%d",
			ErrUnsupportedLayout, h.Format, h.BitsPerSample, h.Channels)
	}

	frameSize := h.Channels * bytesPerInt16
	available := len(buf) - HeaderSize
	size := available
	truncated := false
	if h.DataLength > 0 && h.DataLength <= available {
		size = h.DataLength
	} else if h.DataLength > available {
		truncated = true
	}
	if size%frameSize != 0 {
		truncated = true
	}

	data := buf[HeaderSize : HeaderSize+size]
	frames := size / frameSize
	samples := make([]float64, frames)
	for i := range frames {
		off := i * frameSize
		samples[i] = float64(int16(binary.LittleEndian.Uint16(data[off:]))) / int16Scale
	}

	return Audio{
		SampleRate:    h.SampleRate,
		Channels:      h.Channels,
		BitsPerSample: h.BitsPerSample,
		Samples:       samples,
		Truncated:     truncated,
	}, nil
}
