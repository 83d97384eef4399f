package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/cwbudde/algo-playnoise/dsp/signal"
)

const formatExtensible = 0xFFFE

// Decode reads a WAV stream of any PCM layout go-audio understands
// (8/16/24/32-bit, extra chunks, extensible headers). Stereo input keeps
// the left channel.
func Decode(r io.ReadSeeker) (Audio, error) {
	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		return Audio{}, ErrNotWavFile
	}
	if d.WavAudioFormat != formatPCM && d.WavAudioFormat != formatExtensible {
		return Audio{}, fmt.Errorf("%w: format=%d", ErrUnsupportedLayout, d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	truncated := false
	if err != nil {
		if buf == nil || !errors.Is(err, io.ErrUnexpectedEOF) {
			return Audio{}, fmt.Errorf("wav: decode: %w", err)
		}
		truncated = true
	}

	bits := int(d.BitDepth)
	if bits == 0 {
		bits = buf.SourceBitDepth
	}
	samples, partial := leftChannel(buf, bits)
	return Audio{
		SampleRate:    int(d.SampleRate),
		Channels:      int(d.NumChans),
		BitsPerSample: bits,
		Samples:       samples,
		Truncated:     truncated || partial,
	}, nil
}

func leftChannel(buf *audio.IntBuffer, bits int) ([]float64, bool) {
	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}

	offset, scale := 0.0, math.Pow(2, float64(bits-1))
	if bits == 8 {
		// 8-bit PCM is unsigned.
		offset = 128
	}

	frames := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		frames[i] = (float64(v) - offset) / scale
	}
	return signal.Deinterleave(frames, channels)[0], len(buf.Data)%channels != 0
}

// Read decodes an in-memory WAV file. Canonical 16-bit buffers go through
// [Parse]; anything with a different layout falls back to [Decode].
func Read(buf []byte) (Audio, error) {
	a, err := Parse(buf)
	if !errors.Is(err, ErrUnsupportedLayout) {
		return a, err
	}
	return Decode(bytes.NewReader(buf))
}
