package wav

import "errors"

var (
	// ErrNotWavFile is returned when the RIFF/WAVE magic is missing.
	ErrNotWavFile = errors.New("wav: not a WAV file")
	// ErrUnsupportedLayout is returned when the fmt or data chunk is not at
	// its canonical offset, or the sample format is not 16-bit PCM.
	ErrUnsupportedLayout = errors.New("wav: unsupported WAV layout")
	// ErrTruncated is returned when the buffer is shorter than a header.
	ErrTruncated = errors.New("wav: truncated header")
	// ErrInvalidVolume is returned by Serialize for a non-positive volume.
	ErrInvalidVolume = errors.New("wav: invalid volume")
)
