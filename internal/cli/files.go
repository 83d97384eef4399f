package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"

	"github.com/cwbudde/algo-playnoise/formats/wav"
	"github.com/cwbudde/algo-playnoise/synth/tune"
)

// Encoder names accepted by --encoder.
const (
	encoderCanonical = "canonical"
	encoderGoAudio   = "go-audio"
)

// readSource reads a notation file, or stdin for "-".
func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readAudio loads a WAV file of any layout the codec supports.
func readAudio(path string) (wav.Audio, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return wav.Audio{}, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return wav.Audio{}, err
	}
	a, err := wav.Read(b)
	if err != nil {
		return wav.Audio{}, fmt.Errorf("%s: %w", path, err)
	}
	if a.Truncated {
		opts.logger.Warn("wav data truncated", "path", path, "samples", len(a.Samples))
	}
	opts.logger.Debug("decoded wav file",
		"path", path,
		"sampleRate", a.SampleRate,
		"nchannels", a.Channels,
		"bitDepth", a.BitsPerSample,
		"nsamples", len(a.Samples),
	)
	return a, nil
}

// outputPath resolves an explicit -o value, or builds a unique name in the
// output directory.
func outputPath(explicit, stem string) (string, error) {
	if explicit != "" {
		return homedir.Expand(explicit)
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return "", err
	}
	id := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return filepath.Join(opts.outDir, fmt.Sprintf("play-noise-%s-%s.wav", stem, id)), nil
}

// writeAudio stores s at path with the selected encoder. The canonical
// encoder divides by volume before quantizing; go-audio writes the samples
// as they are.
func writeAudio(path string, s tune.Stereo, encoder string, volume float64) error {
	switch encoder {
	case encoderCanonical, "":
		buf, err := wav.Serialize(s.Left, s.Right, int(s.SampleRate), volume)
		if err != nil {
			return err
		}
		return os.WriteFile(path, buf, 0o644)
	case encoderGoAudio:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := wav.Encode(f, s.Left, s.Right, int(s.SampleRate)); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unknown encoder %q (want %s or %s)", encoder, encoderCanonical, encoderGoAudio)
	}
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}
