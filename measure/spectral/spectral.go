package spectral

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-playnoise/dsp/spectrum"
	"github.com/cwbudde/algo-playnoise/dsp/window"
	"github.com/cwbudde/algo-playnoise/measure/estimate"
	"github.com/cwbudde/algo-playnoise/stats/frequency"
	statstime "github.com/cwbudde/algo-playnoise/stats/time"
)

const (
	// DefaultChunkSize is the analysis chunk length in samples.
	DefaultChunkSize = 11025
	// DefaultHop is the offset step between tracks in samples.
	DefaultHop = 4410
	// DefaultVoices is the number of staggered tracks.
	DefaultVoices = 2
)

// Backend selects the FFT implementation.
type Backend int

const (
	// BackendRecursive uses the recursive radix-2 [spectrum.FFT].
	BackendRecursive Backend = iota
	// BackendPlanned uses cached algo-fft plans.
	BackendPlanned
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendRecursive:
		return "recursive"
	case BackendPlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// Option mutates analyzer configuration.
type Option func(*config) error

type config struct {
	chunkSize int
	hop       int
	voices    int
	backend   Backend
	window    window.Type
}

func defaultConfig() config {
	return config{
		chunkSize: DefaultChunkSize,
		hop:       DefaultHop,
		voices:    DefaultVoices,
		backend:   BackendRecursive,
		window:    window.TypeRectangular,
	}
}

// WithChunkSize sets the analysis chunk length in samples.
func WithChunkSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("spectral: invalid chunk size: %d", n)
		}
		cfg.chunkSize = n
		return nil
	}
}

// WithHop sets the sample offset between consecutive tracks.
func WithHop(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("spectral: invalid hop: %d", n)
		}
		cfg.hop = n
		return nil
	}
}

// WithVoices sets how many staggered tracks [Analyzer.Tracks] produces.
func WithVoices(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("spectral: invalid voice count: %d", n)
		}
		cfg.voices = n
		return nil
	}
}

// WithBackend selects the FFT implementation.
func WithBackend(b Backend) Option {
	return func(cfg *config) error {
		if b != BackendRecursive && b != BackendPlanned {
			return fmt.Errorf("spectral: invalid backend: %d", b)
		}
		cfg.backend = b
		return nil
	}
}

// WithWindow tapers each chunk before the transform. The default is no
// window.
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		if t < window.TypeRectangular || t > window.TypeTriangle {
			return fmt.Errorf("spectral: invalid window: %d", t)
		}
		cfg.window = t
		return nil
	}
}

// Analyzer runs spectral pitch estimation. It caches FFT plans and is not
// safe for concurrent use.
type Analyzer struct {
	cfg   config
	plans map[int]*spectrum.PlannedFFT
}

// New creates an analyzer.
func New(opts ...Option) (*Analyzer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Analyzer{cfg: cfg, plans: make(map[int]*spectrum.PlannedFFT)}, nil
}

// ChunkSize returns the configured chunk length.
func (a *Analyzer) ChunkSize() int { return a.cfg.chunkSize }

// Analyze estimates the dominant frequency, RMS volume, peak, spectral
// centroid and duration of one chunk. Empty and silent chunks yield a NaN frequency.
func (a *Analyzer) Analyze(chunk []float64, sampleRate float64) (estimate.Estimate, error) {
	if sampleRate <= 0 {
		return estimate.Estimate{}, fmt.Errorf("spectral: sample rate must be > 0: %v", sampleRate)
	}
	if len(chunk) == 0 {
		return estimate.Undetermined(0, 0, sampleRate), nil
	}
	level := statstime.Calculate(chunk)

	input := chunk
	if a.cfg.window != window.TypeRectangular {
		input = window.Applied(a.cfg.window, chunk)
	}
	padded := spectrum.ZeroPad(input)
	bins, err := a.transform(padded)
	if err != nil {
		return estimate.Estimate{}, err
	}

	mag := spectrum.Magnitude(spectrum.HalfSpectrum(bins))
	st := frequency.Calculate(mag, sampleRate, len(padded))

	est := estimate.Estimate{
		Frequency: st.Peak,
		Volume:    level.RMS,
		Duration:  estimate.Seconds(len(chunk), sampleRate),
		Peak:      level.Peak,
	}
	if !math.IsNaN(st.Centroid) {
		est.Centroid = st.Centroid
	}
	return est, nil
}

func (a *Analyzer) transform(x []complex128) ([]complex128, error) {
	if a.cfg.backend == BackendRecursive {
		return spectrum.FFT(x)
	}

	p, ok := a.plans[len(x)]
	if !ok {
		var err error
		p, err = spectrum.NewPlannedFFT(len(x))
		if err != nil {
			return nil, err
		}
		a.plans[len(x)] = p
	}
	return p.Forward(x)
}

// Tracks analyzes samples at Voices offsets (0, Hop, 2*Hop, ...). Each
// track covers ceil(len(samples)/ChunkSize) chunk slots and keeps only
// chunks with a determined pitch.
func (a *Analyzer) Tracks(ctx context.Context, samples []float64, sampleRate float64) ([]estimate.Track, error) {
	tracks := make([]estimate.Track, 0, a.cfg.voices)
	for v := range a.cfg.voices {
		tr, err := estimate.Run(ctx, samples, sampleRate, a.cfg.chunkSize, v*a.cfg.hop, a.Analyze)
		if err != nil {
			return nil, fmt.Errorf("spectral: voice %d: %w", v, err)
		}
		tracks = append(tracks, tr)
	}
	return tracks, nil
}

// Analyze is a one-shot helper around [New] and [Analyzer.Analyze].
func Analyze(chunk []float64, sampleRate float64, opts ...Option) (estimate.Estimate, error) {
	a, err := New(opts...)
	if err != nil {
		return estimate.Estimate{}, err
	}
	return a.Analyze(chunk, sampleRate)
}

// Tracks is a one-shot helper around [New] and [Analyzer.Tracks].
func Tracks(ctx context.Context, samples []float64, sampleRate float64, opts ...Option) ([]estimate.Track, error) {
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return a.Tracks(ctx, samples, sampleRate)
}
