package tune

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-playnoise/dsp/core"
	"github.com/cwbudde/algo-playnoise/dsp/signal"
	"github.com/cwbudde/algo-playnoise/synth"
)

const (
	// DefaultStagger is the per-channel overlay offset in samples.
	DefaultStagger = 2205
	// DefaultMaxSamples caps a rendered tune at ten minutes of 44.1 kHz
	// audio.
	DefaultMaxSamples = core.DefaultSampleRate * 60 * 10
)

// Mode selects how channels map onto the stereo output.
type Mode int

const (
	// ModeOverlay mixes all channels with a per-channel stagger into both
	// outputs.
	ModeOverlay Mode = iota
	// ModePlane sends channel 1 left and channel 2 right.
	ModePlane
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeOverlay:
		return "overlay"
	case ModePlane:
		return "plane"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "overlay", "encode":
		return ModeOverlay, nil
	case "plane", "stereo":
		return ModePlane, nil
	default:
		return 0, fmt.Errorf("tune: unknown mode %q", name)
	}
}

// ProgressFunc receives the number of rendered channels so far.
type ProgressFunc func(done, total int)

// Option mutates encoder configuration.
type Option func(*config) error

type config struct {
	mode        Mode
	stagger     int
	maxSamples  int
	normalize   float64
	concurrency int
	portamento  bool
	progress    ProgressFunc
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		mode:        ModeOverlay,
		stagger:     DefaultStagger,
		maxSamples:  DefaultMaxSamples,
		concurrency: runtime.GOMAXPROCS(0),
		portamento:  true,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithMode selects overlay or plane rendering.
func WithMode(m Mode) Option {
	return func(cfg *config) error {
		if m != ModeOverlay && m != ModePlane {
			return fmt.Errorf("tune: invalid mode: %d", m)
		}
		cfg.mode = m
		return nil
	}
}

// WithStagger sets the overlay offset between consecutive channels.
func WithStagger(samples int) Option {
	return func(cfg *config) error {
		if samples < 0 {
			return fmt.Errorf("tune: invalid stagger: %d", samples)
		}
		cfg.stagger = samples
		return nil
	}
}

// WithMaxSamples sets the largest output length accepted before rendering.
func WithMaxSamples(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("tune: invalid max samples: %d", n)
		}
		cfg.maxSamples = n
		return nil
	}
}

// WithNormalize scales the rendered pair so its loudest sample reaches
// peak. Zero disables normalization.
func WithNormalize(peak float64) Option {
	return func(cfg *config) error {
		if peak < 0 {
			return fmt.Errorf("tune: invalid normalize peak: %v", peak)
		}
		cfg.normalize = peak
		return nil
	}
}

// WithConcurrency limits how many channels render at once.
func WithConcurrency(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("tune: invalid concurrency: %d", n)
		}
		cfg.concurrency = n
		return nil
	}
}

// WithPortamento controls whether a gliding note starts from the pitch of
// the previous note in its channel.
func WithPortamento(enabled bool) Option {
	return func(cfg *config) error {
		cfg.portamento = enabled
		return nil
	}
}

// WithProgress installs a callback invoked after each channel renders.
// Calls are serialized.
func WithProgress(fn ProgressFunc) Option {
	return func(cfg *config) error {
		cfg.progress = fn
		return nil
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// Encoder renders tunes.
type Encoder struct {
	synth *synth.Synthesizer
	cfg   config
}

// NewEncoder creates an encoder around s. A nil s uses a default
// synthesizer.
func NewEncoder(s *synth.Synthesizer, opts ...Option) (*Encoder, error) {
	if s == nil {
		var err error
		if s, err = synth.New(); err != nil {
			return nil, err
		}
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Encoder{synth: s, cfg: cfg}, nil
}

// Mode returns the configured rendering mode.
func (e *Encoder) Mode() Mode { return e.cfg.mode }

// Encode renders t. The key signature is applied to copies of the notes;
// t itself is not modified.
func (e *Encoder) Encode(ctx context.Context, t Tune) (Stereo, error) {
	channels := e.prepare(t)
	if e.cfg.mode == ModePlane && len(channels) > 2 {
		return Stereo{}, fmt.Errorf("tune: plane mode takes at most 2 channels, got %d", len(channels))
	}

	lengths := make([]int, len(channels))
	for i, ch := range channels {
		for _, n := range ch {
			lengths[i] = addSamples(lengths[i], e.synth.Length(n))
		}
	}
	total := e.outputLength(lengths)
	if total > e.cfg.maxSamples {
		return Stereo{}, fmt.Errorf("%w: %d samples exceeds limit of %d", ErrTooLong, total, e.cfg.maxSamples)
	}

	e.cfg.logger.Debug("encoding tune",
		"key", t.Key,
		"channels", len(channels),
		"mode", e.cfg.mode.String(),
		"samples", total)

	rendered, err := e.renderChannels(ctx, channels, lengths)
	if err != nil {
		return Stereo{}, err
	}

	var out Stereo
	if e.cfg.mode == ModePlane {
		out = plane(rendered, total)
	} else {
		out = e.overlay(rendered, total)
	}
	out.SampleRate = e.synth.SampleRate()

	if e.cfg.normalize > 0 {
		gain, err := signal.NormalizeInPlace(e.cfg.normalize, out.Left, out.Right)
		if err != nil {
			return Stereo{}, err
		}
		e.cfg.logger.Debug("normalized tune", "gain", gain)
	}
	return out, nil
}

func (e *Encoder) prepare(t Tune) [][]synth.Note {
	acc := KeyAccidental(t.Key)
	out := make([][]synth.Note, len(t.Channels))
	for i, ch := range t.Channels {
		notes := make([]synth.Note, len(ch))
		var prev float64
		for j, n := range ch {
			n = n.Transpose(acc)
			if e.cfg.portamento && !n.IsRest() && n.Glide > 0 && n.GlideFrom == 0 && prev > 0 {
				n.GlideFrom = prev
			}
			if !n.IsRest() {
				prev = n.Pitches[0].Hz()
			}
			notes[j] = n
		}
		out[i] = notes
	}
	return out
}

func (e *Encoder) outputLength(lengths []int) int {
	total := 0
	for i, n := range lengths {
		if n == 0 {
			continue
		}
		end := n
		if e.cfg.mode == ModeOverlay {
			end = addSamples(end, i*e.cfg.stagger)
		}
		total = max(total, end)
	}
	return total
}

// addSamples adds two non-negative sample counts, saturating at math.MaxInt.
func addSamples(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func (e *Encoder) renderChannels(ctx context.Context, channels [][]synth.Note, lengths []int) ([][]float64, error) {
	out := make([][]float64, len(channels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.concurrency)

	var mu sync.Mutex
	done := 0

	for i, ch := range channels {
		g.Go(func() error {
			buf := make([]float64, 0, lengths[i])
			for j, n := range ch {
				if err := gctx.Err(); err != nil {
					return err
				}
				data, err := e.synth.Synthesize(n)
				if err != nil {
					return fmt.Errorf("tune: channel %d note %d: %w", i+1, j, err)
				}
				buf = append(buf, data...)
			}
			out[i] = buf

			mu.Lock()
			done++
			if e.cfg.progress != nil {
				e.cfg.progress(done, len(channels))
			}
			mu.Unlock()

			e.cfg.logger.Debug("rendered channel", "channel", i+1, "notes", len(ch), "samples", len(buf))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Encoder) overlay(channels [][]float64, total int) Stereo {
	mix := make([]float64, total)
	for i, ch := range channels {
		if len(ch) == 0 {
			continue
		}
		core.AddAt(mix, ch, i*e.cfg.stagger)
	}
	right := make([]float64, total)
	copy(right, mix)
	return Stereo{Left: mix, Right: right}
}

func plane(channels [][]float64, total int) Stereo {
	var left, right []float64
	if len(channels) > 0 {
		left = channels[0]
	}
	if len(channels) > 1 {
		right = channels[1]
	}

	switch {
	case len(left) == 0 && len(right) > 0:
		left = right
	case len(right) == 0 && len(left) > 0:
		right = left
	}

	l := make([]float64, total)
	r := make([]float64, total)
	copy(l, left)
	copy(r, right)
	return Stereo{Left: l, Right: r}
}
