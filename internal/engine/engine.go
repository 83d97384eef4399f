// Package engine composes the parser, analyzers, synthesizer and encoder
// into the render, analyze and resynthesize pipelines shared by the CLI,
// the HTTP service, the file watcher and the wasm bridge.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cwbudde/algo-playnoise/dsp/window"
	"github.com/cwbudde/algo-playnoise/measure/estimate"
	"github.com/cwbudde/algo-playnoise/measure/spectral"
	"github.com/cwbudde/algo-playnoise/measure/yin"
	"github.com/cwbudde/algo-playnoise/synth"
	"github.com/cwbudde/algo-playnoise/synth/notation"
	"github.com/cwbudde/algo-playnoise/synth/tune"
)

// Method selects a pitch analyzer.
type Method int

const (
	// MethodSpectral uses the FFT dominant-bin analyzer.
	MethodSpectral Method = iota
	// MethodYIN uses the YIN pitch tracker.
	MethodYIN
)

func (m Method) String() string {
	switch m {
	case MethodSpectral:
		return "spectral"
	case MethodYIN:
		return "yin"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod resolves an analyzer name. The empty string selects
// MethodSpectral.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "spectral", "fft":
		return MethodSpectral, nil
	case "yin":
		return MethodYIN, nil
	default:
		return 0, fmt.Errorf("engine: unknown analysis method %q", name)
	}
}

// RenderParams controls a render.
type RenderParams struct {
	Instrument string  `json:"instrument,omitempty"`
	Mode       string  `json:"mode,omitempty"`
	Stagger    int     `json:"stagger,omitempty"`
	Normalize  float64 `json:"normalize,omitempty"`
	Portamento bool    `json:"portamento,omitempty"`
	Strict     bool    `json:"strict,omitempty"`
}

// AnalyzeParams controls an analysis pass. Zero values select the
// analyzer defaults.
type AnalyzeParams struct {
	Method    string `json:"method,omitempty"`
	ChunkSize int    `json:"chunkSize,omitempty"`
	Voices    int    `json:"voices,omitempty"`
	Hop       int    `json:"hop,omitempty"`
	// Window tapers spectral chunks ("hann", "hamming", ...); ignored by
	// YIN.
	Window string `json:"window,omitempty"`
}

// Option mutates engine configuration.
type Option func(*Engine)

// WithLogger sets the logger handed to the parser and encoder.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithConcurrency limits how many channels render in parallel.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithProgress installs an encoder progress callback.
func WithProgress(fn tune.ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// Engine runs the synthesis and analysis pipelines at a fixed output
// sample rate. It is safe for concurrent use.
type Engine struct {
	synth       *synth.Synthesizer
	logger      *slog.Logger
	concurrency int
	progress    tune.ProgressFunc
}

// NewEngine creates an engine that renders at sampleRate.
func NewEngine(sampleRate float64, opts ...Option) (*Engine, error) {
	s, err := synth.New(synth.WithSampleRate(sampleRate))
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e := &Engine{
		synth:  s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// SampleRate returns the output sample rate.
func (e *Engine) SampleRate() float64 { return e.synth.SampleRate() }

// Context returns a synthesis context with instrument selected. An empty
// name keeps the default instrument. An unknown name is logged and keeps
// the default unless strict is set, in which case it is returned as an
// error.
func (e *Engine) Context(instrument string, strict bool) (synth.Context, error) {
	c := synth.NewContext()
	if instrument == "" {
		return c, nil
	}
	next, err := c.WithInstrument(instrument)
	if err != nil {
		if strict {
			return c, err
		}
		e.logger.Warn("unknown instrument, keeping default", "instrument", instrument, "default", c.Instrument().Name)
		return c, nil
	}
	return next, nil
}

// Parse converts notation source into a tune.
func (e *Engine) Parse(src string, p RenderParams) (tune.Tune, error) {
	c, err := e.Context(p.Instrument, p.Strict)
	if err != nil {
		return tune.Tune{}, err
	}
	opts := []notation.Option{notation.WithLogger(e.logger)}
	if p.Strict {
		opts = append(opts, notation.WithStrict())
	}
	return notation.Parse(c, src, opts...)
}

// Render parses src and encodes it to a stereo pair.
func (e *Engine) Render(ctx context.Context, src string, p RenderParams) (tune.Stereo, error) {
	t, err := e.Parse(src, p)
	if err != nil {
		return tune.Stereo{}, err
	}
	return e.Encode(ctx, t, p)
}

// Encode renders an already-built tune.
func (e *Engine) Encode(ctx context.Context, t tune.Tune, p RenderParams) (tune.Stereo, error) {
	opts := []tune.Option{
		tune.WithLogger(e.logger),
		tune.WithPortamento(p.Portamento),
	}
	if p.Mode != "" {
		m, err := tune.ParseMode(p.Mode)
		if err != nil {
			return tune.Stereo{}, err
		}
		opts = append(opts, tune.WithMode(m))
	}
	if p.Stagger > 0 {
		opts = append(opts, tune.WithStagger(p.Stagger))
	}
	if p.Normalize > 0 {
		opts = append(opts, tune.WithNormalize(p.Normalize))
	}
	if e.concurrency > 0 {
		opts = append(opts, tune.WithConcurrency(e.concurrency))
	}
	if e.progress != nil {
		opts = append(opts, tune.WithProgress(e.progress))
	}

	enc, err := tune.NewEncoder(e.synth, opts...)
	if err != nil {
		return tune.Stereo{}, err
	}
	return enc.Encode(ctx, t)
}

// Note renders one note built from token, a note name such as "C#5" or a
// frequency in Hz such as "440", with the selected instrument.
func (e *Engine) Note(ctx context.Context, token string, p RenderParams) (tune.Stereo, error) {
	c, err := e.Context(p.Instrument, p.Strict)
	if err != nil {
		return tune.Stereo{}, err
	}
	n, err := c.NewNote(token)
	if err != nil {
		return tune.Stereo{}, err
	}
	return e.Encode(ctx, tune.Tune{Channels: [][]synth.Note{{n}}}, p)
}

// Analyze runs the selected analyzer over samples and returns one track
// per analysis voice. YIN always yields a single track.
func (e *Engine) Analyze(ctx context.Context, samples []float64, sampleRate float64, p AnalyzeParams) ([]estimate.Track, error) {
	m, err := ParseMethod(p.Method)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("analyzing samples",
		"method", m.String(),
		"samples", len(samples),
		"sampleRate", sampleRate,
	)

	switch m {
	case MethodYIN:
		var opts []yin.Option
		if p.ChunkSize > 0 {
			opts = append(opts, yin.WithChunkSize(p.ChunkSize))
		}
		tr, err := yin.Track(ctx, samples, sampleRate, opts...)
		if err != nil {
			return nil, err
		}
		return []estimate.Track{tr}, nil
	default:
		var opts []spectral.Option
		if p.ChunkSize > 0 {
			opts = append(opts, spectral.WithChunkSize(p.ChunkSize))
		}
		if p.Voices > 0 {
			opts = append(opts, spectral.WithVoices(p.Voices))
		}
		if p.Hop > 0 {
			opts = append(opts, spectral.WithHop(p.Hop))
		}
		if p.Window != "" {
			w, err := window.Parse(p.Window)
			if err != nil {
				return nil, err
			}
			opts = append(opts, spectral.WithWindow(w))
		}
		return spectral.Tracks(ctx, samples, sampleRate, opts...)
	}
}

// Resynth analyzes samples and re-renders the detected notes with the
// render parameters' instrument. The intermediate tune is returned along
// with the audio.
func (e *Engine) Resynth(ctx context.Context, samples []float64, sampleRate float64, a AnalyzeParams, p RenderParams) (tune.Stereo, tune.Tune, error) {
	tracks, err := e.Analyze(ctx, samples, sampleRate, a)
	if err != nil {
		return tune.Stereo{}, tune.Tune{}, err
	}
	c, err := e.Context(p.Instrument, p.Strict)
	if err != nil {
		return tune.Stereo{}, tune.Tune{}, err
	}
	t := tune.FromTracks(c, tracks, sampleRate)
	out, err := e.Encode(ctx, t, p)
	if err != nil {
		return tune.Stereo{}, tune.Tune{}, err
	}
	return out, t, nil
}
