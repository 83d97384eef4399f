package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-playnoise/dsp/core"
	"github.com/cwbudde/algo-playnoise/dsp/filter/resonant"
	"github.com/cwbudde/algo-playnoise/dsp/harmonic"
)

// Option mutates synthesizer configuration.
type Option func(*config) error

type config struct {
	proc core.ProcessorConfig
	seed int64
}

// WithSampleRate sets the output sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
			return fmt.Errorf("synth: sample rate must be > 0 and finite: %v", sampleRate)
		}
		cfg.proc = core.ApplyProcessorOptions(core.WithSampleRate(sampleRate))
		return nil
	}
}

// WithSeed sets the base seed of the noise generator.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// Synthesizer renders notes. It holds no per-note state and is safe for
// concurrent use.
type Synthesizer struct {
	cfg config
}

// New creates a synthesizer running at 44100 Hz unless overridden.
func New(opts ...Option) (*Synthesizer, error) {
	cfg := config{proc: core.DefaultProcessorConfig(), seed: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Synthesizer{cfg: cfg}, nil
}

// SampleRate returns the output sample rate in Hz.
func (s *Synthesizer) SampleRate() float64 {
	return s.cfg.proc.SampleRate
}

// Length returns the number of samples n renders to.
func (s *Synthesizer) Length(n Note) int {
	if n.IsRest() {
		return s.cfg.proc.Samples(n.Duration)
	}
	return s.cfg.proc.Samples(n.Duration * n.multiplier())
}

// Synthesize renders n. A rest renders Duration seconds of silence; a
// chord renders every pitch at the same length and sums them.
func (s *Synthesizer) Synthesize(n Note) ([]float64, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if n.IsRest() {
		return Rest(n.Duration, s.SampleRate()), nil
	}

	length := s.Length(n)
	root := n.Pitches[0].Hz()
	voices := make([][]float64, len(n.Pitches))
	for i, p := range n.Pitches {
		target := p.Hz()
		start := target
		if n.Glide > 0 && n.GlideFrom > 0 {
			start = target * n.GlideFrom / root
		}
		voices[i] = s.voice(n, target, start, length)
	}

	return MixChord(voices...)
}

func (s *Synthesizer) voice(n Note, target, start float64, length int) []float64 {
	out := make([]float64, length)
	sr := s.SampleRate()
	dt := 1 / sr

	coef := 1.0
	if n.Glide > 0 {
		coef = 1 - math.Exp(-dt/n.Glide)
	}

	var rng *rand.Rand
	if n.Noise && n.NoiseLevel != 0 {
		rng = rand.New(rand.NewSource(s.cfg.seed ^ int64(math.Float64bits(target))))
	}

	ratio := n.ratio()
	current := start
	var state resonant.State
	var phase1, phase2 float64

	for i := range out {
		t := float64(i) * dt
		freq2 := core.Semitone(current, n.Step)

		osc1 := oscillator(n.Harmonic1, phase1, n.Width1)
		osc2 := oscillator(n.Harmonic2, phase2, n.Width2)

		noise := 1.0
		if n.Noise {
			noise = 0
			if rng != nil {
				noise = rng.Float64()*2 - 1
			}
		}
		sample := (osc1*ratio[0]+osc2*ratio[1])/ratio[2] + n.NoiseLevel*noise

		sample = n.LFO.Apply(sample, t)

		cutoffAmp := n.FilterEnvelope.Amplitude(t, n.Duration)
		sample = resonant.Process(n.Filter1, sample, cutoffAmp, sr, &state)
		sample = resonant.Process(n.Filter2, sample, cutoffAmp, sr, &state)

		sample *= n.Envelope.Amplitude(t, n.Duration)
		out[i] = sample * n.Volume

		phase1 = core.Fract(phase1 + current*dt)
		phase2 = core.Fract(phase2 + freq2*dt)
		current += (target - current) * coef
	}

	return out
}

func oscillator(k harmonic.Kind, phase, width float64) float64 {
	if k == harmonic.Pulse {
		return harmonic.PulseAt(phase, width)
	}
	return harmonic.At(k, phase)
}

// MixChord sums equally long voices sample by sample. Voices of differing
// length yield a [LengthMismatchError].
func MixChord(voices ...[]float64) ([]float64, error) {
	if len(voices) == 0 {
		return nil, nil
	}
	want := len(voices[0])
	for i, v := range voices {
		if len(v) != want {
			return nil, &LengthMismatchError{Pitch: i, Got: len(v), Want: want}
		}
	}
	if len(voices) == 1 {
		return voices[0], nil
	}

	out := make([]float64, want)
	for _, v := range voices {
		core.AddAt(out, v, 0)
	}
	return out, nil
}

// Rest returns duration seconds of silence at sampleRate.
func Rest(duration, sampleRate float64) []float64 {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(sampleRate))
	return make([]float64, cfg.Samples(duration))
}
