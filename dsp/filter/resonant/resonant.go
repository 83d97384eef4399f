package resonant

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-playnoise/dsp/core"
)

// MaxResonance is the largest resonance [Params.Validate] accepts.
const MaxResonance = 2.0

// State is the per-note filter memory.
type State struct {
	Value         float64
	ResonanceGain float64
}

// Reset clears the filter memory.
func (s *State) Reset() {
	s.Value = 0
	s.ResonanceGain = 0
}

// Params configures one filter stage. A zero Cutoff is a passthrough stage
// that leaves both the sample and the state untouched.
type Params struct {
	Cutoff    float64
	Resonance float64
}

// Bypass reports whether the stage passes samples through unchanged.
func (p Params) Bypass() bool {
	return p.Cutoff <= 0
}

// Validate checks the cutoff and resonance ranges.
func (p Params) Validate() error {
	if p.Cutoff < 0 || math.IsNaN(p.Cutoff) || math.IsInf(p.Cutoff, 0) {
		return fmt.Errorf("resonant: cutoff must be >= 0 and finite: %v", p.Cutoff)
	}
	if p.Resonance < 0 || p.Resonance > MaxResonance || math.IsNaN(p.Resonance) {
		return fmt.Errorf("resonant: resonance must be in [0, %v]: %v", MaxResonance, p.Resonance)
	}
	return nil
}

// Process filters one sample. The cutoff is scaled by amplitude, usually a
// filter envelope value, before the coefficient is derived:
//
//	RC     = 1 / (2*pi*cutoff*amplitude)
//	alpha  = RC / (RC + 1/sampleRate)
//	value' = alpha * (value + sample - resonance*resonanceGain)
//	gain'  = resonance * (value' - value)
func Process(p Params, sample, amplitude, sampleRate float64, st *State) float64 {
	if p.Bypass() {
		return sample
	}

	alpha := 1.0
	if cutoff := p.Cutoff * amplitude; cutoff > 0 && sampleRate > 0 {
		rc := 1 / (2 * math.Pi * cutoff)
		alpha = rc / (rc + 1/sampleRate)
	}

	prev := st.Value
	next := alpha * (prev + sample - p.Resonance*st.ResonanceGain)
	st.ResonanceGain = core.FlushDenormals(p.Resonance * (next - prev))
	st.Value = core.FlushDenormals(next)

	return st.Value
}

// ProcessBlock filters buf in place with a constant envelope amplitude.
func ProcessBlock(p Params, buf []float64, amplitude, sampleRate float64, st *State) {
	if p.Bypass() {
		return
	}
	for i, x := range buf {
		buf[i] = Process(p, x, amplitude, sampleRate, st)
	}
}
