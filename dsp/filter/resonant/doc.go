// Package resonant implements the one-pole low-pass with a resonance
// feedback term used by the note synthesizer.
//
// The cutoff is modulated per sample by an envelope amplitude. Filter state
// is explicit: callers own a [State] per note and thread it through every
// call, so two stages of one note can share it and concurrent notes never
// do.
//
// This is a leaky integrator rather than a normalized biquad: its DC gain
// grows as the cutoff falls, and resonance above about 1 may oscillate.
package resonant
