// Package synth renders notes to PCM sample buffers.
//
// A [Note] carries every timbre parameter as plain data: envelopes, filter
// stages and LFOs are tagged values from the dsp packages rather than
// callbacks, so notes can be copied, compared and serialized freely.
// [Synthesizer.Synthesize] evaluates a note sample by sample:
//
//  1. derive the detuned second frequency (Step semitones above the first)
//  2. glide the current frequency toward the target
//  3. evaluate both oscillators
//  4. mix them with the note ratio and add noise
//  5. apply the LFO
//  6. run both resonant filter stages, cutoff scaled by the filter envelope
//  7. apply the amplitude envelope and volume
//
// Chord pitches are rendered independently and summed. A [Context] is an
// immutable set of defaults (instrument, duration, volume) used to build
// notes from pitch names; selecting an instrument returns a new context.
package synth
