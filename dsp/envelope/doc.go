// Package envelope provides time to amplitude shaping curves for notes and
// filter cutoffs.
//
// An [Envelope] is a plain value: a tagged variant selecting one of
//
//   - fixed shapes that depend only on time/duration ([Shape]),
//   - fractional ADSHR curves whose phase lengths are fractions of the note
//     duration, in linear, exponential or logarithmic flavour,
//   - absolute-time AHDSR curves,
//   - note-relative ADSR curves that sustain until the note ends and then
//     release, and
//   - filter ADS curves that never fall below a small floor so that a
//     modulated cutoff stays positive.
//
// Envelopes carry no state and can be shared freely between goroutines.
//
// Building with the fastmath tag swaps the exponential and logarithmic
// scale functions to algo-approx approximations.
package envelope
