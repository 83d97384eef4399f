// Package harmonic provides the stateless periodic waveforms used as note
// oscillators.
//
// Every generator is a pure function of phase measured in cycles
// (frequency*time). The pulse generator additionally takes a duty width in
// [0, 1]. Outputs stay within [-1, 1].
package harmonic
