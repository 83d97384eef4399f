// Package window provides the tapering windows applied to analysis chunks
// before the FFT to reduce spectral leakage.
package window
