// Package wav reads and writes canonical PCM WAV data.
//
// [WriteHeader], [Serialize] and [Parse] work on in-memory byte buffers with
// the fixed 44-byte RIFF/WAVE/fmt/data layout and 16-bit little-endian
// samples. [Decode] and [Encode] stream through go-audio and accept
// non-canonical files (extra chunks, extensible headers, other bit depths).
//
// Decoded audio is always mono: when the source is stereo only the left
// channel is kept, and samples are normalized to [-1, 1).
package wav
