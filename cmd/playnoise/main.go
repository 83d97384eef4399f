// Command playnoise renders note notation to WAV and analyzes recordings
// back into notes.
//
// Usage:
//
//	playnoise render song.pn -o song.wav
//	playnoise analyze take.wav --method yin
//	playnoise resynth take.wav -i cello
//	playnoise instruments
//	playnoise serve --addr :8080
//	playnoise watch song.pn --play
package main

import "github.com/cwbudde/algo-playnoise/internal/cli"

func main() {
	cli.Execute()
}
