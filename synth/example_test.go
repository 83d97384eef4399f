package synth_test

import (
	"fmt"

	"github.com/cwbudde/algo-playnoise/synth"
)

func ExampleSynthesizer_Synthesize() {
	s, err := synth.New()
	if err != nil {
		panic(err)
	}

	note := synth.Note{
		Pitches:  []synth.Pitch{{Frequency: 440}},
		Duration: 0.5,
		Volume:   0.2,
	}
	buf, err := s.Synthesize(note)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(buf))
	// Output: 22050
}

func ExampleContext_WithInstrument() {
	ctx, err := synth.NewContext().WithInstrument("cello")
	if err != nil {
		panic(err)
	}
	note, err := ctx.WithDuration(1).NewNote("A3")
	if err != nil {
		panic(err)
	}
	fmt.Println(ctx.Instrument().Name, note.Pitches[0].Frequency, note.Duration)
	// Output: cello 220 1
}
