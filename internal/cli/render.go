package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-playnoise/formats/wav"
	"github.com/cwbudde/algo-playnoise/internal/engine"
	"github.com/cwbudde/algo-playnoise/synth"
	"github.com/cwbudde/algo-playnoise/synth/tune"
)

type renderFlags struct {
	output  string
	encoder string
	volume  float64
	play    bool
	params  engine.RenderParams
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output WAV path (default: generated name in --out-dir)")
	fl.StringVar(&f.encoder, "encoder", encoderCanonical, "WAV writer: canonical or go-audio")
	fl.Float64Var(&f.volume, "volume", wav.DefaultVolume, "export volume divisor for the canonical encoder")
	fl.BoolVar(&f.play, "play", false, "play the result after writing it")
	fl.StringVarP(&f.params.Instrument, "instrument", "i", "", "starting instrument (default "+synth.DefaultInstrument+")")
	fl.StringVar(&f.params.Mode, "mode", tune.ModeOverlay.String(), "channel layout: overlay or plane")
	fl.IntVar(&f.params.Stagger, "stagger", tune.DefaultStagger, "per-channel overlay offset in samples")
	fl.Float64Var(&f.params.Normalize, "normalize", 0, "normalize the output peak to this level (0 disables)")
	fl.BoolVar(&f.params.Portamento, "portamento", false, "glide each note from the previous pitch")
	fl.BoolVar(&f.params.Strict, "strict", false, "fail on unknown notes and instruments")
}

func (f *renderFlags) stem() string {
	if f.params.Instrument != "" {
		return strings.ToLower(f.params.Instrument)
	}
	return synth.DefaultInstrument
}

var renderOpts renderFlags

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a notation file to WAV",
	Long: `Render parses a notation file ("-" for stdin) and writes the encoded
stereo tune as a 16-bit WAV file.

Example:

  playnoise render song.pn -i cello -o song.wav --play`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runRender(ctx, cmd, args[0], &renderOpts)
	},
}

func init() {
	renderOpts.register(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

func runRender(ctx context.Context, cmd *cobra.Command, path string, f *renderFlags) error {
	src, err := readSource(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	e, err := newEngine(engine.WithProgress(func(done, total int) {
		opts.logger.Info("rendered channel", "done", done, "total", total)
	}))
	if err != nil {
		return err
	}
	out, err := e.Render(ctx, src, f.params)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return finish(ctx, cmd, out, f)
}

// finish writes out and optionally plays it.
func finish(ctx context.Context, cmd *cobra.Command, out tune.Stereo, f *renderFlags) error {
	dst, err := outputPath(f.output, f.stem())
	if err != nil {
		return err
	}
	if err := writeAudio(dst, out, f.encoder, f.volume); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%.2f s)\n", dst, float64(out.Len())/out.SampleRate)

	if f.play {
		return play(ctx, out)
	}
	return nil
}
