package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-playnoise/internal/playback"
	"github.com/cwbudde/algo-playnoise/synth/tune"
)

var playGain float64

var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play a WAV file or a notation file",
	Long: `Play sends audio to the default output device. Files ending in .wav
are decoded; anything else is rendered as notation first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out, err := loadPlayable(ctx, cmd, args[0])
		if err != nil {
			return err
		}
		return play(ctx, out)
	},
}

func init() {
	playCmd.Flags().Float64Var(&playGain, "gain", 1, "output gain")
	rootCmd.AddCommand(playCmd)
}

func loadPlayable(ctx context.Context, cmd *cobra.Command, path string) (tune.Stereo, error) {
	if isWAV(path) {
		a, err := readAudio(path)
		if err != nil {
			return tune.Stereo{}, err
		}
		return tune.Stereo{Left: a.Samples, Right: a.Samples, SampleRate: float64(a.SampleRate)}, nil
	}
	src, err := readSource(path, cmd.InOrStdin())
	if err != nil {
		return tune.Stereo{}, err
	}
	e, err := newEngine()
	if err != nil {
		return tune.Stereo{}, err
	}
	return e.Render(ctx, src, renderOpts.params)
}

func play(ctx context.Context, s tune.Stereo) error {
	gain := playGain
	if gain <= 0 {
		gain = 1
	}
	p, err := playback.New(int(s.SampleRate), playback.WithGain(gain), playback.WithLogger(opts.logger))
	if err != nil {
		return err
	}
	return p.Play(ctx, s)
}
