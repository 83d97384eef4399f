package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-playnoise/internal/engine"
)

var (
	resynthAnalyze engine.AnalyzeParams
	resynthOpts    renderFlags
)

var resynthCmd = &cobra.Command{
	Use:   "resynth FILE.wav",
	Short: "Analyze a recording and sing it back with an instrument",
	Long: `Resynth analyzes a recording, turns every voiced chunk into a note at
the rounded detected frequency and renders the notes with the chosen
instrument, one channel per analysis track.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		a, err := readAudio(args[0])
		if err != nil {
			return err
		}
		e, err := newEngine()
		if err != nil {
			return err
		}
		out, t, err := e.Resynth(ctx, a.Samples, float64(a.SampleRate), resynthAnalyze, resynthOpts.params)
		if err != nil {
			return err
		}
		notes := 0
		for _, ch := range t.Channels {
			notes += len(ch)
		}
		opts.logger.Info("resynthesized", "channels", len(t.Channels), "notes", notes)
		return finish(ctx, cmd, out, &resynthOpts)
	},
}

func init() {
	registerAnalyzeFlags(resynthCmd, &resynthAnalyze)
	resynthOpts.register(resynthCmd)
	rootCmd.AddCommand(resynthCmd)
}
