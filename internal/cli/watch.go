package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-playnoise/internal/watch"
)

var (
	watchOpts  renderFlags
	watchDelay time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-render a notation file every time it is saved",
	Long: `Watch renders FILE once and again after every save. Render errors are
logged and the watcher keeps running until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		path, err := homedir.Expand(args[0])
		if err != nil {
			return err
		}
		if watchOpts.output == "" {
			watchOpts.output, err = outputPath("", watchOpts.stem())
			if err != nil {
				return err
			}
		}

		w := watch.New(path, func(ctx context.Context, p string) error {
			if err := runRender(ctx, cmd, p, &watchOpts); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				return err
			}
			return nil
		}, watch.WithDelay(watchDelay), watch.WithLogger(opts.logger))
		return w.Run(ctx)
	},
}

func init() {
	watchOpts.register(watchCmd)
	watchCmd.Flags().DurationVar(&watchDelay, "delay", watch.DefaultDelay, "debounce delay between a save and the re-render")
	rootCmd.AddCommand(watchCmd)
}
