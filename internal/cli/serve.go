package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-playnoise/internal/server"
)

var (
	serveAddr    string
	serveMaxBody int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the render and analysis pipelines over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := newEngine()
		if err != nil {
			return err
		}
		s := server.New(e, server.WithLogger(opts.logger), server.WithMaxBodyBytes(serveMaxBody))
		return s.ListenAndServe(ctx, serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().Int64Var(&serveMaxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")
	rootCmd.AddCommand(serveCmd)
}
