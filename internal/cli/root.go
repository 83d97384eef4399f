// Package cli implements the playnoise command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-playnoise/dsp/core"
	"github.com/cwbudde/algo-playnoise/internal/engine"
)

const envPrefix = "PLAYNOISE_"

// globals holds the persistent flag values.
type globals struct {
	sampleRate float64
	logLevel   string
	outDir     string

	logger *slog.Logger
}

var opts globals

var rootCmd = &cobra.Command{
	Use:   "playnoise",
	Short: "Note-based additive synthesizer and pitch analyzer",
	Long: `playnoise renders note notation to WAV with a small additive
synthesizer, and analyzes recordings back into notes with an FFT or YIN
pitch tracker.

Persistent flags may also be set through PLAYNOISE_SAMPLE_RATE,
PLAYNOISE_LOG_LEVEL and PLAYNOISE_OUT_DIR.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&opts.sampleRate, "sample-rate", core.DefaultSampleRate, "output sample rate in Hz")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.outDir, "out-dir", ".", "directory for generated files")
}

// Execute runs the root command.
func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}

func setup(cmd *cobra.Command, _ []string) error {
	for _, name := range []string{"sample-rate", "log-level", "out-dir"} {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		env := envPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		if v, ok := os.LookupEnv(env); ok {
			if err := cmd.Flags().Set(name, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}

	dir, err := homedir.Expand(opts.outDir)
	if err != nil {
		return fmt.Errorf("out-dir: %w", err)
	}
	opts.outDir = dir

	level, err := parseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	opts.logger = newLogger(cmd.ErrOrStderr(), level)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log-level: %w", err)
	}
	return l, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newEngine(extra ...engine.Option) (*engine.Engine, error) {
	return engine.NewEngine(opts.sampleRate, append([]engine.Option{engine.WithLogger(opts.logger)}, extra...)...)
}
