package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-playnoise/synth"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List registered instruments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printInstruments(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

func printInstruments(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFREQ (Hz)\tOSC 1\tOSC 2\tSTEP\tCUTOFF\tRESONANCE\tLFO (Hz)\tNOISE")
	for _, name := range synth.InstrumentNames() {
		in, err := synth.LookupInstrument(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == synth.DefaultInstrument {
			marker = " *"
		}
		noise := "-"
		if in.Noise {
			noise = fmt.Sprintf("%.3f", in.NoiseLevel)
		}
		fmt.Fprintf(tw, "%s%s\t%.1f\t%s\t%s\t%g\t%.3f\t%.2f\t%.2f\t%s\n",
			name, marker, in.Frequency,
			in.Harmonic1, in.Harmonic2, in.Step,
			in.Filter1.Cutoff, in.Filter1.Resonance,
			in.LFO.Frequency, noise)
	}
	return tw.Flush()
}
