package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-imaging/imaging/resample"
)

func newKernelsCmd(opts *options) *cobra.Command {
	var (
		size int
		list bool
	)

	cmd := &cobra.Command{
		Use:   "kernels [flags] [resampler ...]",
		Short: "Print frequency response figures of reconstruction kernels",
		Long: `Print the support radius and frequency response of each kernel.
Without arguments all kernels are listed. Frequencies are in cycles per
source pixel: 0.5 is the Nyquist frequency, and gain above 1.0 aliases.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range resample.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			if len(args) == 0 {
				args = resample.Names()
			}
			kernels := make([]resample.Resampler, 0, len(args))
			for _, name := range args {
				r, err := resample.ByName(strings.TrimSpace(name))
				if err != nil {
					return err
				}
				kernels = append(kernels, r)
			}
			opts.logger.Debug("analyzing kernels", "count", len(kernels), "size", size)
			return printKernels(cmd, kernels, size)
		},
	}
	cmd.Flags().IntVar(&size, "size", 4096, "FFT length")
	cmd.Flags().BoolVar(&list, "list", false, "list available kernel names")
	return cmd
}

func printKernels(cmd *cobra.Command, kernels []resample.Resampler, size int) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Kernel\tRadius\tCutoff 3dB [cyc/px]\tNyquist [dB]\tStopband peak [dB]\n")
	fmt.Fprintf(tw, "------\t------\t-------------------\t------------\t------------------\n")
	for _, r := range kernels {
		resp, err := resample.AnalyzeResponse(r, size)
		if err != nil {
			return fmt.Errorf("%s: %w", r.Name(), err)
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.4f\t%.2f\t%.2f\n",
			r.Name(),
			r.Radius(),
			resp.Cutoff3dB,
			resp.NyquistGaindB,
			resp.StopbandPeakdB,
		)
	}
	return tw.Flush()
}
