package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/measure/response"
)

func newResponseCommand(a *app) *cobra.Command {
	var (
		points   int
		lo, hi   float64
		measured bool
		fftSize  int
	)

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Print the magnitude response of the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sr := a.cfg.Audio.SampleRate
			settings := a.store.Snapshot()
			coeffs := eq.DesignChain(settings, sr)

			freqs := response.LogFrequencies(points, lo, min(hi, sr/2))
			analytic := response.Analytic(coeffs.MagnitudeSquared, sr, freqs)

			var spec response.Spectrum
			if measured {
				proc := eq.NewStereoProcessor(eq.StaticSettings(settings))
				if err := proc.Prepare(sr, fftSize); err != nil {
					return err
				}
				var err error
				spec, err = response.Measure(response.BlockFunc(func(buf []float64) {
					proc.Process(buf, nil)
				}), sr, fftSize)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s @ %.0f Hz\n", settings, sr)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			if measured {
				fmt.Fprintln(tw, "Hz\tdB\tmeasured dB\t")
			} else {
				fmt.Fprintln(tw, "Hz\tdB\t")
			}
			for i, f := range freqs {
				if measured {
					fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t\n", f, analytic[i], spec.AtDB(f))
					continue
				}
				fmt.Fprintf(tw, "%.1f\t%.2f\t\n", f, analytic[i])
			}
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.Float64("sample-rate", 48000, "sample rate in Hz")
	f.IntVar(&points, "points", 31, "number of log-spaced frequencies")
	f.Float64Var(&lo, "min", 20, "lowest frequency in Hz")
	f.Float64Var(&hi, "max", 20000, "highest frequency in Hz (limited to Nyquist)")
	f.BoolVar(&measured, "measured", false, "also measure the processor's impulse response via FFT")
	f.IntVar(&fftSize, "fft-size", 16384, "FFT size for --measured")

	return cmd
}
