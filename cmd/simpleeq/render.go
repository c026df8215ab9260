package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/internal/render"
)

// commandKeys maps config keys to the flags of one subcommand.
var commandKeys = map[string]map[string]string{
	"render": {
		"audio.block_size": "block-size",
	},
	"live": {
		"audio.sample_rate":  "sample-rate",
		"audio.block_size":   "block-size",
		"audio.channels":     "channels",
		"audio.backend":      "backend",
		"audio.bit_depth":    "bit-depth",
		"watch_preset":       "watch",
		"metrics.enabled":    "metrics",
		"metrics.listen":     "metrics-listen",
		"record.path":        "record",
		"record.buffer_size": "record-buffer",
	},
	"response": {
		"audio.sample_rate": "sample-rate",
	},
}

func newRenderCommand(a *app) *cobra.Command {
	var (
		bitDepth int
		gainDB   float64
	)

	cmd := &cobra.Command{
		Use:   "render <input> <output.wav>",
		Short: "Equalize a WAV or FLAC file into a WAV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := render.Render(cmd.Context(), render.Options{
				Input:        args[0],
				Output:       args[1],
				BlockSize:    a.cfg.Audio.BlockSize,
				BitDepth:     bitDepth,
				Source:       a.store,
				OutputGainDB: gainDB,
			}, a.logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames in %d blocks, peak %.1f dBFS -> %.1f dBFS\n",
				args[1], stats.Frames, stats.Blocks,
				core.GainToDB(stats.PeakIn), core.GainToDB(stats.PeakOut))
			return nil
		},
	}

	cmd.Flags().Int("block-size", 512, "processing block size in frames")
	cmd.Flags().IntVar(&bitDepth, "bit-depth", 0, "output bit depth: 16, 24 or 32 (default: input depth)")
	cmd.Flags().Float64Var(&gainDB, "gain", 0, "output trim in dB")

	return cmd
}
