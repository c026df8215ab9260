// Package render runs the equalizer offline over an audio file.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/audiofile"
	"github.com/cwbudde/algo-eq/internal/logging"
)

// ErrNoInput is returned when the input file holds no frames.
var ErrNoInput = errors.New("render: input is empty")

// Options configures one offline render.
type Options struct {
	Input     string
	Output    string
	BlockSize int
	// BitDepth of the output file. Zero keeps the input depth.
	BitDepth int
	// Source supplies parameters once per block. Nil renders with defaults.
	Source       eq.SettingsSource
	OutputGainDB float64
}

// Stats summarizes a completed render.
type Stats struct {
	Frames   int
	Blocks   int
	PeakIn   float64
	PeakOut  float64
	Duration time.Duration
}

// Render reads opts.Input, equalizes it and writes opts.Output as WAV.
// The context is checked between blocks.
func Render(ctx context.Context, opts Options, logger *slog.Logger) (Stats, error) {
	log := logging.Module(logger, "render")
	start := time.Now()

	in, err := audiofile.Read(opts.Input)
	if err != nil {
		return Stats{}, err
	}

	frames := in.Frames()
	if frames == 0 {
		return Stats{}, fmt.Errorf("%w: %s", ErrNoInput, opts.Input)
	}

	set := eq.ChannelSet(len(in.Channels))
	if !eq.IsBusesLayoutSupported(eq.BusesLayout{Input: set, Output: set}) {
		return Stats{}, fmt.Errorf("%w: %d channels", eq.ErrUnsupportedLayout, len(in.Channels))
	}

	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = core.DefaultProcessorConfig().BlockSize
	}

	proc := eq.NewStereoProcessor(opts.Source)
	if err := proc.Prepare(float64(in.SampleRate), blockSize); err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	log.Info("rendering",
		"input", opts.Input,
		"sample_rate", in.SampleRate,
		"channels", len(in.Channels),
		"frames", frames,
		"block_size", blockSize)

	var stats Stats
	for _, ch := range in.Channels {
		stats.PeakIn = max(stats.PeakIn, core.PeakAbs(ch))
	}

	trim := 1.0
	if opts.OutputGainDB != 0 {
		trim = core.DBToGain(opts.OutputGainDB)
	}

	block := make([][]float64, len(in.Channels))
	for pos := 0; pos < frames; pos += blockSize {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("render: %w", err)
		}

		end := min(pos+blockSize, frames)
		for ch := range in.Channels {
			block[ch] = in.Channels[ch][pos:end]
		}

		proc.ProcessBuffer(block, len(block))

		for ch := range block {
			if trim != 1 {
				core.Scale(block[ch], trim)
			}
			stats.PeakOut = max(stats.PeakOut, core.PeakAbs(block[ch]))
		}

		stats.Blocks++
		stats.Frames = end
	}

	bitDepth := opts.BitDepth
	if bitDepth == 0 {
		bitDepth = in.BitDepth
	}

	if err := audiofile.WriteWAV(opts.Output, in, bitDepth); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)

	log.Info("render complete",
		"output", opts.Output,
		"blocks", stats.Blocks,
		"peak_in_db", core.GainToDB(stats.PeakIn),
		"peak_out_db", core.GainToDB(stats.PeakOut),
		"elapsed", stats.Duration)

	if stats.PeakOut > 1 {
		log.Warn("output clipped", "peak_out_db", core.GainToDB(stats.PeakOut))
	}

	return stats, nil
}
