package main

import (
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/internal/livehost"
	"github.com/cwbudde/algo-eq/internal/metrics"
	"github.com/cwbudde/algo-eq/internal/preset"
)

func newLiveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "Equalize the default duplex audio device in real time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLive(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.Float64("sample-rate", 48000, "device sample rate in Hz")
	f.Int("block-size", 512, "device period in frames")
	f.Int("channels", 2, "channel count: 1 or 2")
	f.String("backend", "auto", "audio backend: auto, alsa, pulseaudio, jack, wasapi, coreaudio, null")
	f.Int("bit-depth", 24, "recording bit depth")
	f.Bool("watch", false, "reload the preset file when it changes")
	f.Bool("metrics", false, "serve Prometheus metrics")
	f.String("metrics-listen", "localhost:9090", "metrics listen address")
	f.String("record", "", "record the processed output to this WAV file")
	f.Int("record-buffer", livehost.DefaultRecordBufferSize, "recorder ring size in bytes")

	return cmd
}

func (a *app) runLive(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var m *metrics.Metrics
	if a.cfg.Metrics.Enabled {
		var err error
		if m, err = metrics.New(prometheus.NewRegistry()); err != nil {
			return err
		}
	}

	var rec *livehost.Recorder
	if a.cfg.Record.Path != "" {
		rec = livehost.NewRecorder(a.cfg.Record.Path, int(a.cfg.Audio.SampleRate), a.cfg.Audio.Channels,
			a.cfg.Audio.BitDepth, a.cfg.Record.BufferSize, a.logger, m)
	}

	opts := []livehost.Option{livehost.WithLogger(a.logger), livehost.WithMetrics(m)}
	if rec != nil {
		opts = append(opts, livehost.WithRecorder(rec))
	}

	host, err := livehost.New(livehost.Config{
		SampleRate: int(a.cfg.Audio.SampleRate),
		BlockSize:  a.cfg.Audio.BlockSize,
		Channels:   a.cfg.Audio.Channels,
		Backend:    a.cfg.Audio.Backend,
	}, a.store, opts...)
	if err != nil {
		return err
	}

	var watcher *preset.Watcher
	if a.cfg.WatchPreset && a.cfg.Preset != "" {
		watcher, err = preset.NewWatcher(a.cfg.Preset, a.store, a.logger,
			preset.WithOverrides(a.overrides.apply),
			preset.WithReloadHook(func(err error) {
				if err != nil {
					m.PresetReloaded(metrics.ReloadFailed)
					return
				}
				m.PresetReloaded(metrics.ReloadOK)
			}))
		if err != nil {
			return err
		}
	}

	var (
		wg      sync.WaitGroup
		errMu   sync.Mutex
		bgError error
	)
	background := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("background task failed", "task", name, "error", err)
				errMu.Lock()
				bgError = errors.Join(bgError, err)
				errMu.Unlock()
				cancel()
			}
		}()
	}

	if m != nil {
		background("metrics", func(ctx context.Context) error {
			return m.Serve(ctx, a.cfg.Metrics.Listen, a.logger)
		})
	}
	if rec != nil {
		background("recorder", rec.Run)
	}
	if watcher != nil {
		background("preset watcher", watcher.Run)
	}

	runErr := host.Run(ctx)
	cancel()
	wg.Wait()

	return errors.Join(runErr, bgError)
}
