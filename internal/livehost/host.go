// Package livehost runs the equalizer on a full-duplex audio device.
package livehost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/logging"
	"github.com/cwbudde/algo-eq/internal/metrics"
)

var (
	// ErrUnknownBackend is returned for backend names ParseBackend does not know.
	ErrUnknownBackend = errors.New("livehost: unknown backend")
	// ErrDeviceStopped is returned when the device stops before the context ends.
	ErrDeviceStopped = errors.New("livehost: device stopped")
)

var backends = map[string]malgo.Backend{
	"alsa":       malgo.BackendAlsa,
	"pulseaudio": malgo.BackendPulseaudio,
	"jack":       malgo.BackendJack,
	"wasapi":     malgo.BackendWasapi,
	"coreaudio":  malgo.BackendCoreaudio,
	"null":       malgo.BackendNull,
}

// ParseBackend maps a backend name to the malgo backend list. "auto" and the
// empty string let miniaudio choose.
func ParseBackend(name string) ([]malgo.Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		return nil, nil
	}
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return []malgo.Backend{b}, nil
}

// Config describes the device stream.
type Config struct {
	SampleRate int
	BlockSize  int
	Channels   int
	Backend    string
}

func (c Config) validate() error {
	set := eq.ChannelSet(c.Channels)
	if !eq.IsBusesLayoutSupported(eq.BusesLayout{Input: set, Output: set}) {
		return fmt.Errorf("livehost: %w: %d channels", eq.ErrUnsupportedLayout, c.Channels)
	}
	if _, err := ParseBackend(c.Backend); err != nil {
		return err
	}
	return nil
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) { h.logger = logging.Module(logger, "livehost") }
}

// WithMetrics records callback timing into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Host) { h.metrics = m }
}

// WithRecorder taps processed audio into rec.
func WithRecorder(rec *Recorder) Option {
	return func(h *Host) { h.recorder = rec }
}

// Host owns the processor and the device.
type Host struct {
	cfg      Config
	proc     *eq.StereoProcessor
	engine   *Engine
	budget   time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	recorder *Recorder
}

// New prepares a processor reading parameters from source.
func New(cfg Config, source eq.SettingsSource, opts ...Option) (*Host, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	h := &Host{cfg: cfg, logger: logging.Module(nil, "livehost")}
	for _, opt := range opts {
		opt(h)
	}

	h.proc = eq.NewStereoProcessor(source)
	if err := h.proc.Prepare(float64(cfg.SampleRate), cfg.BlockSize); err != nil {
		return nil, fmt.Errorf("livehost: %w", err)
	}

	h.engine = NewEngine(h.proc, cfg.Channels, cfg.BlockSize)
	if h.recorder != nil {
		h.engine.SetTap(h.recorder.Write)
	}
	h.budget = time.Duration(float64(cfg.BlockSize) / float64(cfg.SampleRate) * float64(time.Second))

	return h, nil
}

// Processor returns the processor driven by the device callback.
func (h *Host) Processor() *eq.StereoProcessor {
	return h.proc
}

func (h *Host) onData(out, in []byte, frames uint32) {
	start := time.Now()
	h.engine.Process(out, in, int(frames))
	h.metrics.ObserveCallback(int(frames), time.Since(start), h.budget)
}

// Run opens the default duplex device and streams until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	backends, err := ParseBackend(h.cfg.Backend)
	if err != nil {
		return err
	}

	mctx, err := malgo.InitContext(backends, malgo.ContextConfig{}, func(message string) {
		h.logger.Debug("miniaudio", "message", strings.TrimSpace(message))
	})
	if err != nil {
		return fmt.Errorf("livehost: context init: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	devCfg := malgo.DefaultDeviceConfig(malgo.Duplex)
	devCfg.Capture.Format = malgo.FormatF32
	devCfg.Capture.Channels = uint32(h.cfg.Channels)
	devCfg.Playback.Format = malgo.FormatF32
	devCfg.Playback.Channels = uint32(h.cfg.Channels)
	devCfg.SampleRate = uint32(h.cfg.SampleRate)
	devCfg.PeriodSizeInFrames = uint32(h.cfg.BlockSize)
	devCfg.Alsa.NoMMap = 1

	stopped := make(chan struct{}, 1)
	device, err := malgo.InitDevice(mctx.Context, devCfg, malgo.DeviceCallbacks{
		Data: h.onData,
		Stop: func() {
			select {
			case stopped <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		return fmt.Errorf("livehost: device init: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("livehost: device start: %w", err)
	}

	h.logger.Info("streaming",
		"sample_rate", h.cfg.SampleRate,
		"block_size", h.cfg.BlockSize,
		"channels", h.cfg.Channels,
		"backend", h.cfg.Backend)

	select {
	case <-ctx.Done():
	case <-stopped:
		h.logger.Warn("device stopped unexpectedly")
		return ErrDeviceStopped
	}

	if err := device.Stop(); err != nil {
		h.logger.Warn("device stop failed", "error", err)
	}
	h.logger.Info("stream closed")

	return nil
}
