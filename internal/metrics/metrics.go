// Package metrics exposes Prometheus metrics for the live equalizer host.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Preset reload outcomes.
const (
	ReloadOK     = "ok"
	ReloadFailed = "failed"
)

// Metrics holds the equalizer collectors. All methods are safe for concurrent
// use and do not allocate after the label values have been seen once.
type Metrics struct {
	registry *prometheus.Registry

	blocksProcessed  prometheus.Counter
	framesProcessed  prometheus.Counter
	callbackDuration prometheus.Histogram
	deadlineOverruns prometheus.Counter
	recorderDropped  prometheus.Counter
	presetReloads    *prometheus.CounterVec
}

// New creates the collectors and registers them on registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,
		blocksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eq_blocks_processed_total",
			Help: "Total number of audio blocks processed",
		}),
		framesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eq_frames_processed_total",
			Help: "Total number of audio frames processed",
		}),
		callbackDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eq_callback_duration_seconds",
			Help:    "Time spent in the audio device callback",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10us to ~80ms
		}),
		deadlineOverruns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eq_deadline_overruns_total",
			Help: "Callbacks that took longer than the block duration",
		}),
		recorderDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eq_recorder_dropped_bytes_total",
			Help: "Bytes the recorder tap dropped because its buffer was full",
		}),
		presetReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eq_preset_reloads_total",
			Help: "Preset file reloads by outcome",
		}, []string{"status"}),
	}

	for _, c := range []prometheus.Collector{
		m.blocksProcessed, m.framesProcessed, m.callbackDuration,
		m.deadlineOverruns, m.recorderDropped, m.presetReloads,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return m, nil
}

// ObserveCallback records one processed block of frames that took elapsed,
// counting an overrun when elapsed exceeds budget.
func (m *Metrics) ObserveCallback(frames int, elapsed, budget time.Duration) {
	if m == nil {
		return
	}
	m.blocksProcessed.Inc()
	m.framesProcessed.Add(float64(frames))
	m.callbackDuration.Observe(elapsed.Seconds())
	if budget > 0 && elapsed > budget {
		m.deadlineOverruns.Inc()
	}
}

// RecorderDropped adds n dropped bytes.
func (m *Metrics) RecorderDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recorderDropped.Add(float64(n))
}

// PresetReloaded counts one reload with status ReloadOK or ReloadFailed.
func (m *Metrics) PresetReloaded(status string) {
	if m == nil {
		return
	}
	m.presetReloads.WithLabelValues(status).Inc()
}

// Handler returns the /metrics HTTP handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

// Serve runs an HTTP server exposing /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics: serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics: shutdown: %w", err)
		}
		return nil
	}
}
