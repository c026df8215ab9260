package livehost

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/smallnest/ringbuffer"

	"github.com/cwbudde/algo-eq/internal/audiofile"
	"github.com/cwbudde/algo-eq/internal/logging"
	"github.com/cwbudde/algo-eq/internal/metrics"
)

const (
	// DefaultRecordBufferSize is the ring capacity in bytes.
	DefaultRecordBufferSize = 1 << 20
	drainInterval           = 20 * time.Millisecond
)

// Recorder taps processed audio into a WAV file. Write runs on the audio
// thread and never blocks; Run drains the ring on its own goroutine.
type Recorder struct {
	path       string
	sampleRate int
	channels   int
	bitDepth   int

	ring     *ringbuffer.RingBuffer
	capacity int
	enc      []byte
	dropped  atomic.Int64

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRecorder returns a recorder writing to path. A non-positive capacity
// selects DefaultRecordBufferSize.
func NewRecorder(path string, sampleRate, channels, bitDepth, capacity int, logger *slog.Logger, m *metrics.Metrics) *Recorder {
	if capacity <= 0 {
		capacity = DefaultRecordBufferSize
	}
	frameBytes := channels * bytesPerSample
	capacity -= capacity % frameBytes

	return &Recorder{
		path:       path,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
		ring:       ringbuffer.New(capacity),
		capacity:   capacity,
		logger:     logging.Module(logger, "recorder"),
		metrics:    m,
	}
}

// Write queues interleaved samples. Whole chunks that do not fit are dropped.
func (r *Recorder) Write(samples []float32) {
	need := len(samples) * bytesPerSample
	if need == 0 {
		return
	}
	if cap(r.enc) < need {
		// Only grows when the device delivers a larger period than before.
		r.enc = make([]byte, need)
	}
	buf := r.enc[:need]
	encodeF32(buf, samples)

	if r.ring.Free() < need {
		r.drop(need)
		return
	}
	if _, err := r.ring.Write(buf); err != nil {
		r.drop(need)
	}
}

func (r *Recorder) drop(n int) {
	r.dropped.Add(int64(n))
	r.metrics.RecorderDropped(n)
}

// Dropped returns the number of bytes discarded because the ring was full.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Run writes queued audio until ctx is done, then flushes and closes the file.
func (r *Recorder) Run(ctx context.Context) (err error) {
	w, err := audiofile.Create(r.path, r.sampleRate, r.channels, r.bitDepth)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	r.logger.Info("recording", "path", r.path, "bit_depth", r.bitDepth)

	frameBytes := r.channels * bytesPerSample
	raw := make([]byte, r.capacity)
	samples := make([]float32, len(raw)/bytesPerSample)

	drain := func() error {
		for {
			avail := r.ring.Length()
			avail -= avail % frameBytes
			if avail == 0 {
				return nil
			}
			n, err := r.ring.Read(raw[:avail])
			if err != nil && !errors.Is(err, ringbuffer.ErrIsEmpty) {
				return fmt.Errorf("recorder: read ring: %w", err)
			}
			if n == 0 {
				return nil
			}
			for i := range n / bytesPerSample {
				samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*bytesPerSample:]))
			}
			if err := w.WriteInterleaved(samples[:n/bytesPerSample]); err != nil {
				return err
			}
		}
	}

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := drain(); err != nil {
				return err
			}
			if d := r.Dropped(); d > 0 {
				r.logger.Warn("recording had dropouts", "dropped_bytes", d)
			}
			return nil
		case <-ticker.C:
			if err := drain(); err != nil {
				return err
			}
		}
	}
}
