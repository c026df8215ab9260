package core

import (
	"errors"
	"fmt"
	"math"
)

// Sample rate bounds accepted by ProcessorConfig.Validate.
const (
	MinSampleRate = 1000.0
	MaxSampleRate = 768000.0
)

var (
	// ErrInvalidSampleRate is returned for non-finite or out-of-range sample rates.
	ErrInvalidSampleRate = errors.New("core: invalid sample rate")
	// ErrInvalidBlockSize is returned for non-positive block sizes.
	ErrInvalidBlockSize = errors.New("core: invalid block size")
)

// ProcessorConfig defines the streaming parameters handed to a processor
// before audio starts.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz with 512-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  512,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.SampleRate = sampleRate
	}
}

// WithBlockSize sets the maximum block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.BlockSize = blockSize
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
// The result is not validated.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate checks the sample rate and block size.
func (c ProcessorConfig) Validate() error {
	if math.IsNaN(c.SampleRate) || c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %v Hz (want %v..%v)", ErrInvalidSampleRate, c.SampleRate, MinSampleRate, MaxSampleRate)
	}

	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, c.BlockSize)
	}

	return nil
}

// Nyquist returns half the sample rate.
func (c ProcessorConfig) Nyquist() float64 {
	return c.SampleRate / 2
}
