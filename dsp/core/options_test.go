package core

import (
	"errors"
	"math"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(2048))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.BlockSize != 2048 {
		t.Fatalf("block size = %d, want 2048", cfg.BlockSize)
	}
	if cfg.Nyquist() != 48000 {
		t.Fatalf("nyquist = %v, want 48000", cfg.Nyquist())
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProcessorConfig
		want error
	}{
		{name: "default", cfg: DefaultProcessorConfig()},
		{name: "zero rate", cfg: ProcessorConfig{SampleRate: 0, BlockSize: 64}, want: ErrInvalidSampleRate},
		{name: "nan rate", cfg: ProcessorConfig{SampleRate: math.NaN(), BlockSize: 64}, want: ErrInvalidSampleRate},
		{name: "too high", cfg: ProcessorConfig{SampleRate: 1e6, BlockSize: 64}, want: ErrInvalidSampleRate},
		{name: "zero block", cfg: ProcessorConfig{SampleRate: 44100}, want: ErrInvalidBlockSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
