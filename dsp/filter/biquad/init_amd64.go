//go:build amd64 && !purego

package biquad

// Kernel packages register themselves from init.
import (
	_ "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/amd64/unrolled"
	_ "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/generic"
)
