package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// ButterworthQ returns the resonance of second-order stage index of an
// even-order Butterworth design.
func ButterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s <= 0 {
		return DefaultQ
	}

	return 1 / (2 * s)
}

// HighpassCascade designs a Butterworth high-pass of total order 2*stages as
// stages second-order sections. stages is clamped to 1..biquad.MaxStages.
func HighpassCascade(cutoff, sampleRate float64, stages int) biquad.CascadeCoefficients {
	return butterworthCascade(cutoff, sampleRate, stages, Highpass)
}

// LowpassCascade is the low-pass counterpart of HighpassCascade.
func LowpassCascade(cutoff, sampleRate float64, stages int) biquad.CascadeCoefficients {
	return butterworthCascade(cutoff, sampleRate, stages, Lowpass)
}

func butterworthCascade(
	cutoff, sampleRate float64,
	stages int,
	section func(freq, q, sampleRate float64) biquad.Coefficients,
) biquad.CascadeCoefficients {
	n := min(max(stages, 1), biquad.MaxStages)
	order := 2 * n

	cc := biquad.CascadeCoefficients{N: n}
	for i := range n {
		// Stages run from the lowest to the highest resonance.
		cc.Stages[i] = section(cutoff, ButterworthQ(order, n-1-i), sampleRate)
	}

	return cc
}
