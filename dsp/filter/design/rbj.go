package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// Frequency and resonance limits applied by the designers.
const (
	MinFrequency      = 1.0
	MaxFrequencyRatio = 0.499
	MinQ              = 0.025
	DefaultQ          = 1 / math.Sqrt2
)

// Highpass designs a single RBJ high-pass stage.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := clampedW0(freq, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * clampQ(q))

	return normalizeOrIdentity(
		(1+cw)/2, -(1 + cw), (1+cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// Lowpass designs a single RBJ low-pass stage.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := clampedW0(freq, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * clampQ(q))

	return normalizeOrIdentity(
		(1-cw)/2, 1-cw, (1-cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// PeakFilter designs an RBJ peaking stage with linear gain at center.
// A non-positive or non-finite gain is treated as unity.
func PeakFilter(center, sampleRate, q, linearGain float64) biquad.Coefficients {
	w0, ok := clampedW0(center, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	if !(linearGain > 0) || math.IsInf(linearGain, 0) {
		linearGain = 1
	}

	a := math.Sqrt(linearGain)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * clampQ(q))

	return normalizeOrIdentity(
		1+alpha*a, -2*cw, 1-alpha*a,
		1+alpha/a, -2*cw, 1-alpha/a,
	)
}

// Peak is PeakFilter with the gain given in decibels.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return PeakFilter(freq, sampleRate, q, core.DBToGain(gainDB))
}

// ClampFrequency limits freq to [MinFrequency, MaxFrequencyRatio*sampleRate].
func ClampFrequency(freq, sampleRate float64) float64 {
	return core.Clamp(freq, MinFrequency, MaxFrequencyRatio*sampleRate)
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate > 2*MinFrequency/MaxFrequencyRatio && !math.IsInf(sampleRate, 0)
}

func clampedW0(freq, sampleRate float64) (float64, bool) {
	if !validSampleRate(sampleRate) {
		return 0, false
	}

	return 2 * math.Pi * ClampFrequency(freq, sampleRate) / sampleRate, true
}

func clampQ(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return DefaultQ
	}

	return math.Max(q, MinQ)
}

func normalizeOrIdentity(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	c, err := biquad.Normalize(b0, b1, b2, a0, a1, a2)
	if err != nil {
		return biquad.Identity()
	}

	return c
}
