package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eq/dsp/core"
)

var (
	// ErrInvalidFFTSize is returned when the FFT size is not a power of two >= 16.
	ErrInvalidFFTSize = errors.New("response: fft size must be a power of two >= 16")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("response: invalid sample rate")
)

// MagnitudeFunc returns |H(f)|^2 at freqHz for sampleRate.
type MagnitudeFunc func(freqHz, sampleRate float64) float64

// BlockProcessor filters a block in place.
type BlockProcessor interface {
	ProcessBlock(buf []float64)
}

// BlockFunc adapts a function to BlockProcessor.
type BlockFunc func(buf []float64)

// ProcessBlock calls f(buf).
func (f BlockFunc) ProcessBlock(buf []float64) { f(buf) }

// LogFrequencies returns n frequencies spaced logarithmically from lo to hi.
func LogFrequencies(n int, lo, hi float64) []float64 {
	if n <= 0 || lo <= 0 || hi <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = hi
	return out
}

// Analytic evaluates mag at each frequency and returns decibels.
func Analytic(mag MagnitudeFunc, sampleRate float64, freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = core.PowerToDB(mag(f, sampleRate))
	}
	return out
}

// Spectrum is a measured magnitude response from DC to Nyquist.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64 // linear, FFTSize/2+1 bins
}

// BinWidth returns the frequency spacing of the bins.
func (s Spectrum) BinWidth() float64 {
	return s.SampleRate / float64(s.FFTSize)
}

// At returns the linear magnitude at freqHz, interpolated between bins.
func (s Spectrum) At(freqHz float64) float64 {
	if len(s.Magnitude) == 0 {
		return 0
	}

	pos := core.Clamp(freqHz/s.BinWidth(), 0, float64(len(s.Magnitude)-1))
	i := int(pos)
	if i >= len(s.Magnitude)-1 {
		return s.Magnitude[len(s.Magnitude)-1]
	}

	frac := pos - float64(i)
	return s.Magnitude[i]*(1-frac) + s.Magnitude[i+1]*frac
}

// AtDB returns At in decibels.
func (s Spectrum) AtDB(freqHz float64) float64 {
	return core.GainToDB(s.At(freqHz))
}

// Measure feeds a unit impulse of fftSize samples through proc and returns the
// magnitude of its transform. proc keeps whatever history it had; reset it
// first for a clean measurement.
func Measure(proc BlockProcessor, sampleRate float64, fftSize int) (Spectrum, error) {
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	ir := make([]float64, fftSize)
	ir[0] = 1
	proc.ProcessBlock(ir)

	return Transform(ir, sampleRate)
}

// Transform returns the magnitude spectrum of an impulse response whose
// length is a power of two.
func Transform(ir []float64, sampleRate float64) (Spectrum, error) {
	n := len(ir)
	if n < 16 || n&(n-1) != 0 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrInvalidFFTSize, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Spectrum{}, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("response: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return Spectrum{SampleRate: sampleRate, FFTSize: n, Magnitude: mag}, nil
}
