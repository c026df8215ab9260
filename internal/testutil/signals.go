package testutil

import (
	"math"
	"math/rand/v2"
)

// Sine returns length samples of a sine starting at sample offset start, so
// consecutive blocks can be generated independently and still join seamlessly.
func Sine(freqHz, sampleRate, amplitude float64, start, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(start+i))
	}
	return out
}

// Noise generates white noise in [-amplitude, amplitude) with a fixed seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// RMS returns the root mean square of data.
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(data)))
}

// SineGain feeds a unit sine of freqHz through process in blocks of
// blockSize and returns the steady-state output/input RMS ratio, measured
// after settle samples.
func SineGain(process func([]float64), freqHz, sampleRate float64, settle, measure, blockSize int) float64 {
	total := settle + measure
	in := Sine(freqHz, sampleRate, 1, 0, total)
	out := append([]float64(nil), in...)
	for start := 0; start < total; start += blockSize {
		end := min(start+blockSize, total)
		process(out[start:end])
	}
	return RMS(out[settle:]) / RMS(in[settle:])
}
