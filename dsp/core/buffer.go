package core

import "github.com/cwbudde/algo-vecmath"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// Scale multiplies buf by gain in place.
func Scale(buf []float64, gain float64) {
	vecmath.ScaleBlockInPlace(buf, gain)
}

// PeakAbs returns the largest absolute sample value in buf.
func PeakAbs(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	return vecmath.MaxAbs(buf)
}

// Deinterleave splits interleaved frames into the planar channel slices of dst.
// It returns the number of frames written, limited by the shortest destination.
func Deinterleave(dst [][]float64, src []float32) int {
	chans := len(dst)
	if chans == 0 {
		return 0
	}

	frames := len(src) / chans
	for _, ch := range dst {
		frames = min(frames, len(ch))
	}

	for f := 0; f < frames; f++ {
		base := f * chans
		for c := range chans {
			dst[c][f] = float64(src[base+c])
		}
	}

	return frames
}

// Interleave writes the first frames samples of each planar channel into dst.
func Interleave(dst []float32, src [][]float64, frames int) {
	chans := len(src)
	for f := 0; f < frames; f++ {
		base := f * chans
		for c := range chans {
			dst[base+c] = float32(src[c][f])
		}
	}
}

// Float32To64 converts src into dst and returns the number of converted samples.
func Float32To64(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i])
	}
	return n
}

// Float64To32 converts src into dst and returns the number of converted samples.
func Float64To32(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i])
	}
	return n
}
