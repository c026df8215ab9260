package livehost

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

// bytesPerSample is the width of one float32 device sample.
const bytesPerSample = 4

// Engine converts interleaved float32 device buffers into planar blocks for
// the processor and back. It allocates only in NewEngine.
type Engine struct {
	proc     *eq.StereoProcessor
	channels int
	planar   [][]float64
	view     [][]float64
	scratch  []float32
	tap      func([]float32)
}

// NewEngine prepares buffers for channels and up to maxFrames per chunk.
// Longer device buffers are processed in several chunks.
func NewEngine(proc *eq.StereoProcessor, channels, maxFrames int) *Engine {
	e := &Engine{
		proc:     proc,
		channels: channels,
		planar:   make([][]float64, channels),
		view:     make([][]float64, channels),
		scratch:  make([]float32, channels*maxFrames),
	}
	for ch := range e.planar {
		e.planar[ch] = make([]float64, maxFrames)
	}
	return e
}

// SetTap registers fn to receive every processed interleaved chunk. fn runs
// on the audio thread and must not block.
func (e *Engine) SetTap(fn func([]float32)) {
	e.tap = fn
}

// Process equalizes frames from in into out. Both hold interleaved
// little-endian float32 samples. A short in is treated as silence.
func (e *Engine) Process(out, in []byte, frames int) {
	maxFrames := len(e.planar[0])
	frameBytes := e.channels * bytesPerSample

	for pos := 0; pos < frames; pos += maxFrames {
		n := min(maxFrames, frames-pos)
		off := pos * frameBytes
		samples := e.scratch[:n*e.channels]

		for ch := range e.view {
			e.view[ch] = e.planar[ch][:n]
		}

		decodeF32(samples, in[min(off, len(in)):])
		core.Deinterleave(e.view, samples)
		e.proc.ProcessBuffer(e.view, e.channels)
		core.Interleave(samples, e.view, n)

		if e.tap != nil {
			e.tap(samples)
		}
		encodeF32(out[min(off, len(out)):], samples)
	}
}

func decodeF32(dst []float32, src []byte) {
	n := min(len(dst), len(src)/bytesPerSample)
	for i := range n {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*bytesPerSample:]))
	}
	clear(dst[n:])
}

func encodeF32(dst []byte, src []float32) {
	n := min(len(src), len(dst)/bytesPerSample)
	for i := range n {
		binary.LittleEndian.PutUint32(dst[i*bytesPerSample:], math.Float32bits(src[i]))
	}
}
