// Package webdemo drives the equalizer from the browser demo. It keeps the
// JavaScript glue in web/wasm free of DSP logic.
package webdemo

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/measure/response"
)

// Engine owns one processor and its parameter store. The audio worklet and
// the UI call it from the same goroutine.
type Engine struct {
	store *eq.ParameterStore
	proc  *eq.StereoProcessor
	left  []float64
	right []float64
}

// NewEngine prepares a processor for sampleRate and blocks of up to maxBlock
// frames. Larger blocks are accepted and grow the scratch buffers.
func NewEngine(sampleRate float64, maxBlock int) (*Engine, error) {
	store := eq.NewParameterStore()
	proc := eq.NewStereoProcessor(store)
	if err := proc.Prepare(sampleRate, maxBlock); err != nil {
		return nil, err
	}

	return &Engine{
		store: store,
		proc:  proc,
		left:  make([]float64, maxBlock),
		right: make([]float64, maxBlock),
	}, nil
}

// SetParam sets a parameter by key ("peak_gain") or display name and returns
// the stored value after clamping and snapping.
func (e *Engine) SetParam(name string, value float64) (float64, error) {
	id, err := eq.ParamByName(name)
	if err != nil {
		return 0, err
	}
	return e.store.Set(id, value), nil
}

// SetParamNormalized sets a parameter from a 0..1 slider position.
func (e *Engine) SetParamNormalized(name string, pos float64) (float64, error) {
	id, err := eq.ParamByName(name)
	if err != nil {
		return 0, err
	}
	return e.store.SetNormalized(id, pos), nil
}

// Param returns the current value of a parameter.
func (e *Engine) Param(name string) (float64, error) {
	id, err := eq.ParamByName(name)
	if err != nil {
		return 0, err
	}
	return e.store.Get(id), nil
}

// Process equalizes one block in place. A nil right selects mono.
func (e *Engine) Process(left, right []float32) {
	n := len(left)
	if right != nil {
		n = min(n, len(right))
	}
	if n > len(e.left) {
		e.left = make([]float64, n)
		e.right = make([]float64, n)
	}

	l := e.left[:n]
	for i := range l {
		l[i] = float64(left[i])
	}

	if right == nil {
		e.proc.Process(l, nil)
	} else {
		r := e.right[:n]
		for i := range r {
			r[i] = float64(right[i])
		}
		e.proc.Process(l, r)
		for i := range r {
			right[i] = float32(r[i])
		}
	}

	for i := range l {
		left[i] = float32(l[i])
	}
}

// ResponseCurveDB returns the magnitude response in dB of the current
// settings at each frequency.
func (e *Engine) ResponseCurveDB(freqs []float64) []float64 {
	sr := e.proc.SampleRate()
	cc := eq.DesignChain(e.store.Snapshot(), sr)
	return response.Analytic(cc.MagnitudeSquared, sr, freqs)
}

// Reset clears the filter history.
func (e *Engine) Reset() {
	e.proc.Reset()
}

// Describe returns a one-line summary of the current settings.
func (e *Engine) Describe() string {
	return fmt.Sprintf("%s @ %.0f Hz", e.store.Snapshot(), e.proc.SampleRate())
}
