// Package biquad provides the second-order IIR runtime used by the equalizer.
//
// A [Section] runs Direct Form II Transposed processing for one set of
// normalized [Coefficients]. A [Cascade] threads up to [MaxStages] sections in
// series with an explicit active count, so slope changes never reallocate:
// stages beyond the active count are bypassed and keep their history frozen.
//
// Coefficient design lives in dsp/filter/design.
package biquad
