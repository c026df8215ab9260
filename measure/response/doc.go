// Package response measures and predicts the magnitude response of the
// equalizer chain.
//
// [Analytic] evaluates designed coefficients in closed form. [Measure] drives
// an impulse through a running filter, transforms the result with an FFT and
// reports the magnitude per bin, so the two can be compared: a processor that
// matches its own analytic curve has its stages wired in the right order with
// no stray gain.
package response
