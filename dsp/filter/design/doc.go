// Package design turns user-facing equalizer parameters into normalized
// biquad coefficients.
//
// Every designer is pure and allocation-free. Out-of-range inputs are clamped
// rather than rejected, so the result is always usable on the audio path:
// cutoff and center frequencies are kept inside (0, Nyquist), resonance is
// floored at [MinQ] and cascade orders are limited to biquad.MaxStages. An
// unusable sample rate yields identity (pass-through) coefficients.
package design
