// Package eq implements a three-band stereo equalizer: a Butterworth low-cut
// with 12 to 48 dB/octave slope, an RBJ peaking band, and a Butterworth
// high-cut, run on two independent channels with shared settings.
//
// The audio path is [StereoProcessor.Process]. Every call takes one
// [ChainSettings] snapshot from a [SettingsSource], designs coefficients with
// [DesignChain], installs them into both channels and filters the block in
// place. Filter history carries across calls, so settings can change between
// any two blocks without clicks. Nothing on that path allocates or locks.
//
// [ParameterStore] is the lock-free SettingsSource used by hosts: control
// goroutines write individual parameters while the audio goroutine reads them.
package eq
