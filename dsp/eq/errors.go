package eq

import (
	"errors"

	"github.com/cwbudde/algo-eq/dsp/core"
)

var (
	// ErrInvalidSampleRate is returned by Prepare for unusable sample rates.
	ErrInvalidSampleRate = core.ErrInvalidSampleRate
	// ErrInvalidBlockSize is returned by Prepare for non-positive block sizes.
	ErrInvalidBlockSize = core.ErrInvalidBlockSize
	// ErrUnsupportedLayout reports a bus layout IsBusesLayoutSupported rejects.
	ErrUnsupportedLayout = errors.New("eq: unsupported bus layout")
	// ErrInvalidSlope is returned by ParseSlope.
	ErrInvalidSlope = errors.New("eq: slope must be 12, 24, 36 or 48 dB/oct")
	// ErrUnknownParameter is returned for unknown parameter names.
	ErrUnknownParameter = errors.New("eq: unknown parameter")
)
