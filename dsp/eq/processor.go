package eq

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// ProcessorState is the lifecycle stage of a StereoProcessor.
type ProcessorState int

// Lifecycle states.
const (
	StateUnprepared ProcessorState = iota
	StatePrepared
	StateStreaming
)

func (s ProcessorState) String() string {
	switch s {
	case StateUnprepared:
		return "unprepared"
	case StatePrepared:
		return "prepared"
	case StateStreaming:
		return "streaming"
	default:
		return fmt.Sprintf("ProcessorState(%d)", int(s))
	}
}

// Option configures a StereoProcessor.
type Option func(*StereoProcessor)

// WithDenormalFlush toggles flushing of negligible filter history at the end
// of every block. Enabled by default.
func WithDenormalFlush(enabled bool) Option {
	return func(p *StereoProcessor) {
		p.flushDenormals = enabled
	}
}

// StereoProcessor runs two ChannelChains with identical coefficients.
//
// Prepare, Reset and Process must be called from one goroutine at a time;
// the SettingsSource may be written concurrently.
type StereoProcessor struct {
	source SettingsSource
	cfg    core.ProcessorConfig
	state  ProcessorState

	left, right ChannelChain
	coeffs      ChainCoefficients

	flushDenormals bool
}

// NewStereoProcessor returns an unprepared processor reading from source.
// A nil source uses DefaultChainSettings.
func NewStereoProcessor(source SettingsSource, opts ...Option) *StereoProcessor {
	if source == nil {
		source = StaticSettings(DefaultChainSettings())
	}

	p := &StereoProcessor{
		source:         source,
		flushDenormals: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Prepare validates the stream format, clears all history and designs the
// filters for the current settings.
func (p *StereoProcessor) Prepare(sampleRate float64, maxBlockSize int) error {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(sampleRate), core.WithBlockSize(maxBlockSize))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("eq: prepare: %w", err)
	}

	p.cfg = cfg
	p.left.Reset()
	p.right.Reset()
	p.UpdateFilters(p.source.Snapshot())
	p.state = StatePrepared

	return nil
}

// UpdateFilters designs coefficients for settings once and installs the same
// values in both channels.
func (p *StereoProcessor) UpdateFilters(settings ChainSettings) {
	p.coeffs = DesignChain(settings, p.cfg.SampleRate)
	p.left.Apply(p.coeffs)
	p.right.Apply(p.coeffs)
}

// Process filters one block in place. A nil right channel selects the mono
// layout. With two channels of different length only the common prefix is
// processed. Before Prepare the audio passes through untouched.
func (p *StereoProcessor) Process(left, right []float64) {
	if p.state == StateUnprepared {
		return
	}

	p.UpdateFilters(p.source.Snapshot())

	if right == nil {
		p.left.ProcessBlock(left)
	} else {
		n := min(len(left), len(right))
		p.left.ProcessBlock(left[:n])
		p.right.ProcessBlock(right[:n])
	}

	if p.flushDenormals {
		p.left.FlushDenormals()
		p.right.FlushDenormals()
	}

	p.state = StateStreaming
}

// ProcessBuffer processes a host buffer of planar channels of which the first
// numInputs carry input. Channels without input are cleared; only the first
// two are filtered.
func (p *StereoProcessor) ProcessBuffer(channels [][]float64, numInputs int) {
	for i := max(numInputs, 0); i < len(channels); i++ {
		core.Zero(channels[i])
	}

	switch {
	case len(channels) == 0:
	case len(channels) == 1 || numInputs == 1:
		p.Process(channels[0], nil)
	default:
		p.Process(channels[0], channels[1])
	}
}

// Reset clears filter history without changing the stream format.
func (p *StereoProcessor) Reset() {
	p.left.Reset()
	p.right.Reset()
	if p.state == StateStreaming {
		p.state = StatePrepared
	}
}

// State returns the lifecycle state.
func (p *StereoProcessor) State() ProcessorState { return p.state }

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (p *StereoProcessor) SampleRate() float64 { return p.cfg.SampleRate }

// MaxBlockSize returns the prepared block size hint, or 0 before Prepare.
func (p *StereoProcessor) MaxBlockSize() int { return p.cfg.BlockSize }

// Coefficients returns the coefficients installed by the last update.
func (p *StereoProcessor) Coefficients() ChainCoefficients { return p.coeffs }

// TailSeconds reports the processing tail. IIR history is not reported as tail.
func (p *StereoProcessor) TailSeconds() float64 { return 0 }

// Left exposes the left channel chain.
func (p *StereoProcessor) Left() *ChannelChain { return &p.left }

// Right exposes the right channel chain.
func (p *StereoProcessor) Right() *ChannelChain { return &p.right }
