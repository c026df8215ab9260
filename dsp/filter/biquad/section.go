package biquad

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-eq/dsp/core"
	archregistry "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Section is one biquad stage: coefficients plus its own delay line.
// The zero value is a silent filter; use NewSection or SetCoefficients.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	kernel     archregistry.Kernel
	kernelOnce sync.Once
)

// NewSection returns a Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients replaces the coefficients and keeps the delay line.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place using the kernel selected for this CPU.
// Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	kernelOnce.Do(selectKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	s.d0, s.d1 = kernel.Run(coeffs, s.d0, s.d1, buf)
}

func selectKernel() {
	k, ok := archregistry.Global.Select(cpu.DetectFeatures())
	if !ok {
		panic("biquad: no block kernel registered")
	}
	kernel = k
}

// KernelName reports which block kernel ProcessBlock dispatches to.
func KernelName() string {
	kernelOnce.Do(selectKernel)
	return kernel.Name
}

// Kernels lists the block kernels built into this binary, preferred first.
func Kernels() []string {
	return archregistry.Global.Names()
}

// UseKernel pins ProcessBlock to the named kernel regardless of CPU
// detection. It is meant for benchmarks and must not race with processing.
func UseKernel(name string) error {
	k, ok := archregistry.Global.ByName(name)
	if !ok {
		return fmt.Errorf("biquad: unknown kernel %q", name)
	}
	kernelOnce.Do(func() {})
	kernel = k
	return nil
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// FlushDenormals zeroes delay-line values too small to matter.
func (s *Section) FlushDenormals() {
	s.d0 = core.FlushDenormal(s.d0)
	s.d1 = core.FlushDenormal(s.d1)
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
