// Package registry selects the biquad block kernel for the running CPU.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are normalized biquad coefficients (a0 == 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// KernelFunc filters buf in place with one DF-II-T section starting from the
// delay line (d0, d1) and returns the final delay line.
type KernelFunc func(c Coefficients, d0, d1 float64, buf []float64) (float64, float64)

// Kernel is one block implementation and the SIMD level it needs.
type Kernel struct {
	Name     string
	Level    cpu.SIMDLevel
	Priority int
	Run      KernelFunc
}

// Registry holds kernels ordered by descending priority.
type Registry struct {
	mu      sync.RWMutex
	kernels []Kernel
}

// Global receives the kernels registered by the arch packages.
var Global = &Registry{}

// Register adds k. Names must be unique and Run must be set.
func (r *Registry) Register(k Kernel) error {
	if k.Run == nil {
		return fmt.Errorf("registry: kernel %q has no Run", k.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.kernels, func(e Kernel) bool { return e.Name == k.Name }) {
		return fmt.Errorf("registry: kernel %q already registered", k.Name)
	}

	r.kernels = append(r.kernels, k)
	slices.SortStableFunc(r.kernels, func(a, b Kernel) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	return nil
}

// MustRegister is Register for init functions.
func (r *Registry) MustRegister(k Kernel) {
	if err := r.Register(k); err != nil {
		panic(err)
	}
}

// Select returns the highest-priority kernel the features support.
func (r *Registry) Select(features cpu.Features) (Kernel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.kernels {
		if cpu.Supports(features, k.Level) {
			return k, true
		}
	}

	return Kernel{}, false
}

// ByName returns the kernel registered under name.
func (r *Registry) ByName(name string) (Kernel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.kernels, func(k Kernel) bool { return k.Name == name })
	if i < 0 {
		return Kernel{}, false
	}

	return r.kernels[i], true
}

// Names lists the registered kernels, highest priority first.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.kernels))
	for i, k := range r.kernels {
		names[i] = k.Name
	}

	return names
}
