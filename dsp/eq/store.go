package eq

import (
	"math"
	"sync/atomic"
)

// ParameterStore holds the parameters as individual atomics. Writers and the
// audio reader never block each other. A Snapshot is atomic per parameter,
// not across parameters: a block may observe a mix of old and new values
// while a writer is midway through a multi-parameter update.
type ParameterStore struct {
	values [paramCount]atomic.Uint64
}

// NewParameterStore returns a store initialized to the defaults.
func NewParameterStore() *ParameterStore {
	s := &ParameterStore{}
	s.Reset()
	return s
}

// Reset restores every parameter to its default.
func (s *ParameterStore) Reset() {
	for i := range parameters {
		s.values[i].Store(math.Float64bits(parameters[i].Default))
	}
}

// Set stores v for id after clamping and snapping it to the parameter range.
// Unknown ids are ignored. It returns the stored value.
func (s *ParameterStore) Set(id ParamID, v float64) float64 {
	if !id.Valid() {
		return 0
	}

	v = parameters[id].Range.Snap(v)
	s.values[id].Store(math.Float64bits(v))
	return v
}

// SetNormalized stores the value at normalized position p (0..1).
func (s *ParameterStore) SetNormalized(id ParamID, p float64) float64 {
	if !id.Valid() {
		return 0
	}
	return s.Set(id, parameters[id].Range.Denormalize(p))
}

// Get returns the current value of id. Slopes are returned as choice indices.
func (s *ParameterStore) Get(id ParamID) float64 {
	if !id.Valid() {
		return 0
	}
	return math.Float64frombits(s.values[id].Load())
}

// Normalized returns the current value of id mapped into 0..1.
func (s *ParameterStore) Normalized(id ParamID) float64 {
	if !id.Valid() {
		return 0
	}
	return parameters[id].Range.Normalize(s.Get(id))
}

// SetSettings writes every field of cs. Each field is published separately.
func (s *ParameterStore) SetSettings(cs ChainSettings) {
	for id := ParamID(0); id < paramCount; id++ {
		s.Set(id, cs.Value(id))
	}
}

// Snapshot reads every parameter once.
func (s *ParameterStore) Snapshot() ChainSettings {
	var cs ChainSettings
	for id := ParamID(0); id < paramCount; id++ {
		cs = cs.With(id, s.Get(id))
	}
	return cs
}
