package eq

import (
	"sync"
	"testing"
)

func TestParameterStore_Defaults(t *testing.T) {
	s := NewParameterStore()
	if got, want := s.Snapshot(), DefaultChainSettings(); got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestParameterStore_SetClampsAndSnaps(t *testing.T) {
	s := NewParameterStore()

	if v := s.Set(ParamPeakGain, 99); v != 24 {
		t.Fatalf("Set returned %v, want 24", v)
	}
	if v := s.Set(ParamLowCutFreq, 80.4); v != 80 {
		t.Fatalf("Set returned %v, want 80", v)
	}
	if v := s.Set(ParamHighCutSlope, 2.2); v != 2 {
		t.Fatalf("Set returned %v, want 2", v)
	}
	if v := s.Set(ParamID(-1), 5); v != 0 {
		t.Fatal("unknown id must be ignored")
	}

	snap := s.Snapshot()
	if snap.PeakGainDB != 24 || snap.LowCutFreq != 80 || snap.HighCutSlope != Slope36 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestParameterStore_SetNormalized(t *testing.T) {
	s := NewParameterStore()
	s.SetNormalized(ParamLowCutSlope, 1)
	if s.Snapshot().LowCutSlope != Slope48 {
		t.Fatalf("LowCutSlope = %v", s.Snapshot().LowCutSlope)
	}
	s.SetNormalized(ParamPeakFreq, 0)
	if s.Get(ParamPeakFreq) != 20 || s.Normalized(ParamPeakFreq) != 0 {
		t.Fatalf("PeakFreq = %v", s.Get(ParamPeakFreq))
	}
}

func TestParameterStore_SetSettingsRoundTrip(t *testing.T) {
	want := ChainSettings{
		LowCutFreq: 120, LowCutSlope: Slope24,
		HighCutFreq: 9000, HighCutSlope: Slope48,
		PeakFreq: 2500, PeakGainDB: -6.5, PeakQ: 2.35,
	}
	s := NewParameterStore()
	s.SetSettings(want)
	if got := s.Snapshot(); got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}

	s.Reset()
	if s.Snapshot() != DefaultChainSettings() {
		t.Fatal("Reset must restore defaults")
	}
}

func TestParameterStore_ConcurrentWritersAndReader(t *testing.T) {
	s := NewParameterStore()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				s.Set(ParamPeakFreq, float64(100+i))
				s.Set(ParamPeakGain, float64(w*2-3))
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			snap := s.Snapshot()
			if snap.PeakFreq < 20 || snap.PeakFreq > 20000 || snap.PeakGainDB < -24 || snap.PeakGainDB > 24 {
				t.Errorf("torn or out-of-range value %+v", snap)
				return
			}
		}
	}()

	wg.Wait()
	<-done
}

func TestChainSettings_Sanitized(t *testing.T) {
	cs := ChainSettings{
		LowCutFreq: 1, LowCutSlope: 9,
		HighCutFreq: 1e6, HighCutSlope: -1,
		PeakFreq: 433.6, PeakGainDB: -40, PeakQ: 0,
	}.Sanitized()

	want := ChainSettings{
		LowCutFreq: 20, LowCutSlope: Slope48,
		HighCutFreq: 20000, HighCutSlope: Slope12,
		PeakFreq: 434, PeakGainDB: -24, PeakQ: 0.1,
	}
	if cs != want {
		t.Fatalf("Sanitized() = %+v, want %+v", cs, want)
	}
}
