package eq_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

func ExampleStereoProcessor() {
	store := eq.NewParameterStore()
	store.Set(eq.ParamLowCutFreq, 80)
	store.Set(eq.ParamLowCutSlope, float64(eq.Slope24.Index()))
	store.Set(eq.ParamPeakGain, 6)

	p := eq.NewStereoProcessor(store)
	if err := p.Prepare(48000, 256); err != nil {
		fmt.Println(err)
		return
	}

	left := make([]float64, 256)
	right := make([]float64, 256)
	p.Process(left, right)

	fmt.Println(p.State(), p.Left().LowCut().ActiveStages(), store.Snapshot())

	// Output:
	// streaming 2 lowcut=80Hz/24 dB/Oct peak=750Hz +6.0dB Q1.00 highcut=20000Hz/12 dB/Oct
}
