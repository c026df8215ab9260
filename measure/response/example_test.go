package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/measure/response"
)

func ExampleMeasure() {
	settings := eq.DefaultChainSettings()
	settings.PeakFreq, settings.PeakGainDB = 1000, 12

	var chain eq.ChannelChain
	chain.Apply(eq.DesignChain(settings, 48000))

	spec, err := response.Measure(&chain, 48000, 1<<14)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%.1f dB at 1 kHz\n", spec.AtDB(1000))

	// Output:
	// 12.0 dB at 1 kHz
}
