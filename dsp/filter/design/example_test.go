package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

func ExampleHighpassCascade() {
	cc := design.HighpassCascade(1000, 48000, 4)

	fmt.Printf("stages=%d cutoff=%.2f dB\n", cc.N, cc.MagnitudeDB(1000, 48000))

	// Output:
	// stages=4 cutoff=-3.01 dB
}

func ExamplePeakFilter() {
	c := design.PeakFilter(1000, 48000, 1, 2)

	fmt.Printf("center gain=%.3f\n", c.Magnitude(1000, 48000))

	// Output:
	// center gain=2.000
}
