package biquad

import "testing"

func BenchmarkSection_ProcessBlock(b *testing.B) {
	for _, name := range Kernels() {
		b.Run(name, func(b *testing.B) {
			if err := UseKernel(name); err != nil {
				b.Fatal(err)
			}

			s := NewSection(smoothing())
			buf := make([]float64, 512)
			for i := range buf {
				buf[i] = float64(i%17) * 0.01
			}

			b.SetBytes(int64(len(buf) * 8))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				s.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkCascade_ProcessBlock4(b *testing.B) {
	var c Cascade
	cc := threeStage()
	cc.N = 4
	cc.Stages[3] = smoothing()
	c.Configure(cc)

	buf := make([]float64, 512)
	b.SetBytes(int64(len(buf) * 8))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		c.ProcessBlock(buf)
	}
}
