package pulse_test

import (
	"testing"

	"github.com/katalvlaran/burstfit/pulse"
)

func benchEval(b *testing.B, s pulse.Shape) {
	p, err := pulse.NewParams(pulse.GaussianExpKind, pulse.DefaultSigma, pulse.DefaultLambda)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	var sink float64
	for i := 0; i < b.N; i++ {
		t := float64(i%2000-1000) * 1e-12
		v, err := s.Eval(t, p)
		if err != nil {
			b.Fatal(err)
		}
		sink += v
	}
	_ = sink
}

func BenchmarkGaussianExp_Eval(b *testing.B) { benchEval(b, pulse.NewGaussianExp()) }

func BenchmarkGaussianExp_EvalFast(b *testing.B) {
	benchEval(b, pulse.NewGaussianExp(pulse.WithFastMode()))
}
