package pulse_test

import (
	"fmt"

	"github.com/katalvlaran/burstfit/pulse"
)

func ExampleGaussianExp() {
	p, _ := pulse.NewParams(pulse.GaussianExpKind, 4e-10, 5e8)
	g := pulse.NewGaussianExp()

	for _, t := range []float64{-4e-10, 0, 1e-9} {
		v, _ := g.EvalNormalized(t, p)
		fmt.Printf("%.4f\n", v)
	}
	// Output:
	// 0.6065
	// 1.0000
	// 0.6188
}
