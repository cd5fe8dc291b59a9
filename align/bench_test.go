package align_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/burstfit/align"
)

// benchmarkDTW runs DTW on two n-sample ramps with opts.
func benchmarkDTW(b *testing.B, n int, opts align.Options) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) + 0.5
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := align.DTW(x, y, &opts); err != nil {
			b.Fatalf("DTW failed: %v", err)
		}
	}
}

func BenchmarkDTW_FullMatrix(b *testing.B) {
	benchmarkDTW(b, 500, align.Options{Window: -1, ReturnPath: true})
}

func BenchmarkDTW_TwoRows(b *testing.B) {
	benchmarkDTW(b, 500, align.Options{Window: -1, MemoryMode: align.TwoRows})
}

func BenchmarkDTW_Windowed(b *testing.B) {
	benchmarkDTW(b, 2000, align.Options{Window: 8, MemoryMode: align.TwoRows})
}

// BenchmarkLag aligns one 841-sample trace, the default synth grid length.
func BenchmarkLag(b *testing.B) {
	const n = 841
	modeled := make([]float64, n)
	measured := make([]float64, n)
	for i := range modeled {
		modeled[i] = math.Exp(-math.Pow(float64(i-400)/4, 2) / 2)
		measured[i] = math.Exp(-math.Pow(float64(i-403)/4, 2) / 2)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := align.Lag(measured, modeled, 0.25e-9, 8); err != nil {
			b.Fatal(err)
		}
	}
}
