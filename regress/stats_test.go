package regress_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/burstfit/fiterr"
	"github.com/katalvlaran/burstfit/regress"
)

func TestRSquared_Identity(t *testing.T) {
	y := []float64{0.1, 0.5, -0.3, 2.0, 1.1}
	r2, err := regress.RSquared(y, y)
	require.NoError(t, err)
	require.Equal(t, 1.0, r2)
}

func TestRSquared_KnownValue(t *testing.T) {
	// mean 2, SS_tot = 2, SS_res = 0.5
	r2, err := regress.RSquared([]float64{1, 2, 3}, []float64{1.5, 2, 2.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, r2, 1e-15)

	// n=3, k=1: 1 − 0.25·2/3
	adj, err := regress.AdjustedRSquared([]float64{1, 2, 3}, []float64{1.5, 2, 2.5}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1-0.25*2.0/3.0, adj, 1e-15)

	// n=3, k=1: 1 − 0.25·2/1
	conv, err := regress.ConventionalAdjustedRSquared([]float64{1, 2, 3}, []float64{1.5, 2, 2.5}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, conv, 1e-15)
}

func TestRSquared_DecreasesWithNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	const n = 500
	model := make([]float64, n)
	noise := make([]float64, n)
	for i := range model {
		model[i] = math.Sin(float64(i) / 20)
		noise[i] = rng.NormFloat64()
	}

	prev := 1.0
	for _, scale := range []float64{0.01, 0.05, 0.1, 0.2, 0.4, 0.7} {
		observed := make([]float64, n)
		for i := range observed {
			observed[i] = model[i] + scale*noise[i]
		}
		r2, err := regress.RSquared(observed, model)
		require.NoError(t, err)
		require.Less(t, r2, prev, "scale %g", scale)
		prev = r2
	}
}

func TestStatistics_Errors(t *testing.T) {
	_, err := regress.RSquared([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, regress.ErrLengthMismatch)
	require.ErrorIs(t, err, fiterr.ErrShapeMismatch)

	_, err = regress.RSquared([]float64{3, 3, 3}, []float64{1, 2, 3})
	require.ErrorIs(t, err, regress.ErrConstantObserved)
	require.ErrorIs(t, err, fiterr.ErrDomain)

	_, err = regress.RSquared([]float64{1}, []float64{1})
	require.ErrorIs(t, err, regress.ErrConstantObserved)

	y := []float64{1, 2, 3, 4}
	for _, k := range []int{0, 4, 5} {
		_, err = regress.AdjustedRSquared(y, y, k)
		require.ErrorIs(t, err, regress.ErrDegenerateDoF, "k=%d", k)
		require.ErrorIs(t, err, fiterr.ErrDomain)
	}
	_, err = regress.AdjustedRSquared(y, y, 3)
	require.NoError(t, err, "source denominator n−k+1 stays positive for k=n−1")

	_, err = regress.ConventionalAdjustedRSquared(y, y, 3)
	require.ErrorIs(t, err, regress.ErrDegenerateDoF)
}

func TestChiSquared(t *testing.T) {
	// χ² = 1 + 1 + 1; for dof=2 the survival function is exp(−χ²/2).
	st, err := regress.ChiSquared([]float64{1, -1, 2}, []float64{1, 1, 2}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, st.Chi2, 1e-15)
	assert.InDelta(t, 1.5, st.Reduced, 1e-15)
	assert.InDelta(t, math.Exp(-1.5), st.PValue, 1e-12)
	assert.Equal(t, 2, st.DoF)

	_, err = regress.ChiSquared([]float64{1}, []float64{1, 2}, 1)
	require.ErrorIs(t, err, fiterr.ErrShapeMismatch)
	_, err = regress.ChiSquared([]float64{1}, []float64{0}, 1)
	require.ErrorIs(t, err, regress.ErrUncertainty)
	_, err = regress.ChiSquared([]float64{1}, []float64{math.NaN()}, 1)
	require.ErrorIs(t, err, regress.ErrUncertainty)
	_, err = regress.ChiSquared([]float64{1}, []float64{1}, 0)
	require.ErrorIs(t, err, regress.ErrDegenerateDoF)

	assert.Equal(t, []float64{0.5, 0.5, 0.5}, regress.Uniform(3, 0.5))
}
