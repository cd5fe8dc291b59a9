package burst_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/burstfit/burst"
	"github.com/katalvlaran/burstfit/calib"
	"github.com/katalvlaran/burstfit/fiterr"
	"github.com/katalvlaran/burstfit/pulse"
	"github.com/katalvlaran/burstfit/trace"
)

func mustModel(t *testing.T, t0 float64, n int, opts ...burst.Option) *burst.Model {
	t.Helper()
	m, err := burst.New(t0, n, calib.Pump, calib.Default(), opts...)
	require.NoError(t, err)

	return m
}

func TestCenters_Scenario(t *testing.T) {
	m := mustModel(t, 0, 4)
	want := []float64{0, 4.98375e-9, 9.71625e-9, 14.12e-9}
	got := m.Centers()
	require.Len(t, got, 4)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-21)
	}
}

func TestCenters_DelayShift(t *testing.T) {
	const t0 = 50e-9
	cal := calib.Default()
	cal.UseMeasuredDelays()

	m, err := burst.New(t0, 8, calib.Reflected, cal)
	require.NoError(t, err)
	assert.Equal(t, calib.ReflectDelay, m.Delay())
	assert.InDelta(t, t0-calib.ReflectDelay, m.Centers()[0], 1e-21)
	assert.InDelta(t, t0-calib.ReflectDelay+calib.Period, m.Centers()[4], 1e-21)

	m, err = burst.New(t0, 1, calib.Reflected, cal, burst.WithDelay(1e-9))
	require.NoError(t, err)
	assert.InDelta(t, t0-1e-9, m.Centers()[0], 1e-21)

	require.Panics(t, func() { burst.WithDelay(math.NaN()) })
}

func TestWindow(t *testing.T) {
	m := mustModel(t, 10e-9, 4)
	tStart, tEnd := m.Window()
	assert.InDelta(t, 10e-9-calib.PulseWidth/2, tStart, 1e-21)
	assert.InDelta(t, tStart+calib.Period, tEnd, 1e-21)
	assert.Equal(t, tStart, m.TStart())
	assert.Equal(t, tEnd, m.TEnd())

	require.NoError(t, m.SetT0(20e-9))
	assert.InDelta(t, 20e-9-calib.PulseWidth/2, m.TStart(), 1e-21)
	assert.InDelta(t, m.TStart()+calib.Period, m.TEnd(), 1e-21)

	require.NoError(t, m.SetNumPulses(6))
	assert.InDelta(t, m.TStart()+calib.Period+calib.Delta1+calib.Delta2, m.TEnd(), 1e-21)
	assert.Equal(t, 6, m.NumPulses())
	assert.Equal(t, 20e-9, m.T0())
}

func TestMutatorsRejectBadInput(t *testing.T) {
	m := mustModel(t, 0, 4)
	tStart, tEnd := m.Window()

	require.ErrorIs(t, m.SetT0(math.NaN()), burst.ErrNonFiniteT0)
	require.ErrorIs(t, m.SetT0(math.Inf(1)), fiterr.ErrDomain)
	require.ErrorIs(t, m.SetNumPulses(0), burst.ErrPulseCount)
	require.ErrorIs(t, m.SetNumPulses(-3), fiterr.ErrDomain)

	a, b := m.Window()
	assert.Equal(t, [2]float64{tStart, tEnd}, [2]float64{a, b}, "window unchanged")

	err := m.SetShapeParams(1e-10)
	require.ErrorIs(t, err, pulse.ErrParamCount)
	require.ErrorIs(t, err, fiterr.ErrShapeMismatch)

	require.NoError(t, m.SetShapeParams(3e-10, 6e8))
	assert.Equal(t, []float64{3e-10, 6e8}, m.ShapeParams().Values())
}

func TestNew_Errors(t *testing.T) {
	_, err := burst.New(0, 4, calib.Pump, nil)
	require.ErrorIs(t, err, burst.ErrNilCalibration)
	require.ErrorIs(t, err, fiterr.ErrPrecondition)

	_, err = burst.New(0, 0, calib.Pump, calib.Default())
	require.ErrorIs(t, err, burst.ErrPulseCount)

	_, err = burst.New(math.NaN(), 4, calib.Pump, calib.Default())
	require.ErrorIs(t, err, burst.ErrNonFiniteT0)

	_, err = burst.New(0, 4, calib.TraceType(3), calib.Default())
	require.ErrorIs(t, err, calib.ErrUnknownTraceType)
}

func TestRegressorMatrix(t *testing.T) {
	m := mustModel(t, 5e-9, 4)
	centers := m.Centers()

	x, err := m.RegressorMatrix(centers)
	require.NoError(t, err)
	rows, cols := x.Shape()
	require.Equal(t, [2]int{4, 4}, [2]int{rows, cols})

	shape, params := m.Shape(), m.ShapeParams()
	for i := range centers {
		for j := range centers {
			v, err := x.At(i, j)
			require.NoError(t, err)
			want, err := shape.EvalNormalized(centers[i]-centers[j], params)
			require.NoError(t, err)
			assert.Equal(t, want, v, "(%d,%d)", i, j)
			if i == j {
				assert.Equal(t, 1.0, v)
			}
		}
	}

	_, err = m.RegressorMatrix(nil)
	require.ErrorIs(t, err, burst.ErrNoSamples)

	_, err = m.RegressorMatrix([]float64{0, math.NaN()})
	require.ErrorIs(t, err, pulse.ErrNonFinite)
}

func TestEvaluate(t *testing.T) {
	m := mustModel(t, 0, 5)
	times := []float64{-1e-9, 0, 1e-9, 5e-9, 20e-9}

	_, err := m.Evaluate(times, []float64{1, 2, 3, 4})
	require.ErrorIs(t, err, burst.ErrAmplitudeCount)
	require.ErrorIs(t, err, fiterr.ErrShapeMismatch)

	amps := []float64{1, 0.5, -0.25, 2, 0}
	y, err := m.Evaluate(times, amps)
	require.NoError(t, err)

	x, err := m.RegressorMatrix(times)
	require.NoError(t, err)
	for i := range times {
		row, err := x.Row(i)
		require.NoError(t, err)
		var want float64
		for j := range amps {
			want += row[j] * amps[j]
		}
		assert.InDelta(t, want, y[i], 1e-15)
	}
	assert.InDelta(t, 1.0, y[1], 1e-3, "first pulse peak dominates at t0")
}

func TestRestrict(t *testing.T) {
	m := mustModel(t, 0, 4)
	times := make([]float64, 0, 100)
	values := make([]float64, 0, 100)
	for i := -20; i < 80; i++ {
		times = append(times, float64(i)*0.5e-9)
		values = append(values, float64(i))
	}
	tr, err := trace.New(times, values)
	require.NoError(t, err)

	sub, err := m.Restrict(tr)
	require.NoError(t, err)
	require.NotZero(t, sub.Len())
	for ts := range sub.All() {
		assert.GreaterOrEqual(t, ts, m.TStart())
		assert.LessOrEqual(t, ts, m.TEnd())
	}
}
