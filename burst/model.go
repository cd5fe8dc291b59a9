// SPDX-License-Identifier: MIT

package burst

import (
	"fmt"
	"math"

	"github.com/katalvlaran/burstfit/calib"
	"github.com/katalvlaran/burstfit/matrix"
	"github.com/katalvlaran/burstfit/pulse"
	"github.com/katalvlaran/burstfit/timing"
	"github.com/katalvlaran/burstfit/trace"
)

// Operation tags for error wrapping.
const (
	opNew       = "burst.New"
	opRegressor = "RegressorMatrix"
	opEvaluate  = "Evaluate"
)

// Model is a burst of n pulses starting at t0.
type Model struct {
	t0         float64
	n          int
	traceType  calib.TraceType
	timing     *timing.Timing
	pulseWidth float64
	delay      float64
	shape      pulse.Shape
	params     *pulse.Params

	tStart, tEnd float64
}

// New builds a model from the calibration entries of traceType.
//
// Errors:
//   - ErrNilCalibration for a nil cal.
//   - ErrNonFiniteT0, ErrPulseCount for bad t0 or n.
//   - calib.ErrUnknownTraceType, timing.ErrInvalidConfig and pulse errors
//     from an unusable calibration.
func New(t0 float64, n int, traceType calib.TraceType, cal *calib.Calibration, opts ...Option) (*Model, error) {
	if cal == nil {
		return nil, fmt.Errorf("%s: %w", opNew, ErrNilCalibration)
	}
	cfg := gatherOptions(opts...)

	tm, err := cal.TimingModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	delay, err := cal.Delay(traceType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	if cfg.delay != nil {
		delay = *cfg.delay
	}
	shape, err := cal.Shape(traceType, cfg.shapeOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	params, err := cal.ShapeParams(traceType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	m := &Model{
		traceType:  traceType,
		timing:     tm,
		pulseWidth: cal.PulseWidth,
		delay:      delay,
		shape:      shape,
		params:     params,
		n:          1,
	}
	if err = m.SetT0(t0); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	if err = m.SetNumPulses(n); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return m, nil
}

// T0 returns the burst reference time.
func (m *Model) T0() float64 { return m.t0 }

// SetT0 moves the burst and re-derives the window.
func (m *Model) SetT0(t0 float64) error {
	if math.IsNaN(t0) || math.IsInf(t0, 0) {
		return fmt.Errorf("SetT0(%g): %w", t0, ErrNonFiniteT0)
	}
	m.t0 = t0
	m.window()

	return nil
}

// NumPulses returns the pulse count.
func (m *Model) NumPulses() int { return m.n }

// SetNumPulses changes the pulse count and re-derives the window.
func (m *Model) SetNumPulses(n int) error {
	if n < 1 {
		return fmt.Errorf("SetNumPulses(%d): %w", n, ErrPulseCount)
	}
	m.n = n
	m.window()

	return nil
}

// SetShapeParams replaces the shape parameter vector. The count must match
// the shape (pulse.ErrParamCount otherwise); on error nothing changes.
func (m *Model) SetShapeParams(values ...float64) error {
	if err := m.params.Set(values...); err != nil {
		return fmt.Errorf("SetShapeParams: %w", err)
	}

	return nil
}

// ShapeParams returns a copy of the current shape parameters.
func (m *Model) ShapeParams() *pulse.Params { return m.params.Clone() }

// Shape returns the pulse shape evaluator.
func (m *Model) Shape() pulse.Shape { return m.shape }

// TraceType returns the trace type the model was built for.
func (m *Model) TraceType() calib.TraceType { return m.traceType }

// Delay returns the cable delay in effect.
func (m *Model) Delay() float64 { return m.delay }

// Window returns [t_start, t_end].
func (m *Model) Window() (tStart, tEnd float64) { return m.tStart, m.tEnd }

// TStart returns t0 − pulseWidth/2.
func (m *Model) TStart() float64 { return m.tStart }

// TEnd returns t_start + TimeFromStart(n).
func (m *Model) TEnd() float64 { return m.tEnd }

// Centers returns the absolute center time of each pulse.
func (m *Model) Centers() []float64 {
	out := make([]float64, m.n)
	base := m.t0 - m.delay
	for j := range out {
		off, _ := m.timing.TimeFromStart(j) // j >= 0
		out[j] = base + off
	}

	return out
}

// Restrict returns the part of tr inside the burst window.
func (m *Model) Restrict(tr *trace.Trace) (*trace.Trace, error) {
	return tr.Restrict(m.tStart, m.tEnd)
}

// RegressorMatrix samples every pulse at every time: entry (i, j) is the
// normalized shape of pulse j at times[i]. The matrix is built fresh on
// each call.
//
// Complexity: O(len(times)·n) shape evaluations.
func (m *Model) RegressorMatrix(times []float64) (*matrix.Dense, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("%s: %w", opRegressor, ErrNoSamples)
	}
	x, err := matrix.NewDense(len(times), m.n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opRegressor, err)
	}
	centers := m.Centers()
	data := x.RawData()
	var v float64
	for i, t := range times {
		row := data[i*m.n : (i+1)*m.n]
		for j, c := range centers {
			if v, err = m.shape.EvalNormalized(t-c, m.params); err != nil {
				return nil, fmt.Errorf("%s: sample %d pulse %d: %w", opRegressor, i, j, err)
			}
			row[j] = v
		}
	}

	return x, nil
}

// Evaluate returns the modeled waveform X·amplitudes at times.
//
// Errors:
//   - ErrAmplitudeCount when len(amplitudes) != NumPulses().
//   - RegressorMatrix errors.
func (m *Model) Evaluate(times, amplitudes []float64) ([]float64, error) {
	if len(amplitudes) != m.n {
		return nil, fmt.Errorf("%s: %d amplitudes for %d pulses: %w", opEvaluate, len(amplitudes), m.n, ErrAmplitudeCount)
	}
	x, err := m.RegressorMatrix(times)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEvaluate, err)
	}
	y, err := matrix.MatVec(x, amplitudes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEvaluate, err)
	}

	return y, nil
}

func (m *Model) window() {
	m.tStart = m.t0 - m.pulseWidth/2
	span, _ := m.timing.TimeFromStart(m.n) // n >= 1
	m.tEnd = m.tStart + span
}
