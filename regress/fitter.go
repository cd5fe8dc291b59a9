// SPDX-License-Identifier: MIT

package regress

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/burstfit/burst"
	"github.com/katalvlaran/burstfit/matrix"
	"github.com/katalvlaran/burstfit/trace"
)

const opFit = "Fit"

// Fitter runs burst regressions and remembers the most recent Result.
type Fitter struct {
	cfg  config
	last *Result
}

// New returns a Fitter configured by opts.
func New(opts ...Option) *Fitter {
	return &Fitter{cfg: gatherOptions(opts...)}
}

// Threshold returns the acceptance threshold in effect.
func (f *Fitter) Threshold() float64 { return f.cfg.threshold }

// Last returns the most recent Result, or nil before the first Fit.
// A Result rejected by the quality gate is still recorded.
func (f *Fitter) Last() *Result { return f.last }

// Fit estimates one amplitude per pulse of m from the samples of tr.
// Callers normally restrict tr to the model window first (burst.Model.Restrict).
//
// Implementation:
//   - Stage 1: build X = m.RegressorMatrix(tr.Times()).
//   - Stage 2: solve min ||y − X·a||² with the configured solver.
//   - Stage 3: fitted = X·a, residuals = y − fitted, R², adjusted R².
//   - Stage 4: record the Result; gate on the threshold.
//
// Errors:
//   - ErrNilInput, ErrTooFewSamples (samples <= pulses).
//   - burst and matrix errors (non-finite samples, rank deficiency under QR).
//   - ErrConstantObserved for a flat trace.
//   - *QualityError together with a non-nil Result when R² < threshold.
func (f *Fitter) Fit(tr *trace.Trace, m *burst.Model) (*Result, error) {
	if tr == nil || m == nil {
		return nil, fmt.Errorf("%s: %w", opFit, ErrNilInput)
	}
	n, k := tr.Len(), m.NumPulses()
	if n <= k {
		return nil, fmt.Errorf("%s: %d samples for %d pulses: %w", opFit, n, k, ErrTooFewSamples)
	}
	name := f.cfg.name
	if name == "" {
		name = tr.Name()
	}
	times, y := tr.Times(), tr.Values()

	x, err := m.RegressorMatrix(times)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", opFit, name, err)
	}
	amps, rank, err := solve(x, y, f.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", opFit, name, err)
	}
	fitted, err := matrix.MatVec(x, amps)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", opFit, name, err)
	}
	resid := make([]float64, n)
	floats.SubTo(resid, y, fitted)

	r2, err := RSquared(y, fitted)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", opFit, name, err)
	}
	adj, err := AdjustedRSquared(y, fitted, k)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", opFit, name, err)
	}

	tStart, tEnd := m.Window()
	res := &Result{
		Name:        name,
		TraceType:   m.TraceType(),
		T0:          m.T0(),
		TStart:      tStart,
		TEnd:        tEnd,
		Solver:      f.cfg.solver.String(),
		Amplitudes:  amps,
		Times:       times,
		Observed:    y,
		Fitted:      fitted,
		Residuals:   resid,
		NumSamples:  n,
		NumPulses:   k,
		Rank:        rank,
		DoF:         n - rank,
		RSquared:    r2,
		AdjRSquared: adj,
		Threshold:   f.cfg.threshold,
		RejectFloor: f.cfg.rejectFloor,
	}
	f.last = res

	if !res.Accepted() {
		return res, &QualityError{
			Name:        name,
			RSquared:    r2,
			Threshold:   f.cfg.threshold,
			RejectFloor: f.cfg.rejectFloor,
			Severe:      r2 < f.cfg.rejectFloor,
			Result:      res,
		}
	}

	return res, nil
}

// ChiSquared evaluates the last fit against per-sample uncertainties.
//
// Errors:
//   - ErrNoFit before the first Fit.
//   - ChiSquared errors (length mismatch, bad σ, zero dof).
func (f *Fitter) ChiSquared(sigmas []float64) (ChiStats, error) {
	if f.last == nil {
		return ChiStats{}, fmt.Errorf("Fitter.ChiSquared: %w", ErrNoFit)
	}

	return ChiSquared(f.last.Residuals, sigmas, f.last.DoF)
}
