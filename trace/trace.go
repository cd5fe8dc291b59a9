// SPDX-License-Identifier: MIT

// Package trace holds a measured time series: paired time and value samples
// with unit labels. A Trace never changes after New; Restrict returns a new,
// independent Trace.
package trace

import (
	"fmt"
	"iter"
	"math"

	"github.com/katalvlaran/burstfit/fiterr"
)

// Default unit labels.
const (
	DefaultTimeUnit  = "s"
	DefaultValueUnit = "V"
)

var (
	// ErrLengthMismatch indicates time and value slices of different length.
	ErrLengthMismatch = fiterr.New(fiterr.ErrShapeMismatch, "trace: times and values differ in length")

	// ErrNonFinite indicates a NaN or ±Inf sample.
	ErrNonFinite = fiterr.New(fiterr.ErrDomain, "trace: non-finite sample")

	// ErrInterval indicates a restriction interval that is not finite or has start > end.
	ErrInterval = fiterr.New(fiterr.ErrDomain, "trace: invalid interval")

	// ErrIndex indicates a sample index outside [0, Len()).
	ErrIndex = fiterr.New(fiterr.ErrDomain, "trace: index out of range")
)

// Option configures a Trace at construction.
type Option func(*Trace)

// WithUnits overrides the time and value unit labels.
func WithUnits(timeUnit, valueUnit string) Option {
	return func(t *Trace) {
		t.timeUnit, t.valueUnit = timeUnit, valueUnit
	}
}

// WithName labels the trace; fit errors and reports use it.
func WithName(name string) Option {
	return func(t *Trace) { t.name = name }
}

// Trace is an immutable series of (time, value) samples.
type Trace struct {
	times, values       []float64
	timeUnit, valueUnit string
	name                string
}

// New copies times and values into a Trace. Both slices must have equal
// length and hold only finite numbers.
func New(times, values []float64, opts ...Option) (*Trace, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("New: %d times, %d values: %w", len(times), len(values), ErrLengthMismatch)
	}
	for i := range times {
		if !finite(times[i]) || !finite(values[i]) {
			return nil, fmt.Errorf("New: sample %d (%g, %g): %w", i, times[i], values[i], ErrNonFinite)
		}
	}
	t := &Trace{
		times:     append([]float64(nil), times...),
		values:    append([]float64(nil), values...),
		timeUnit:  DefaultTimeUnit,
		valueUnit: DefaultValueUnit,
	}
	for _, set := range opts {
		set(t)
	}

	return t, nil
}

// Restrict returns the samples whose time lies in the closed interval
// [tStart, tEnd], in their original order. Units and name carry over.
func (t *Trace) Restrict(tStart, tEnd float64) (*Trace, error) {
	if !finite(tStart) || !finite(tEnd) || tStart > tEnd {
		return nil, fmt.Errorf("Restrict(%g, %g): %w", tStart, tEnd, ErrInterval)
	}
	out := &Trace{timeUnit: t.timeUnit, valueUnit: t.valueUnit, name: t.name}
	for i, ts := range t.times {
		if ts >= tStart && ts <= tEnd {
			out.times = append(out.times, ts)
			out.values = append(out.values, t.values[i])
		}
	}

	return out, nil
}

// Len returns the sample count.
func (t *Trace) Len() int { return len(t.times) }

// Times returns a copy of the time samples.
func (t *Trace) Times() []float64 { return append([]float64(nil), t.times...) }

// Values returns a copy of the value samples.
func (t *Trace) Values() []float64 { return append([]float64(nil), t.values...) }

// At returns sample i.
func (t *Trace) At(i int) (time, value float64, err error) {
	if i < 0 || i >= len(t.times) {
		return 0, 0, fmt.Errorf("At(%d): %w", i, ErrIndex)
	}

	return t.times[i], t.values[i], nil
}

// All yields every (time, value) pair in order.
func (t *Trace) All() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i, ts := range t.times {
			if !yield(ts, t.values[i]) {
				return
			}
		}
	}
}

// TimeUnit returns the time unit label.
func (t *Trace) TimeUnit() string { return t.timeUnit }

// ValueUnit returns the value unit label.
func (t *Trace) ValueUnit() string { return t.valueUnit }

// Name returns the trace label, empty if unset.
func (t *Trace) Name() string { return t.name }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
