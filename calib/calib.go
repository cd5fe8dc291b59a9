// SPDX-License-Identifier: MIT

package calib

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/burstfit/fiterr"
	"github.com/katalvlaran/burstfit/pulse"
	"github.com/katalvlaran/burstfit/timing"
)

// Bench constants measured on May 31, 2023. All values are in seconds.
const (
	Period = 18.885e-9

	Delta1 = 4.98375e-9
	Delta2 = 4.73250e-9
	Delta3 = 4.40375e-9
	Delta4 = 4.76500e-9

	// PulseWidth is the approximate width of a pulse as seen on the scope.
	// The laser pulse itself is far shorter; the scope bandwidth stretches it.
	PulseWidth = 4.72e-9

	// ReflectDelay is the measured cable delay of the reflected signal
	// relative to the pump.
	ReflectDelay = 1.819e-9

	// TransmitDelay is the measured delay of the transmitted signal relative
	// to the pump (cable length plus inter-scope triggering).
	TransmitDelay = -2.88e-9
)

var (
	// ErrInvalid indicates a calibration that fails Validate.
	ErrInvalid = fiterr.New(fiterr.ErrDomain, "calib: invalid calibration")

	// ErrUnknownTraceType indicates a trace type name or value outside the declared set.
	ErrUnknownTraceType = fiterr.New(fiterr.ErrDomain, "calib: unknown trace type")

	// ErrFileFormat indicates a calibration or parameter file that cannot be parsed.
	ErrFileFormat = errors.New("calib: malformed file")
)

// ShapeConfig names a pulse-shape family and its parameter vector.
type ShapeConfig struct {
	Kind   pulse.Kind `json:"kind"`
	Params []float64  `json:"params"`
}

// Calibration holds every constant the burst model needs.
type Calibration struct {
	Timing     timing.Config             `json:"timing"`
	PulseWidth float64                   `json:"pulse_width"`
	Delays     map[TraceType]float64     `json:"delays"`
	Shapes     map[TraceType]ShapeConfig `json:"shapes"`
}

// Default returns the bench calibration: May 2023 timing, zero effective
// cable delays and nominal DET10A Gaussian-exponential parameters for every
// trace type. The measured delays are available through UseMeasuredDelays.
func Default() *Calibration {
	c := &Calibration{
		Timing: timing.Config{
			Period: Period,
			Deltas: [timing.GroupSize]float64{Delta1, Delta2, Delta3, Delta4},
		},
		PulseWidth: PulseWidth,
		Delays:     make(map[TraceType]float64, len(TraceTypes)),
		Shapes:     make(map[TraceType]ShapeConfig, len(TraceTypes)),
	}
	for _, tt := range TraceTypes {
		c.Delays[tt] = 0
		c.Shapes[tt] = ShapeConfig{
			Kind:   pulse.GaussianExpKind,
			Params: []float64{pulse.DefaultSigma, pulse.DefaultLambda},
		}
	}

	return c
}

// UseMeasuredDelays replaces the effective cable delays with the measured
// ReflectDelay and TransmitDelay (pump stays at zero).
func (c *Calibration) UseMeasuredDelays() {
	if c.Delays == nil {
		c.Delays = make(map[TraceType]float64, len(TraceTypes))
	}
	c.Delays[Pump] = 0
	c.Delays[Reflected] = ReflectDelay
	c.Delays[Transmitted] = TransmitDelay
}

// Validate checks timing, pulse width, and that every trace type carries a
// finite delay and a constructible shape parameter set.
func (c *Calibration) Validate() error {
	if err := c.Timing.Validate(); err != nil {
		return fmt.Errorf("timing: %w: %w", ErrInvalid, err)
	}
	if !(c.PulseWidth > 0) || math.IsInf(c.PulseWidth, 0) {
		return fmt.Errorf("pulse_width %g must be finite and > 0: %w", c.PulseWidth, ErrInvalid)
	}
	for _, tt := range TraceTypes {
		d, ok := c.Delays[tt]
		if !ok {
			return fmt.Errorf("delays: missing %s: %w", tt, ErrInvalid)
		}
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("delays: %s = %g: %w", tt, d, ErrInvalid)
		}
		sc, ok := c.Shapes[tt]
		if !ok {
			return fmt.Errorf("shapes: missing %s: %w", tt, ErrInvalid)
		}
		if err := validateShape(sc.Kind, sc.Params); err != nil {
			return fmt.Errorf("shapes: %s: %w", tt, err)
		}
	}

	return nil
}

// TimingModel builds the timing model from c.Timing.
func (c *Calibration) TimingModel() (*timing.Timing, error) {
	return timing.New(c.Timing)
}

// Delay returns the effective cable delay for tt.
func (c *Calibration) Delay(tt TraceType) (float64, error) {
	d, ok := c.Delays[tt]
	if !tt.Valid() || !ok {
		return 0, fmt.Errorf("Delay(%s): %w", tt, ErrUnknownTraceType)
	}

	return d, nil
}

// ShapeParams returns a fresh parameter set for tt.
func (c *Calibration) ShapeParams(tt TraceType) (*pulse.Params, error) {
	sc, ok := c.Shapes[tt]
	if !tt.Valid() || !ok {
		return nil, fmt.Errorf("ShapeParams(%s): %w", tt, ErrUnknownTraceType)
	}

	return pulse.NewParams(sc.Kind, sc.Params...)
}

// Shape returns the shape evaluator configured for tt.
func (c *Calibration) Shape(tt TraceType, opts ...pulse.Option) (pulse.Shape, error) {
	sc, ok := c.Shapes[tt]
	if !tt.Valid() || !ok {
		return nil, fmt.Errorf("Shape(%s): %w", tt, ErrUnknownTraceType)
	}

	return pulse.New(sc.Kind, opts...)
}

// Clone returns a deep copy.
func (c *Calibration) Clone() *Calibration {
	cp := *c
	cp.Delays = make(map[TraceType]float64, len(c.Delays))
	for k, v := range c.Delays {
		cp.Delays[k] = v
	}
	cp.Shapes = make(map[TraceType]ShapeConfig, len(c.Shapes))
	for k, v := range c.Shapes {
		cp.Shapes[k] = ShapeConfig{Kind: v.Kind, Params: append([]float64(nil), v.Params...)}
	}

	return &cp
}

func validateShape(kind pulse.Kind, values []float64) error {
	if _, err := pulse.NewParams(kind, values...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}
