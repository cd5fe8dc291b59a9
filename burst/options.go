// SPDX-License-Identifier: MIT

package burst

import (
	"math"

	"github.com/katalvlaran/burstfit/pulse"
)

// Option customizes a Model at construction.
type Option func(*config)

type config struct {
	shapeOpts []pulse.Option
	delay     *float64
}

// WithFastMode builds the pulse shape without evaluation checks.
func WithFastMode() Option {
	return func(c *config) { c.shapeOpts = append(c.shapeOpts, pulse.WithFastMode()) }
}

// WithDelay overrides the calibration's cable delay for this model.
// Panics on a non-finite delay.
func WithDelay(d float64) Option {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		panic("burst: WithDelay: delay must be finite")
	}

	return func(c *config) { c.delay = &d }
}

func gatherOptions(opts ...Option) config {
	var c config
	for _, set := range opts {
		set(&c)
	}

	return c
}
