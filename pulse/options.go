// SPDX-License-Identifier: MIT

package pulse

// Option configures a Shape at construction.
type Option func(*shapeConfig)

type shapeConfig struct {
	fast bool
}

// WithFastMode disables input, result and parameter-kind validation during
// evaluation. Non-finite inputs then propagate as NaN or ±Inf.
func WithFastMode() Option {
	return func(c *shapeConfig) { c.fast = true }
}

func gatherOptions(opts ...Option) shapeConfig {
	var c shapeConfig
	for _, set := range opts {
		set(&c)
	}

	return c
}
