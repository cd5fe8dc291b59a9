// SPDX-License-Identifier: MIT

package calib

import (
	"fmt"
	"strings"
)

// TraceType selects the calibration (cable delay and shape parameters) that
// applies to a trace.
type TraceType int

const (
	// Pump is the laser pump signal.
	Pump TraceType = iota
	// Reflected is the signal reflected off the sample.
	Reflected
	// Transmitted is the signal transmitted through the sample.
	Transmitted
)

// TraceTypes lists every trace type in declaration order.
var TraceTypes = []TraceType{Pump, Reflected, Transmitted}

var traceTypeNames = [...]string{
	Pump:        "PUMP",
	Reflected:   "REFLECTED",
	Transmitted: "TRANSMITTED",
}

// Valid reports whether tt is a declared trace type.
func (tt TraceType) Valid() bool { return tt >= Pump && tt <= Transmitted }

// String returns "PUMP", "REFLECTED" or "TRANSMITTED".
func (tt TraceType) String() string {
	if !tt.Valid() {
		return fmt.Sprintf("TraceType(%d)", int(tt))
	}

	return traceTypeNames[tt]
}

// ParseTraceType accepts the String form in any letter case.
func ParseTraceType(s string) (TraceType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for tt, n := range traceTypeNames {
		if n == name {
			return TraceType(tt), nil
		}
	}

	return 0, fmt.Errorf("ParseTraceType(%q): %w", s, ErrUnknownTraceType)
}

// MarshalText implements encoding.TextMarshaler; JSON maps keyed by
// TraceType use it for their keys.
func (tt TraceType) MarshalText() ([]byte, error) {
	if !tt.Valid() {
		return nil, fmt.Errorf("MarshalText(%d): %w", int(tt), ErrUnknownTraceType)
	}

	return []byte(tt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (tt *TraceType) UnmarshalText(b []byte) error {
	v, err := ParseTraceType(string(b))
	if err != nil {
		return err
	}
	*tt = v

	return nil
}
