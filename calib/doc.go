// SPDX-License-Identifier: MIT

// Package calib supplies the physical constants and per-trace-type pulse
// parameters that the burst model consumes.
//
// A Calibration bundles the group timing, the nominal on-scope pulse width,
// a cable delay per trace type and a pulse-shape parameter set per trace type.
// Default returns the May 31, 2023 bench values; Load overlays a JSON file on
// top of those defaults; ApplyParamFile reads the legacy one-header-line text
// format of a single shape parameter set.
package calib
