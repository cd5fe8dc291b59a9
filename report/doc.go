// SPDX-License-Identifier: MIT

// Package report persists fit outcomes.
//
// A Writer owns one output directory and one run identifier. Every file it
// creates is refused if it already exists unless the Writer was built with
// force=true, so a rerun never silently replaces earlier amplitudes:
//
//	w, err := report.NewWriter("out", false)
//	path, err := w.WriteAmplitudes("C1trc00000", res.Amplitudes)
//
// Outputs:
//   - amplitude CSVs, one column per trace with a header row of trace names;
//   - JSON fit records (optionally gzip-compressed) holding full Results,
//     readable back with ReadRecord;
//   - fit and residual plots (PNG, SVG or PDF by file extension).
package report
