// SPDX-License-Identifier: MIT

// Package ingest turns instrument files into trace.Trace values.
//
// A Loader owns one file format. Load picks the loader registered for the
// file's extension, so callers never branch on formats themselves:
//
//	tr, err := ingest.Load("C1trc00000.csv.gz")
//
// Supported formats:
//   - LeCroy oscilloscope CSV export (".csv"), five header lines followed by
//     "time,amplitude" rows in seconds and volts.
//   - The same, gzip-compressed (".csv.gz").
package ingest
