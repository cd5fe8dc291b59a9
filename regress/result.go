// SPDX-License-Identifier: MIT

package regress

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/burstfit/calib"
)

// Result is one completed fit. It is not modified after Fit returns.
type Result struct {
	Name      string          `json:"name"`
	TraceType calib.TraceType `json:"trace_type"`
	T0        float64         `json:"t0"`
	TStart    float64         `json:"t_start"`
	TEnd      float64         `json:"t_end"`
	Solver    string          `json:"solver"`

	Amplitudes []float64 `json:"amplitudes"`
	Times      []float64 `json:"times"`
	Observed   []float64 `json:"observed"`
	Fitted     []float64 `json:"fitted"`
	Residuals  []float64 `json:"residuals"`

	NumSamples int `json:"num_samples"`
	NumPulses  int `json:"num_pulses"`
	Rank       int `json:"rank"`
	// DoF is the residual degrees of freedom, NumSamples − Rank.
	DoF int `json:"dof"`

	RSquared    float64 `json:"r_squared"`
	AdjRSquared float64 `json:"adj_r_squared"`
	Threshold   float64 `json:"threshold"`
	RejectFloor float64 `json:"reject_floor"`
}

// Accepted reports whether R² reached the acceptance threshold.
func (r *Result) Accepted() bool { return r.RSquared >= r.Threshold }

// Summary renders the fit as an aligned text table.
func (r *Result) Summary() string {
	var sb strings.Builder
	_ = r.WriteSummary(&sb, nil)

	return sb.String()
}

// WriteSummary writes the table to w, followed by χ² statistics when chi
// is non-nil.
func (r *Result) WriteSummary(w io.Writer, chi *ChiStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	name := r.Name
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(tw, "Burst fit\t%s\n", name)
	fmt.Fprintf(tw, "Trace type\t%s\n", r.TraceType)
	fmt.Fprintf(tw, "Solver\t%s\n", r.Solver)
	fmt.Fprintf(tw, "t0 (s)\t%.6e\n", r.T0)
	fmt.Fprintf(tw, "Window (s)\t[%.6e, %.6e]\n", r.TStart, r.TEnd)
	fmt.Fprintf(tw, "Samples\t%d\n", r.NumSamples)
	fmt.Fprintf(tw, "Pulses\t%d\n", r.NumPulses)
	fmt.Fprintf(tw, "Rank\t%d\n", r.Rank)
	fmt.Fprintf(tw, "Df residuals\t%d\n", r.DoF)
	fmt.Fprintf(tw, "R²\t%.6f\n", r.RSquared)
	fmt.Fprintf(tw, "Adj. R²\t%.6f\n", r.AdjRSquared)
	status := "accepted"
	switch {
	case r.RSquared < r.RejectFloor:
		status = "rejected"
	case !r.Accepted():
		status = "flagged"
	}
	fmt.Fprintf(tw, "Quality\t%s (threshold %.2f)\n", status, r.Threshold)
	if chi != nil {
		fmt.Fprintf(tw, "Red. χ²\t%.2e\n", chi.Reduced)
		fmt.Fprintf(tw, "p-value\t%.2e\n", chi.PValue)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Pulse\tAmplitude (V)")
	for j, a := range r.Amplitudes {
		fmt.Fprintf(tw, "%d\t%.6e\n", j, a)
	}

	return tw.Flush()
}
