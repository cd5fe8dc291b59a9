// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/burstfit/regress"
)

// Plot canvas size.
const (
	PlotWidth  = 10 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// ErrEmptyResult indicates a Result without samples to plot.
var ErrEmptyResult = errors.New("report: result has no samples")

var (
	measuredColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fittedColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// nanoseconds converts a time axis in seconds to plot points in ns.
func nanoseconds(times, ys []float64) plotter.XYs {
	xy := make(plotter.XYs, len(times))
	for i := range xy {
		xy[i].X = times[i] * 1e9
		xy[i].Y = ys[i]
	}

	return xy
}

// PlotFit draws the measured samples of res as points and the fitted burst
// as a line over the fit window.
func PlotFit(res *regress.Result) (*plot.Plot, error) {
	if res == nil || len(res.Times) == 0 {
		return nil, ErrEmptyResult
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s) R² = %.4f", res.Name, res.TraceType, res.RSquared)
	p.X.Label.Text = "Time (ns)"
	p.Y.Label.Text = "Signal (V)"
	p.Add(plotter.NewGrid())

	pts, err := plotter.NewScatter(nanoseconds(res.Times, res.Observed))
	if err != nil {
		return nil, err
	}
	pts.GlyphStyle.Color = measuredColor
	pts.GlyphStyle.Radius = vg.Points(1.5)

	fit, err := plotter.NewLine(nanoseconds(res.Times, res.Fitted))
	if err != nil {
		return nil, err
	}
	fit.Color = fittedColor
	fit.Width = vg.Points(1)

	p.Add(pts, fit)
	p.Legend.Add("measured", pts)
	p.Legend.Add("fit", fit)
	p.Legend.Top = true

	return p, nil
}

// PlotResiduals draws observed − fitted against time with a zero line.
func PlotResiduals(res *regress.Result) (*plot.Plot, error) {
	if res == nil || len(res.Times) == 0 {
		return nil, ErrEmptyResult
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s residuals", res.Name)
	p.X.Label.Text = "Time (ns)"
	p.Y.Label.Text = "Residual (V)"
	p.Add(plotter.NewGrid())

	pts, err := plotter.NewScatter(nanoseconds(res.Times, res.Residuals))
	if err != nil {
		return nil, err
	}
	pts.GlyphStyle.Color = measuredColor
	pts.GlyphStyle.Radius = vg.Points(1.5)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = fittedColor
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(pts, zero)

	return p, nil
}

// SavePlot renders p into the Writer's directory; the format follows the
// extension of file (png, svg, pdf, ...).
func (w *Writer) SavePlot(file string, p *plot.Plot) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return "", fmt.Errorf("SavePlot(%s): %w", file, err)
	}
	f, err := w.create(file)
	if err != nil {
		return "", err
	}
	_, err = wt.WriteTo(f)
	if err = errors.Join(err, f.Close()); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}

	return f.Name(), nil
}
