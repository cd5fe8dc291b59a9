// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"sync"

	"gonum.org/v1/plot"

	"github.com/katalvlaran/burstfit/align"
	"github.com/katalvlaran/burstfit/burst"
	"github.com/katalvlaran/burstfit/calib"
	"github.com/katalvlaran/burstfit/ingest"
	"github.com/katalvlaran/burstfit/regress"
	"github.com/katalvlaran/burstfit/report"
)

// DefaultSigma is the per-sample voltage uncertainty used for χ²: the
// largest pre-pulse reading of the June 2023 reference trace.
const DefaultSigma = 0.001167

// lagWindow bounds the DTW search used to estimate timing skew (s).
const lagWindow = 1e-9

// outputFlags are shared by every command that writes files.
type outputFlags struct {
	outDir      string
	force       bool
	verbose     bool
	calPath     string
	cableDelays bool
}

func (o *outputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&o.outDir, "o", ".", "output directory")
	fs.BoolVar(&o.force, "f", false, "overwrite existing output files")
	fs.BoolVar(&o.verbose, "v", false, "print fit summaries and timing diagnostics")
	fs.StringVar(&o.calPath, "cal", "", "calibration JSON file")
	fs.BoolVar(&o.cableDelays, "cable-delays", false, "use the measured cable delays instead of zero")
}

// fitFlags configure the regression of single and batch.
type fitFlags struct {
	solver    string
	threshold float64
	sigma     float64
	plot      bool
	record    string
}

func (f *fitFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.solver, "solver", regress.SolverQR.String(), "least-squares solver: qr or svd")
	fs.Float64Var(&f.threshold, "threshold", regress.DefaultThreshold, "minimum R² for an accepted fit")
	fs.Float64Var(&f.sigma, "sigma", DefaultSigma, "per-sample uncertainty in volts for χ²")
	fs.BoolVar(&f.plot, "plot", false, "save fit and residual plots (always saved for flagged fits)")
	fs.StringVar(&f.record, "record", "", "also write a JSON fit record to this file (.gz to compress)")
}

// app is the explicit context every command runs in.
type app struct {
	log     *log.Logger
	verbose bool
	cal     *calib.Calibration
	writer  *report.Writer

	solver    regress.Solver
	threshold float64
	sigma     float64
	plot      bool

	mu  sync.Mutex // guards out
	out io.Writer
}

// newApp loads the calibration and prepares the output directory.
func newApp(o outputFlags, stdout, stderr io.Writer) (*app, error) {
	a := &app{
		log:     log.New(stderr, "burstfit: ", log.LstdFlags),
		verbose: o.verbose,
		out:     stdout,
	}

	a.cal = calib.Default()
	if o.calPath != "" {
		cal, err := calib.Load(o.calPath)
		if err != nil {
			return nil, err
		}
		a.cal = cal
		a.log.Printf("Calibration loaded from '%s'", o.calPath)
	}
	if o.cableDelays {
		a.cal.UseMeasuredDelays()
	}

	w, err := report.NewWriter(o.outDir, o.force)
	if err != nil {
		return nil, err
	}
	a.writer = w

	return a, nil
}

// configureFit validates f and applies it to a.
func (a *app) configureFit(f fitFlags) error {
	solver, err := regress.ParseSolver(f.solver)
	if err != nil {
		return usageErrorf("%v", err)
	}
	if math.IsNaN(f.threshold) || f.threshold < 0 || f.threshold > 1 {
		return usageErrorf("-threshold %g must be in [0, 1]", f.threshold)
	}
	if !(f.sigma > 0) || math.IsInf(f.sigma, 0) {
		return usageErrorf("-sigma %g must be finite and > 0", f.sigma)
	}
	a.solver, a.threshold, a.sigma, a.plot = solver, f.threshold, f.sigma, f.plot

	return nil
}

// fitTrace loads one file, fits n pulses of type tt starting at t0 and
// gathers the diagnostics. A flagged fit is returned together with its
// *regress.QualityError; its plots are always saved.
func (a *app) fitTrace(path string, t0 float64, n int, tt calib.TraceType) (report.Fit, error) {
	name := ingest.BaseName(path)
	tr, err := ingest.Load(path)
	if err != nil {
		return report.Fit{}, err
	}
	a.log.Printf("Data loaded from '%s'", path)

	m, err := burst.New(t0, n, tt, a.cal)
	if err != nil {
		return report.Fit{}, err
	}
	window, err := m.Restrict(tr)
	if err != nil {
		return report.Fit{}, err
	}

	f := regress.New(
		regress.WithName(name),
		regress.WithSolver(a.solver),
		regress.WithThreshold(a.threshold),
	)
	res, fitErr := f.Fit(window, m)
	var qe *regress.QualityError
	if fitErr != nil && !errors.As(fitErr, &qe) {
		return report.Fit{}, fitErr
	}

	fit := report.Fit{Result: res}
	if chi, err := f.ChiSquared(regress.Uniform(res.NumSamples, a.sigma)); err != nil {
		a.log.Printf("%s: χ² unavailable: %v", name, err)
	} else {
		fit.Chi = &chi
	}
	if a.verbose {
		if lag, err := timingLag(res); err != nil {
			a.log.Printf("%s: timing lag unavailable: %v", name, err)
		} else {
			fit.Lag = &lag
		}
		a.printFit(fit)
	}
	if a.plot || qe != nil {
		a.savePlots(res)
	}

	if qe != nil {
		fit.Error = qe.Error()
		a.log.Print(qe)
		return fit, fitErr
	}
	a.log.Printf("Trace %s fit with R²=%.4f", name, res.RSquared)

	return fit, nil
}

// timingLag aligns the fitted burst onto the measured samples of res.
func timingLag(res *regress.Result) (float64, error) {
	step := sampleStep(res)
	if step <= 0 {
		return 0, fmt.Errorf("%d samples: %w", len(res.Times), align.ErrBadInput)
	}
	window := int(math.Ceil(lagWindow / step))

	return align.Lag(res.Observed, res.Fitted, step, window)
}

// printFit writes the summary of one fit to the command output.
func (a *app) printFit(fit report.Fit) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fmt.Fprintln(a.out)
	if err := fit.Result.WriteSummary(a.out, fit.Chi); err != nil {
		a.log.Printf("summary: %v", err)
	}
	if fit.Lag != nil {
		fmt.Fprintf(a.out, "Timing lag: %+.3f ns\n", *fit.Lag*1e9)
		if step := sampleStep(fit.Result); step > 0 && math.Abs(*fit.Lag) > step {
			fmt.Fprintf(a.out, "Warning: lag exceeds one sample (%.3f ns); t0 may be mis-registered\n", step*1e9)
		}
	}
	fmt.Fprintln(a.out)
}

// sampleStep is the mean sample spacing of res, 0 with fewer than two samples.
func sampleStep(res *regress.Result) float64 {
	if len(res.Times) < 2 {
		return 0
	}

	return (res.Times[len(res.Times)-1] - res.Times[0]) / float64(len(res.Times)-1)
}

// savePlots writes "<name>-fit.png" and "<name>-residuals.png". Failures are
// logged; they never fail the fit.
func (a *app) savePlots(res *regress.Result) {
	for suffix, build := range map[string]func(*regress.Result) (*plot.Plot, error){
		"-fit.png":       report.PlotFit,
		"-residuals.png": report.PlotResiduals,
	} {
		p, err := build(res)
		if err != nil {
			a.log.Printf("%s: plot: %v", res.Name, err)
			continue
		}
		path, err := a.writer.SavePlot(res.Name+suffix, p)
		if err != nil {
			a.log.Printf("%s: plot: %v", res.Name, err)
			continue
		}
		a.log.Printf("Plot saved to '%s'", path)
	}
}
