// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/burstfit/burst"
	"github.com/katalvlaran/burstfit/calib"
	"github.com/katalvlaran/burstfit/ingest"
	"github.com/katalvlaran/burstfit/report"
	"github.com/katalvlaran/burstfit/synth"
)

func newFlagSet(name, synopsis string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: burstfit %s %s\n\nFlags:\n", name, synopsis)
		fs.PrintDefaults()
	}

	return fs
}

// writeRecord persists fits when -record was given.
func (a *app) writeRecord(file string, fits []report.Fit) error {
	if file == "" {
		return nil
	}
	rec := a.writer.NewRecord(a.cal)
	for _, f := range fits {
		if f.Result != nil {
			rec.Fits = append(rec.Fits, f)
		}
	}
	if len(rec.Fits) == 0 {
		return nil
	}
	path, err := a.writer.WriteRecord(file, rec)
	if err != nil {
		return err
	}
	a.log.Printf("Fit record saved to '%s'", path)

	return nil
}

// runSingle fits one trace and saves "<name>-amplitudes.csv".
func runSingle(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("single", "[flags] -t0 T0 -n N -type TYPE trace.csv[.gz]", stderr)
	var (
		of outputFlags
		ff fitFlags
	)
	of.register(fs)
	ff.register(fs)
	t0 := fs.Float64("t0", math.NaN(), "center of the first pulse in seconds (required)")
	n := fs.Int("n", 0, "number of pulses in the burst (required)")
	typeName := fs.String("type", "", "trace type: PUMP, REFLECTED or TRANSMITTED (required)")
	params := fs.String("params", "", "legacy pulse parameter file for this trace type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return usageErrorf("expected one trace file, got %d arguments", fs.NArg())
	}
	if math.IsNaN(*t0) {
		return usageErrorf("-t0 is required")
	}
	tt, err := calib.ParseTraceType(*typeName)
	if err != nil {
		return usageErrorf("-type: %v", err)
	}

	a, err := newApp(of, stdout, stderr)
	if err != nil {
		return err
	}
	if err := a.configureFit(ff); err != nil {
		return err
	}
	if *params != "" {
		if err := a.cal.ApplyParamFile(tt, *params); err != nil {
			return err
		}
	}

	path := fs.Arg(0)
	a.log.Printf("Initiating single fit from '%s'", path)
	fit, fitErr := a.fitTrace(path, *t0, *n, tt)
	if fit.Result != nil {
		fmt.Fprintf(stdout, "Fit produced with R^2=%.6f\n", fit.Result.RSquared)
	}
	if err := a.writeRecord(ff.record, []report.Fit{fit}); err != nil {
		return errors.Join(fitErr, err)
	}
	if fitErr != nil {
		return fitErr
	}

	out, err := a.writer.WriteAmplitudes(ingest.BaseName(path), fit.Result.Amplitudes)
	if err != nil {
		return err
	}
	a.log.Printf("Amplitudes saved to '%s'", out)

	return nil
}

// runBatch fits every manifest entry in parallel and saves one amplitude
// column per trace to "trace-amplitudes.csv".
func runBatch(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("batch", "[flags] -n N (-t0 T0 | -m) manifest.csv", stderr)
	var (
		of outputFlags
		ff fitFlags
	)
	of.register(fs)
	ff.register(fs)
	t0 := fs.Float64("t0", math.NaN(), "center of the first pulse in seconds, for every trace")
	fromManifest := fs.Bool("m", false, "read per-trace t0 from the third manifest column")
	n := fs.Int("n", 0, "number of pulses in each burst (required)")
	dataDir := fs.String("data", ".", "directory holding the trace files")
	jobs := fs.Int("j", runtime.NumCPU(), "number of traces fitted concurrently")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return usageErrorf("expected one manifest file, got %d arguments", fs.NArg())
	}
	switch {
	case *fromManifest && !math.IsNaN(*t0):
		return usageErrorf("cannot take t0 from the manifest (-m) and the command line (-t0) at the same time")
	case !*fromManifest && math.IsNaN(*t0):
		return usageErrorf("pass t0 either from the manifest (-m) or the command line (-t0)")
	}
	if *jobs < 1 {
		return usageErrorf("-j %d must be >= 1", *jobs)
	}

	entries, err := readManifest(fs.Arg(0), *fromManifest)
	if err != nil {
		return err
	}
	a, err := newApp(of, stdout, stderr)
	if err != nil {
		return err
	}
	if err := a.configureFit(ff); err != nil {
		return err
	}
	a.log.Printf("Fitting batch of %d traces from %s", len(entries), *dataDir)

	fits := make([]report.Fit, len(entries))
	var done atomic.Int64
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*jobs)
	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := *t0
			if *fromManifest {
				start = e.t0
			}
			fit, err := a.fitTrace(filepath.Join(*dataDir, e.file), start, *n, e.traceType)
			fits[i] = fit
			if err != nil {
				return fmt.Errorf("%s: %w", e.file, err)
			}
			a.log.Printf("Fit %d / %d completed.", done.Add(1), len(entries))

			return nil
		})
	}
	fitErr := g.Wait()

	if err := a.writeRecord(ff.record, fits); err != nil {
		return errors.Join(fitErr, err)
	}
	if fitErr != nil {
		return fitErr
	}

	names := make([]string, len(entries))
	columns := make([][]float64, len(entries))
	for i, e := range entries {
		names[i] = e.file
		columns[i] = fits[i].Result.Amplitudes
	}
	out, err := a.writer.WriteAmplitudeTable("trace-amplitudes.csv", names, columns)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d fits completed\n", len(entries))
	a.log.Printf("Amplitudes saved to '%s'", out)

	return nil
}

// DefaultSimT0 is the first pulse center of simulated traces (s).
const DefaultSimT0 = 10e-9

// runSimulate writes a synthetic burst as a LeCroy CSV plus a
// "<name>-truth-amplitudes.csv" holding the amplitudes it was built from.
func runSimulate(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("simulate", "[flags] -n N -type TYPE out.csv[.gz]", stderr)
	var of outputFlags
	of.register(fs)
	t0 := fs.Float64("t0", DefaultSimT0, "center of the first pulse in seconds")
	n := fs.Int("n", 0, "number of pulses in the burst (required)")
	typeName := fs.String("type", calib.Pump.String(), "trace type: PUMP, REFLECTED or TRANSMITTED")
	ampList := fs.String("amps", "", "comma-separated amplitudes in volts (random when empty)")
	noise := fs.Float64("noise", synth.DefaultNoiseSigma, "Gaussian noise sigma in volts (0 for none)")
	seed := fs.Int64("seed", synth.DefaultSeed, "random seed for amplitudes and noise")
	rate := fs.Float64("rate", synth.DefaultSampleRate, "sample rate in samples per second")
	tMin := fs.Float64("tmin", synth.DefaultSpanStart, "first sample time in seconds")
	tMax := fs.Float64("tmax", synth.DefaultSpanEnd, "last sample time in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return usageErrorf("expected one output file name, got %d arguments", fs.NArg())
	}
	tt, err := calib.ParseTraceType(*typeName)
	if err != nil {
		return usageErrorf("-type: %v", err)
	}
	switch {
	case !(*rate > 0) || math.IsInf(*rate, 0):
		return usageErrorf("-rate %g must be finite and > 0", *rate)
	case !(*tMax > *tMin) || math.IsInf(*tMin, 0) || math.IsInf(*tMax, 0):
		return usageErrorf("need finite -tmin < -tmax, got %g, %g", *tMin, *tMax)
	case !(*noise >= 0) || math.IsInf(*noise, 0):
		return usageErrorf("-noise %g must be finite and >= 0", *noise)
	}

	a, err := newApp(of, stdout, stderr)
	if err != nil {
		return err
	}
	m, err := burst.New(*t0, *n, tt, a.cal)
	if err != nil {
		return err
	}

	file := fs.Arg(0)
	name := ingest.BaseName(file)
	opts := []synth.Option{
		synth.WithSeed(*seed),
		synth.WithSampleRate(*rate),
		synth.WithSpan(*tMin, *tMax),
		synth.WithNoise(*noise),
		synth.WithName(name),
	}
	amps := synth.MockAmplitudes(*n, opts...)
	if *ampList != "" {
		if amps, err = parseFloats(*ampList); err != nil {
			return usageErrorf("-amps: %v", err)
		}
	}
	tr, err := synth.BuildTrace(m, amps, opts...)
	if err != nil {
		return err
	}

	path, err := a.writer.WriteTrace(file, tr)
	if err != nil {
		return err
	}
	truth, err := a.writer.WriteAmplitudes(name+"-truth", amps)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Simulated %d-pulse %s trace written to %s\n", *n, tt, path)
	a.log.Printf("True amplitudes saved to '%s'", truth)

	return nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// runShow prints the fits of a record and optionally re-plots them.
func runShow(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("show", "[flags] record.json[.gz]", stderr)
	traceName := fs.String("t", "", "show only the named trace")
	verbose := fs.Bool("v", false, "print full fit summaries")
	plotFits := fs.Bool("plot", false, "save fit and residual plots")
	outDir := fs.String("o", ".", "output directory for plots")
	force := fs.Bool("f", false, "overwrite existing plots")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("expected one record file, got %d arguments", fs.NArg())
	}

	rec, err := report.ReadRecord(fs.Arg(0))
	if err != nil {
		return err
	}
	var fits []report.Fit
	for _, f := range rec.Fits {
		if f.Result != nil {
			fits = append(fits, f)
		}
	}
	if *traceName != "" {
		fit, ok := rec.Find(*traceName)
		if !ok {
			return fmt.Errorf("trace %q not in %s", *traceName, fs.Arg(0))
		}
		fits = []report.Fit{fit}
	}

	a := &app{log: log.New(stderr, "burstfit: ", log.LstdFlags), verbose: *verbose, out: stdout}
	if *plotFits {
		if a.writer, err = report.NewWriter(*outDir, *force); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Run %s (%s), %d fits\n", rec.RunID, rec.Created.Format(time.RFC3339), len(fits))
	if !a.verbose {
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Trace\tType\tPulses\tR²\tStatus")
		for _, f := range fits {
			status := "accepted"
			if f.Error != "" {
				status = "flagged"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%s\n", f.Result.Name, f.Result.TraceType, f.Result.NumPulses, f.Result.RSquared, status)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	for _, f := range fits {
		if a.verbose {
			a.printFit(f)
		}
		if *plotFits {
			a.savePlots(f.Result)
		}
	}

	return nil
}
