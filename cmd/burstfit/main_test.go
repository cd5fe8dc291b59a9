package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/burstfit/calib"
	"github.com/katalvlaran/burstfit/report"
)

// runCmd executes the CLI and returns the exit code with both streams.
func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

// readColumns parses an amplitude CSV written by report.Writer.
func readColumns(t *testing.T, path string) ([]string, [][]float64) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, body, _ := strings.Cut(string(data), "\n")
	rows, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	cols := make([][]float64, len(rows[0]))
	for _, row := range rows[1:] {
		for c, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			require.NoError(t, err)
			cols[c] = append(cols[c], v)
		}
	}

	return rows[0], cols
}

func simulate(t *testing.T, dir, file string, extra ...string) {
	t.Helper()
	args := append([]string{"simulate", "-o", dir, "-n", "4", "-type", "PUMP"}, extra...)
	code, _, stderr := runCmd(t, append(args, file)...)
	require.Equal(t, exitOK, code, stderr)
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCmd(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Commands:")

	code, _, stderr = runCmd(t, "nope")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Unknown command: nope")

	code, stdout, _ := runCmd(t, "help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "simulate")

	code, _, _ = runCmd(t, "single", "-h")
	assert.Equal(t, exitOK, code)
}

func TestSimulateThenSingle(t *testing.T) {
	dir := t.TempDir()
	simulate(t, dir, "sim.csv.gz", "-noise", "0", "-amps", "0.8,0.6,0.7,0.9")

	_, truth := readColumns(t, filepath.Join(dir, "sim-truth-amplitudes.csv"))
	require.Equal(t, []float64{0.8, 0.6, 0.7, 0.9}, truth[0])

	code, stdout, stderr := runCmd(t, "single", "-o", dir, "-v", "-record", "fit.json",
		"-t0", "1e-8", "-n", "4", "-type", "PUMP", filepath.Join(dir, "sim.csv.gz"))
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Fit produced with R^2=1.000000")
	assert.Contains(t, stdout, "Timing lag: +0.000 ns")
	assert.Contains(t, stderr, "Trace sim fit with R²=1.0000")

	header, cols := readColumns(t, filepath.Join(dir, "sim-amplitudes.csv"))
	assert.Equal(t, []string{report.AmplitudeHeader}, header)
	assert.InDeltaSlice(t, truth[0], cols[0], 1e-9)

	rec, err := report.ReadRecord(filepath.Join(dir, "fit.json"))
	require.NoError(t, err)
	fit, ok := rec.Find("sim")
	require.True(t, ok)
	assert.Equal(t, calib.Pump, fit.Result.TraceType)
	require.NotNil(t, fit.Chi)
	require.NotNil(t, fit.Lag)

	code, _, stderr = runCmd(t, "single", "-o", dir,
		"-t0", "1e-8", "-n", "4", "-type", "PUMP", filepath.Join(dir, "sim.csv.gz"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "already exists")

	code, _, stderr = runCmd(t, "single", "-o", dir, "-f", "-solver", "svd",
		"-t0", "1e-8", "-n", "4", "-type", "PUMP", filepath.Join(dir, "sim.csv.gz"))
	assert.Equal(t, exitOK, code, stderr)
}

func TestSingle_FlaggedFitSavesPlots(t *testing.T) {
	dir := t.TempDir()
	simulate(t, dir, "noise.csv", "-noise", "0.01", "-amps", "0,0,0,0")

	code, stdout, stderr := runCmd(t, "single", "-o", dir,
		"-t0", "1e-8", "-n", "4", "-type", "PUMP", filepath.Join(dir, "noise.csv"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stdout, "Fit produced with R^2=")
	assert.Contains(t, stderr, "should not be used")

	assert.FileExists(t, filepath.Join(dir, "noise-fit.png"))
	assert.FileExists(t, filepath.Join(dir, "noise-residuals.png"))
	assert.NoFileExists(t, filepath.Join(dir, "noise-amplitudes.csv"))
}

func TestSingle_BadArguments(t *testing.T) {
	dir := t.TempDir()
	cases := map[string][]string{
		"no file":       {"-t0", "0", "-n", "4", "-type", "PUMP"},
		"no t0":         {"-n", "4", "-type", "PUMP", "x.csv"},
		"bad type":      {"-t0", "0", "-n", "4", "-type", "LASER", "x.csv"},
		"bad solver":    {"-t0", "0", "-n", "4", "-type", "PUMP", "-solver", "lu", "x.csv"},
		"bad threshold": {"-t0", "0", "-n", "4", "-type", "PUMP", "-threshold", "2", "x.csv"},
		"bad sigma":     {"-t0", "0", "-n", "4", "-type", "PUMP", "-sigma", "0", "x.csv"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, _ := runCmd(t, append([]string{"single", "-o", dir}, args...)...)
			assert.Equal(t, exitUsage, code)
		})
	}

	code, _, _ := runCmd(t, "single", "-o", dir, "-t0", "0", "-n", "4", "-type", "PUMP", filepath.Join(dir, "missing.csv"))
	assert.Equal(t, exitFailure, code)
}

func TestBatchThenShow(t *testing.T) {
	data, out := t.TempDir(), t.TempDir()
	simulate(t, data, "a.csv", "-noise", "0", "-amps", "0.8,0.6,0.7,0.9")
	simulate(t, data, "b.csv.gz", "-noise", "0", "-amps", "0.5,0.4,0.3,0.2", "-t0", "2e-8")

	manifest := filepath.Join(data, "manifest.csv")
	require.NoError(t, os.WriteFile(manifest, []byte("# file,type,t0\na.csv,PUMP,1e-8\nb.csv.gz, pump, 2e-8\n"), 0o600))

	code, stdout, stderr := runCmd(t, "batch", "-o", out, "-m", "-n", "4", "-j", "2",
		"-data", data, "-record", "fits.json.gz", manifest)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "2 fits completed")

	header, cols := readColumns(t, filepath.Join(out, "trace-amplitudes.csv"))
	assert.Equal(t, []string{"a.csv", "b.csv.gz"}, header)
	assert.InDeltaSlice(t, []float64{0.8, 0.6, 0.7, 0.9}, cols[0], 1e-9)
	assert.InDeltaSlice(t, []float64{0.5, 0.4, 0.3, 0.2}, cols[1], 1e-9)

	record := filepath.Join(out, "fits.json.gz")
	code, stdout, stderr = runCmd(t, "show", record)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "2 fits")
	assert.Contains(t, stdout, "accepted")

	code, stdout, stderr = runCmd(t, "show", "-v", "-t", "b", "-plot", "-o", out, record)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Burst fit")
	assert.FileExists(t, filepath.Join(out, "b-fit.png"))

	code, _, _ = runCmd(t, "show", "-t", "zzz", record)
	assert.Equal(t, exitFailure, code)
}

func TestBatch_T0Source(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "m.csv")
	require.NoError(t, os.WriteFile(manifest, []byte("a.csv,PUMP\n"), 0o600))

	code, _, stderr := runCmd(t, "batch", "-o", dir, "-n", "4", "-m", "-t0", "1e-8", manifest)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "at the same time")

	code, _, _ = runCmd(t, "batch", "-o", dir, "-n", "4", manifest)
	assert.Equal(t, exitUsage, code)

	code, _, stderr = runCmd(t, "batch", "-o", dir, "-n", "4", "-m", manifest)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "want 3")
}

func TestParseManifest(t *testing.T) {
	entries, err := parseManifest(strings.NewReader("# header\nx.csv,REFLECTED,1.5e-9\n y.csv , transmitted , -2e-9\n"), true)
	require.NoError(t, err)
	assert.Equal(t, []manifestEntry{
		{file: "x.csv", traceType: calib.Reflected, t0: 1.5e-9},
		{file: "y.csv", traceType: calib.Transmitted, t0: -2e-9},
	}, entries)

	bad := map[string]string{
		"empty":        "# nothing\n",
		"columns":      "x.csv,PUMP,1,2\n",
		"type":         "x.csv,LASER,1\n",
		"t0":           "x.csv,PUMP,soon\n",
		"unterminated": "\"x.csv,PUMP,1\n",
	}
	for name, in := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := parseManifest(strings.NewReader(in), true)
			assert.Error(t, err)
		})
	}
}

func TestSimulate_BadArguments(t *testing.T) {
	dir := t.TempDir()
	for name, args := range map[string][]string{
		"no file": {"-n", "4"},
		"rate":    {"-n", "4", "-rate", "0", "x.csv"},
		"span":    {"-n", "4", "-tmin", "1", "-tmax", "0", "x.csv"},
		"noise":   {"-n", "4", "-noise", "-1", "x.csv"},
		"amps":    {"-n", "2", "-amps", "1,x", "x.csv"},
	} {
		code, _, _ := runCmd(t, append([]string{"simulate", "-o", dir}, args...)...)
		assert.Equal(t, exitUsage, code, name)
	}

	code, _, _ := runCmd(t, "simulate", "-o", dir, "-n", "0", "x.csv")
	assert.Equal(t, exitFailure, code, "zero pulses is a model error")
}
