// SPDX-License-Identifier: MIT

// Command burstfit estimates per-pulse amplitudes of oscilloscope burst traces.
//
// Usage:
//
//	burstfit single   [flags] -t0 T0 -n N -type TYPE trace.csv[.gz]
//	burstfit batch    [flags] -n N (-t0 T0 | -m) [-data DIR] manifest.csv
//	burstfit simulate [flags] -n N -type TYPE out.csv[.gz]
//	burstfit show     [flags] record.json[.gz]
//
// Run "burstfit <command> -h" for the flags of a command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks command-line mistakes; they exit with exitUsage.
var errUsage = errors.New("usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errUsage)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches one command and maps its outcome to an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	command, rest := args[0], args[1:]
	var err error
	switch command {
	case "single":
		err = runSingle(rest, stdout, stderr)
	case "batch":
		err = runBatch(rest, stdout, stderr)
	case "simulate":
		err = runSimulate(rest, stdout, stderr)
	case "show":
		err = runShow(rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return exitUsage
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "burstfit %s: %v\n", command, err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "burstfit %s: %v\n", command, err)
		return exitFailure
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `burstfit - pulse-burst amplitude estimation

Usage: burstfit <command> [flags] <file>

Commands:
  single     Fit one trace file and save its pulse amplitudes
  batch      Fit every trace listed in a manifest CSV (filename,TYPE[,t0])
  simulate   Write a synthetic LeCroy CSV trace and its true amplitudes
  show       Print or plot the fits stored in a JSON fit record
  help       Show this help message

Common flags:
  -o <dir>        Output directory (default ".")
  -f              Overwrite existing output files
  -v              Print fit summaries and timing diagnostics
  -cal <file>     Calibration JSON (defaults to the built-in bench calibration)
  -cable-delays   Use the measured cable delays instead of zero

Examples:
  burstfit single -t0 2e-9 -n 16 -type REFLECTED -plot C2trc00000.csv
  burstfit batch -m -n 16 -data ./scope -record fits.json.gz manifest.csv
  burstfit simulate -n 8 -type PUMP -noise 0.001 sim.csv.gz
  burstfit show -v -t sim fits.json.gz
`)
}
