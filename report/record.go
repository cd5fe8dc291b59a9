// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/katalvlaran/burstfit/calib"
	"github.com/katalvlaran/burstfit/regress"
)

// ErrRecordFormat indicates a fit record that cannot be decoded.
var ErrRecordFormat = errors.New("report: malformed fit record")

// Fit is one trace's entry in a Record.
type Fit struct {
	Result *regress.Result   `json:"result"`
	Chi    *regress.ChiStats `json:"chi2,omitempty"`
	// Lag is the measured-minus-model timing skew in seconds, when computed.
	Lag *float64 `json:"lag_s,omitempty"`
	// Error holds the quality-gate message of a flagged fit.
	Error string `json:"error,omitempty"`
}

// Record is the persisted outcome of one run.
type Record struct {
	RunID       string             `json:"run_id"`
	Created     time.Time          `json:"created"`
	Calibration *calib.Calibration `json:"calibration,omitempty"`
	Fits        []Fit              `json:"fits"`
}

// NewRecord starts an empty Record stamped with w's run identifier.
func (w *Writer) NewRecord(cal *calib.Calibration) *Record {
	return &Record{RunID: w.RunID(), Created: time.Now().UTC(), Calibration: cal}
}

// Find returns the fit for the named trace.
func (r *Record) Find(name string) (Fit, bool) {
	for _, f := range r.Fits {
		if f.Result != nil && f.Result.Name == name {
			return f, true
		}
	}

	return Fit{}, false
}

// WriteRecord writes rec as indented JSON to file; a ".gz" suffix
// gzip-compresses it.
func (w *Writer) WriteRecord(file string, rec *Record) (string, error) {
	f, err := w.create(file)
	if err != nil {
		return "", err
	}

	var (
		out io.Writer = f
		zw  *gzip.Writer
	)
	if strings.HasSuffix(file, ".gz") {
		zw = gzip.NewWriter(f)
		out = zw
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	err = enc.Encode(rec)
	if zw != nil {
		err = errors.Join(err, zw.Close())
	}
	if err = errors.Join(err, f.Close()); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}

	return f.Name(), nil
}

// ReadRecord loads a record written by WriteRecord.
func ReadRecord(path string) (*Record, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("ReadRecord: %w", err)
	}
	defer f.Close()

	var in io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("ReadRecord(%s): %w: %w", path, ErrRecordFormat, err)
		}
		defer zr.Close()
		in = zr
	}
	var rec Record
	if err := json.NewDecoder(in).Decode(&rec); err != nil {
		return nil, fmt.Errorf("ReadRecord(%s): %w: %w", path, ErrRecordFormat, err)
	}

	return &rec, nil
}
