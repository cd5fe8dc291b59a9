// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/burstfit/calib"
)

// manifestEntry is one row of a batch manifest.
type manifestEntry struct {
	file      string
	traceType calib.TraceType
	t0        float64
}

// readManifest parses "filename,TYPE" rows, or "filename,TYPE,t0" rows when
// withT0 is set. Lines starting with '#' are comments.
func readManifest(path string, withT0 bool) ([]manifestEntry, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()

	return parseManifest(f, withT0)
}

func parseManifest(r io.Reader, withT0 bool) ([]manifestEntry, error) {
	want := 2
	if withT0 {
		want = 3
	}
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var out []manifestEntry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != want {
			return nil, fmt.Errorf("manifest line %d: %d columns, want %d (use -m only for manifests with a t0 column)", line, len(rec), want)
		}
		e := manifestEntry{file: strings.TrimSpace(rec[0])}
		if e.traceType, err = calib.ParseTraceType(strings.TrimSpace(rec[1])); err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", line, err)
		}
		if withT0 {
			if e.t0, err = strconv.ParseFloat(strings.TrimSpace(rec[2]), 64); err != nil {
				return nil, fmt.Errorf("manifest line %d: t0: %w", line, err)
			}
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, errors.New("manifest: no traces listed")
	}

	return out, nil
}
