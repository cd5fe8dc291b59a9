// SPDX-License-Identifier: MIT

package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/burstfit/trace"
)

// LeCroyHeaderLines is the number of preamble lines in a LeCroy CSV export
// (instrument, segment count, segment table header, trigger row, column names).
const LeCroyHeaderLines = 5

// LeCroyCSV loads LeCroy oscilloscope CSV exports. Times are in seconds and
// values in volts; the trace is named after the file.
type LeCroyCSV struct{}

// Load reads a .csv or .csv.gz LeCroy export.
func (LeCroyCSV) Load(path string) (*trace.Trace, error) {
	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".csv.gz") {
		return nil, fmt.Errorf("LeCroyCSV.Load(%s): input must be .csv or .csv.gz: %w", path, ErrUnsupportedFormat)
	}
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	times, values, err := ReadLeCroy(rc)
	if err != nil {
		return nil, fmt.Errorf("LeCroyCSV.Load(%s): %w", path, err)
	}

	return trace.New(times, values, trace.WithUnits("s", "V"), trace.WithName(BaseName(path)))
}

// ReadLeCroy parses a LeCroy CSV stream: LeCroyHeaderLines lines of preamble,
// then two numeric columns. Blank trailing lines are ignored.
func ReadLeCroy(r io.Reader) (times, values []float64, err error) {
	br := bufio.NewReader(r)
	for i := 0; i < LeCroyHeaderLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, nil, fmt.Errorf("header line %d: %w", i+1, ErrMalformed)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		line, _ := cr.FieldPos(0)
		t, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w: %w", line+LeCroyHeaderLines, ErrMalformed, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w: %w", line+LeCroyHeaderLines, ErrMalformed, err)
		}
		times = append(times, t)
		values = append(values, v)
	}
	if len(times) == 0 {
		return nil, nil, fmt.Errorf("no samples: %w", ErrMalformed)
	}

	return times, values, nil
}

// WriteLeCroy writes tr in the layout ReadLeCroy accepts, so synthetic
// traces can stand in for instrument exports.
func WriteLeCroy(w io.Writer, tr *trace.Trace) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "LECROY,burstfit,Waveform\n")
	fmt.Fprintf(bw, "Segments,1,SegmentSize,%d\n", tr.Len())
	fmt.Fprintf(bw, "Segment,TrigTime,TimeSinceSegment1\n")
	fmt.Fprintf(bw, "#1,,0\n")
	fmt.Fprintf(bw, "Time,Ampl\n")
	for t, v := range tr.All() {
		bw.WriteString(strconv.FormatFloat(t, 'e', -1, 64))
		bw.WriteByte(',')
		bw.WriteString(strconv.FormatFloat(v, 'e', -1, 64))
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
