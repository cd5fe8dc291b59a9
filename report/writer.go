// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/katalvlaran/burstfit/fiterr"
)

var (
	// ErrExists indicates an output file that is already present while
	// overwriting is disabled.
	ErrExists = fiterr.New(fiterr.ErrPrecondition, "report: output file already exists")

	// ErrName indicates an output name that is empty or contains a path.
	ErrName = errors.New("report: output name must be a plain file name")

	// ErrRagged indicates amplitude columns of different lengths.
	ErrRagged = fiterr.New(fiterr.ErrShapeMismatch, "report: amplitude columns differ in length")
)

// AmplitudeHeader is the column header of a single-trace amplitude file.
const AmplitudeHeader = "Amplitudes (V)"

// Writer creates output files in one directory under one run identifier.
type Writer struct {
	dir   string
	force bool
	runID uuid.UUID
}

// NewWriter prepares dir (creating it if needed). With force=false any file
// the Writer would create must not exist yet.
func NewWriter(dir string, force bool) (*Writer, error) {
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("NewWriter(%s): %w", dir, err)
	}

	return &Writer{dir: dir, force: force, runID: uuid.New()}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// RunID returns the identifier stamped into every file of this Writer.
func (w *Writer) RunID() string { return w.runID.String() }

// Path returns where name would be written.
func (w *Writer) Path(name string) string { return filepath.Join(w.dir, name) }

// create opens name for writing, honoring the overwrite guard.
func (w *Writer) create(name string) (*os.File, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("%q: %w", name, ErrName)
	}
	path := w.Path(name)
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !w.force {
		flag |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%s: choose another output directory or enable overwriting: %w", path, ErrExists)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return f, nil
}

// WriteAmplitudes writes "<name>-amplitudes.csv": a run comment, the
// AmplitudeHeader row, then one amplitude per line in pulse order.
func (w *Writer) WriteAmplitudes(name string, amplitudes []float64) (string, error) {
	return w.writeTable(name+"-amplitudes.csv", []string{AmplitudeHeader}, [][]float64{amplitudes})
}

// WriteAmplitudeTable writes file as a CSV with one column per trace:
// names[i] heads column i and columns[i] holds its amplitudes.
func (w *Writer) WriteAmplitudeTable(file string, names []string, columns [][]float64) (string, error) {
	if len(names) != len(columns) {
		return "", fmt.Errorf("WriteAmplitudeTable: %d names for %d columns: %w", len(names), len(columns), ErrRagged)
	}

	return w.writeTable(file, names, columns)
}

func (w *Writer) writeTable(file string, header []string, columns [][]float64) (string, error) {
	rows := 0
	for i, col := range columns {
		if i == 0 {
			rows = len(col)
		} else if len(col) != rows {
			return "", fmt.Errorf("%s: column %d has %d rows, want %d: %w", file, i, len(col), rows, ErrRagged)
		}
	}
	f, err := w.create(file)
	if err != nil {
		return "", err
	}

	if _, err = fmt.Fprintf(f, "# run %s\n", w.runID); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}
	cw := csv.NewWriter(f)
	_ = cw.Write(header)
	rec := make([]string, len(columns))
	for r := 0; r < rows; r++ {
		for c, col := range columns {
			rec[c] = strconv.FormatFloat(col[r], 'e', -1, 64)
		}
		_ = cw.Write(rec)
	}
	cw.Flush()
	if err = errors.Join(cw.Error(), f.Close()); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}

	return f.Name(), nil
}
