// SPDX-License-Identifier: MIT

package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/burstfit/fiterr"
	"github.com/katalvlaran/burstfit/trace"
	"github.com/klauspost/compress/gzip"
)

var (
	// ErrUnsupportedFormat indicates a file extension no loader handles.
	ErrUnsupportedFormat = errors.New("ingest: unsupported file format")

	// ErrMalformed indicates a file whose contents do not match its format.
	ErrMalformed = fiterr.New(fiterr.ErrDomain, "ingest: malformed trace file")
)

// Loader reads one file format into a trace.
type Loader interface {
	Load(path string) (*trace.Trace, error)
}

// loaders maps lower-case file suffixes to their loader. Longer suffixes
// are matched first.
var loaders = []struct {
	suffix string
	loader Loader
}{
	{".csv.gz", LeCroyCSV{}},
	{".csv", LeCroyCSV{}},
}

// Load reads path with the loader registered for its extension.
func Load(path string) (*trace.Trace, error) {
	lower := strings.ToLower(path)
	for _, l := range loaders {
		if strings.HasSuffix(lower, l.suffix) {
			return l.loader.Load(path)
		}
	}

	return nil, fmt.Errorf("Load(%s): %w", path, ErrUnsupportedFormat)
}

// BaseName returns the file name of path without directory or any of the
// registered extensions: "data/C1trc00000.csv.gz" yields "C1trc00000".
func BaseName(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, l := range loaders {
		if strings.HasSuffix(lower, l.suffix) {
			return base[:len(base)-len(l.suffix)]
		}
	}

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// open returns a reader over the decompressed contents of path.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w: %w", path, ErrMalformed, err)
	}

	return &gzipFile{Reader: zr, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}
