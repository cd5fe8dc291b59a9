// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/katalvlaran/burstfit/ingest"
	"github.com/katalvlaran/burstfit/trace"
)

// WriteTrace writes tr as a LeCroy CSV export readable by ingest.Load;
// a ".gz" suffix gzip-compresses it.
func (w *Writer) WriteTrace(file string, tr *trace.Trace) (string, error) {
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
	err = ingest.WriteLeCroy(out, tr)
	if zw != nil {
		err = errors.Join(err, zw.Close())
	}
	if err = errors.Join(err, f.Close()); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}

	return f.Name(), nil
}
