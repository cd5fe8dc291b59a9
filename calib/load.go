// SPDX-License-Identifier: MIT

package calib

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxFileSize caps calibration and parameter files.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// Load reads a JSON calibration file. The file must have a .json extension
// and be under 1MB. Fields omitted from the file keep their Default values,
// so partial files are safe; per-trace-type map entries overlay one by one.
func Load(path string) (*Calibration, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("calibration file must have .json extension, got %q: %w", ext, ErrFileFormat)
	}
	data, err := readCapped(cleanPath)
	if err != nil {
		return nil, err
	}

	cal := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cal); err != nil {
		return nil, fmt.Errorf("failed to parse calibration JSON: %w: %w", ErrFileFormat, err)
	}
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration %s: %w", cleanPath, err)
	}

	return cal, nil
}

// LoadParamFile reads a legacy pulse parameter file: one header line, then
// numbers separated by whitespace or newlines. Lines starting with '#' are
// skipped.
func LoadParamFile(path string) ([]float64, error) {
	data, err := readCapped(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var (
		out  []float64
		line int
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if line == 1 || text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, field := range strings.Fields(text) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w: %w", path, line, ErrFileFormat, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no parameters: %w", path, ErrFileFormat)
	}

	return out, nil
}

// ApplyParamFile loads a legacy parameter file into the shape of tt. The
// shape kind is kept; the values are validated against it.
func (c *Calibration) ApplyParamFile(tt TraceType, path string) error {
	if !tt.Valid() {
		return fmt.Errorf("ApplyParamFile(%s): %w", tt, ErrUnknownTraceType)
	}
	values, err := LoadParamFile(path)
	if err != nil {
		return err
	}
	sc, ok := c.Shapes[tt]
	if !ok {
		sc.Kind = c.Shapes[Pump].Kind
	}
	if err := validateShape(sc.Kind, values); err != nil {
		return fmt.Errorf("ApplyParamFile(%s, %s): %w", tt, path, err)
	}
	if c.Shapes == nil {
		c.Shapes = make(map[TraceType]ShapeConfig, len(TraceTypes))
	}
	c.Shapes[tt] = ShapeConfig{Kind: sc.Kind, Params: values}

	return nil
}

func readCapped(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%s too large: %d bytes (max %d): %w", path, info.Size(), maxFileSize, ErrFileFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}
