package calib_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/burstfit/calib"
	"github.com/katalvlaran/burstfit/fiterr"
	"github.com/katalvlaran/burstfit/pulse"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestTraceType(t *testing.T) {
	for _, tt := range calib.TraceTypes {
		got, err := calib.ParseTraceType(tt.String())
		require.NoError(t, err)
		require.Equal(t, tt, got)
	}
	got, err := calib.ParseTraceType(" reflected")
	require.NoError(t, err)
	require.Equal(t, calib.Reflected, got)

	_, err = calib.ParseTraceType("probe")
	require.ErrorIs(t, err, calib.ErrUnknownTraceType)
	require.Equal(t, "TraceType(7)", calib.TraceType(7).String())
}

func TestDefault(t *testing.T) {
	c := calib.Default()
	require.NoError(t, c.Validate())

	tm, err := c.TimingModel()
	require.NoError(t, err)
	assert.Equal(t, calib.Period, tm.Period())
	tau := tm.Tau()
	assert.InDelta(t, calib.Delta1+calib.Delta2+calib.Delta3, tau[3], 1e-21)

	for _, tt := range calib.TraceTypes {
		d, err := c.Delay(tt)
		require.NoError(t, err)
		assert.Zero(t, d, "effective delays are zero")

		p, err := c.ShapeParams(tt)
		require.NoError(t, err)
		assert.Equal(t, []float64{pulse.DefaultSigma, pulse.DefaultLambda}, p.Values())

		s, err := c.Shape(tt)
		require.NoError(t, err)
		assert.Equal(t, pulse.GaussianExpKind, s.Kind())
	}

	_, err = c.Delay(calib.TraceType(5))
	require.ErrorIs(t, err, calib.ErrUnknownTraceType)
	_, err = c.ShapeParams(calib.TraceType(-1))
	require.ErrorIs(t, err, calib.ErrUnknownTraceType)
}

func TestUseMeasuredDelays(t *testing.T) {
	c := calib.Default()
	c.UseMeasuredDelays()

	d, err := c.Delay(calib.Reflected)
	require.NoError(t, err)
	assert.Equal(t, calib.ReflectDelay, d)
	d, err = c.Delay(calib.Transmitted)
	require.NoError(t, err)
	assert.Equal(t, calib.TransmitDelay, d)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(c *calib.Calibration)
	}{
		{"bad period", func(c *calib.Calibration) { c.Timing.Period = -1 }},
		{"nan width", func(c *calib.Calibration) { c.PulseWidth = math.NaN() }},
		{"zero width", func(c *calib.Calibration) { c.PulseWidth = 0 }},
		{"missing delay", func(c *calib.Calibration) { delete(c.Delays, calib.Reflected) }},
		{"inf delay", func(c *calib.Calibration) { c.Delays[calib.Pump] = math.Inf(1) }},
		{"missing shape", func(c *calib.Calibration) { delete(c.Shapes, calib.Transmitted) }},
		{"short params", func(c *calib.Calibration) {
			c.Shapes[calib.Pump] = calib.ShapeConfig{Kind: pulse.GaussianExpKind, Params: []float64{1e-10}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := calib.Default()
			tc.mut(c)
			err := c.Validate()
			require.ErrorIs(t, err, calib.ErrInvalid)
			require.ErrorIs(t, err, fiterr.ErrDomain)
		})
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	want := calib.Default()
	want.UseMeasuredDelays()
	want.Shapes[calib.Reflected] = calib.ShapeConfig{Kind: pulse.LorentzianExpKind, Params: []float64{4e-10, 5e8}}

	raw, err := json.MarshalIndent(want, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"REFLECTED"`)
	assert.Contains(t, string(raw), `"lorentzian-exp"`)

	got, err := calib.Load(writeFile(t, "cal.json", string(raw)))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoad_PartialOverlay(t *testing.T) {
	path := writeFile(t, "partial.json", `{
		"pulse_width": 5e-9,
		"delays": {"TRANSMITTED": -1e-9},
		"shapes": {"PUMP": {"kind": "gaussian-exp", "params": [3e-10, 4e8]}}
	}`)
	c, err := calib.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5e-9, c.PulseWidth)
	assert.Equal(t, calib.Period, c.Timing.Period, "timing kept")
	d, err := c.Delay(calib.Transmitted)
	require.NoError(t, err)
	assert.Equal(t, -1e-9, d)
	d, err = c.Delay(calib.Reflected)
	require.NoError(t, err)
	assert.Zero(t, d, "untouched key kept")

	p, err := c.ShapeParams(calib.Pump)
	require.NoError(t, err)
	assert.Equal(t, []float64{3e-10, 4e8}, p.Values())
	p, err = c.ShapeParams(calib.Reflected)
	require.NoError(t, err)
	assert.Equal(t, []float64{pulse.DefaultSigma, pulse.DefaultLambda}, p.Values())
}

func TestLoad_Errors(t *testing.T) {
	_, err := calib.Load(writeFile(t, "cal.yaml", "{}"))
	require.ErrorIs(t, err, calib.ErrFileFormat)

	_, err = calib.Load(writeFile(t, "bad.json", "{not json"))
	require.ErrorIs(t, err, calib.ErrFileFormat)

	_, err = calib.Load(writeFile(t, "unknown.json", `{"colour": 1}`))
	require.ErrorIs(t, err, calib.ErrFileFormat)

	_, err = calib.Load(writeFile(t, "badtype.json", `{"delays": {"PROBE": 1}}`))
	require.Error(t, err)

	_, err = calib.Load(writeFile(t, "invalid.json", `{"pulse_width": -1}`))
	require.ErrorIs(t, err, calib.ErrInvalid)

	_, err = calib.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadParamFile(t *testing.T) {
	path := writeFile(t, "Parameters for DET10A - PUMP.txt",
		"sigma lambda\n3.9e-10\n# refit 2023-06\n5.014747090308123e8\n")
	values, err := calib.LoadParamFile(path)
	require.NoError(t, err)
	require.Equal(t, []float64{3.9e-10, 5.014747090308123e8}, values)

	c := calib.Default()
	require.NoError(t, c.ApplyParamFile(calib.Reflected, path))
	p, err := c.ShapeParams(calib.Reflected)
	require.NoError(t, err)
	require.Equal(t, values, p.Values())

	// header only
	_, err = calib.LoadParamFile(writeFile(t, "empty.txt", "sigma lambda\n"))
	require.ErrorIs(t, err, calib.ErrFileFormat)

	_, err = calib.LoadParamFile(writeFile(t, "junk.txt", "h\n1e-10 abc\n"))
	require.ErrorIs(t, err, calib.ErrFileFormat)

	three := writeFile(t, "three.txt", "h\n1e-10 5e8 7\n")
	err = c.ApplyParamFile(calib.Pump, three)
	require.ErrorIs(t, err, calib.ErrInvalid)
	require.ErrorIs(t, err, pulse.ErrParamCount)

	require.ErrorIs(t, c.ApplyParamFile(calib.TraceType(9), path), calib.ErrUnknownTraceType)
}

func TestClone(t *testing.T) {
	c := calib.Default()
	cp := c.Clone()
	cp.Delays[calib.Pump] = 1e-9
	cp.Shapes[calib.Pump].Params[0] = 1

	d, err := c.Delay(calib.Pump)
	require.NoError(t, err)
	assert.Zero(t, d)
	assert.Equal(t, pulse.DefaultSigma, c.Shapes[calib.Pump].Params[0])
}
