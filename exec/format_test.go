// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtx-lang/mtx/value"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		spec string
		want Format
	}{
		{"F8.2", Format{'F', 8, 2}},
		{"f8.2", Format{'F', 8, 2}},
		{"F8", Format{'F', 8, 0}},
		{"E13.5", Format{'E', 13, 5}},
		{"A8", Format{'A', 8, 0}},
		{"F40", Format{'F', 40, 0}},
	}
	for _, test := range tests {
		f, err := ParseFormat(test.spec)
		require.NoError(t, err, "spec %q", test.spec)
		require.Equal(t, test.want, f, "spec %q", test.spec)
	}

	bad := []string{"", "G8", "F0", "F41", "F8.8", "A8.2", "E8.2", "F8.x", "F"}
	for _, spec := range bad {
		_, err := ParseFormat(spec)
		require.Error(t, err, "spec %q", spec)
	}
}

func TestFormatString(t *testing.T) {
	require.Equal(t, "F8.2", Format{'F', 8, 2}.String())
	require.Equal(t, "F8", Format{'F', 8, 0}.String())
	require.Equal(t, "A8", Format{'A', 8, 0}.String())
}

func TestFormatApply(t *testing.T) {
	tests := []struct {
		spec string
		x    float64
		want string
	}{
		{"F5.2", 3.14159, " 3.14"},
		{"F5.2", -3.14159, "-3.14"},
		{"F4.2", 3.14159, "3.14"},
		// Too wide at full precision: decimals are dropped first.
		{"F5.2", 123.456, "123.5"},
		{"F5", 123.456, "  123"},
		{"F5.2", 0.12345, " 0.12"},
		// Dropping the leading zero recovers one column.
		{"F3.2", 0.126, ".13"},
		{"F4.3", -0.1234, "-.12"},
		{"F3", -55, "-55"},
		{"F2", -55, "**"},
		{"F2", 123, "**"},
		{"F8.2", 0, "    0.00"},
		{"E9.2", 12345, " 1.23E+04"},
		{"E9.2", -12345, "-1.23E+04"},
		{"E13.5", 0.5, "  5.00000E-01"},
	}
	for _, test := range tests {
		f, err := ParseFormat(test.spec)
		require.NoError(t, err, "spec %q", test.spec)
		require.Equal(t, test.want, f.Apply(test.x), "%s of %v", test.spec, test.x)
	}

	// Negative zero prints as zero.
	f := Format{'F', 4, 1}
	require.Equal(t, " 0.0", f.Apply(math.Copysign(0, -1)))
}

func TestFormatApplyString(t *testing.T) {
	f := Format{'A', 8, 0}
	require.Equal(t, "AB      ", f.Apply(value.PackString("AB")))
	f = Format{'A', 2, 0}
	require.Equal(t, "AB", f.Apply(value.PackString("ABCD")))
}

func TestDefaultFormat(t *testing.T) {
	tests := []struct {
		data     []float64
		want     Format
		logScale int
	}{
		{[]float64{1, 2, 3}, Format{'F', 2, 0}, 0},
		{[]float64{1, 55, 3}, Format{'F', 3, 0}, 0},
		{[]float64{-55}, Format{'F', 3, 0}, 0},
		{[]float64{1234567}, Format{'F', 8, 0}, 0},
		{[]float64{0.5}, Format{'F', 13, 10}, 0},
		{[]float64{2.5e12}, Format{'F', 13, 10}, 12},
		{[]float64{2.5e-7}, Format{'F', 13, 10}, -7},
	}
	for _, test := range tests {
		m := value.NewMatrixData(1, len(test.data), test.data)
		f, logScale := defaultFormat(m)
		require.Equal(t, test.want, f, "data %v", test.data)
		require.Equal(t, test.logScale, logScale, "data %v", test.data)
	}
}
