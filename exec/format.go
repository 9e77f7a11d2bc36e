// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mtx-lang/mtx/value"
)

// A Format is an output or input field specification such as F8.2,
// E13.5, or A8. Type is 'F', 'E', or 'A'.
type Format struct {
	Type byte
	W    int
	D    int
}

func (f Format) String() string {
	if f.Type == 'A' || f.D == 0 {
		return fmt.Sprintf("%c%d", f.Type, f.W)
	}
	return fmt.Sprintf("%c%d.%d", f.Type, f.W, f.D)
}

// Numeric reports whether values in this format are numbers rather
// than packed strings.
func (f Format) Numeric() bool {
	return f.Type != 'A'
}

// ParseFormat parses a specifier like "F8.2" or "A8".
func ParseFormat(s string) (Format, error) {
	bad := func() (Format, error) {
		return Format{}, fmt.Errorf("invalid format specifier %q", s)
	}
	if s == "" {
		return bad()
	}
	t := s[0] &^ 0x20 // upper-case the type letter
	if t != 'F' && t != 'E' && t != 'A' {
		return bad()
	}
	body, frac, hasDot := strings.Cut(s[1:], ".")
	w, err := strconv.Atoi(body)
	if err != nil || w < 1 || w > 40 {
		return bad()
	}
	d := 0
	if hasDot {
		if d, err = strconv.Atoi(frac); err != nil || d < 0 || d >= w {
			return bad()
		}
	}
	if t == 'A' && d != 0 {
		return bad()
	}
	if t == 'E' && w < d+7 {
		return bad()
	}
	return Format{Type: t, W: w, D: d}, nil
}

// NewFormat builds a format from its parts, applying the same checks
// as ParseFormat.
func NewFormat(typ byte, w, d int) (Format, error) {
	f := Format{Type: typ, W: w, D: d}
	return ParseFormat(f.String())
}

// Apply renders x in the field width, reducing decimals and then
// dropping the leading zero of fractions as needed. A value that
// cannot fit at all renders as asterisks.
func (f Format) Apply(x float64) string {
	if x == 0 {
		x = 0 // normalize a negative zero
	}
	switch f.Type {
	case 'E':
		s := strconv.FormatFloat(x, 'E', f.D, 64)
		if len(s) <= f.W {
			return pad(s, f.W)
		}
	case 'A':
		s := value.UnpackString(x)
		if len(s) > f.W {
			return s[:f.W]
		}
		return s + strings.Repeat(" ", f.W-len(s))
	default:
		for d := f.D; d >= 0; d-- {
			s := strconv.FormatFloat(x, 'f', d, 64)
			if len(s) > f.W {
				if t, ok := strings.CutPrefix(s, "0."); ok {
					s = "." + t
				} else if t, ok := strings.CutPrefix(s, "-0."); ok {
					s = "-." + t
				}
			}
			if len(s) <= f.W {
				return pad(s, f.W)
			}
		}
	}
	return strings.Repeat("*", f.W)
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return strings.Repeat(" ", w-len(s)) + s
}

// defaultFormat picks the output format PRINT uses when the command
// has no FORMAT clause. Integer matrices get the narrowest F format
// that holds the widest value. Anything else prints as F13.10, with
// very large or small magnitudes divided down by a reported power of
// ten.
func defaultFormat(m *value.Matrix) (Format, int) {
	max := 0.0
	for _, d := range m.Data() {
		if a := math.Abs(d); a > max {
			max = a
		}
	}

	if matrixIsInteger(m) {
		for w := 1; w <= 12; w++ {
			f := Format{Type: 'F', W: w}
			if s := f.Apply(-max); !strings.Contains(s, "*") {
				return f, 0
			}
		}
	}

	logScale := 0
	if max >= 1e9 || max <= 1e-4 {
		s := fmt.Sprintf("%.1e", max)
		if i := strings.IndexByte(s, 'e'); i >= 0 {
			logScale, _ = strconv.Atoi(s[i+1:])
		}
	}
	return Format{Type: 'F', W: 13, D: 10}, logScale
}

func matrixIsInteger(m *value.Matrix) bool {
	for _, d := range m.Data() {
		if d != math.Trunc(d) {
			return false
		}
	}
	return true
}
