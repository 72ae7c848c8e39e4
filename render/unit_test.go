// seehuhn.de/go/retype - regenerate PDF content streams after text replacement
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package render

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/retype/ir"
)

func intPtr(x int) *int          { return &x }
func gidPtr(x uint16) *uint16    { return &x }
func floatPtr(x float64) *float64 { return &x }

func testContext() *Context {
	return &Context{
		PageFonts: map[string]bool{"F0": true},
		XObjFonts: map[string]map[string]bool{},
		PageEnc:   map[string]int{"F0": 2, "F1": 1},
		XObjEnc:   map[string]map[string]int{},
	}
}

func TestCharOperators(t *testing.T) {
	type testCase struct {
		name     string
		char     *ir.Char
		expected string
	}
	cases := []testCase{
		{
			name: "horizontal",
			char: &ir.Char{
				Text:  "A",
				Glyph: gidPtr(0x41),
				Style: &ir.Style{FontID: "F0", FontSize: 12},
				Box:   ir.Box{X: 10, Y: 20, X2: 16, Y2: 32},
			},
			expected: "q BT /F0 12 Tf 1 0 0 1 10 20 Tm <0041> Tj ET Q \n",
		},
		{
			name: "vertical",
			char: &ir.Char{
				Text:     "A",
				Glyph:    gidPtr(0x41),
				Style:    &ir.Style{FontID: "F0", FontSize: 12},
				Box:      ir.Box{X: 10, Y: 20, X2: 16, Y2: 32},
				Vertical: true,
			},
			expected: "q BT /F0 12 Tf 0 1 -1 0 16 20 Tm <0041> Tj ET Q \n",
		},
		{
			name: "graphic state",
			char: &ir.Char{
				Text:  "A",
				Glyph: gidPtr(3),
				Style: &ir.Style{
					FontID:   "F0",
					FontSize: 9.5,
					State:    &ir.GraphicState{Passthrough: "0 0 1 rg"},
				},
				Box: ir.Box{X: 1.25, Y: 2},
			},
			expected: "q 0 0 1 rg \nBT /F0 9.5 Tf 1 0 0 1 1.25 2 Tm <0003> Tj ET Q \n",
		},
		{
			name: "one byte encoding",
			char: &ir.Char{
				Text:  "A",
				Glyph: gidPtr(0x41),
				Style: &ir.Style{FontID: "F1", FontSize: 12},
				Box:   ir.Box{X: 0, Y: 0},
			},
			expected: "q BT /F1 12 Tf 1 0 0 1 0 0 Tm <41> Tj ET Q \n",
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			ctx := testContext()
			buf := &Buffer{}
			u := &CharUnit{Char: test.char}
			u.Render(buf, ctx)
			if d := cmp.Diff(test.expected, string(buf.Bytes())); d != "" {
				t.Errorf("operators differ (-want +got):\n%s", d)
			}
			if ctx.Emitted != 1 || ctx.Suppressed != 0 {
				t.Errorf("got %d emitted, %d suppressed",
					ctx.Emitted, ctx.Suppressed)
			}
		})
	}
}

func TestCharSuppressed(t *testing.T) {
	type testCase struct {
		name   string
		strict bool
		char   *ir.Char
	}
	cases := []testCase{
		{
			name: "line break",
			char: &ir.Char{
				Text:  "\n",
				Glyph: gidPtr(1),
				Style: &ir.Style{FontID: "F0", FontSize: 12},
			},
		},
		{
			name: "no glyph",
			char: &ir.Char{
				Text:  "A",
				Style: &ir.Style{FontID: "F0", FontSize: 12},
			},
		},
		{
			name: "unknown font",
			char: &ir.Char{
				Text:  "A",
				Glyph: gidPtr(1),
				Style: &ir.Style{FontID: "F9", FontSize: 12},
			},
		},
		{
			name:   "strict and unavailable",
			strict: true,
			char: &ir.Char{
				Text:  "A",
				Glyph: gidPtr(1),
				Style: &ir.Style{FontID: "F1", FontSize: 12},
			},
		},
		{
			name: "non-finite position",
			char: &ir.Char{
				Text:  "A",
				Glyph: gidPtr(1),
				Style: &ir.Style{FontID: "F0", FontSize: 12},
				Box:   ir.Box{X: math.NaN()},
			},
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			ctx := testContext()
			ctx.Strict = test.strict
			buf := &Buffer{}
			u := &CharUnit{Char: test.char}
			u.Render(buf, ctx)

			// a suppressed character must not write any bytes
			if buf.Len() != 0 {
				t.Errorf("unexpected output %q", buf.Bytes())
			}
			if ctx.Suppressed != 1 || ctx.Emitted != 0 {
				t.Errorf("got %d emitted, %d suppressed",
					ctx.Emitted, ctx.Suppressed)
			}
		})
	}
}

func TestFormOperators(t *testing.T) {
	u := &FormUnit{
		Form: &ir.Form{
			Matrix:   matrix.Matrix{1, 0, 0, 1, 100, 200},
			DoTarget: "Fm1",
		},
	}
	buf := &Buffer{}
	u.Render(buf, testContext())

	expected := "q 1 0 0 1 100 200 cm  /Fm1 Do  Q\n"
	if d := cmp.Diff(expected, string(buf.Bytes())); d != "" {
		t.Errorf("operators differ (-want +got):\n%s", d)
	}
}

func TestFormRelocation(t *testing.T) {
	type testCase struct {
		name     string
		reloc    []float64
		expected string
	}
	cases := []testCase{
		{
			name:     "valid",
			reloc:    []float64{1, 0, 0, 1, -5, 7},
			expected: "q 1 0 0 1 -5 7 cm 2 0 0 2 0 0 cm   Q\n",
		},
		{
			name:     "wrong length",
			reloc:    []float64{1, 0, 0},
			expected: "q 2 0 0 2 0 0 cm   Q\n",
		},
		{
			name:     "non-finite",
			reloc:    []float64{1, 0, 0, 1, math.Inf(1), 0},
			expected: "q 2 0 0 2 0 0 cm   Q\n",
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			u := &FormUnit{
				Form: &ir.Form{
					Matrix:     matrix.Matrix{2, 0, 0, 2, 0, 0},
					Relocation: test.reloc,
				},
			}
			buf := &Buffer{}
			u.Render(buf, testContext())
			if d := cmp.Diff(test.expected, string(buf.Bytes())); d != "" {
				t.Errorf("operators differ (-want +got):\n%s", d)
			}
		})
	}
}

func TestRectOperators(t *testing.T) {
	type testCase struct {
		name     string
		rect     *ir.Rectangle
		expected string
	}
	cases := []testCase{
		{
			name: "filled",
			rect: &ir.Rectangle{
				Box:  ir.Box{X: 5, Y: 6, X2: 15, Y2: 26},
				Fill: true,
			},
			expected: "q n  .4 w 5 6 10 20 re f Q\n",
		},
		{
			name: "stroked with width",
			rect: &ir.Rectangle{
				Box:       ir.Box{X: 0, Y: 0, X2: 1, Y2: 1},
				LineWidth: floatPtr(2),
				State:     &ir.GraphicState{Passthrough: "1 0 0 RG"},
			},
			expected: "q n 1 0 0 RG 2 w 0 0 1 1 re S Q\n",
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			buf := &Buffer{}
			u := &RectUnit{Rect: test.rect}
			u.Render(buf, testContext())
			if d := cmp.Diff(test.expected, string(buf.Bytes())); d != "" {
				t.Errorf("operators differ (-want +got):\n%s", d)
			}
		})
	}
}

func TestCurveOperators(t *testing.T) {
	u := &CurveUnit{
		Curve: &ir.Curve{
			Path: []ir.PathPoint{
				{Op: "m", X: 0, Y: 0, HasXY: true},
				{Op: "l", X: 10, Y: 0, HasXY: true},
				{Op: "h"},
			},
		},
	}
	buf := &Buffer{}
	u.Render(buf, testContext())

	expected := "q n    0 0 m 10 0 l h  f n Q\n"
	if d := cmp.Diff(expected, string(buf.Bytes())); d != "" {
		t.Errorf("operators differ (-want +got):\n%s", d)
	}
}

func TestCurveOriginalPath(t *testing.T) {
	u := &CurveUnit{
		Curve: &ir.Curve{
			Path: []ir.PathPoint{
				{Op: "m", X: 99, Y: 99, HasXY: true},
			},
			OriginalPath: []ir.PathPoint{
				{Op: "m", X: 1, Y: 2, HasXY: true},
			},
			CTM:     []float64{1, 0, 0, 1, 3, 4},
			EvenOdd: true,
		},
	}
	buf := &Buffer{}
	u.Render(buf, testContext())

	expected := "q n  1 0 0 1 3 4 cm    1 2 m  f* n Q\n"
	if d := cmp.Diff(expected, string(buf.Bytes())); d != "" {
		t.Errorf("operators differ (-want +got):\n%s", d)
	}
}
