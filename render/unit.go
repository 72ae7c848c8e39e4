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

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/retype/ir"
)

// maxOrder sorts units without an assigned paint order after all
// ordered units.
const maxOrder = math.MaxInt64

// defaultLineWidth is the stroke width used for rectangles which do
// not specify one.
const defaultLineWidth = 0.4

// A Unit is one self-contained group of drawing operators.  Units are
// sorted by their sort keys and then rendered one after the other,
// each into the buffer of its container.
type Unit interface {
	// Render appends the unit's operators to buf.  Units which cannot
	// be drawn write nothing at all.
	Render(buf *Buffer, ctx *Context)

	// SortKey returns the paint-order key.  Units compare first by
	// primary key, then by secondary key; the sort is stable.
	SortKey() (int64, int64)

	// Container returns the ID of the XObject the unit belongs to, or
	// the empty string for the page itself.
	Container() string
}

type unitBase struct {
	order     int64
	subOrder  int64
	container string
}

func newUnitBase(order *int, subOrder int, container string) unitBase {
	base := unitBase{
		order:     maxOrder,
		subOrder:  int64(subOrder),
		container: container,
	}
	if order != nil {
		base.order = int64(*order)
	}
	return base
}

func (u *unitBase) SortKey() (int64, int64) {
	return u.order, u.subOrder
}

func (u *unitBase) Container() string {
	return u.container
}

// CharUnit draws a single character as a complete BT/ET text object.
type CharUnit struct {
	unitBase
	Char *ir.Char
}

func (u *CharUnit) Render(buf *Buffer, ctx *Context) {
	c := u.Char

	// All suppression checks come before the first byte, so that a
	// suppressed character leaves the stream untouched.
	if c.Text == "\n" || c.Glyph == nil || c.Style == nil {
		ctx.Suppressed++
		return
	}
	encLen := ctx.encodingLength(u.container, c.Style.FontID)
	if encLen <= 0 {
		ctx.Suppressed++
		return
	}
	if ctx.Strict && !ctx.fontAvailable(u.container, c.Style.FontID) {
		ctx.Suppressed++
		return
	}
	if !finite(c.Style.FontSize, c.Box.X, c.Box.Y, c.Box.X2) {
		ctx.Suppressed++
		return
	}

	buf.WriteString("q ")
	if s := c.Style.State; s != nil && s.Passthrough != "" {
		buf.WriteString(s.Passthrough + " \n")
	}
	if c.Vertical {
		buf.Writef("BT /%s %s Tf 0 1 -1 0 %s %s Tm ",
			c.Style.FontID, coord(c.Style.FontSize),
			coord(c.Box.X2), coord(c.Box.Y))
	} else {
		buf.Writef("BT /%s %s Tf 1 0 0 1 %s %s Tm ",
			c.Style.FontID, coord(c.Style.FontSize),
			coord(c.Box.X), coord(c.Box.Y))
	}
	buf.Writef("<%0*X> Tj ET Q \n", 2*encLen, *c.Glyph)
	ctx.Emitted++
}

// FormUnit re-invokes a form XObject, optionally at a new position.
type FormUnit struct {
	unitBase
	Form *ir.Form
}

func (u *FormUnit) Render(buf *Buffer, ctx *Context) {
	f := u.Form

	buf.WriteString("q ")
	writeRelocation(buf, f.Relocation)
	writeMatrix(buf, f.Matrix)
	if f.State != nil {
		buf.WriteString(f.State.Passthrough)
	}
	buf.WriteString(" ")
	if f.DoTarget != "" {
		buf.Writef("/%s Do ", f.DoTarget)
	}
	buf.WriteString(" Q\n")
	ctx.Emitted++
}

// RectUnit fills or strokes an axis-aligned rectangle.
type RectUnit struct {
	unitBase
	Rect *ir.Rectangle
}

func (u *RectUnit) Render(buf *Buffer, ctx *Context) {
	r := u.Rect

	buf.WriteString("q n ")
	if r.State != nil {
		buf.WriteString(r.State.Passthrough)
	}
	lw := defaultLineWidth
	if r.LineWidth != nil {
		lw = *r.LineWidth
	}
	paintOp := "S"
	if r.Fill {
		paintOp = "f"
	}
	buf.Writef(" %s w %s %s %s %s re %s Q\n",
		coord(lw),
		coord(r.Box.X), coord(r.Box.Y),
		coord(r.Box.X2-r.Box.X), coord(r.Box.Y2-r.Box.Y),
		paintOp)
	ctx.Emitted++
}

// CurveUnit repaints a recorded path.
type CurveUnit struct {
	unitBase
	Curve *ir.Curve
}

func (u *CurveUnit) Render(buf *Buffer, ctx *Context) {
	c := u.Curve

	buf.WriteString("q n ")
	writeRelocation(buf, c.Relocation)
	if len(c.CTM) == 6 {
		buf.Writef(" %s %s %s %s %s %s cm ",
			coord(c.CTM[0]), coord(c.CTM[1]), coord(c.CTM[2]),
			coord(c.CTM[3]), coord(c.CTM[4]), coord(c.CTM[5]))
	}
	buf.WriteString(" ")
	if c.State != nil {
		buf.WriteString(c.State.Passthrough)
	}
	buf.WriteString(" ")

	// The untranslated path, when recorded, takes precedence over the
	// relocated one.
	path := c.Path
	if len(c.OriginalPath) > 0 {
		path = c.OriginalPath
	}
	buf.WriteString(" ")
	for _, p := range path {
		if p.HasXY {
			buf.Writef("%s %s %s ", coord(p.X), coord(p.Y), p.Op)
		} else {
			buf.Writef("%s ", p.Op)
		}
	}
	if c.EvenOdd {
		buf.WriteString(" f*")
	} else {
		buf.WriteString(" f")
	}
	buf.WriteString(" n Q\n")
	ctx.Emitted++
}

// writeRelocation emits the optional relocation transform.  Anything
// other than a complete 6-number matrix is silently ignored.
func writeRelocation(buf *Buffer, reloc []float64) {
	if len(reloc) != 6 || !finite(reloc...) {
		return
	}
	buf.Writef("%s %s %s %s %s %s cm ",
		coord(reloc[0]), coord(reloc[1]), coord(reloc[2]),
		coord(reloc[3]), coord(reloc[4]), coord(reloc[5]))
}

func writeMatrix(buf *Buffer, m matrix.Matrix) {
	buf.Writef("%s %s %s %s %s %s cm ",
		coord(m[0]), coord(m[1]), coord(m[2]),
		coord(m[3]), coord(m[4]), coord(m[5]))
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
