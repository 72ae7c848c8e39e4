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

// Package ir describes a parsed PDF document after text replacement.
//
// The tree is produced by an external document-model layer: it records,
// for every page, the characters to draw (with their replacement glyphs
// already assigned), the paragraphs they came from, and the non-text
// drawing elements which must be repainted together with them.  The
// types in this package are pure data; all rendering logic lives in
// package retype and its subpackages.
package ir

import (
	"seehuhn.de/go/geom/matrix"
)

// Document is the root of the tree.
type Document struct {
	Pages []*Page

	// Fonts are the replacement fonts to embed into the output
	// document.  Each carries the raw bytes of a TrueType font program.
	Fonts []*Font
}

// Page holds everything needed to regenerate one page's content stream.
type Page struct {
	// PageNo is the zero-based index of the page in the input document.
	PageNo int

	// CropBox is the visible region of the page.  Its lower-left corner
	// becomes the origin of the regenerated content stream.
	CropBox Box

	Chars      []*Char
	Paragraphs []*Paragraph
	Forms      []*Form
	Rectangles []*Rectangle
	Curves     []*Curve

	// Fonts are the fonts declared for the page itself.
	Fonts []*Font

	// XObjects are the form XObjects embedded in the page.
	XObjects []*XObject
}

// Box is an axis-aligned rectangle.  X, Y is the lower-left corner and
// X2, Y2 the upper-right corner, in PDF user-space coordinates.
type Box struct {
	X, Y, X2, Y2 float64
}

// Font identifies a font resource.
type Font struct {
	// ID is the resource name under which the font is referenced from
	// content streams.
	ID string

	// EncodingLength is the length of a character code in bytes, either
	// 1 or 2.  It determines the hex-digit width of glyph codes in text
	// showing operators.
	EncodingLength int

	// Data contains the raw TrueType font program.  It is only set on
	// document-level fonts which still need to be embedded.
	Data []byte
}

// GraphicState carries the raw operator sequence which restores the
// graphics state captured for a drawing element.  The instructions are
// passed through verbatim; they are never interpreted.
type GraphicState struct {
	Passthrough string
}

// Style is the text style of a character.
type Style struct {
	FontID   string
	FontSize float64
	State    *GraphicState
}

// Char is a single positioned character.
type Char struct {
	// Text is the unicode text of the character.  A value of "\n"
	// marks a line break which produces no output.
	Text string

	// Glyph is the glyph index to show, or nil if no glyph has been
	// assigned.
	Glyph *uint16

	Style *Style

	// Box is the character's bounding box.  The text matrix places the
	// glyph at (X, Y), or at (X2, Y) rotated by 90 degrees for
	// vertical text.
	Box      Box
	Vertical bool

	// XObjectID routes the character's operators into the named
	// XObject's stream.  The empty string selects the page itself.
	XObjectID string

	// RenderOrder is the primary paint-order key.  Characters without
	// an assigned order paint after all ordered elements.
	RenderOrder *int
}

// Paragraph is an ordered composition of characters and formulas.
type Paragraph struct {
	Content []*Composition
}

// Composition is one element of a paragraph.  Exactly one field is
// non-nil.
type Composition struct {
	Char    *Char
	Formula *Formula
}

// Formula is a sub-tree of characters and forms placed as a unit, for
// example an equation kept verbatim from the original document.
type Formula struct {
	Chars []*Char
	Forms []*Form
}

// Form redraws a form XObject invocation.
type Form struct {
	// Matrix maps form space to user space.
	Matrix matrix.Matrix

	// Relocation optionally moves the form to a new position.  It must
	// contain 6 numbers to take effect; malformed values are ignored.
	Relocation []float64

	State *GraphicState

	// DoTarget names the XObject to invoke, or is empty if the form
	// carries no sub-form reference.
	DoTarget string

	XObjectID   string
	RenderOrder *int
}

// Rectangle is a filled or stroked rectangle.
type Rectangle struct {
	Box Box

	// LineWidth overrides the stroke width; nil selects the default.
	LineWidth *float64

	// Fill selects filling instead of stroking.
	Fill bool

	State       *GraphicState
	XObjectID   string
	RenderOrder *int
}

// PathPoint is one segment of a curve's path.  Op is a path
// construction operator; X and Y are its operands when HasXY is set.
type PathPoint struct {
	Op    string
	X, Y  float64
	HasXY bool
}

// Curve repaints a path from the original document.
type Curve struct {
	// Path is the path to paint.  OriginalPath, when non-empty, takes
	// precedence: it preserves the untranslated path exactly.
	Path         []PathPoint
	OriginalPath []PathPoint

	// Relocation optionally moves the curve; same format as
	// [Form.Relocation].
	Relocation []float64

	// CTM is an optional explicit coordinate transformation, applied
	// after the relocation.  It must contain 6 numbers to take effect.
	CTM []float64

	// EvenOdd selects the even-odd winding rule for filling.
	EvenOdd bool

	State       *GraphicState
	XObjectID   string
	RenderOrder *int
}
