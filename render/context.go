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
	"fmt"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/retype/ir"
)

// Context holds the per-page lookup state shared by all units while a
// page is rendered.
type Context struct {
	// PageFonts is the set of font resource names visible on the page
	// itself.
	PageFonts map[string]bool

	// XObjFonts gives, for each XObject, the union of the page's fonts
	// and the XObject's own fonts.
	XObjFonts map[string]map[string]bool

	// PageEnc maps font IDs declared on the page to their character
	// code length in bytes.
	PageEnc map[string]int

	// XObjEnc maps XObject IDs to their font encoding lengths.  Page
	// declarations take precedence over XObject declarations.
	XObjEnc map[string]map[string]int

	// CTM is the coordinate transform prefix which moves the crop
	// box's lower-left corner to the origin.
	CTM string

	// Strict suppresses characters whose font is not present in the
	// container's resource dictionary.
	Strict bool

	// Emitted and Suppressed count the units written and skipped so
	// far.
	Emitted    int
	Suppressed int
}

// NewContext gathers the lookup state for one page.  pageRef is the
// page's object in the underlying document; it is used to resolve the
// actually available font resources.
func NewContext(r pdf.Getter, page *ir.Page, pageRef pdf.Reference, strict bool) *Context {
	ctx := &Context{
		PageFonts: AvailableFonts(r, pageRef),
		XObjFonts: make(map[string]map[string]bool),
		PageEnc:   make(map[string]int),
		XObjEnc:   make(map[string]map[string]int),
		Strict:    strict,
	}

	box := page.CropBox
	ctx.CTM = fmt.Sprintf(" 1 0 0 1 %s %s cm ", coord(-box.X), coord(-box.Y))

	for _, f := range page.Fonts {
		ctx.PageEnc[f.ID] = f.EncodingLength
	}
	for _, x := range page.XObjects {
		avail := make(map[string]bool)
		for id := range ctx.PageFonts {
			avail[id] = true
		}
		for id := range AvailableFonts(r, x.Ref) {
			avail[id] = true
		}
		ctx.XObjFonts[x.ID] = avail

		enc := make(map[string]int)
		for _, f := range x.Fonts {
			enc[f.ID] = f.EncodingLength
		}
		for id, l := range ctx.PageEnc {
			enc[id] = l
		}
		ctx.XObjEnc[x.ID] = enc
	}
	return ctx
}

// encodingLength returns the character code length in bytes for the
// given font, seen from the given container, or 0 if the font is
// unknown.
func (ctx *Context) encodingLength(container, fontID string) int {
	if enc, ok := ctx.XObjEnc[container]; ok {
		if l, ok := enc[fontID]; ok {
			return l
		}
	}
	return ctx.PageEnc[fontID]
}

func (ctx *Context) fontAvailable(container, fontID string) bool {
	if avail, ok := ctx.XObjFonts[container]; ok {
		return avail[fontID]
	}
	return ctx.PageFonts[fontID]
}
