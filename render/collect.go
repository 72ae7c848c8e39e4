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
	"golang.org/x/text/language"

	"seehuhn.de/go/retype/ir"
)

// Collect gathers the renderable units of one page: free-standing
// characters, paragraph contents (with formulas flattened), forms,
// rectangles and curves.  The secondary sort key of each unit is its
// position in the collection order, so that units with equal paint
// order keep their document order.
func Collect(page *ir.Page, lang language.Tag, skipForms bool) []Unit {
	var units []Unit

	chars := make([]*ir.Char, 0, len(page.Chars))
	chars = append(chars, page.Chars...)
	for _, p := range page.Paragraphs {
		chars = append(chars, paragraphChars(p, lang)...)
	}
	for i, c := range chars {
		units = append(units, &CharUnit{
			unitBase: newUnitBase(c.RenderOrder, i, c.XObjectID),
			Char:     c,
		})
	}

	if !skipForms {
		forms := make([]*ir.Form, 0, len(page.Forms))
		forms = append(forms, page.Forms...)
		for _, p := range page.Paragraphs {
			for _, comp := range p.Content {
				if comp.Formula != nil {
					forms = append(forms, comp.Formula.Forms...)
				}
			}
		}
		for i, f := range forms {
			units = append(units, &FormUnit{
				unitBase: newUnitBase(f.RenderOrder, i, f.XObjectID),
				Form:     f,
			})
		}
	}

	for i, r := range page.Rectangles {
		units = append(units, &RectUnit{
			unitBase: newUnitBase(r.RenderOrder, i, r.XObjectID),
			Rect:     r,
		})
	}
	for i, c := range page.Curves {
		units = append(units, &CurveUnit{
			unitBase: newUnitBase(c.RenderOrder, i, c.XObjectID),
			Curve:    c,
		})
	}
	return units
}

// paragraphChars flattens a paragraph into its characters, descending
// into formulas.  For right-to-left target languages the characters
// come back in reversed order.
func paragraphChars(p *ir.Paragraph, lang language.Tag) []*ir.Char {
	var chars []*ir.Char
	for _, comp := range p.Content {
		switch {
		case comp.Char != nil:
			chars = append(chars, comp.Char)
		case comp.Formula != nil:
			chars = append(chars, comp.Formula.Chars...)
		}
	}
	if RightToLeft(lang) {
		for i, j := 0, len(chars)-1; i < j; i, j = i+1, j-1 {
			chars[i], chars[j] = chars[j], chars[i]
		}
	}
	return chars
}

// RightToLeft reports whether text in the given language runs right to
// left.
func RightToLeft(lang language.Tag) bool {
	script, _ := lang.Script()
	switch script.String() {
	case "Arab", "Hebr":
		return true
	}
	return false
}
