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

package tounicode

import (
	"errors"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
)

// UsedGlyphs returns the glyphs of a TrueType font which still carry
// an outline.  After a retain-numbering subset pass this is exactly
// the set of glyphs the subset kept.
func UsedGlyphs(font *sfnt.Font) (map[glyph.ID]bool, error) {
	outlines, ok := font.Outlines.(*glyf.Outlines)
	if !ok {
		return nil, errors.New("not a TrueType font")
	}

	used := make(map[glyph.ID]bool)
	for i, g := range outlines.Glyphs {
		if g != nil && g.Data != nil {
			used[glyph.ID(i)] = true
		}
	}
	return used, nil
}
