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

// Package subset removes unused glyph outlines from embedded fonts.
//
// The fonts are used with the identity encoding, so glyph IDs are
// baked into the content streams and must not change.  The subsetting
// here therefore keeps the glyph numbering intact and only replaces
// the outlines of unused glyphs by empty glyphs.
package subset

import (
	"errors"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
)

// Retain drops the outlines of all glyphs not in used, keeping the
// glyph numbering unchanged.  Components of used composite glyphs are
// retained as well; glyph 0 is always kept.
func Retain(font *sfnt.Font, used map[glyph.ID]bool) error {
	outlines, ok := font.Outlines.(*glyf.Outlines)
	if !ok {
		return errors.New("not a TrueType font")
	}

	keep := make(map[glyph.ID]bool)
	todo := map[glyph.ID]bool{0: true}
	for gid := range used {
		if int(gid) < len(outlines.Glyphs) {
			todo[gid] = true
		}
	}
	for len(todo) > 0 {
		gid := pop(todo)
		keep[gid] = true
		g := outlines.Glyphs[gid]
		if g == nil {
			continue
		}
		for _, gid2 := range g.Components() {
			if !keep[gid2] && int(gid2) < len(outlines.Glyphs) {
				todo[gid2] = true
			}
		}
	}

	for i := range outlines.Glyphs {
		if !keep[glyph.ID(i)] {
			outlines.Glyphs[i] = nil
		}
	}
	return nil
}

func pop(todo map[glyph.ID]bool) glyph.ID {
	for key := range todo {
		delete(todo, key)
		return key
	}
	panic("empty map")
}
