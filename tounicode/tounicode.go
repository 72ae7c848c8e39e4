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

// Package tounicode rebuilds the ToUnicode CMaps of embedded fonts.
//
// The fonts written by the content-stream regeneration use the
// identity encoding, so character codes equal glyph IDs and the
// ToUnicode CMap is the only place where the text content of the
// document is recorded.  After a font has been subset, the CMap is
// read back, restricted to the glyphs which still have outlines, and
// written out again as plain bfchar sections.
package tounicode

import (
	"errors"

	"seehuhn.de/go/sfnt/glyph"
)

// Info is the glyph-to-text mapping extracted from a ToUnicode CMap.
type Info struct {
	// Map gives the unicode text for each mapped glyph.
	Map map[glyph.ID]string
}

// New returns an empty mapping.
func New() *Info {
	return &Info{Map: make(map[glyph.ID]string)}
}

// Set records the text for a glyph, normalising CJK compatibility
// characters on the way in.
func (info *Info) Set(gid glyph.ID, text string) {
	info.Map[gid] = normalizeText(text)
}

// Subset returns a copy of info restricted to the given glyphs.
func (info *Info) Subset(used map[glyph.ID]bool) *Info {
	res := New()
	for gid, text := range info.Map {
		if used[gid] {
			res.Map[gid] = text
		}
	}
	return res
}

// ErrInvalid indicates that a ToUnicode CMap could not be parsed.
var ErrInvalid = errors.New("invalid ToUnicode CMap")
