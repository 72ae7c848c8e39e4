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
	"seehuhn.de/go/pdf"
)

// AvailableFonts returns the font resource names declared by the given
// page or XObject.  Malformed or missing resource dictionaries yield an
// empty set; the function never fails.
func AvailableFonts(r pdf.Getter, obj pdf.Object) map[string]bool {
	fonts := make(map[string]bool)

	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return fonts
	}
	var dict pdf.Dict
	switch x := resolved.(type) {
	case pdf.Dict:
		dict = x
	case *pdf.Stream:
		dict = x.Dict
	default:
		return fonts
	}

	resources, err := pdf.GetDict(r, dict["Resources"])
	if err != nil || resources == nil {
		return fonts
	}
	fontDict, err := pdf.GetDict(r, resources["Font"])
	if err != nil {
		return fonts
	}
	for name := range fontDict {
		fonts[string(name)] = true
	}
	return fonts
}
