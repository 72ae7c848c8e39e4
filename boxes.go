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

package retype

import (
	"seehuhn.de/go/pdf"
)

// applyPageBoxes installs the configured page boundary overrides.
// Overrides for pages which cannot be updated are skipped.
func applyPageBoxes(doc *pdf.Data, boxes map[pdf.Reference]map[pdf.Name]*pdf.Rectangle) {
	for pageRef, pageBoxes := range boxes {
		pageDict, err := pdf.GetDict(doc, pageRef)
		if err != nil || pageDict == nil {
			continue
		}
		// the returned dictionary is the stored object
		for name, box := range pageBoxes {
			if box == nil {
				continue
			}
			pageDict[name] = box
		}
	}
}
