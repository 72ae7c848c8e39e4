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
	"golang.org/x/text/unicode/norm"
)

// normalizeText maps single characters from the Kangxi radical and CJK
// compatibility ideograph blocks through canonical decomposition, so
// that text extraction from the finished document finds the character
// a reader expects.  Kangxi radicals carry only compatibility
// decompositions, so in practice only the ideographs change.
func normalizeText(text string) string {
	rr := []rune(text)
	if len(rr) != 1 {
		return text
	}
	c := rr[0]
	if (c >= 0x2F00 && c <= 0x2FD5) || (c >= 0xF900 && c <= 0xFAFF) {
		decomposed := []rune(norm.NFD.String(string(c)))
		if len(decomposed) > 0 {
			return string(decomposed[0])
		}
	}
	return text
}
