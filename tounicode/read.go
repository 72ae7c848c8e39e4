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
	"bytes"
	"io"
	"regexp"
	"strconv"
	"unicode/utf16"

	"seehuhn.de/go/sfnt/glyph"
)

// Read extracts the glyph-to-text mapping from a ToUnicode CMap.
// Only the bfchar and bfrange sections are interpreted; everything
// else in the CMap is ignored.
func Read(r io.Reader) (*Info, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	info := New()

	// read the bfrange mappings first, so that bfchar entries for the
	// same glyph take precedence
	mm := bfrangeRegexp.FindAllSubmatch(body, -1)
	for _, m := range mm {
		inner := m[1]
		for {
			var first, last uint32
			var rr []rune

			inner = skipComments(inner)
			if len(inner) == 0 {
				break
			}

			inner, first, err = parseCharCode(inner)
			if err != nil {
				return nil, err
			}

			inner = skipComments(inner)

			inner, last, err = parseCharCode(inner)
			if err != nil {
				return nil, err
			}

			inner = skipComments(inner)

			inner, rr, err = parseString(inner)
			if err != nil {
				return nil, err
			}

			if first > last || len(rr) == 0 {
				continue
			}
			for code := first; code <= last; code++ {
				if code > 0xFFFF {
					break
				}
				text := make([]rune, len(rr))
				copy(text, rr)
				text[len(text)-1] += rune(code - first)
				info.Set(glyph.ID(code), string(text))
			}
		}
	}

	// read the bfchar mappings
	mm = bfcharRegexp.FindAllSubmatch(body, -1)
	for _, m := range mm {
		inner := m[1]
		for {
			var code uint32
			var rr []rune

			inner = skipComments(inner)
			if len(inner) == 0 {
				break
			}

			inner, code, err = parseCharCode(inner)
			if err != nil {
				return nil, err
			}

			inner = skipComments(inner)

			inner, rr, err = parseString(inner)
			if err != nil {
				return nil, err
			}

			if code <= 0xFFFF && len(rr) > 0 {
				info.Set(glyph.ID(code), string(rr))
			}
		}
	}

	return info, nil
}

func skipComments(buf []byte) []byte {
	for {
		m := commentRegexp.FindSubmatch(buf)
		if m == nil {
			return buf
		}
		buf = buf[len(m[0]):]
	}
}

func parseCharCode(buf []byte) ([]byte, uint32, error) {
	m := charCodeRegexp.FindSubmatch(buf)
	if m == nil {
		return nil, 0, ErrInvalid
	}

	x, err := strconv.ParseUint(string(m[1]), 16, 32)
	if err != nil {
		return nil, 0, ErrInvalid
	}

	return buf[len(m[0]):], uint32(x), nil
}

// parseString reads a hex string of UTF-16 code units.  Surrogate
// pairs are combined, so that characters outside the basic
// multilingual plane survive a read/write round trip.
func parseString(buf []byte) ([]byte, []rune, error) {
	m := stringRegexp.FindSubmatch(buf)
	if m == nil {
		return nil, nil, ErrInvalid
	}

	q := bytes.ReplaceAll(m[1], []byte{' '}, []byte{})
	if len(q)%4 != 0 {
		return nil, nil, ErrInvalid
	}

	var s []uint16
	for len(q) > 0 {
		x, err := strconv.ParseUint(string(q[:4]), 16, 16)
		if err != nil {
			return nil, nil, ErrInvalid
		}
		s = append(s, uint16(x))
		q = q[4:]
	}

	return buf[len(m[0]):], utf16.Decode(s), nil
}

var (
	bfcharRegexp  = regexp.MustCompile(`(?is)\bbeginbfchar\b\s*(.*?)\bendbfchar\b`)
	bfrangeRegexp = regexp.MustCompile(`(?is)\bbeginbfrange\b\s*(.*?)\bendbfrange\b`)

	commentRegexp  = regexp.MustCompile(`^%.*?(?:\n|\r)\s*`)
	charCodeRegexp = regexp.MustCompile(`^<([0-9a-fA-F]*)>\s*`)
	stringRegexp   = regexp.MustCompile(`^<([0-9a-fA-F ]*)>\s*`)
)
