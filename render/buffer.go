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

// Package render regenerates the drawing operators of a PDF page.
//
// A page's drawing instructions are represented as a collection of
// [Unit] values.  Units are collected from the document tree, sorted by
// their paint-order keys, and emitted into one [Buffer] per container:
// the page itself or one of its form XObjects.  The finished buffers
// then replace the corresponding streams in the document.
package render

import (
	"bytes"
	"fmt"

	"seehuhn.de/go/retype/internal/float"
)

// Buffer collects the content stream operators for one container.
// The zero value is an empty buffer, ready for use.
//
// Write errors are sticky: once Err is set, further writes are
// discarded.
type Buffer struct {
	data bytes.Buffer
	Err  error
}

// Write implements [io.Writer].
func (b *Buffer) Write(p []byte) (int, error) {
	if b.Err != nil {
		return 0, b.Err
	}
	n, err := b.data.Write(p)
	b.Err = err
	return n, err
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) {
	if b.Err != nil {
		return
	}
	_, b.Err = b.data.WriteString(s)
}

// Writef appends formatted operator text to the buffer.
func (b *Buffer) Writef(format string, args ...interface{}) {
	if b.Err != nil {
		return
	}
	_, b.Err = fmt.Fprintf(&b.data, format, args...)
}

// Bytes returns the accumulated operator bytes.
func (b *Buffer) Bytes() []byte {
	return b.data.Bytes()
}

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int {
	return b.data.Len()
}

// coord formats a single numeric operand.
func coord(x float64) string {
	return float.Format(x, 6)
}
