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

package ir

import (
	"github.com/klauspost/compress/zstd"

	"seehuhn.de/go/pdf"
)

// XObject is a form XObject embedded in a page.  Characters and forms
// refer to their containing XObject by ID only; the page owns the
// XObject itself.
type XObject struct {
	// ID is the key under which drawing elements select this XObject
	// as their output container.
	ID string

	// Ref locates the XObject's stream in the underlying document.
	Ref pdf.Reference

	// Fonts are the fonts declared by the XObject itself, in addition
	// to the fonts of the containing page.
	Fonts []*Font

	// BaseOps holds the zstd-compressed operator prefix which the
	// regenerated stream is appended to.  The document-model layer
	// compresses the original operators when it builds the tree.
	BaseOps []byte
}

// BaseOperations returns the decompressed operator prefix.
func (x *XObject) BaseOperations() ([]byte, error) {
	if len(x.BaseOps) == 0 {
		return nil, nil
	}
	return zstdDecoder.DecodeAll(x.BaseOps, nil)
}

// CompressBaseOps encodes an operator prefix for [XObject.BaseOps].
func CompressBaseOps(ops []byte) []byte {
	return zstdEncoder.EncodeAll(ops, nil)
}

var (
	zstdDecoder *zstd.Decoder
	zstdEncoder *zstd.Encoder
)

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
}
