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

// pruneUnreachable copies all objects reachable from the document
// catalog and the info dictionary into a fresh document, dropping
// everything else.  Replaced content streams and fonts from the
// original file become unreachable when pages stop referring to them;
// this pass removes their bytes from the output.
func pruneUnreachable(doc *pdf.Data) (*pdf.Data, error) {
	meta := doc.GetMeta()

	out := pdf.NewData(meta.Version)
	outMeta := out.GetMeta()
	outMeta.ID = meta.ID
	outMeta.Catalog = meta.Catalog
	outMeta.Info = meta.Info

	seen := make(map[pdf.Reference]bool)
	var walk func(obj pdf.Object) error
	walk = func(obj pdf.Object) error {
		switch x := obj.(type) {
		case pdf.Reference:
			if seen[x] {
				return nil
			}
			seen[x] = true
			target, err := doc.Get(x, true)
			if err != nil {
				return err
			}
			if target == nil {
				return nil
			}
			err = out.Put(x, target)
			if err != nil {
				return err
			}
			return walk(target)
		case pdf.Dict:
			for _, val := range x {
				err := walk(val)
				if err != nil {
					return err
				}
			}
		case pdf.Array:
			for _, val := range x {
				err := walk(val)
				if err != nil {
					return err
				}
			}
		case *pdf.Stream:
			return walk(x.Dict)
		}
		return nil
	}

	err := walk(pdf.AsDict(meta.Catalog))
	if err != nil {
		return nil, err
	}
	if meta.Info != nil {
		err = walk(pdf.AsDict(meta.Info))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
