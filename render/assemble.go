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
	"bytes"
	"errors"
	"sort"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/retype/ir"
)

// Emit renders the units in paint order.  Each unit writes into the
// buffer of its container; units whose container has no buffer fall
// back to the page buffer.
func Emit(units []Unit, ctx *Context, pageBuf *Buffer, xobjBufs map[string]*Buffer) {
	sorted := make([]Unit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, si := sorted[i].SortKey()
		oj, sj := sorted[j].SortKey()
		if oi != oj {
			return oi < oj
		}
		return si < sj
	})

	for _, u := range sorted {
		buf := pageBuf
		if b, ok := xobjBufs[u.Container()]; ok {
			buf = b
		}
		u.Render(buf, ctx)
	}
}

// Assemble renders the units of one page and installs the resulting
// streams in the document: each XObject's stream is replaced in place,
// and the page's content stream is replaced by a freshly allocated
// object.
func Assemble(doc *pdf.Data, page *ir.Page, pageRef pdf.Reference, units []Unit, ctx *Context) error {
	pageBuf := &Buffer{}
	pageBuf.WriteString(ctx.CTM + " \n")

	xobjBufs := make(map[string]*Buffer)
	for _, x := range page.XObjects {
		base, err := x.BaseOperations()
		if err != nil {
			return pdf.Wrap(err, "base operations of "+x.ID)
		}
		buf := &Buffer{}
		buf.Write(base)
		xobjBufs[x.ID] = buf
	}

	Emit(units, ctx, pageBuf, xobjBufs)

	if pageBuf.Err != nil {
		return pageBuf.Err
	}
	for _, x := range page.XObjects {
		buf := xobjBufs[x.ID]
		if buf.Err != nil {
			return buf.Err
		}
		err := replaceStream(doc, x.Ref, buf.Bytes())
		if err != nil {
			return pdf.Wrap(err, "stream of "+x.ID)
		}
	}

	contentRef := doc.Alloc()
	w, err := doc.OpenStream(contentRef, pdf.Dict{}, pdf.FilterCompress{})
	if err != nil {
		return err
	}
	_, err = w.Write(pageBuf.Bytes())
	if err != nil {
		return err
	}
	err = w.Close()
	if err != nil {
		return err
	}

	// The page dictionary returned by the store is the stored object,
	// so the new content stream can be installed in place.
	pageDict, err := pdf.GetDict(doc, pageRef)
	if err != nil {
		return err
	}
	if pageDict == nil {
		return &pdf.MalformedFileError{
			Err: errors.New("page dictionary not found"),
		}
	}
	pageDict["Contents"] = contentRef
	return nil
}

// replaceStream rewrites the data of an existing stream object in
// place, keeping its dictionary but discarding the old encoding.
func replaceStream(doc *pdf.Data, ref pdf.Reference, data []byte) error {
	stm, err := pdf.GetStream(doc, ref)
	if err != nil {
		return err
	}
	if stm == nil {
		return &pdf.MalformedFileError{
			Err: errors.New("stream not found"),
		}
	}
	delete(stm.Dict, "Filter")
	delete(stm.Dict, "DecodeParms")
	stm.Dict["Length"] = pdf.Integer(len(data))
	stm.R = bytes.NewReader(data)
	return nil
}
