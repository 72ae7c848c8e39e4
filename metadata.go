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
	"time"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/xmp"
)

// pdfNamespace is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type pdfNamespace struct {
	_          xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_          xmp.Prefix    `xmp:"pdf"`
	Keywords   xmp.Text
	PDFVersion xmp.Text
	Producer   xmp.AgentName
	Trapped    xmp.Text
}

// stampMetadata records the rewrite in the document's XMP metadata.
func stampMetadata(doc *pdf.Data) error {
	now := time.Now()

	xmpInfo := &xmp.Basic{}
	xmpInfo.ModifyDate = xmp.NewDate(now)
	pdfInfo := &pdfNamespace{}
	pdfInfo.Producer = xmp.NewAgentName("seehuhn.de/go/retype")

	metadata := xmp.NewPacket()
	metadata.Set(xmpInfo, pdfInfo)

	stmRef := doc.Alloc()
	stmDict := pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}
	stm, err := doc.OpenStream(stmRef, stmDict)
	if err != nil {
		return err
	}
	err = metadata.Write(stm, nil)
	if err != nil {
		return err
	}
	err = stm.Close()
	if err != nil {
		return err
	}

	doc.GetMeta().Catalog.Metadata = stmRef
	return nil
}
