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
	"bytes"
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"

	"seehuhn.de/go/retype/ir"
	"seehuhn.de/go/retype/tounicode"
)

// registerFonts embeds the replacement fonts as composite TrueType
// fonts and declares them in the resource dictionaries of every page
// and form XObject, so that the regenerated content streams can select
// them by ID.
func (c *Creater) registerFonts(doc *pdf.Data, pageRefs []pdf.Reference) error {
	for _, f := range c.doc.Fonts {
		if len(f.Data) == 0 {
			continue
		}

		fontRef, err := embedFont(doc, f, c.fontText(f.ID))
		if err != nil {
			return pdf.Wrap(err, "embedding font "+f.ID)
		}

		for _, page := range c.doc.Pages {
			if page.PageNo < 0 || page.PageNo >= len(pageRefs) {
				continue
			}
			pageRef := pageRefs[page.PageNo]
			err = addFontResource(doc, pageRef, f.ID, fontRef)
			if err != nil {
				return pdf.Wrap(err, "font resources of page")
			}
			for _, x := range page.XObjects {
				err = addFontResource(doc, x.Ref, f.ID, fontRef)
				if err != nil {
					return pdf.Wrap(err, "font resources of "+x.ID)
				}
			}
		}
	}
	return nil
}

// fontText gathers the glyph-to-text mapping for one font from the
// characters which actually use it.
func (c *Creater) fontText(fontID string) *tounicode.Info {
	info := tounicode.New()
	add := func(ch *ir.Char) {
		if ch.Glyph == nil || ch.Style == nil || ch.Style.FontID != fontID {
			return
		}
		if ch.Text == "" || ch.Text == "\n" {
			return
		}
		info.Set(glyph.ID(*ch.Glyph), ch.Text)
	}
	for _, page := range c.doc.Pages {
		for _, ch := range page.Chars {
			add(ch)
		}
		for _, p := range page.Paragraphs {
			for _, comp := range p.Content {
				switch {
				case comp.Char != nil:
					add(comp.Char)
				case comp.Formula != nil:
					for _, ch := range comp.Formula.Chars {
						add(ch)
					}
				}
			}
		}
	}
	return info
}

// embedFont writes the font dictionaries and streams for one
// composite TrueType font with the identity encoding, and returns a
// reference to the font dictionary.
func embedFont(doc *pdf.Data, f *ir.Font, text *tounicode.Info) (pdf.Reference, error) {
	ttf, err := sfnt.Read(bytes.NewReader(f.Data))
	if err != nil {
		return 0, err
	}
	outlines, ok := ttf.Outlines.(*glyf.Outlines)
	if !ok {
		return 0, fmt.Errorf("font %q: not a TrueType font", f.ID)
	}

	fontName := ttf.PostScriptName()
	unitsPerEm := ttf.UnitsPerEm
	q := 1000 / float64(unitsPerEm)

	// Character codes equal glyph IDs, so the W array can be computed
	// directly from the glyph widths.
	ww := make([]int, len(outlines.Widths))
	for gid, w := range outlines.Widths {
		ww[gid] = int(math.Round(w.AsFloat(q)))
	}
	W := encodeWidths(ww, 1000)

	bbox := ttf.BBox()
	fontBBox := &pdf.Rectangle{
		LLx: bbox.LLx.AsFloat(q),
		LLy: bbox.LLy.AsFloat(q),
		URx: bbox.URx.AsFloat(q),
		URy: bbox.URy.AsFloat(q),
	}

	fontDictRef := doc.Alloc()
	cidFontRef := doc.Alloc()
	fontDescriptorRef := doc.Alloc()
	fontFileRef := doc.Alloc()
	toUnicodeRef := doc.Alloc()

	fontDict := pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        pdf.Name(fontName),
		"Encoding":        pdf.Name("Identity-H"),
		"DescendantFonts": pdf.Array{cidFontRef},
		"ToUnicode":       toUnicodeRef,
	}

	cidFontDict := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("CIDFontType2"),
		"BaseFont": pdf.Name(fontName),
		"CIDSystemInfo": pdf.Dict{
			"Registry":   pdf.String("Adobe"),
			"Ordering":   pdf.String("Identity"),
			"Supplement": pdf.Integer(0),
		},
		"FontDescriptor": fontDescriptorRef,
		"CIDToGIDMap":    pdf.Name("Identity"),
	}
	if W != nil {
		cidFontDict["W"] = W
	}

	fd := &font.Descriptor{
		FontName:     fontName,
		IsFixedPitch: ttf.IsFixedPitch(),
		IsSerif:      ttf.IsSerif,
		IsSymbolic:   true,
		IsScript:     ttf.IsScript,
		IsItalic:     ttf.IsItalic,
		FontBBox:     fontBBox,
		ItalicAngle:  ttf.ItalicAngle,
		Ascent:       ttf.Ascent.AsFloat(q),
		Descent:      ttf.Descent.AsFloat(q),
		CapHeight:    ttf.CapHeight.AsFloat(q),
	}
	fontDescriptor := fd.AsDict()
	fontDescriptor["FontFile2"] = fontFileRef

	compressedRefs := []pdf.Reference{fontDictRef, cidFontRef, fontDescriptorRef}
	compressedObjects := []pdf.Object{fontDict, cidFontDict, fontDescriptor}
	err = doc.WriteCompressed(compressedRefs, compressedObjects...)
	if err != nil {
		return 0, pdf.Wrap(err, "composite TrueType font dicts")
	}

	// See section 9.9 of PDF 32000-1:2008 for details.
	buf := &bytes.Buffer{}
	_, err = ttf.WriteTrueTypePDF(buf)
	if err != nil {
		return 0, err
	}
	fontFileDict := pdf.Dict{
		"Subtype": pdf.Name("TrueType"),
		"Length1": pdf.Integer(buf.Len()),
	}
	fontFileStream, err := doc.OpenStream(fontFileRef, fontFileDict, pdf.FilterCompress{})
	if err != nil {
		return 0, err
	}
	_, err = fontFileStream.Write(buf.Bytes())
	if err != nil {
		return 0, err
	}
	err = fontFileStream.Close()
	if err != nil {
		return 0, err
	}

	toUnicodeStream, err := doc.OpenStream(toUnicodeRef, pdf.Dict{}, pdf.FilterCompress{})
	if err != nil {
		return 0, err
	}
	err = text.Write(toUnicodeStream)
	if err != nil {
		return 0, err
	}
	err = toUnicodeStream.Close()
	if err != nil {
		return 0, err
	}

	return fontDictRef, nil
}

// addFontResource declares a font in the resource dictionary of a page
// or form XObject, following indirect references on the way.
func addFontResource(doc *pdf.Data, containerRef pdf.Reference, name string, fontRef pdf.Reference) error {
	container, err := pdf.Resolve(doc, containerRef)
	if err != nil {
		return err
	}
	var dict pdf.Dict
	switch x := container.(type) {
	case pdf.Dict:
		dict = x
	case *pdf.Stream:
		dict = x.Dict
	default:
		return &pdf.MalformedFileError{
			Err: errors.New("unsupported resource container"),
		}
	}

	// Objects in the store are live: changes made through the
	// dictionaries returned here persist without writing back.
	resources, err := pdf.GetDict(doc, dict["Resources"])
	if err != nil {
		return err
	}
	if resources == nil {
		resources = pdf.Dict{}
		dict["Resources"] = resources
	}
	fontDict, err := pdf.GetDict(doc, resources["Font"])
	if err != nil {
		return err
	}
	if fontDict == nil {
		fontDict = pdf.Dict{}
		resources["Font"] = fontDict
	}
	fontDict[pdf.Name(name)] = fontRef
	return nil
}
