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

package subset

import (
	"bytes"
	"errors"
	"io"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/retype/tounicode"
)

// Fonts subsets all composite TrueType fonts referenced by the pages
// of doc, and rebuilds their ToUnicode CMaps to match.  Fonts which
// cannot be processed are left untouched.
func Fonts(doc *pdf.Data) error {
	pageRefs, err := pagetree.FindPages(doc)
	if err != nil {
		return err
	}

	seen := make(map[pdf.Reference]bool)
	for _, pageRef := range pageRefs {
		pageDict, err := pdf.GetDict(doc, pageRef)
		if err != nil {
			continue
		}
		resources, err := pdf.GetDict(doc, pageDict["Resources"])
		if err != nil {
			continue
		}
		fontDict, err := pdf.GetDict(doc, resources["Font"])
		if err != nil {
			continue
		}
		for _, obj := range fontDict {
			ref, ok := obj.(pdf.Reference)
			if !ok || seen[ref] {
				continue
			}
			seen[ref] = true

			// A font we cannot subset still renders correctly, so
			// per-font failures are not propagated.
			_ = subsetFont(doc, ref)
		}
	}
	return nil
}

func subsetFont(doc *pdf.Data, ref pdf.Reference) error {
	fontDict, err := pdf.GetDict(doc, ref)
	if err != nil {
		return err
	}
	if fontDict["Subtype"] != pdf.Name("Type0") {
		return nil
	}
	toUniRef, ok := fontDict["ToUnicode"].(pdf.Reference)
	if !ok {
		return nil
	}

	descendants, err := pdf.GetArray(doc, fontDict["DescendantFonts"])
	if err != nil || len(descendants) != 1 {
		return err
	}
	cidFontDict, err := pdf.GetDict(doc, descendants[0])
	if err != nil {
		return err
	}
	descriptor, err := pdf.GetDict(doc, cidFontDict["FontDescriptor"])
	if err != nil {
		return err
	}
	fontFileRef, ok := descriptor["FontFile2"].(pdf.Reference)
	if !ok {
		return nil
	}

	info, err := readToUnicode(doc, toUniRef)
	if err != nil {
		return err
	}
	ttf, err := readFontFile(doc, fontFileRef)
	if err != nil {
		return err
	}

	used := make(map[glyph.ID]bool)
	for gid := range info.Map {
		used[gid] = true
	}
	err = Retain(ttf, used)
	if err != nil {
		return err
	}

	err = writeFontFile(doc, fontFileRef, ttf)
	if err != nil {
		return err
	}

	// After subsetting, the CMap is restricted to the glyphs which
	// still have outlines, so that text extraction and the embedded
	// font agree.
	remaining, err := tounicode.UsedGlyphs(ttf)
	if err != nil {
		return err
	}
	return writeToUnicode(doc, toUniRef, info.Subset(remaining))
}

func readToUnicode(doc *pdf.Data, ref pdf.Reference) (*tounicode.Info, error) {
	stm, err := pdf.GetStream(doc, ref)
	if err != nil {
		return nil, err
	}
	if stm == nil {
		return nil, tounicode.ErrInvalid
	}
	body, err := pdf.DecodeStream(doc, stm, 0)
	if err != nil {
		return nil, err
	}
	return tounicode.Read(body)
}

func writeToUnicode(doc *pdf.Data, ref pdf.Reference, info *tounicode.Info) error {
	stm, err := pdf.GetStream(doc, ref)
	if err != nil {
		return err
	}
	if stm == nil {
		return tounicode.ErrInvalid
	}
	buf := &bytes.Buffer{}
	err = info.Write(buf)
	if err != nil {
		return err
	}
	replaceStream(stm, buf.Bytes())
	return nil
}

func readFontFile(doc *pdf.Data, ref pdf.Reference) (*sfnt.Font, error) {
	stm, err := pdf.GetStream(doc, ref)
	if err != nil {
		return nil, err
	}
	if stm == nil {
		return nil, &pdf.MalformedFileError{
			Err: errors.New("missing font file stream"),
		}
	}
	body, err := pdf.DecodeStream(doc, stm, 0)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return sfnt.Read(bytes.NewReader(data))
}

func writeFontFile(doc *pdf.Data, ref pdf.Reference, ttf *sfnt.Font) error {
	stm, err := pdf.GetStream(doc, ref)
	if err != nil {
		return err
	}
	if stm == nil {
		return &pdf.MalformedFileError{
			Err: errors.New("missing font file stream"),
		}
	}
	buf := &bytes.Buffer{}
	_, err = ttf.WriteTrueTypePDF(buf)
	if err != nil {
		return err
	}
	replaceStream(stm, buf.Bytes())
	stm.Dict["Length1"] = pdf.Integer(buf.Len())
	return nil
}

// replaceStream rewrites the data of an existing stream object in
// place, keeping its dictionary but discarding the old encoding.
func replaceStream(stm *pdf.Stream, data []byte) {
	delete(stm.Dict, "Filter")
	delete(stm.Dict, "DecodeParms")
	stm.Dict["Length"] = pdf.Integer(len(data))
	stm.R = bytes.NewReader(data)
}
