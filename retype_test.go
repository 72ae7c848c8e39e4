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
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/retype/ir"
)

func TestOutputPath(t *testing.T) {
	type testCase struct {
		name string
		opt  *Options
		want string
	}
	cases := []testCase{
		{
			name: "default",
			opt:  &Options{Lang: language.German},
			want: filepath.Join("some", "dir", "doc.de.mono.pdf"),
		},
		{
			name: "debug",
			opt:  &Options{Lang: language.German, Debug: true},
			want: filepath.Join("some", "dir", "doc.debug.de.mono.pdf"),
		},
		{
			name: "output directory",
			opt:  &Options{Lang: language.Arabic, OutDir: "out"},
			want: filepath.Join("out", "doc.ar.mono.pdf"),
		},
		{
			name: "no language",
			opt:  &Options{},
			want: filepath.Join("some", "dir", "doc.und.mono.pdf"),
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			c := NewCreater(filepath.Join("some", "dir", "doc.pdf"), &ir.Document{}, test.opt)
			if got := c.outputPath(); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestFontText(t *testing.T) {
	gid := func(x uint16) *uint16 { return &x }
	styleA := &ir.Style{FontID: "F0", FontSize: 10}
	styleB := &ir.Style{FontID: "F1", FontSize: 10}

	doc := &ir.Document{
		Pages: []*ir.Page{{
			Chars: []*ir.Char{
				{Text: "A", Glyph: gid(1), Style: styleA},
				{Text: "B", Glyph: gid(2), Style: styleB},
				{Text: "\n", Glyph: gid(3), Style: styleA},
				{Text: "C", Style: styleA},
			},
			Paragraphs: []*ir.Paragraph{{
				Content: []*ir.Composition{
					{Char: &ir.Char{Text: "D", Glyph: gid(4), Style: styleA}},
					{Formula: &ir.Formula{
						Chars: []*ir.Char{
							{Text: "E", Glyph: gid(5), Style: styleA},
						},
					}},
				},
			}},
		}},
	}
	c := NewCreater("in.pdf", doc, nil)

	info := c.fontText("F0")

	want := map[glyph.ID]string{1: "A", 4: "D", 5: "E"}
	if d := cmp.Diff(want, info.Map); d != "" {
		t.Errorf("mapping differs (-want +got):\n%s", d)
	}
}

func TestApplyPageBoxes(t *testing.T) {
	doc := pdf.NewData(pdf.V1_7)
	pageRef := doc.Alloc()
	err := doc.Put(pageRef, pdf.Dict{"Type": pdf.Name("Page")})
	if err != nil {
		t.Fatal(err)
	}

	box := &pdf.Rectangle{LLx: 0, LLy: 0, URx: 612, URy: 792}
	applyPageBoxes(doc, map[pdf.Reference]map[pdf.Name]*pdf.Rectangle{
		pageRef: {"MediaBox": box},
		// a dangling reference must not break anything
		doc.Alloc(): {"CropBox": box},
	})

	pageDict, err := pdf.GetDict(doc, pageRef)
	if err != nil {
		t.Fatal(err)
	}
	if pageDict["MediaBox"] != box {
		t.Errorf("MediaBox not set: %v", pageDict["MediaBox"])
	}
}

func TestAddFontResource(t *testing.T) {
	doc := pdf.NewData(pdf.V1_7)

	// a page without a resource dictionary
	pageRef := doc.Alloc()
	err := doc.Put(pageRef, pdf.Dict{"Type": pdf.Name("Page")})
	if err != nil {
		t.Fatal(err)
	}

	// a form XObject with an indirect resource dictionary
	resRef := doc.Alloc()
	err = doc.Put(resRef, pdf.Dict{})
	if err != nil {
		t.Fatal(err)
	}
	xobjRef := doc.Alloc()
	w, err := doc.OpenStream(xobjRef, pdf.Dict{
		"Type":      pdf.Name("XObject"),
		"Subtype":   pdf.Name("Form"),
		"Resources": resRef,
	})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}

	fontRef := doc.Alloc()
	for _, ref := range []pdf.Reference{pageRef, xobjRef} {
		err := addFontResource(doc, ref, "F0", fontRef)
		if err != nil {
			t.Fatal(err)
		}
	}

	// the declaration must be visible through the stored objects
	pageDict, err := pdf.GetDict(doc, pageRef)
	if err != nil {
		t.Fatal(err)
	}
	resources, err := pdf.GetDict(doc, pageDict["Resources"])
	if err != nil {
		t.Fatal(err)
	}
	fonts, err := pdf.GetDict(doc, resources["Font"])
	if err != nil {
		t.Fatal(err)
	}
	if fonts["F0"] != fontRef {
		t.Errorf("page font not declared: %v", fonts["F0"])
	}

	resources, err = pdf.GetDict(doc, resRef)
	if err != nil {
		t.Fatal(err)
	}
	fonts, err = pdf.GetDict(doc, resources["Font"])
	if err != nil {
		t.Fatal(err)
	}
	if fonts["F0"] != fontRef {
		t.Errorf("XObject font not declared: %v", fonts["F0"])
	}
}

func TestPruneUnreachable(t *testing.T) {
	doc := pdf.NewData(pdf.V1_7)

	pagesRef := doc.Alloc()
	pageRef := doc.Alloc()
	contentRef := doc.Alloc()
	orphanRef := doc.Alloc()

	err := doc.Put(pagesRef, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  pdf.Array{pageRef},
		"Count": pdf.Integer(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Put(pageRef, pdf.Dict{
		"Type":     pdf.Name("Page"),
		"Parent":   pagesRef,
		"Contents": contentRef,
	})
	if err != nil {
		t.Fatal(err)
	}
	w, err := doc.OpenStream(contentRef, pdf.Dict{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.Write([]byte("q Q"))
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Put(orphanRef, pdf.TextString("left behind"))
	if err != nil {
		t.Fatal(err)
	}
	doc.GetMeta().Catalog.Pages = pagesRef

	out, err := pruneUnreachable(doc)
	if err != nil {
		t.Fatal(err)
	}

	for _, ref := range []pdf.Reference{pagesRef, pageRef, contentRef} {
		obj, err := out.Get(ref, true)
		if err != nil {
			t.Fatal(err)
		}
		if obj == nil {
			t.Errorf("reachable object %s was dropped", ref)
		}
	}
	obj, err := out.Get(orphanRef, true)
	if err != nil {
		t.Fatal(err)
	}
	if obj != nil {
		t.Errorf("orphan object %s was kept", orphanRef)
	}
}
