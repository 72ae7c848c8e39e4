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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/retype/isolate"
	"seehuhn.de/go/retype/render"
)

// Write regenerates the document and saves it.  If the first pass
// fails, one retry is made with strict font checking, which suppresses
// characters whose font is missing from the container's resources
// instead of producing a broken file.
func (c *Creater) Write() (*Result, error) {
	res, err := c.writeOnce(false)
	if err != nil {
		return c.writeOnce(true)
	}
	return res, nil
}

func (c *Creater) writeOnce(strict bool) (*Result, error) {
	fd, err := os.Open(c.inputPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var readerOpt *pdf.ReaderOptions
	if c.opt.ReadPassword != nil {
		readerOpt = &pdf.ReaderOptions{ReadPassword: c.opt.ReadPassword}
	}
	doc, err := pdf.Read(fd, readerOpt)
	if err != nil {
		return nil, err
	}

	pageRefs, err := pagetree.FindPages(doc)
	if err != nil {
		return nil, err
	}

	err = c.registerFonts(doc, pageRefs)
	if err != nil {
		return nil, err
	}

	stats := Stats{Strict: strict}

	total := len(c.doc.Pages)
	c.progress(StageGenerate, 0, total)
	for i, page := range c.doc.Pages {
		if page.PageNo < 0 || page.PageNo >= len(pageRefs) {
			return nil, fmt.Errorf("page number %d out of range", page.PageNo)
		}
		pageRef := pageRefs[page.PageNo]

		ctx := render.NewContext(doc, page, pageRef, strict)
		units := render.Collect(page, c.opt.Lang, c.opt.SkipFormRender)
		err = render.Assemble(doc, page, pageRef, units, ctx)
		if err != nil {
			return nil, pdf.Wrap(err, "page content")
		}

		stats.PagesWritten++
		stats.UnitsEmitted += ctx.Emitted
		stats.UnitsSuppressed += ctx.Suppressed
		c.progress(StageGenerate, i+1, total)
	}

	if !c.opt.SkipClean {
		doc = c.subsetFonts(doc, &stats)
	}

	applyPageBoxes(doc, c.opt.PageBoxes)

	err = stampMetadata(doc)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if !c.opt.NoMono {
		outPath := c.outputPath()
		err = c.savePDF(doc, outPath, &stats)
		if err != nil {
			return nil, err
		}
		res.MonoPath = outPath
	}
	res.Stats = stats
	return res, nil
}

// outputPath derives the output file name from the input file, the
// debug flag and the target language.
func (c *Creater) outputPath() string {
	base := filepath.Base(c.inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if c.opt.Debug {
		stem += ".debug"
	}
	name := stem + "." + c.opt.Lang.String() + ".mono.pdf"

	dir := c.opt.OutDir
	if dir == "" {
		dir = filepath.Dir(c.inputPath)
	}
	return filepath.Join(dir, name)
}

// workDir returns the directory for the temporary files of one
// isolated operation.  Without a configured working directory a fresh
// one is created, so that concurrent runs cannot collide.
func (c *Creater) workDir() (dir string, cleanup func(), err error) {
	if c.opt.WorkDir != "" {
		return c.opt.WorkDir, func() {}, nil
	}
	dir, err = os.MkdirTemp("", "retype-")
	if err != nil {
		return "", nil, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

// subsetFonts runs font subsetting in an isolated worker.  On any
// failure the document is kept with its full fonts.
func (c *Creater) subsetFonts(doc *pdf.Data, stats *Stats) *pdf.Data {
	c.progress(StageSubset, 0, 1)
	defer c.progress(StageSubset, 1, 1)

	dir, cleanup, err := c.workDir()
	if err != nil {
		stats.SubsetFallback = true
		return doc
	}
	defer cleanup()
	tIn := filepath.Join(dir, "si_mono.pdf")
	tOut := filepath.Join(dir, "so_mono.pdf")

	err = writeDocument(doc, tIn)
	if err != nil {
		stats.SubsetFallback = true
		return doc
	}
	err = isolate.Run(opSubset, tIn, tOut, c.opt.subsetTimeout())
	if err != nil {
		stats.SubsetFallback = true
		return doc
	}
	subsetted, err := readDocument(tOut)
	if err != nil {
		stats.SubsetFallback = true
		return doc
	}
	return subsetted
}

// savePDF writes the document to outPath, running the cleanup pass in
// an isolated worker.  If the worker fails or times out, the document
// is written directly, without cleanup.
func (c *Creater) savePDF(doc *pdf.Data, outPath string, stats *Stats) error {
	c.progress(StageSave, 0, 1)
	defer c.progress(StageSave, 1, 1)

	op := opSaveClean
	if c.opt.SkipClean {
		op = opSave
	}

	dir, cleanup, err := c.workDir()
	if err != nil {
		stats.SaveFallback = true
		return writeDocument(doc, outPath)
	}
	defer cleanup()
	tIn := filepath.Join(dir, "vi_mono.pdf")
	tOut := filepath.Join(dir, "vo_mono.pdf")

	err = writeDocument(doc, tIn)
	if err == nil {
		err = isolate.Run(op, tIn, tOut, c.opt.saveTimeout())
	}
	if err == nil {
		return copyFile(tOut, outPath)
	}

	stats.SaveFallback = true
	return writeDocument(doc, outPath)
}
