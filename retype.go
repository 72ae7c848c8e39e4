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

// Package retype writes PDF documents whose text has been replaced.
//
// The input is the original PDF file together with a document tree
// (package ir) which records, per page, the replacement characters and
// the graphical elements to repaint.  Writing a document regenerates
// every page's content stream, embeds the replacement fonts, subsets
// them, and saves the result next to the input file.
package retype

import (
	"time"

	"golang.org/x/text/language"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/retype/ir"
)

// Options control how a document is written.  The zero value is
// usable.
type Options struct {
	// Lang is the language of the replacement text.  It controls
	// right-to-left handling and appears in the output file name.
	Lang language.Tag

	// OutDir is the directory for the output file.  If empty, the
	// output is written next to the input file.
	OutDir string

	// WorkDir is the directory for the temporary files of isolated
	// workers.  If empty, the system temporary directory is used.
	WorkDir string

	// Debug inserts a ".debug" marker into the output file name.
	Debug bool

	// SkipFormRender leaves form invocations out of the regenerated
	// streams.
	SkipFormRender bool

	// SkipClean disables font subsetting and the document cleanup
	// pass.
	SkipClean bool

	// NoMono suppresses writing the output file; the document is still
	// processed in memory.
	NoMono bool

	// ReadPassword is consulted when the input file is encrypted.
	ReadPassword func(ID []byte, try int) string

	// SubsetTimeout and SaveTimeout bound the isolated font subsetting
	// and save operations.  Unset values default to 60 seconds and
	// 2 minutes.
	SubsetTimeout time.Duration
	SaveTimeout   time.Duration

	// PageBoxes overrides page boundary boxes in the output, keyed by
	// page object and box name (MediaBox, CropBox, ...).
	PageBoxes map[pdf.Reference]map[pdf.Name]*pdf.Rectangle

	// Progress, if non-nil, receives stage updates during writing.
	Progress ProgressFunc
}

const (
	defaultSubsetTimeout = 60 * time.Second
	defaultSaveTimeout   = 2 * time.Minute
)

func (opt *Options) subsetTimeout() time.Duration {
	if opt.SubsetTimeout > 0 {
		return opt.SubsetTimeout
	}
	return defaultSubsetTimeout
}

func (opt *Options) saveTimeout() time.Duration {
	if opt.SaveTimeout > 0 {
		return opt.SaveTimeout
	}
	return defaultSaveTimeout
}

// Creater writes the replaced document.
type Creater struct {
	inputPath string
	doc       *ir.Document
	opt       *Options
}

// NewCreater prepares writing the document tree doc, which was derived
// from the PDF file at inputPath.
func NewCreater(inputPath string, doc *ir.Document, opt *Options) *Creater {
	if opt == nil {
		opt = &Options{}
	}
	return &Creater{
		inputPath: inputPath,
		doc:       doc,
		opt:       opt,
	}
}
