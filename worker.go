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
	"io"
	"os"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/retype/isolate"
	"seehuhn.de/go/retype/subset"
)

// Operations which run in isolated worker processes.
const (
	opSubset    = "subset"
	opSave      = "save"
	opSaveClean = "save-clean"
)

func init() {
	isolate.Register(opSubset, func(inPath, outPath string) error {
		doc, err := readDocument(inPath)
		if err != nil {
			return err
		}
		err = subset.Fonts(doc)
		if err != nil {
			return err
		}
		return writeDocument(doc, outPath)
	})
	isolate.Register(opSave, func(inPath, outPath string) error {
		doc, err := readDocument(inPath)
		if err != nil {
			return err
		}
		return writeDocument(doc, outPath)
	})
	isolate.Register(opSaveClean, func(inPath, outPath string) error {
		doc, err := readDocument(inPath)
		if err != nil {
			return err
		}
		doc, err = pruneUnreachable(doc)
		if err != nil {
			return err
		}
		return writeDocument(doc, outPath)
	})
}

func readDocument(path string) (*pdf.Data, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return pdf.Read(fd, nil)
}

func writeDocument(doc *pdf.Data, path string) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	err = doc.Write(fd)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
