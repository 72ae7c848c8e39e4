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

// Stage names reported through [Options.Progress].
const (
	StageGenerate = "Generate drawing instructions"
	StageSubset   = "Subset font"
	StageSave     = "Save PDF"
)

// A ProgressFunc receives progress updates while a document is
// written.  For each stage, done counts completed steps out of total;
// stages without step granularity report 0 out of 0 at the start and
// 1 out of 1 at the end.
type ProgressFunc func(stage string, done, total int)

func (c *Creater) progress(stage string, done, total int) {
	if c.opt.Progress != nil {
		c.opt.Progress(stage, done, total)
	}
}
