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

// Stats summarises what happened during one write pass.
type Stats struct {
	// Strict reports whether the pass checked font availability before
	// emitting characters.
	Strict bool

	// PagesWritten is the number of pages whose content stream was
	// regenerated.
	PagesWritten int

	// UnitsEmitted and UnitsSuppressed count the drawing units written
	// and skipped across all pages.
	UnitsEmitted    int
	UnitsSuppressed int

	// SubsetFallback is set when font subsetting timed out or failed
	// and the unsubsetted fonts were kept.
	SubsetFallback bool

	// SaveFallback is set when the isolated save timed out or failed
	// and the document was written directly, without the cleanup pass.
	SaveFallback bool
}
