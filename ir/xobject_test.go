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

package ir

import (
	"bytes"
	"testing"
)

func TestBaseOperations(t *testing.T) {
	ops := []byte("q 1 0 0 1 10 10 cm /Im1 Do Q\n")
	x := &XObject{
		ID:      "X1",
		BaseOps: CompressBaseOps(ops),
	}

	got, err := x.BaseOperations()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, ops) {
		t.Errorf("got %q, want %q", got, ops)
	}
}

func TestBaseOperationsEmpty(t *testing.T) {
	x := &XObject{ID: "X1"}
	got, err := x.BaseOperations()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func TestBaseOperationsCorrupt(t *testing.T) {
	x := &XObject{ID: "X1", BaseOps: []byte("not zstd data")}
	_, err := x.BaseOperations()
	if err == nil {
		t.Error("expected an error for corrupt data")
	}
}
