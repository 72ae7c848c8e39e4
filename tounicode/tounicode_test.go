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

package tounicode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/sfnt/glyph"
)

func TestRoundTrip(t *testing.T) {
	info := New()
	info.Set(1, "A")
	info.Set(2, "ﬁ")
	info.Set(3, "x̂")
	info.Set(4, "\U0001F600") // outside the BMP

	buf := &bytes.Buffer{}
	err := info.Write(buf)
	if err != nil {
		t.Fatal(err)
	}

	info2, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(info.Map, info2.Map); d != "" {
		t.Errorf("mappings differ (-want +got):\n%s", d)
	}
}

func TestWriteSurrogates(t *testing.T) {
	info := New()
	info.Set(7, "\U0001F600")

	buf := &bytes.Buffer{}
	err := info.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<D83DDE00>") {
		t.Errorf("missing surrogate pair in output:\n%s", buf.String())
	}
}

func TestWriteChunks(t *testing.T) {
	info := New()
	for i := 0; i < 101; i++ {
		info.Set(glyph.ID(i+1), string(rune('A'+i%26)))
	}

	buf := &bytes.Buffer{}
	err := info.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	body := buf.String()
	if !strings.Contains(body, "100 beginbfchar") {
		t.Error("missing full chunk")
	}
	if !strings.Contains(body, "\n1 beginbfchar") {
		t.Error("missing remainder chunk")
	}
	if got := strings.Count(body, "endbfchar"); got != 2 {
		t.Errorf("got %d bfchar sections, want 2", got)
	}
}

func TestReadBFRange(t *testing.T) {
	cmap := `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfrange
<0005> <0007> <0041>
endbfrange
endcmap
end
end
`
	info, err := Read(strings.NewReader(cmap))
	if err != nil {
		t.Fatal(err)
	}
	want := map[glyph.ID]string{5: "A", 6: "B", 7: "C"}
	if d := cmp.Diff(want, info.Map); d != "" {
		t.Errorf("mappings differ (-want +got):\n%s", d)
	}
}

func TestReadPrecedence(t *testing.T) {
	cmap := `begincmap
1 beginbfrange
<0001> <0002> <0061>
endbfrange
1 beginbfchar
<0001> <0041>
endbfchar
endcmap
`
	info, err := Read(strings.NewReader(cmap))
	if err != nil {
		t.Fatal(err)
	}
	// bfchar entries override bfrange entries for the same glyph
	want := map[glyph.ID]string{1: "A", 2: "b"}
	if d := cmp.Diff(want, info.Map); d != "" {
		t.Errorf("mappings differ (-want +got):\n%s", d)
	}
}

func TestReadComments(t *testing.T) {
	cmap := `begincmap
1 beginbfchar
% a comment
<0001> <0041>
endbfchar
endcmap
`
	info, err := Read(strings.NewReader(cmap))
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Map[1]; got != "A" {
		t.Errorf("got %q, want %q", got, "A")
	}
}

func TestNormalization(t *testing.T) {
	type testCase struct {
		in   string
		want string
	}
	cases := []testCase{
		// Kangxi radicals have no canonical decomposition and pass
		// through unchanged.
		{"\u2F00", "\u2F00"},
		{"\uF900", "\u8C48"}, // CJK compatibility ideograph
		{"A", "A"},
		{"\u2F00x", "\u2F00x"}, // multi-character texts are kept
	}
	for _, test := range cases {
		info := New()
		info.Set(1, test.in)
		if got := info.Map[1]; got != test.want {
			t.Errorf("Set(%q): got %q, want %q", test.in, got, test.want)
		}
	}
}

func TestSubset(t *testing.T) {
	info := New()
	info.Set(1, "a")
	info.Set(2, "b")
	info.Set(3, "c")

	sub := info.Subset(map[glyph.ID]bool{1: true, 3: true})

	want := map[glyph.ID]string{1: "a", 3: "c"}
	if d := cmp.Diff(want, sub.Map); d != "" {
		t.Errorf("subset differs (-want +got):\n%s", d)
	}
}

func FuzzRead(f *testing.F) {
	f.Add([]byte("begincmap\n1 beginbfchar\n<0001> <0041>\nendbfchar\nendcmap\n"))
	f.Add([]byte("beginbfrange <0000> <FFFF> <0000> endbfrange"))
	f.Add([]byte("<not a cmap>"))
	f.Fuzz(func(t *testing.T, data []byte) {
		info, err := Read(bytes.NewReader(data))
		if err != nil {
			return
		}
		// whatever parses must also serialize
		err = info.Write(&bytes.Buffer{})
		if err != nil {
			t.Error(err)
		}
	})
}
