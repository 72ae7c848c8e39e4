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
	"fmt"
	"io"
	"sort"
	"text/template"
	"unicode/utf16"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/glyph"
)

// Single is one bfchar entry.
type Single struct {
	GID  glyph.ID
	Text string
}

// Singles returns the mapping as bfchar entries, sorted by glyph ID.
func (info *Info) Singles() []Single {
	gids := maps.Keys(info.Map)
	sort.Slice(gids, func(i, j int) bool { return gids[i] < gids[j] })

	res := make([]Single, len(gids))
	for i, gid := range gids {
		res[i] = Single{GID: gid, Text: info.Map[gid]}
	}
	return res
}

// Write writes the mapping as a ToUnicode CMap for the identity
// encoding.  All entries are emitted as bfchar sections of at most 100
// entries each.
func (info *Info) Write(w io.Writer) error {
	tmpl := template.Must(template.New("CMap").Funcs(template.FuncMap{
		"SingleChunks": singleChunks,
		"Single":       formatSingle,
	}).Parse(toUnicodeTmpl))
	return tmpl.Execute(w, info.Singles())
}

func formatSingle(s Single) string {
	return fmt.Sprintf("<%04x> %s", s.GID, formatText(s.Text))
}

func formatText(s string) string {
	var text []byte
	for _, x := range utf16.Encode([]rune(s)) {
		text = append(text, byte(x>>8), byte(x))
	}
	return fmt.Sprintf("<%02X>", text)
}

const chunkSize = 100

func singleChunks(x []Single) [][]Single {
	var res [][]Single
	for len(x) >= chunkSize {
		res = append(res, x[:chunkSize])
		x = x[chunkSize:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

var toUnicodeTmpl = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo <</Registry(Adobe)/Ordering(UCS)/Supplement 0>> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
{{range SingleChunks . -}}
{{len .}} beginbfchar
{{range . -}}
{{Single .}}
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`
