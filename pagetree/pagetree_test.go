// playa - a low-level PDF object and content decoder
// Copyright (C) 2026  The playa authors
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

package pagetree

import (
	"testing"

	"playa.dev/playa"
)

// openFixture parses a hand-written PDF body via the full Open path.
// It deliberately omits an xref table so Open falls back to scanning
// for "N G obj" markers (spec.md §4.3) — the simplest way to hand a
// real *playa.Document to an external-package test without a writer.
func openFixture(t *testing.T, body string) *playa.Document {
	t.Helper()
	doc, err := playa.Open(playa.NewSource([]byte(body)), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return doc
}

const fixturePDF = `%PDF-1.7
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 /MediaBox [0 0 612 792] /Resources << /Font << >> >> >>
endobj
3 0 obj
<< /Type /Page /Parent 2 0 R >>
endobj
4 0 obj
<< /Type /Page /Parent 2 0 R /Rotate 90 >>
endobj
trailer
<< /Root 1 0 R >>
%%EOF
`

func TestPagesFlattenWithInheritance(t *testing.T) {
	doc := openFixture(t, fixturePDF)

	pages, err := Pages(doc)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	if pages[0].MediaBox == nil || pages[0].MediaBox.URx != 612 {
		t.Errorf("pages[0].MediaBox = %+v, want inherited 612-wide box", pages[0].MediaBox)
	}
	if pages[0].Rotate != 0 {
		t.Errorf("pages[0].Rotate = %d, want 0 (no own /Rotate, none inherited)", pages[0].Rotate)
	}
	if pages[1].Rotate != 90 {
		t.Errorf("pages[1].Rotate = %d, want 90 (own /Rotate overrides)", pages[1].Rotate)
	}
	if pages[1].MediaBox == nil || pages[1].MediaBox.URx != 612 {
		t.Errorf("pages[1].MediaBox not inherited from ancestor")
	}
	if pages[0].Resources == nil {
		t.Error("pages[0].Resources not inherited from ancestor")
	}
}

func TestPageLabelsDecimalAndRoman(t *testing.T) {
	doc := openFixture(t, fixturePDF)

	root := playa.Dict{
		"Nums": playa.Array{
			playa.Integer(0), playa.Dict{"S": playa.Name("r")},
			playa.Integer(3), playa.Dict{"S": playa.Name("D"), "St": playa.Integer(1)},
		},
	}
	ranges, err := Labels(doc, root)
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}

	if got := LabelForPage(ranges, 0); got != "i" {
		t.Errorf("LabelForPage(0) = %q, want %q", got, "i")
	}
	if got := LabelForPage(ranges, 2); got != "iii" {
		t.Errorf("LabelForPage(2) = %q, want %q", got, "iii")
	}
	if got := LabelForPage(ranges, 3); got != "1" {
		t.Errorf("LabelForPage(3) = %q, want %q", got, "1")
	}
	if got := LabelForPage(ranges, 5); got != "3" {
		t.Errorf("LabelForPage(5) = %q, want %q", got, "3")
	}
}

func TestToLettersCycles(t *testing.T) {
	cases := map[int]string{1: "A", 26: "Z", 27: "AA", 52: "ZZ", 53: "AAA"}
	for n, want := range cases {
		if got := toLetters(n, false); got != want {
			t.Errorf("toLetters(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestPageByNumber(t *testing.T) {
	pages := []*Page{{Index: 0}, {Index: 1}, {Index: 2}}
	p, ok := PageByNumber(pages, "2")
	if !ok || p.Index != 1 {
		t.Errorf("PageByNumber(2) = %+v, %v, want pages[1], true", p, ok)
	}
	if _, ok := PageByNumber(pages, "0"); ok {
		t.Error("PageByNumber(0) = ok, want not found")
	}
	if _, ok := PageByNumber(pages, "9"); ok {
		t.Error("PageByNumber(9) = ok, want not found (out of range)")
	}
}
