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

package playa

import "testing"

func TestReconstructXrefFindsObjectsWithoutAXrefTable(t *testing.T) {
	data := []byte("%PDF-1.4\n" +
		"1 0 obj\n(hello)\nendobj\n" +
		"2 0 obj\n<< /Type /Catalog /Pages 3 0 R >>\nendobj\n" +
		"trailer\n<< /Root 2 0 R /Size 3 >>\n" +
		"%%EOF")
	src := NewSource(data)

	xref, trailer, err := reconstructXref(src)
	if err != nil {
		t.Fatalf("reconstructXref = %v", err)
	}
	if len(xref) != 2 {
		t.Fatalf("len(xref) = %d, want 2", len(xref))
	}
	for num, e := range xref {
		if e.Kind != xrefInUse {
			t.Errorf("xref[%d].Kind = %v, want xrefInUse", num, e.Kind)
		}
	}

	s := newScanner(src, xref[2].Pos, src.Size())
	num, _, obj, rerr := s.readIndirectObject()
	if rerr != nil {
		t.Fatalf("readIndirectObject at xref[2].Pos = %v", rerr)
	}
	if num != 2 {
		t.Errorf("num = %d, want 2", num)
	}
	dict, ok := obj.(Dict)
	if !ok || dict["Type"] != Name("Catalog") {
		t.Errorf("obj = %#v, want a Catalog dict", obj)
	}

	if root, ok := trailer["Root"].(Reference); !ok || root.Number != 2 {
		t.Errorf("trailer[Root] = %#v, want Reference{2,0}", trailer["Root"])
	}
}

func TestReconstructXrefHighestGenerationWins(t *testing.T) {
	data := []byte("%PDF-1.4\n" +
		"5 0 obj\n(old)\nendobj\n" +
		"5 1 obj\n(new)\nendobj\n" +
		"trailer\n<< /Root 5 1 R >>\n%%EOF")
	src := NewSource(data)

	xref, _, err := reconstructXref(src)
	if err != nil {
		t.Fatalf("reconstructXref = %v", err)
	}
	e := xref[5]
	if e.Generation != 1 {
		t.Fatalf("xref[5].Generation = %d, want 1 (higher generation wins)", e.Generation)
	}
	s := newScanner(src, e.Pos, src.Size())
	_, _, obj, rerr := s.readIndirectObject()
	if rerr != nil {
		t.Fatalf("readIndirectObject = %v", rerr)
	}
	if str, ok := obj.(String); !ok || string(str) != "new" {
		t.Errorf("obj = %#v, want String(\"new\")", obj)
	}
}

func TestReconstructXrefNoObjectsErrors(t *testing.T) {
	src := NewSource([]byte("%PDF-1.4\nnot a pdf body at all\n%%EOF"))
	_, _, err := reconstructXref(src)
	if err == nil {
		t.Fatal("reconstructXref = nil error, want an error (no indirect objects found)")
	}
}

func TestAgglomerateTrailersMergesLastKeyWins(t *testing.T) {
	data := []byte("trailer\n<< /Root 1 0 R /Size 1 >>\n" +
		"more bytes\n" +
		"trailer\n<< /Size 9 >>\n%%EOF")
	src := NewSource(data)
	trailer := agglomerateTrailers(src)

	if root, ok := trailer["Root"].(Reference); !ok || root.Number != 1 {
		t.Errorf("trailer[Root] = %#v, want Reference{1,0} (from the first trailer)", trailer["Root"])
	}
	if size, ok := trailer["Size"].(Integer); !ok || size != 9 {
		t.Errorf("trailer[Size] = %#v, want Integer(9) (the later trailer wins)", trailer["Size"])
	}
}

func TestFindIndirectObjectMarkers(t *testing.T) {
	data := []byte("junk 1 0 obj\n(x)\nendobj\nmore junk\n22 3 obj\n(y)\nendobj\n")
	src := NewSource(data)
	markers := findIndirectObjectMarkers(src)
	if len(markers) != 2 {
		t.Fatalf("len(markers) = %d, want 2", len(markers))
	}
	s := newScanner(src, markers[0], src.Size())
	num, gen, _, err := s.readIndirectObject()
	if err != nil {
		t.Fatalf("readIndirectObject at markers[0] = %v", err)
	}
	if num != 1 || gen != 0 {
		t.Errorf("first marker = %d %d obj, want 1 0 obj", num, gen)
	}
	s = newScanner(src, markers[1], src.Size())
	num, gen, _, err = s.readIndirectObject()
	if err != nil {
		t.Fatalf("readIndirectObject at markers[1] = %v", err)
	}
	if num != 22 || gen != 3 {
		t.Errorf("second marker = %d %d obj, want 22 3 obj", num, gen)
	}
}
