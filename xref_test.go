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

import (
	"fmt"
	"testing"
)

func TestFindStartXrefLocatesLastOccurrence(t *testing.T) {
	data := "garbage startxref 0\nmore bytes\nstartxref\n123\n%%EOF"
	src := NewSource([]byte(data))
	pos, err := findStartXref(src)
	if err != nil {
		t.Fatalf("findStartXref = %v", err)
	}
	if pos != 123 {
		t.Errorf("findStartXref = %d, want 123 (the last startxref occurrence wins)", pos)
	}
}

// classicXrefFixture builds a minimal one-section PDF with a classic
// xref table: one free entry (object 0) and one in-use object.
func classicXrefFixture() []byte {
	obj1 := "1 0 obj\n(hello)\nendobj\n"
	header := "%PDF-1.4\n"
	objOffset := len(header)
	xrefOffset := len(header) + len(obj1)

	xrefTable := fmt.Sprintf(
		"xref\n0 2\n0000000000 65535 f \n%010d 00000 n \ntrailer\n<< /Size 2 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF",
		objOffset, xrefOffset,
	)
	return []byte(header + obj1 + xrefTable)
}

func TestReadXrefClassicTable(t *testing.T) {
	src := NewSource(classicXrefFixture())
	xref, trailer, err := readXref(src)
	if err != nil {
		t.Fatalf("readXref = %v", err)
	}
	if len(xref) != 2 {
		t.Fatalf("len(xref) = %d, want 2", len(xref))
	}
	if xref[0].Kind != xrefFree {
		t.Errorf("xref[0].Kind = %v, want xrefFree", xref[0].Kind)
	}
	e1 := xref[1]
	if e1.Kind != xrefInUse {
		t.Fatalf("xref[1].Kind = %v, want xrefInUse", e1.Kind)
	}
	if root, ok := trailer["Root"].(Reference); !ok || root.Number != 1 {
		t.Errorf("trailer[Root] = %#v, want Reference{1,0}", trailer["Root"])
	}

	s := newScanner(src, e1.Pos, src.Size())
	num, _, obj, rerr := s.readIndirectObject()
	if rerr != nil {
		t.Fatalf("readIndirectObject at xref[1].Pos = %v", rerr)
	}
	if num != 1 {
		t.Errorf("num = %d, want 1", num)
	}
	if str, ok := obj.(String); !ok || string(str) != "hello" {
		t.Errorf("obj = %#v, want String(\"hello\")", obj)
	}
}

func TestCheckXrefStreamDictRequiresSizeAndW(t *testing.T) {
	_, _, err := checkXrefStreamDict(Dict{})
	if err == nil {
		t.Fatal("checkXrefStreamDict(empty) = nil error, want an error (missing /Size and /W)")
	}

	w, sections, err := checkXrefStreamDict(Dict{
		"Size": Integer(5),
		"W":    Array{Integer(1), Integer(2), Integer(1)},
	})
	if err != nil {
		t.Fatalf("checkXrefStreamDict = %v", err)
	}
	if len(w) != 3 || w[0] != 1 || w[1] != 2 || w[2] != 1 {
		t.Errorf("w = %v, want [1 2 1]", w)
	}
	if len(sections) != 1 || sections[0].Start != 0 || sections[0].Size != 5 {
		t.Errorf("sections = %+v, want a default [0,5) section (no /Index)", sections)
	}
}

func TestCheckXrefStreamDictExplicitIndex(t *testing.T) {
	_, sections, err := checkXrefStreamDict(Dict{
		"Size": Integer(10),
		"W":    Array{Integer(1), Integer(1), Integer(1)},
		"Index": Array{
			Integer(0), Integer(1),
			Integer(5), Integer(2),
		},
	})
	if err != nil {
		t.Fatalf("checkXrefStreamDict = %v", err)
	}
	if len(sections) != 2 || sections[1].Start != 5 || sections[1].Size != 2 {
		t.Errorf("sections = %+v, want [{0 1} {5 2}]", sections)
	}
}

func TestDecodeXrefStreamRows(t *testing.T) {
	// w = [1,2,1]: type(1 byte), field2(2 bytes), field3(1 byte).
	w := []int{1, 2, 1}
	rows := []byte{
		0, 0, 0, 0, // free, gen 0
		1, 0, 50, 0, // in use at offset 50, gen 0
		2, 0, 3, 1, // compressed in container 3, index 1
	}
	xref := make(map[int]*xrefEntry)
	if err := decodeXrefStreamRows(xref, rows, w, []xrefSubSection{{Start: 0, Size: 3}}); err != nil {
		t.Fatalf("decodeXrefStreamRows = %v", err)
	}
	if xref[0].Kind != xrefFree {
		t.Errorf("xref[0].Kind = %v, want xrefFree", xref[0].Kind)
	}
	if e := xref[1]; e.Kind != xrefInUse || e.Pos != 50 {
		t.Errorf("xref[1] = %+v, want in use at offset 50", e)
	}
	if e := xref[2]; e.Kind != xrefCompressed || e.Container != 3 || e.Index != 1 {
		t.Errorf("xref[2] = %+v, want compressed{container=3,index=1}", e)
	}
}

func TestDecodeBigEndian(t *testing.T) {
	if got := decodeBigEndian([]byte{0x01, 0x02}); got != 0x0102 {
		t.Errorf("decodeBigEndian = %d, want %d", got, 0x0102)
	}
}
