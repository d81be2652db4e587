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

package font

import (
	"testing"

	"playa.dev/playa"
)

// Resolve and the resolver accessors are no-ops on direct (non-
// Reference) objects, so a zero-value Document (no backing source) is
// enough to exercise font decoding against literal test fixtures.
func newTestDocument() *playa.Document {
	return &playa.Document{}
}

func TestReadDescriptorMissing(t *testing.T) {
	doc := newTestDocument()
	if got := ReadDescriptor(doc, playa.Null{}); got != nil {
		t.Errorf("ReadDescriptor(missing) = %+v, want nil", got)
	}
}

func TestReadDescriptorFlags(t *testing.T) {
	doc := newTestDocument()
	dict := playa.Dict{
		"FontName": playa.Name("Test-Bold"),
		"Flags":    playa.Integer(flagSymbolic | flagItalic | flagForceBold),
		"StemV":    playa.Integer(80),
		"Ascent":   playa.Integer(700),
		"Descent":  playa.Integer(-200),
	}

	res := ReadDescriptor(doc, dict)
	if res == nil {
		t.Fatal("ReadDescriptor = nil, want non-nil")
	}
	if res.FontName != "Test-Bold" {
		t.Errorf("FontName = %q, want Test-Bold", res.FontName)
	}
	if !res.IsSymbolic || !res.IsItalic || !res.ForceBold {
		t.Errorf("flags not decoded: %+v", res)
	}
	if res.IsSerif || res.IsFixedPitch {
		t.Errorf("unset flags decoded as set: %+v", res)
	}
	if res.StemV != 80 {
		t.Errorf("StemV = %v, want 80", res.StemV)
	}
	if res.Ascent != 700 || res.Descent != -200 {
		t.Errorf("Ascent/Descent = %v/%v, want 700/-200", res.Ascent, res.Descent)
	}
}

func TestReadDescriptorDefaultStemV(t *testing.T) {
	doc := newTestDocument()
	res := ReadDescriptor(doc, playa.Dict{})
	if res.StemV != -1 {
		t.Errorf("StemV with no /StemV entry = %v, want -1 (unset sentinel)", res.StemV)
	}
}

func TestReadDescriptorBBox(t *testing.T) {
	doc := newTestDocument()
	dict := playa.Dict{
		"FontBBox": playa.Array{playa.Integer(-10), playa.Integer(-20), playa.Integer(100), playa.Integer(200)},
	}
	res := ReadDescriptor(doc, dict)
	if res.FontBBox == nil {
		t.Fatal("FontBBox = nil, want decoded rectangle")
	}
	want := playa.Rectangle{LLx: -10, LLy: -20, URx: 100, URy: 200}
	if *res.FontBBox != want {
		t.Errorf("FontBBox = %+v, want %+v", *res.FontBBox, want)
	}
}
