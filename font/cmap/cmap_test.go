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

package cmap

import (
	"strings"
	"testing"

	type1 "seehuhn.de/go/postscript/cid"

	"playa.dev/playa/font/charcode"
)

func TestIdentityHDecodesTwoByteCodeToMatchingCID(t *testing.T) {
	// spec.md §8 scenario 4's two-byte code 0x82 0xA0.
	info := Identity("Identity-H", 0)
	code, cid, consumed := info.Decode([]byte{0x82, 0xA0})
	if consumed != 2 {
		t.Fatalf("consumed = %d, want 2", consumed)
	}
	if cid != type1.CID(code) {
		t.Errorf("cid = %v, want %v (Identity maps every code to itself)", cid, code)
	}
}

func TestInfoDecodeUnmappedCodeYieldsNotdef(t *testing.T) {
	cs := charcode.CodeSpaceRange{{Low: []byte{0x00, 0x00}, High: []byte{0xFF, 0xFF}}}
	info := &Info{
		CS:     cs,
		Ranges: []Range{{First: 0, Last: 0xFF, Value: 1}},
	}
	_, cid, consumed := info.Decode([]byte{0xFF, 0xFF})
	if consumed != 2 {
		t.Fatalf("consumed = %d, want 2", consumed)
	}
	if cid != 0 {
		t.Errorf("cid = %v, want 0 (.notdef) for a code outside every range", cid)
	}
}

func TestInfoLookupSingleOverridesRange(t *testing.T) {
	cs := charcode.CodeSpaceRange{{Low: []byte{0x00, 0x00}, High: []byte{0xFF, 0xFF}}}
	dec := charcode.NewDecoder(cs)
	code, _, _ := dec.Decode([]byte{0x00, 0x41})

	info := &Info{
		CS:      cs,
		Singles: []Single{{Code: code, Value: 100}},
		Ranges:  []Range{{First: 0, Last: 0xFFFF, Value: 1}},
	}
	_, cid, _ := info.Decode([]byte{0x00, 0x41})
	if cid != 100 {
		t.Errorf("cid = %v, want 100 (a direct begincidchar entry wins over an overlapping range)", cid)
	}
}

func TestInfoRangeOffsetAddsToValue(t *testing.T) {
	// Vary only the leading byte of the code (the byte this decoder
	// treats as most significant) so First/Last/query stay an
	// ordered integer run regardless of internal code encoding.
	cs := charcode.CodeSpaceRange{{Low: []byte{0x00, 0x00}, High: []byte{0xFF, 0x00}}}
	dec := charcode.NewDecoder(cs)
	first, _, _ := dec.Decode([]byte{0x00, 0x00})
	last, _, _ := dec.Decode([]byte{0x02, 0x00})
	query, _, _ := dec.Decode([]byte{0x01, 0x00})

	info := &Info{CS: cs, Ranges: []Range{{First: first, Last: last, Value: 200}}}
	_, cid, _ := info.Decode([]byte{0x01, 0x00})
	if query < first || query > last {
		t.Fatalf("test setup invalid: query %v not within [%v,%v]", query, first, last)
	}
	want := type1.CID(200) + type1.CID(query-first)
	if cid != want {
		t.Errorf("cid = %v, want %v (range Value plus code offset from First)", cid, want)
	}
}

func TestReadEncodingCMapCIDCharAndRange(t *testing.T) {
	src := `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapType 1 def
/CMapName /Test-CMap def
/CIDSystemInfo 3 dict dup begin
/Registry (Adobe) def
/Ordering (Japan1) def
/Supplement 0 def
end def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 begincidchar
<0041> 100
endcidchar
1 begincidrange
<0000> <0002> 200
endcidrange
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`
	info, err := Read(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("Read = %v", err)
	}
	if info.ROS.Registry != "Adobe" || info.ROS.Ordering != "Japan1" {
		t.Errorf("ROS = %+v, want Adobe-Japan1", info.ROS)
	}
	_, cid, consumed := info.Decode([]byte{0x00, 0x41})
	if consumed != 2 {
		t.Fatalf("consumed = %d, want 2", consumed)
	}
	if cid != 100 {
		t.Errorf("cid(<0041>) = %v, want 100 (begincidchar entry)", cid)
	}
}
