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

// Package cmap parses PDF CMaps: encoding CMaps (byte sequence -> CID,
// spec.md §4.9's composite-font decoding) and ToUnicode CMaps (code or
// CID -> Unicode string, spec.md §4.9's Unicode resolution order (1)),
// per spec.md §4.9's "CMap parser" design.
package cmap

import (
	type1 "seehuhn.de/go/postscript/cid"

	"playa.dev/playa/font/charcode"
)

// Single maps one character code directly to a CID (begincidchar).
type Single struct {
	Code  uint32
	Value type1.CID
}

// Range maps a contiguous run of character codes, First..Last, to
// consecutive CIDs starting at Value (begincidrange).
type Range struct {
	First, Last uint32
	Value       type1.CID
}

// Info is a parsed encoding CMap: the mapping from character-code
// byte sequences to CIDs that a composite (Type0) font's /Encoding
// entry names, per spec.md §4.9.
type Info struct {
	Name    string
	ROS     *type1.SystemInfo
	WMode   int
	CS      charcode.CodeSpaceRange
	Singles []Single
	Ranges  []Range

	decoder *charcode.Decoder
}

// Decode reads one character code from the front of s, returning the
// code, its CID, and the number of bytes consumed. A code with no
// CID mapping decodes to CID 0 (.notdef), matching how PDF composite
// fonts treat an unmapped code: never an error, never a guess at a
// different CID.
func (info *Info) Decode(s []byte) (code uint32, cid type1.CID, consumed int) {
	if info.decoder == nil {
		info.decoder = charcode.NewDecoder(info.CS)
	}
	code, consumed, _ = info.decoder.Decode(s)
	if consumed == 0 {
		return 0, 0, 0
	}
	return code, info.lookup(code), consumed
}

func (info *Info) lookup(code uint32) type1.CID {
	for _, s := range info.Singles {
		if s.Code == code {
			return s.Value
		}
	}
	for _, r := range info.Ranges {
		if code >= r.First && code <= r.Last {
			return r.Value + type1.CID(code-r.First)
		}
	}
	return 0
}

// Identity is the built-in Identity-H/Identity-V encoding: two-byte
// codes map directly to CIDs of the same value.
func Identity(name string, wmode int) *Info {
	return &Info{
		Name:  name,
		ROS:   &type1.SystemInfo{Registry: "Adobe", Ordering: "Identity", Supplement: 0},
		WMode: wmode,
		CS:    charcode.CodeSpaceRange{{Low: []byte{0, 0}, High: []byte{0xFF, 0xFF}}},
		Ranges: []Range{
			{First: 0, Last: 0xFFFF, Value: 0},
		},
	}
}
