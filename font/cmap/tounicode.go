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
	"fmt"
	"io"

	"seehuhn.de/go/postscript"

	"playa.dev/playa/font/charcode"
)

// ToUnicodeSingle maps one character code to a Unicode string
// (bfchar).
type ToUnicodeSingle struct {
	Code  uint32
	Value []rune
}

// ToUnicodeRange maps a contiguous run of codes, First..Last, to
// Unicode strings (bfrange). spec.md §4.9 documents two destination
// forms: (a)/(c) a single string, where only the final rune is
// incremented by the code's offset from First (Value is set, PerCode
// is nil); (b) an array of target strings, one per source code in the
// range, an independent lookup with no increment (PerCode is set,
// indexed by code-First; Value is nil). Exactly one of the two is
// populated for a given range.
type ToUnicodeRange struct {
	First, Last uint32
	Value       []rune
	PerCode     [][]rune
}

// resolve returns the Unicode text this range maps code to, given
// code is already known to satisfy First <= code <= Last.
func (r ToUnicodeRange) resolve(code uint32) ([]rune, bool) {
	if r.PerCode != nil {
		idx := code - r.First
		if int(idx) >= len(r.PerCode) || len(r.PerCode[idx]) == 0 {
			return nil, false
		}
		out := make([]rune, len(r.PerCode[idx]))
		copy(out, r.PerCode[idx])
		return out, true
	}
	if len(r.Value) == 0 {
		return nil, false
	}
	out := make([]rune, len(r.Value))
	copy(out, r.Value)
	out[len(out)-1] += rune(code - r.First)
	return out, true
}

// ToUnicodeInfo is a parsed ToUnicode CMap, spec.md §4.9's step (1) of
// the Unicode resolution order: code (or CID, for composite fonts
// whose /Encoding already produced one) to Unicode text.
type ToUnicodeInfo struct {
	CS      charcode.CodeSpaceRange
	Singles []ToUnicodeSingle
	Ranges  []ToUnicodeRange

	decoder *charcode.Decoder
}

// Lookup decodes one character code from the front of s and returns
// its Unicode text, the number of bytes consumed, and whether a
// mapping was found. An unmapped code reports ok=false; callers must
// not fabricate a substitute character (spec.md §9).
func (info *ToUnicodeInfo) Lookup(s []byte) (text []rune, consumed int, ok bool) {
	if info.decoder == nil {
		info.decoder = charcode.NewDecoder(info.CS)
	}
	code, consumed, valid := info.decoder.Decode(s)
	if !valid || consumed == 0 {
		return nil, consumed, false
	}
	for _, single := range info.Singles {
		if single.Code == code {
			return single.Value, consumed, true
		}
	}
	for _, r := range info.Ranges {
		if code < r.First || code > r.Last {
			continue
		}
		if text, ok := r.resolve(code); ok {
			return text, consumed, true
		}
	}
	return nil, consumed, false
}

// LookupCID looks up a CID directly, for composite fonts whose
// ToUnicode CMap is keyed by CID rather than by raw character code
// (an unusual but legal construction; spec.md §4.9 treats it the same
// as any other code-keyed lookup once the CID has been decoded).
func (info *ToUnicodeInfo) LookupCID(cid uint32) ([]rune, bool) {
	for _, single := range info.Singles {
		if single.Code == cid {
			return single.Value, true
		}
	}
	for _, r := range info.Ranges {
		if cid < r.First || cid > r.Last {
			continue
		}
		if text, ok := r.resolve(cid); ok {
			return text, true
		}
	}
	return nil, false
}

// ReadToUnicode parses the decoded bytes of a /ToUnicode CMap stream,
// per spec.md §4.9.
func ReadToUnicode(r io.Reader) (*ToUnicodeInfo, error) {
	raw, err := readRaw(r)
	if err != nil {
		return nil, err
	}
	codeMap, ok := raw["CodeMap"].(*postscript.CMapInfo)
	if !ok {
		return nil, fmt.Errorf("cmap: unsupported ToUnicode CMap format")
	}

	res := &ToUnicodeInfo{}
	for _, r := range codeMap.CodeSpaceRanges {
		res.CS = append(res.CS, charcode.Range{Low: r.Low, High: r.High})
	}
	if len(res.CS) == 0 {
		res.CS = charcode.CodeSpaceRange{{Low: []byte{0, 0}, High: []byte{0xFF, 0xFF}}}
	}
	dec := charcode.NewDecoder(res.CS)

	for _, m := range codeMap.BfChars {
		code, k, valid := dec.Decode(m.Src)
		if !valid || k != len(m.Src) {
			continue
		}
		text := bfDestToRunes(m.Dst)
		if text == nil {
			continue
		}
		res.Singles = append(res.Singles, ToUnicodeSingle{Code: code, Value: text})
	}
	for _, m := range codeMap.BfRanges {
		low, k1, v1 := dec.Decode(m.Low)
		high, k2, v2 := dec.Decode(m.High)
		if !v1 || !v2 || k1 != len(m.Low) || k2 != len(m.High) {
			continue
		}
		value, perCode := bfRangeDest(m.Dst)
		if value == nil && perCode == nil {
			continue
		}
		res.Ranges = append(res.Ranges, ToUnicodeRange{First: low, Last: high, Value: value, PerCode: perCode})
	}

	return res, nil
}

// bfDestToRunes converts a bfchar/bfrange destination, which may be a
// UTF-16BE PDFDocEncoded string or (rarely) an array of such strings
// for code points composed of multiple glyphs, to a flat rune
// sequence. Array destinations are rare; this module keeps only the
// first element, matching what a text-extraction reader needs.
func bfDestToRunes(dst postscript.Object) []rune {
	switch v := dst.(type) {
	case postscript.String:
		return utf16BEToRunes([]byte(v))
	case postscript.Array:
		if len(v) == 0 {
			return nil
		}
		if s, ok := v[0].(postscript.String); ok {
			return utf16BEToRunes([]byte(s))
		}
	}
	return nil
}

// bfRangeDest resolves a bfrange destination into one of spec.md
// §4.9's two forms: (a)/(c) a single string (value is non-nil,
// incremented per code by the caller) or (b) an array of target
// strings, one per source code in the range (perCode is non-nil,
// indexed directly by code-First with no increment). Unlike
// bfDestToRunes (used for bfchar, which is never form (b)), an array
// destination here is never truncated to its first element.
func bfRangeDest(dst postscript.Object) (value []rune, perCode [][]rune) {
	switch v := dst.(type) {
	case postscript.String:
		return utf16BEToRunes([]byte(v)), nil
	case postscript.Array:
		perCode = make([][]rune, len(v))
		for i, el := range v {
			if s, ok := el.(postscript.String); ok {
				perCode[i] = utf16BEToRunes([]byte(s))
			}
		}
		return nil, perCode
	}
	return nil, nil
}

func utf16BEToRunes(b []byte) []rune {
	if len(b)%2 != 0 {
		return nil
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	var out []rune
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF:
			lo := units[i+1]
			r := (rune(u)-0xD800)<<10 + (rune(lo) - 0xDC00) + 0x10000
			out = append(out, r)
			i++
		default:
			out = append(out, rune(u))
		}
	}
	return out
}
