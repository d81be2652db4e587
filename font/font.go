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
	"bytes"
	"fmt"

	type1 "seehuhn.de/go/postscript/cid"

	"playa.dev/playa"
	"playa.dev/playa/font/cmap"
	"playa.dev/playa/font/names"
)

// Subtype distinguishes the PDF font dictionary subtypes spec.md
// §4.9 covers.
type Subtype int

// The font subtypes a /Font dictionary's /Subtype entry can name.
const (
	Unknown Subtype = iota
	Type1
	MMType1
	TrueType
	Type3
	Type0
)

func (t Subtype) String() string {
	switch t {
	case Type1:
		return "Type1"
	case MMType1:
		return "MMType1"
	case TrueType:
		return "TrueType"
	case Type3:
		return "Type3"
	case Type0:
		return "Type0"
	default:
		return "Unknown"
	}
}

// Dict holds the decoded contents of a /Font dictionary (and, for
// Type0, its single /DescendantFonts CIDFont dictionary), enough to
// decode a shown string into glyph widths and Unicode text per
// spec.md §4.9.
type Dict struct {
	Subtype    Subtype
	BaseFont   string
	Descriptor *Descriptor

	// Simple-font fields (Type1, MMType1, TrueType, Type3).
	Encoding *SimpleEncoding
	Widths   [256]float64
	Symbolic bool

	// Composite-font fields (Type0).
	CIDSystemInfo *type1.SystemInfo
	CIDWidths     map[type1.CID]float64
	DefaultWidth  float64
	WMode         int
	CMap          *cmap.Info

	ToUnicode *cmap.ToUnicodeInfo

	dingbats bool
}

// ReadDict resolves obj as a /Font dictionary, following a single
// level of /DescendantFonts for Type0 composite fonts, per spec.md
// §4.9. An unsupported or malformed font subtype is reported via a
// *playa.Error rather than guessed at.
func ReadDict(doc *playa.Document, obj playa.Object) (*Dict, error) {
	fontDict, ok := doc.GetDict(obj)
	if !ok {
		return nil, &playa.Error{Kind: playa.KindFont, Err: fmt.Errorf("missing font dictionary")}
	}

	subtypeName, _ := doc.GetName(fontDict["Subtype"])
	res := &Dict{}
	if name, ok := doc.GetName(fontDict["BaseFont"]); ok {
		res.BaseFont = string(name)
	}

	switch subtypeName {
	case "Type0":
		res.Subtype = Type0
		return readType0(doc, fontDict, res)
	case "Type1":
		res.Subtype = Type1
	case "MMType1":
		res.Subtype = MMType1
	case "TrueType":
		res.Subtype = TrueType
	case "Type3":
		res.Subtype = Type3
	default:
		return nil, &playa.Error{Kind: playa.KindUnsupported, Err: fmt.Errorf("font subtype %q", subtypeName)}
	}

	res.Descriptor = ReadDescriptor(doc, fontDict["FontDescriptor"])
	symbolic := res.Descriptor != nil && res.Descriptor.IsSymbolic
	res.Symbolic = symbolic
	// embedded is always reported false here: this module never parses
	// embedded font program data, so a symbolic font's built-in
	// encoding is unavailable and StandardEncoding is the best
	// fallback available for an unnamed base encoding (spec.md §9).
	res.Encoding = ReadSimpleEncoding(doc, fontDict["Encoding"], symbolic, false)

	missingWidth := 0.0
	if res.Descriptor != nil {
		missingWidth = res.Descriptor.MissingWidth
	}
	res.Widths = ReadSimpleWidths(doc, fontDict, missingWidth)

	res.dingbats = res.BaseFont == "ZapfDingbats" || hasSuffix(res.BaseFont, "ZapfDingbats")

	if tu, ok := doc.GetStream(fontDict["ToUnicode"]); ok {
		if data, derr := doc.DecodeStream(tu); derr == nil {
			if parsed, err := cmap.ReadToUnicode(bytesReader(data)); err == nil {
				res.ToUnicode = parsed
			}
		}
	}

	return res, nil
}

func readType0(doc *playa.Document, fontDict playa.Dict, res *Dict) (*Dict, error) {
	descFonts, ok := doc.GetArray(fontDict["DescendantFonts"])
	if !ok || len(descFonts) < 1 {
		return nil, &playa.Error{Kind: playa.KindFont, Err: fmt.Errorf("Type0 font with no descendant fonts")}
	}
	cidFontDict, ok := doc.GetDict(descFonts[0])
	if !ok {
		return nil, &playa.Error{Kind: playa.KindFont, Err: fmt.Errorf("missing CIDFont dictionary")}
	}

	res.Descriptor = ReadDescriptor(doc, cidFontDict["FontDescriptor"])

	if rosDict, ok := doc.GetDict(cidFontDict["CIDSystemInfo"]); ok {
		ros := &type1.SystemInfo{}
		if s, ok := doc.GetString(rosDict["Registry"]); ok {
			ros.Registry = string(s)
		}
		if s, ok := doc.GetString(rosDict["Ordering"]); ok {
			ros.Ordering = string(s)
		}
		if n, ok := doc.GetInt(rosDict["Supplement"]); ok {
			ros.Supplement = int32(n)
		}
		res.CIDSystemInfo = ros
	}

	res.CIDWidths, res.DefaultWidth = ReadCompositeWidths(doc, cidFontDict)

	switch enc := doc.Resolve(fontDict["Encoding"]).(type) {
	case playa.Name:
		if info, ok := cmap.OpenPredefined(string(enc)); ok {
			res.CMap = info
		} else {
			return nil, &playa.Error{Kind: playa.KindUnsupported, Err: fmt.Errorf("predefined CMap %q", enc)}
		}
	case *playa.Stream:
		data, derr := doc.DecodeStream(enc)
		if derr != nil {
			return nil, derr
		}
		parsed, err := cmap.Read(bytesReader(data), nil)
		if err != nil {
			return nil, err
		}
		res.CMap = parsed
	default:
		return nil, &playa.Error{Kind: playa.KindFont, Err: fmt.Errorf("missing /Encoding on Type0 font")}
	}
	res.WMode = res.CMap.WMode

	if tu, ok := doc.GetStream(fontDict["ToUnicode"]); ok {
		if data, derr := doc.DecodeStream(tu); derr == nil {
			if parsed, err := cmap.ReadToUnicode(bytesReader(data)); err == nil {
				res.ToUnicode = parsed
			}
		}
	}

	return res, nil
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

// Glyph is one decoded character-code unit of a shown string: its raw
// code, the number of bytes it consumed, its CID (the code plus one
// for simple fonts), its advance width in text-space units (already
// divided by 1000), and its resolved Unicode text, per spec.md §4.9
// and §5 (text-showing operators).
type Glyph struct {
	Code           uint32
	Consumed       int
	CID            type1.CID
	Width          float64
	Text           string
	UseWordSpacing bool
}

// Decode splits s into its constituent character codes and resolves
// each to a Glyph, per spec.md §4.9. Composite fonts use the
// font's encoding CMap's code space; simple fonts consume one byte
// per code.
func (d *Dict) Decode(s playa.String) []Glyph {
	if d.Subtype == Type0 {
		return d.decodeComposite([]byte(s))
	}
	return d.decodeSimple([]byte(s))
}

func (d *Dict) decodeSimple(s []byte) []Glyph {
	out := make([]Glyph, 0, len(s))
	for _, b := range s {
		g := Glyph{
			Code:           uint32(b),
			Consumed:       1,
			CID:            type1.CID(b) + 1,
			Width:          d.Widths[b] / 1000,
			UseWordSpacing: b == 0x20,
		}
		g.Text = d.resolveSimpleText(b)
		out = append(out, g)
	}
	return out
}

func (d *Dict) decodeComposite(s []byte) []Glyph {
	var out []Glyph
	for len(s) > 0 {
		code, cid, consumed := uint32(0), type1.CID(0), 0
		if d.CMap != nil {
			code, cid, consumed = d.CMap.Decode(s)
		}
		if consumed == 0 {
			consumed = 1
			code = uint32(s[0])
		}
		w := d.DefaultWidth
		if d.CIDWidths != nil {
			if v, ok := d.CIDWidths[cid]; ok {
				w = v
			}
		}
		g := Glyph{
			Code:     code,
			Consumed: consumed,
			CID:      cid,
			Width:    w / 1000,
		}
		if d.ToUnicode != nil {
			if text, n, ok := d.ToUnicode.Lookup(s[:consumed]); ok && n == consumed {
				g.Text = string(text)
			}
		}
		out = append(out, g)
		s = s[consumed:]
	}
	return out
}

// resolveSimpleText implements spec.md §4.9's Unicode resolution
// order for a simple-font code: an explicit /ToUnicode entry first,
// then the glyph name (from /Encoding) run through the Adobe Glyph
// List algorithm, then the empty string.
func (d *Dict) resolveSimpleText(code byte) string {
	if d.ToUnicode != nil {
		if text, _, ok := d.ToUnicode.Lookup([]byte{code}); ok {
			return string(text)
		}
	}
	if d.Encoding != nil {
		name := d.Encoding.Names[code]
		if name != "" {
			if runes := names.ToUnicode(name, d.dingbats); runes != nil {
				return string(runes)
			}
		}
	}
	return ""
}

func bytesReader(b []byte) *bytes.Reader { return bytes.NewReader(b) }
