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
	"playa.dev/playa"
	"playa.dev/playa/font/pdfenc"
)

// SimpleEncoding maps the 256 character codes of a simple font to
// glyph names. An empty entry means the code is unmapped (spec.md
// §4.9).
type SimpleEncoding struct {
	Names [256]string
}

// ReadSimpleEncoding resolves a simple font's /Encoding entry
// (spec.md §4.9): a base encoding, named directly or via a
// /BaseEncoding entry, overlaid with a /Differences array. symbolic
// and embedded steer the PDF-spec fallback when no base encoding is
// named at all: a symbolic embedded font falls back to its own
// built-in encoding (reported here as all-empty, since that encoding
// lives in the font program this module does not parse), a
// non-symbolic or non-embedded font falls back to StandardEncoding.
func ReadSimpleEncoding(doc *playa.Document, encObj playa.Object, symbolic, embedded bool) *SimpleEncoding {
	res := &SimpleEncoding{}

	resolved := doc.Resolve(encObj)
	switch v := resolved.(type) {
	case playa.Null:
		if !symbolic || !embedded {
			res.Names = pdfenc.Standard.Encoding
		}
	case playa.Name:
		applyBaseEncoding(res, string(v))
	case playa.Dict:
		base, _ := doc.GetName(v["BaseEncoding"])
		if base != "" {
			applyBaseEncoding(res, string(base))
		} else if !symbolic || !embedded {
			res.Names = pdfenc.Standard.Encoding
		}
		if diffs, ok := doc.GetArray(v["Differences"]); ok {
			applyDifferences(res, doc, diffs)
		}
	}

	return res
}

func applyBaseEncoding(res *SimpleEncoding, name string) {
	switch name {
	case "WinAnsiEncoding":
		res.Names = pdfenc.WinAnsi.Encoding
	case "MacRomanEncoding":
		res.Names = pdfenc.MacRoman.Encoding
	case "MacExpertEncoding":
		res.Names = pdfenc.MacExpert.Encoding
	case "StandardEncoding":
		res.Names = pdfenc.Standard.Encoding
	}
}

func applyDifferences(res *SimpleEncoding, doc *playa.Document, diffs playa.Array) {
	code := -1
	for _, x := range diffs {
		switch v := doc.Resolve(x).(type) {
		case playa.Integer:
			code = int(v)
		case playa.Name:
			if code >= 0 && code < 256 {
				res.Names[code] = string(v)
				code++
			}
		}
	}
}
