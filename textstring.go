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
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"

	"playa.dev/playa/font/names"
	"playa.dev/playa/font/pdfenc"
)

// TextString decodes a PDF "text string" byte value (the /Info
// dictionary's /Title, /Author, …, annotation contents, outline
// titles) into Go text. A leading 0xFE 0xFF byte-order mark means
// UTF-16BE; otherwise the bytes are PDFDocEncoding, decoded through
// the glyph-name tables in font/pdfenc and font/names the same way a
// simple font's codes are. Producers that instead wrote raw MacRoman
// bytes outside PDFDocEncoding's range fall back to golang.org/x/text's
// Macintosh charmap rather than losing the byte.
func TextString(s String) string {
	if len(s) >= 2 && s[0] == 0xFE && s[1] == 0xFF {
		return decodeUTF16BE(s[2:])
	}
	if out, ok := decodePDFDoc(s); ok {
		return out
	}
	decoded, err := charmap.Macintosh.NewDecoder().Bytes(s)
	if err != nil {
		return string(s)
	}
	return string(decoded)
}

func decodeUTF16BE(b []byte) string {
	u := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u = append(u, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return string(utf16.Decode(u))
}

// decodePDFDoc decodes s as PDFDocEncoding, succeeding only if every
// byte above 0x7F maps to a known glyph name with a single Unicode
// codepoint.
func decodePDFDoc(s String) (string, bool) {
	r := make([]rune, 0, len(s))
	for _, c := range s {
		if c < 0x80 {
			r = append(r, rune(c))
			continue
		}
		name := pdfenc.PDFDoc.Encoding[c]
		rr := names.ToUnicode(name, false)
		if len(rr) != 1 {
			return "", false
		}
		r = append(r, rr[0])
	}
	return string(r), true
}
