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

package pdfenc

// An Encoding is a mapping from single byte codes to glyph names.
type Encoding struct {
	Encoding [256]string
	Has      map[string]bool
}

// has derives the set of glyph names a generated [256]string table
// assigns, skipping the ".notdef"/"" placeholder, for Encoding.Has;
// deriving it from the table avoids a second hand-maintained literal
// that could drift out of sync with it.
func has(enc [256]string) map[string]bool {
	m := make(map[string]bool, 256)
	for _, name := range enc {
		if name != "" && name != ".notdef" {
			m[name] = true
		}
	}
	return m
}

// Standard is the Adobe Standard Encoding for Latin text.
//
// See Appendix D.2 of PDF 32000-1:2008.
var Standard = Encoding{
	Encoding: StandardEncoding,
	Has:      has(StandardEncoding),
}

// WinAnsi is the PDF version of the standard Microsoft Windows specific
// encoding for Latin text in Western writing systems.
//
// See Appendix D.2 of PDF 32000-1:2008.
var WinAnsi = Encoding{
	Encoding: winAnsiEncoding,
	Has:      has(winAnsiEncoding),
}

// MacRoman is the PDF version of the MacOS standard encoding for Latin
// text in Western writing systems.
//
// See Appendix D.2 of PDF 32000-1:2008.
var MacRoman = Encoding{
	Encoding: macRomanEncoding,
	Has:      has(macRomanEncoding),
}

// MacExpert is an encoding which contains more obscure characters.
//
// See Appendix D.4 of PDF 32000-1:2008.
var MacExpert = Encoding{
	Encoding: macExpertEncoding,
	Has:      macExpertEncodingHas,
}

// PDFDoc is an encoding for text strings in a PDF document outside the
// document's content streams (spec.md's "text string" values, decoded
// by the root package's TextString).
//
// See Appendix D.2 of PDF 32000-1:2008.
var PDFDoc = Encoding{
	Encoding: pdfDocEncoding,
	Has:      has(pdfDocEncoding),
}
