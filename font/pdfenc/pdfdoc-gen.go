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

// pdfDocEncoding is the PDFDocEncoding table of PDF 32000-1:2008
// Appendix D.2, used to decode "text string" values (/Info entries,
// annotation contents, outline titles) that don't carry a UTF-16BE
// byte-order mark. Unlike every other Latin encoding here it assigns
// glyph names to several codes below 0x20, reusing bytes that are
// control characters everywhere else.
var pdfDocEncoding = buildHighHalf(map[byte]string{
	0x18: "breve", 0x19: "caron", 0x1A: "circumflex", 0x1B: "dotaccent",
	0x1C: "hungarumlaut", 0x1D: "ogonek", 0x1E: "ring", 0x1F: "tilde",
	0x80: "bullet", 0x81: "dagger", 0x82: "daggerdbl", 0x83: "ellipsis",
	0x84: "emdash", 0x85: "endash", 0x86: "florin", 0x87: "fraction",
	0x88: "guilsinglleft", 0x89: "guilsinglright", 0x8A: "minus",
	0x8B: "perthousand", 0x8C: "quotedblbase", 0x8D: "quotedblleft",
	0x8E: "quotedblright", 0x8F: "quoteleft", 0x90: "quoteright",
	0x91: "quotesinglbase", 0x92: "trademark", 0x93: "fi", 0x94: "fl",
	0x95: "Lslash", 0x96: "OE", 0x97: "Scaron", 0x98: "Ydieresis",
	0x99: "Zcaron", 0x9A: "dotlessi", 0x9B: "lslash", 0x9C: "oe",
	0x9D: "scaron", 0x9E: "zcaron",
	0xA0: "Euro", 0xA1: "exclamdown", 0xA2: "cent", 0xA3: "sterling",
	0xA4: "currency", 0xA5: "yen", 0xA6: "brokenbar", 0xA7: "section",
	0xA8: "dieresis", 0xA9: "copyright", 0xAA: "ordfeminine",
	0xAB: "guillemotleft", 0xAC: "logicalnot", 0xAE: "registered",
	0xAF: "macron",
	0xB0: "degree", 0xB1: "plusminus", 0xB2: "twosuperior",
	0xB3: "threesuperior", 0xB4: "acute", 0xB5: "mu", 0xB6: "paragraph",
	0xB7: "periodcentered", 0xB8: "cedilla", 0xB9: "onesuperior",
	0xBA: "ordmasculine", 0xBB: "guillemotright", 0xBC: "onequarter",
	0xBD: "onehalf", 0xBE: "threequarters", 0xBF: "questiondown",
	0xC0: "Agrave", 0xC1: "Aacute", 0xC2: "Acircumflex", 0xC3: "Atilde",
	0xC4: "Adieresis", 0xC5: "Aring", 0xC6: "AE", 0xC7: "Ccedilla",
	0xC8: "Egrave", 0xC9: "Eacute", 0xCA: "Ecircumflex", 0xCB: "Edieresis",
	0xCC: "Igrave", 0xCD: "Iacute", 0xCE: "Icircumflex", 0xCF: "Idieresis",
	0xD0: "Eth", 0xD1: "Ntilde", 0xD2: "Ograve", 0xD3: "Oacute",
	0xD4: "Ocircumflex", 0xD5: "Otilde", 0xD6: "Odieresis",
	0xD7: "multiply", 0xD8: "Oslash", 0xD9: "Ugrave", 0xDA: "Uacute",
	0xDB: "Ucircumflex", 0xDC: "Udieresis", 0xDD: "Yacute", 0xDE: "Thorn",
	0xDF: "germandbls",
	0xE0: "agrave", 0xE1: "aacute", 0xE2: "acircumflex", 0xE3: "atilde",
	0xE4: "adieresis", 0xE5: "aring", 0xE6: "ae", 0xE7: "ccedilla",
	0xE8: "egrave", 0xE9: "eacute", 0xEA: "ecircumflex", 0xEB: "edieresis",
	0xEC: "igrave", 0xED: "iacute", 0xEE: "icircumflex", 0xEF: "idieresis",
	0xF0: "eth", 0xF1: "ntilde", 0xF2: "ograve", 0xF3: "oacute",
	0xF4: "ocircumflex", 0xF5: "otilde", 0xF6: "odieresis",
	0xF7: "divide", 0xF8: "oslash", 0xF9: "ugrave", 0xFA: "uacute",
	0xFB: "ucircumflex", 0xFC: "udieresis", 0xFD: "yacute", 0xFE: "thorn",
	0xFF: "ydieresis",
})
