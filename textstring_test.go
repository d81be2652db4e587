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

import "testing"

func TestTextStringASCII(t *testing.T) {
	got := TextString(String("Hello, world"))
	if got != "Hello, world" {
		t.Errorf("TextString(ASCII) = %q, want %q", got, "Hello, world")
	}
}

func TestTextStringUTF16BE(t *testing.T) {
	s := String([]byte{0xFE, 0xFF, 0x00, 0x41, 0x00, 0x42, 0x00, 0x43})
	got := TextString(s)
	if got != "ABC" {
		t.Errorf("TextString(UTF-16BE) = %q, want %q", got, "ABC")
	}
}

func TestTextStringPDFDocBullet(t *testing.T) {
	// 0x80 is "bullet" in PDFDocEncoding, U+2022.
	s := String([]byte{0x80})
	got := TextString(s)
	if got != "•" {
		t.Errorf("TextString(bullet) = %q, want %q", got, "•")
	}
}

func TestTextStringMacRomanFallback(t *testing.T) {
	// 0x9F is unassigned in PDFDocEncoding, so decodePDFDoc fails and
	// TextString falls back to the Macintosh charmap, where 0x9F
	// decodes to a real rune.
	s := String([]byte{0x9F})
	got := TextString(s)
	if len(got) == 0 {
		t.Errorf("TextString(MacRoman fallback) returned empty string")
	}
}
