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

package asciihex

import (
	"io"
	"strings"
	"testing"
)

func TestDecodeBasic(t *testing.T) {
	got, err := io.ReadAll(Decode(strings.NewReader("48656C6C6F>")))
	if err != nil {
		t.Fatalf("ReadAll = %v", err)
	}
	if string(got) != "Hello" {
		t.Errorf("Decode = %q, want %q", got, "Hello")
	}
}

func TestDecodeIgnoresWhitespace(t *testing.T) {
	got, err := io.ReadAll(Decode(strings.NewReader("48 65\n6C 6C\t6F>")))
	if err != nil {
		t.Fatalf("ReadAll = %v", err)
	}
	if string(got) != "Hello" {
		t.Errorf("Decode = %q, want %q", got, "Hello")
	}
}

func TestDecodeOddDigitCountPadsWithZero(t *testing.T) {
	// A trailing lone hex digit is completed with an implicit 0,
	// per the ASCIIHexDecode filter's documented behavior.
	got, err := io.ReadAll(Decode(strings.NewReader("4>")))
	if err != nil {
		t.Fatalf("ReadAll = %v", err)
	}
	if len(got) != 1 || got[0] != 0x40 {
		t.Errorf("Decode(%q) = %v, want [0x40]", "4>", got)
	}
}

func TestDecodeMissingTerminatorTolerated(t *testing.T) {
	got, err := io.ReadAll(Decode(strings.NewReader("48656C6C6F")))
	if err != nil {
		t.Fatalf("ReadAll = %v, want nil (missing '>' is tolerated)", err)
	}
	if string(got) != "Hello" {
		t.Errorf("Decode = %q, want %q", got, "Hello")
	}
}

func TestDecodeInvalidCharacter(t *testing.T) {
	_, err := io.ReadAll(Decode(strings.NewReader("48ZZ>")))
	if err == nil {
		t.Fatal("ReadAll = nil error, want an error for an invalid hex digit")
	}
}
