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

// Package names resolves Adobe/PDF glyph names to Unicode, the second
// step of spec.md §4.9's Unicode resolution order for simple fonts
// with a known named encoding.
package names

import (
	"strconv"
	"strings"
)

// ToUnicode resolves a PostScript/PDF glyph name to a (possibly
// multi-rune) Unicode sequence, following the Adobe Glyph List
// algorithm: an exact match against the known-name table, then
// ligature components separated by "_" (each resolved independently
// and concatenated), with any final ".variant" suffix stripped first,
// then the "uniXXXX[XXXX...]" and "uXXXX"-"uXXXXXX" hex-escape forms.
// An unresolvable name yields nil, never a fabricated character
// (spec.md §9, "Font character-mapping ambiguity").
func ToUnicode(glyphName string, dingbats bool) []rune {
	if glyphName == "" || glyphName == ".notdef" {
		return nil
	}
	if dingbats {
		r, ok := zapfDingbatsNames[glyphName]
		if !ok {
			return nil
		}
		return []rune{r}
	}

	name := glyphName
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	if strings.Contains(name, "_") {
		var out []rune
		for _, part := range strings.Split(name, "_") {
			sub := resolveOne(part)
			if sub == nil {
				return nil
			}
			out = append(out, sub...)
		}
		return out
	}
	return resolveOne(name)
}

func resolveOne(name string) []rune {
	if r, ok := glyphUnicode[name]; ok {
		return []rune{r}
	}
	if strings.HasPrefix(name, "uni") {
		hex := name[3:]
		if len(hex) == 0 || len(hex)%4 != 0 {
			return nil
		}
		out := make([]rune, 0, len(hex)/4)
		for i := 0; i < len(hex); i += 4 {
			r, ok := parseUpperHex(hex[i : i+4])
			if !ok || isSurrogate(r) {
				return nil
			}
			out = append(out, r)
		}
		return out
	}
	if strings.HasPrefix(name, "u") {
		hex := name[1:]
		if len(hex) < 4 || len(hex) > 6 {
			return nil
		}
		r, ok := parseUpperHex(hex)
		if !ok || isSurrogate(r) {
			return nil
		}
		return []rune{r}
	}
	return nil
}

func isSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDFFF }

// parseUpperHex parses a run of uppercase hex digits strictly, as the
// Adobe Glyph List specification requires for "uniXXXX"/"uXXXX" names
// (lowercase hex in that position is not a valid glyph name).
func parseUpperHex(s string) (rune, bool) {
	for _, c := range s {
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'F') {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
