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
	type1 "seehuhn.de/go/postscript/cid"

	"playa.dev/playa"
)

// ReadSimpleWidths decodes a simple font's /Widths array (indexed
// from /FirstChar) into glyph-space widths for all 256 codes, falling
// back to missingWidth (the descriptor's /MissingWidth, 0 if absent)
// for codes outside the array, per spec.md §4.9.
func ReadSimpleWidths(doc *playa.Document, fontDict playa.Dict, missingWidth float64) [256]float64 {
	var res [256]float64
	for i := range res {
		res[i] = missingWidth
	}

	first, ok := doc.GetInt(fontDict["FirstChar"])
	if !ok {
		return res
	}
	widths, ok := doc.GetArray(fontDict["Widths"])
	if !ok {
		return res
	}
	for i, w := range widths {
		code := int(first) + i
		if code < 0 || code > 255 {
			continue
		}
		if v, ok := doc.GetNumber(w); ok {
			res[code] = v
		}
	}
	return res
}

// ReadCompositeWidths decodes a CIDFont dictionary's /W (sparse,
// per-CID overrides) and /DW (default width, 1000 if absent) entries,
// per spec.md §4.9.
func ReadCompositeWidths(doc *playa.Document, cidFontDict playa.Dict) (widths map[type1.CID]float64, dw float64) {
	dw = 1000
	if v, ok := doc.GetNumber(cidFontDict["DW"]); ok {
		dw = v
	}

	w, ok := doc.GetArray(cidFontDict["W"])
	if !ok {
		return nil, dw
	}

	widths = make(map[type1.CID]float64)
	for len(w) > 1 {
		c0, ok := doc.GetInt(w[0])
		if !ok {
			break
		}
		switch next := doc.Resolve(w[1]).(type) {
		case playa.Array:
			for i, wObj := range next {
				if v, ok := doc.GetNumber(wObj); ok {
					widths[type1.CID(c0)+type1.CID(i)] = v
				}
			}
			w = w[2:]
		case playa.Integer, playa.Real:
			if len(w) < 3 {
				w = nil
				break
			}
			c1, ok := doc.GetInt(w[1])
			if !ok {
				w = w[3:]
				continue
			}
			v, ok := doc.GetNumber(w[2])
			if ok {
				for c := c0; c <= c1; c++ {
					widths[type1.CID(c)] = v
				}
			}
			w = w[3:]
		default:
			w = w[2:]
		}
	}

	return widths, dw
}

// ReadVerticalMetrics decodes a CIDFont's /DW2 ([v_y, w_1], default
// [880, -1000]) and /W2 (per-CID [w1_y, v_x, v_y] overrides) entries,
// used when WMode is vertical (spec.md §4.9).
func ReadVerticalMetrics(doc *playa.Document, cidFontDict playa.Dict) (defaultVY, defaultW1 float64, overrides map[type1.CID][3]float64) {
	defaultVY, defaultW1 = 880, -1000
	if arr, ok := doc.GetArray(cidFontDict["DW2"]); ok && len(arr) == 2 {
		if v, ok := doc.GetNumber(arr[0]); ok {
			defaultVY = v
		}
		if v, ok := doc.GetNumber(arr[1]); ok {
			defaultW1 = v
		}
	}

	w2, ok := doc.GetArray(cidFontDict["W2"])
	if !ok {
		return defaultVY, defaultW1, nil
	}
	overrides = make(map[type1.CID][3]float64)
	for len(w2) > 1 {
		c0, ok := doc.GetInt(w2[0])
		if !ok {
			break
		}
		switch next := doc.Resolve(w2[1]).(type) {
		case playa.Array:
			i := 0
			for i+2 < len(next) {
				w1, _ := doc.GetNumber(next[i])
				vx, _ := doc.GetNumber(next[i+1])
				vy, _ := doc.GetNumber(next[i+2])
				overrides[type1.CID(c0)+type1.CID(i/3)] = [3]float64{w1, vx, vy}
				i += 3
			}
			w2 = w2[2:]
		default:
			if len(w2) < 5 {
				w2 = nil
				break
			}
			c1, ok1 := doc.GetInt(w2[1])
			w1, _ := doc.GetNumber(w2[2])
			vx, _ := doc.GetNumber(w2[3])
			vy, _ := doc.GetNumber(w2[4])
			if ok1 {
				for c := c0; c <= c1; c++ {
					overrides[type1.CID(c)] = [3]float64{w1, vx, vy}
				}
			}
			w2 = w2[5:]
		}
	}
	return defaultVY, defaultW1, overrides
}
