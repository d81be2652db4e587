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

package pagetree

import (
	"sort"
	"strconv"
	"strings"

	"playa.dev/playa"
)

// LabelStyle is the numbering style of a /PageLabels range's "/S"
// entry (spec.md §4.7).
type LabelStyle byte

const (
	StyleNone LabelStyle = iota
	StyleDecimal
	StyleRomanUpper
	StyleRomanLower
	StyleLetterUpper
	StyleLetterLower
)

// labelRange is one entry of the flattened /PageLabels number tree:
// starting at page index Start (0-based), pages are labeled
// Prefix+style(First), Prefix+style(First+1), ...
type labelRange struct {
	Start  int
	Prefix string
	Style  LabelStyle
	First  int
}

// Labels reads a document's /PageLabels number tree (spec.md §4.7),
// walking /Kids and /Nums with a todo stack rather than recursion and
// skipping references already visited, so a malformed cyclic tree
// cannot blow the Go call stack.
func Labels(doc *playa.Document, root playa.Object) ([]labelRange, error) {
	if root == nil {
		return nil, nil
	}

	type entry struct {
		key   int
		value playa.Object
	}
	var entries []entry

	todo := []playa.Object{root}
	seen := map[playa.Reference]bool{}
	for len(todo) > 0 {
		node := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		if r, ok := node.(playa.Reference); ok {
			if seen[r] {
				continue
			}
			seen[r] = true
		}

		dict, ok := doc.GetDict(node)
		if !ok {
			continue
		}

		if nums, ok := doc.GetArray(dict["Nums"]); ok {
			for i := 0; i+1 < len(nums); i += 2 {
				key, ok := doc.GetInt(nums[i])
				if !ok {
					continue
				}
				entries = append(entries, entry{key: int(key), value: nums[i+1]})
			}
		}

		if kids, ok := doc.GetArray(dict["Kids"]); ok {
			for i := len(kids) - 1; i >= 0; i-- {
				todo = append(todo, kids[i])
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	ranges := make([]labelRange, 0, len(entries))
	for _, e := range entries {
		lr := labelRange{Start: e.key, Style: StyleDecimal, First: 1}
		if d, ok := doc.GetDict(e.value); ok {
			if s, ok := doc.GetName(d["S"]); ok {
				switch s {
				case "D":
					lr.Style = StyleDecimal
				case "R":
					lr.Style = StyleRomanUpper
				case "r":
					lr.Style = StyleRomanLower
				case "A":
					lr.Style = StyleLetterUpper
				case "a":
					lr.Style = StyleLetterLower
				default:
					lr.Style = StyleNone
				}
			} else {
				lr.Style = StyleNone
			}
			if p, ok := doc.GetString(d["P"]); ok {
				lr.Prefix = string(p)
			}
			if st, ok := doc.GetInt(d["St"]); ok {
				lr.First = int(st)
			}
		}
		ranges = append(ranges, lr)
	}
	return ranges, nil
}

// LabelForPage renders the label string for a 0-based page index, or
// "" if no range in ranges covers it.
func LabelForPage(ranges []labelRange, pageIndex int) string {
	idx := sort.Search(len(ranges), func(i int) bool { return ranges[i].Start > pageIndex }) - 1
	if idx < 0 {
		return ""
	}
	r := ranges[idx]
	n := r.First + (pageIndex - r.Start)
	return r.Prefix + renderLabelNumber(r.Style, n)
}

// PageByLabel finds the page whose rendered label equals label.
func PageByLabel(pages []*Page, ranges []labelRange, label string) (*Page, bool) {
	for _, p := range pages {
		if LabelForPage(ranges, p.Index) == label {
			return p, true
		}
	}
	return nil, false
}

// PageByNumber looks a page up by its 1-based logical page number
// encoded as a decimal string (spec.md §4.7).
func PageByNumber(pages []*Page, s string) (*Page, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > len(pages) {
		return nil, false
	}
	return pages[n-1], true
}

func renderLabelNumber(style LabelStyle, n int) string {
	switch style {
	case StyleRomanUpper:
		return toRoman(n, false)
	case StyleRomanLower:
		return toRoman(n, true)
	case StyleLetterUpper:
		return toLetters(n, false)
	case StyleLetterLower:
		return toLetters(n, true)
	case StyleNone:
		return ""
	default:
		return strconv.Itoa(n)
	}
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int, lower bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, rt := range romanTable {
		for n >= rt.value {
			b.WriteString(rt.symbol)
			n -= rt.value
		}
	}
	s := b.String()
	if lower {
		s = strings.ToLower(s)
	}
	return s
}

// toLetters renders n (1-based) as the PDF letter-style label: A, B,
// ..., Z, AA, BB, ..., ZZ, AAA, ... — the letter (n-1)%26 repeated
// (n-1)/26+1 times.
func toLetters(n int, lower bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	letter := byte('A' + (n-1)%26)
	if lower {
		letter = byte('a' + (n-1)%26)
	}
	count := (n-1)/26 + 1
	return strings.Repeat(string(letter), count)
}
