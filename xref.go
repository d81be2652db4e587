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
	"strconv"
)

// xrefKind distinguishes the three entry variants spec.md §3 names.
type xrefKind int

const (
	xrefFree xrefKind = iota
	xrefInUse
	xrefCompressed
)

// xrefEntry is one row of the merged cross-reference index.
type xrefEntry struct {
	Kind       xrefKind
	Pos        int64  // byte offset, when Kind == xrefInUse
	Generation uint16 // when Kind != xrefCompressed
	Container  int    // object number of the containing ObjStm, when Kind == xrefCompressed
	Index      int    // index within the container, when Kind == xrefCompressed
}

type xrefSubSection struct {
	Start, Size int
}

// readXref locates startxref and walks the /Prev chain of classic
// xref tables and cross-reference streams, merging entries newest
// section wins. It returns the merged index and the trailer
// dictionary assembled from the first (newest) section's trailer
// keys, per spec.md §4.3.
func readXref(src Source) (map[int]*xrefEntry, Dict, *Error) {
	start, err := findStartXref(src)
	if err != nil {
		return nil, nil, err
	}

	xref := make(map[int]*xrefEntry)
	trailer := make(Dict)
	seen := make(map[int64]bool)
	first := true

	for {
		if seen[start] || start < 0 || start >= src.Size() {
			break
		}
		seen[start] = true

		s := newScanner(src, start, src.Size())
		buf := s.peek(4)

		var dict Dict
		var derr *Error
		if string(buf) == "xref" {
			dict, derr = readXrefTable(xref, s)
			if derr == nil {
				if stmPos, ok := dict["XRefStm"].(Integer); ok {
					stmScanner := newScanner(src, int64(stmPos), src.Size())
					_, derr = readXrefStreamAt(xref, stmScanner)
				}
			}
		} else {
			dict, derr = readXrefStreamAt(xref, s)
		}
		if derr != nil {
			return nil, nil, derr
		}

		if first {
			for _, key := range []Name{"Root", "Encrypt", "Info", "ID", "Size"} {
				if v, ok := dict[key]; ok {
					trailer[key] = v
				}
			}
			first = false
		}

		prev, ok := dict["Prev"]
		if !ok {
			break
		}
		prevPos, ok := prev.(Integer)
		if !ok {
			return nil, nil, errAt(KindXref, start, "malformed /Prev entry")
		}
		start = int64(prevPos)
	}

	return xref, trailer, nil
}

// findStartXref locates the last "startxref" keyword, scanning
// backward up to 64 KiB per spec.md §4.3, and reads the offset that
// follows it.
func findStartXref(src Source) (int64, *Error) {
	const maxScan = 64 * 1024
	size := src.Size()
	from := size - maxScan
	if from < 0 {
		from = 0
	}
	buf := window(src, from, size)
	idx := lastIndexOf(buf, "startxref")
	if idx < 0 {
		return 0, errAt(KindXref, size, "startxref not found")
	}
	pos := from + int64(idx) + int64(len("startxref"))

	s := newScanner(src, pos, size)
	s.skipWhiteSpace()
	n, err := s.readInteger()
	if err != nil {
		return 0, errAt(KindXref, pos, "malformed startxref offset: %v", err)
	}
	if int64(n) < 0 || int64(n) >= size {
		return 0, errAt(KindXref, pos, "startxref offset out of range")
	}
	return int64(n), nil
}

func lastIndexOf(buf []byte, pat string) int {
	n := len(pat)
	for i := len(buf) - n; i >= 0; i-- {
		if string(buf[i:i+n]) == pat {
			return i
		}
	}
	return -1
}

func readXrefTable(xref map[int]*xrefEntry, s *scanner) (Dict, *Error) {
	if err := s.skipString("xref"); err != nil {
		return nil, err
	}
	s.skipWhiteSpace()

	for {
		buf := s.peek(1)
		if len(buf) == 0 || buf[0] < '0' || buf[0] > '9' {
			break
		}

		startObj, err := s.readInteger()
		if err != nil {
			return nil, err
		}
		s.skipWhiteSpace()
		count, err := s.readInteger()
		if err != nil {
			return nil, err
		}
		s.skipWhiteSpace()

		if err := decodeXrefSection(xref, s, int(startObj), int(startObj+count)); err != nil {
			return nil, err
		}
		s.skipWhiteSpace()
	}

	if err := s.skipString("trailer"); err != nil {
		return nil, err
	}
	s.skipWhiteSpace()
	return s.readDict()
}

func decodeXrefSection(xref map[int]*xrefEntry, s *scanner, start, end int) *Error {
	for i := start; i < end; i++ {
		if xref[i] != nil {
			s.pos += 20
			continue
		}

		buf := s.peek(20)
		if len(buf) < 20 {
			return errAt(KindXref, s.pos, "truncated xref entry")
		}

		a, err := strconv.ParseInt(string(buf[:10]), 10, 64)
		if err != nil {
			return errAt(KindXref, s.pos, "malformed xref offset: %v", err)
		}
		b, err := strconv.ParseUint(string(buf[11:16]), 10, 16)
		if err != nil {
			// PDF producers occasionally emit a broken free-list head
			// entry; recover the conventional "65535 f" generation.
			if string(buf[:17]) == "0000000000 65536 " {
				b = 65535
				buf[17] = 'f'
			} else {
				return errAt(KindXref, s.pos, "malformed xref generation: %v", err)
			}
		}

		switch buf[17] {
		case 'f':
			xref[i] = &xrefEntry{Kind: xrefFree, Generation: uint16(b)}
		case 'n':
			xref[i] = &xrefEntry{Kind: xrefInUse, Pos: a, Generation: uint16(b)}
		default:
			return errAt(KindXref, s.pos, "malformed xref entry type")
		}
		s.pos += 20
	}
	return nil
}

func readXrefStreamAt(xref map[int]*xrefEntry, s *scanner) (Dict, *Error) {
	_, _, obj, err := s.readIndirectObject()
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*Stream)
	if !ok {
		return nil, errAt(KindXref, s.pos, "xref entry is not a stream")
	}
	dict := stream.Dict

	w, sections, derr := checkXrefStreamDict(dict)
	if derr != nil {
		return nil, derr
	}

	decoded, derr := decodeStream(stream, nil)
	if derr != nil {
		return nil, derr
	}
	if derr := decodeXrefStreamRows(xref, decoded, w, sections); derr != nil {
		return nil, derr
	}
	return dict, nil
}

func checkXrefStreamDict(dict Dict) ([]int, []xrefSubSection, *Error) {
	size, ok := dict["Size"].(Integer)
	if !ok {
		return nil, nil, errAt(KindXref, 0, "xref stream missing /Size")
	}
	wArr, ok := dict["W"].(Array)
	if !ok || len(wArr) < 3 {
		return nil, nil, errAt(KindXref, 0, "xref stream missing /W")
	}
	w := make([]int, len(wArr))
	for i, wi := range wArr {
		n, ok := wi.(Integer)
		if !ok || (i < 3 && (n < 0 || n > 8)) {
			return nil, nil, errAt(KindXref, 0, "malformed /W entry")
		}
		w[i] = int(n)
	}

	var sections []xrefSubSection
	if idx, ok := dict["Index"].(Array); ok {
		if len(idx)%2 != 0 {
			return nil, nil, errAt(KindXref, 0, "malformed /Index")
		}
		for i := 0; i < len(idx); i += 2 {
			start, ok1 := idx[i].(Integer)
			count, ok2 := idx[i+1].(Integer)
			if !ok1 || !ok2 {
				return nil, nil, errAt(KindXref, 0, "malformed /Index entry")
			}
			sections = append(sections, xrefSubSection{int(start), int(count)})
		}
	} else {
		sections = append(sections, xrefSubSection{0, int(size)})
	}
	return w, sections, nil
}

func decodeXrefStreamRows(xref map[int]*xrefEntry, data []byte, w []int, sections []xrefSubSection) *Error {
	rowLen := w[0] + w[1] + w[2]
	if rowLen == 0 {
		return errAt(KindXref, 0, "zero-width xref stream row")
	}
	pos := 0
	for _, sec := range sections {
		for i := sec.Start; i < sec.Start+sec.Size; i++ {
			if pos+rowLen > len(data) {
				return errAt(KindXref, int64(pos), "truncated xref stream")
			}
			row := data[pos : pos+rowLen]
			pos += rowLen

			if xref[i] != nil {
				continue
			}

			tp := int64(1)
			if w[0] > 0 {
				tp = decodeBigEndian(row[:w[0]])
			}
			a := decodeBigEndian(row[w[0] : w[0]+w[1]])
			b := decodeBigEndian(row[w[0]+w[1] : w[0]+w[1]+w[2]])

			switch tp {
			case 0:
				xref[i] = &xrefEntry{Kind: xrefFree, Generation: uint16(b)}
			case 1:
				xref[i] = &xrefEntry{Kind: xrefInUse, Pos: a, Generation: uint16(b)}
			case 2:
				xref[i] = &xrefEntry{Kind: xrefCompressed, Container: int(a), Index: int(b)}
			}
		}
	}
	return nil
}

func decodeBigEndian(buf []byte) int64 {
	var res int64
	for _, b := range buf {
		res = res<<8 | int64(b)
	}
	return res
}
