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

// reconstructXref is the fallback used when the xref chain rooted at
// startxref cannot be parsed (spec.md §4.3): a linear scan of the
// whole file for "N M obj" markers, registering each object's offset
// directly, expanding any /Type /ObjStm it finds along the way, and
// finally agglomerating every "trailer" dictionary it can find into a
// single merged dictionary (last-key-wins), matching the Python
// reference's XRefFallback (see SPEC_FULL.md §5).
func reconstructXref(src Source) (map[int]*xrefEntry, Dict, *Error) {
	xref := make(map[int]*xrefEntry)
	genno := make(map[int]int) // highest generation seen per objid

	size := src.Size()
	for _, m := range findIndirectObjectMarkers(src) {
		s := newScanner(src, m, size)
		num, gen, obj, err := s.readIndirectObject()
		if err != nil {
			continue // tolerate garbage the scan happens to match
		}

		prevGen, seen := genno[num]
		if !seen || int(gen) >= prevGen {
			xref[num] = &xrefEntry{Kind: xrefInUse, Pos: m, Generation: gen}
			genno[num] = int(gen)
		}

		stream, ok := obj.(*Stream)
		if !ok {
			continue
		}
		if t, _ := stream.Dict["Type"].(Name); t == "ObjStm" {
			expandObjStmDuringScan(xref, num, stream)
		}
	}

	if len(xref) == 0 {
		return nil, nil, errAt(KindXref, 0, "reconstruction found no indirect objects")
	}

	trailer := agglomerateTrailers(src)
	return xref, trailer, nil
}

// findIndirectObjectMarkers scans the whole source for byte offsets
// that look like the start of "digits digits obj". It is deliberately
// permissive: readIndirectObject re-validates each candidate and
// false positives are simply skipped.
func findIndirectObjectMarkers(src Source) []int64 {
	const chunk = 1 << 16
	size := src.Size()

	var markers []int64
	var pending []byte // bytes carried across chunk boundaries
	base := int64(0)

	for base < size {
		end := min64(base+chunk, size)
		buf := window(src, base, end)
		data := append(pending, buf...)
		dataBase := base - int64(len(pending))

		for i := 0; i < len(data); i++ {
			if !(data[i] >= '0' && data[i] <= '9') {
				continue
			}
			if i > 0 && data[i-1] >= '0' && data[i-1] <= '9' {
				continue // not the start of a number
			}
			if j, ok := matchObjMarker(data, i); ok {
				markers = append(markers, dataBase+int64(i))
				i = j
			}
		}

		keep := 32
		if len(data) < keep {
			keep = len(data)
		}
		pending = append([]byte(nil), data[len(data)-keep:]...)
		base = end
	}
	return markers
}

// matchObjMarker tests whether data[i:] begins with "num ws+ num ws+
// obj", returning the index of the last byte consumed on success.
func matchObjMarker(data []byte, i int) (int, bool) {
	j := i
	for j < len(data) && data[j] >= '0' && data[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	k := j
	sawSpace := false
	for k < len(data) && isSpace[data[k]] {
		k++
		sawSpace = true
	}
	if !sawSpace || k >= len(data) || !(data[k] >= '0' && data[k] <= '9') {
		return 0, false
	}
	j = k
	for j < len(data) && data[j] >= '0' && data[j] <= '9' {
		j++
	}
	k = j
	sawSpace = false
	for k < len(data) && isSpace[data[k]] {
		k++
		sawSpace = true
	}
	if !sawSpace || k+3 > len(data) {
		return 0, false
	}
	if string(data[k:k+3]) != "obj" {
		return 0, false
	}
	return k + 2, true
}

// expandObjStmDuringScan registers the contained objects of an object
// stream found during reconstruction, at (container=num, index).
// Resolution of the actual values is deferred to the normal
// compressed-entry path in the resolver.
func expandObjStmDuringScan(xref map[int]*xrefEntry, num int, stream *Stream) {
	n, ok := stream.Dict["N"].(Integer)
	if !ok {
		return
	}
	decoded, err := decodeStream(stream, nil)
	if err != nil {
		return
	}
	header := newScanner(NewSource(decoded), 0, int64(len(decoded)))
	for i := 0; i < int(n); i++ {
		header.skipWhiteSpace()
		objNum, ierr := header.readInteger()
		if ierr != nil {
			return
		}
		header.skipWhiteSpace()
		if _, ierr := header.readInteger(); ierr != nil { // offset, unused here
			return
		}
		if _, exists := xref[int(objNum)]; !exists {
			xref[int(objNum)] = &xrefEntry{Kind: xrefCompressed, Container: num, Index: i}
		}
	}
}

// agglomerateTrailers scans for every "trailer" keyword in the file
// and merges the dictionaries that follow it, last-key-wins, matching
// XRefFallback's behavior when no single authoritative trailer could
// be found.
func agglomerateTrailers(src Source) Dict {
	trailer := make(Dict)
	size := src.Size()
	pos := int64(0)
	for {
		buf := window(src, pos, size)
		idx := indexOf(buf, "trailer")
		if idx < 0 {
			break
		}
		start := pos + int64(idx) + int64(len("trailer"))
		s := newScanner(src, start, size)
		s.skipWhiteSpace()
		if d, err := s.readDict(); err == nil {
			for k, v := range d {
				trailer[k] = v
			}
		}
		pos = start
	}
	return trailer
}
