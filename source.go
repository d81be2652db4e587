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
	"io"
)

// Source is the byte-source contract the decoder requires: total
// length, plus random-access reads of arbitrary [offset, length)
// windows. Both a memory-mapped file and a fully-buffered byte slice
// satisfy this trivially.
type Source interface {
	io.ReaderAt
	Size() int64
}

// bytesSource adapts a plain byte slice to Source.
type bytesSource struct {
	buf []byte
}

// NewSource wraps a byte slice as a Source.
func NewSource(buf []byte) Source {
	return &bytesSource{buf: buf}
}

func (s *bytesSource) Size() int64 { return int64(len(s.buf)) }

func (s *bytesSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// window returns the bytes in [start, end) of src, clamped to the
// source's length. It never returns an error; a truncated window is a
// normal outcome when end runs past EOF (the lexer tolerates this, as
// required for the "declared /Length too short" boundary case).
func window(src Source, start, end int64) []byte {
	if start < 0 {
		start = 0
	}
	size := src.Size()
	if end > size {
		end = size
	}
	if start >= end {
		return nil
	}
	buf := make([]byte, end-start)
	n, _ := src.ReadAt(buf, start)
	return buf[:n]
}

