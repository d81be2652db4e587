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

// Package lzw decodes the PDF LZWDecode filter: MSB-first variable
// width codes (9-12 bits), clear-table code 256, end-of-data code
// 257, and an EarlyChange parameter controlling whether the code
// width grows one code early (the PDF default) or not (matching TIFF).
// A stream that ends without the end-of-data code is accepted when its
// leftover bits are all zero (byte padding); non-zero leftover bits
// are reported as io.ErrUnexpectedEOF.
package lzw

import (
	"errors"
	"io"
)

const (
	clearCode = 256
	eodCode   = 257
	firstCode = 258
	maxBits   = 12
	maxCode   = 1<<maxBits - 1
)

// Decode returns a reader producing the bytes represented by an
// LZW-encoded stream r, using the PDF default EarlyChange=1 unless
// earlyChange is false.
func Decode(r io.Reader, earlyChange bool) io.Reader {
	return &reader{
		br:          newBitReader(r),
		earlyChange: earlyChange,
	}
}

type reader struct {
	br          *bitReader
	earlyChange bool

	table   [][]byte
	width   int
	prev    []byte
	pending []byte
	done    bool
	err     error
}

func (r *reader) reset() {
	r.table = make([][]byte, firstCode, 4096)
	for i := 0; i < 256; i++ {
		r.table[i] = []byte{byte(i)}
	}
	r.width = 9
	r.prev = nil
}

func (r *reader) Read(p []byte) (n int, err error) {
	if r.table == nil {
		r.reset()
	}
	for n < len(p) {
		if len(r.pending) > 0 {
			m := copy(p[n:], r.pending)
			n += m
			r.pending = r.pending[m:]
			continue
		}
		if r.done {
			if r.err != nil {
				return n, r.err
			}
			return n, io.EOF
		}

		code, err := r.br.readBits(r.width)
		if err != nil {
			r.done = true
			r.err = err
			continue
		}

		switch {
		case code == clearCode:
			r.reset()
			continue
		case code == eodCode:
			r.done = true
			continue
		}

		var entry []byte
		switch {
		case int(code) < len(r.table):
			entry = r.table[code]
		case int(code) == len(r.table) && r.prev != nil:
			entry = append(append([]byte{}, r.prev...), r.prev[0])
		default:
			r.done = true
			r.err = errors.New("lzw: invalid code")
			continue
		}

		if r.prev != nil && len(r.table) < 4096 {
			next := append(append([]byte{}, r.prev...), entry[0])
			r.table = append(r.table, next)
		}
		r.prev = entry
		r.pending = entry

		count := len(r.table)
		if r.earlyChange {
			count++
		}
		switch {
		case count >= 2048 && r.width < 12:
			r.width = 12
		case count >= 1024 && r.width < 11:
			r.width = 11
		case count >= 512 && r.width < 10:
			r.width = 10
		}
	}
	return n, nil
}

// bitReader reads MSB-first variable-width bit groups.
type bitReader struct {
	r    io.Reader
	bits uint64
	n    int
}

func newBitReader(r io.Reader) *bitReader {
	return &bitReader{r: r}
}

func (b *bitReader) readBits(width int) (uint32, error) {
	for b.n < width {
		var tmp [1]byte
		k, err := b.r.Read(tmp[:])
		if k == 0 {
			if err == nil || (err == io.EOF && b.bits&(1<<uint(b.n)-1) != 0) {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		b.bits = b.bits<<8 | uint64(tmp[0])
		b.n += 8
	}
	b.n -= width
	code := uint32(b.bits>>uint(b.n)) & ((1 << uint(width)) - 1)
	return code, nil
}
