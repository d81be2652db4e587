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

// Package asciihex decodes the PDF ASCIIHexDecode filter (and its
// inline-image abbreviation AHx).
package asciihex

import (
	"bufio"
	"fmt"
	"io"
)

// Decode decodes data encoded in ASCII hexadecimal form. A missing
// terminating ">" is tolerated: decoding simply stops at EOF, rather
// than failing, matching the filter pipeline's general leniency
// toward truncated stream data.
func Decode(r io.Reader) io.ReadCloser {
	return &reader{r: bufio.NewReader(r)}
}

type reader struct {
	r   *bufio.Reader
	err error
}

func (r *reader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}

	haveHigh := false
	var high byte
loop:
	for n < len(p) {
		c, err := r.r.ReadByte()
		if err != nil {
			if haveHigh {
				p[n] = high << 4
				n++
			}
			r.err = io.EOF
			break loop
		}

		var v byte
		switch c {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			v = c - '0'
		case 'A', 'B', 'C', 'D', 'E', 'F':
			v = c - 'A' + 10
		case 'a', 'b', 'c', 'd', 'e', 'f':
			v = c - 'a' + 10

		case 0, 9, 10, 12, 13, 32: // whitespace
			continue loop

		case '>':
			if haveHigh {
				p[n] = high << 4
				n++
			}
			r.err = io.EOF
			break loop

		default:
			r.err = fmt.Errorf("asciihex: invalid character %q", c)
			break loop
		}

		if haveHigh {
			p[n] = high<<4 | v
			n++
			haveHigh = false
		} else {
			high = v
			haveHigh = true
		}
	}

	if n > 0 {
		return n, nil
	}
	return n, r.err
}

func (r *reader) Close() error {
	if r.err == nil || r.err == io.EOF {
		return nil
	}
	return r.err
}
