// Package ascii85 decodes the PDF ASCII85Decode filter (and its
// inline-image abbreviation A85). The implementation follows Adobe's
// variant of btoa encoding: groups of 4 bytes become 5 base-85 digits
// in the range '!'..'u', an all-zero group collapses to 'z', and the
// stream is terminated by "~>". A stream that ends without "~>" after
// a complete group decodes cleanly; one that ends in the middle of a
// group without "~>" reports io.ErrUnexpectedEOF.
package ascii85

import (
	"errors"
	"io"
)

// Decode returns a reader producing the decoded bytes of an
// ASCII85-encoded stream r.
func Decode(r io.Reader) io.Reader {
	return &reader{r: r}
}

type reader struct {
	r              io.Reader
	immediateError error
	delayedError   error
	buf            [512]byte
	outbuf         [4]byte
	leftover       []byte
	pos, nbuf      int
	v              uint32
	k              int
	isEnd          bool
}

func (r *reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.immediateError != nil {
		return 0, r.immediateError
	}

	if len(r.leftover) > 0 {
		n = copy(p, r.leftover)
		r.leftover = r.leftover[n:]
	}

	for n < len(p) {
		for r.pos == r.nbuf && r.delayedError == nil {
			r.nbuf, r.delayedError = r.r.Read(r.buf[:])
			r.pos = 0
			if r.delayedError == io.EOF && r.k != 0 {
				r.delayedError = io.ErrUnexpectedEOF
			}
		}
		if r.pos == r.nbuf {
			r.immediateError = r.delayedError
			return n, r.immediateError
		}
		c := r.buf[r.pos]
		r.pos++

		if r.isEnd {
			if c == '>' {
				r.immediateError = io.EOF
			} else {
				r.immediateError = errors.New("ascii85: invalid end marker")
			}
			return n, r.immediateError
		}

		if isSpace[c] {
			continue
		}

		switch {
		case c >= '!' && c < '!'+85:
			r.v = r.v*85 + uint32(c-'!')
			r.k++
		case r.k == 0 && c == 'z':
			r.v = 0
			r.k = 5
		case c == '~':
			switch r.k {
			case 0:
			case 1:
				r.immediateError = errors.New("ascii85: unexpected end marker")
				return n, r.immediateError
			default:
				for i := r.k; i < 5; i++ {
					r.v = r.v*85 + 84
				}
				r.outbuf[0] = byte(r.v >> 24)
				r.outbuf[1] = byte(r.v >> 16)
				r.outbuf[2] = byte(r.v >> 8)
				r.outbuf[3] = byte(r.v)
				l := copy(p[n:], r.outbuf[:r.k-1])
				n += l
				if l < r.k-1 {
					r.leftover = r.outbuf[l : r.k-1]
				}
			}
			r.isEnd = true
			continue
		default:
			r.immediateError = errors.New("ascii85: invalid character")
			return n, r.immediateError
		}

		if r.k == 5 {
			r.outbuf[0] = byte(r.v >> 24)
			r.outbuf[1] = byte(r.v >> 16)
			r.outbuf[2] = byte(r.v >> 8)
			r.outbuf[3] = byte(r.v)
			r.k = 0
			r.v = 0

			l := copy(p[n:], r.outbuf[:])
			n += l
			if l < 4 {
				r.leftover = r.outbuf[l:]
			}
		}
	}
	return n, r.immediateError
}

var isSpace = map[byte]bool{
	0:  true,
	9:  true,
	10: true,
	12: true,
	13: true,
	32: true,
}
