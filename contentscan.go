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

// ContentScanner tokenizes an already-decoded content stream (spec.md
// §4.8) into operand objects and bare-keyword operators, reusing the
// same object lexer the file-level scanner uses: operands are
// ordinary PDF objects, operators are everything else. Exported so
// playa/content can drive it without duplicating the lexer.
type ContentScanner struct {
	s *scanner
}

// NewContentScanner returns a scanner over data, a fully decoded
// content stream byte range (all filters already applied).
func NewContentScanner(data []byte) *ContentScanner {
	src := NewSource(data)
	return &ContentScanner{s: newScanner(src, 0, int64(len(data)))}
}

// Next reads the next token. Exactly one of obj/op is set when ok is
// true; ok is false once the stream is exhausted.
func (cs *ContentScanner) Next() (obj Object, op string, ok bool, err *Error) {
	cs.s.skipWhiteSpace()
	if cs.s.atEOF() {
		return nil, "", false, nil
	}

	buf := cs.s.peek(5)
	c := buf[0]
	switch {
	case c == '/', c == '(', c == '[',
		(c >= '0' && c <= '9'), c == '+', c == '-', c == '.',
		hasPrefix(buf, "null"), hasPrefix(buf, "true"), hasPrefix(buf, "false"),
		hasPrefix(buf, "<<"):
		v, rerr := cs.s.readObject()
		if rerr != nil {
			return nil, "", false, rerr
		}
		return v, "", true, nil
	case c == '<':
		cs.s.pos++
		v, rerr := cs.s.readHexString()
		if rerr != nil {
			return nil, "", false, rerr
		}
		return v, "", true, nil
	}

	kw := cs.s.scanBytes(func(c byte) bool { return !isSpace[c] && !isDelimiter[c] })
	if len(kw) == 0 {
		// A stray delimiter byte (e.g. an unmatched "]" or "}") cannot
		// start an object or a keyword; skip it so the scan always
		// makes progress.
		cs.s.pos++
		return cs.Next()
	}
	return nil, string(kw), true, nil
}

// Pos returns the current byte offset into the content stream.
func (cs *ContentScanner) Pos() int64 { return cs.s.filePos() }

// SeekTo repositions the scanner at offset pos.
func (cs *ContentScanner) SeekTo(pos int64) { cs.s.pos = pos }

// ReadInlineImageRawData reads the raw, still-filter-encoded bytes of
// an inline image (the "BI dict ID <data> EI" form, spec.md §4.8),
// starting immediately after the whitespace that follows "ID". It
// stops at the first "EI" followed by whitespace, a delimiter or the
// end of the data; the byte before "EI" is not checked.
func (cs *ContentScanner) ReadInlineImageRawData() []byte {
	// The single whitespace byte that separates "ID" from the data is
	// not part of the data itself.
	if !cs.s.atEOF() && isSpace[cs.s.peek(1)[0]] {
		cs.s.pos++
	}
	start := cs.s.pos
	for !cs.s.atEOF() {
		if cs.s.peek(1)[0] == 'E' {
			lookahead := cs.s.peek(3)
			if len(lookahead) >= 2 && lookahead[1] == 'I' &&
				(len(lookahead) < 3 || isSpace[lookahead[2]] || isDelimiter[lookahead[2]]) {
				data := window(cs.s.src, start, cs.s.pos)
				cs.s.pos += 2
				return data
			}
		}
		cs.s.pos++
	}
	return window(cs.s.src, start, cs.s.pos)
}
