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

// scanner is the stateful tokenizer/object-parser used to read PDF
// syntax from a fixed window [pos, end) of a Source. Unlike a
// streaming reader, a scanner never blocks: it reads directly from
// the underlying byte source, clamping every read to end and to the
// source's size. Running out of bytes yields a short peek, which the
// parsing methods report as a *Error, not as io.EOF.
type scanner struct {
	src Source
	pos int64
	end int64
}

// newScanner returns a scanner reading the window [pos, end) of src.
// end may exceed src.Size(); reads are clamped there.
func newScanner(src Source, pos, end int64) *scanner {
	return &scanner{src: src, pos: pos, end: end}
}

func (s *scanner) filePos() int64 { return s.pos }

func (s *scanner) atEOF() bool { return s.pos >= s.end || s.pos >= s.src.Size() }

// peek returns up to n bytes starting at the current position without
// advancing it. A short (possibly empty) slice is returned at EOF.
func (s *scanner) peek(n int) []byte {
	return window(s.src, s.pos, min64(s.pos+int64(n), s.end))
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func (s *scanner) skipWhiteSpace() {
	inComment := false
	for {
		buf := s.peek(1)
		if len(buf) == 0 {
			return
		}
		c := buf[0]
		if inComment {
			if c == '\r' || c == '\n' {
				inComment = false
			}
			s.pos++
			continue
		}
		if c == '%' {
			inComment = true
			s.pos++
			continue
		}
		if !isSpace[c] {
			return
		}
		s.pos++
	}
}

func (s *scanner) skipString(pat string) *Error {
	n := len(pat)
	buf := s.peek(n)
	if string(buf) != pat {
		return errAt(KindParse, s.pos, "expected %q but found %q", pat, string(buf))
	}
	s.pos += int64(n)
	return nil
}

// scanBytes advances the position while accept returns true, stopping
// at the first byte accept rejects or at EOF.
func (s *scanner) scanBytes(accept func(c byte) bool) []byte {
	var res []byte
	for {
		buf := s.peek(1)
		if len(buf) == 0 {
			return res
		}
		if !accept(buf[0]) {
			return res
		}
		res = append(res, buf[0])
		s.pos++
	}
}

// readObject parses one PDF value starting at the current position.
// It does not resolve `integer integer R` references on its own;
// callers parsing arrays/dicts handle the lookahead disambiguation
// between a bare integer and the start of a reference.
func (s *scanner) readObject() (Object, *Error) {
	buf := s.peek(5) // len("false") == 5
	if len(buf) == 0 {
		return nil, errAt(KindLex, s.pos, "unexpected EOF")
	}

	switch {
	case hasPrefix(buf, "null"):
		s.pos += 4
		return Null{}, nil
	case hasPrefix(buf, "true"):
		s.pos += 4
		return Bool(true), nil
	case hasPrefix(buf, "false"):
		s.pos += 5
		return Bool(false), nil
	case buf[0] == '/':
		return s.readName()
	case buf[0] >= '0' && buf[0] <= '9', buf[0] == '+', buf[0] == '-', buf[0] == '.':
		return s.readNumber()
	case hasPrefix(buf, "<<"):
		dict, err := s.readDict()
		if err != nil {
			return nil, err
		}
		s.skipWhiteSpace()
		if hasPrefix(s.peek(6), "stream") {
			return s.readStreamData(dict)
		}
		return dict, nil
	case buf[0] == '(':
		s.pos++
		return s.readQuotedString()
	case buf[0] == '<':
		s.pos++
		return s.readHexString()
	case buf[0] == '[':
		s.pos++
		return s.readArray()
	}
	return nil, errAt(KindLex, s.pos, "unrecognized object at byte %d", s.pos)
}

func hasPrefix(buf []byte, pat string) bool {
	if len(buf) < len(pat) {
		return false
	}
	return string(buf[:len(pat)]) == pat
}

// readInteger reads a signed decimal integer.
func (s *scanner) readInteger() (Integer, *Error) {
	first := true
	digits := s.scanBytes(func(c byte) bool {
		ok := (first && (c == '+' || c == '-')) || (c >= '0' && c <= '9')
		first = false
		return ok
	})
	if len(digits) == 0 {
		return 0, errAt(KindLex, s.pos, "expected integer")
	}
	x, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0, errAt(KindLex, s.pos, "malformed integer: %v", err)
	}
	return Integer(x), nil
}

// readNumber reads an integer or real number.
func (s *scanner) readNumber() (Object, *Error) {
	hasDot := false
	first := true
	digits := s.scanBytes(func(c byte) bool {
		switch {
		case !hasDot && c == '.':
			hasDot = true
		case first && (c == '+' || c == '-'):
		case c >= '0' && c <= '9':
		default:
			return false
		}
		first = false
		return true
	})
	if len(digits) == 0 {
		return nil, errAt(KindLex, s.pos, "expected number")
	}
	if hasDot {
		x, err := strconv.ParseFloat(string(digits), 64)
		if err != nil {
			return nil, errAt(KindLex, s.pos, "malformed real: %v", err)
		}
		return Real(x), nil
	}
	x, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		// PDF integers may overflow int64 in pathological files; fall
		// back to a real rather than failing the whole object.
		f, ferr := strconv.ParseFloat(string(digits), 64)
		if ferr != nil {
			return nil, errAt(KindLex, s.pos, "malformed integer: %v", err)
		}
		return Real(f), nil
	}
	return Integer(x), nil
}

// readQuotedString reads a ()-delimited literal string, starting
// immediately after the opening paren.
func (s *scanner) readQuotedString() (String, *Error) {
	var res []byte
	parenDepth := 0
	escape := false
	ignoreLF := false
	octalLeft := 0
	var octalVal byte
	s.scanBytes(func(c byte) bool {
		if ignoreLF {
			ignoreLF = false
			if c == '\n' {
				return true
			}
		}
		if octalLeft > 0 {
			octalVal = octalVal*8 + (c - '0')
			octalLeft--
			if octalLeft == 0 {
				res = append(res, octalVal)
			}
			return true
		}
		if escape {
			escape = false
			switch c {
			case '\n':
				return true
			case '\r':
				ignoreLF = true
				return true
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			}
			if c >= '0' && c <= '7' {
				octalLeft = 2
				octalVal = c - '0'
				return true
			}
		} else if c == '\\' {
			escape = true
			return true
		} else if c == '(' {
			parenDepth++
		} else if c == ')' {
			if parenDepth > 0 {
				parenDepth--
			} else {
				return false
			}
		} else if c == '\r' {
			c = '\n'
			ignoreLF = true
		}
		res = append(res, c)
		return true
	})
	if s.atEOF() {
		return String(res), errAt(KindLex, s.pos, "unterminated literal string")
	}
	s.pos++ // closing ")"
	return String(res), nil
}

// readHexString reads a <>-delimited hex string, starting immediately
// after the opening angle bracket. A trailing odd nibble is padded
// with 0.
func (s *scanner) readHexString() (String, *Error) {
	var res []byte
	var hi byte
	first := true
	s.scanBytes(func(c byte) bool {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c == '>':
			return false
		default:
			return true // whitespace inside hex strings is ignored
		}
		if first {
			hi = d
		} else {
			res = append(res, 16*hi+d)
		}
		first = !first
		return true
	})
	if !first {
		res = append(res, 16*hi)
	}
	s.skipString(">") // tolerate a missing terminator at EOF
	return String(res), nil
}

// readName reads a PDF name, decoding #xx hex escapes.
func (s *scanner) readName() (Name, *Error) {
	if err := s.skipString("/"); err != nil {
		return "", err
	}
	hexLeft := 0
	var hexByte byte
	var res []byte
	s.scanBytes(func(c byte) bool {
		switch {
		case hexLeft > 0:
			var v byte
			switch {
			case c >= '0' && c <= '9':
				v = c - '0'
			case c >= 'A' && c <= 'F':
				v = c - 'A' + 10
			case c >= 'a' && c <= 'f':
				v = c - 'a' + 10
			}
			hexByte = 16*hexByte + v
			hexLeft--
			if hexLeft == 0 {
				res = append(res, hexByte)
			}
		case c == '#':
			hexByte = 0
			hexLeft = 2
		case isSpace[c] || isDelimiter[c]:
			return false
		default:
			res = append(res, c)
		}
		return true
	})
	return Name(res), nil
}

// readArray reads an array, starting immediately after the opening
// "[". Sequences of "integer integer R" are collapsed into a single
// Reference, matching the object parser's indirect-reference rule.
func (s *scanner) readArray() (Array, *Error) {
	var arr Array
	integersSeen := 0
	for {
		s.skipWhiteSpace()
		buf := s.peek(1)
		if len(buf) == 0 {
			return nil, errAt(KindLex, s.pos, "unterminated array")
		}
		if buf[0] == ']' {
			s.pos++
			return arr, nil
		}
		if integersSeen >= 2 && buf[0] == 'R' {
			s.pos++
			k := len(arr)
			a, _ := arr[k-2].(Integer)
			b, _ := arr[k-1].(Integer)
			arr = append(arr[:k-2], Reference{Number: int(a), Generation: uint16(b)})
			integersSeen = 0
			continue
		}
		obj, err := s.readObject()
		if err != nil {
			return nil, err
		}
		if _, ok := obj.(Integer); ok {
			integersSeen++
		} else {
			integersSeen = 0
		}
		arr = append(arr, obj)
	}
}

// readDict reads a dictionary, starting at its opening "<<".
// Duplicate keys resolve last-wins.
func (s *scanner) readDict() (Dict, *Error) {
	if err := s.skipString("<<"); err != nil {
		return nil, err
	}
	s.skipWhiteSpace()

	dict := make(Dict)
	for {
		buf := s.peek(2)
		if hasPrefix(buf, ">>") {
			s.pos += 2
			return dict, nil
		}
		if len(buf) == 0 || buf[0] != '/' {
			return nil, errAt(KindParse, s.pos, "expected name or \">>\" in dictionary")
		}

		key, err := s.readName()
		if err != nil {
			return nil, err
		}
		s.skipWhiteSpace()

		val, err := s.readObject()
		if err != nil {
			return nil, err
		}
		s.skipWhiteSpace()

		// If the value is a bare integer, check whether this is
		// actually the start of an "integer integer R" reference.
		if a, isInt := val.(Integer); isInt {
			buf := s.peek(1)
			if len(buf) != 0 && buf[0] != '/' && buf[0] != '>' {
				save := s.pos
				b, ierr := s.readInteger()
				if ierr == nil {
					s.skipWhiteSpace()
					rbuf := s.peek(1)
					if len(rbuf) != 0 && rbuf[0] == 'R' {
						s.pos++
						val = Reference{Number: int(a), Generation: uint16(b)}
					} else {
						s.pos = save
					}
				} else {
					s.pos = save
				}
			}
		}

		dict[key] = val
		s.skipWhiteSpace()
	}
}

// readStreamData reads a stream's byte payload, starting immediately
// after its dictionary. A direct numeric /Length in dict is advisory:
// this function forward-scans for "endstream" and falls back to that
// when Length is wrong or is not a direct number, per the lexer's
// boundary-tolerance requirement.
func (s *scanner) readStreamData(dict Dict) (*Stream, *Error) {
	s.skipWhiteSpace()
	if err := s.skipString("stream"); err != nil {
		return nil, err
	}

	buf := s.peek(2)
	switch {
	case len(buf) >= 2 && buf[0] == '\r' && buf[1] == '\n':
		s.pos += 2
	case len(buf) >= 1 && buf[0] == '\n':
		s.pos++
	default:
		return nil, errAt(KindLex, s.pos, "stream keyword not followed by EOL")
	}

	start := s.pos
	length, _ := lengthHint(dict)

	end := start + length
	if length < 0 || !s.endstreamAt(end) {
		// Declared length is missing or wrong: scan forward for the
		// literal "endstream" keyword instead.
		found, ok := s.findEndstream(start)
		if !ok {
			return nil, errAt(KindLex, start, "endstream not found")
		}
		end = found
	}

	raw := window(s.src, start, end)
	s.pos = end
	s.skipWhiteSpace()
	if err := s.skipString("endstream"); err != nil {
		return nil, err
	}

	return &Stream{Dict: dict, Raw: raw}, nil
}

// lengthHint extracts a direct integer (or real) /Length, if present.
// An indirect /Length is not resolved, here or by readObject, which
// passes the dictionary through as parsed; it yields -1 and the
// endstream scan. The scanner thus stays free of resolver
// dependencies.
func lengthHint(dict Dict) (int64, bool) {
	switch v := dict["Length"].(type) {
	case Integer:
		return int64(v), true
	case Real:
		return int64(v), true
	}
	return -1, false
}

func (s *scanner) endstreamAt(pos int64) bool {
	save := s.pos
	s.pos = pos
	s.skipWhiteSpace()
	ok := hasPrefix(s.peek(9), "endstream")
	s.pos = save
	return ok
}

// findEndstream scans forward from pos for the first occurrence of
// "endstream" and returns the offset immediately before it (trimming
// the single trailing EOL the stream writer is required to emit).
func (s *scanner) findEndstream(from int64) (int64, bool) {
	const chunk = 4096
	const needle = "endstream"
	pos := from
	size := min64(s.end, s.src.Size())
	for pos < size {
		buf := window(s.src, pos, min64(pos+chunk+int64(len(needle)), size))
		if len(buf) == 0 {
			break
		}
		if idx := indexOf(buf, needle); idx >= 0 {
			end := pos + int64(idx)
			end = trimTrailingEOL(s.src, from, end)
			return end, true
		}
		pos += chunk
	}
	return 0, false
}

func indexOf(buf []byte, pat string) int {
	n := len(pat)
	for i := 0; i+n <= len(buf); i++ {
		if string(buf[i:i+n]) == pat {
			return i
		}
	}
	return -1
}

// trimTrailingEOL removes a single trailing CRLF, CR, or LF
// immediately before end, without going before start.
func trimTrailingEOL(src Source, start, end int64) int64 {
	buf := window(src, maxI64(start, end-2), end)
	switch {
	case len(buf) >= 2 && buf[0] == '\r' && buf[1] == '\n':
		return end - 2
	case len(buf) >= 1 && (buf[len(buf)-1] == '\n' || buf[len(buf)-1] == '\r'):
		return end - 1
	}
	return end
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

var isSpace = map[byte]bool{
	0:  true,
	9:  true,
	10: true,
	12: true,
	13: true,
	32: true,
}

var isDelimiter = map[byte]bool{
	'(': true,
	')': true,
	'<': true,
	'>': true,
	'[': true,
	']': true,
	'{': true,
	'}': true,
	'/': true,
	'%': true,
}

// readIndirectObject parses "objid genno obj <value> [stream] endobj"
// starting at the current position, which must point at the first
// digit of objid.
func (s *scanner) readIndirectObject() (num int, gen uint16, obj Object, rerr *Error) {
	s.skipWhiteSpace()
	a, err := s.readInteger()
	if err != nil {
		return 0, 0, nil, err
	}
	s.skipWhiteSpace()
	b, err := s.readInteger()
	if err != nil {
		return 0, 0, nil, err
	}
	s.skipWhiteSpace()
	if err := s.skipString("obj"); err != nil {
		return 0, 0, nil, err
	}
	s.skipWhiteSpace()

	val, err := s.readObject()
	if err != nil {
		return 0, 0, nil, err
	}
	s.skipWhiteSpace()

	if _, isInt := val.(Integer); isInt {
		// Might be the start of "integer integer R" rather than a
		// bare integer value; peek for "endobj" to disambiguate.
		if !hasPrefix(s.peek(6), "endobj") {
			c, err := s.readInteger()
			if err != nil {
				return 0, 0, nil, err
			}
			s.skipWhiteSpace()
			if err := s.skipString("R"); err != nil {
				return 0, 0, nil, err
			}
			aInt := val.(Integer)
			val = Reference{Number: int(aInt), Generation: uint16(c)}
			s.skipWhiteSpace()
		}
	}

	if err := s.skipString("endobj"); err != nil {
		return 0, 0, nil, err
	}
	return int(a), uint16(b), val, nil
}

// peekKeyword returns the run of regular (non-whitespace,
// non-delimiter) bytes at the current position without advancing it,
// distinguishing a bare keyword from an operand without constructing
// an Object.
func (s *scanner) peekKeyword() string {
	var res []byte
	save := s.pos
	s.scanBytes(func(c byte) bool {
		if isSpace[c] || isDelimiter[c] {
			return false
		}
		res = append(res, c)
		return true
	})
	s.pos = save
	return string(res)
}
