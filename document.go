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
	"log/slog"
	"sort"
)

// defaultMaxDepth bounds indirect-reference resolution recursion,
// per spec.md §4.6.
const defaultMaxDepth = 64

// OpenOptions configures Open. The zero value is the common case: an
// empty user password and the default recursion bound.
type OpenOptions struct {
	// Password is tried as both user and owner password when the
	// document is encrypted. The empty string is always tried first.
	Password string
	// MaxDepth overrides the reference-resolution recursion bound
	// (spec.md §4.6). Zero means defaultMaxDepth.
	MaxDepth int
	// Logger receives structured warnings as the document is parsed
	// and interpreted. A nil Logger discards them (they remain
	// available via Document.Warnings regardless).
	Logger *slog.Logger
}

type refKey struct {
	num int
	gen uint16
}

// Document owns the underlying byte source, the merged xref index,
// the trailer, the security handler (if any) and the resolver cache,
// per spec.md §3.
type Document struct {
	src      Source
	xref     map[int]*xrefEntry
	trailer  Dict
	crypt    *decryptor
	cache    map[refKey]Object
	objStm   map[int][]Object
	maxDepth int
	log      *slog.Logger
	warnings []*Error
}

// Open parses the xref/trailer chain (falling back to reconstruction
// per spec.md §4.3), authenticates against /Encrypt if present, and
// returns a Document ready for resolution. A failed open returns a
// nil Document and a non-nil error; there is no partial construction
// (spec.md §6).
func Open(src Source, opts *OpenOptions) (*Document, *Error) {
	if opts == nil {
		opts = &OpenOptions{}
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	xref, trailer, err := readXref(src)
	if err != nil {
		xref, trailer, err = reconstructXref(src)
		if err != nil {
			return nil, err
		}
	}
	if _, ok := trailer["Root"]; !ok {
		// A chain that parsed but produced no usable catalog reference
		// is as good as not having parsed at all: fall back the same
		// way a hard parse failure would.
		if rxref, rtrailer, rerr := reconstructXref(src); rerr == nil {
			xref, trailer = rxref, rtrailer
		}
	}

	doc := &Document{
		src:      src,
		xref:     xref,
		trailer:  trailer,
		cache:    make(map[refKey]Object),
		objStm:   make(map[int][]Object),
		maxDepth: maxDepth,
		log:      logger,
	}

	if encObj, ok := trailer["Encrypt"]; ok {
		encRef, _ := encObj.(Reference)
		enc, derr := doc.resolveRawForEncrypt(encObj)
		if derr != nil {
			return nil, derr
		}
		encDict, ok := enc.(Dict)
		if !ok {
			return nil, errAt(KindCrypt, 0, "/Encrypt is not a dictionary")
		}
		id := firstID(trailer)
		crypt, cerr := openDecryptor(encDict, id, []string{opts.Password})
		if cerr != nil {
			return nil, cerr
		}
		doc.crypt = crypt
		// The /Encrypt dictionary itself is never encrypted; mark its
		// object number (if indirect) so re-resolution skips decryption.
		if encRef.Number != 0 {
			doc.cache[refKey{encRef.Number, encRef.Generation}] = encDict
		}
	}

	return doc, nil
}

func firstID(trailer Dict) []byte {
	arr, ok := trailer["ID"].(Array)
	if !ok || len(arr) == 0 {
		return nil
	}
	s, _ := arr[0].(String)
	return []byte(s)
}

// resolveRawForEncrypt resolves the /Encrypt dictionary before a
// decryptor exists, so it is never passed through decryption itself.
func (d *Document) resolveRawForEncrypt(obj Object) (Object, *Error) {
	ref, ok := obj.(Reference)
	if !ok {
		return obj, nil
	}
	entry, ok := d.xref[ref.Number]
	if !ok || entry.Kind != xrefInUse {
		return Null{}, nil
	}
	s := newScanner(d.src, entry.Pos, d.src.Size())
	_, _, val, err := s.readIndirectObject()
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Resolve dereferences obj if it is an indirect Reference, following
// compressed (object-stream) entries as needed, and returns it
// unchanged otherwise. A reference absent from the xref, or one that
// exceeds the recursion bound, resolves to Null{} rather than an
// error (spec.md §3's invariant). Resolution is memoized by
// (objid, genno); callers that want nested references resolved too
// must call Resolve again on the result (spec.md §4.6: left to the
// caller by default).
func (d *Document) Resolve(obj Object) Object {
	return d.resolve(obj, 0)
}

func (d *Document) resolve(obj Object, depth int) Object {
	ref, ok := obj.(Reference)
	if !ok {
		return obj
	}
	if depth >= d.maxDepth {
		return Null{}
	}
	key := refKey{ref.Number, ref.Generation}
	if v, ok := d.cache[key]; ok {
		return v
	}
	// Pre-seed Null so a self-referential chain (A's value depends on
	// resolving A again) terminates instead of looping forever.
	d.cache[key] = Null{}
	v := d.resolveUncached(ref, depth)
	d.cache[key] = v
	return v
}

func (d *Document) resolveUncached(ref Reference, depth int) Object {
	entry, ok := d.xref[ref.Number]
	if !ok || entry.Kind == xrefFree {
		return Null{}
	}
	switch entry.Kind {
	case xrefInUse:
		s := newScanner(d.src, entry.Pos, d.src.Size())
		num, gen, obj, err := s.readIndirectObject()
		if err != nil {
			d.warn(err)
			return Null{}
		}
		if num != ref.Number {
			d.warn(errAt(KindResolve, entry.Pos, "xref offset for object %d actually holds object %d", ref.Number, num))
		}
		return d.decryptValue(obj, ref.Number, gen)
	case xrefCompressed:
		objs, err := d.objStmObjects(entry.Container, depth+1)
		if err != nil {
			d.warn(err)
			return Null{}
		}
		if entry.Index < 0 || entry.Index >= len(objs) {
			return Null{}
		}
		return objs[entry.Index]
	}
	return Null{}
}

// objStmObjects decodes object stream `container` into its N
// individually-addressable values, memoized per container.
func (d *Document) objStmObjects(container int, depth int) ([]Object, *Error) {
	if objs, ok := d.objStm[container]; ok {
		return objs, nil
	}
	if depth >= d.maxDepth {
		return nil, errAt(KindResolve, 0, "object stream nesting exceeds recursion bound")
	}

	containerObj := d.resolve(Reference{Number: container}, depth)
	stm, ok := containerObj.(*Stream)
	if !ok {
		return nil, errAt(KindResolve, 0, "object stream container %d is not a stream", container)
	}

	data, ferr := decodeStream(stm, func(o Object) Object { return d.resolve(o, depth) })
	if ferr != nil {
		d.warn(ferr)
		if data == nil {
			return nil, ferr
		}
	}

	n, _ := toInt(d.resolve(stm.Dict["N"], depth))
	first, _ := toInt(d.resolve(stm.Dict["First"], depth))

	headerSrc := NewSource(data)
	hs := newScanner(headerSrc, 0, int64(len(data)))
	type pair struct {
		num    int
		offset int64
	}
	pairs := make([]pair, 0, n)
	for i := 0; i < int(n); i++ {
		hs.skipWhiteSpace()
		numI, err := hs.readInteger()
		if err != nil {
			break
		}
		hs.skipWhiteSpace()
		offI, err := hs.readInteger()
		if err != nil {
			break
		}
		pairs = append(pairs, pair{int(numI), int64(offI)})
	}

	objs := make([]Object, len(pairs))
	for i, p := range pairs {
		start := int64(first) + p.offset
		os := newScanner(headerSrc, start, int64(len(data)))
		v, err := os.readObject()
		if err != nil {
			d.warn(err)
			objs[i] = Null{}
			continue
		}
		objs[i] = v
	}
	d.objStm[container] = objs
	return objs, nil
}

// decryptValue strips encryption from every String and Stream found
// directly within obj (recursing through Array/Dict), keyed by the
// owning indirect object's identity, per spec.md §4.4. It is applied
// exactly once, immediately after an in-use object is parsed from the
// file, before filter decoding ever sees the bytes.
func (d *Document) decryptValue(obj Object, num int, gen uint16) Object {
	if d.crypt == nil {
		return obj
	}
	switch v := obj.(type) {
	case String:
		dec, err := d.crypt.DecryptString(num, gen, []byte(v))
		if err != nil {
			d.warn(err)
			return v
		}
		return String(dec)
	case Array:
		out := make(Array, len(v))
		for i, el := range v {
			out[i] = d.decryptValue(el, num, gen)
		}
		return out
	case Dict:
		return d.decryptDict(v, num, gen)
	case *Stream:
		dict := d.decryptDict(v.Dict, num, gen)
		if t, _ := v.Dict["Type"].(Name); t == "XRef" {
			// Cross-reference streams are never encrypted.
			return &Stream{Dict: dict, Raw: v.Raw}
		}
		raw, err := d.crypt.DecryptStream(num, gen, v.Raw)
		if err != nil {
			d.warn(err)
			raw = v.Raw
		}
		return &Stream{Dict: dict, Raw: raw}
	default:
		return obj
	}
}

func (d *Document) decryptDict(dict Dict, num int, gen uint16) Dict {
	out := make(Dict, len(dict))
	for k, v := range dict {
		// Signature dictionaries' /Contents byte range is excluded from
		// encryption per spec.md §4.4.
		if t, _ := dict["Type"].(Name); t == "Sig" && k == "Contents" {
			out[k] = v
			continue
		}
		out[k] = d.decryptValue(v, num, gen)
	}
	return out
}

// DecodeStream runs a resolved stream's payload through its filter
// chain (spec.md §4.5), resolving indirect /Filter and /DecodeParms
// entries through this document's resolver.
func (d *Document) DecodeStream(s *Stream) ([]byte, *Error) {
	return decodeStream(s, d.Resolve)
}

// GetDict resolves obj and type-asserts the result to a Dict,
// returning (nil, false) for anything else (including Null).
func (d *Document) GetDict(obj Object) (Dict, bool) {
	v := d.Resolve(obj)
	if s, ok := v.(*Stream); ok {
		return s.Dict, true
	}
	dict, ok := v.(Dict)
	return dict, ok
}

// GetArray resolves obj and type-asserts the result to an Array.
func (d *Document) GetArray(obj Object) (Array, bool) {
	arr, ok := d.Resolve(obj).(Array)
	return arr, ok
}

// GetStream resolves obj and type-asserts the result to a *Stream.
func (d *Document) GetStream(obj Object) (*Stream, bool) {
	s, ok := d.Resolve(obj).(*Stream)
	return s, ok
}

// GetInt resolves obj and coerces it to an integer.
func (d *Document) GetInt(obj Object) (int64, bool) {
	return asInt(d.Resolve(obj))
}

// GetName resolves obj and type-asserts the result to a Name.
func (d *Document) GetName(obj Object) (Name, bool) {
	n, ok := d.Resolve(obj).(Name)
	return n, ok
}

// GetNumber resolves obj and coerces an Integer or Real to float64.
func (d *Document) GetNumber(obj Object) (float64, bool) {
	return asNumber(d.Resolve(obj))
}

// GetString resolves obj and type-asserts the result to a String.
func (d *Document) GetString(obj Object) (String, bool) {
	s, ok := d.Resolve(obj).(String)
	return s, ok
}

// Rectangle is a PDF rectangle, normalized so LLx<=URx and LLy<=URy.
type Rectangle struct {
	LLx, LLy, URx, URy float64
}

// GetRectangle resolves obj to a 4-element numeric Array and returns
// the Rectangle it describes.
func (d *Document) GetRectangle(obj Object) (*Rectangle, bool) {
	arr, ok := d.GetArray(obj)
	if !ok || len(arr) != 4 {
		return nil, false
	}
	var v [4]float64
	for i, el := range arr {
		n, ok := d.GetNumber(el)
		if !ok {
			return nil, false
		}
		v[i] = n
	}
	if v[0] > v[2] {
		v[0], v[2] = v[2], v[0]
	}
	if v[1] > v[3] {
		v[1], v[3] = v[3], v[1]
	}
	return &Rectangle{LLx: v[0], LLy: v[1], URx: v[2], URy: v[3]}, true
}

// Trailer returns the merged trailer dictionary (spec.md §3).
func (d *Document) Trailer() Dict { return d.trailer }

// Catalog resolves and returns the document catalog (/Root).
func (d *Document) Catalog() (Dict, bool) {
	return d.GetDict(d.trailer["Root"])
}

// Outlines resolves the catalog's /Outlines dictionary, if any. The
// outline walker itself is an out-of-scope collaborator (spec.md §1);
// this is the thin accessor it is built on.
func (d *Document) Outlines() (Dict, bool) {
	cat, ok := d.Catalog()
	if !ok {
		return nil, false
	}
	return d.GetDict(cat["Outlines"])
}

// StructTree resolves the catalog's /StructTreeRoot dictionary, if
// any. Walking its /K tree semantically is out of scope
// (SPEC_FULL.md §5); this is the raw typed accessor every other
// structure-aware consumer (MCID cross-referencing) is built on.
func (d *Document) StructTree() (Dict, bool) {
	cat, ok := d.Catalog()
	if !ok {
		return nil, false
	}
	return d.GetDict(cat["StructTreeRoot"])
}

// Info resolves the trailer's /Info dictionary and decodes every
// string-valued entry with TextString, so callers get readable Go
// text for /Title, /Author, /Subject, /Keywords, /Creator, /Producer
// and any producer-specific extension keys without each caller
// re-implementing the BOM/PDFDocEncoding/MacRoman dance.
func (d *Document) Info() (map[string]string, bool) {
	dict, ok := d.GetDict(d.trailer["Info"])
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(dict))
	for key, val := range dict {
		if s, ok := d.GetString(val); ok {
			out[string(key)] = TextString(s)
		}
	}
	return out, true
}

// Get looks up an indirect object directly by (objid, genno),
// following the same rules as Resolve.
func (d *Document) Get(num int, gen uint16) Object {
	return d.Resolve(Reference{Number: num, Generation: gen})
}

// Objects returns every object number present in the xref index, in
// ascending order, for iteration over the full object graph
// (External Interfaces, spec.md §6).
func (d *Document) Objects() []int {
	nums := make([]int, 0, len(d.xref))
	for n := range d.xref {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// warn records a structured warning on the document (spec.md §7: the
// warning log is observable but never interrupts iteration) and
// mirrors it to the configured slog.Logger.
func (d *Document) warn(err *Error) {
	d.warnings = append(d.warnings, err)
	d.log.Warn(err.Error(), "kind", string(err.Kind), "pos", err.Pos)
}

// Warnings returns every non-fatal parse/decode problem recorded so
// far, in the order encountered.
func (d *Document) Warnings() []error {
	out := make([]error, len(d.warnings))
	for i, w := range d.warnings {
		out[i] = w
	}
	return out
}
