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
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"playa.dev/playa/internal/filter/ascii85"
	"playa.dev/playa/internal/filter/asciihex"
	"playa.dev/playa/internal/filter/lzw"
	"playa.dev/playa/internal/filter/predict"
	"playa.dev/playa/internal/filter/runlength"
)

// resolveFunc dereferences an indirect reference, or returns obj
// unchanged if it is already a direct value. decodeStream accepts nil
// when called before a Document/resolver exists (xref stream
// bootstrapping), in which case indirect Filter/DecodeParms entries
// are treated as absent rather than resolved.
type resolveFunc func(Object) Object

// decodeStream runs s.Raw through the filter chain named by
// s.Dict["Filter"], paired positionally with s.Dict["DecodeParms"],
// per spec.md §4.5. A decoder failure yields the bytes successfully
// produced so far alongside the error (spec.md §7's partial-decode
// policy); callers that only want best-effort bytes may ignore a
// non-nil error when the returned slice is non-empty.
func decodeStream(s *Stream, resolve resolveFunc) ([]byte, *Error) {
	names, parms := filterChain(s.Dict, resolve)

	data := s.Raw
	for i, name := range names {
		var parm Dict
		if i < len(parms) {
			parm = parms[i]
		}
		decoded, err := applyFilter(data, name, parm)
		if err != nil {
			return decoded, err
		}
		data = decoded
	}
	return data, nil
}

func filterChain(dict Dict, resolve resolveFunc) ([]Name, []Dict) {
	deref := func(o Object) Object {
		if resolve != nil {
			return resolve(o)
		}
		return o
	}

	var names []Name
	switch f := deref(dict["Filter"]).(type) {
	case Name:
		names = []Name{f}
	case Array:
		for _, el := range f {
			if n, ok := deref(el).(Name); ok {
				names = append(names, n)
			}
		}
	}

	var parms []Dict
	switch p := deref(dict["DecodeParms"]).(type) {
	case Dict:
		parms = []Dict{p}
	case Array:
		for _, el := range p {
			d, _ := deref(el).(Dict)
			parms = append(parms, d)
		}
	}

	return names, parms
}

// applyFilter decodes data through a single named filter. Image
// formats whose decode is out of scope (spec.md §4.5) are passed
// through unchanged.
func applyFilter(data []byte, name Name, parm Dict) ([]byte, *Error) {
	switch name {
	case "ASCIIHexDecode", "AHx":
		return drain(asciihex.Decode(bytes.NewReader(data)))
	case "ASCII85Decode", "A85":
		return drain(io.NopCloser(ascii85.Decode(bytes.NewReader(data))))
	case "LZWDecode", "LZW":
		early := intParm(parm, "EarlyChange", 1) != 0
		r := lzw.Decode(bytes.NewReader(data), early)
		out, err := drain(io.NopCloser(r))
		if err != nil {
			return out, err
		}
		return applyPredictor(out, parm)
	case "FlateDecode", "Fl":
		zr, zerr := zlib.NewReader(bytes.NewReader(data))
		if zerr != nil {
			return nil, errAt(KindFilter, 0, "FlateDecode: %v", zerr)
		}
		out, err := drain(zr)
		if err != nil {
			return out, err
		}
		return applyPredictor(out, parm)
	case "RunLengthDecode", "RL":
		return drain(runlength.Decode(bytes.NewReader(data)))
	case "CCITTFaxDecode", "CCF", "JBIG2Decode", "DCTDecode", "DCT", "JPXDecode":
		return data, nil
	case "Crypt":
		return data, nil
	default:
		return data, &Error{Kind: KindUnsupported, Err: fmt.Errorf("unsupported filter %q", name)}
	}
}

func applyPredictor(data []byte, parm Dict) ([]byte, *Error) {
	predictor := intParm(parm, "Predictor", 1)
	if predictor == 1 {
		return data, nil
	}
	p := &predict.Params{
		Colors:           intParm(parm, "Colors", 1),
		BitsPerComponent: intParm(parm, "BitsPerComponent", 8),
		Columns:          intParm(parm, "Columns", 1),
		Predictor:        predictor,
	}
	r, err := predict.NewReader(io.NopCloser(bytes.NewReader(data)), p)
	if err != nil {
		return nil, errAt(KindFilter, 0, "invalid predictor parameters: %v", err)
	}
	return drain(r)
}

func intParm(parm Dict, key Name, def int) int {
	if parm == nil {
		return def
	}
	if v, ok := parm[key].(Integer); ok {
		return int(v)
	}
	return def
}

// drain reads r to completion, returning whatever bytes were produced
// even when an error cuts the stream short (spec.md §7: filter
// errors yield the partially decoded bytes plus a warning).
func drain(r io.ReadCloser) ([]byte, *Error) {
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return out, errAt(KindFilter, 0, "%v", err)
	}
	return out, nil
}
