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

package cmap

import (
	"fmt"
	"io"

	"seehuhn.de/go/postscript"
	type1 "seehuhn.de/go/postscript/cid"

	"playa.dev/playa/font/charcode"
)

// Read parses an encoding CMap body (the decoded bytes of a CMap
// stream, or a predefined CMap's resource text), per spec.md §4.9's
// "begincodespacerange/endcodespacerange" + "begincidchar/endcidchar"
// + "begincidrange/endcidrange" grammar. other resolves a named
// "usecmap" base, when present.
func Read(r io.Reader, other map[string]*Info) (*Info, error) {
	raw, err := readRaw(r)
	if err != nil {
		return nil, err
	}

	res := &Info{ROS: &type1.SystemInfo{}}

	if tp, ok := raw["CMapType"].(postscript.Integer); !ok || !(tp == 0 || tp == 1) {
		return nil, fmt.Errorf("cmap: invalid CMapType %v", raw["CMapType"])
	}
	if name, ok := raw["CMapName"].(postscript.Name); ok {
		res.Name = string(name)
	}
	if wmode, ok := raw["WMode"].(postscript.Integer); ok {
		res.WMode = int(wmode)
	}
	if ros, ok := raw["CIDSystemInfo"].(postscript.Dict); ok {
		if registry, ok := ros["Registry"].(postscript.String); ok {
			res.ROS.Registry = string(registry)
		}
		if ordering, ok := ros["Ordering"].(postscript.String); ok {
			res.ROS.Ordering = string(ordering)
		}
		if supplement, ok := ros["Supplement"].(postscript.Integer); ok {
			res.ROS.Supplement = int32(supplement)
		}
	}

	codeMap, ok := raw["CodeMap"].(*postscript.CMapInfo)
	if !ok {
		return nil, fmt.Errorf("cmap: unsupported CMap format")
	}

	var ranges charcode.CodeSpaceRange
	if codeMap.UseCMap != "" {
		if base, ok := other[string(codeMap.UseCMap)]; ok {
			ranges = append(ranges, base.CS...)
			res.Singles = append(res.Singles, base.Singles...)
			res.Ranges = append(res.Ranges, base.Ranges...)
		} else if base, ok := builtinEncodingCMaps[string(codeMap.UseCMap)]; ok {
			ranges = append(ranges, base.CS...)
			res.Singles = append(res.Singles, base.Singles...)
			res.Ranges = append(res.Ranges, base.Ranges...)
		}
	}
	for _, r := range codeMap.CodeSpaceRanges {
		ranges = append(ranges, charcode.Range{Low: r.Low, High: r.High})
	}
	res.CS = ranges

	for _, m := range codeMap.CidChars {
		code, k, _ := charcode.NewDecoder(res.CS).Decode(m.Src)
		if k != len(m.Src) {
			continue
		}
		if cid, ok := m.Dst.(postscript.Integer); ok {
			res.Singles = append(res.Singles, Single{Code: code, Value: type1.CID(cid)})
		}
	}
	for _, m := range codeMap.CidRanges {
		low, k1, _ := charcode.NewDecoder(res.CS).Decode(m.Low)
		high, k2, _ := charcode.NewDecoder(res.CS).Decode(m.High)
		if k1 != len(m.Low) || k2 != len(m.High) {
			continue
		}
		if cid, ok := m.Dst.(postscript.Integer); ok {
			res.Ranges = append(res.Ranges, Range{First: low, Last: high, Value: type1.CID(cid)})
		}
	}

	return res, nil
}

func readRaw(r io.Reader) (postscript.Dict, error) {
	intp := postscript.NewInterpreter()
	intp.MaxOps = 1_000_000
	if err := intp.Execute(r); err != nil {
		return nil, err
	}
	for name, val := range intp.CMapDirectory {
		cmap, ok := val.(postscript.Dict)
		if !ok {
			continue
		}
		if _, ok := cmap["CMapName"].(postscript.Name); !ok {
			cmap["CMapName"] = postscript.Name(name)
		}
		return cmap, nil
	}
	return nil, fmt.Errorf("cmap: no CMap dictionary found")
}

// builtinEncodingCMaps names the encoding CMaps this module can
// supply without bundled CJK resource data (spec.md §4.9's predefined
// CMaps beyond Identity are not retrievable from the pack — see
// DESIGN.md; a Type0 font naming one of those by name falls back to
// an empty Unicode result per spec.md §9, never a fabricated guess).
var builtinEncodingCMaps = map[string]*Info{
	"Identity-H": Identity("Identity-H", 0),
	"Identity-V": Identity("Identity-V", 1),
}

// OpenPredefined returns the named predefined CMap, when known.
func OpenPredefined(name string) (*Info, bool) {
	info, ok := builtinEncodingCMaps[name]
	return info, ok
}
