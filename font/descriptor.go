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

// Package font implements spec.md §4.9: font dictionary resolution
// for simple and composite (Type0) fonts, glyph width lookup, and the
// Unicode resolution order used by text extraction.
package font

import (
	"seehuhn.de/go/sfnt/os2"

	"playa.dev/playa"
)

// Flag bits of a FontDescriptor's /Flags entry (PDF 32000-1:2008,
// 9.8.2).
const (
	flagFixedPitch  = 1 << 0
	flagSerif       = 1 << 1
	flagSymbolic    = 1 << 2
	flagScript      = 1 << 3
	flagNonsymbolic = 1 << 5
	flagItalic      = 1 << 6
	flagAllCap      = 1 << 16
	flagSmallCap    = 1 << 17
	flagForceBold   = 1 << 18
)

// Descriptor holds the metrics and flags of a PDF font descriptor,
// spec.md §4.9's width/fallback-metrics source.
type Descriptor struct {
	FontName    string
	FontFamily  string
	FontStretch os2.Width
	FontWeight  os2.Weight

	IsFixedPitch bool
	IsSerif      bool
	IsSymbolic   bool
	IsScript     bool
	IsItalic     bool
	IsAllCap     bool
	IsSmallCap   bool
	ForceBold    bool

	FontBBox     *playa.Rectangle
	ItalicAngle  float64
	Ascent       float64
	Descent      float64
	Leading      float64
	CapHeight    float64
	XHeight      float64
	StemV        float64
	StemH        float64
	MaxWidth     float64
	AvgWidth     float64
	MissingWidth float64
}

// ReadDescriptor decodes a /FontDescriptor dictionary. A missing or
// malformed descriptor is not an error here: callers fall back to
// zero-value metrics (spec.md §9, "never fabricate, report what is
// there").
func ReadDescriptor(doc *playa.Document, obj playa.Object) *Descriptor {
	dict, ok := doc.GetDict(obj)
	if !ok {
		return nil
	}
	res := &Descriptor{StemV: -1}

	if name, ok := doc.GetName(dict["FontName"]); ok {
		res.FontName = string(name)
	}
	if s, ok := doc.GetString(dict["FontFamily"]); ok {
		res.FontFamily = string(s)
	}
	switch name, _ := doc.GetName(dict["FontStretch"]); name {
	case "UltraCondensed":
		res.FontStretch = os2.WidthUltraCondensed
	case "ExtraCondensed":
		res.FontStretch = os2.WidthExtraCondensed
	case "Condensed":
		res.FontStretch = os2.WidthCondensed
	case "SemiCondensed":
		res.FontStretch = os2.WidthSemiCondensed
	case "Normal":
		res.FontStretch = os2.WidthNormal
	case "SemiExpanded":
		res.FontStretch = os2.WidthSemiExpanded
	case "Expanded":
		res.FontStretch = os2.WidthExpanded
	case "ExtraExpanded":
		res.FontStretch = os2.WidthExtraExpanded
	case "UltraExpanded":
		res.FontStretch = os2.WidthUltraExpanded
	}
	if w, ok := doc.GetNumber(dict["FontWeight"]); ok && w > 0 && w < 1000 {
		res.FontWeight = os2.Weight(w).Rounded()
	}

	flags, _ := doc.GetInt(dict["Flags"])
	res.IsFixedPitch = flags&flagFixedPitch != 0
	res.IsSerif = flags&flagSerif != 0
	res.IsSymbolic = flags&flagSymbolic != 0
	res.IsScript = flags&flagScript != 0
	res.IsItalic = flags&flagItalic != 0
	res.IsAllCap = flags&flagAllCap != 0
	res.IsSmallCap = flags&flagSmallCap != 0
	res.ForceBold = flags&flagForceBold != 0

	res.FontBBox, _ = doc.GetRectangle(dict["FontBBox"])
	res.ItalicAngle, _ = doc.GetNumber(dict["ItalicAngle"])
	res.Ascent, _ = doc.GetNumber(dict["Ascent"])
	res.Descent, _ = doc.GetNumber(dict["Descent"])
	res.Leading, _ = doc.GetNumber(dict["Leading"])
	res.CapHeight, _ = doc.GetNumber(dict["CapHeight"])
	res.XHeight, _ = doc.GetNumber(dict["XHeight"])
	if v, ok := doc.GetNumber(dict["StemV"]); ok {
		res.StemV = v
	}
	res.StemH, _ = doc.GetNumber(dict["StemH"])
	res.MaxWidth, _ = doc.GetNumber(dict["MaxWidth"])
	res.AvgWidth, _ = doc.GetNumber(dict["AvgWidth"])
	res.MissingWidth, _ = doc.GetNumber(dict["MissingWidth"])

	return res
}
