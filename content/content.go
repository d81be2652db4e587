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

// Package content implements spec.md §4.8: the content-stream
// interpreter. It replays a page or form's operator stream against a
// graphics-state machine and emits typed content objects (text runs,
// painted paths, images, marked-content markers) rather than
// rendering pixels.
package content

import (
	"playa.dev/playa"
	"playa.dev/playa/font"
)

// ObjectType is the spec.md §6 "object_type" tag stable across the
// content-object attribute surface.
type ObjectType string

const (
	TypeChar  ObjectType = "char"
	TypeText  ObjectType = "text"
	TypePath  ObjectType = "path"
	TypeImage ObjectType = "image"
	TypeMCS   ObjectType = "mcs"
)

// Object is the interface implemented by every content object this
// package emits: Glyph, TextRun, Path, Image, MarkedContentStart and
// MarkedContentEnd.
type Object interface {
	ObjectType() ObjectType
}

// Color is a stroking or non-stroking color value (spec.md §3's
// graphics-state "stroking and non-stroking color spaces and values"):
// the name of the active color space — a device space (DeviceGray/
// DeviceRGB/DeviceCMYK) or a name from /Resources/ColorSpace — plus
// its raw numeric components. Pattern is set instead of (or alongside)
// Components when the space is /Pattern and "scn"/"SCN" named a
// pattern resource.
type Color struct {
	Space      playa.Name
	Components []float64
	Pattern    playa.Name
}

// defaultColor is the graphics state's initial stroking and
// non-stroking color: black in DeviceGray (PDF 32000-1:2008 §8.4).
func defaultColor() Color {
	return Color{Space: "DeviceGray", Components: []float64{0}}
}

// GState is an immutable snapshot of the parts of the graphics state
// (spec.md §3) that every content object carries, taken at the moment
// the object is emitted.
type GState struct {
	CTM          Matrix
	LineWidth    float64
	LineCap      int
	LineJoin     int
	MiterLimit   float64
	Dash         []float64
	DashPhase    float64
	RenderIntent playa.Name
	Flatness     float64
	StrokeColor  Color
	FillColor    Color
}

// TextState is an immutable snapshot of the PDF text state (spec.md
// §3), attached to text items and glyphs only.
type TextState struct {
	Tc, Tw, Tz, TL, Ts float64
	Font               playa.Name
	FontSize           float64
	Tr                 int
	Tm, Tlm            Matrix
}

// MCS is the nearest enclosing marked-content frame active when a
// content object was emitted (spec.md §3's marked-content stack), or
// nil if no "BMC"/"BDC" is currently open.
type MCS struct {
	Tag        playa.Name
	MCID       int
	HasMCID    bool
	Properties playa.Dict
}

// PathSegment is one drawing command of a path ("m l c v y re h",
// spec.md §4.8).
type PathSegment struct {
	Op     byte // 'm', 'l', 'c', 'h'
	Points [3][2]float64
	N      int // number of valid entries in Points
}

// transform returns seg with every point mapped through m.
func (seg PathSegment) transform(m Matrix) PathSegment {
	out := seg
	for i := 0; i < seg.N; i++ {
		out.Points[i][0], out.Points[i][1] = m.Apply(seg.Points[i][0], seg.Points[i][1])
	}
	return out
}

// PaintMode records which of the "fill", "stroke" and "clip" actions a
// path-painting operator performs (spec.md §4.8: "f F f* B B* b b* s S
// n" flush a path; "W W*" additionally update the clip).
type PaintMode struct {
	Fill    bool
	Stroke  bool
	EvenOdd bool
	Clip    bool
	ClipEO  bool
}

// Path is a painted (or clip-only) path, emitted when a path-painting
// operator flushes the current path builder. RawSegments holds the
// operands exactly as given in user space; Segments is the same path
// transformed into device space by CTM (spec.md §6).
type Path struct {
	RawSegments []PathSegment
	Segments    []PathSegment
	Paint       PaintMode
	CTM         Matrix
	BBox        playa.Rectangle
	MCS         *MCS
	GState      GState
}

func (*Path) ObjectType() ObjectType { return TypePath }

// Subpaths splits Segments into the runs that each begin at an "m"
// (subsequent "m" ops start a new subpath; spec.md §6: "iteration over
// a path yields subpaths beginning at each m/re").
func (p *Path) Subpaths() [][]PathSegment {
	var subpaths [][]PathSegment
	var cur []PathSegment
	for _, seg := range p.Segments {
		if seg.Op == 'm' && len(cur) > 0 {
			subpaths = append(subpaths, cur)
			cur = nil
		}
		cur = append(cur, seg)
	}
	if len(cur) > 0 {
		subpaths = append(subpaths, cur)
	}
	return subpaths
}

// Glyph is one shown character of a text-showing operator (spec.md §6
// object_type "char"), carrying its font.Glyph decode (code/CID/
// width/Unicode text) together with the rendering matrix spec.md
// §4.9's "glyph placement" computes: textMatrix ∘ CTM scaled by the
// font size.
type Glyph struct {
	font.Glyph
	Matrix    Matrix
	FontSize  float64
	BBox      playa.Rectangle
	CTM       Matrix
	MCS       *MCS
	GState    GState
	TextState TextState
}

func (*Glyph) ObjectType() ObjectType { return TypeChar }

// TextRun is the sequence of glyphs shown between two text-positioning
// events (a single Tj/'/" call, or one element of a TJ array; spec.md
// §6 object_type "text"). Chars is the concatenation of every glyph's
// Unicode text, the "chars" attribute spec.md §8 scenario 1 checks.
type TextRun struct {
	Font      playa.Name
	Glyphs    []Glyph
	Chars     string
	BBox      playa.Rectangle
	CTM       Matrix
	MCS       *MCS
	GState    GState
	TextState TextState
}

func (*TextRun) ObjectType() ObjectType { return TypeText }

// Image is an XObject image invocation (spec.md §4.8's "Do" handling
// for image XObjects and inline images): its resource name (empty for
// an inline image), its own stream dictionary, and the CTM-transformed
// unit square it occupies.
type Image struct {
	Name    playa.Name
	Dict    playa.Dict
	Inline  bool
	RawData []byte
	CTM     Matrix
	BBox    playa.Rectangle
	MCS     *MCS
	GState  GState
}

func (*Image) ObjectType() ObjectType { return TypeImage }

// MarkedContentStart is emitted by "BMC"/"BDC" (spec.md §4.8).
type MarkedContentStart struct {
	Tag        playa.Name
	MCID       int
	HasMCID    bool
	Properties playa.Dict
	CTM        Matrix
	GState     GState
}

func (*MarkedContentStart) ObjectType() ObjectType { return TypeMCS }

// MarkedContentEnd is emitted by "EMC". Mismatched EMCs (more EMC than
// BMC/BDC) are silently absorbed by the interpreter and never reach
// the object stream, per spec.md §4.8.
type MarkedContentEnd struct{}

func (*MarkedContentEnd) ObjectType() ObjectType { return TypeMCS }

// bound returns the smallest rectangle enclosing every point, in
// whatever coordinate space the points are already expressed in
// (spec.md §6: device-space bbox for emitted objects).
func bound(points [][2]float64) playa.Rectangle {
	if len(points) == 0 {
		return playa.Rectangle{}
	}
	r := playa.Rectangle{LLx: points[0][0], LLy: points[0][1], URx: points[0][0], URy: points[0][1]}
	for _, p := range points[1:] {
		if p[0] < r.LLx {
			r.LLx = p[0]
		}
		if p[0] > r.URx {
			r.URx = p[0]
		}
		if p[1] < r.LLy {
			r.LLy = p[1]
		}
		if p[1] > r.URy {
			r.URy = p[1]
		}
	}
	return r
}
