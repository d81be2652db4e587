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

package content

import (
	"playa.dev/playa"
	"playa.dev/playa/font"
)

// maxFormDepth bounds recursive "Do" form invocation. It is separate
// from, and lower than, the object resolver's recursion bound.
const maxFormDepth = 16

// state is the graphics state "q"/"Q" save and restore (spec.md §3):
// the CTM, line and dash parameters, rendering intent and flatness,
// stroking/non-stroking color, and the text parameters spec.md §4.9's
// glyph placement formula depends on (Tc, Tw, Tz, TL, Tr, Ts, the
// active font and size).
type state struct {
	CTM Matrix

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

	Font     playa.Name
	FontDict *font.Dict
	FontSize float64

	Tc, Tw, Tz, TL, Ts float64
	Tr                 int
}

func newState(ctm Matrix) state {
	return state{
		CTM:          ctm,
		LineWidth:    1,
		MiterLimit:   10,
		RenderIntent: "RelativeColorimetric",
		StrokeColor:  defaultColor(),
		FillColor:    defaultColor(),
		Tz:           100,
	}
}

func (s state) gstate() GState {
	return GState{
		CTM:          s.CTM,
		LineWidth:    s.LineWidth,
		LineCap:      s.LineCap,
		LineJoin:     s.LineJoin,
		MiterLimit:   s.MiterLimit,
		Dash:         s.Dash,
		DashPhase:    s.DashPhase,
		RenderIntent: s.RenderIntent,
		Flatness:     s.Flatness,
		StrokeColor:  s.StrokeColor,
		FillColor:    s.FillColor,
	}
}

func (s state) textstate(tm, tlm Matrix) TextState {
	return TextState{
		Tc: s.Tc, Tw: s.Tw, Tz: s.Tz, TL: s.TL, Ts: s.Ts,
		Font: s.Font, FontSize: s.FontSize, Tr: s.Tr,
		Tm: tm, Tlm: tlm,
	}
}

// Interpreter replays a content stream against a graphics-state
// machine and emits the content objects it produces (spec.md §4.8).
type Interpreter struct {
	doc *playa.Document
}

// NewInterpreter returns an Interpreter resolving resources through
// doc.
func NewInterpreter(doc *playa.Document) *Interpreter {
	return &Interpreter{doc: doc}
}

// Run interprets data (an already filter-decoded content stream)
// against resources, starting from the identity CTM.
func (ip *Interpreter) Run(data []byte, resources playa.Dict) ([]Object, error) {
	return ip.run(data, resources, Identity, 0)
}

func (ip *Interpreter) run(data []byte, resources playa.Dict, initCTM Matrix, depth int) ([]Object, error) {
	var out []Object
	var gsStack []state
	cur := newState(initCTM)

	var path []PathSegment
	var curX, curY, startX, startY float64
	var pendingClip PaintMode
	var clipPending bool

	var mcStack []*MCS

	var Tm, Tlm Matrix
	mcDepth := 0

	var operands []playa.Object
	sc := playa.NewContentScanner(data)

	flush := func() { operands = operands[:0] }
	num := func(i int) float64 {
		idx := len(operands) + i
		if idx < 0 || idx >= len(operands) {
			return 0
		}
		return toFloat(operands[idx])
	}
	name := func(i int) playa.Name {
		idx := len(operands) + i
		if idx < 0 || idx >= len(operands) {
			return ""
		}
		n, _ := operands[idx].(playa.Name)
		return n
	}
	str := func(i int) playa.String {
		idx := len(operands) + i
		if idx < 0 || idx >= len(operands) {
			return nil
		}
		s, _ := operands[idx].(playa.String)
		return s
	}
	topMCS := func() *MCS {
		if len(mcStack) == 0 {
			return nil
		}
		return mcStack[len(mcStack)-1]
	}

	for {
		obj, op, ok, _ := sc.Next()
		if !ok {
			break
		}
		if op == "" {
			operands = append(operands, obj)
			continue
		}

		switch op {
		case "q":
			gsStack = append(gsStack, cur)
		case "Q":
			if n := len(gsStack); n > 0 {
				cur = gsStack[n-1]
				gsStack = gsStack[:n-1]
			}
		case "cm":
			if len(operands) >= 6 {
				m := matrixFromOperands(operands[len(operands)-6:])
				cur.CTM = m.Mul(cur.CTM)
			}

		case "w":
			if len(operands) >= 1 {
				cur.LineWidth = num(-1)
			}
		case "J":
			if len(operands) >= 1 {
				cur.LineCap = int(num(-1))
			}
		case "j":
			if len(operands) >= 1 {
				cur.LineJoin = int(num(-1))
			}
		case "M":
			if len(operands) >= 1 {
				cur.MiterLimit = num(-1)
			}
		case "d":
			if len(operands) >= 2 {
				if arr, ok := operands[len(operands)-2].(playa.Array); ok {
					cur.Dash = make([]float64, len(arr))
					for i, o := range arr {
						cur.Dash[i] = toFloat(o)
					}
				}
				cur.DashPhase = num(-1)
			}
		case "ri":
			if len(operands) >= 1 {
				cur.RenderIntent = name(-1)
			}
		case "i":
			if len(operands) >= 1 {
				cur.Flatness = num(-1)
			}

		case "g":
			if len(operands) >= 1 {
				cur.FillColor = Color{Space: "DeviceGray", Components: []float64{num(-1)}}
			}
		case "G":
			if len(operands) >= 1 {
				cur.StrokeColor = Color{Space: "DeviceGray", Components: []float64{num(-1)}}
			}
		case "rg":
			if len(operands) >= 3 {
				cur.FillColor = Color{Space: "DeviceRGB", Components: []float64{num(-3), num(-2), num(-1)}}
			}
		case "RG":
			if len(operands) >= 3 {
				cur.StrokeColor = Color{Space: "DeviceRGB", Components: []float64{num(-3), num(-2), num(-1)}}
			}
		case "k":
			if len(operands) >= 4 {
				cur.FillColor = Color{Space: "DeviceCMYK", Components: []float64{num(-4), num(-3), num(-2), num(-1)}}
			}
		case "K":
			if len(operands) >= 4 {
				cur.StrokeColor = Color{Space: "DeviceCMYK", Components: []float64{num(-4), num(-3), num(-2), num(-1)}}
			}
		case "cs":
			if len(operands) >= 1 {
				cur.FillColor = Color{Space: name(-1)}
			}
		case "CS":
			if len(operands) >= 1 {
				cur.StrokeColor = Color{Space: name(-1)}
			}
		case "sc", "scn":
			cur.FillColor = colorFromOperands(cur.FillColor.Space, operands)
		case "SC", "SCN":
			cur.StrokeColor = colorFromOperands(cur.StrokeColor.Space, operands)

		case "m":
			if len(operands) >= 2 {
				curX, curY = num(-2), num(-1)
				startX, startY = curX, curY
				path = append(path, PathSegment{Op: 'm', Points: [3][2]float64{{curX, curY}}, N: 1})
			}
		case "l":
			if len(operands) >= 2 {
				curX, curY = num(-2), num(-1)
				path = append(path, PathSegment{Op: 'l', Points: [3][2]float64{{curX, curY}}, N: 1})
			}
		case "c":
			if len(operands) >= 6 {
				x1, y1 := num(-6), num(-5)
				x2, y2 := num(-4), num(-3)
				x3, y3 := num(-2), num(-1)
				path = append(path, PathSegment{Op: 'c', Points: [3][2]float64{{x1, y1}, {x2, y2}, {x3, y3}}, N: 3})
				curX, curY = x3, y3
			}
		case "v":
			if len(operands) >= 4 {
				x2, y2 := num(-4), num(-3)
				x3, y3 := num(-2), num(-1)
				path = append(path, PathSegment{Op: 'c', Points: [3][2]float64{{curX, curY}, {x2, y2}, {x3, y3}}, N: 3})
				curX, curY = x3, y3
			}
		case "y":
			if len(operands) >= 4 {
				x1, y1 := num(-4), num(-3)
				x3, y3 := num(-2), num(-1)
				path = append(path, PathSegment{Op: 'c', Points: [3][2]float64{{x1, y1}, {x3, y3}, {x3, y3}}, N: 3})
				curX, curY = x3, y3
			}
		case "h":
			path = append(path, PathSegment{Op: 'h'})
			curX, curY = startX, startY
		case "re":
			if len(operands) >= 4 {
				x, y, w, h := num(-4), num(-3), num(-2), num(-1)
				corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
				for i, c := range corners {
					if i == 0 {
						path = append(path, PathSegment{Op: 'm', Points: [3][2]float64{c}, N: 1})
						startX, startY = c[0], c[1]
					} else {
						path = append(path, PathSegment{Op: 'l', Points: [3][2]float64{c}, N: 1})
					}
					curX, curY = c[0], c[1]
				}
				path = append(path, PathSegment{Op: 'h'})
				curX, curY = startX, startY
			}

		case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*", "n":
			// "s", "b" and "b*" close the current subpath before
			// painting it, equivalent to an "h" followed by the
			// corresponding open operator (spec.md §4.8).
			if op == "s" || op == "b" || op == "b*" {
				if len(path) > 0 {
					path = append(path, PathSegment{Op: 'h'})
					curX, curY = startX, startY
				}
			}
			mode := paintModeFor(op)
			if clipPending {
				mode.Clip = pendingClip.Clip
				mode.ClipEO = pendingClip.ClipEO
				clipPending = false
			}
			if len(path) > 0 {
				segs := transformSegments(path, cur.CTM)
				bbox := transformRect(bound(rawPoints(path)), cur.CTM)
				out = append(out, &Path{
					RawSegments: path,
					Segments:    segs,
					Paint:       mode,
					CTM:         cur.CTM,
					BBox:        bbox,
					MCS:         topMCS(),
					GState:      cur.gstate(),
				})
			}
			path = nil

		case "W":
			clipPending = true
			pendingClip.Clip = true
		case "W*":
			clipPending = true
			pendingClip.Clip = true
			pendingClip.ClipEO = true

		case "BT":
			Tm, Tlm = Identity, Identity
		case "ET":
			// nothing to restore: Tm/Tlm are not part of the saved
			// graphics state (spec.md §4.8).

		case "Tc":
			cur.Tc = num(-1)
		case "Tw":
			cur.Tw = num(-1)
		case "Tz":
			cur.Tz = num(-1)
		case "TL":
			cur.TL = num(-1)
		case "Ts":
			cur.Ts = num(-1)
		case "Tr":
			cur.Tr = int(num(-1))
		case "Tf":
			if len(operands) >= 2 {
				cur.Font = name(-2)
				cur.FontSize = num(-1)
				cur.FontDict = ip.resolveFont(resources, cur.Font)
			}
		case "Td":
			if len(operands) >= 2 {
				Tlm = Translate(num(-2), num(-1)).Mul(Tlm)
				Tm = Tlm
			}
		case "TD":
			if len(operands) >= 2 {
				cur.TL = -num(-1)
				Tlm = Translate(num(-2), num(-1)).Mul(Tlm)
				Tm = Tlm
			}
		case "Tm":
			if len(operands) >= 6 {
				Tlm = matrixFromOperands(operands[len(operands)-6:])
				Tm = Tlm
			}
		case "T*":
			Tlm = Translate(0, -cur.TL).Mul(Tlm)
			Tm = Tlm

		case "Tj":
			if len(operands) >= 1 {
				run, newTm := ip.showText(cur, Tm, Tlm, str(-1), topMCS())
				if run != nil {
					out = append(out, run)
				}
				Tm = newTm
			}
		case "'":
			Tlm = Translate(0, -cur.TL).Mul(Tlm)
			Tm = Tlm
			if len(operands) >= 1 {
				run, newTm := ip.showText(cur, Tm, Tlm, str(-1), topMCS())
				if run != nil {
					out = append(out, run)
				}
				Tm = newTm
			}
		case "\"":
			if len(operands) >= 3 {
				cur.Tw = num(-3)
				cur.Tc = num(-2)
			}
			Tlm = Translate(0, -cur.TL).Mul(Tlm)
			Tm = Tlm
			if len(operands) >= 1 {
				run, newTm := ip.showText(cur, Tm, Tlm, str(-1), topMCS())
				if run != nil {
					out = append(out, run)
				}
				Tm = newTm
			}
		case "TJ":
			if len(operands) >= 1 {
				if arr, ok := operands[len(operands)-1].(playa.Array); ok {
					for _, el := range arr {
						switch v := el.(type) {
						case playa.String:
							run, newTm := ip.showText(cur, Tm, Tlm, v, topMCS())
							if run != nil {
								out = append(out, run)
							}
							Tm = newTm
						case playa.Integer, playa.Real:
							adj := toFloat(v)
							Tm = Translate(-adj/1000*cur.FontSize*(cur.Tz/100), 0).Mul(Tm)
						}
					}
				}
			}

		case "BMC":
			mc := &MCS{Tag: name(-1)}
			mcStack = append(mcStack, mc)
			out = append(out, &MarkedContentStart{Tag: mc.Tag, CTM: cur.CTM, GState: cur.gstate()})
			mcDepth++
		case "BDC":
			if len(operands) >= 2 {
				mc := &MCS{Tag: name(-2)}
				switch p := operands[len(operands)-1].(type) {
				case playa.Dict:
					mc.Properties = p
				case playa.Name:
					if props, ok := ip.doc.GetDict(propertyRef(resources, p)); ok {
						mc.Properties = props
					}
				}
				if v, ok := mc.Properties["MCID"]; ok {
					if n, ok := ip.doc.GetInt(v); ok {
						mc.MCID, mc.HasMCID = int(n), true
					}
				}
				mcStack = append(mcStack, mc)
				out = append(out, &MarkedContentStart{
					Tag: mc.Tag, MCID: mc.MCID, HasMCID: mc.HasMCID, Properties: mc.Properties,
					CTM: cur.CTM, GState: cur.gstate(),
				})
			}
			mcDepth++
		case "EMC":
			if mcDepth > 0 {
				out = append(out, &MarkedContentEnd{})
				mcDepth--
				if len(mcStack) > 0 {
					mcStack = mcStack[:len(mcStack)-1]
				}
			}

		case "Do":
			if len(operands) >= 1 {
				ip.doXObject(name(-1), resources, cur, &out, depth, topMCS())
			}

		case "BI":
			dict := playa.Dict{}
			for {
				kobj, kop, kok, _ := sc.Next()
				if !kok || kop == "ID" {
					break
				}
				key, ok := kobj.(playa.Name)
				if !ok {
					continue
				}
				val, _, vok, _ := sc.Next()
				if !vok {
					break
				}
				dict[key] = val
			}
			raw := sc.ReadInlineImageRawData()
			corners := unitSquare(cur.CTM)
			out = append(out, &Image{
				Inline: true, Dict: dict, RawData: raw, CTM: cur.CTM,
				BBox: bound(corners[:]), MCS: topMCS(), GState: cur.gstate(),
			})
		}

		flush()
	}

	return out, nil
}

// resolveFont reads the font.Dict for name out of resources'
// /Font subdictionary. Resolution failures (malformed or missing font
// resource) yield a nil FontDict; text-showing operators against a
// nil font silently produce no glyphs rather than aborting the whole
// content stream (spec.md §7: a single broken component never stops
// the rest of the decode).
func (ip *Interpreter) resolveFont(resources playa.Dict, name playa.Name) *font.Dict {
	fontsDict, ok := ip.doc.GetDict(resources["Font"])
	if !ok {
		return nil
	}
	dict, err := font.ReadDict(ip.doc, fontsDict[name])
	if err != nil {
		return nil
	}
	return dict
}

func propertyRef(resources playa.Dict, name playa.Name) playa.Object {
	props, ok := resources["Properties"].(playa.Dict)
	if !ok {
		return playa.Null{}
	}
	return props[name]
}

// showText decodes s through the active font and computes each
// glyph's rendering matrix and advance, per spec.md §4.9's placement
// formula: w/1000 * fontSize * hScale + charSpacing (+ wordSpacing for
// a simple-font code 0x20), with the text matrix advancing by that
// amount after each glyph. The returned TextRun carries the gstate/
// textstate/mcs snapshot active when it was shown, its device-space
// bbox (the union of its glyphs' bboxes), and Chars, the concatenated
// Unicode text of every glyph (spec.md §6, §8 scenario 1).
func (ip *Interpreter) showText(cur state, tm, tlm Matrix, s playa.String, mcs *MCS) (*TextRun, Matrix) {
	if cur.FontDict == nil || s == nil {
		return nil, tm
	}
	glyphs := cur.FontDict.Decode(s)
	run := &TextRun{
		Font:      cur.Font,
		Glyphs:    make([]Glyph, 0, len(glyphs)),
		CTM:       cur.CTM,
		MCS:       mcs,
		GState:    cur.gstate(),
		TextState: cur.textstate(tm, tlm),
	}

	hScale := cur.Tz / 100
	var glyphBoxes [][2]float64
	for _, g := range glyphs {
		trm := Matrix{cur.FontSize * hScale, 0, 0, cur.FontSize, 0, cur.Ts}.Mul(tm).Mul(cur.CTM)
		bbox := glyphBBox(cur.FontDict, trm)
		run.Glyphs = append(run.Glyphs, Glyph{
			Glyph: g, Matrix: trm, FontSize: cur.FontSize,
			BBox: bbox, CTM: cur.CTM, MCS: mcs,
			GState: cur.gstate(), TextState: cur.textstate(tm, tlm),
		})
		run.Chars += g.Text
		glyphBoxes = append(glyphBoxes, [2]float64{bbox.LLx, bbox.LLy}, [2]float64{bbox.URx, bbox.URy})

		disp := g.Width*cur.FontSize + cur.Tc
		if g.UseWordSpacing {
			disp += cur.Tw
		}
		disp *= hScale
		tm = Translate(disp, 0).Mul(tm)
	}
	run.BBox = bound(glyphBoxes)
	return run, tm
}

// glyphBBox derives a glyph's device-space bounding box from its
// font's /FontBBox (in glyph space, 1000 units to the em) transformed
// by the glyph's rendering matrix trm, per spec.md §6. A font with no
// usable /FontBBox falls back to the standard 0-to-1-em box.
func glyphBBox(fd *font.Dict, trm Matrix) playa.Rectangle {
	box := playa.Rectangle{LLx: 0, LLy: 0, URx: 1, URy: 1}
	if fd != nil && fd.Descriptor != nil && fd.Descriptor.FontBBox != nil {
		b := fd.Descriptor.FontBBox
		box = playa.Rectangle{LLx: b.LLx / 1000, LLy: b.LLy / 1000, URx: b.URx / 1000, URy: b.URy / 1000}
	}
	return transformRect(box, trm)
}

// doXObject invokes the named XObject (spec.md §4.8's "Do" handling).
// Form XObjects push state, concatenate /Matrix, and interpret their
// own content stream with their own /Resources shadowing the
// caller's; image XObjects emit an Image content object carrying the
// CTM-transformed unit square they occupy.
func (ip *Interpreter) doXObject(xname playa.Name, resources playa.Dict, cur state, out *[]Object, depth int, mcs *MCS) {
	if depth >= maxFormDepth {
		return
	}
	xobjects, ok := ip.doc.GetDict(resources["XObject"])
	if !ok {
		return
	}
	stm, ok := ip.doc.GetStream(xobjects[xname])
	if !ok {
		return
	}

	subtype, _ := ip.doc.GetName(stm.Dict["Subtype"])
	switch subtype {
	case "Form":
		m := Identity
		if arr, ok := ip.doc.GetArray(stm.Dict["Matrix"]); ok && len(arr) == 6 {
			m = matrixFromOperands(arr)
		}
		formResources, ok := ip.doc.GetDict(stm.Dict["Resources"])
		if !ok {
			formResources = resources
		}
		data, derr := ip.doc.DecodeStream(stm)
		if derr != nil {
			return
		}
		objs, _ := ip.run(data, formResources, m.Mul(cur.CTM), depth+1)
		*out = append(*out, objs...)
	case "Image":
		corners := unitSquare(cur.CTM)
		*out = append(*out, &Image{
			Name: xname, Dict: stm.Dict, CTM: cur.CTM,
			BBox: bound(corners[:]), MCS: mcs, GState: cur.gstate(),
		})
	}
}

func paintModeFor(op string) PaintMode {
	switch op {
	case "f", "F":
		return PaintMode{Fill: true}
	case "f*":
		return PaintMode{Fill: true, EvenOdd: true}
	case "S", "s":
		return PaintMode{Stroke: true}
	case "B", "b":
		return PaintMode{Fill: true, Stroke: true}
	case "B*", "b*":
		return PaintMode{Fill: true, Stroke: true, EvenOdd: true}
	default: // "n"
		return PaintMode{}
	}
}

// colorFromOperands builds a Color from a "sc"/"SC"/"scn"/"SCN"
// operand list: plain numeric components for a device or CIE-based
// color space, or numeric components plus a trailing pattern name for
// /Pattern (spec.md §3).
func colorFromOperands(space playa.Name, operands []playa.Object) Color {
	c := Color{Space: space}
	nums := operands
	if n := len(operands); n > 0 {
		if pat, ok := operands[n-1].(playa.Name); ok {
			c.Pattern = pat
			c.Space = "Pattern"
			nums = operands[:n-1]
		}
	}
	c.Components = make([]float64, len(nums))
	for i, o := range nums {
		c.Components[i] = toFloat(o)
	}
	return c
}

func matrixFromOperands(ops []playa.Object) Matrix {
	var m Matrix
	for i := 0; i < 6 && i < len(ops); i++ {
		m[i] = toFloat(ops[i])
	}
	return m
}

func toFloat(obj playa.Object) float64 {
	switch v := obj.(type) {
	case playa.Integer:
		return float64(v)
	case playa.Real:
		return float64(v)
	}
	return 0
}

// transformSegments returns segs with every point mapped through m,
// turning the user-space RawSegments a path was built from into the
// device-space Segments spec.md §6 requires.
func transformSegments(segs []PathSegment, m Matrix) []PathSegment {
	out := make([]PathSegment, len(segs))
	for i, seg := range segs {
		out[i] = seg.transform(m)
	}
	return out
}

// rawPoints flattens every coordinate carried by segs (ignoring "h",
// which carries none).
func rawPoints(segs []PathSegment) [][2]float64 {
	var pts [][2]float64
	for _, seg := range segs {
		pts = append(pts, seg.Points[:seg.N]...)
	}
	return pts
}

// transformRect maps r's four corners through m and returns the
// bound of the result, matching how a path's user-space extent is
// turned into a device-space bbox by a single CTM snapshot rather
// than by transforming and re-bounding every point individually
// (spec.md §6).
func transformRect(r playa.Rectangle, m Matrix) playa.Rectangle {
	corners := [4][2]float64{
		{r.LLx, r.LLy}, {r.URx, r.LLy}, {r.URx, r.URy}, {r.LLx, r.URy},
	}
	pts := make([][2]float64, 4)
	for i, c := range corners {
		x, y := m.Apply(c[0], c[1])
		pts[i] = [2]float64{x, y}
	}
	return bound(pts)
}

// unitSquare returns the four corners of the unit square transformed
// by m, the device-space footprint of an image XObject invoked with
// CTM m (spec.md §4.8's "Do" handling for images).
func unitSquare(m Matrix) [4][2]float64 {
	var out [4][2]float64
	corners := [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, c := range corners {
		out[i][0], out[i][1] = m.Apply(c[0], c[1])
	}
	return out
}
