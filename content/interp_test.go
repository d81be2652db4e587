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
	"testing"

	"playa.dev/playa"
)

func newTestDocument() *playa.Document {
	return &playa.Document{}
}

func TestRunPathFillAndStroke(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("1 0 0 1 10 20 cm 0 0 100 50 re f\nS\n")

	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v, want nil error", err)
	}
	if len(objs) != 1 {
		t.Fatalf("len(objs) = %d, want 1 (single path, no moveto before S)", len(objs))
	}
	p, ok := objs[0].(*Path)
	if !ok {
		t.Fatalf("objs[0] = %T, want *Path", objs[0])
	}
	if !p.Paint.Fill {
		t.Error("Paint.Fill = false, want true")
	}
	if len(p.Segments) == 0 {
		t.Fatal("Segments is empty")
	}
	// "re" under cm translate(10,20) starts at (10,20).
	first := p.Segments[0]
	if first.Op != 'm' {
		t.Fatalf("Segments[0].Op = %q, want 'm'", first.Op)
	}
	if first.Points[0][0] != 10 || first.Points[0][1] != 20 {
		t.Errorf("Segments[0].Points[0] = %v, want (10,20)", first.Points[0])
	}
}

func TestRunClipFlagCarriesToPaintOp(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("0 0 10 10 re W n\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	if len(objs) != 1 {
		t.Fatalf("len(objs) = %d, want 1", len(objs))
	}
	p := objs[0].(*Path)
	if !p.Paint.Clip {
		t.Error("Paint.Clip = false after W n, want true")
	}
	if p.Paint.Fill || p.Paint.Stroke {
		t.Error("n must not fill or stroke")
	}
}

func TestRunMarkedContentMismatchAbsorbed(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("/Span BMC EMC EMC\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	if len(objs) != 2 {
		t.Fatalf("len(objs) = %d, want 2 (one BMC, one matching EMC; extra EMC absorbed)", len(objs))
	}
	if _, ok := objs[0].(*MarkedContentStart); !ok {
		t.Errorf("objs[0] = %T, want *MarkedContentStart", objs[0])
	}
	if _, ok := objs[1].(*MarkedContentEnd); !ok {
		t.Errorf("objs[1] = %T, want *MarkedContentEnd", objs[1])
	}
}

func TestRunTextShowingWithoutFontYieldsNoRun(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	// No Tf, so no font is active; Tj must not panic and must not emit
	// a TextRun.
	stream := []byte("BT (hello) Tj ET\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	for _, o := range objs {
		if _, ok := o.(*TextRun); ok {
			t.Errorf("got a TextRun with no active font: %+v", o)
		}
	}
}

func TestRunInlineImage(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("BI /W 2 /H 2 /BPC 8 /CS /G ID \x01\x02\x03\x04EI\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	if len(objs) != 1 {
		t.Fatalf("len(objs) = %d, want 1", len(objs))
	}
	img, ok := objs[0].(*Image)
	if !ok {
		t.Fatalf("objs[0] = %T, want *Image", objs[0])
	}
	if !img.Inline {
		t.Error("Inline = false, want true")
	}
	w, _ := img.Dict["W"].(playa.Integer)
	if w != 2 {
		t.Errorf("Dict[W] = %v, want 2", w)
	}
	if len(img.RawData) != 4 {
		t.Errorf("len(RawData) = %d, want 4", len(img.RawData))
	}
}

func TestRunClosePathBeforePaint(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	// "s" must close the subpath (emit an implicit "h") before
	// stroking, same as "S" preceded by an explicit "h".
	stream := []byte("0 0 m 10 0 l 10 10 l s\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	if len(objs) != 1 {
		t.Fatalf("len(objs) = %d, want 1", len(objs))
	}
	p := objs[0].(*Path)
	if !p.Paint.Stroke {
		t.Error("Paint.Stroke = false, want true")
	}
	segs := p.Segments
	if len(segs) != 4 {
		t.Fatalf("len(Segments) = %d, want 4 (m l l h)", len(segs))
	}
	if segs[3].Op != 'h' {
		t.Errorf("Segments[3].Op = %q, want 'h' (implicit closepath for \"s\")", segs[3].Op)
	}
}

func TestRunBClosePathBeforePaint(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("0 0 m 10 0 l 10 10 l b*\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	p := objs[0].(*Path)
	if !p.Paint.Fill || !p.Paint.Stroke || !p.Paint.EvenOdd {
		t.Errorf("Paint = %+v, want fill+stroke+evenodd", p.Paint)
	}
	if segs := p.Segments; len(segs) == 0 || segs[len(segs)-1].Op != 'h' {
		t.Errorf("b* did not close the subpath: Segments = %+v", segs)
	}
}

func TestRunOpenStrokeHasNoImplicitClose(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	// "S" (no trailing "*") must NOT gain an implicit closepath.
	stream := []byte("0 0 m 10 0 l 10 10 l S\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	p := objs[0].(*Path)
	if segs := p.Segments; len(segs) != 3 {
		t.Fatalf("len(Segments) = %d, want 3 (m l l, no implicit h for \"S\")", len(segs))
	}
}

func TestRunPathCarriesRawAndDeviceSegments(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("2 0 0 2 5 5 cm 1 1 m 2 2 l f\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	p := objs[0].(*Path)
	if got := p.RawSegments[0].Points[0]; got != [2]float64{1, 1} {
		t.Errorf("RawSegments[0].Points[0] = %v, want user-space (1,1)", got)
	}
	// CTM is scale(2,2) then translate(5,5): (1,1) -> (7,7).
	if got := p.Segments[0].Points[0]; got != [2]float64{7, 7} {
		t.Errorf("Segments[0].Points[0] = %v, want device-space (7,7)", got)
	}
	if p.BBox.LLx == 0 && p.BBox.URx == 0 {
		t.Error("BBox is zero, want a non-degenerate device-space box")
	}
}

func TestRunColorOperatorsUpdateGState(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("1 0 0 RG 0 1 0 rg 0 0 10 10 re B\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	p := objs[0].(*Path)
	if p.GState.StrokeColor.Space != "DeviceRGB" || p.GState.StrokeColor.Components[0] != 1 {
		t.Errorf("StrokeColor = %+v, want red DeviceRGB", p.GState.StrokeColor)
	}
	if p.GState.FillColor.Space != "DeviceRGB" || p.GState.FillColor.Components[1] != 1 {
		t.Errorf("FillColor = %+v, want green DeviceRGB", p.GState.FillColor)
	}
}

func TestRunMarkedContentBackReference(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("/Span <</MCID 3>> BDC 0 0 10 10 re f EMC\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	var path *Path
	for _, o := range objs {
		if p, ok := o.(*Path); ok {
			path = p
		}
	}
	if path == nil {
		t.Fatal("no Path emitted")
	}
	if path.MCS == nil {
		t.Fatal("Path.MCS = nil, want the enclosing /Span frame")
	}
	if path.MCS.Tag != "Span" || !path.MCS.HasMCID || path.MCS.MCID != 3 {
		t.Errorf("Path.MCS = %+v, want Tag=Span MCID=3", path.MCS)
	}
}

func TestRunNestedMarkedContentInnerFrameWins(t *testing.T) {
	ip := NewInterpreter(newTestDocument())
	stream := []byte("/Span <</MCID 3>> BDC /Artifact BMC 0 0 10 10 re f EMC 0 0 5 5 re f EMC\n")
	objs, err := ip.Run(stream, playa.Dict{})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	var paths []*Path
	for _, o := range objs {
		if p, ok := o.(*Path); ok {
			paths = append(paths, p)
		}
	}
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2", len(paths))
	}
	if paths[0].MCS.Tag != "Artifact" || paths[0].MCS.HasMCID {
		t.Errorf("paths[0].MCS = %+v, want inner Artifact frame with no MCID", paths[0].MCS)
	}
	if paths[1].MCS.Tag != "Span" || !paths[1].MCS.HasMCID || paths[1].MCS.MCID != 3 {
		t.Errorf("paths[1].MCS = %+v, want outer Span frame with MCID=3", paths[1].MCS)
	}
}

func TestMatrixApplyAndMul(t *testing.T) {
	m := Translate(10, 20).Mul(Scale(2, 3))
	x, y := m.Apply(1, 1)
	// Translate(10,20) then Scale(2,3): (1,1) -> (11,21) -> (22,63).
	if x != 22 || y != 63 {
		t.Errorf("Apply(1,1) = (%v,%v), want (22,63)", x, y)
	}
}
