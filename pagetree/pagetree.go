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

// Package pagetree implements spec.md §4.7: flattening the PDF page
// tree into an ordered list of leaves, resolving the attributes a
// leaf inherits from its ancestors, and looking pages up by label or
// by 1-based logical page number.
package pagetree

import (
	"errors"

	"playa.dev/playa"
)

var errInvalidPageTree = errors.New("invalid page tree")

// inheritableKeys are the page attributes a leaf inherits from the
// nearest ancestor /Pages node that defines them (spec.md §4.7).
var inheritableKeys = []playa.Name{"Resources", "MediaBox", "CropBox", "Rotate"}

// Page is one flattened leaf of the page tree, with inherited
// attributes already resolved onto it.
type Page struct {
	Dict      playa.Dict
	Index     int // 0-based position in document order
	Resources playa.Dict
	MediaBox  *playa.Rectangle
	CropBox   *playa.Rectangle
	Rotate    int
}

// Pages walks the document's page tree depth-first, left to right,
// and returns its leaves in page order with Resources/MediaBox/
// CropBox/Rotate resolved against ancestor inheritance.
func Pages(doc *playa.Document) ([]*Page, error) {
	catalog, ok := doc.Catalog()
	if !ok {
		return nil, &playa.Error{Kind: playa.KindResolve, Err: errInvalidPageTree}
	}
	root, ok := doc.GetDict(catalog["Pages"])
	if !ok {
		return nil, &playa.Error{Kind: playa.KindResolve, Err: errInvalidPageTree}
	}

	w := &walker{doc: doc, seen: map[playa.Reference]bool{}}
	if err := w.visit(root, catalog["Pages"], inherited{}); err != nil {
		return nil, err
	}
	return w.pages, nil
}

// inherited carries the inheritable attribute values accumulated so
// far on the path from the root to the node currently being visited.
type inherited struct {
	Resources playa.Object
	MediaBox  playa.Object
	CropBox   playa.Object
	Rotate    playa.Object
}

func (in inherited) withNode(node playa.Dict) inherited {
	if v, ok := node["Resources"]; ok {
		in.Resources = v
	}
	if v, ok := node["MediaBox"]; ok {
		in.MediaBox = v
	}
	if v, ok := node["CropBox"]; ok {
		in.CropBox = v
	}
	if v, ok := node["Rotate"]; ok {
		in.Rotate = v
	}
	return in
}

type walker struct {
	doc   *playa.Document
	seen  map[playa.Reference]bool
	pages []*Page
}

func (w *walker) visit(node playa.Dict, ref playa.Object, in inherited) error {
	if r, ok := ref.(playa.Reference); ok {
		if w.seen[r] {
			return &playa.Error{Kind: playa.KindResolve, Err: errInvalidPageTree}
		}
		w.seen[r] = true
	}

	typ, _ := w.doc.GetName(node["Type"])
	in = in.withNode(node)

	if typ == "Pages" || (typ != "Page" && node["Kids"] != nil) {
		kids, ok := w.doc.GetArray(node["Kids"])
		if !ok {
			return &playa.Error{Kind: playa.KindResolve, Err: errInvalidPageTree}
		}
		for _, kidRef := range kids {
			kid, ok := w.doc.GetDict(kidRef)
			if !ok {
				continue
			}
			if err := w.visit(kid, kidRef, in); err != nil {
				return err
			}
		}
		return nil
	}

	// A leaf: either explicitly /Type /Page, or a node with no /Kids.
	p := &Page{Dict: node, Index: len(w.pages)}
	if res, ok := w.doc.GetDict(valueOr(node["Resources"], in.Resources)); ok {
		p.Resources = res
	}
	p.MediaBox, _ = w.doc.GetRectangle(valueOr(node["MediaBox"], in.MediaBox))
	p.CropBox, _ = w.doc.GetRectangle(valueOr(node["CropBox"], in.CropBox))
	if rot, ok := w.doc.GetInt(valueOr(node["Rotate"], in.Rotate)); ok {
		p.Rotate = int(rot)
	}
	w.pages = append(w.pages, p)
	return nil
}

// valueOr returns own if the node defines the key directly, else the
// inherited fallback.
func valueOr(own, fallback playa.Object) playa.Object {
	if own != nil {
		return own
	}
	return fallback
}

