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

// Matrix is a PDF transformation matrix [a b c d e f], stored in the
// same order as the "cm" operator's operands:
//
//	/ a b 0 \
//	| c d 0 |
//	\ e f 1 /
//
// A vector (x, y, 1) is transformed by M into (x*a+y*c+e, x*b+y*d+f).
type Matrix [6]float64

// Identity is the identity transformation.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Apply transforms the point (x, y) by M.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return x*m[0] + y*m[2] + m[4], x*m[1] + y*m[3] + m[5]
}

// Mul composes M with B: the result is equivalent to first applying M
// and then B, matching the "cm" operator's left-multiplication
// semantics (spec.md §4.8).
func (m Matrix) Mul(b Matrix) Matrix {
	return Matrix{
		m[0]*b[0] + m[1]*b[2],
		m[0]*b[1] + m[1]*b[3],
		m[2]*b[0] + m[3]*b[2],
		m[2]*b[1] + m[3]*b[3],
		m[4]*b[0] + m[5]*b[2] + b[4],
		m[4]*b[1] + m[5]*b[3] + b[5],
	}
}

// Translate returns a translation matrix.
func Translate(dx, dy float64) Matrix {
	return Matrix{1, 0, 0, 1, dx, dy}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}
