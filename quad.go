// seehuhn.de/go/potrace - trace raster images into scalable vector paths
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package potrace

import "seehuhn.de/go/geom/vec"

// quad is a symmetric 3x3 quadratic form, used by adjustVertices to
// accumulate the error of fitting a vertex to the two line segments
// meeting there. Evaluating it at a homogeneous point (x, y, 1) gives
// the sum of squared perpendicular distances to those lines.
type quad struct {
	a [3][3]float64
}

func (q quad) at(row, col int) float64 {
	return q.a[row][col]
}

// add returns the entrywise sum of q and r.
func (q quad) add(r quad) quad {
	var out quad
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.a[i][j] = q.a[i][j] + r.a[i][j]
		}
	}
	return out
}

// addOuter adds the outer product v*v^T / d to q in place.
func (q *quad) addOuter(v [3]float64, d float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			q.a[i][j] += v[i] * v[j] / d
		}
	}
}

// eval returns w^T q w for the homogeneous point w = (x, y, 1).
func (q quad) eval(w vec.Vec2) float64 {
	v := [3]float64{w.X, w.Y, 1}
	var sum float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += v[i] * q.a[i][j] * v[j]
		}
	}
	return sum
}
