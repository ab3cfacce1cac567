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

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// vecFrom converts a point2d to a vec.Vec2.
func vecFrom(p point2d) vec.Vec2 {
	return vec.Vec2{X: p.x, Y: p.y}
}

// vec2dTo converts a point2d in the shifted (x0,y0) frame back to
// absolute coordinates as a vec.Vec2.
func vec2dTo(p point2d, x0, y0 float64) vec.Vec2 {
	return vec.Vec2{X: p.x + x0, Y: p.y + y0}
}

// adjustVertices replaces each polygon vertex po[i] with the point
// that minimizes the combined squared-distance error to the two
// straight lines fitted through the contour runs on either side of
// it, subject to staying within the unit square centered on the
// original lattice vertex. It allocates and populates p.Curve.
func (p *Path) adjustVertices() {
	m := p.m
	curve := newCurve(m)
	p.Curve = curve

	ctr := make([]point2d, m)
	dir := make([]point2d, m)
	q := make([]quad, m)

	for i := 0; i < m; i++ {
		j := p.po[mod(i+1, m)]
		j = mod(j-p.po[i], len(p.Pt)) + p.po[i]
		ctr[i], dir[i] = p.pointSlope(p.po[i], j)
	}

	for i := 0; i < m; i++ {
		d := dir[i].x*dir[i].x + dir[i].y*dir[i].y
		if d == 0 {
			continue
		}
		v := [3]float64{dir[i].y, -dir[i].x, 0}
		v[2] = -v[1]*ctr[i].y - v[0]*ctr[i].x
		q[i].addOuter(v, d)
	}

	x0, y0 := float64(p.x0), float64(p.y0)

	for i := 0; i < m; i++ {
		j := mod(i-1, m)

		s := point2d{
			x: float64(p.Pt[p.po[i]].X) - x0,
			y: float64(p.Pt[p.po[i]].Y) - y0,
		}

		Q := q[j].add(q[i])

		w, ok := solveVertex(Q, s)
		if ok {
			dx := math.Abs(w.x - s.x)
			dy := math.Abs(w.y - s.y)
			if dx <= 0.5 && dy <= 0.5 {
				curve.Vertex[i] = vec2dTo(w, x0, y0)
				continue
			}
		}

		curve.Vertex[i] = vec2dTo(bestGridPoint(Q, s), x0, y0)
	}
}

// point2d is a plain 2D float pair, used internally while working in
// the coordinate frame shifted by (x0, y0); the Curve's public Vertex
// field uses absolute coordinates via vec.Vec2 instead.
type point2d struct {
	x, y float64
}

// pointSlope returns the centroid and principal direction of the
// contour run p.Pt[i..j] (inclusive, wrapping past len(p.Pt) if
// needed), found from the run's second-moment matrix: the direction
// is the eigenvector of the largest eigenvalue, i.e. the axis the
// run's points deviate from least. dir is zero when the run has no
// dominant direction (equal eigenvalues).
func (p *Path) pointSlope(i, j int) (ctr, dir point2d) {
	n := len(p.Pt)
	r := 0
	for j >= n {
		j -= n
		r++
	}
	for i >= n {
		i -= n
		r--
	}
	for j < 0 {
		j += n
		r--
	}
	for i < 0 {
		i += n
		r++
	}

	x := p.sums[j+1].X - p.sums[i].X + float64(r)*p.sums[n].X
	y := p.sums[j+1].Y - p.sums[i].Y + float64(r)*p.sums[n].Y
	x2 := p.sums[j+1].X2 - p.sums[i].X2 + float64(r)*p.sums[n].X2
	xy := p.sums[j+1].XY - p.sums[i].XY + float64(r)*p.sums[n].XY
	y2 := p.sums[j+1].Y2 - p.sums[i].Y2 + float64(r)*p.sums[n].Y2
	k := float64(j + 1 - i + r*n)

	ctr = point2d{x: x / k, y: y / k}

	a := (x2 - x*x/k) / k
	b := (xy - x*y/k) / k
	c := (y2 - y*y/k) / k

	lambda2 := (a + c + math.Sqrt((a-c)*(a-c)+4*b*b)) / 2

	a -= lambda2
	c -= lambda2

	var l float64
	if math.Abs(a) >= math.Abs(c) {
		l = math.Sqrt(a*a + b*b)
		if l != 0 {
			dir = point2d{x: -b / l, y: a / l}
		}
	} else {
		l = math.Sqrt(c*c + b*b)
		if l != 0 {
			dir = point2d{x: -c / l, y: b / l}
		}
	}
	if l == 0 {
		dir = point2d{}
	}
	return ctr, dir
}

// solveVertex solves the 2x2 linear system given by the first two
// rows of Q (the stationary point of the quadratic form restricted to
// the affine plane z=1), perturbing Q towards equalizing its diagonal
// contributions around s whenever it is singular (an all-zero Q becomes
// solvable after two perturbations). It reports ok=false if a
// perturbation direction comes out zero or 100 perturbations leave Q
// singular.
func solveVertex(Q quad, s point2d) (point2d, bool) {
	for iter := 0; iter < 100; iter++ {
		det := Q.a[0][0]*Q.a[1][1] - Q.a[0][1]*Q.a[1][0]
		if det != 0 {
			w := point2d{
				x: (-Q.a[0][2]*Q.a[1][1] + Q.a[1][2]*Q.a[0][1]) / det,
				y: (Q.a[0][2]*Q.a[1][0] - Q.a[1][2]*Q.a[0][0]) / det,
			}
			return w, true
		}

		var v [2]float64
		switch {
		case Q.a[0][0] > Q.a[1][1]:
			v[0], v[1] = -Q.a[0][1], Q.a[0][0]
		case Q.a[1][1] != 0:
			v[0], v[1] = Q.a[1][1], -Q.a[1][0]
		default:
			v[0], v[1] = 1, 0
		}
		d := v[0]*v[0] + v[1]*v[1]
		if d == 0 {
			return point2d{}, false
		}
		v2 := -v[1]*s.y - v[0]*s.x
		full := [3]float64{v[0], v[1], v2}
		Q.addOuter(full, d)
	}
	return point2d{}, false
}

// bestGridPoint searches the border of the unit square centered on s
// for the point minimizing Q's quadratic form: it compares s itself,
// the minimizer along each of the square's four edges (when that point
// lies on the edge), and the square's four corners. This
// fallback avoids the numerical instability of solveVertex when the
// two fitted lines meet at a near-180-degree angle.
func bestGridPoint(Q quad, s point2d) point2d {
	min := Q.eval(vecFrom(s))
	best := s

	if Q.a[0][0] != 0 {
		for z := 0; z < 2; z++ {
			wy := s.y - 0.5 + float64(z)
			wx := -(Q.a[0][1]*wy + Q.a[0][2]) / Q.a[0][0]
			w := point2d{x: wx, y: wy}
			if math.Abs(wx-s.x) <= 0.5 {
				if cand := Q.eval(vecFrom(w)); cand < min {
					min, best = cand, w
				}
			}
		}
	}
	if Q.a[1][1] != 0 {
		for z := 0; z < 2; z++ {
			wx := s.x - 0.5 + float64(z)
			wy := -(Q.a[1][0]*wx + Q.a[1][2]) / Q.a[1][1]
			w := point2d{x: wx, y: wy}
			if math.Abs(wy-s.y) <= 0.5 {
				if cand := Q.eval(vecFrom(w)); cand < min {
					min, best = cand, w
				}
			}
		}
	}
	for z := 0; z < 4; z++ {
		w := point2d{
			x: s.x - 0.5 + float64(z&1),
			y: s.y - 0.5 + float64((z>>1)&1),
		}
		if cand := Q.eval(vecFrom(w)); cand < min {
			min, best = cand, w
		}
	}
	return best
}
