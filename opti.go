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

// cos179 is cos(179 degrees), used to reject merging segments whose
// direction nearly reverses: two segments pointing almost opposite
// ways cannot share a single smooth tangent.
var cos179 = math.Cos(179.0 * math.Pi / 180.0)

// optiResult holds the two interior Bezier control points and
// bookkeeping for a candidate run-merge considered by optimizeCurve.
type optiResult struct {
	pen   float64
	c     [2]vec.Vec2
	alpha float64
	t, s  float64
}

// optimizeCurve replaces runs of consecutive segments in c that can be
// fit, within tolerance, by a single smooth Bezier curve, producing a
// new (generally shorter) Curve. It leaves c's corner segments alone;
// only maximal runs of tagCurve-tagged segments are eligible
// for merging.
func optimizeCurve(c *Curve, tolerance float64) *Curve {
	m := c.n
	if m < 2 {
		return c
	}

	convc := make([]int, m)
	for i := 0; i < m; i++ {
		if c.Tag[i] == tagCurve {
			convc[i] = signOfFloat(dpara(c.Vertex[mod(i-1, m)], c.Vertex[i], c.Vertex[mod(i+1, m)]))
		}
	}

	areac := make([]float64, m+1)
	area := 0.0
	p0 := c.Vertex[0]
	for i := 0; i < m; i++ {
		i1 := mod(i+1, m)
		if c.Tag[i1] == tagCurve {
			alpha := c.Alpha[i1]
			area += 0.3 * alpha * (4 - alpha) * dpara(c.C[i1][0], c.C[i1][1], c.Vertex[i1]) / 2
			area += dpara(p0, c.C[i1][0], c.C[i1][1]) / 2
		}
		areac[i+1] = area
	}

	pt := make([]int, m+1)
	pen := make([]float64, m+1)
	length := make([]int, m+1)
	opt := make([]optiResult, m+1)

	pt[0] = -1
	pen[0] = 0
	length[0] = 0

	for j := 1; j <= m; j++ {
		pt[j] = j - 1
		pen[j] = pen[j-1]
		length[j] = length[j-1] + 1

		for i := j - 2; i >= 0; i-- {
			o, ok := optiPenalty(c, i, mod(j, m), tolerance, convc, areac)
			if !ok {
				break
			}
			if length[i]+1 < length[j] || (length[i]+1 == length[j] && pen[i]+o.pen < pen[j]) {
				pt[j] = i
				pen[j] = pen[i] + o.pen
				length[j] = length[i] + 1
				opt[j] = o
			}
		}
	}

	om := length[m]
	out := newCurve(om)

	j := m
	for i := om - 1; i >= 0; i-- {
		if pt[j] == j-1 {
			src := mod(j, m)
			out.Tag[i] = c.Tag[src]
			out.C[i] = c.C[src]
			out.Vertex[i] = c.Vertex[src]
			out.Alpha[i] = c.Alpha[src]
			out.Alpha0[i] = c.Alpha0[src]
			out.Beta[i] = c.Beta[src]
		} else {
			src := mod(j, m)
			out.Tag[i] = tagCurve
			out.C[i][0] = opt[j].c[0]
			out.C[i][1] = opt[j].c[1]
			out.C[i][2] = c.C[src][2]
			out.Vertex[i] = interpolate(opt[j].s, c.C[src][2], c.Vertex[src])
			out.Alpha[i] = opt[j].alpha
			out.Alpha0[i] = opt[j].alpha
			out.Beta[i] = opt[j].s
		}
		j = pt[j]
	}

	return out
}

// optiPenalty evaluates the cost of replacing the segments from i+1
// through j (the curve between the segment endpoints c.C[i][2] and
// c.C[j][2]) with one
// Bezier curve, returning ok=false if the merge is infeasible: the
// run isn't uniformly convex, doesn't stay within tolerance of every
// replaced segment, or produces a degenerate curve.
func optiPenalty(c *Curve, i, j int, tolerance float64, convc []int, areac []float64) (optiResult, bool) {
	m := c.n
	var res optiResult

	if i == j {
		return res, false
	}

	k := i
	i1 := mod(i+1, m)
	k1 := mod(k+1, m)
	conv := convc[k1]
	if conv == 0 {
		return res, false
	}
	d := ddist(c.Vertex[i], c.Vertex[i1])
	for k = k1; k != j; k = k1 {
		k1 = mod(k+1, m)
		k2 := mod(k+2, m)
		if convc[k1] != conv {
			return res, false
		}
		if signOfFloat(cprod(c.Vertex[i], c.Vertex[i1], c.Vertex[k1], c.Vertex[k2])) != conv {
			return res, false
		}
		if iprod1(c.Vertex[i], c.Vertex[i1], c.Vertex[k1], c.Vertex[k2]) < d*ddist(c.Vertex[k1], c.Vertex[k2])*cos179 {
			return res, false
		}
	}

	p0 := c.C[mod(i, m)][2]
	p1 := c.Vertex[mod(i+1, m)]
	p2 := c.Vertex[mod(j, m)]
	p3 := c.C[mod(j, m)][2]

	area := areac[j] - areac[i]
	area -= dpara(c.Vertex[0], c.C[i][2], c.C[j][2]) / 2
	if i >= j {
		area += areac[m]
	}

	A1 := dpara(p0, p1, p2)
	A2 := dpara(p0, p1, p3)
	A3 := dpara(p0, p2, p3)
	A4 := A1 + A3 - A2

	if A2 == A1 {
		return res, false
	}

	t := A3 / (A3 - A4)
	s := A2 / (A2 - A1)
	A := A2 * t / 2

	if A == 0 {
		return res, false
	}

	R := area / A
	arg := 4 - R/0.3
	if arg < 0 {
		return res, false
	}
	alpha := 2 - math.Sqrt(arg)

	res.c[0] = interpolate(t*alpha, p0, p1)
	res.c[1] = interpolate(s*alpha, p3, p2)
	res.alpha = alpha
	res.t = t
	res.s = s

	c0, c1 := res.c[0], res.c[1]

	for k := mod(i+1, m); k != j; k = k1 {
		k1 = mod(k+1, m)
		tt := tangent(p0, c0, c1, p3, c.Vertex[k], c.Vertex[k1])
		if tt < -0.5 {
			return res, false
		}
		pt := bezier(tt, p0, c0, c1, p3)
		dd := ddist(c.Vertex[k], c.Vertex[k1])
		if dd == 0 {
			return res, false
		}
		d1 := dpara(c.Vertex[k], c.Vertex[k1], pt) / dd
		if math.Abs(d1) > tolerance {
			return res, false
		}
		if iprod(c.Vertex[k], c.Vertex[k1], pt) < 0 || iprod(c.Vertex[k1], c.Vertex[k], pt) < 0 {
			return res, false
		}
		res.pen += d1 * d1
	}

	for k := i; k != j; k = k1 {
		k1 = mod(k+1, m)
		tt := tangent(p0, c0, c1, p3, c.C[k][2], c.C[k1][2])
		if tt < -0.5 {
			return res, false
		}
		pt := bezier(tt, p0, c0, c1, p3)
		dd := ddist(c.C[k][2], c.C[k1][2])
		if dd == 0 {
			return res, false
		}
		d1 := dpara(c.C[k][2], c.C[k1][2], pt) / dd
		d2 := dpara(c.C[k][2], c.C[k1][2], c.Vertex[k1]) / dd
		d2 *= 0.75 * c.Alpha[k1]
		if d2 < 0 {
			d1 = -d1
			d2 = -d2
		}
		if d1 < d2-tolerance {
			return res, false
		}
		if d1 < d2 {
			res.pen += (d1 - d2) * (d1 - d2)
		}
	}

	return res, true
}
