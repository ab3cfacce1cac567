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

// segmentTag classifies one segment of a Curve as either a straight
// corner or a smooth curve.
type segmentTag int

const (
	tagCorner segmentTag = iota
	tagCurve
)

// Curve is the smoothed, optionally optimized outline fitted to a
// Path's polygon vertices. It has n segments; segment i runs from the
// previous segment's endpoint C[i-1][2] to its own endpoint C[i][2]
// (indices mod n), which after smoothing is the midpoint between
// Vertex[i] and Vertex[i+1]. A segment is either a corner
// (Tag[i] == tagCorner: two straight lines, to the corner point
// C[i][1] == Vertex[i] and then on to C[i][2]) or a cubic Bezier curve
// (Tag[i] == tagCurve, using control points C[i][0] and C[i][1] with
// endpoint C[i][2]).
type Curve struct {
	n int

	Vertex []vec.Vec2 // the m raw polygon vertices from adjustVertices

	Tag    []segmentTag
	C      [][3]vec.Vec2 // three control/anchor points per segment
	Alpha  []float64     // smoothness parameter actually used, per segment
	Alpha0 []float64     // smoothness parameter before clamping to [0.55,1]
	Beta   []float64     // curve-to-curve tension parameter, per segment
}

func newCurve(n int) *Curve {
	return &Curve{
		n:      n,
		Vertex: make([]vec.Vec2, n),
		Tag:    make([]segmentTag, n),
		C:      make([][3]vec.Vec2, n),
		Alpha:  make([]float64, n),
		Alpha0: make([]float64, n),
		Beta:   make([]float64, n),
	}
}

// N returns the number of segments in the curve.
func (c *Curve) N() int {
	return c.n
}

// smooth assigns tangent directions and a tag (corner or curve) to
// every segment of c, turning the raw polygon vertices into a
// sequence of Bezier segments. alphaMax is the largest alpha value
// (see spec for the exact formula) a segment may have before it is
// forced to be a sharp corner instead of a smooth curve.
func (c *Curve) smooth(alphaMax float64) {
	m := c.n
	for i := 0; i < m; i++ {
		j := mod(i+1, m)
		k := mod(i+2, m)
		p4 := interpolate(1.0/2, c.Vertex[j], c.Vertex[k])

		denom := ddenom(c.Vertex[i], c.Vertex[k])
		var alpha float64
		if denom != 0 {
			dd := dpara(c.Vertex[i], c.Vertex[j], c.Vertex[k]) / denom
			if dd < 0 {
				dd = -dd
			}
			if dd > 1 {
				alpha = 1 - 1/dd
			} else {
				alpha = 0
			}
			alpha /= 0.75
		} else {
			alpha = 4.0 / 3.0
		}
		c.Alpha0[j] = alpha

		if alpha >= alphaMax {
			c.Tag[j] = tagCorner
			c.C[j][1] = c.Vertex[j]
			c.C[j][2] = p4
		} else {
			if alpha < 0.55 {
				alpha = 0.55
			} else if alpha > 1 {
				alpha = 1
			}
			p2 := interpolate(0.5+0.5*alpha, c.Vertex[i], c.Vertex[j])
			p3 := interpolate(0.5+0.5*alpha, c.Vertex[k], c.Vertex[j])
			c.Tag[j] = tagCurve
			c.C[j][0] = p2
			c.C[j][1] = p3
			c.C[j][2] = p4
		}
		c.Alpha[j] = alpha
		c.Beta[j] = 0.5
	}
}

// interpolate returns the point a fraction lambda of the way from p
// to q.
func interpolate(lambda float64, p, q vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: p.X + lambda*(q.X-p.X),
		Y: p.Y + lambda*(q.Y-p.Y),
	}
}

// ddenom returns a normalization constant used in the alpha
// computation: the cross product of (p2-p0) with a direction that is
// orthogonal to the chord "at infinity" (dorthInfty), which vanishes
// only in degenerate configurations.
func ddenom(p0, p2 vec.Vec2) float64 {
	r := dorthInfty(p0, p2)
	return r.Y*(p2.X-p0.X) - r.X*(p2.Y-p0.Y)
}

// dorthInfty returns (-sign(p2.Y-p0.Y), sign(p2.X-p0.X)), a cheap
// direction orthogonal to the chord p0->p2 that avoids normalizing a
// vector which may have zero length.
func dorthInfty(p0, p2 vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: -signf(p2.Y - p0.Y),
		Y: signf(p2.X - p0.X),
	}
}
