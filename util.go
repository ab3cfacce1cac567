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

// mod computes a mod n, always returning a value in [0, n).
func mod(a, n int) int {
	if n == 0 {
		return a
	}
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// sign returns -1, 0 or 1 according to the sign of x.
func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// signf returns -1, 0 or 1 according to the sign of x.
func signf(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// signOfFloat returns -1, 0 or 1 according to the sign of x, as an int.
func signOfFloat(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// cyclic reports whether b lies in the cyclic interval from a to c,
// going forward (increasing indices, wrapping around at n). a <= b <
// c in the non-wrapping case; the wrapping case is b >= a || b < c.
func cyclic(a, b, c int) bool {
	if a <= c {
		return a <= b && b < c
	}
	return a <= b || b < c
}

// clampf restricts v to the closed interval [lo, hi].
func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampInt restricts v to the closed interval [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// xprod returns the z-component of the cross product of two integer
// lattice vectors.
func xprod(p1x, p1y, p2x, p2y int) int {
	return p1x*p2y - p1y*p2x
}

// dpara returns twice the signed area of the triangle (p0, p1, p2).
func dpara(p0, p1, p2 vec.Vec2) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p2.X - p0.X
	y2 := p2.Y - p0.Y
	return x1*y2 - x2*y1
}

// cprod returns the z-component of the cross product of (p1-p0) and
// (p3-p2).
func cprod(p0, p1, p2, p3 vec.Vec2) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p3.X - p2.X
	y2 := p3.Y - p2.Y
	return x1*y2 - x2*y1
}

// iprod returns the dot product of (p1-p0) and (p2-p0).
func iprod(p0, p1, p2 vec.Vec2) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p2.X - p0.X
	y2 := p2.Y - p0.Y
	return x1*x2 + y1*y2
}

// iprod1 returns the dot product of (p1-p0) and (p3-p2).
func iprod1(p0, p1, p2, p3 vec.Vec2) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p3.X - p2.X
	y2 := p3.Y - p2.Y
	return x1*x2 + y1*y2
}

// ddist returns the Euclidean distance between p and q.
func ddist(p, q vec.Vec2) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// bezier evaluates the cubic Bezier curve through p0,p1,p2,p3 at
// parameter t in [0,1].
func bezier(t float64, p0, p1, p2, p3 vec.Vec2) vec.Vec2 {
	s := 1 - t
	x := s*s*s*p0.X + 3*(s*s*t)*p1.X + 3*(t*t*s)*p2.X + t*t*t*p3.X
	y := s*s*s*p0.Y + 3*(s*s*t)*p1.Y + 3*(t*t*s)*p2.Y + t*t*t*p3.Y
	return vec.Vec2{X: x, Y: y}
}

// tangent finds, for the cubic Bezier segment (p0,p1,p2,p3), the
// parameter t in [0,1] at which the line through q0,q1 is tangent to
// the curve, by solving the quadratic obtained from the cross product
// condition. It returns -1 if the quadratic is degenerate (a == 0) or
// has no root in [0,1], checking (-b+s)/(2a) before (-b-s)/(2a).
func tangent(p0, p1, p2, p3, q0, q1 vec.Vec2) float64 {
	A := cprod(p0, p1, q0, q1)
	B := cprod(p1, p2, q0, q1)
	C := cprod(p2, p3, q0, q1)

	a := A - 2*B + C
	b := -2*A + 2*B
	c := A

	d := b*b - 4*a*c
	if a == 0 || d < 0 {
		return -1
	}

	s := math.Sqrt(d)
	r1 := (-b + s) / (2 * a)
	r2 := (-b - s) / (2 * a)

	if r1 >= 0 && r1 <= 1 {
		return r1
	}
	if r2 >= 0 && r2 <= 1 {
		return r2
	}
	return -1
}
