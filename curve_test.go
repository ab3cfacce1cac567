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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestInterpolateEndpoints(t *testing.T) {
	p := vec.Vec2{X: 0, Y: 0}
	q := vec.Vec2{X: 10, Y: 20}

	if got := interpolate(0, p, q); got != p {
		t.Errorf("interpolate(0) = %+v, want p = %+v", got, p)
	}
	if got := interpolate(1, p, q); got != q {
		t.Errorf("interpolate(1) = %+v, want q = %+v", got, q)
	}
	mid := interpolate(0.5, p, q)
	if mid.X != 5 || mid.Y != 10 {
		t.Errorf("interpolate(0.5) = %+v, want (5,10)", mid)
	}
}

func TestDorthInftySigns(t *testing.T) {
	r := dorthInfty(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 1})
	if r.X != -1 || r.Y != 1 {
		t.Errorf("dorthInfty((0,0),(1,1)) = %+v, want (-1,1)", r)
	}
}

func TestSmoothAssignsCornerForRightAngles(t *testing.T) {
	// A perfect right-angle turn (as at a square corner) should be
	// classified as a sharp corner under the default alphaMax.
	c := newCurve(4)
	c.Vertex[0] = vec.Vec2{X: 0, Y: 0}
	c.Vertex[1] = vec.Vec2{X: 10, Y: 0}
	c.Vertex[2] = vec.Vec2{X: 10, Y: 10}
	c.Vertex[3] = vec.Vec2{X: 0, Y: 10}

	c.smooth(1.0)

	for i, tag := range c.Tag {
		if tag != tagCorner {
			t.Errorf("segment %d tag = %v, want tagCorner for a right-angle square", i, tag)
		}
	}
}

func TestSmoothAlphaZeroToOneForCurveSegments(t *testing.T) {
	c := newCurve(4)
	c.Vertex[0] = vec.Vec2{X: 0, Y: 0}
	c.Vertex[1] = vec.Vec2{X: 10, Y: 0}
	c.Vertex[2] = vec.Vec2{X: 10, Y: 10}
	c.Vertex[3] = vec.Vec2{X: 0, Y: 10}

	c.smooth(1.0)

	for i, tag := range c.Tag {
		if tag == tagCurve {
			if c.Alpha[i] < 0.55 || c.Alpha[i] > 1 {
				t.Errorf("curve segment %d alpha = %v out of [0.55,1]", i, c.Alpha[i])
			}
		}
	}
}

func TestSmoothNoNaN(t *testing.T) {
	p := squareCurve(t)
	p.Curve.smooth(1.0)
	for i, c := range p.Curve.C {
		for _, pt := range c {
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
				t.Errorf("control point %d produced NaN: %+v", i, pt)
			}
		}
	}
}
