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

import "testing"

func TestOptimizeCurveTooShortIsNoop(t *testing.T) {
	c := newCurve(1)
	out := optimizeCurve(c, 0.2)
	if out != c {
		t.Errorf("optimizeCurve on a 1-segment curve should return it unchanged")
	}
}

func TestOptimizeCurveLeavesCornersAlone(t *testing.T) {
	p := squareCurve(t)
	p.Curve.smooth(1.0)
	for _, tag := range p.Curve.Tag {
		if tag != tagCorner {
			t.Skip("fixture did not produce an all-corner curve, skipping")
		}
	}

	out := optimizeCurve(p.Curve, 0.2)
	if out.N() != p.Curve.N() {
		t.Errorf("optimizeCurve merged pure-corner segments: N() = %d, want %d", out.N(), p.Curve.N())
	}
}

func TestOptiPenaltyRejectsEqualIndices(t *testing.T) {
	c := newCurve(4)
	_, ok := optiPenalty(c, 2, 2, 0.2, make([]int, 4), make([]float64, 5))
	if ok {
		t.Error("optiPenalty(i,i) should be infeasible")
	}
}

func TestOptiPenaltyRejectsNonConvexRun(t *testing.T) {
	c := newCurve(4)
	convc := make([]int, 4) // all zero: no segment is tagged tagCurve
	areac := make([]float64, 5)
	_, ok := optiPenalty(c, 0, 2, 0.2, convc, areac)
	if ok {
		t.Error("optiPenalty should reject a run with zero convexity")
	}
}
