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

// solidSquareMask returns a w*h binary mask with a single filled
// square of side sq at (x0, y0).
func solidSquareMask(w, h, x0, y0, sq int) *Bitmap {
	m := NewBitmap(w, h)
	for y := y0; y < y0+sq; y++ {
		for x := x0; x < x0+sq; x++ {
			m.Data[m.PointToIndex(x, y)] = 1
		}
	}
	return m
}

func TestDecomposePathsBlank(t *testing.T) {
	m := NewBitmap(10, 10)
	paths := decomposePaths(m, 0, TurnMinority)
	if len(paths) != 0 {
		t.Errorf("blank mask produced %d paths, want 0", len(paths))
	}
}

func TestDecomposePathsSolidSquare(t *testing.T) {
	m := solidSquareMask(20, 20, 5, 5, 8)
	paths := decomposePaths(m, 2, TurnMinority)
	if len(paths) != 1 {
		t.Fatalf("solid square produced %d paths, want 1", len(paths))
	}
	p := paths[0]
	if p.Sign != '+' {
		t.Errorf("outer contour sign = %c, want +", p.Sign)
	}
	wantArea := 8 * 8
	if p.Area != wantArea {
		t.Errorf("area = %d, want %d", p.Area, wantArea)
	}
}

func TestPathBBoxMatchesLatticeExtent(t *testing.T) {
	m := solidSquareMask(20, 20, 5, 5, 8)
	paths := decomposePaths(m, 2, TurnMinority)
	p := paths[0]
	box := p.BBox()
	if box.LLx != float64(p.MinX) || box.LLy != float64(p.MinY) ||
		box.URx != float64(p.MaxX) || box.URy != float64(p.MaxY) {
		t.Errorf("BBox() = %+v, want corners (%d,%d)-(%d,%d)", box, p.MinX, p.MinY, p.MaxX, p.MaxY)
	}
}

func TestDecomposePathsTwoDisjointSquares(t *testing.T) {
	m := NewBitmap(30, 30)
	for y := 2; y < 7; y++ {
		for x := 2; x < 7; x++ {
			m.Data[m.PointToIndex(x, y)] = 1
		}
	}
	for y := 20; y < 25; y++ {
		for x := 20; x < 25; x++ {
			m.Data[m.PointToIndex(x, y)] = 1
		}
	}
	paths := decomposePaths(m, 2, TurnMinority)
	if len(paths) != 2 {
		t.Fatalf("two disjoint squares produced %d paths, want 2", len(paths))
	}
}

func TestDecomposePathsRingWithHole(t *testing.T) {
	m := NewBitmap(20, 20)
	for y := 4; y < 16; y++ {
		for x := 4; x < 16; x++ {
			m.Data[m.PointToIndex(x, y)] = 1
		}
	}
	for y := 7; y < 13; y++ {
		for x := 7; x < 13; x++ {
			m.Data[m.PointToIndex(x, y)] = 0
		}
	}
	paths := decomposePaths(m, 2, TurnMinority)
	if len(paths) != 2 {
		t.Fatalf("ring with hole produced %d paths, want 2 (outer + hole)", len(paths))
	}

	var signs [2]byte
	for i, p := range paths {
		signs[i] = p.Sign
	}
	if signs[0] == signs[1] {
		t.Errorf("expected one '+' and one '-' contour, got %c and %c", signs[0], signs[1])
	}
}

func TestDecomposePathsTurdSizeSuppressesSpeckle(t *testing.T) {
	m := NewBitmap(10, 10)
	m.Data[m.PointToIndex(5, 5)] = 1

	withoutSuppression := decomposePaths(m.Copy(nil), 0, TurnMinority)
	if len(withoutSuppression) != 1 {
		t.Fatalf("isolated pixel with turdSize 0 produced %d paths, want 1", len(withoutSuppression))
	}

	suppressed := decomposePaths(m.Copy(nil), 4, TurnMinority)
	if len(suppressed) != 0 {
		t.Errorf("isolated pixel with turdSize 4 produced %d paths, want 0", len(suppressed))
	}
}

func TestDecomposePathsDeterministic(t *testing.T) {
	m1 := solidSquareMask(16, 16, 3, 3, 6)
	m2 := solidSquareMask(16, 16, 3, 3, 6)

	p1 := decomposePaths(m1, 2, TurnMinority)
	p2 := decomposePaths(m2, 2, TurnMinority)

	if len(p1) != len(p2) {
		t.Fatalf("non-deterministic path count: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if len(p1[i].Pt) != len(p2[i].Pt) {
			t.Errorf("path %d differs in length between runs", i)
		}
	}
}

func TestDecomposePathsScaleInvariantArea(t *testing.T) {
	small := decomposePaths(solidSquareMask(20, 20, 2, 2, 4), 0, TurnMinority)
	big := decomposePaths(solidSquareMask(40, 40, 4, 4, 8), 0, TurnMinority)

	if len(small) != 1 || len(big) != 1 {
		t.Fatalf("expected exactly one contour each, got %d and %d", len(small), len(big))
	}
	if big[0].Area != 4*small[0].Area {
		t.Errorf("doubling the scale should quadruple the area: got %d, want %d", big[0].Area, 4*small[0].Area)
	}
}
