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

import "seehuhn.de/go/geom/rect"

// Path is one closed contour extracted from a binary mask, together
// with every intermediate structure the tracing pipeline builds on top
// of it: prefix sums, the longest-straight-segment table, the fitted
// polygon, and finally the smoothed Curve. Every buffer here is owned
// exclusively by this Path; nothing is shared across Paths.
type Path struct {
	Pt   []point // lattice points along the contour, in walk order
	Sign byte    // '+' for an outer contour, '-' for a hole
	Area int     // signed pixel area, used for speckle suppression

	MinX, MinY, MaxX, MaxY int

	x0, y0 int   // Pt[0], cached so prefix sums can be shifted relative to it
	sums   []sum // sums[0..n], prefix sums of (x,y,xy,x^2,y^2) shifted by (x0,y0)
	lon    []int // lon[0..n-1], longest straight run starting at i

	m  int   // number of fitted polygon vertices
	po []int // po[0..m-1], indices into Pt for those vertices

	Curve *Curve
}

// BBox returns the lattice-point bounding box of the contour, in the
// bitmap's pixel coordinate system.
func (p *Path) BBox() rect.Rect {
	return rect.Rect{
		LLx: float64(p.MinX), LLy: float64(p.MinY),
		URx: float64(p.MaxX), URy: float64(p.MaxY),
	}
}

// decomposePaths walks mask (a binary 0/1 bitmap) and extracts every
// contour whose |area| exceeds turdSize, in the order they are first
// encountered by a row-major scan. mask is consumed destructively: the
// interior of each contour found is XOR-flipped to expose nested
// contours, exactly as required by the decomposition algorithm, so
// callers must pass a throwaway copy. A contour's sign is read from an
// untouched copy of mask taken before the first flip.
func decomposePaths(mask *Bitmap, turdSize int, policy TurnPolicy) []*Path {
	var paths []*Path
	orig := mask.Copy(nil)

	findNext := func(start int) int {
		i := start
		for i < mask.Size() && mask.Data[i] != 1 {
			i++
		}
		if i >= mask.Size() {
			return -1
		}
		return i
	}

	current := 0
	for {
		next := findNext(current)
		if next < 0 {
			break
		}
		x, y := mask.IndexToPoint(next)
		p := findPath(mask, orig, x, y, policy)
		xorPath(mask, p)
		if p.Area > turdSize {
			paths = append(paths, p)
		}
		current = next + 1
	}
	return paths
}

// findPath traces the contour starting at the lattice point (x,y),
// which must be a foreground pixel, by walking between lattice points
// along pixel edges. At each step it inspects the two pixels
// diagonally adjacent to the current edge ("l" = left-ahead, "r" =
// right-ahead) to decide whether to turn. orig is the mask as it was
// before any XOR flips; the seed pixel's value there decides the sign.
func findPath(mask, orig *Bitmap, xStart, yStart int, policy TurnPolicy) *Path {
	p := &Path{}
	x, y := xStart, yStart
	dirx, diry := 0, 1

	if orig.ValueAt(x, y) == 1 {
		p.Sign = '+'
	} else {
		p.Sign = '-'
	}

	p.MinX, p.MinY = x, y
	p.MaxX, p.MaxY = x, y

	for {
		p.Pt = append(p.Pt, point{x, y})
		if x > p.MaxX {
			p.MaxX = x
		}
		if x < p.MinX {
			p.MinX = x
		}
		if y > p.MaxY {
			p.MaxY = y
		}
		if y < p.MinY {
			p.MinY = y
		}

		x += dirx
		y += diry
		p.Area -= x * diry

		if x == xStart && y == yStart {
			break
		}

		l := mask.valueAtSafe(x+(dirx+diry-1)/2, y+(diry-dirx-1)/2)
		r := mask.valueAtSafe(x+(dirx-diry-1)/2, y+(diry+dirx-1)/2)

		switch {
		case r == 1 && l == 0:
			if turnGoesClockwise(policy, p.Sign, mask, x, y) {
				dirx, diry = -diry, dirx
			} else {
				dirx, diry = diry, -dirx
			}
		case r == 1:
			dirx, diry = -diry, dirx
		case l == 0:
			dirx, diry = diry, -dirx
		}
	}

	return p
}

// turnGoesClockwise resolves the ambiguous-turn case (r==1 && l==0)
// according to the configured turn policy, returning true when the
// walker should turn clockwise (dirx,diry := -diry,dirx).
func turnGoesClockwise(policy TurnPolicy, sign byte, mask *Bitmap, x, y int) bool {
	switch policy {
	case TurnRight:
		return true
	case TurnLeft:
		return false
	case TurnBlack:
		return sign == '+'
	case TurnWhite:
		return sign == '-'
	case TurnMajority:
		return majority(mask, x, y) == 1
	default: // TurnMinority
		return majority(mask, x, y) == 0
	}
}

// majority looks at increasingly large square rings around (x,y) in
// mask (radius 2, then 3, then 4) and sums +1 for a foreground pixel,
// -1 for background, along each of the four sides, returning 1 or 0
// for the first ring whose sum is non-zero, and 0 if none ever
// decides. The offsets on the four sides are intentionally asymmetric
// (one side reads a-1, the opposite side reads a) — this reproduces
// the reference implementation exactly rather than a "corrected"
// symmetric scan, since output must be bit-compatible with it.
func majority(mask *Bitmap, x, y int) int {
	for i := 2; i <= 4; i++ {
		ct := 0
		for a := -i + 1; a < i; a++ {
			if mask.valueAtSafe(x+a, y+i-1) == 1 {
				ct++
			} else {
				ct--
			}
			if mask.valueAtSafe(x+i-1, y+a-1) == 1 {
				ct++
			} else {
				ct--
			}
			if mask.valueAtSafe(x+a-1, y-i) == 1 {
				ct++
			} else {
				ct--
			}
			if mask.valueAtSafe(x-i, y+a) == 1 {
				ct++
			} else {
				ct--
			}
		}
		if ct > 0 {
			return 1
		}
		if ct < 0 {
			return 0
		}
	}
	return 0
}

// xorPath flips every mask bit strictly inside path between its left
// edge and the path's MaxX, on each scanline where the contour's y
// coordinate changes. This exposes nested holes/islands to later scans
// of the same mask.
func xorPath(mask *Bitmap, path *Path) {
	y1 := path.Pt[0].Y
	for i := 1; i < len(path.Pt); i++ {
		x := path.Pt[i].X
		y := path.Pt[i].Y
		if y != y1 {
			minY := y1
			if y < minY {
				minY = y
			}
			maxX := path.MaxX
			start := x
			if path.MaxX < start {
				start = path.MaxX
			}
			for col := start; col < maxX; col++ {
				idx := mask.PointToIndex(col, minY)
				mask.Data[idx] ^= 1
			}
			y1 = y
		}
	}
}
