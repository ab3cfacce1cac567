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

// sum holds the running totals needed to evaluate, in O(1), the best
// least-squares line through any contiguous run of contour points:
// the first moments x, y, the second moments x2, y2, and the cross
// moment xy.
type sum struct {
	X, Y, XY, X2, Y2 float64
}

// calcSums fills in p.sums and p.x0, p.y0 from p.Pt. sums[i] holds the
// accumulated moments of Pt[0..i), shifted so that Pt[0] sits at the
// origin; this keeps the second moments small regardless of how far
// the contour lies from the image origin. sums has len(Pt)+1 entries
// so that the moments of any run Pt[a:b] are sums[b] - sums[a].
func (p *Path) calcSums() {
	n := len(p.Pt)
	p.x0 = p.Pt[0].X
	p.y0 = p.Pt[0].Y

	p.sums = make([]sum, n+1)
	for i := 0; i < n; i++ {
		x := float64(p.Pt[i].X - p.x0)
		y := float64(p.Pt[i].Y - p.y0)
		p.sums[i+1] = sum{
			X:  p.sums[i].X + x,
			Y:  p.sums[i].Y + y,
			XY: p.sums[i].XY + x*y,
			X2: p.sums[i].X2 + x*x,
			Y2: p.sums[i].Y2 + y*y,
		}
	}
}
