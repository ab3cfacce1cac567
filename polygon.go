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

import "math"

// calcLon fills p.lon: for every contour point i, lon[i] is the index
// of the furthest point reachable from i by a single taut "rubber
// band" straight line that does not cross the contour itself. This is
// the longest run that bestPolygon is later allowed to replace with a
// single polygon edge starting at i.
func (p *Path) calcLon() {
	pt := p.Pt
	n := len(pt)

	pivk := make([]int, n)
	nc := make([]int, n)
	p.lon = make([]int, n)

	k := 0
	for i := n - 1; i >= 0; i-- {
		if pt[i].X != pt[k].X && pt[i].Y != pt[k].Y {
			k = i + 1
		}
		nc[i] = k
	}

	var constraint0x, constraint0y, constraint1x, constraint1y int

	for i := n - 1; i >= 0; i-- {
		var ct [4]int
		dir := (3 + 3*sign(pt[mod(i+1, n)].X-pt[i].X) + sign(pt[mod(i+1, n)].Y-pt[i].Y)) / 2
		ct[dir]++

		constraint0x, constraint0y = 0, 0
		constraint1x, constraint1y = 0, 0

		k = nc[i]
		k1 := i
		foundk := false

		for {
			dir = (3 + 3*sign(pt[k].X-pt[k1].X) + sign(pt[k].Y-pt[k1].Y)) / 2
			ct[dir]++

			if ct[0] != 0 && ct[1] != 0 && ct[2] != 0 && ct[3] != 0 {
				pivk[i] = k1
				foundk = true
				break
			}

			curx := pt[k].X - pt[i].X
			cury := pt[k].Y - pt[i].Y

			if xprod(constraint0x, constraint0y, curx, cury) < 0 ||
				xprod(constraint1x, constraint1y, curx, cury) > 0 {
				break
			}

			if !(abs(curx) <= 1 && abs(cury) <= 1) {
				var offx, offy int
				if cury >= 0 && (cury > 0 || curx < 0) {
					offx = curx + 1
				} else {
					offx = curx - 1
				}
				if curx <= 0 && (curx < 0 || cury < 0) {
					offy = cury + 1
				} else {
					offy = cury - 1
				}
				if xprod(constraint0x, constraint0y, offx, offy) >= 0 {
					constraint0x, constraint0y = offx, offy
				}

				if cury <= 0 && (cury < 0 || curx < 0) {
					offx = curx + 1
				} else {
					offx = curx - 1
				}
				if curx >= 0 && (curx > 0 || cury < 0) {
					offy = cury + 1
				} else {
					offy = cury - 1
				}
				if xprod(constraint1x, constraint1y, offx, offy) <= 0 {
					constraint1x, constraint1y = offx, offy
				}
			}

			k1 = k
			k = nc[k1]
			if !cyclic(k, i, k1) {
				break
			}
		}

		if !foundk {
			dkx := sign(pt[k].X - pt[k1].X)
			dky := sign(pt[k].Y - pt[k1].Y)
			curx := pt[k1].X - pt[i].X
			cury := pt[k1].Y - pt[i].Y

			a := xprod(constraint0x, constraint0y, curx, cury)
			b := xprod(constraint0x, constraint0y, dkx, dky)
			c := xprod(constraint1x, constraint1y, curx, cury)
			d := xprod(constraint1x, constraint1y, dkx, dky)

			j := 10000000
			if b < 0 {
				j = int(math.Floor(float64(a) / float64(-b)))
			}
			if d > 0 {
				jj := int(math.Floor(float64(-c) / float64(d)))
				if jj < j {
					j = jj
				}
			}
			pivk[i] = mod(k1+j, n)
		}
	}

	j := pivk[n-1]
	p.lon[n-1] = j
	for i := n - 2; i >= 0; i-- {
		if cyclic(i+1, pivk[i], j) {
			j = pivk[i]
		}
		p.lon[i] = j
	}
	for i := n - 1; cyclic(mod(i+1, n), j, p.lon[i]); i-- {
		p.lon[i] = j
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// bestPolygon fills p.m and p.po: the minimum-penalty polygon whose
// vertices are a subsequence of p.Pt and whose edges are each covered
// by some p.lon run, found by dynamic programming over admissible
// vertex positions.
func (p *Path) bestPolygon() {
	n := len(p.Pt)

	clip0 := make([]int, n)
	clip1 := make([]int, n+1)
	seg0 := make([]int, n+1)
	seg1 := make([]int, n+1)
	pen := make([]float64, n+1)
	prev := make([]int, n+1)

	for i := 0; i < n; i++ {
		c := mod(p.lon[mod(i-1, n)]-1, n)
		if c == i {
			c = mod(i+1, n)
		}
		if c < i {
			clip0[i] = n
		} else {
			clip0[i] = c
		}
	}

	j := 1
	for i := 0; i < n; i++ {
		for j <= clip0[i] {
			clip1[j] = i
			j++
		}
	}

	i := 0
	m := 0
	for j := 0; i < n; j++ {
		seg0[j] = i
		i = clip0[i]
		m = j + 1
	}
	seg0[m] = n

	i = n
	for j := m; j > 0; j-- {
		seg1[j] = i
		i = clip1[i]
	}
	seg1[0] = 0

	pen[0] = 0
	for j := 1; j <= m; j++ {
		for i := seg1[j]; i <= seg0[j]; i++ {
			best := -1.0
			bestK := 0
			for k := seg0[j-1]; k >= clip1[i]; k-- {
				thisPen := p.penalty3(k, i) + pen[k]
				if best < 0 || thisPen < best {
					bestK = k
					best = thisPen
				}
			}
			prev[i] = bestK
			pen[i] = best
		}
	}

	p.m = m
	p.po = make([]int, m)
	ii := n
	for j := m - 1; j >= 0; j-- {
		ii = prev[ii]
		p.po[j] = ii
	}
}

// penalty3 returns the least-squares fitting penalty of replacing the
// contour run p.Pt[i..j] (inclusive; a j >= n denotes the run wrapping
// past the end of the contour to index j-n) by a single straight edge:
// the root-mean-square perpendicular distance of the run's points from
// the chord p.Pt[i]->p.Pt[j], multiplied by the chord's length.
func (p *Path) penalty3(i, j int) float64 {
	n := len(p.Pt)
	wrapped := false
	if j >= n {
		j -= n
		wrapped = true
	}

	var x, y, xy, x2, y2, k float64
	if !wrapped {
		x = p.sums[j+1].X - p.sums[i].X
		y = p.sums[j+1].Y - p.sums[i].Y
		x2 = p.sums[j+1].X2 - p.sums[i].X2
		xy = p.sums[j+1].XY - p.sums[i].XY
		y2 = p.sums[j+1].Y2 - p.sums[i].Y2
		k = float64(j + 1 - i)
	} else {
		x = p.sums[j+1].X - p.sums[i].X + p.sums[n].X
		y = p.sums[j+1].Y - p.sums[i].Y + p.sums[n].Y
		x2 = p.sums[j+1].X2 - p.sums[i].X2 + p.sums[n].X2
		xy = p.sums[j+1].XY - p.sums[i].XY + p.sums[n].XY
		y2 = p.sums[j+1].Y2 - p.sums[i].Y2 + p.sums[n].Y2
		k = float64(j + 1 - i + n)
	}

	px := (float64(p.Pt[i].X+p.Pt[j].X))/2 - float64(p.x0)
	py := (float64(p.Pt[i].Y+p.Pt[j].Y))/2 - float64(p.y0)
	ey := float64(p.Pt[j].X - p.Pt[i].X)
	ex := -float64(p.Pt[j].Y - p.Pt[i].Y)

	a := (x2-2*x*px)/k + px*px
	b := (xy-x*py-y*px)/k + px*py
	c := (y2-2*y*py)/k + py*py

	s := ex*ex*a + 2*ex*ey*b + ey*ey*c
	if s < 0 {
		s = 0
	}
	return math.Sqrt(s)
}
