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
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// toPathData assembles a *path.Data tracing c, starting at the
// trailing anchor of the last segment so that the first emitted
// command is always a MoveTo to the curve's true starting point, and
// closing back to it.
func (c *Curve) toPathData() *path.Data {
	d := &path.Data{}
	start := c.C[c.n-1][2]
	d.MoveTo(start)
	for i := 0; i < c.n; i++ {
		switch c.Tag[i] {
		case tagCurve:
			d.CubeTo(c.C[i][0], c.C[i][1], c.C[i][2])
		case tagCorner:
			d.LineTo(c.C[i][1])
			d.LineTo(c.C[i][2])
		}
	}
	d.Close()
	return d
}

// applyMatrix maps v through the affine transform m, using the
// indexed-field convention
// dx = m[0]*x + m[2]*y + m[4], dy = m[1]*x + m[3]*y + m[5].
func applyMatrix(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// svgPathString renders c as the 'd' attribute value of an SVG <path>
// element, mapping every coordinate through m (matrix.Identity for no
// transform). Numbers are formatted to 3 decimal places with a
// trailing ".000" stripped, matching the compact style used throughout
// this package's output.
func (c *Curve) svgPathString(m matrix.Matrix) string {
	var b strings.Builder

	start := applyMatrix(m, c.C[c.n-1][2])
	fmt.Fprintf(&b, "M %s %s", formatCoord(start.X), formatCoord(start.Y))

	for i := 0; i < c.n; i++ {
		p0 := applyMatrix(m, c.C[i][0])
		p1 := applyMatrix(m, c.C[i][1])
		p2 := applyMatrix(m, c.C[i][2])
		switch c.Tag[i] {
		case tagCurve:
			fmt.Fprintf(&b, " C %s %s, %s %s, %s %s",
				formatCoord(p0.X), formatCoord(p0.Y),
				formatCoord(p1.X), formatCoord(p1.Y),
				formatCoord(p2.X), formatCoord(p2.Y))
		case tagCorner:
			fmt.Fprintf(&b, " L %s %s %s %s",
				formatCoord(p1.X), formatCoord(p1.Y),
				formatCoord(p2.X), formatCoord(p2.Y))
		}
	}

	return b.String()
}

// formatCoord formats a coordinate to 3 decimal places, stripping a
// trailing ".000" for whole numbers only; other fractional digits are
// kept as-is.
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	return strings.TrimSuffix(s, ".000")
}

// formatOpacity formats a fill-opacity value to 3 decimal places
// without stripping any trailing zeros.
func formatOpacity(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// renderSVG wraps one or more path/fill-rule pairs in a complete SVG
// document of the given pixel size. background is either
// ColorTransparent or a CSS color to paint behind everything.
func renderSVG(width, height int, background string, layers []svgLayer) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)

	if background != "" && background != ColorTransparent {
		fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, width, height, background)
	}

	for _, layer := range layers {
		b.WriteString(layer.element())
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// symbolString wraps layers in a reusable <symbol> element.
func symbolString(id string, width, height int, layers []svgLayer) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<symbol id="%s" viewBox="0 0 %d %d">`, id, width, height)
	for _, layer := range layers {
		b.WriteString(layer.element())
	}
	b.WriteString(`</symbol>`)
	return b.String()
}

// svgLayer is one filled <path> element of an SVG document. Opacity of
// 0 is treated as "unset" (fully opaque), since a deliberately
// invisible layer is simply omitted rather than emitted with
// fill-opacity="0".
type svgLayer struct {
	Color   string
	D       string
	Opacity float64
}

func (l svgLayer) element() string {
	if l.Opacity == 0 {
		return fmt.Sprintf(`<path d="%s" fill-rule="evenodd" stroke="none" fill="%s"/>`, l.D, l.Color)
	}
	return fmt.Sprintf(`<path d="%s" fill-rule="evenodd" stroke="none" fill="%s" fill-opacity="%s"/>`,
		l.D, l.Color, formatOpacity(l.Opacity))
}
