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
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
)

func TestFormatCoord(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{1.5, "1.500"},
		{1.100, "1.100"},
		{-0.0004, "-0"},
		{3.14159, "3.142"},
		{-2.5, "-2.500"},
	}
	for _, c := range cases {
		if got := formatCoord(c.in); got != c.want {
			t.Errorf("formatCoord(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatOpacityNeverStrips(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.000"},
		{1, "1.000"},
		{0.5, "0.500"},
		{0.123456, "0.123"},
	}
	for _, c := range cases {
		if got := formatOpacity(c.in); got != c.want {
			t.Errorf("formatOpacity(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSvgPathStringStartsWithMoveTo(t *testing.T) {
	p := squareCurve(t)
	p.Curve.smooth(1.0)

	d := p.Curve.svgPathString(matrix.Identity)
	if !strings.HasPrefix(d, "M ") {
		t.Errorf("svgPathString should start with a moveto, got %q", d[:min(10, len(d))])
	}
}

func TestSvgPathStringAppliesScale(t *testing.T) {
	p := squareCurve(t)
	p.Curve.smooth(1.0)

	plain := p.Curve.svgPathString(matrix.Identity)
	scaled := p.Curve.svgPathString(matrix.Scale(2, 2))
	if plain == scaled {
		t.Errorf("scaling by (2,2) should change the path data, both were %q", plain)
	}
}

func TestSvgLayerOmitsOpacityWhenZero(t *testing.T) {
	l := svgLayer{Color: "#000", D: "M 0 0 Z"}
	el := l.element()
	if strings.Contains(el, "fill-opacity") {
		t.Errorf("zero opacity should omit fill-opacity, got %q", el)
	}
	if !strings.Contains(el, `stroke="none"`) {
		t.Errorf("expected stroke=\"none\" in %q", el)
	}
}

func TestSvgLayerIncludesOpacityWhenSet(t *testing.T) {
	l := svgLayer{Color: "#000", D: "M 0 0 Z", Opacity: 0.5}
	el := l.element()
	if !strings.Contains(el, `fill-opacity="0.500"`) {
		t.Errorf("expected fill-opacity=0.500 in %q", el)
	}
	if !strings.Contains(el, `stroke="none"`) {
		t.Errorf("expected stroke=\"none\" in %q", el)
	}
}

func TestRenderSVGWrapsLayers(t *testing.T) {
	layers := []svgLayer{{Color: "#000", D: "M 0 0 Z"}}
	out := renderSVG(100, 50, ColorTransparent, layers)
	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>") {
		t.Errorf("renderSVG did not produce a well-formed document: %q", out)
	}
	if strings.Contains(out, "<rect") {
		t.Errorf("transparent background should not emit a backing rect")
	}
}

func TestSymbolStringWrapsLayers(t *testing.T) {
	layers := []svgLayer{{Color: "#000", D: "M 0 0 Z"}}
	out := symbolString("icon", 10, 10, layers)
	if !strings.Contains(out, `id="icon"`) {
		t.Errorf("symbolString missing id attribute: %q", out)
	}
}
