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
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

// Potrace traces a single source image into a sequence of vector
// Paths, caching the result until either the source image or a
// structural parameter changes. The zero value is not usable; create
// one with NewPotrace.
type Potrace struct {
	params Params

	bitmap *Bitmap
	paths  []*Path

	processed bool
}

// NewPotrace returns a Potrace engine with the given parameters.
func NewPotrace(params Params) (*Potrace, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Potrace{params: params}, nil
}

// SetParameters updates the engine's parameters, invalidating the
// cached trace only when a structural field (anything but Color or
// Background) actually changed.
func (p *Potrace) SetParameters(params Params) error {
	if err := params.validate(); err != nil {
		return err
	}
	if !p.params.structurallyEqual(params) {
		p.processed = false
	}
	p.params = params
	return nil
}

// LoadImage decodes img into the engine's working bitmap, discarding
// any previously traced paths.
func (p *Potrace) LoadImage(img image.Image) {
	p.bitmap = BitmapFromImage(img, ModeLuminance)
	p.processed = false
}

// LoadImageFromBitmap installs bm directly as the engine's working
// bitmap, bypassing luminance conversion. This is how Posterizer
// shares a single decoded bitmap across every threshold layer it
// traces, instead of re-decoding the source image per layer.
func (p *Potrace) LoadImageFromBitmap(bm *Bitmap) {
	p.bitmap = bm
	p.processed = false
}

// process runs the full tracing pipeline over the loaded bitmap if it
// has not already run since the last load or structural parameter
// change. A panic anywhere in the pipeline (an assertion the algorithm
// believes can never fail) is recovered and reported as ErrInternal
// instead of crashing the caller.
func (p *Potrace) process() error {
	if p.processed {
		return nil
	}
	if p.bitmap == nil {
		return ErrNotLoaded
	}

	return recoverInternal(func() {
		threshold := p.params.Threshold
		if threshold == ThresholdAuto {
			threshold = p.bitmap.Histogram().AutoThreshold(0, 255)
		}

		mask := thresholdMask(p.bitmap, threshold, p.params.BlackOnWhite)
		rawPaths := decomposePaths(mask, p.params.TurdSize, p.params.TurnPolicy)

		for _, path := range rawPaths {
			path.calcSums()
			path.calcLon()
			path.bestPolygon()
			path.adjustVertices()
			path.Curve.smooth(p.params.AlphaMax)
			if p.params.OptCurve {
				path.Curve = optimizeCurve(path.Curve, p.params.OptTolerance)
			}
		}

		p.paths = rawPaths
		p.processed = true
	})
}

// recoverInternal runs fn, converting any panic into an error wrapping
// ErrInternal rather than letting it propagate to the caller.
func recoverInternal(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	fn()
	return nil
}

// GetPathTag returns the traced Paths, tracing the loaded image first
// if necessary.
func (p *Potrace) GetPathTag() ([]*Path, error) {
	if err := p.process(); err != nil {
		return nil, err
	}
	return p.paths, nil
}

// GetSymbol returns a reusable <symbol> element containing every
// traced path as a single evenodd-filled <path>, suitable for
// embedding once and referencing multiple times via <use>.
func (p *Potrace) GetSymbol(id string) (string, error) {
	if err := p.process(); err != nil {
		return "", err
	}
	color := p.resolvedColor()
	d := p.combinedPathString(matrix.Identity)
	return symbolString(id, p.bitmap.Width, p.bitmap.Height, []svgLayer{
		{Color: color, D: d},
	}), nil
}

// GetSVG returns a complete, standalone SVG document containing the
// traced paths filled with the resolved Color, over a Background; when
// nothing was traced the document contains no <path> element. The
// output viewport is params.Width/Height (falling back to the source
// bitmap's size when zero), with path coordinates mapped through the
// resulting scale transform.
func (p *Potrace) GetSVG() (string, error) {
	if err := p.process(); err != nil {
		return "", err
	}
	width, height, m := p.outputTransform()
	color := p.resolvedColor()
	d := p.combinedPathString(m)
	var layers []svgLayer
	if d != "" {
		layers = append(layers, svgLayer{Color: color, D: d})
	}
	return renderSVG(width, height, p.params.Background, layers), nil
}

// outputTransform resolves the SVG viewport from params.Width/Height,
// falling back to the source bitmap's dimensions when either is zero,
// and returns the scale transform needed to map bitmap coordinates
// onto that viewport.
func (p *Potrace) outputTransform() (width, height int, m matrix.Matrix) {
	width, height = p.bitmap.Width, p.bitmap.Height
	scaleX, scaleY := 1.0, 1.0
	if p.params.Width != 0 {
		width = p.params.Width
		if p.bitmap.Width != 0 {
			scaleX = float64(p.params.Width) / float64(p.bitmap.Width)
		}
	}
	if p.params.Height != 0 {
		height = p.params.Height
		if p.bitmap.Height != 0 {
			scaleY = float64(p.params.Height) / float64(p.bitmap.Height)
		}
	}
	return width, height, matrix.Scale(scaleX, scaleY)
}

// combinedPathString concatenates the 'd' attribute data for every
// traced path into a single evenodd path, since nested holes are
// already expressed via winding direction by the contour decomposer.
// m is applied to every emitted coordinate.
func (p *Potrace) combinedPathString(m matrix.Matrix) string {
	var d string
	for i, pth := range p.paths {
		if i > 0 {
			d += " "
		}
		d += pth.Curve.svgPathString(m)
	}
	return d
}

// resolvedColor returns the engine's effective fill color: Color
// unless it is ColorAuto, in which case the polarity implied by
// BlackOnWhite decides between black and white.
func (p *Potrace) resolvedColor() string {
	if p.params.Color != ColorAuto {
		return p.params.Color
	}
	if p.params.BlackOnWhite {
		return "black"
	}
	return "white"
}

// PathData returns pth's outline as a *path.Data, for callers that
// want to rasterize or further transform it rather than serialize it
// to SVG text.
func PathData(pth *Path) *path.Data {
	return pth.Curve.toPathData()
}
