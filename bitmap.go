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

// point is an integer lattice point, used for pixel coordinates during
// bitmap access and contour decomposition. Vertex adjustment and
// everything downstream switches to real-valued vec.Vec2 coordinates.
type point struct {
	X, Y int
}

// Bitmap is a width*height grid of 8-bit luminance values. A Bitmap is
// built once from decoded image data and is immutable thereafter; the
// binary mask used during contour decomposition is a separate copy
// produced by Copy, never a mutation of the original.
type Bitmap struct {
	Width, Height int
	Data          []byte

	histogram *Histogram
}

// NewBitmap allocates a Width*Height bitmap with all-zero luminance.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		panic("potrace: negative bitmap dimensions")
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height),
	}
}

// Size returns the total number of pixels (Width * Height).
func (b *Bitmap) Size() int {
	return b.Width * b.Height
}

// ValueAt returns the pixel value at (x, y), or -1 if the coordinates
// fall outside the bitmap. This is the user-facing accessor; the
// contour walker uses valueAtSafe instead, which treats out-of-bounds
// as background (0) rather than as an error sentinel.
func (b *Bitmap) ValueAt(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return -1
	}
	return int(b.Data[y*b.Width+x])
}

// valueAtSafe returns the pixel value at (x, y), treating any
// out-of-grid coordinate as background (0). The contour walker relies
// on this: it reads pixels diagonally adjacent to a half-pixel-offset
// edge, and the grid boundary must behave as if surrounded by
// background so that contours along the image edge close correctly.
func (b *Bitmap) valueAtSafe(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return int(b.Data[y*b.Width+x])
}

// IndexToPoint converts a row-major linear index into (x, y). It
// returns (-1, -1) if index is out of range.
func (b *Bitmap) IndexToPoint(index int) (x, y int) {
	if index < 0 || index >= b.Size() {
		return -1, -1
	}
	y = index / b.Width
	x = index - y*b.Width
	return x, y
}

// PointToIndex converts (x, y) into a row-major linear index, or
// returns -1 if the coordinates fall outside the bitmap.
func (b *Bitmap) PointToIndex(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return -1
	}
	return y*b.Width + x
}

// Copy returns a new Bitmap of the same dimensions, with every byte
// passed through mapper(value, index). A nil mapper produces a plain
// duplicate. This is how the binary mask is derived from luminance
// data under a threshold and polarity.
func (b *Bitmap) Copy(mapper func(value byte, index int) byte) *Bitmap {
	out := NewBitmap(b.Width, b.Height)
	if mapper == nil {
		copy(out.Data, b.Data)
		return out
	}
	for i, v := range b.Data {
		out.Data[i] = mapper(v, i)
	}
	return out
}

// Histogram returns the luminance histogram of the bitmap, building and
// caching it on first use.
func (b *Bitmap) Histogram() *Histogram {
	if b.histogram == nil {
		b.histogram = NewHistogramFromBitmap(b)
	}
	return b.histogram
}

// Luminance converts a composited (r, g, b) triple to an 8-bit
// luminance value using Rec. 709 coefficients, rounded to the nearest
// integer.
func Luminance(r, g, b float64) byte {
	y := 0.2126*r + 0.7153*g + 0.0721*b
	return clampByte(math.Round(y))
}

// CompositeOverWhite pre-multiplies a channel value against a white
// background according to its alpha, so that fully or partially
// transparent pixels yield a stable greyscale: c' = 255 + (c-255)*(a/255).
func CompositeOverWhite(c, a float64) float64 {
	opacity := a / 255
	return 255 + (c-255)*opacity
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
