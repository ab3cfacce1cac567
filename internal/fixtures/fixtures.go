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

// Package fixtures provides small synthetic grayscale images for
// exercising the tracing pipeline, standing in for the photographs
// and scanned drawings a real caller would supply.
package fixtures

import (
	"image"
	"image/color"
)

// Blank returns a width*height, uniformly white grayscale image.
func Blank(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// SolidSquare returns a width*height white image with a single black
// square of side squareSize placed at (x0, y0).
func SolidSquare(width, height, x0, y0, squareSize int) *image.Gray {
	img := Blank(width, height)
	fillRect(img, x0, y0, squareSize, squareSize, 0)
	return img
}

// TwoDisjointSquares returns a width*height white image containing two
// separate black squares of the given side length, positioned in the
// top-left and bottom-right quadrants.
func TwoDisjointSquares(width, height, squareSize int) *image.Gray {
	img := Blank(width, height)
	fillRect(img, 2, 2, squareSize, squareSize, 0)
	fillRect(img, width-squareSize-2, height-squareSize-2, squareSize, squareSize, 0)
	return img
}

// RingWithHole returns a width*height white image containing a filled
// black square of side outer, with a smaller white square of side
// inner cut out of its center, producing one outer contour and one
// nested hole contour.
func RingWithHole(width, height, outer, inner int) *image.Gray {
	img := Blank(width, height)
	x0 := (width - outer) / 2
	y0 := (height - outer) / 2
	fillRect(img, x0, y0, outer, outer, 0)

	ix0 := x0 + (outer-inner)/2
	iy0 := y0 + (outer-inner)/2
	fillRect(img, ix0, iy0, inner, inner, 255)
	return img
}

// IsolatedPixel returns a width*height white image with a single black
// pixel at (x, y), useful for exercising speckle suppression
// (TurdSize).
func IsolatedPixel(width, height, x, y int) *image.Gray {
	img := Blank(width, height)
	img.SetGray(x, y, color.Gray{Y: 0})
	return img
}

// LinearGradient returns a width*height image whose luminance ramps
// from 255 (left) to 0 (right), useful for exercising the Posterizer
// and multilevel thresholding.
func LinearGradient(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := 255 - (255*x)/maxInt(width-1, 1)
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

func fillRect(img *image.Gray, x0, y0, w, h int, value uint8) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
				continue
			}
			img.SetGray(x, y, color.Gray{Y: value})
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
