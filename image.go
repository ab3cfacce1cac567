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
	"image/color"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeImage decodes r using the format registered under any of the
// blank-imported decoders (PNG, JPEG, GIF, BMP, TIFF), returning an
// error wrapping ErrImageLoad on failure.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return img, nil
}

// BitmapFromImage converts img to a luminance Bitmap according to
// mode, compositing any alpha channel over white first via
// CompositeOverWhite.
func BitmapFromImage(img image.Image, mode HistogramMode) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	bm := NewBitmap(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			r8, g8, b8, a8 := c.R, c.G, c.B, c.A
			rr := CompositeOverWhite(float64(r8), float64(a8))
			gg := CompositeOverWhite(float64(g8), float64(a8))
			bb := CompositeOverWhite(float64(b8), float64(a8))

			var v byte
			switch mode {
			case ModeRed:
				v = clampByte(rr)
			case ModeGreen:
				v = clampByte(gg)
			case ModeBlue:
				v = clampByte(bb)
			default:
				v = Luminance(rr, gg, bb)
			}
			bm.Data[y*w+x] = v
		}
	}
	return bm
}

// thresholdMask turns bm into a 0/1 binary mask: a pixel is
// foreground (1) when its luminance is at or below threshold and
// blackOnWhite is true, or at or above threshold when blackOnWhite is
// false -- matching the convention that BlackOnWhite traces dark marks
// on a light page. The threshold value itself is always foreground.
func thresholdMask(bm *Bitmap, threshold int, blackOnWhite bool) *Bitmap {
	return bm.Copy(func(v byte, _ int) byte {
		var isForeground bool
		if blackOnWhite {
			isForeground = int(v) <= threshold
		} else {
			isForeground = int(v) >= threshold
		}
		if isForeground {
			return 1
		}
		return 0
	})
}
