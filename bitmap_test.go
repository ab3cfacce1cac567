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

func TestBitmapValueAt(t *testing.T) {
	b := NewBitmap(3, 2)
	b.Data[b.PointToIndex(1, 1)] = 7

	if got := b.ValueAt(1, 1); got != 7 {
		t.Errorf("ValueAt(1,1) = %d, want 7", got)
	}
	if got := b.ValueAt(-1, 0); got != -1 {
		t.Errorf("ValueAt(-1,0) = %d, want -1", got)
	}
	if got := b.ValueAt(3, 0); got != -1 {
		t.Errorf("ValueAt(3,0) = %d, want -1", got)
	}
}

func TestBitmapValueAtSafe(t *testing.T) {
	b := NewBitmap(3, 2)
	if got := b.valueAtSafe(-5, -5); got != 0 {
		t.Errorf("valueAtSafe out of range = %d, want 0", got)
	}
	b.Data[0] = 1
	if got := b.valueAtSafe(0, 0); got != 1 {
		t.Errorf("valueAtSafe(0,0) = %d, want 1", got)
	}
}

func TestBitmapPointIndexRoundTrip(t *testing.T) {
	b := NewBitmap(5, 4)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			idx := b.PointToIndex(x, y)
			gotX, gotY := b.IndexToPoint(idx)
			if gotX != x || gotY != y {
				t.Errorf("IndexToPoint(PointToIndex(%d,%d)) = (%d,%d)", x, y, gotX, gotY)
			}
		}
	}
}

func TestBitmapCopy(t *testing.T) {
	b := NewBitmap(2, 2)
	b.Data = []byte{10, 20, 30, 40}
	out := b.Copy(func(v byte, _ int) byte { return v + 1 })
	want := []byte{11, 21, 31, 41}
	for i, v := range want {
		if out.Data[i] != v {
			t.Errorf("Copy()[%d] = %d, want %d", i, out.Data[i], v)
		}
	}
	// original is untouched
	if b.Data[0] != 10 {
		t.Errorf("Copy mutated the source bitmap")
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(255, 255, 255); got != 255 {
		t.Errorf("Luminance(white) = %d, want 255", got)
	}
	if got := Luminance(0, 0, 0); got != 0 {
		t.Errorf("Luminance(black) = %d, want 0", got)
	}
}

func TestCompositeOverWhite(t *testing.T) {
	if got := CompositeOverWhite(0, 255); got != 0 {
		t.Errorf("fully opaque black composited = %v, want 0", got)
	}
	if got := CompositeOverWhite(0, 0); got != 255 {
		t.Errorf("fully transparent composited = %v, want 255", got)
	}
}

func TestThresholdMaskIncludesExactThreshold(t *testing.T) {
	b := NewBitmap(3, 1)
	b.Data[0] = 99
	b.Data[1] = 100
	b.Data[2] = 101

	mask := thresholdMask(b, 100, true)
	if mask.Data[0] != 1 || mask.Data[1] != 1 || mask.Data[2] != 0 {
		t.Errorf("blackOnWhite mask at threshold = %v, want [1 1 0]", mask.Data)
	}

	mask = thresholdMask(b, 100, false)
	if mask.Data[0] != 0 || mask.Data[1] != 1 || mask.Data[2] != 1 {
		t.Errorf("!blackOnWhite mask at threshold = %v, want [0 1 1]", mask.Data)
	}
}
