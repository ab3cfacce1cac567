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

import "errors"

// Sentinel errors identifying the categories of failure this package
// can report. Use errors.Is to test for a specific category; the
// wrapped error returned by an API always carries additional context
// via %w.
var (
	// ErrInvalidParameter is returned when SetParameters is called with
	// an out-of-range value, an unknown enum, or a value of the wrong
	// type. The engine's prior parameters are left untouched.
	ErrInvalidParameter = errors.New("potrace: invalid parameter")

	// ErrImageLoad is returned when DecodeImage fails to decode its input.
	ErrImageLoad = errors.New("potrace: image load failed")

	// ErrNotLoaded is returned when a serialization method is called
	// before a successful LoadImage.
	ErrNotLoaded = errors.New("potrace: no image loaded")

	// ErrInternal wraps a panic recovered from inside the tracing
	// pipeline. Seeing it means a bug in this package, not in caller
	// input.
	ErrInternal = errors.New("potrace: internal error")
)
