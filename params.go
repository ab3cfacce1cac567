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

import "fmt"

// TurnPolicy resolves ambiguous turns the contour walker faces when
// both diagonal neighbours of an edge disagree about which way is
// "outward".
type TurnPolicy string

const (
	TurnBlack    TurnPolicy = "black"
	TurnWhite    TurnPolicy = "white"
	TurnLeft     TurnPolicy = "left"
	TurnRight    TurnPolicy = "right"
	TurnMinority TurnPolicy = "minority"
	TurnMajority TurnPolicy = "majority"
)

// ThresholdAuto requests automatic threshold selection via
// Histogram.AutoThreshold instead of a fixed value.
const ThresholdAuto = -1

// ColorAuto requests that the fill color track the tracing polarity
// (black when BlackOnWhite, white otherwise).
const ColorAuto = "auto"

// ColorTransparent requests no background rectangle in the output SVG.
const ColorTransparent = "transparent"

// Params holds the tuning knobs for a single Potrace trace. The zero
// value is not valid; use DefaultParams to obtain one with the
// documented defaults.
type Params struct {
	TurnPolicy   TurnPolicy
	TurdSize     int
	AlphaMax     float64
	OptCurve     bool
	OptTolerance float64
	Threshold    int
	BlackOnWhite bool
	Color        string
	Background   string
	Width        int // 0 means "use the source image width"
	Height       int // 0 means "use the source image height"
}

// DefaultParams returns the default parameter set.
func DefaultParams() Params {
	return Params{
		TurnPolicy:   TurnMinority,
		TurdSize:     2,
		AlphaMax:     1.0,
		OptCurve:     true,
		OptTolerance: 0.2,
		Threshold:    ThresholdAuto,
		BlackOnWhite: true,
		Color:        ColorAuto,
		Background:   ColorTransparent,
	}
}

// validate checks that every field of p holds a recognized value.
func (p Params) validate() error {
	switch p.TurnPolicy {
	case TurnBlack, TurnWhite, TurnLeft, TurnRight, TurnMinority, TurnMajority:
	default:
		return fmt.Errorf("%w: bad turnPolicy %q", ErrInvalidParameter, p.TurnPolicy)
	}
	if p.Threshold != ThresholdAuto && (p.Threshold < 0 || p.Threshold > 255) {
		return fmt.Errorf("%w: threshold must be -1 or in [0,255], got %d", ErrInvalidParameter, p.Threshold)
	}
	if p.TurdSize < 0 {
		return fmt.Errorf("%w: turdSize must be >= 0, got %d", ErrInvalidParameter, p.TurdSize)
	}
	if p.Width < 0 || p.Height < 0 {
		return fmt.Errorf("%w: width/height must be >= 0", ErrInvalidParameter)
	}
	return nil
}

// structurallyEqual reports whether old and new would produce the same
// trace, ignoring the fields the spec calls out as not invalidating a
// cached trace (Color and Background only affect rendering, not
// tracing).
func (old Params) structurallyEqual(new Params) bool {
	return old.TurnPolicy == new.TurnPolicy &&
		old.TurdSize == new.TurdSize &&
		old.AlphaMax == new.AlphaMax &&
		old.OptCurve == new.OptCurve &&
		old.OptTolerance == new.OptTolerance &&
		old.Threshold == new.Threshold &&
		old.BlackOnWhite == new.BlackOnWhite &&
		old.Width == new.Width &&
		old.Height == new.Height
}

// FillStrategy selects how a Posterizer layer's representative fill
// intensity is derived from the underlying histogram.
type FillStrategy string

const (
	FillSpread   FillStrategy = "spread"
	FillDominant FillStrategy = "dominant"
	FillMean     FillStrategy = "mean"
	FillMedian   FillStrategy = "median"
)

// RangeDistribution selects how a Posterizer spaces its thresholds
// when Steps is an integer count rather than an explicit list.
type RangeDistribution string

const (
	RangesAuto  RangeDistribution = "auto"
	RangesEqual RangeDistribution = "equal"
)

// StepsAuto requests automatic step-count selection.
const StepsAuto = -1

// PosterizerParams holds the tuning knobs for a Posterizer. Steps may
// be StepsAuto, a positive count in [1,255], or an explicit slice of
// threshold values in [0,255].
type PosterizerParams struct {
	Threshold         int
	BlackOnWhite      bool
	Steps             int
	StepValues        []int // non-nil overrides Steps
	Background        string
	FillStrategy      FillStrategy
	RangeDistribution RangeDistribution
}

// DefaultPosterizerParams returns the default parameter set.
func DefaultPosterizerParams() PosterizerParams {
	return PosterizerParams{
		Threshold:         ThresholdAuto,
		BlackOnWhite:      true,
		Steps:             StepsAuto,
		Background:        ColorTransparent,
		FillStrategy:      FillDominant,
		RangeDistribution: RangesAuto,
	}
}

func (p PosterizerParams) validate() error {
	if p.Threshold != ThresholdAuto && (p.Threshold < 0 || p.Threshold > 255) {
		return fmt.Errorf("%w: threshold must be -1 or in [0,255], got %d", ErrInvalidParameter, p.Threshold)
	}
	if p.StepValues == nil {
		if p.Steps != StepsAuto && (p.Steps < 1 || p.Steps > 255) {
			return fmt.Errorf("%w: steps must be -1 or in [1,255], got %d", ErrInvalidParameter, p.Steps)
		}
	}
	switch p.FillStrategy {
	case FillSpread, FillDominant, FillMean, FillMedian:
	default:
		return fmt.Errorf("%w: bad fillStrategy %q", ErrInvalidParameter, p.FillStrategy)
	}
	switch p.RangeDistribution {
	case RangesAuto, RangesEqual:
	default:
		return fmt.Errorf("%w: bad rangeDistribution %q", ErrInvalidParameter, p.RangeDistribution)
	}
	return nil
}
