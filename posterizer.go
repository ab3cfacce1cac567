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
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
)

// colorStop is one threshold level of a posterization, together with
// the fill intensity (0..1, where 1 is fully opaque black-equivalent)
// that level's layer should render at.
type colorStop struct {
	Value          int
	ColorIntensity float64
}

// Posterizer approximates a continuous-tone image as a stack of
// Potrace traces at different thresholds, each layered with a
// corrective opacity so that the stack's visual darkness at any point
// matches the source image's.
type Posterizer struct {
	params PosterizerParams

	engine *Potrace
	bitmap *Bitmap

	calculatedThreshold int // -1 until computed
}

// NewPosterizer returns a Posterizer with the given parameters.
func NewPosterizer(params PosterizerParams) (*Posterizer, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	engine, err := NewPotrace(DefaultParams())
	if err != nil {
		return nil, err
	}
	return &Posterizer{
		params:              params,
		engine:              engine,
		calculatedThreshold: -1,
	}, nil
}

// SetParameters updates the posterizer's parameters, invalidating the
// cached threshold whenever Threshold or BlackOnWhite change.
func (p *Posterizer) SetParameters(params PosterizerParams) error {
	if err := params.validate(); err != nil {
		return err
	}
	if p.params.Threshold != params.Threshold || p.params.BlackOnWhite != params.BlackOnWhite {
		p.calculatedThreshold = -1
	}
	p.params = params
	return nil
}

// LoadImage decodes img into the posterizer's working bitmap,
// invalidating the cached threshold.
func (p *Posterizer) LoadImage(img image.Image) {
	p.bitmap = BitmapFromImage(img, ModeLuminance)
	p.calculatedThreshold = -1
}

func (p *Posterizer) histogram() *Histogram {
	return p.bitmap.Histogram()
}

// paramThreshold resolves Threshold, running a 2-level multilevel
// thresholding to pick one automatically if needed, and caching the
// result until the source image or BlackOnWhite changes.
func (p *Posterizer) paramThreshold() int {
	if p.calculatedThreshold >= 0 {
		return p.calculatedThreshold
	}
	if p.params.Threshold != ThresholdAuto {
		p.calculatedThreshold = p.params.Threshold
		return p.calculatedThreshold
	}

	levels := p.histogram().MultilevelThresholding(2, 0, 255)
	var t int
	if p.params.BlackOnWhite {
		if len(levels) > 1 {
			t = levels[1]
		}
	} else {
		if len(levels) > 0 {
			t = levels[0]
		}
	}
	if t == 0 {
		t = 128
	}
	p.calculatedThreshold = t
	return t
}

// paramStepsCount resolves Steps to a concrete layer count.
func (p *Posterizer) paramStepsCount() int {
	if p.params.StepValues != nil {
		return len(p.params.StepValues)
	}
	if p.params.Steps == StepsAuto && p.params.Threshold == ThresholdAuto {
		return 4
	}

	colorsCount := p.paramThreshold()
	if !p.params.BlackOnWhite {
		colorsCount = 255 - colorsCount
	}

	if p.params.Steps == StepsAuto {
		if colorsCount > 200 {
			return 4
		}
		return 3
	}
	steps := p.params.Steps
	if steps > colorsCount {
		steps = colorsCount
	}
	if steps < 2 {
		steps = 2
	}
	return steps
}

// getRanges resolves the posterizer's parameters into a sequence of
// color stops with intensities attached.
func (p *Posterizer) getRanges() []colorStop {
	if p.params.StepValues != nil {
		return p.getRangesFromValues()
	}
	if p.params.RangeDistribution == RangesAuto {
		return p.getRangesAuto()
	}
	return p.getRangesEquallyDistributed()
}

// getRangesFromValues normalizes an explicit StepValues list into
// clamped, sorted, deduplicated color stops anchored at the resolved
// threshold.
func (p *Posterizer) getRangesFromValues() []colorStop {
	threshold := p.paramThreshold()
	blackOnWhite := p.params.BlackOnWhite

	seen := map[int]bool{}
	var values []int
	for _, v := range p.params.StepValues {
		v = clampInt(v, 0, 255)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	if len(values) == 0 {
		values = append(values, threshold)
	}

	if blackOnWhite {
		sortDesc(values)
		if values[0] < threshold {
			values = append([]int{threshold}, values...)
		}
	} else {
		sortAsc(values)
		if values[len(values)-1] < threshold {
			values = append(values, threshold)
		}
	}

	return p.calcColorIntensity(values)
}

// getRangesAuto derives color stops from Otsu-style multilevel
// thresholding of the whole image.
func (p *Posterizer) getRangesAuto() []colorStop {
	h := p.histogram()
	steps := p.paramStepsCount()

	var values []int
	if p.params.Threshold == ThresholdAuto {
		values = h.MultilevelThresholding(steps, 0, 255)
	} else {
		threshold := p.paramThreshold()
		if p.params.BlackOnWhite {
			values = h.MultilevelThresholding(steps-1, 0, threshold)
			values = append(values, threshold)
		} else {
			values = h.MultilevelThresholding(steps-1, threshold, 255)
			values = append([]int{threshold}, values...)
		}
	}

	if p.params.BlackOnWhite {
		reverseInts(values)
	}

	return p.calcColorIntensity(values)
}

// getRangesEquallyDistributed derives color stops by dividing the
// threshold-to-background range into equal steps.
func (p *Posterizer) getRangesEquallyDistributed() []colorStop {
	blackOnWhite := p.params.BlackOnWhite
	threshold := p.paramThreshold()

	colorsToThreshold := threshold
	if !blackOnWhite {
		colorsToThreshold = 255 - threshold
	}
	steps := p.paramStepsCount()
	stepSize := float64(colorsToThreshold) / float64(steps)

	var values []int
	for i := steps - 1; i >= 0; i-- {
		t := math.Min(float64(colorsToThreshold), float64(i+1)*stepSize)
		if !blackOnWhite {
			t = 255 - t
		}
		values = append(values, int(math.Round(t)))
	}

	return p.calcColorIntensity(values)
}

// calcColorIntensity derives, for each threshold value (already
// sorted into layering order), the greyscale intensity that value's
// layer should represent, according to FillStrategy.
func (p *Posterizer) calcColorIntensity(values []int) []colorStop {
	blackOnWhite := p.params.BlackOnWhite
	strategy := p.params.FillStrategy

	var h *Histogram
	if strategy != FillSpread {
		h = p.histogram()
	}

	fullRange := p.paramThreshold()
	if !blackOnWhite {
		fullRange = 255 - fullRange
	}

	stops := make([]colorStop, len(values))
	n := len(values)

	for i, v := range values {
		var next int
		if i+1 == n {
			if blackOnWhite {
				next = -1
			} else {
				next = 256
			}
		} else {
			next = values[i+1]
		}

		var rangeStart, rangeEnd int
		if blackOnWhite {
			rangeStart = next + 1
			rangeEnd = v
		} else {
			rangeStart = v
			rangeEnd = next - 1
		}

		factor := 0.0
		if n > 1 {
			factor = float64(i) / float64(n-1)
		}
		intervalSize := rangeEnd - rangeStart

		var pixels int
		var mean, median float64
		if h != nil {
			stats, err := h.GetStats(rangeStart, rangeEnd)
			if err == nil {
				pixels = stats.Pixels
				mean = stats.Levels.Mean
				median = stats.Levels.Median
			}
		}

		if h != nil && pixels == 0 {
			stops[i] = colorStop{Value: v, ColorIntensity: 0}
			continue
		}

		color := -1.0
		switch strategy {
		case FillSpread:
			spread := intervalSize * math.Max(0.5, float64(fullRange)/255) * factor
			if blackOnWhite {
				color = float64(rangeStart) + spread
			} else {
				color = float64(rangeEnd) - spread
			}
		case FillDominant:
			tolerance := clampInt(intervalSize, 1, 5)
			color = float64(h.GetDominantColor(rangeStart, rangeEnd, tolerance))
		case FillMean:
			color = mean
		case FillMedian:
			color = median
		}

		if i != 0 {
			if blackOnWhite {
				color = clampf(color, float64(rangeStart), math.Round(float64(rangeEnd)-float64(intervalSize)*0.1))
			} else {
				color = clampf(color, math.Round(float64(rangeStart)+float64(intervalSize)*0.1), float64(rangeEnd))
			}
		}

		intensity := 0.0
		if color != -1 {
			if blackOnWhite {
				intensity = (255 - color) / 255
			} else {
				intensity = color / 255
			}
		}
		stops[i] = colorStop{Value: v, ColorIntensity: intensity}
	}

	return stops
}

// addExtraColorStop appends an additional, darker color stop beyond
// the last one when that last range spans more than 10% of the color
// space, to keep shadows and fine line art from banding.
func (p *Posterizer) addExtraColorStop(stops []colorStop) []colorStop {
	blackOnWhite := p.params.BlackOnWhite
	last := stops[len(stops)-1]

	var rangeStart, rangeEnd int
	if blackOnWhite {
		rangeStart, rangeEnd = 0, last.Value
	} else {
		rangeStart, rangeEnd = last.Value, 255
	}

	if rangeEnd-rangeStart <= 25 || last.ColorIntensity == 1 {
		return stops
	}

	h := p.histogram()
	stats, err := h.GetStats(rangeStart, rangeEnd)
	if err != nil {
		return stops
	}

	var newValue float64
	switch {
	case stats.Levels.Mean+stats.Levels.StdDev <= 25:
		newValue = stats.Levels.Mean + stats.Levels.StdDev
	case stats.Levels.Mean-stats.Levels.StdDev <= 25:
		newValue = stats.Levels.Mean - stats.Levels.StdDev
	default:
		newValue = 25
	}

	var newStats Stats
	if blackOnWhite {
		newStats, err = h.GetStats(0, int(newValue))
	} else {
		newStats, err = h.GetStats(int(newValue), 255)
	}
	if err != nil {
		return stops
	}
	newColor := newStats.Levels.Mean

	base := 0.0
	if !blackOnWhite {
		base = 255
	}
	value := int(math.Abs(base - newValue))
	intensity := 0.0
	if !math.IsNaN(newColor) {
		if blackOnWhite {
			intensity = (255 - newColor) / 255
		} else {
			intensity = newColor / 255
		}
	}

	return append(stops, colorStop{Value: value, ColorIntensity: intensity})
}

// layers resolves the posterizer's color stops into SVG layers, each
// fill-opacity-corrected so that stacking them over one another
// reproduces the original continuous-tone intensity at every pixel.
func (p *Posterizer) layers() ([]svgLayer, error) {
	stops := p.getRanges()
	if len(stops) >= 10 {
		stops = p.addExtraColorStop(stops)
	}

	engineParams := DefaultParams()
	engineParams.BlackOnWhite = p.params.BlackOnWhite
	if err := p.engine.SetParameters(engineParams); err != nil {
		return nil, err
	}
	p.engine.LoadImageFromBitmap(p.bitmap)

	var out []svgLayer
	actualPrevOpacity := 0.0

	for _, stop := range stops {
		thisOpacity := stop.ColorIntensity
		if thisOpacity == 0 {
			continue
		}

		var calculated float64
		if actualPrevOpacity == 0 || thisOpacity == 1 {
			calculated = thisOpacity
		} else {
			calculated = (actualPrevOpacity - thisOpacity) / (actualPrevOpacity - 1)
		}
		calculated = clampf(math.Round(calculated*1000)/1000, 0, 1)
		actualPrevOpacity += (1 - actualPrevOpacity) * calculated

		if calculated == 0 {
			continue
		}

		params := p.engine.params
		params.Threshold = stop.Value
		if err := p.engine.SetParameters(params); err != nil {
			return nil, err
		}

		paths, err := p.engine.GetPathTag()
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			continue
		}

		out = append(out, svgLayer{
			Color:   "black",
			D:       p.engine.combinedPathString(matrix.Identity),
			Opacity: calculated,
		})
	}

	return out, nil
}

// GetSVG returns a complete SVG document containing every posterized
// layer, lightest first, each with its corrective fill-opacity.
func (p *Posterizer) GetSVG() (string, error) {
	layers, err := p.layers()
	if err != nil {
		return "", err
	}
	return renderSVG(p.bitmap.Width, p.bitmap.Height, p.params.Background, layers), nil
}

// GetSymbol returns a reusable <symbol> element containing every
// posterized layer.
func (p *Posterizer) GetSymbol(id string) (string, error) {
	layers, err := p.layers()
	if err != nil {
		return "", err
	}
	return symbolString(id, p.bitmap.Width, p.bitmap.Height, layers), nil
}

func sortAsc(v []int) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j-1] > v[j]; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
}

func sortDesc(v []int) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j-1] < v[j]; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
}

func reverseInts(v []int) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
