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
	"math"
	"sort"
)

// colorDepth is the number of discrete luminance levels.
const colorDepth = 256

// HistogramMode selects which channel Histogram aggregates when built
// directly from a decoded image rather than from a traced Bitmap.
// Potrace and Posterizer always use luminance; the other modes exist
// for callers that want to inspect a different channel's distribution.
type HistogramMode int

const (
	ModeLuminance HistogramMode = iota
	ModeRed
	ModeGreen
	ModeBlue
)

// LevelStats summarizes the color levels within a histogram segment.
type LevelStats struct {
	Mean   float64
	Median float64
	StdDev float64
	Unique int
}

// PixelsPerLevelStats summarizes how pixels are distributed across the
// levels of a histogram segment.
type PixelsPerLevelStats struct {
	Mean   float64
	Median float64
	Peak   int
}

// Stats is the result of Histogram.GetStats.
type Stats struct {
	Levels         LevelStats
	PixelsPerLevel PixelsPerLevelStats
	Pixels         int
}

// Histogram counts how many pixels fall into each of the 256 luminance
// (or, via HistogramMode, color channel) levels, and derives
// statistics, a dominant color, and Otsu-style multilevel thresholds
// from those counts.
type Histogram struct {
	data   [colorDepth]int
	pixels int

	sortedIndexes []int
	cachedStats   map[[2]int]Stats
	lookupTableH  []float64
}

// NewHistogramFromBitmap builds a histogram from a Bitmap's luminance
// values.
func NewHistogramFromBitmap(b *Bitmap) *Histogram {
	h := &Histogram{}
	for _, v := range b.Data {
		h.data[v]++
	}
	h.pixels = b.Size()
	return h
}

// NewHistogramFromImage builds a histogram from a decoded image,
// aggregating the channel selected by mode.
func NewHistogramFromImage(img image.Image, mode HistogramMode) *Histogram {
	h := &Histogram{}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// RGBA() returns 16-bit alpha-premultiplied components;
			// convert to 8-bit straight (non-premultiplied) values.
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
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
			h.data[v]++
			h.pixels++
		}
	}
	return h
}

func to8(v uint32) uint8 {
	return uint8(v >> 8)
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > colorDepth-1 {
		return colorDepth - 1
	}
	return v
}

func normalizeMinMax(levelMin, levelMax int) (int, int, error) {
	levelMin = clampLevel(levelMin)
	levelMax = clampLevel(levelMax)
	if levelMin > levelMax {
		return 0, 0, fmt.Errorf("%w: invalid histogram range %d..%d", ErrInvalidParameter, levelMin, levelMax)
	}
	return levelMin, levelMax, nil
}

func hIndex(i, j int) int {
	return colorDepth*i + j
}

// sortedIndexesAscending returns color indexes [0..255] ordered from
// least-used to most-used, caching the result.
func (h *Histogram) sortedIndexesAscending() []int {
	if h.sortedIndexes != nil {
		return h.sortedIndexes
	}
	indexes := make([]int, colorDepth)
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(i, j int) bool {
		return h.data[indexes[i]] < h.data[indexes[j]]
	})
	h.sortedIndexes = indexes
	return indexes
}

// GetStats returns statistics for the histogram segment [levelMin,
// levelMax], computing the median and standard deviation by walking
// colors in ascending order of usage frequency, as the original
// algorithm does (memory locality over the 256-entry table is not a
// concern, so there is no need for a single-pass Welford update).
// Results are cached by (levelMin, levelMax) until the underlying
// bitmap changes.
func (h *Histogram) GetStats(levelMin, levelMax int) (Stats, error) {
	levelMin, levelMax, err := normalizeMinMax(levelMin, levelMax)
	if err != nil {
		return Stats{}, err
	}
	key := [2]int{levelMin, levelMax}
	if h.cachedStats == nil {
		h.cachedStats = make(map[[2]int]Stats)
	}
	if s, ok := h.cachedStats[key]; ok {
		return s, nil
	}

	var pixelsTotal, weightedSum, unique, peak int
	for i := levelMin; i <= levelMax; i++ {
		cnt := h.data[i]
		pixelsTotal += cnt
		weightedSum += cnt * i
		if cnt > 0 {
			unique++
		}
		if cnt > peak {
			peak = cnt
		}
	}

	if pixelsTotal == 0 {
		stats := Stats{
			Levels:         LevelStats{Mean: math.NaN(), Median: math.NaN(), StdDev: math.NaN(), Unique: 0},
			PixelsPerLevel: PixelsPerLevelStats{Mean: math.NaN(), Median: math.NaN(), Peak: 0},
			Pixels:         0,
		}
		h.cachedStats[key] = stats
		return stats, nil
	}

	mean := float64(weightedSum) / float64(pixelsTotal)

	pixelsPerLevelMean := math.NaN()
	if levelMax-levelMin > 0 {
		pixelsPerLevelMean = float64(pixelsTotal) / float64(levelMax-levelMin)
	}
	pixelsPerLevelMedian := math.NaN()
	if unique > 0 {
		pixelsPerLevelMedian = float64(pixelsTotal) / float64(unique)
	}

	medianPixelIndex := pixelsTotal / 2

	var cumulative int
	var sumOfDeviations float64
	median := math.NaN()
	medianFound := false

	for _, idx := range h.sortedIndexesAscending() {
		if idx < levelMin || idx > levelMax {
			continue
		}
		count := h.data[idx]
		cumulative += count
		d := float64(idx) - mean
		sumOfDeviations += d * d * float64(count)

		if !medianFound && cumulative >= medianPixelIndex {
			median = float64(idx)
			medianFound = true
		}
	}

	stdDev := math.Sqrt(sumOfDeviations / float64(pixelsTotal))

	stats := Stats{
		Levels: LevelStats{
			Mean:   mean,
			Median: median,
			StdDev: stdDev,
			Unique: unique,
		},
		PixelsPerLevel: PixelsPerLevelStats{
			Mean:   pixelsPerLevelMean,
			Median: pixelsPerLevelMedian,
			Peak:   peak,
		},
		Pixels: pixelsTotal,
	}
	h.cachedStats[key] = stats
	return stats, nil
}

// GetDominantColor returns the color index in [levelMin, levelMax]
// whose +-tolerance neighbourhood has the largest pixel count; ties
// are broken in favor of the larger centre count. It returns -1 if the
// window contains no pixels at all.
func (h *Histogram) GetDominantColor(levelMin, levelMax, tolerance int) int {
	levelMin, levelMax, err := normalizeMinMax(levelMin, levelMax)
	if err != nil {
		return -1
	}

	if levelMin == levelMax {
		if h.data[levelMin] > 0 {
			return levelMin
		}
		return -1
	}

	dominantIndex := -1
	dominantValue := -1

	for i := levelMin; i <= levelMax; i++ {
		sum := 0
		for j := -tolerance; j <= tolerance; j++ {
			idx := i + j
			if idx >= 0 && idx <= colorDepth-1 {
				sum += h.data[idx]
			}
		}

		biggerSum := sum > dominantValue
		tiedButCenterBigger := sum == dominantValue && (dominantIndex < 0 || h.data[i] > h.data[dominantIndex])

		if biggerSum || tiedButCenterBigger {
			dominantIndex = i
			dominantValue = sum
		}
	}

	if dominantValue <= 0 {
		return -1
	}
	return dominantIndex
}

// buildLookupTable computes the P (probability mass) and S (first
// moment) tables over levels 1..255 (level 0 is not part of any
// segment) and derives H = S^2/P, memoized for reuse across calls to
// MultilevelThresholding.
func (h *Histogram) buildLookupTable() []float64 {
	if h.lookupTableH != nil {
		return h.lookupTableH
	}

	P := make([]float64, colorDepth*colorDepth)
	S := make([]float64, colorDepth*colorDepth)
	H := make([]float64, colorDepth*colorDepth)
	total := float64(h.pixels)

	for i := 1; i < colorDepth; i++ {
		idx := hIndex(i, i)
		p := float64(h.data[i]) / total
		P[idx] = p
		S[idx] = float64(i) * p
	}

	for i := 1; i < colorDepth-1; i++ {
		p := float64(h.data[i+1]) / total
		idx := hIndex(1, i)
		P[idx+1] = P[idx] + p
		S[idx+1] = S[idx] + float64(i+1)*p
	}

	for i := 2; i < colorDepth; i++ {
		for j := i + 1; j < colorDepth; j++ {
			P[hIndex(i, j)] = P[hIndex(1, j)] - P[hIndex(1, i-1)]
			S[hIndex(i, j)] = S[hIndex(1, j)] - S[hIndex(1, i-1)]
		}
	}

	for i := 1; i < colorDepth; i++ {
		for j := i + 1; j < colorDepth; j++ {
			idx := hIndex(i, j)
			if P[idx] != 0 {
				H[idx] = S[idx] * S[idx] / P[idx]
			}
		}
	}

	h.lookupTableH = H
	return H
}

// MultilevelThresholding implements Otsu-style multilevel thresholding:
// it chooses `amount` thresholds t_1 < ... < t_amount within
// (levelMin, levelMax) maximizing the sum of H over the amount+1
// consecutive segments bounded by (levelMin, t_1, ..., t_amount,
// levelMax). The search is iterative (an explicit stack standing in
// for the textbook recursive formulation) since amount is bounded in
// practice but unbounded recursion is not worth risking.
//
// amount is clamped so at least two unit-width segments fit in
// [levelMin, levelMax]; if none fit, MultilevelThresholding returns
// nil.
func (h *Histogram) MultilevelThresholding(amount, levelMin, levelMax int) []int {
	levelMin, levelMax, err := normalizeMinMax(levelMin, levelMax)
	if err != nil {
		return nil
	}
	if maxAmount := levelMax - levelMin - 2; amount > maxAmount {
		amount = maxAmount
	}
	if amount < 1 {
		return nil
	}

	H := h.buildLookupTable()

	indexes := make([]int, amount)
	best := make([]int, amount)
	maxSig := 0.0
	found := false

	type frame struct {
		startingPoint int
		prevVariance  float64
		depth         int
		i             int
		iEnd          int
	}

	stack := []frame{{
		startingPoint: levelMin,
		prevVariance:  0,
		depth:         1,
		i:             levelMin + 1,
		iEnd:          levelMax - amount + 1,
	}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.i >= top.iEnd {
			stack = stack[:len(stack)-1]
			continue
		}

		sp := top.startingPoint + 1
		i := top.i
		top.i++

		variance := top.prevVariance + H[hIndex(sp, i)]
		indexes[top.depth-1] = i

		if top.depth < amount {
			stack = append(stack, frame{
				startingPoint: i,
				prevVariance:  variance,
				depth:         top.depth + 1,
				i:             i + 1,
				iEnd:          levelMax - amount + top.depth + 1,
			})
		} else {
			variance += H[hIndex(i+1, levelMax)]
			if variance > maxSig {
				maxSig = variance
				copy(best, indexes)
				found = true
			}
		}
	}

	if !found {
		return nil
	}
	out := make([]int, amount)
	copy(out, best)
	return out
}

// AutoThreshold picks a single threshold via MultilevelThresholding,
// falling back to 128 when the segment's range is too narrow to
// support any split.
func (h *Histogram) AutoThreshold(levelMin, levelMax int) int {
	t := h.MultilevelThresholding(1, levelMin, levelMax)
	if len(t) == 0 {
		return 128
	}
	return t[0]
}
