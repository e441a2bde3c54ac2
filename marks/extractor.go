package marks

import (
	"fmt"
	"image"
	"math"

	"github.com/tsawler/omrscan/internal/geom"
	"github.com/tsawler/omrscan/internal/raster"
	"github.com/tsawler/omrscan/sheet"
)

// Extractor classifies grid cells on a rectified sheet. A single
// parameterized extractor replaces threshold tuning per call site: all
// knobs are explicit fields, so two extractions with equal settings
// always classify identically.
type Extractor struct {
	// FillThreshold is the fill ratio above which a cell counts as
	// marked.
	FillThreshold float64

	// SmallCellThreshold replaces FillThreshold for cells at or below
	// MinCellArea pixels, where a few stray pixels dominate the ratio.
	SmallCellThreshold float64

	// MinCellArea is the pixel area below which SmallCellThreshold
	// applies.
	MinCellArea int

	// InsetRatio shrinks the sampled region inward by this fraction of
	// the cell's width and height on each side, keeping grid lines out of
	// the fill ratio. Zero samples the full cell.
	InsetRatio float64

	// MinCircularity, when positive, additionally requires the largest
	// ink contour in a marked cell to be at least this round. Rejects
	// line fragments that pass the fill-ratio test.
	MinCircularity float64

	// ThresholdBlock and ThresholdC control the adaptive binarization
	// that separates ink from paper before counting fill.
	ThresholdBlock int
	ThresholdC     float64

	// InkCutoff marks any pixel at or below this grayscale value as ink
	// regardless of the local mean. The adaptive pass only responds near
	// intensity transitions, so without the cutoff the interior of a
	// solidly filled bubble reads as background.
	InkCutoff uint8
}

// NewExtractor creates an Extractor with default settings.
func NewExtractor() *Extractor {
	return &Extractor{
		FillThreshold:      0.3,
		SmallCellThreshold: 0.5,
		MinCellArea:        100,
		InsetRatio:         0.25,
		MinCircularity:     0,
		ThresholdBlock:     11,
		ThresholdC:         2,
		InkCutoff:          200,
	}
}

// Extract partitions the rectified sheet into rows x cols cells and
// classifies each one. The returned matrix always has exactly the
// requested dimensions.
func (e *Extractor) Extract(rect sheet.Rectified, rows, cols int) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("marks: invalid grid %dx%d", rows, cols)
	}

	gray := rect.Gray
	w := rect.Width()
	h := rect.Height()

	blurred := raster.GaussianBlur(gray)
	ink := raster.AdaptiveThreshold(blurred, e.ThresholdBlock, e.ThresholdC)
	if e.InkCutoff > 0 {
		dark := raster.Threshold(blurred, e.InkCutoff)
		for i, v := range dark.Pix {
			if v {
				ink.Pix[i] = true
			}
		}
	}

	cellW := w / cols
	cellH := h / rows

	m := NewMatrix(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			bounds := e.cellBounds(row, col, cellW, cellH, w, h)
			m.Cells[row][col] = e.classify(gray, ink, bounds)
		}
	}
	return m, nil
}

// cellBounds computes the sampled pixel region for one cell: the cell
// rectangle from integer-division partitioning, clipped to the sheet on
// the last row and column, then inset by InsetRatio.
func (e *Extractor) cellBounds(row, col, cellW, cellH, w, h int) image.Rectangle {
	x0 := col * cellW
	y0 := row * cellH
	x1 := x0 + cellW
	y1 := y0 + cellH
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}

	if e.InsetRatio > 0 {
		insetX := int(float64(cellW) * e.InsetRatio)
		insetY := int(float64(cellH) * e.InsetRatio)
		x0 += insetX
		x1 -= insetX
		y0 += insetY
		y1 -= insetY
	}

	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, w, h))
}

// classify measures and classifies one cell.
func (e *Extractor) classify(gray *image.Gray, ink *raster.Binary, bounds image.Rectangle) Cell {
	cell := Cell{Bounds: bounds}

	area := bounds.Dx() * bounds.Dy()
	if area <= 0 {
		return cell
	}

	// Fill ratio from the binarized ink mask.
	filled := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if ink.At(x, y) {
				filled++
			}
		}
	}
	cell.FillRatio = float64(filled) / float64(area)

	// Intensity statistics from the grayscale pixels.
	cell.MeanIntensity, cell.StdIntensity = intensityStats(gray, bounds)

	threshold := e.FillThreshold
	if area <= e.MinCellArea {
		threshold = e.SmallCellThreshold
	}
	cell.Marked = cell.FillRatio > threshold

	if e.MinCircularity > 0 {
		cell.Circularity = largestContourCircularity(ink, bounds)
		if cell.Marked && cell.Circularity < e.MinCircularity {
			cell.Marked = false
		}
	}
	return cell
}

// intensityStats returns the mean and standard deviation of grayscale
// values in the region.
func intensityStats(gray *image.Gray, bounds image.Rectangle) (mean, std float64) {
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return 0, 0
	}

	sum := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += float64(gray.GrayAt(x, y).Y)
		}
	}
	mean = sum / n

	varSum := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := float64(gray.GrayAt(x, y).Y) - mean
			varSum += d * d
		}
	}
	return mean, math.Sqrt(varSum / n)
}

// largestContourCircularity traces ink contours within the cell region
// and returns the circularity of the one with the greatest area.
func largestContourCircularity(ink *raster.Binary, bounds image.Rectangle) float64 {
	sub := ink.SubImage(bounds)
	contour := geom.LargestContour(sub)
	if len(contour) < 3 {
		return 0
	}
	return geom.Circularity(contour)
}
