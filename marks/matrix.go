package marks

import "image"

// Cell holds the classification and confidence metrics for one grid cell.
type Cell struct {
	// Marked is the final classification for this cell.
	Marked bool

	// FillRatio is the fraction of ink pixels in the sampled region.
	FillRatio float64

	// MeanIntensity and StdIntensity describe the grayscale pixels of the
	// sampled region before binarization.
	MeanIntensity float64
	StdIntensity  float64

	// Circularity is the roundness of the largest ink contour in the
	// cell, 1.0 for a perfect circle. Zero when the cell has no contour.
	Circularity float64

	// Bounds is the sampled pixel region in sheet coordinates.
	Bounds image.Rectangle
}

// Matrix is the extracted mark grid: Rows x Cols cells in question order
// (row 0 is question 1) and option order (col 0 is option 1). Dimensions
// are fixed at construction.
type Matrix struct {
	Rows  int
	Cols  int
	Cells [][]Cell
}

// NewMatrix creates an all-unmarked matrix of the given dimensions.
func NewMatrix(rows, cols int) *Matrix {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Matrix{Rows: rows, Cols: cols, Cells: cells}
}

// Marked reports whether the cell at the given 0-indexed row and column
// is marked.
func (m *Matrix) Marked(row, col int) bool {
	return m.Cells[row][col].Marked
}

// RowMarks returns the number of marked cells in a row.
func (m *Matrix) RowMarks(row int) int {
	n := 0
	for col := 0; col < m.Cols; col++ {
		if m.Cells[row][col].Marked {
			n++
		}
	}
	return n
}

// Stats summarizes mark detection across the whole matrix.
type Stats struct {
	TotalBubbles       int
	FilledBubbles      int
	FillRate           float64
	MultipleSelections int // rows with more than one mark
	Unanswered         int // rows with no marks
}

// Stats computes detection statistics for the matrix.
func (m *Matrix) Stats() Stats {
	s := Stats{TotalBubbles: m.Rows * m.Cols}

	for row := 0; row < m.Rows; row++ {
		marks := m.RowMarks(row)
		s.FilledBubbles += marks
		switch {
		case marks == 0:
			s.Unanswered++
		case marks > 1:
			s.MultipleSelections++
		}
	}

	if s.TotalBubbles > 0 {
		s.FillRate = float64(s.FilledBubbles) / float64(s.TotalBubbles)
	}
	return s
}
