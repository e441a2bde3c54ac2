// Package raster implements the low-level grayscale and binary image
// operations shared by sheet normalization and mark extraction: Gaussian
// smoothing, adaptive thresholding, morphological cleanup, and tile-based
// contrast enhancement.
package raster

import "image"

// Binary is a bi-level image. Foreground ("ink") pixels are true.
type Binary struct {
	W, H int
	Pix  []bool
}

// NewBinary creates an all-background binary image.
func NewBinary(w, h int) *Binary {
	return &Binary{W: w, H: h, Pix: make([]bool, w*h)}
}

// Size returns the image dimensions.
func (b *Binary) Size() (int, int) {
	return b.W, b.H
}

// At reports whether the pixel at (x, y) is foreground.
func (b *Binary) At(x, y int) bool {
	return b.Pix[y*b.W+x]
}

// Set sets the pixel at (x, y).
func (b *Binary) Set(x, y int, v bool) {
	b.Pix[y*b.W+x] = v
}

// CountNonZero returns the number of foreground pixels.
func (b *Binary) CountNonZero() int {
	n := 0
	for _, v := range b.Pix {
		if v {
			n++
		}
	}
	return n
}

// SubImage returns a copy of the region clipped to the image bounds.
func (b *Binary) SubImage(r image.Rectangle) *Binary {
	r = r.Intersect(image.Rect(0, 0, b.W, b.H))
	out := NewBinary(r.Dx(), r.Dy())
	for y := 0; y < out.H; y++ {
		copy(out.Pix[y*out.W:(y+1)*out.W], b.Pix[(r.Min.Y+y)*b.W+r.Min.X:(r.Min.Y+y)*b.W+r.Min.X+out.W])
	}
	return out
}

// ToGray converts a decoded image to 8-bit grayscale using the standard
// library's luminance conversion.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return gray
}

// Integral computes a summed-area table with one extra row and column of
// zeros, so the sum over [x0,x1)x[y0,y1) is
// t[y1][x1] - t[y0][x1] - t[y1][x0] + t[y0][x0].
func Integral(img *image.Gray) [][]uint64 {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	t := make([][]uint64, h+1)
	t[0] = make([]uint64, w+1)
	for y := 1; y <= h; y++ {
		t[y] = make([]uint64, w+1)
		var rowSum uint64
		for x := 1; x <= w; x++ {
			rowSum += uint64(img.GrayAt(img.Rect.Min.X+x-1, img.Rect.Min.Y+y-1).Y)
			t[y][x] = t[y-1][x] + rowSum
		}
	}
	return t
}
