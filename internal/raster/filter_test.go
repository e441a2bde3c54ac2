package raster

import (
	"image"
	"testing"
)

// uniformGray builds a w x h grayscale image with every pixel set to v.
func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// fillRect paints a rectangle with value v.
func fillRect(img *image.Gray, x0, y0, x1, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Pix[y*img.Stride+x] = v
		}
	}
}

func TestGaussianBlur_PreservesUniform(t *testing.T) {
	img := uniformGray(20, 20, 180)
	out := GaussianBlur(img)

	for i, v := range out.Pix {
		if v != 180 {
			t.Fatalf("Pixel %d changed to %d on a uniform image", i, v)
		}
	}
}

func TestGaussianBlur_Smooths(t *testing.T) {
	img := uniformGray(21, 21, 255)
	img.Pix[10*img.Stride+10] = 0

	out := GaussianBlur(img)

	center := out.Pix[10*out.Stride+10]
	if center == 0 || center == 255 {
		t.Errorf("Expected the spike to be smoothed, got %d", center)
	}
	if far := out.Pix[0]; far != 255 {
		t.Errorf("Expected distant pixels unchanged, got %d", far)
	}
}

func TestAdaptiveThreshold_FindsDarkBlob(t *testing.T) {
	img := uniformGray(40, 40, 255)
	fillRect(img, 10, 10, 20, 20, 0)

	bin := AdaptiveThreshold(img, 11, 2)

	// The blob's edge pixels sit well below their local mean.
	if !bin.At(10, 15) {
		t.Error("Expected the blob edge to be foreground")
	}
	// Far-away background stays background.
	if bin.At(35, 35) {
		t.Error("Expected distant background to stay background")
	}
}

func TestAdaptiveThreshold_UniformIsBackground(t *testing.T) {
	bin := AdaptiveThreshold(uniformGray(30, 30, 128), 11, 2)
	if n := bin.CountNonZero(); n != 0 {
		t.Errorf("Expected no foreground on a uniform image, got %d pixels", n)
	}
}

func TestThreshold(t *testing.T) {
	img := uniformGray(10, 10, 255)
	fillRect(img, 0, 0, 5, 10, 100)

	bin := Threshold(img, 200)
	if got := bin.CountNonZero(); got != 50 {
		t.Errorf("Expected 50 foreground pixels, got %d", got)
	}
	if !bin.At(2, 2) || bin.At(7, 7) {
		t.Error("Threshold classified the wrong side as foreground")
	}
}

func TestOpen_RemovesSpeckle(t *testing.T) {
	b := NewBinary(20, 20)
	b.Set(10, 10, true) // isolated noise pixel

	// A solid block survives opening.
	for y := 2; y < 8; y++ {
		for x := 2; x < 8; x++ {
			b.Set(x, y, true)
		}
	}

	out := Open(b)
	if out.At(10, 10) {
		t.Error("Expected the isolated pixel to be removed")
	}
	if !out.At(4, 4) {
		t.Error("Expected the block interior to survive")
	}
}

func TestClose_FillsHole(t *testing.T) {
	b := NewBinary(20, 20)
	for y := 2; y < 12; y++ {
		for x := 2; x < 12; x++ {
			b.Set(x, y, true)
		}
	}
	b.Set(6, 6, false) // one-pixel hole

	out := Close(b)
	if !out.At(6, 6) {
		t.Error("Expected the hole to be filled")
	}
}

func TestBinary_SubImage(t *testing.T) {
	b := NewBinary(10, 10)
	b.Set(4, 5, true)

	sub := b.SubImage(image.Rect(3, 3, 8, 8))
	if sub.W != 5 || sub.H != 5 {
		t.Fatalf("Expected 5x5 sub image, got %dx%d", sub.W, sub.H)
	}
	if !sub.At(1, 2) {
		t.Error("Expected the set pixel at translated coordinates")
	}
	if got := sub.CountNonZero(); got != 1 {
		t.Errorf("Expected exactly 1 foreground pixel, got %d", got)
	}
}

func TestIntegral(t *testing.T) {
	img := uniformGray(4, 4, 10)
	tbl := Integral(img)

	// Full-image sum.
	if got := tbl[4][4]; got != 160 {
		t.Errorf("Expected total 160, got %d", got)
	}
	// 2x2 region sum via the standard four-corner lookup.
	sum := tbl[3][3] - tbl[1][3] - tbl[3][1] + tbl[1][1]
	if sum != 40 {
		t.Errorf("Expected region sum 40, got %d", sum)
	}
}
