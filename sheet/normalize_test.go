package sheet

import (
	"image"
	"testing"
)

// whiteImage builds a w x h grayscale image filled with paper white.
func whiteImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// drawFrame paints a dark rectangular frame, like a sheet's printed
// border, from (x0,y0) to (x1,y1) exclusive with the given thickness.
func drawFrame(img *image.Gray, x0, y0, x1, y1, thickness int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			onBorder := x < x0+thickness || x >= x1-thickness ||
				y < y0+thickness || y >= y1-thickness
			if onBorder {
				img.Pix[y*img.Stride+x] = 0
			}
		}
	}
}

func TestNewNormalizer_Defaults(t *testing.T) {
	n := NewNormalizer()
	if n.Width != CanonicalWidth || n.Height != CanonicalHeight {
		t.Errorf("Expected canonical %dx%d, got %dx%d", CanonicalWidth, CanonicalHeight, n.Width, n.Height)
	}
	if n.ThresholdBlock != 11 {
		t.Errorf("Expected threshold block 11, got %d", n.ThresholdBlock)
	}
	if n.ApproxEpsilon != 0.02 {
		t.Errorf("Expected approx epsilon 0.02, got %f", n.ApproxEpsilon)
	}
}

func TestNormalize_WarpsFramedSheet(t *testing.T) {
	// A sheet with a clear printed border: its outline is the largest
	// contour and resolves to four corners.
	img := whiteImage(400, 500)
	drawFrame(img, 8, 10, 392, 490, 4)

	n := NewNormalizer()
	rect := n.Normalize(img)

	if !rect.Warped {
		t.Error("Expected perspective correction to be applied")
	}
	if rect.Width() != CanonicalWidth || rect.Height() != CanonicalHeight {
		t.Errorf("Expected canonical %dx%d, got %dx%d",
			CanonicalWidth, CanonicalHeight, rect.Width(), rect.Height())
	}
}

func TestNormalize_FallbackOnBlankImage(t *testing.T) {
	// No outline at all: the normalizer must degrade to scaling, not fail.
	n := NewNormalizer()
	rect := n.Normalize(whiteImage(300, 200))

	if rect.Warped {
		t.Error("Expected the fallback path for a blank image")
	}
	if rect.Width() != CanonicalWidth || rect.Height() != CanonicalHeight {
		t.Errorf("Expected canonical %dx%d, got %dx%d",
			CanonicalWidth, CanonicalHeight, rect.Width(), rect.Height())
	}
}

func TestNormalize_FallbackOnRoundOutline(t *testing.T) {
	// A large disk has one dominant contour but no four-corner
	// approximation; the normalizer must take the fallback path.
	img := whiteImage(300, 300)
	cx, cy, r := 150, 150, 100
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy < r*r {
				img.Pix[y*img.Stride+x] = 30
			}
		}
	}

	n := NewNormalizer()
	rect := n.Normalize(img)
	if rect.Warped {
		t.Error("Expected no warp for a round outline")
	}
}

func TestRectified_Orientation(t *testing.T) {
	portrait := Rectified{Gray: image.NewGray(image.Rect(0, 0, 100, 200))}
	if got := portrait.Orientation(); got != "portrait" {
		t.Errorf("Expected portrait, got %s", got)
	}

	landscape := Rectified{Gray: image.NewGray(image.Rect(0, 0, 200, 100))}
	if got := landscape.Orientation(); got != "landscape" {
		t.Errorf("Expected landscape, got %s", got)
	}
}
