package sheet

import (
	"image"

	"github.com/nfnt/resize"

	"github.com/tsawler/omrscan/internal/geom"
	"github.com/tsawler/omrscan/internal/raster"
)

// warpPerspective resamples the source grayscale image so the four
// ordered corners (top-left, top-right, bottom-right, bottom-left) land
// on the corners of a w x h rectangle. Destination pixels are produced by
// mapping through the inverse transform and sampling the source
// bilinearly.
func warpPerspective(src *image.Gray, corners [4]geom.Point, w, h int) (*image.Gray, error) {
	dst := [4]geom.Point{
		{X: 0, Y: 0},
		{X: float64(w), Y: 0},
		{X: float64(w), Y: float64(h)},
		{X: 0, Y: float64(h)},
	}

	m, err := geom.PerspectiveTransform(corners, dst)
	if err != nil {
		return nil, err
	}
	inv, err := m.Invert()
	if err != nil {
		return nil, err
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sp := inv.Apply(geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			out.Pix[y*out.Stride+x] = sampleBilinear(src, sp.X-0.5, sp.Y-0.5)
		}
	}
	return out, nil
}

// sampleBilinear samples the source at a fractional coordinate, clamping
// to the image bounds so corner pixels extend past the edge.
func sampleBilinear(src *image.Gray, fx, fy float64) uint8 {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	x0 := int(fx)
	y0 := int(fy)
	if fx < 0 {
		x0 = 0
		fx = 0
	}
	if fy < 0 {
		y0 = 0
		fy = 0
	}
	if x0 >= w-1 {
		x0 = w - 2
		if x0 < 0 {
			x0 = 0
		}
	}
	if y0 >= h-1 {
		y0 = h - 2
		if y0 < 0 {
			y0 = 0
		}
	}
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 >= w {
		x1 = w - 1
	}
	if y1 >= h {
		y1 = h - 1
	}

	wx := fx - float64(x0)
	wy := fy - float64(y0)
	if wx < 0 {
		wx = 0
	} else if wx > 1 {
		wx = 1
	}
	if wy < 0 {
		wy = 0
	} else if wy > 1 {
		wy = 1
	}

	at := func(x, y int) float64 {
		return float64(src.GrayAt(src.Rect.Min.X+x, src.Rect.Min.Y+y).Y)
	}
	top := (1-wx)*at(x0, y0) + wx*at(x1, y0)
	bottom := (1-wx)*at(x0, y1) + wx*at(x1, y1)
	return uint8((1-wy)*top + wy*bottom + 0.5)
}

// scaleGray scales a grayscale image to exactly w x h. Used on the
// fallback path so downstream grid partitioning always sees canonical
// dimensions.
func scaleGray(src *image.Gray, w, h int) *image.Gray {
	if src.Rect.Dx() == w && src.Rect.Dy() == h {
		return src
	}
	scaled := resize.Resize(uint(w), uint(h), src, resize.Bilinear)
	return raster.ToGray(scaled)
}
