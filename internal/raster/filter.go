package raster

import "image"

// gaussian5 is the separable 5-tap binomial kernel, matching a 5x5
// Gaussian blur with sigma derived from the kernel size.
var gaussian5 = [5]int{1, 4, 6, 4, 1}

// GaussianBlur applies a 5x5 Gaussian smoothing filter. Edges are handled
// by clamping sample coordinates to the image bounds.
func GaussianBlur(img *image.Gray) *image.Gray {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	clamp := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v >= max {
			return max - 1
		}
		return v
	}

	// Horizontal pass.
	tmp := make([]uint16, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for k := -2; k <= 2; k++ {
				sum += gaussian5[k+2] * int(img.GrayAt(img.Rect.Min.X+clamp(x+k, w), img.Rect.Min.Y+y).Y)
			}
			tmp[y*w+x] = uint16(sum / 16)
		}
	}

	// Vertical pass.
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for k := -2; k <= 2; k++ {
				sum += gaussian5[k+2] * int(tmp[clamp(y+k, h)*w+x])
			}
			out.Pix[y*out.Stride+x] = uint8(sum / 16)
		}
	}
	return out
}

// AdaptiveThreshold binarizes a grayscale image against the local mean of
// a block x block neighborhood, minus the constant c. The output is
// inverted: pixels darker than the local mean become foreground, so ink
// reads as true on a light sheet.
func AdaptiveThreshold(img *image.Gray, block int, c float64) *Binary {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	out := NewBinary(w, h)
	if w == 0 || h == 0 {
		return out
	}

	integral := Integral(img)
	half := block / 2

	for y := 0; y < h; y++ {
		y0 := y - half
		if y0 < 0 {
			y0 = 0
		}
		y1 := y + half + 1
		if y1 > h {
			y1 = h
		}
		for x := 0; x < w; x++ {
			x0 := x - half
			if x0 < 0 {
				x0 = 0
			}
			x1 := x + half + 1
			if x1 > w {
				x1 = w
			}

			area := uint64((x1 - x0) * (y1 - y0))
			sum := integral[y1][x1] - integral[y0][x1] - integral[y1][x0] + integral[y0][x0]
			mean := float64(sum) / float64(area)

			v := float64(img.GrayAt(img.Rect.Min.X+x, img.Rect.Min.Y+y).Y)
			out.Pix[y*w+x] = v <= mean-c
		}
	}
	return out
}

// Threshold binarizes against a fixed cutoff, inverted: pixels at or
// below the cutoff become foreground.
func Threshold(img *image.Gray, cutoff uint8) *Binary {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	out := NewBinary(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*w+x] = img.GrayAt(img.Rect.Min.X+x, img.Rect.Min.Y+y).Y <= cutoff
		}
	}
	return out
}

// Erode applies a 3x3 erosion: a foreground pixel survives only if all
// of its 8 neighbors (clamped at borders) are foreground.
func Erode(b *Binary) *Binary {
	return morph(b, true)
}

// Dilate applies a 3x3 dilation: a pixel becomes foreground if any of
// its 8 neighbors is foreground.
func Dilate(b *Binary) *Binary {
	return morph(b, false)
}

// Open removes speckle noise: erosion followed by dilation.
func Open(b *Binary) *Binary {
	return Dilate(Erode(b))
}

// Close fills small holes: dilation followed by erosion.
func Close(b *Binary) *Binary {
	return Erode(Dilate(b))
}

func morph(b *Binary, erode bool) *Binary {
	out := NewBinary(b.W, b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			v := erode
			for dy := -1; dy <= 1 && v == erode; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= b.W || ny >= b.H {
						continue
					}
					if erode && !b.Pix[ny*b.W+nx] {
						v = false
						break
					}
					if !erode && b.Pix[ny*b.W+nx] {
						v = true
						break
					}
				}
			}
			out.Pix[y*b.W+x] = v
		}
	}
	return out
}
