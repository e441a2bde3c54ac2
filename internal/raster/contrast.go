package raster

import "image"

// EnhanceContrast performs contrast-limited adaptive histogram
// equalization. The image is divided into tiles x tiles regions, each
// region's histogram is clipped at clipLimit times the uniform bin height
// before building its equalization mapping, and per-pixel output is
// bilinearly interpolated between the four nearest tile mappings to avoid
// visible tile seams.
func EnhanceContrast(img *image.Gray, clipLimit float64, tiles int) *image.Gray {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 || tiles < 1 {
		return img
	}

	tileW := (w + tiles - 1) / tiles
	tileH := (h + tiles - 1) / tiles

	// Build a clipped equalization lookup table per tile.
	luts := make([][256]uint8, tiles*tiles)
	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)
			luts[ty*tiles+tx] = tileLUT(img, x0, y0, x1, y1, clipLimit)
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		// Tile-space position of the pixel relative to tile centers.
		fy := (float64(y)-float64(tileH)/2 + 0.5) / float64(tileH)
		ty0 := clampInt(int(fy), 0, tiles-1)
		ty1 := clampInt(ty0+1, 0, tiles-1)
		wy := fy - float64(ty0)
		if wy < 0 {
			wy = 0
		} else if wy > 1 {
			wy = 1
		}

		for x := 0; x < w; x++ {
			fx := (float64(x)-float64(tileW)/2 + 0.5) / float64(tileW)
			tx0 := clampInt(int(fx), 0, tiles-1)
			tx1 := clampInt(tx0+1, 0, tiles-1)
			wx := fx - float64(tx0)
			if wx < 0 {
				wx = 0
			} else if wx > 1 {
				wx = 1
			}

			v := img.GrayAt(img.Rect.Min.X+x, img.Rect.Min.Y+y).Y
			top := (1-wx)*float64(luts[ty0*tiles+tx0][v]) + wx*float64(luts[ty0*tiles+tx1][v])
			bottom := (1-wx)*float64(luts[ty1*tiles+tx0][v]) + wx*float64(luts[ty1*tiles+tx1][v])
			out.Pix[y*out.Stride+x] = uint8((1-wy)*top + wy*bottom + 0.5)
		}
	}
	return out
}

// tileLUT builds the clipped-histogram equalization mapping for one tile.
func tileLUT(img *image.Gray, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var lut [256]uint8
	area := (x1 - x0) * (y1 - y0)
	if area == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	var hist [256]int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[img.GrayAt(img.Rect.Min.X+x, img.Rect.Min.Y+y).Y]++
		}
	}

	// Clip the histogram and redistribute the excess uniformly.
	limit := int(clipLimit * float64(area) / 256)
	if limit < 1 {
		limit = 1
	}
	excess := 0
	for i, count := range hist {
		if count > limit {
			excess += count - limit
			hist[i] = limit
		}
	}
	batch := excess / 256
	for i := range hist {
		hist[i] += batch
	}
	// Spread the residual one count at a time over evenly spaced bins.
	if residual := excess % 256; residual > 0 {
		step := 256 / residual
		if step < 1 {
			step = 1
		}
		for i, given := 0, 0; i < 256 && given < residual; i += step {
			hist[i]++
			given++
		}
	}

	// Cumulative mapping.
	cum := 0
	for i, count := range hist {
		cum += count
		lut[i] = uint8(cum * 255 / area)
	}
	return lut
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
