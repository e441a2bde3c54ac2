package sheet

import (
	"image"

	"github.com/tsawler/omrscan/internal/geom"
	"github.com/tsawler/omrscan/internal/raster"
)

// Normalizer rectifies photographed sheets. The zero value is not usable;
// construct with NewNormalizer and adjust the exported fields if the
// defaults do not suit the sheet stock being scanned.
type Normalizer struct {
	// Width and Height of the canonical output rectangle in pixels.
	Width  int
	Height int

	// ThresholdBlock is the neighborhood size for the adaptive
	// binarization used to separate sheet from background.
	ThresholdBlock int

	// ThresholdC is subtracted from the local mean during binarization.
	ThresholdC float64

	// ApproxEpsilon is the polygon approximation tolerance as a fraction
	// of the contour perimeter.
	ApproxEpsilon float64

	// ContrastClip and ContrastTiles control the adaptive contrast
	// enhancement applied to the rectified output. A ContrastClip of 0
	// disables enhancement.
	ContrastClip  float64
	ContrastTiles int

	// Denoise enables a morphological open/close pass on the
	// binarization used for outline detection.
	Denoise bool
}

// NewNormalizer creates a Normalizer with default settings.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Width:          CanonicalWidth,
		Height:         CanonicalHeight,
		ThresholdBlock: 11,
		ThresholdC:     2,
		ApproxEpsilon:  0.02,
		ContrastClip:   2.0,
		ContrastTiles:  8,
		Denoise:        false,
	}
}

// Normalize converts a decoded photo into a rectified grayscale sheet.
// It never fails: when the sheet outline cannot be resolved to four
// corners, the un-warped grayscale image is scaled to the canonical size
// instead.
func (n *Normalizer) Normalize(img image.Image) Rectified {
	gray := raster.ToGray(img)
	blurred := raster.GaussianBlur(gray)

	bin := raster.AdaptiveThreshold(blurred, n.ThresholdBlock, n.ThresholdC)
	if n.Denoise {
		bin = raster.Close(raster.Open(bin))
	}

	out := Rectified{Warped: false}

	if corners, ok := n.findCorners(bin); ok {
		if warped, err := warpPerspective(gray, corners, n.Width, n.Height); err == nil {
			out = Rectified{Gray: warped, Warped: true}
		}
	}

	if out.Gray == nil {
		out.Gray = scaleGray(gray, n.Width, n.Height)
	}

	if n.ContrastClip > 0 {
		out.Gray = raster.EnhanceContrast(out.Gray, n.ContrastClip, n.ContrastTiles)
	}
	return out
}

// NormalizeFile decodes the image at path and normalizes it.
func (n *Normalizer) NormalizeFile(path string) (Rectified, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return Rectified{}, err
	}
	return n.Normalize(img), nil
}

// findCorners locates the largest outline in the binarized photo and
// reports its four corners when the outline approximates a quadrilateral.
func (n *Normalizer) findCorners(bin *raster.Binary) ([4]geom.Point, bool) {
	var corners [4]geom.Point

	contour := geom.LargestContour(bin)
	if len(contour) < 4 {
		return corners, false
	}

	peri := geom.ArcLength(contour, true)
	approx := geom.ApproxPolygon(contour, n.ApproxEpsilon*peri)
	if len(approx) != 4 {
		return corners, false
	}

	copy(corners[:], approx)
	return geom.OrderCorners(corners), true
}
