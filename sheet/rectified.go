package sheet

import "image"

// Canonical dimensions of a rectified sheet in pixels.
const (
	CanonicalWidth  = 800
	CanonicalHeight = 1000
)

// Rectified is a normalized grayscale sheet image. It is produced once by
// a Normalizer, consumed by the mark extractor, and never mutated.
type Rectified struct {
	// Gray holds the pixel data. Its bounds always start at the origin.
	Gray *image.Gray

	// Warped reports whether a four-corner perspective correction was
	// applied. False means the fallback path was taken and the image is
	// the original grayscale scaled to canonical size.
	Warped bool
}

// Width returns the pixel width of the rectified sheet.
func (r Rectified) Width() int {
	return r.Gray.Rect.Dx()
}

// Height returns the pixel height of the rectified sheet.
func (r Rectified) Height() int {
	return r.Gray.Rect.Dy()
}

// Orientation reports "portrait" or "landscape" based on the aspect ratio.
func (r Rectified) Orientation() string {
	if r.Height() > r.Width() {
		return "portrait"
	}
	return "landscape"
}
