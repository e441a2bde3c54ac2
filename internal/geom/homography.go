package geom

import (
	"fmt"
	"math"
)

// Homography is a 3x3 projective transform in row-major order, normalized
// so the bottom-right element is 1.
type Homography [9]float64

// Apply maps a point through the homography.
func (m Homography) Apply(p Point) Point {
	w := m[6]*p.X + m[7]*p.Y + m[8]
	if w == 0 {
		w = 1e-12
	}
	return Point{
		X: (m[0]*p.X + m[1]*p.Y + m[2]) / w,
		Y: (m[3]*p.X + m[4]*p.Y + m[5]) / w,
	}
}

// Invert returns the inverse homography via the adjugate matrix.
func (m Homography) Invert() (Homography, error) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < 1e-12 {
		return Homography{}, fmt.Errorf("homography is singular")
	}

	inv := Homography{
		(e*i - f*h) / det, (c*h - b*i) / det, (b*f - c*e) / det,
		(f*g - d*i) / det, (a*i - c*g) / det, (c*d - a*f) / det,
		(d*h - e*g) / det, (b*g - a*h) / det, (a*e - b*d) / det,
	}
	return inv, nil
}

// PerspectiveTransform computes the homography that maps the four src
// points onto the four dst points, in corresponding order. It solves the
// standard 8-unknown direct linear system with Gaussian elimination.
func PerspectiveTransform(src, dst [4]Point) (Homography, error) {
	// Each correspondence contributes two rows:
	//   x' = (h0 x + h1 y + h2) / (h6 x + h7 y + 1)
	//   y' = (h3 x + h4 y + h5) / (h6 x + h7 y + 1)
	var a [8][9]float64
	for i := 0; i < 4; i++ {
		s, d := src[i], dst[i]
		a[2*i] = [9]float64{s.X, s.Y, 1, 0, 0, 0, -s.X * d.X, -s.Y * d.X, d.X}
		a[2*i+1] = [9]float64{0, 0, 0, s.X, s.Y, 1, -s.X * d.Y, -s.Y * d.Y, d.Y}
	}

	h, err := solve8(a)
	if err != nil {
		return Homography{}, err
	}

	return Homography{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, nil
}

// solve8 solves an 8x8 linear system given as an augmented matrix, using
// Gaussian elimination with partial pivoting.
func solve8(a [8][9]float64) ([8]float64, error) {
	var x [8]float64

	for col := 0; col < 8; col++ {
		// Pivot selection.
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return x, fmt.Errorf("degenerate point configuration")
		}
		a[col], a[pivot] = a[pivot], a[col]

		// Eliminate below.
		for row := col + 1; row < 8; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < 9; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}

	// Back substitution.
	for row := 7; row >= 0; row-- {
		sum := a[row][8]
		for k := row + 1; k < 8; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}

	return x, nil
}

// OrderCorners arranges four arbitrary corner points as top-left,
// top-right, bottom-right, bottom-left. The top-left corner has the
// smallest x+y sum and the bottom-right the largest; the remaining two are
// separated by the sign of x-y.
func OrderCorners(pts [4]Point) [4]Point {
	var ordered [4]Point

	sumMin, sumMax := pts[0], pts[0]
	diffMin, diffMax := pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X+p.Y < sumMin.X+sumMin.Y {
			sumMin = p
		}
		if p.X+p.Y > sumMax.X+sumMax.Y {
			sumMax = p
		}
		if p.X-p.Y > diffMax.X-diffMax.Y {
			diffMax = p
		}
		if p.X-p.Y < diffMin.X-diffMin.Y {
			diffMin = p
		}
	}

	ordered[0] = sumMin  // top-left
	ordered[1] = diffMax // top-right
	ordered[2] = sumMax  // bottom-right
	ordered[3] = diffMin // bottom-left
	return ordered
}
