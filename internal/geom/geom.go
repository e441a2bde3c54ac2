// Package geom provides the geometric primitives used by sheet
// normalization and mark extraction: 2D points, polygon metrics,
// border tracing on binary rasters, polygon simplification, and the
// perspective (homography) transform.
package geom

import "math"

// Point represents a 2D point in image coordinates (Y grows downward).
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ArcLength returns the perimeter of a polyline. When closed is true the
// segment from the last point back to the first is included.
func ArcLength(pts []Point, closed bool) float64 {
	if len(pts) < 2 {
		return 0
	}

	length := 0.0
	for i := 1; i < len(pts); i++ {
		length += pts[i].Distance(pts[i-1])
	}
	if closed {
		length += pts[0].Distance(pts[len(pts)-1])
	}
	return length
}

// PolygonArea returns the absolute area of a closed polygon using the
// shoelace formula.
func PolygonArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}

	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// Circularity returns 4*pi*area/perimeter^2 for a closed contour.
// A perfect circle scores 1.0; elongated or ragged shapes score lower.
func Circularity(pts []Point) float64 {
	peri := ArcLength(pts, true)
	if peri == 0 {
		return 0
	}
	return 4 * math.Pi * PolygonArea(pts) / (peri * peri)
}

// ApproxPolygon simplifies a closed contour with the Douglas-Peucker
// algorithm. Epsilon is the maximum allowed deviation of dropped points
// from the simplified outline, in pixels.
func ApproxPolygon(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 || epsilon <= 0 {
		return pts
	}

	// Split the closed contour at the two mutually most distant points so
	// each half can be simplified as an open polyline.
	first, second := farthestPair(pts)
	if first > second {
		first, second = second, first
	}

	half1 := pts[first : second+1]
	half2 := append(append([]Point{}, pts[second:]...), pts[:first+1]...)

	out := douglasPeucker(half1, epsilon)
	tail := douglasPeucker(half2, epsilon)

	// Both halves share their endpoints; drop the duplicates when joining.
	if len(tail) > 2 {
		out = append(out, tail[1:len(tail)-1]...)
	}
	return out
}

// farthestPair returns the indices of the two most distant points.
// For contours with hundreds of points an approximation is enough: the
// point farthest from pts[0], then the point farthest from that one.
func farthestPair(pts []Point) (int, int) {
	a := 0
	best := 0.0
	for i, p := range pts {
		if d := p.Distance(pts[0]); d > best {
			best = d
			a = i
		}
	}

	b := 0
	best = 0.0
	for i, p := range pts {
		if d := p.Distance(pts[a]); d > best {
			best = d
			b = i
		}
	}
	return a, b
}

// douglasPeucker simplifies an open polyline.
func douglasPeucker(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 {
		return pts
	}

	// Find the point with the maximum distance from the chord.
	maxDist := 0.0
	index := 0
	for i := 1; i < len(pts)-1; i++ {
		d := perpendicularDistance(pts[i], pts[0], pts[len(pts)-1])
		if d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist <= epsilon {
		return []Point{pts[0], pts[len(pts)-1]}
	}

	left := douglasPeucker(pts[:index+1], epsilon)
	right := douglasPeucker(pts[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance returns the distance from p to the line through a and b.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	norm := math.Sqrt(dx*dx + dy*dy)
	if norm == 0 {
		return p.Distance(a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / norm
}
