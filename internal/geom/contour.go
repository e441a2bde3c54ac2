package geom

// Raster is the minimal view of a binary image needed for border tracing.
// Foreground pixels are those reported true by At.
type Raster interface {
	Size() (w, h int)
	At(x, y int) bool
}

// Contour is a closed sequence of boundary points in traversal order.
type Contour []Point

// Moore neighborhood in clockwise order starting from west.
var neighborhood = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// FindContours traces the outer boundary of every foreground region in a
// binary raster using Moore-neighbor tracing with Jacob's stopping
// criterion. Only external contours are returned; holes are ignored,
// which matches how the mark and sheet detectors use them.
func FindContours(r Raster) []Contour {
	w, h := r.Size()
	visited := make([]bool, w*h)

	var contours []Contour

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !r.At(x, y) || visited[y*w+x] {
				continue
			}
			// Scanning left to right, top to bottom: the first unvisited
			// foreground pixel of a region is on its outer boundary.
			c := traceBoundary(r, x, y)
			for _, p := range c {
				visited[int(p.Y)*w+int(p.X)] = true
			}
			contours = append(contours, c)
			markRegion(r, x, y, visited, w, h)
		}
	}

	return contours
}

// LargestContour returns the external contour enclosing the greatest area,
// or nil if the raster has no foreground pixels.
func LargestContour(r Raster) Contour {
	var best Contour
	bestArea := -1.0
	for _, c := range FindContours(r) {
		if a := PolygonArea(c); a > bestArea {
			bestArea = a
			best = c
		}
	}
	return best
}

// traceBoundary walks the outer boundary of the region containing the
// start pixel, clockwise, and returns the boundary points.
func traceBoundary(r Raster, sx, sy int) Contour {
	w, h := r.Size()

	contour := Contour{{X: float64(sx), Y: float64(sy)}}
	// Entered the start pixel from the west during the raster scan.
	cx, cy := sx, sy
	backtrack := 0

	for {
		found := false
		for i := 0; i < 8; i++ {
			dir := (backtrack + i) % 8
			nx := cx + neighborhood[dir][0]
			ny := cy + neighborhood[dir][1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h || !r.At(nx, ny) {
				continue
			}

			// Next backtrack direction points at the previously checked
			// (background) neighbor, i.e. one step counterclockwise.
			backtrack = (dir + 5) % 8
			cx, cy = nx, ny
			found = true
			break
		}

		if !found {
			// Isolated single pixel.
			return contour
		}
		if cx == sx && cy == sy {
			return contour
		}
		contour = append(contour, Point{X: float64(cx), Y: float64(cy)})

		if len(contour) > 4*w*h {
			// Tracing cannot legitimately visit more points than this;
			// bail out rather than loop forever on pathological input.
			return contour
		}
	}
}

// markRegion flood-fills the visited mask for a foreground region so the
// scan does not re-trace it from an interior pixel.
func markRegion(r Raster, sx, sy int, visited []bool, w, h int) {
	stack := [][2]int{{sx, sy}}
	visited[sy*w+sx] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if !r.At(nx, ny) || visited[ny*w+nx] {
				continue
			}
			visited[ny*w+nx] = true
			stack = append(stack, [2]int{nx, ny})
		}
	}
}
