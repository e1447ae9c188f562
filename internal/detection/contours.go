package detection

import (
	"image"
	"math"
)

// Minimum number of pixels for a connected component to be considered a
// contour at all; smaller groups are single-pixel noise.
const minContourPixels = 10

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Contour is a closed boundary curve extracted from a binary edge map.
// Points holds the boundary in traversal order, so the curve's enclosed
// area and perimeter are well defined.
type Contour struct {
	Points []Point
}

// Area returns the area enclosed by the contour in square pixels, computed
// with the shoelace formula over the ordered boundary.
func (c Contour) Area() float64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%n]
		sum += float64(p.X*q.Y - q.X*p.Y)
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the closed arc length of the contour: the sum of
// segment lengths between consecutive boundary points, including the
// closing segment back to the start.
func (c Contour) Perimeter() float64 {
	n := len(c.Points)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%n]
		dx := float64(q.X - p.X)
		dy := float64(q.Y - p.Y)
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

// BoundingRect returns the axis-aligned bounding rectangle of the contour.
func (c Contour) BoundingRect() image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	minX, minY := c.Points[0].X, c.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range c.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// FindContours extracts all contours from a binary edge map (nonzero pixels
// are edges).
//
// Edge pixels are grouped into 8-connected components by flood fill, and
// each component's outer boundary is traced in order so that area and
// perimeter measurements are meaningful. Contours are returned in discovery
// order: row-major scan order of each component's first pixel. The order is
// deterministic for a given edge map and defines the ordering of all
// downstream detections.
//
// Components smaller than 10 pixels are discarded as noise.
func FindContours(edges *image.Gray) []Contour {
	width := edges.Rect.Dx()
	height := edges.Rect.Dy()

	visited := make([]bool, width*height)
	isEdge := func(x, y int) bool {
		return x >= 0 && x < width && y >= 0 && y < height && edges.Pix[y*edges.Stride+x] != 0
	}

	contours := make([]Contour, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !isEdge(x, y) || visited[y*width+x] {
				continue
			}

			size := floodFill(edges, visited, x, y, width, height)
			if size < minContourPixels {
				continue
			}

			// (x, y) is the topmost-leftmost pixel of the component, which
			// is guaranteed to lie on its outer boundary.
			boundary := traceBoundary(isEdge, Point{X: x, Y: y}, size)
			contours = append(contours, Contour{Points: boundary})
		}
	}

	return contours
}

// floodFill marks the 8-connected component containing (startX, startY) as
// visited and returns its pixel count. Stack-based to avoid deep recursion
// on large contours.
func floodFill(edges *image.Gray, visited []bool, startX, startY, width, height int) int {
	stack := []Point{{X: startX, Y: startY}}
	size := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y*width+p.X] || edges.Pix[p.Y*edges.Stride+p.X] == 0 {
			continue
		}

		visited[p.Y*width+p.X] = true
		size++

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return size
}

// Clockwise 8-neighborhood offsets starting from west.
var mooreOffsets = [8]Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// traceBoundary walks the outer boundary of a connected component using
// Moore neighbor tracing, starting from its topmost-leftmost pixel. The
// start pixel's west and north neighbors are outside the component, which
// gives a valid initial backtrack direction.
//
// The walk terminates on the first return to the start pixel, which covers
// closed rings as well as degenerate one-pixel-wide components (those trace
// out and back). A safety bound proportional to the component size guards
// against pathological pixel arrangements.
func traceBoundary(isEdge func(x, y int) bool, start Point, componentSize int) []Point {
	boundary := []Point{start}

	current := start
	dir := 0 // Index into mooreOffsets; begin scanning from the west neighbor.
	limit := 4*componentSize + 8

	for step := 0; step < limit; step++ {
		found := false
		var nextDir int
		for i := 0; i < 8; i++ {
			d := (dir + i) % 8
			n := Point{X: current.X + mooreOffsets[d].X, Y: current.Y + mooreOffsets[d].Y}
			if isEdge(n.X, n.Y) {
				current = n
				nextDir = d
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel; boundary is the pixel itself.
			break
		}
		if current == start {
			break
		}
		boundary = append(boundary, current)

		// Resume scanning one step counterclockwise past the direction we
		// arrived from, i.e. from the backtrack position.
		dir = (nextDir + 6) % 8
	}

	return boundary
}

// ApproxPolygon simplifies a closed contour to a polygon using the
// Douglas-Peucker algorithm with the given distance tolerance. The contour
// is split at its start point and the point farthest from it, and each arc
// is simplified independently; for plate-like contours the surviving
// vertices are the corners.
func ApproxPolygon(points []Point, epsilon float64) []Point {
	n := len(points)
	if n < 3 {
		out := make([]Point, n)
		copy(out, points)
		return out
	}

	// Split the ring at the point farthest from the start.
	far := 0
	farDist := 0.0
	for i := 1; i < n; i++ {
		d := pointDistance(points[0], points[i])
		if d > farDist {
			farDist = d
			far = i
		}
	}

	secondArc := make([]Point, 0, n-far+1)
	secondArc = append(secondArc, points[far:]...)
	secondArc = append(secondArc, points[0])

	first := douglasPeucker(points[:far+1], epsilon)
	second := douglasPeucker(secondArc, epsilon)

	// Join the halves, dropping the duplicated split points.
	out := make([]Point, 0, len(first)+len(second)-2)
	out = append(out, first...)
	out = append(out, second[1:len(second)-1]...)
	return out
}

// douglasPeucker simplifies an open polyline, keeping endpoints and any
// point farther than epsilon from the chord.
func douglasPeucker(points []Point, epsilon float64) []Point {
	if len(points) < 3 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}

	a := points[0]
	b := points[len(points)-1]
	far := 0
	farDist := 0.0
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i], a, b)
		if d > farDist {
			farDist = d
			far = i
		}
	}

	if farDist <= epsilon {
		return []Point{a, b}
	}

	left := douglasPeucker(points[:far+1], epsilon)
	right := douglasPeucker(points[far:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance returns the distance from p to the line through a
// and b. Falls back to point distance when a == b.
func perpendicularDistance(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return pointDistance(p, a)
	}
	return math.Abs(dy*float64(p.X)-dx*float64(p.Y)+float64(b.X*a.Y)-float64(b.Y*a.X)) / length
}

func pointDistance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
