package imaging

import (
	"image"
	"image/color"
	"testing"
)

// grayFrame creates a grayscale image filled with a single value
func grayFrame(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// grayRect fills a rectangle of a grayscale image with a value
func grayRect(img *image.Gray, rect image.Rectangle, v uint8) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

func countEdges(edges *image.Gray) int {
	count := 0
	for _, v := range edges.Pix {
		if v != 0 {
			count++
		}
	}
	return count
}

func TestEdgeMapSolidImage(t *testing.T) {
	gray := grayFrame(200, 100, 128)

	edges := EdgeMap(gray, 30, 200)
	if n := countEdges(edges); n != 0 {
		t.Errorf("solid image produced %d edge pixels, want 0", n)
	}
}

func TestEdgeMapDimensions(t *testing.T) {
	gray := grayFrame(200, 100, 0)

	edges := EdgeMap(gray, 30, 200)
	if edges.Rect.Dx() != 200 || edges.Rect.Dy() != 100 {
		t.Errorf("edge map is %dx%d, want 200x100", edges.Rect.Dx(), edges.Rect.Dy())
	}
}

func TestEdgeMapRectangleBoundary(t *testing.T) {
	gray := grayFrame(320, 240, 0)
	rect := image.Rect(40, 88, 280, 152)
	grayRect(gray, rect, 255)

	edges := EdgeMap(gray, 30, 200)

	if n := countEdges(edges); n == 0 {
		t.Fatal("high-contrast rectangle produced no edges")
	}

	// Edges must hug the rectangle boundary: nothing deep inside or far
	// outside it.
	if v := edges.GrayAt(160, 120).Y; v != 0 {
		t.Error("edge pixel found at rectangle center")
	}
	if v := edges.GrayAt(10, 10).Y; v != 0 {
		t.Error("edge pixel found in far background")
	}

	// Each side's midpoint must have an edge within a few pixels.
	midpoints := []image.Point{
		{X: 160, Y: rect.Min.Y}, // top
		{X: 160, Y: rect.Max.Y}, // bottom
		{X: rect.Min.X, Y: 120}, // left
		{X: rect.Max.X, Y: 120}, // right
	}
	for _, m := range midpoints {
		found := false
		for dy := -3; dy <= 3 && !found; dy++ {
			for dx := -3; dx <= 3 && !found; dx++ {
				if edges.GrayAt(m.X+dx, m.Y+dy).Y != 0 {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("no edge near boundary midpoint %v", m)
		}
	}
}

// countComponents groups the edge pixels of a map into 8-connected
// components.
func countComponents(edges *image.Gray) int {
	width := edges.Rect.Dx()
	height := edges.Rect.Dy()
	visited := make([]bool, width*height)

	components := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.Pix[y*edges.Stride+x] == 0 || visited[y*width+x] {
				continue
			}
			components++
			stack := []image.Point{{X: x, Y: y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
					continue
				}
				if edges.Pix[p.Y*edges.Stride+p.X] == 0 || visited[p.Y*width+p.X] {
					continue
				}
				visited[p.Y*width+p.X] = true
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
					}
				}
			}
		}
	}
	return components
}

func TestEdgeMapRectangleRingConnected(t *testing.T) {
	gray := grayFrame(320, 240, 0)
	rect := image.Rect(40, 88, 280, 152)
	grayRect(gray, rect, 255)

	edges := EdgeMap(gray, 30, 200)

	// The boundary must survive at the corners, where non-maximum
	// suppression thins against diagonal neighbors.
	corners := []image.Point{
		{X: rect.Min.X, Y: rect.Min.Y},
		{X: rect.Max.X, Y: rect.Min.Y},
		{X: rect.Min.X, Y: rect.Max.Y},
		{X: rect.Max.X, Y: rect.Max.Y},
	}
	for _, c := range corners {
		found := false
		for dy := -3; dy <= 3 && !found; dy++ {
			for dx := -3; dx <= 3 && !found; dx++ {
				if edges.GrayAt(c.X+dx, c.Y+dy).Y != 0 {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("no edge near corner %v", c)
		}
	}

	// One rectangle must yield one closed ring, not four disconnected side
	// strokes; contour extraction depends on this.
	if n := countComponents(edges); n != 1 {
		t.Errorf("rectangle boundary split into %d components, want 1", n)
	}
}

func TestEdgeMapThresholdOrdering(t *testing.T) {
	gray := grayFrame(320, 240, 0)
	grayRect(gray, image.Rect(40, 88, 280, 152), 255)

	// A permissive low threshold must never produce fewer edges than a
	// strict high threshold.
	loose := countEdges(EdgeMap(gray, 10, 60))
	strict := countEdges(EdgeMap(gray, 100, 240))
	if loose < strict {
		t.Errorf("loose thresholds found %d edges, strict found %d", loose, strict)
	}
}
