package imaging

import (
	"hash/fnv"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Stroke width of annotation rectangles, and the vertical offset of the
// label above the rectangle origin.
const (
	strokeWidth = 2
	labelOffset = 10
)

// Annotation describes one box to draw onto a frame: the detected region,
// its label text, and the country used to pick the annotation color.
type Annotation struct {
	Rect    image.Rectangle
	Label   string
	Country string
}

// Annotate draws bounding rectangles and labels for the given detections
// onto a copy of the frame. The source frame is never modified; the
// returned RGBA image is safe for the caller to keep or encode after the
// frame itself has been released.
//
// Each annotation is drawn as a 2-pixel rectangle outline with its label
// rendered 10 pixels above the rectangle origin, in a color derived from
// the detected country so that detections from different countries are
// visually distinct.
func Annotate(frame image.Image, annotations []Annotation) *image.RGBA {
	out := clone.AsRGBA(frame)

	for _, a := range annotations {
		col := CountryColor(a.Country)
		rect := a.Rect.Intersect(out.Bounds())
		if rect.Empty() {
			continue
		}

		drawRect(out, rect, col)

		labelY := rect.Min.Y - labelOffset
		if labelY < basicfont.Face7x13.Ascent {
			// Label would fall off the top of the frame; draw inside instead.
			labelY = rect.Min.Y + basicfont.Face7x13.Ascent + strokeWidth
		}
		drawLabel(out, rect.Min.X, labelY, a.Label, col)
	}

	return out
}

// CountryColor returns a stable, saturated annotation color for a country
// label. The hue is derived from a hash of the name so the same country
// always draws in the same color across frames and runs.
func CountryColor(country string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(country))
	hue := float64(h.Sum32() % 360)

	c := colorful.Hsv(hue, 0.85, 0.90)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawRect strokes a rectangle outline with the configured stroke width.
// The stroke grows inward so the annotated box never exceeds the region.
func drawRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	for i := 0; i < strokeWidth; i++ {
		r := rect.Inset(i)
		if r.Dx() <= 0 || r.Dy() <= 0 {
			return
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, r.Min.Y, col)
			img.SetRGBA(x, r.Max.Y-1, col)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.SetRGBA(r.Min.X, y, col)
			img.SetRGBA(r.Max.X-1, y, col)
		}
	}
}

// drawLabel renders text at the given baseline position using the fixed
// 7x13 bitmap face.
func drawLabel(img *image.RGBA, x, y int, text string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
