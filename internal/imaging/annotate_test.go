package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestAnnotateDrawsRectangle(t *testing.T) {
	frame := createTestImage(320, 240, color.Black)
	rect := image.Rect(40, 88, 280, 152)

	out := Annotate(frame, []Annotation{
		{Rect: rect, Label: "AB12CD3456 (India) 0.90", Country: "India"},
	})

	want := CountryColor("India")
	corners := []image.Point{
		{X: rect.Min.X, Y: rect.Min.Y},
		{X: rect.Max.X - 1, Y: rect.Min.Y},
		{X: rect.Min.X, Y: rect.Max.Y - 1},
		{X: rect.Max.X - 1, Y: rect.Max.Y - 1},
	}
	for _, p := range corners {
		if got := out.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("corner %v = %v, want %v", p, got, want)
		}
	}

	// Interior stays untouched.
	if got := out.RGBAAt(160, 120); got != (color.RGBA{A: 255}) {
		t.Errorf("interior pixel = %v, want black", got)
	}
}

func TestAnnotateDoesNotMutateFrame(t *testing.T) {
	frame := createTestImage(100, 100, color.Black)

	Annotate(frame, []Annotation{
		{Rect: image.Rect(10, 10, 90, 40), Label: "TEST", Country: "USA"},
	})

	if got := frame.RGBAAt(10, 10); got != (color.RGBA{A: 255}) {
		t.Errorf("source frame was mutated: pixel (10,10) = %v", got)
	}
}

func TestAnnotateNoAnnotations(t *testing.T) {
	frame := createTestImage(50, 50, color.White)

	out := Annotate(frame, nil)
	if out == nil {
		t.Fatal("expected a frame copy, got nil")
	}
	if got := out.RGBAAt(25, 25); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("copied pixel = %v, want white", got)
	}
}

func TestAnnotateLabelNearTopEdge(t *testing.T) {
	frame := createTestImage(200, 100, color.Black)

	// Rectangle at the very top: the label must be moved inside instead of
	// panicking or drawing off-frame.
	out := Annotate(frame, []Annotation{
		{Rect: image.Rect(0, 0, 150, 40), Label: "XYZ123 (USA) 0.50", Country: "USA"},
	})
	if out == nil {
		t.Fatal("expected annotated frame")
	}
}

func TestCountryColorStable(t *testing.T) {
	first := CountryColor("India")
	for i := 0; i < 10; i++ {
		if got := CountryColor("India"); got != first {
			t.Fatalf("CountryColor not stable: %v then %v", first, got)
		}
	}
	if first.A != 255 {
		t.Errorf("annotation color alpha = %d, want 255", first.A)
	}
}
