package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPlateImage creates a dark frame with a filled bright rectangle
func createPlateImage(width, height int, rect image.Rectangle) *image.RGBA {
	img := createTestImage(width, height, color.Black)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestPrepareDimensions(t *testing.T) {
	frame := createTestImage(320, 240, color.RGBA{R: 120, G: 140, B: 90, A: 255})

	gray, err := Prepare(frame)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if gray.Rect.Dx() != 320 || gray.Rect.Dy() != 240 {
		t.Errorf("output is %dx%d, want 320x240", gray.Rect.Dx(), gray.Rect.Dy())
	}
}

func TestPrepareRejectsInvalidFrame(t *testing.T) {
	if _, err := Prepare(nil); err == nil {
		t.Error("expected error for nil frame")
	}
	if _, err := Prepare(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected error for zero-area frame")
	}
}

// A constant black frame must stay dark: the clip limit stops adaptive
// equalization from blowing flat regions out to full range.
func TestPrepareBlackFrameStaysDark(t *testing.T) {
	frame := createTestImage(320, 240, color.Black)

	gray, err := Prepare(frame)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	for y := 0; y < 240; y += 16 {
		for x := 0; x < 320; x += 16 {
			if v := gray.GrayAt(x, y).Y; v > 30 {
				t.Fatalf("black frame pixel (%d,%d) = %d after preprocessing, want near 0", x, y, v)
			}
		}
	}
}

// The bilateral filter must not smear a strong step edge away.
func TestPreparePreservesStrongEdges(t *testing.T) {
	rect := image.Rect(40, 88, 280, 152)
	frame := createPlateImage(320, 240, rect)

	gray, err := Prepare(frame)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	// Sample well inside and well outside the bright rectangle, away from
	// the transition band.
	inside := gray.GrayAt(160, 120).Y
	outside := gray.GrayAt(10, 10).Y
	if int(inside)-int(outside) < 150 {
		t.Errorf("edge contrast collapsed: inside=%d outside=%d", inside, outside)
	}
}

func TestPrepareDoesNotMutateInput(t *testing.T) {
	frame := createPlateImage(320, 240, image.Rect(40, 88, 280, 152))
	before := *frame
	beforePix := make([]uint8, len(frame.Pix))
	copy(beforePix, frame.Pix)

	if _, err := Prepare(frame); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if frame.Rect != before.Rect {
		t.Error("input bounds changed")
	}
	for i := range frame.Pix {
		if frame.Pix[i] != beforePix[i] {
			t.Fatalf("input pixel data mutated at offset %d", i)
		}
	}
}
