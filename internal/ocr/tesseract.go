package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Crops shorter than this are upscaled before OCR; Tesseract's accuracy
// drops sharply below roughly 30px character height.
const minOCRHeight = 64

// TesseractRecognizer runs OCR through the system Tesseract installation
// via gosseract. A fresh client is created per call, so the recognizer
// itself is stateless and safe for concurrent use.
type TesseractRecognizer struct {
	language string
}

// NewTesseractRecognizer returns a recognizer using the given Tesseract
// language code (e.g. "eng"). An empty language defaults to English.
func NewTesseractRecognizer(language string) *TesseractRecognizer {
	if language == "" {
		language = "eng"
	}
	return &TesseractRecognizer{language: language}
}

// Recognize extracts text lines from an image crop.
//
// The crop is written to a temporary PNG (Tesseract wants a file path),
// upscaled first when it is too small for reliable recognition, and read
// at text-line granularity so a plate that Tesseract segments into several
// lines yields several results. Confidence scores are rescaled from
// Tesseract's 0-100 range to [0,1]. Empty reads are filtered out.
func (t *TesseractRecognizer) Recognize(crop image.Image) ([]Recognition, error) {
	scale := 1
	if h := crop.Bounds().Dy(); h > 0 && h < minOCRHeight {
		scale = (minOCRHeight + h - 1) / h
		crop = imaging.Resize(crop, crop.Bounds().Dx()*scale, crop.Bounds().Dy()*scale, imaging.Lanczos)
	}

	tmpFile, err := os.CreateTemp("", "plate-crop-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, crop); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	results := make([]Recognition, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		// Map bounds back into the unscaled crop.
		bounds := image.Rect(
			box.Box.Min.X/scale, box.Box.Min.Y/scale,
			box.Box.Max.X/scale, box.Box.Max.Y/scale,
		)
		results = append(results, Recognition{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     bounds,
		})
	}

	return results, nil
}

// Close releases engine resources. Clients are per-call, so there is
// nothing held between calls.
func (t *TesseractRecognizer) Close() error {
	return nil
}
