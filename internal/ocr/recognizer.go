// Package ocr defines the recognition capability the pipeline depends on
// and provides a Tesseract-backed implementation of it.
//
// The pipeline treats the engine as an opaque, possibly slow, possibly
// inaccurate oracle: it hands over an image crop and gets back zero or more
// text reads with confidences. Test code substitutes a mock Recognizer;
// production wiring uses the gosseract engine.
//
// # Prerequisites
//
// The Tesseract engine requires the tesseract library and language data on
// the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
package ocr

import "image"

// Recognition is one text read returned by an engine for a crop: the raw
// text, the engine's self-reported confidence in [0,1], and the bounding
// box of the read within the crop. Results are ephemeral; the caller
// filters and discards them immediately.
type Recognition struct {
	Text       string
	Confidence float64
	Bounds     image.Rectangle
}

// Recognizer is the capability interface for an external OCR engine.
//
// Recognize may return an empty slice when the crop contains no legible
// text; that is a normal outcome, not an error. An engine may be slow and
// provides no timeout of its own; hosts that need one must impose it
// externally.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Recognizer interface {
	Recognize(crop image.Image) ([]Recognition, error)
	Close() error
}
