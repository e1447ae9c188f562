// Package plates holds the text side of plate detection: OCR acceptance
// filtering, the country format pattern table, and the detection record
// emitted per accepted plate.
package plates

import "fmt"

// DetectedPlate is the unit of pipeline output: one accepted OCR read with
// its inferred country. Immutable after creation; collected per frame in
// contour discovery order, not sorted by confidence.
type DetectedPlate struct {
	// Text is the normalized plate text (alphanumerics and spaces only).
	Text string `json:"text"`

	// Country is the matched country label, or "Unknown".
	Country string `json:"country"`

	// Confidence is the OCR engine's self-reported confidence in [0,1].
	Confidence float64 `json:"confidence"`
}

// Label renders the annotation label drawn next to the plate's bounding
// box.
func (p DetectedPlate) Label() string {
	return fmt.Sprintf("%s (%s) %.2f", p.Text, p.Country, p.Confidence)
}

// String renders the per-detection log record.
func (p DetectedPlate) String() string {
	return fmt.Sprintf("Detected Plate: %s - Country: %s - Confidence: %.2f", p.Text, p.Country, p.Confidence)
}
