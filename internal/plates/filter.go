package plates

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Acceptance is the per-result filter applied to raw OCR output before any
// pattern matching happens. It rejects low-confidence reads and strips the
// punctuation and noise glyphs OCR engines hallucinate around plate text.
type Acceptance struct {
	// MinConfidence is the lowest OCR confidence accepted, in [0,1].
	MinConfidence float64

	// MinLength is the shortest normalized text accepted, counted in
	// characters.
	MinLength int
}

// NormalizeText removes every character that is not alphanumeric or
// whitespace. Internal spaces are kept; they separate the tokens some
// plates legitimately carry and are only dropped at match time.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Accept applies the filter to one OCR result. It returns the normalized
// text and true when the result survives; otherwise the empty string and
// false. Rejection is expected noise filtering, not an error condition:
// results below the confidence floor or shorter than MinLength after
// normalization are silently dropped.
func (a Acceptance) Accept(text string, confidence float64) (string, bool) {
	if confidence < a.MinConfidence {
		return "", false
	}
	normalized := NormalizeText(text)
	if utf8.RuneCountInString(normalized) < a.MinLength {
		return "", false
	}
	return normalized, true
}
