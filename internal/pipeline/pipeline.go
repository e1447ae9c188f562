// Package pipeline orchestrates the per-frame plate detection flow:
// preprocessing, candidate-region proposal, OCR, text acceptance, country
// matching, and annotation.
//
// The pipeline is strictly linear and stateless across frames; a Pipeline
// value is fully re-entrant and safe for concurrent frames as long as its
// Recognizer is. Regions within a frame are OCR'd sequentially, one call
// per region; output preserves contour discovery order either way.
package pipeline

import (
	"fmt"
	"image"

	"github.com/platesight/platesight/internal/detection"
	"github.com/platesight/platesight/internal/imaging"
	"github.com/platesight/platesight/internal/ocr"
	"github.com/platesight/platesight/internal/plates"
)

// Config carries every tunable threshold of the detector plus the country
// pattern table. The defaults are the calibrated values; they are exposed
// as configuration rather than constants because no calibration method is
// on record for them, but hosts should not expect better numbers without
// measuring.
type Config struct {
	// Canny hysteresis thresholds.
	EdgeLow  int
	EdgeHigh int

	// Region Proposer geometry filters.
	MinContourArea  float64
	ApproxTolerance float64
	MinVertices     int
	MinAspect       float64
	MaxAspect       float64
	MinRegionWidth  int
	MinRegionHeight int

	// Text acceptance filters.
	MinConfidence float64
	MinTextLength int

	// Patterns is the ordered country format table, evaluated by
	// plates.MatchCountry. Immutable once the pipeline is built.
	Patterns []plates.PatternRule
}

// DefaultConfig returns the calibrated detector configuration.
func DefaultConfig() Config {
	return Config{
		EdgeLow:         30,
		EdgeHigh:        200,
		MinContourArea:  1000,
		ApproxTolerance: 0.02,
		MinVertices:     4,
		MinAspect:       1.5,
		MaxAspect:       5.0,
		MinRegionWidth:  80,
		MinRegionHeight: 20,
		MinConfidence:   0.2,
		MinTextLength:   4,
		Patterns:        plates.DefaultPatterns(),
	}
}

// Result is the output of one frame: the annotated copy of the input and
// the accepted detections in contour discovery order.
type Result struct {
	Annotated *image.RGBA
	Plates    []plates.DetectedPlate
}

// Pipeline binds a recognizer and a configuration into a reusable
// per-frame detector.
type Pipeline struct {
	cfg Config
	rec ocr.Recognizer
}

// New builds a pipeline around the given OCR engine. The config is copied;
// later mutation by the caller has no effect.
func New(rec ocr.Recognizer, cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg, rec: rec}
}

// ProcessFrame runs the full detection flow over one frame and returns the
// annotated frame plus the detection list. The input frame is never
// modified; every crop handed to OCR is an independent copy.
//
// Geometric and textual rejections along the way are expected noise
// filtering and never surface as errors. An error is returned only for a
// malformed input frame or an OCR engine failure, and it aborts the frame:
// the routine filters already absorb bad input, so a failure here is not
// worth retrying.
func (p *Pipeline) ProcessFrame(frame image.Image) (*Result, error) {
	gray, err := imaging.Prepare(frame)
	if err != nil {
		return nil, err
	}

	edges := imaging.EdgeMap(gray, p.cfg.EdgeLow, p.cfg.EdgeHigh)
	regions := detection.ProposeRegions(edges, frame, detection.ProposerParams{
		MinContourArea:  p.cfg.MinContourArea,
		ApproxTolerance: p.cfg.ApproxTolerance,
		MinVertices:     p.cfg.MinVertices,
		MinAspect:       p.cfg.MinAspect,
		MaxAspect:       p.cfg.MaxAspect,
		MinWidth:        p.cfg.MinRegionWidth,
		MinHeight:       p.cfg.MinRegionHeight,
	})

	accept := plates.Acceptance{
		MinConfidence: p.cfg.MinConfidence,
		MinLength:     p.cfg.MinTextLength,
	}

	detected := make([]plates.DetectedPlate, 0, len(regions))
	annotations := make([]imaging.Annotation, 0, len(regions))

	for _, region := range regions {
		results, err := p.rec.Recognize(region.Crop)
		if err != nil {
			return nil, fmt.Errorf("failed to recognize region %v: %w", region.Rect, err)
		}

		// One region may yield several accepted texts when the engine
		// segments it into multiple lines or tokens.
		for _, r := range results {
			text, ok := accept.Accept(r.Text, r.Confidence)
			if !ok {
				continue
			}

			plate := plates.DetectedPlate{
				Text:       text,
				Country:    plates.MatchCountry(p.cfg.Patterns, text),
				Confidence: r.Confidence,
			}
			detected = append(detected, plate)
			annotations = append(annotations, imaging.Annotation{
				Rect:    region.Rect,
				Label:   plate.Label(),
				Country: plate.Country,
			})
		}
	}

	return &Result{
		Annotated: imaging.Annotate(frame, annotations),
		Plates:    detected,
	}, nil
}
