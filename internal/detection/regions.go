package detection

import (
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangular candidate plate location proposed from the edge
// map, together with the contour geometry that produced it and a copy of
// the corresponding crop from the original color frame.
//
// The crop is an independent copy, so the source frame may be released or
// reused as soon as proposal completes.
type Region struct {
	// Rect is the axis-aligned bounding rectangle in frame coordinates.
	Rect image.Rectangle `json:"rect"`

	// Vertices is the vertex count of the originating contour's
	// approximated polygon.
	Vertices int `json:"vertices"`

	// Area is the enclosed area of the originating contour in square
	// pixels.
	Area float64 `json:"area"`

	// Crop is the region's pixels taken from the original (color) frame,
	// ready for OCR.
	Crop image.Image `json:"-"`
}

// ProposerParams holds the geometric filter thresholds of the Region
// Proposer. The zero value rejects everything; use the pipeline defaults
// for the calibrated configuration.
type ProposerParams struct {
	// MinContourArea is the minimum enclosed contour area in square pixels.
	MinContourArea float64

	// ApproxTolerance is the polygon approximation tolerance as a fraction
	// of the contour perimeter.
	ApproxTolerance float64

	// MinVertices is the minimum approximated polygon vertex count;
	// contours below it are not quadrilateral-like.
	MinVertices int

	// MinAspect and MaxAspect bound the width/height ratio. Plates are
	// wider than tall.
	MinAspect float64
	MaxAspect float64

	// MinWidth and MinHeight are the smallest crop dimensions considered
	// readable by OCR.
	MinWidth  int
	MinHeight int
}

// ProposeRegions runs the candidate-region proposal over a binary edge map.
//
// Every contour in the edge map is passed through a chain of purely
// geometric filters, in order:
//
//  1. Enclosed area below MinContourArea: noise-level contour, discarded.
//  2. Approximated polygon (tolerance ApproxTolerance x perimeter) with
//     fewer than MinVertices vertices: not quadrilateral-like, discarded.
//  3. Bounding-rectangle aspect ratio outside [MinAspect, MaxAspect]:
//     wrong shape for a plate, discarded.
//  4. Bounding rectangle smaller than MinWidth x MinHeight: too small for
//     reliable text, discarded.
//
// Surviving rectangles become Regions in contour discovery order, each
// carrying a crop of the supplied original frame (not the edge map), since
// OCR wants the full-contrast source pixels.
//
// Discards are expected and frequent on real frames and are not errors.
func ProposeRegions(edges *image.Gray, frame image.Image, params ProposerParams) []Region {
	frameBounds := frame.Bounds()
	regions := make([]Region, 0)

	for _, contour := range FindContours(edges) {
		area := contour.Area()
		if area < params.MinContourArea {
			continue
		}

		approx := ApproxPolygon(contour.Points, params.ApproxTolerance*contour.Perimeter())
		if len(approx) < params.MinVertices {
			continue
		}

		rect := contour.BoundingRect()
		w := rect.Dx()
		h := rect.Dy()
		if h == 0 {
			continue
		}
		aspect := float64(w) / float64(h)
		if aspect < params.MinAspect || aspect > params.MaxAspect {
			continue
		}
		if w < params.MinWidth || h < params.MinHeight {
			continue
		}

		// Edge map coordinates are frame-relative; shift into the frame's
		// own coordinate space before cropping.
		cropRect := rect.Add(frameBounds.Min).Intersect(frameBounds)
		crop := imaging.Crop(frame, cropRect)

		regions = append(regions, Region{
			Rect:     rect,
			Vertices: len(approx),
			Area:     area,
			Crop:     crop,
		})
	}

	return regions
}
