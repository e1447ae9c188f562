// Package detection implements contour extraction and candidate-region
// proposal for license plate detection.
//
// # Region Proposal
//
// The proposal pipeline is purely geometric, with no learned model:
//
//  1. Contour Finding: 8-connected components of the binary edge map,
//     with ordered outer-boundary tracing
//  2. Measurement: enclosed (shoelace) area, closed perimeter, bounding
//     rectangle, Douglas-Peucker polygon approximation
//  3. Filtering: area, polygon vertex count, aspect ratio, and minimum
//     crop size thresholds, tuned for rectangular plates photographed
//     roughly fronto-parallel
//
// The vertex filter rejects triangles and line fragments; circles survive
// it (their approximations carry many vertices) and are instead rejected by
// the aspect-ratio band, since plates are materially wider than tall.
//
// # Coordinate System and Ordering
//
// All coordinates use the standard image convention: origin at top-left,
// X rightward, Y downward. Contours, and therefore Regions, are produced
// in discovery order (row-major scan of component start pixels), which is
// deterministic for a given edge map and defines the output ordering of
// the whole pipeline.
//
// # Limitations
//
//   - Bounding rectangles are axis-aligned; heavily rotated plates inflate
//     their apparent aspect ratio
//   - Nested contours (plate border plus character outlines) are proposed
//     separately; downstream text filtering absorbs the duplicates
//   - Touching shapes merge into a single component and a single proposal
package detection
