// Package imaging provides the image processing stages of the plate
// detection pipeline: preprocessing, edge extraction, frame annotation,
// and image file loading.
//
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Pipeline Stages
//
// The stages run in a fixed order per frame:
//
//  1. Prepare: grayscale conversion, local contrast normalization (CLAHE),
//     edge-preserving smoothing (bilateral filter)
//  2. EdgeMap: Canny-style edge detection producing a binary edge image
//  3. Annotate: bounding boxes and labels drawn onto a copy of the frame
//
// The preprocessing parameters (CLAHE clip limit 2.0 with an 8x8 tile grid,
// bilateral diameter 11 with sigma 17) are fixed; the Canny thresholds are
// supplied by the caller.
//
// # Thread Safety
//
// All functions are stateless and never mutate their input images, so they
// may be called concurrently on different frames.
//
// # Error Handling
//
// Prepare rejects empty or zero-area frames; file loading reports open and
// decode failures. The pure-pixel stages (EdgeMap, Annotate) cannot fail.
package imaging
