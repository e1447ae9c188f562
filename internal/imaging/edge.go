package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// EdgeMap performs Canny-style edge detection on a preprocessed grayscale
// image, producing a binary edge map where edge pixels are 255 and all
// others are 0.
//
// Parameters:
//   - gray: Preprocessed grayscale input (see Prepare).
//   - thresholdLow: Low hysteresis threshold (0-255). Gradients below this
//     are discarded. The detector default is 30.
//   - thresholdHigh: High hysteresis threshold (0-255). Gradients above this
//     are always kept. The detector default is 200.
//
// # Algorithm
//
//  1. Gaussian blur to suppress residual noise before differentiation
//  2. Sobel gradients: magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//  3. Non-maximum suppression: thin edges to 1-pixel width by keeping only
//     local maxima along the gradient direction
//  4. Hysteresis thresholding: strong edges (above thresholdHigh) are kept,
//     weak edges (between the thresholds) are kept only when 8-connected to
//     a strong edge
//  5. Gap bridging: one 3x3 dilation pass over the surviving edges. Where
//     two edges meet at a corner, suppression compares against diagonal
//     neighbors and opens a one-to-two pixel break; the dilation restores
//     8-connectivity there, so a closed shape reaches contour extraction
//     as a single closed component rather than four open strokes.
//
// Lower thresholds detect more edges but admit noise contours that the
// downstream geometric filters then have to reject; higher thresholds may
// break plate borders into fragments.
func EdgeMap(gray *image.Gray, thresholdLow, thresholdHigh int) *image.Gray {
	width := gray.Rect.Dx()
	height := gray.Rect.Dy()

	// Light Gaussian pass before differentiation.
	blurred := blur.Gaussian(gray, 1.4)

	plane := make([][]float64, height)
	for y := 0; y < height; y++ {
		plane[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			// Blurred input is grayscale, so any channel works.
			plane[y][x] = float64(blurred.Pix[y*blurred.Stride+x*4]) / 255.0
		}
	}

	// Sobel gradients.
	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += plane[py][px] * sobelX[ky+1][kx+1]
					gy += plane[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression.
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			// Compare against the two neighbors along the gradient direction.
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Double threshold with edge tracking by hysteresis.
	out := image.NewGray(image.Rect(0, 0, width, height))
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				out.Pix[y*out.Stride+x] = 255
			} else if val >= lowThresh {
				hasStrongNeighbor := false
				for ky := -1; ky <= 1 && !hasStrongNeighbor; ky++ {
					for kx := -1; kx <= 1 && !hasStrongNeighbor; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							hasStrongNeighbor = true
						}
					}
				}
				if hasStrongNeighbor {
					out.Pix[y*out.Stride+x] = 255
				}
			}
		}
	}

	return dilate(out)
}

// dilate applies one pass of a 3x3 maximum filter to a binary edge map.
// The square structuring element matches the 8-connectivity used by contour
// extraction: any two edge pixels within a Chebyshev distance of 3 end up
// 8-connected afterwards, which closes the corner breaks left by
// non-maximum suppression.
func dilate(src *image.Gray) *image.Gray {
	width := src.Rect.Dx()
	height := src.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if src.Pix[y*src.Stride+x] == 0 {
				continue
			}
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					out.Pix[py*out.Stride+px] = 255
				}
			}
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
