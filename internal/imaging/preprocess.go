package imaging

import (
	"fmt"
	"image"
	"math"
)

// Preprocessing parameters. These mirror the detector's calibration and are
// deliberately not configurable at runtime; changing them invalidates the
// downstream contour filter thresholds.
const (
	claheClipLimit = 2.0
	claheTilesX    = 8
	claheTilesY    = 8

	bilateralDiameter   = 11
	bilateralSigmaColor = 17.0
	bilateralSigmaSpace = 17.0
)

// Prepare converts a color frame into the noise-reduced, contrast-enhanced
// grayscale image fed to edge detection.
//
// The stages run in order:
//
//  1. Grayscale conversion using ITU-R BT.601 luminance weights
//     (0.299*R + 0.587*G + 0.114*B)
//  2. Contrast-limited adaptive histogram equalization (CLAHE) with clip
//     limit 2.0 over an 8x8 tile grid, raising local contrast so plate
//     text and borders survive uneven lighting
//  3. Bilateral filtering (diameter 11, color/spatial sigma 17) to suppress
//     texture noise while keeping plate-boundary edges sharp
//
// Returns an error if the frame is nil or has no pixels; there are no other
// failure modes. The input frame is never modified.
func Prepare(frame image.Image) (*image.Gray, error) {
	if frame == nil {
		return nil, fmt.Errorf("invalid frame: nil image")
	}
	bounds := frame.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("invalid frame: zero-area bounds %v", bounds)
	}

	gray := toGray(frame)
	equalized := clahe(gray, claheClipLimit, claheTilesX, claheTilesY)
	smoothed := bilateral(equalized, bilateralDiameter, bilateralSigmaColor, bilateralSigmaSpace)
	return smoothed, nil
}

// toGray converts any image to an 8-bit grayscale plane using BT.601
// luminance weights.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			out.Pix[y*out.Stride+x] = uint8(lum + 0.5)
		}
	}
	return out
}

// clahe performs contrast-limited adaptive histogram equalization.
//
// The image is divided into tilesX by tilesY tiles. Each tile gets its own
// histogram-equalization lookup table, with histogram bins clipped at
// clipLimit times the uniform bin height and the excess redistributed
// evenly (the "contrast limited" part, which stops flat regions from being
// blown out to full range). Output pixels bilinearly interpolate between
// the four nearest tile tables to avoid visible tile seams.
func clahe(src *image.Gray, clipLimit float64, tilesX, tilesY int) *image.Gray {
	width := src.Rect.Dx()
	height := src.Rect.Dy()

	tileW := (width + tilesX - 1) / tilesX
	tileH := (height + tilesY - 1) / tilesY

	// Build one equalization LUT per tile.
	luts := make([][][256]uint8, tilesY)
	for ty := 0; ty < tilesY; ty++ {
		luts[ty] = make([][256]uint8, tilesX)
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileW
			y0 := ty * tileH
			x1 := minInt(x0+tileW, width)
			y1 := minInt(y0+tileH, height)

			var hist [256]int
			area := (x1 - x0) * (y1 - y0)
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					hist[src.Pix[y*src.Stride+x]]++
				}
			}

			// Clip the histogram and redistribute the excess.
			clip := int(clipLimit * float64(area) / 256.0)
			if clip < 1 {
				clip = 1
			}
			excess := 0
			for i := 0; i < 256; i++ {
				if hist[i] > clip {
					excess += hist[i] - clip
					hist[i] = clip
				}
			}
			share := excess / 256
			remainder := excess % 256
			for i := 0; i < 256; i++ {
				hist[i] += share
				if i < remainder {
					hist[i]++
				}
			}

			cdf := 0
			scale := 255.0 / float64(area)
			for i := 0; i < 256; i++ {
				cdf += hist[i]
				luts[ty][tx][i] = uint8(math.Round(float64(cdf) * scale))
			}
		}
	}

	// Map each pixel through the bilinear blend of its four surrounding
	// tile LUTs. Coordinates are taken relative to tile centers.
	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		gy := (float64(y) - float64(tileH)/2.0) / float64(tileH)
		ty0 := int(math.Floor(gy))
		wy := gy - float64(ty0)
		ty1 := ty0 + 1
		ty0 = clamp(ty0, 0, tilesY-1)
		ty1 = clamp(ty1, 0, tilesY-1)

		for x := 0; x < width; x++ {
			gx := (float64(x) - float64(tileW)/2.0) / float64(tileW)
			tx0 := int(math.Floor(gx))
			wx := gx - float64(tx0)
			tx1 := tx0 + 1
			tx0 = clamp(tx0, 0, tilesX-1)
			tx1 = clamp(tx1, 0, tilesX-1)

			v := src.Pix[y*src.Stride+x]
			top := (1-wx)*float64(luts[ty0][tx0][v]) + wx*float64(luts[ty0][tx1][v])
			bottom := (1-wx)*float64(luts[ty1][tx0][v]) + wx*float64(luts[ty1][tx1][v])
			out.Pix[y*out.Stride+x] = uint8((1-wy)*top + wy*bottom + 0.5)
		}
	}
	return out
}

// bilateral applies an edge-preserving bilateral filter to a grayscale
// image. Each output pixel is a weighted average of its neighborhood where
// the weight falls off with both spatial distance and intensity difference,
// so smooth regions are averaged but strong edges are left intact.
func bilateral(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	width := src.Rect.Dx()
	height := src.Rect.Dy()
	radius := diameter / 2

	// Precompute the spatial kernel and the intensity-difference weights.
	spatial := make([]float64, diameter*diameter)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*diameter+(dx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}
	colorWeight := make([]float64, 256)
	for d := 0; d < 256; d++ {
		colorWeight[d] = math.Exp(-float64(d*d) / (2 * sigmaColor * sigmaColor))
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := src.Pix[y*src.Stride+x]
			var sum, norm float64
			for dy := -radius; dy <= radius; dy++ {
				py := clamp(y+dy, 0, height-1)
				for dx := -radius; dx <= radius; dx++ {
					px := clamp(x+dx, 0, width-1)
					v := src.Pix[py*src.Stride+px]
					diff := int(center) - int(v)
					if diff < 0 {
						diff = -diff
					}
					w := spatial[(dy+radius)*diameter+(dx+radius)] * colorWeight[diff]
					sum += w * float64(v)
					norm += w
				}
			}
			out.Pix[y*out.Stride+x] = uint8(sum/norm + 0.5)
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
