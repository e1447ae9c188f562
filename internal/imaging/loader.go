package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
)

// LoadFile opens and decodes an image file.
//
// Supported formats are PNG, JPEG, and GIF. The concrete returned type
// depends on the format and color model (e.g., *image.RGBA, *image.NRGBA,
// *image.YCbCr).
//
// Returns an error if the file cannot be opened or is not a valid image of
// a supported format. Inputs are assumed fixed, so a load failure is not
// retried.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes an image from a reader using the registered format
// decoders.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
