// bmp.go - 24-bit BMP still of a frame via x/image/bmp.
package generator

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/bmp"
)

// writeBMP encodes img to a BMP file at the given path. Opaque images are
// stored as 24-bit bottom-up bitmaps.
func writeBMP(output string, img image.Image) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()

	if err := bmp.Encode(f, img); err != nil {
		return fmt.Errorf("encode BMP: %w", err)
	}
	return f.Close()
}
