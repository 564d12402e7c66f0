// fonts.go - Font loading with a custom TTF and the embedded Go Regular fallback.
package overlay

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultDPI is the resolution faces are rasterized at, so font sizes are
// in pixels.
const DefaultDPI = 72

// FontManager parses one font and hands out faces of it.
type FontManager struct {
	parsed *opentype.Font
	// Fallback reports whether the embedded font is in use.
	Fallback bool
}

// NewFontManager loads customPath. An empty path, or one that cannot be
// read, falls back to the embedded Go Regular font with a warning.
func NewFontManager(customPath string) (*FontManager, error) {
	var data []byte
	if customPath != "" {
		b, err := os.ReadFile(customPath)
		if err != nil {
			fmt.Printf("Warning: could not load font '%s', using default\n", customPath)
		} else {
			data = b
		}
	}

	fallback := data == nil
	if fallback {
		data = goregular.TTF
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontManager{parsed: parsed, Fallback: fallback}, nil
}

// Face returns a face of the given pixel size. Callers close it.
func (fm *FontManager) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     DefaultDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
