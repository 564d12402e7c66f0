// Package overlay draws text captions onto clip frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/xob0t/clipforge/pkg/canvas"
)

// Style controls caption placement and look.
type Style struct {
	Size       float64 // pixels
	Color      uint32  // 0xRRGGBB
	Margin     int     // pixels from the top-left corner
	LineHeight float64 // multiple of Size; 0 means 1.5
}

// Caption renders a title and an optional frame counter. It owns a font face
// and must be closed.
type Caption struct {
	Title   string
	Counter bool

	style Style
	face  font.Face
}

// NewCaption prepares a face of style.Size from fm.
func NewCaption(fm *FontManager, title string, counter bool, style Style) (*Caption, error) {
	if style.Size <= 0 {
		return nil, fmt.Errorf("caption size must be positive, got %v", style.Size)
	}
	if style.LineHeight <= 0 {
		style.LineHeight = 1.5
	}
	face, err := fm.Face(style.Size)
	if err != nil {
		return nil, err
	}
	return &Caption{Title: title, Counter: counter, style: style, face: face}, nil
}

// Close releases the font face.
func (c *Caption) Close() error {
	return c.face.Close()
}

// Lines returns the text drawn for a frame, wrapped to the canvas width.
func (c *Caption) Lines(frame, total, width int) []string {
	var lines []string
	if c.Title != "" {
		lines = append(lines, wrapText(c.Title, width-2*c.style.Margin, c.face)...)
	}
	if c.Counter {
		lines = append(lines, fmt.Sprintf("%d/%d", frame+1, total))
	}
	return lines
}

// Draw paints the caption of one frame onto dst.
func (c *Caption) Draw(dst *canvas.Canvas, frame, total int) {
	col := color.RGBA{R: uint8(c.style.Color >> 16), G: uint8(c.style.Color >> 8), B: uint8(c.style.Color), A: 0xff}
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: c.face,
	}
	lineHeight := int(c.style.Size * c.style.LineHeight)
	y := c.style.Margin
	for _, line := range c.Lines(frame, total, dst.Width) {
		y += lineHeight
		drawer.Dot = fixed.P(c.style.Margin, y)
		drawer.DrawString(line)
	}
}

// wrapText breaks text into lines no wider than maxWidth pixels. A single
// word wider than maxWidth gets a line of its own.
func wrapText(text string, maxWidth int, face font.Face) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate).Ceil() > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	return append(lines, current)
}
