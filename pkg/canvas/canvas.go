// canvas.go - Packed 0xRRGGBB raster shared by the simulation and the muxers.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
)

// Canvas is a row-major raster of packed 0xRRGGBB pixels. The top byte of
// every pixel is zero. It implements draw.Image so x/image renderers can
// paint into it directly.
type Canvas struct {
	Pix    []uint32
	Width  int
	Height int
}

var _ draw.Image = (*Canvas)(nil)

// New allocates a black canvas.
func New(width, height int) *Canvas {
	return &Canvas{
		Pix:    make([]uint32, width*height),
		Width:  width,
		Height: height,
	}
}

// Pack builds a packed pixel from its components.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Fill sets every pixel to p.
func (c *Canvas) Fill(p uint32) {
	for i := range c.Pix {
		c.Pix[i] = p
	}
}

// FillRect sets the pixels of r clipped to the canvas bounds.
func (c *Canvas) FillRect(r image.Rectangle, p uint32) {
	r = r.Intersect(c.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := c.Pix[y*c.Width : (y+1)*c.Width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = p
		}
	}
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.Width, c.Height) }

// At implements image.Image. Pixels are opaque.
func (c *Canvas) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(c.Bounds())) {
		return color.RGBA{}
	}
	p := c.Pix[y*c.Width+x]
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 0xff}
}

// Set implements draw.Image. Alpha is dropped.
func (c *Canvas) Set(x, y int, col color.Color) {
	if !(image.Point{X: x, Y: y}.In(c.Bounds())) {
		return
	}
	r, g, b, _ := col.RGBA()
	c.Pix[y*c.Width+x] = Pack(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGBA copies the canvas into a new opaque image.
func (c *Canvas) RGBA() *image.RGBA {
	img := image.NewRGBA(c.Bounds())
	for i, p := range c.Pix {
		j := i * 4
		img.Pix[j] = uint8(p >> 16)
		img.Pix[j+1] = uint8(p >> 8)
		img.Pix[j+2] = uint8(p)
		img.Pix[j+3] = 0xff
	}
	return img
}
