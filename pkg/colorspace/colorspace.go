// Package colorspace converts packed 0xRRGGBB canvases into the sample
// layouts the containers store: planar YCbCr and packed BGR24.
package colorspace

// YCbCr is a single pixel in BT.601-style studio range.
type YCbCr struct {
	Y, Cb, Cr uint8
}

// Split returns the red, green and blue components of a packed pixel.
// The top byte is ignored.
func Split(pixel uint32) (r, g, b uint8) {
	return uint8(pixel >> 16), uint8(pixel >> 8), uint8(pixel)
}

// Coefficients of the conversion, scaled by 1000 so the formula is exact in
// integer arithmetic. Every term is additionally divided by 256.
const (
	scale = 256 * 1000

	yR, yG, yB    = 65738, 129057, 25064
	cbR, cbG, cbB = 37945, 74494, 112439
	crR, crG, crB = 112439, 94154, 18285
)

// FromRGB converts a packed pixel with
//
//	Y  =  16 + 65.738*R/256 + 129.057*G/256 +  25.064*B/256
//	Cb = 128 - 37.945*R/256 -  74.494*G/256 + 112.439*B/256
//	Cr = 128 + 112.439*R/256 - 94.154*G/256 -  18.285*B/256
//
// Each component is truncated toward zero, not rounded. All numerators are
// non-negative for 8-bit inputs.
func FromRGB(pixel uint32) YCbCr {
	r8, g8, b8 := Split(pixel)
	r, g, b := int(r8), int(g8), int(b8)
	y := (16*scale + yR*r + yG*g + yB*b) / scale
	cb := (128*scale - cbR*r - cbG*g + cbB*b) / scale
	cr := (128*scale + crR*r - crG*g - crB*b) / scale
	return YCbCr{Y: uint8(y), Cb: uint8(cb), Cr: uint8(cr)}
}

// AppendBGR24 appends three bytes per pixel in blue, green, red order.
func AppendBGR24(dst []byte, canvas []uint32) []byte {
	for _, p := range canvas {
		r, g, b := Split(p)
		dst = append(dst, b, g, r)
	}
	return dst
}

// Planes holds one full frame as three separate planes of equal size.
type Planes struct {
	Y, Cb, Cr []byte
}

// FromCanvas converts canvas into the planes, reusing their storage.
func (p *Planes) FromCanvas(canvas []uint32) {
	p.Y = p.Y[:0]
	p.Cb = p.Cb[:0]
	p.Cr = p.Cr[:0]
	for _, px := range canvas {
		c := FromRGB(px)
		p.Y = append(p.Y, c.Y)
		p.Cb = append(p.Cb, c.Cb)
		p.Cr = append(p.Cr, c.Cr)
	}
}
