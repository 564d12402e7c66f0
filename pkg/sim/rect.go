// rect.go - Moving rectangles that split when they hit a canvas edge.
package sim

import "image"

// Simulation constants.
const (
	SplitFactor   = 0.90   // linear shrink per split
	Velocity      = 1000.0 // px/s along a unit direction component
	InitialWidth  = 100
	InitialHeight = 100
	MaxRects      = 100
	NoteStep      = 3 // semitones added per split
	InitialNote   = -24

	// AreaThreshold drops split halves smaller than about
	// InitialWidth*InitialHeight*SplitFactor^20.
	AreaThreshold = 1853.0
)

// Orient is the axis of the edge a rectangle hit.
type Orient int

const (
	// Vert is a top or bottom edge.
	Vert Orient = iota
	// Horz is a left or right edge.
	Horz
)

func (o Orient) String() string {
	if o == Vert {
		return "vert"
	}
	return "horz"
}

// Rect is one moving rectangle. DX and DY are direction components scaled by
// Velocity. Note selects the beep pitch in semitones from A4.
type Rect struct {
	X, Y   float64
	DX, DY float64
	W, H   float64
	Note   int
}

// Hitbox returns the pixel rectangle covered by r, truncating toward zero.
func (r Rect) Hitbox() image.Rectangle {
	x, y := int(r.X), int(r.Y)
	return image.Rect(x, y, x+int(r.W), y+int(r.H))
}

// Area is W*H.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// Split shrinks r into two halves that fly apart from the edge it hit.
func (r Rect) Split(o Orient) (Rect, Rect) {
	child := r
	child.W *= SplitFactor
	child.H *= SplitFactor
	child.Note += NoteStep

	a, b := child, child
	switch o {
	case Vert:
		a.DY = -r.DY
		b.DX, b.DY = -r.DX, -r.DY
	case Horz:
		a.DX = -r.DX
		b.DX, b.DY = -r.DX, -r.DY
	}
	return a, b
}

// step advances r by dt inside a width×height area. When the next position
// would touch an edge, r is left in place and the edge orientation is
// returned.
func (r *Rect) step(dt, width, height float64) (Orient, bool) {
	nx := r.X + r.DX*Velocity*dt
	ny := r.Y + r.DY*Velocity*dt

	if nx+r.W >= width || nx <= 0 {
		return Horz, true
	}
	if ny+r.H >= height || ny <= 0 {
		return Vert, true
	}
	r.X, r.Y = nx, ny
	return 0, false
}
