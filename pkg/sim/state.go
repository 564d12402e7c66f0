// Package sim is the clip content: bouncing rectangles that split on every
// wall hit, with a beep per split.
package sim

import (
	"image"
	"math"

	"github.com/xob0t/clipforge/pkg/canvas"
)

type hit struct {
	index  int
	orient Orient
}

// State is the whole simulation. It is driven by one goroutine.
type State struct {
	Rects []Rect

	width, height float64
	beeper        Beeper
	hits          []hit
}

// New places the initial rectangle in a width×height area.
func New(width, height int) *State {
	return &State{
		Rects: []Rect{{
			X: 30, Y: 100,
			DX: 0.7, DY: 0.8,
			W: InitialWidth, H: InitialHeight,
			Note: InitialNote,
		}},
		width:  float64(width),
		height: float64(height),
	}
}

// Render paints every rectangle with the diagonal hue gradient.
func (s *State) Render(c *canvas.Canvas) {
	for _, r := range s.Rects {
		fillGradient(c, r.Hitbox())
	}
}

// Sound overwrites samples with the beeps sounding during the next
// len(samples) samples.
func (s *State) Sound(samples []float32, sampleRate int) {
	s.beeper.Fill(samples, sampleRate)
}

// Beeper exposes the mixer, mostly for inspection.
func (s *State) Beeper() *Beeper {
	return &s.beeper
}

// Update moves every rectangle by dt seconds. Rectangles that hit an edge are
// replaced by their split halves, each kept only while the population is
// under MaxRects and its area reaches AreaThreshold.
func (s *State) Update(dt float64) {
	for i := range s.Rects {
		if o, ok := s.Rects[i].step(dt, s.width, s.height); ok {
			s.hits = append(s.hits, hit{index: i, orient: o})
		}
	}

	// Highest index first so earlier indices stay valid.
	for i := len(s.hits) - 1; i >= 0; i-- {
		h := s.hits[i]
		r := s.Rects[h.index]
		s.Rects = append(s.Rects[:h.index], s.Rects[h.index+1:]...)

		s.beeper.Beep(NoteFrequency(r.Note), BeepDuration)

		a, b := r.Split(h.orient)
		for _, child := range [...]Rect{a, b} {
			if len(s.Rects) < MaxRects && child.Area() >= AreaThreshold {
				s.Rects = append(s.Rects, child)
			}
		}
	}
	s.hits = s.hits[:0]
}

// fillGradient paints r clipped to c. Hue follows (u+v)*2 where u and v are
// the normalized pixel coordinates.
func fillGradient(c *canvas.Canvas, r image.Rectangle) {
	r = r.Intersect(c.Bounds())
	w, h := float64(c.Width), float64(c.Height)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			u, v := float64(x)/w, float64(y)/h
			cr, cg, cb := HSLToRGB((u+v)*2, 1, 0.8)
			c.Pix[y*c.Width+x] = canvas.Pack(uint8(cr*255), uint8(cg*255), uint8(cb*255))
		}
	}
}

// HSLToRGB converts a hue (in turns, any real value), saturation and
// lightness to RGB components in [0, 1].
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	channel := func(offset float64) float64 {
		k := math.Mod(offset+h*6, 6)
		if k < 0 {
			k += 6
		}
		return math.Min(math.Max(math.Abs(k-3)-1, 0), 1)
	}
	t := 1 - math.Abs(2*l-1)
	r = l + s*(channel(0)-0.5)*t
	g = l + s*(channel(4)-0.5)*t
	b = l + s*(channel(2)-0.5)*t
	return r, g, b
}
