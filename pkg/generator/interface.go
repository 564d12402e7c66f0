// interface.go - Output sinks fed once per rendered tick.
package generator

import (
	"github.com/xob0t/clipforge/pkg/canvas"
)

// Sink consumes the frames of one render.
//
// Frame is called once per tick with the finished canvas and that tick's
// audio samples. Finish commits the output and is called once after the last
// tick. Close releases resources and is always safe to call, including after
// Finish or a failed Frame; it never commits.
type Sink interface {
	Frame(c *canvas.Canvas, samples []float32) error
	Finish() error
	Close() error
	// Path is the file the sink writes.
	Path() string
}
