// avi.go - AVI sink: raw BGR24 video plus float32 audio, written on Finish.
package generator

import (
	"github.com/xob0t/clipforge/pkg/avi"
	"github.com/xob0t/clipforge/pkg/canvas"
)

type aviSink struct {
	path  string
	muxer *avi.Muxer
}

func newAVISink(path string, width, height, fps int, index bool) (*aviSink, error) {
	m := avi.NewMuxer()
	m.Index = index
	if err := m.Start(width, height, fps); err != nil {
		return nil, err
	}
	return &aviSink{path: path, muxer: m}, nil
}

func (s *aviSink) Path() string { return s.path }

func (s *aviSink) Frame(c *canvas.Canvas, samples []float32) error {
	return s.muxer.Frame(c.Pix, samples)
}

func (s *aviSink) Finish() error {
	return s.muxer.Finish(s.path)
}

// Close drops the accumulated movi data.
func (s *aviSink) Close() error {
	s.muxer = nil
	return nil
}
