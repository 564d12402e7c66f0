// y4m.go - YUV4MPEG2 video sink.
package generator

import (
	"bufio"
	"fmt"
	"os"

	"github.com/xob0t/clipforge/pkg/canvas"
	"github.com/xob0t/clipforge/pkg/yuv4mpeg2"
)

type y4mSink struct {
	path  string
	f     *os.File
	w     *bufio.Writer
	muxer *yuv4mpeg2.Muxer
}

func newY4MSink(path string, width, height, fps int) (*y4mSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	s := &y4mSink{path: path, f: f, w: bufio.NewWriter(f), muxer: yuv4mpeg2.NewMuxer()}
	if err := s.muxer.Start(s.w, width, height, fps); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *y4mSink) Path() string { return s.path }

func (s *y4mSink) Frame(c *canvas.Canvas, _ []float32) error {
	return s.muxer.Frame(s.w, c.Pix)
}

func (s *y4mSink) Finish() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	f := s.f
	s.f = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}

func (s *y4mSink) Close() error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil
	return f.Close()
}
