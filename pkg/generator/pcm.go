// pcm.go - Raw little-endian float32 audio sink.
package generator

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/xob0t/clipforge/pkg/canvas"
)

type pcmSink struct {
	path string
	f    *os.File
	w    *bufio.Writer
	buf  []byte
}

func newPCMSink(path string) (*pcmSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &pcmSink{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

func (s *pcmSink) Path() string { return s.path }

func (s *pcmSink) Frame(_ *canvas.Canvas, samples []float32) error {
	s.buf = s.buf[:0]
	for _, v := range samples {
		s.buf = binary.LittleEndian.AppendUint32(s.buf, math.Float32bits(v))
	}
	if _, err := s.w.Write(s.buf); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *pcmSink) Finish() error {
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

func (s *pcmSink) Close() error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil
	return f.Close()
}
