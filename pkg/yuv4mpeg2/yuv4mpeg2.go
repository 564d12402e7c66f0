// Package yuv4mpeg2 writes uncompressed 4:4:4 YUV4MPEG2 streams.
//
// A stream is one ASCII header line followed by frames, each the literal
// line "FRAME\n" and then the Y, Cb and Cr planes in raster order. The file
// stores no frame count; readers divide the trailing byte count by
// FrameSize.
package yuv4mpeg2

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xob0t/clipforge/pkg/colorspace"
)

const (
	// Magic opens every stream header.
	Magic = "YUV4MPEG2"
	// FrameMarker precedes every frame's planes.
	FrameMarker = "FRAME\n"
)

var (
	ErrNotStarted     = errors.New("stream header not written")
	ErrAlreadyStarted = errors.New("stream header already written")
	ErrInvalidSize    = errors.New("invalid stream parameters")
	ErrCanvasSize     = errors.New("canvas size does not match stream dimensions")
	ErrBadHeader      = errors.New("malformed stream header")
)

// Error wraps a failed operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("yuv4mpeg2: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Header returns the stream header line: progressive, square pixels, 4:4:4
// chroma and an integer frame rate.
func Header(width, height, fps int) string {
	return fmt.Sprintf("%s W%d H%d F%d:1 Ip A1:1 C444\n", Magic, width, height, fps)
}

// FrameSize is the serialized size of one frame including its marker.
func FrameSize(width, height int) int {
	return len(FrameMarker) + 3*width*height
}

// FrameCount divides the bytes following the header into frames. ok is false
// when trailing is not a whole number of frames.
func FrameCount(trailing int64, width, height int) (frames int64, ok bool) {
	size := int64(FrameSize(width, height))
	if size <= int64(len(FrameMarker)) {
		return 0, false
	}
	return trailing / size, trailing%size == 0
}

// Muxer writes one stream. It keeps the capture dimensions and reusable plane
// buffers, never the sink.
type Muxer struct {
	width, height int
	started       bool
	planes        colorspace.Planes
}

// NewMuxer returns a muxer that has not written its header yet.
func NewMuxer() *Muxer {
	return &Muxer{}
}

// Start writes the header line. It fixes the frame size for the rest of the
// stream.
func (m *Muxer) Start(sink io.Writer, width, height, fps int) error {
	if m.started {
		return &Error{Op: "start", Err: ErrAlreadyStarted}
	}
	if width <= 0 || height <= 0 || fps <= 0 {
		return &Error{Op: "start", Err: fmt.Errorf("%w: %dx%d@%d", ErrInvalidSize, width, height, fps)}
	}
	if _, err := io.WriteString(sink, Header(width, height, fps)); err != nil {
		return &Error{Op: "write header", Err: err}
	}
	m.width, m.height = width, height
	m.started = true
	return nil
}

// Frame converts canvas to planar YCbCr and writes the marker line followed
// by the Y, Cb and Cr planes.
func (m *Muxer) Frame(sink io.Writer, canvas []uint32) error {
	if !m.started {
		return &Error{Op: "frame", Err: ErrNotStarted}
	}
	if want := m.width * m.height; len(canvas) != want {
		return &Error{Op: "frame", Err: fmt.Errorf("%w: got %d pixels, want %d", ErrCanvasSize, len(canvas), want)}
	}

	m.planes.FromCanvas(canvas)
	for _, b := range [][]byte{[]byte(FrameMarker), m.planes.Y, m.planes.Cb, m.planes.Cr} {
		if _, err := sink.Write(b); err != nil {
			return &Error{Op: "write frame", Err: err}
		}
	}
	return nil
}

// StreamHeader holds the parameters recovered from a header line.
type StreamHeader struct {
	Width, Height int
	// RateNum:RateDen is the F tag.
	RateNum, RateDen int
	Interlace        string
	Aspect           string
	Chroma           string
	// Len is the header line length including its newline.
	Len int
}

// FPS returns the integer frame rate, or 0 when it is not integral.
func (h StreamHeader) FPS() int {
	if h.RateDen == 0 || h.RateNum%h.RateDen != 0 {
		return 0
	}
	return h.RateNum / h.RateDen
}

// ReadHeader reads and parses the header line from r. Unknown tags are
// ignored. W, H and F are required.
func ReadHeader(r *bufio.Reader) (StreamHeader, error) {
	var h StreamHeader
	line, err := r.ReadString('\n')
	if err != nil {
		return h, &Error{Op: "read header", Err: err}
	}
	h.Len = len(line)

	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != Magic {
		return h, &Error{Op: "read header", Err: fmt.Errorf("%w: missing %s magic", ErrBadHeader, Magic)}
	}
	for _, f := range fields[1:] {
		tag, val := f[0], f[1:]
		switch tag {
		case 'W':
			h.Width, err = strconv.Atoi(val)
		case 'H':
			h.Height, err = strconv.Atoi(val)
		case 'F':
			num, den, found := strings.Cut(val, ":")
			if !found {
				err = fmt.Errorf("frame rate %q has no denominator", val)
				break
			}
			if h.RateNum, err = strconv.Atoi(num); err == nil {
				h.RateDen, err = strconv.Atoi(den)
			}
		case 'I':
			h.Interlace = val
		case 'A':
			h.Aspect = val
		case 'C':
			h.Chroma = val
		}
		if err != nil {
			return h, &Error{Op: "read header", Err: fmt.Errorf("%w: tag %c: %v", ErrBadHeader, tag, err)}
		}
	}
	if h.Width <= 0 || h.Height <= 0 || h.RateDen <= 0 {
		return h, &Error{Op: "read header", Err: fmt.Errorf("%w: W, H and F are required", ErrBadHeader)}
	}
	return h, nil
}
