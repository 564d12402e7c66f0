// muxer.go - In-memory AVI muxer: accumulate movi, assemble on finish.
package avi

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/xob0t/clipforge/pkg/colorspace"
	"github.com/xob0t/clipforge/pkg/riff"
)

// Call-order errors.
var (
	ErrNotStarted     = errors.New("muxer not started")
	ErrAlreadyStarted = errors.New("muxer already recording")
	ErrFinished       = errors.New("muxer already finished")
	ErrInvalidCapture = errors.New("invalid capture parameters")
	ErrCanvasSize     = errors.New("canvas size does not match capture dimensions")
)

type muxerState int

const (
	stateIdle muxerState = iota
	stateRecording
	stateFinished
)

func (s muxerState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRecording:
		return "recording"
	case stateFinished:
		return "finished"
	}
	return fmt.Sprintf("muxerState(%d)", int(s))
}

// IndexEntry is one record of the legacy idx1 index.
type IndexEntry struct {
	ChunkID riff.FourCC
	Flags   uint32
	Offset  uint32 // from the movi type tag
	Size    uint32
}

// IndexEntrySize is the serialized size of an IndexEntry.
const IndexEntrySize = 16

// Muxer accumulates video and audio chunks for a single output file.
// It is not safe for concurrent use.
type Muxer struct {
	// Index appends an idx1 chunk after movi and sets AVIF_HASINDEX.
	Index bool

	state   muxerState
	capture Capture
	movi    []byte
	bgr     []byte
	index   []IndexEntry
}

// NewMuxer returns an idle muxer.
func NewMuxer() *Muxer {
	return &Muxer{}
}

// Start begins recording. It resets the frame and sample counters and clears
// any accumulated movi data.
func (m *Muxer) Start(width, height, fps int) error {
	switch m.state {
	case stateRecording:
		return &Error{Op: "start", Err: ErrAlreadyStarted}
	case stateFinished:
		return &Error{Op: "start", Err: ErrFinished}
	}
	if width <= 0 || height <= 0 || fps <= 0 || width > math.MaxInt16 || height > math.MaxInt16 {
		return &Error{Op: "start", Err: fmt.Errorf("%w: %dx%d@%d", ErrInvalidCapture, width, height, fps)}
	}

	m.capture = Capture{Width: width, Height: height, FPS: fps}
	m.movi = m.movi[:0]
	m.index = m.index[:0]
	m.state = stateRecording
	return nil
}

// Frame appends one video chunk (BGR24) and one audio chunk (little-endian
// float32) to movi. Nothing is written to disk until Finish.
func (m *Muxer) Frame(canvas []uint32, samples []float32) error {
	if err := m.expect(stateRecording, "frame"); err != nil {
		return err
	}
	if want := m.capture.Width * m.capture.Height; len(canvas) != want {
		return &Error{Op: "frame", Err: fmt.Errorf("%w: got %d pixels, want %d", ErrCanvasSize, len(canvas), want)}
	}

	m.bgr = colorspace.AppendBGR24(m.bgr[:0], canvas)
	m.appendChunk(TagVideoFrame, m.bgr)

	audio := make([]byte, 0, len(samples)*AudioSampleSize)
	for _, s := range samples {
		audio = le.AppendUint32(audio, math.Float32bits(s))
	}
	m.appendChunk(TagAudioFrame, audio)

	m.capture.Frames++
	m.capture.Samples += len(samples)
	return nil
}

func (m *Muxer) appendChunk(id riff.FourCC, content []byte) {
	m.index = append(m.index, IndexEntry{
		ChunkID: id,
		Flags:   AVIIFKeyframe,
		Offset:  uint32(4 + len(m.movi)),
		Size:    uint32(len(content)),
	})
	m.movi = riff.AppendChunk(m.movi, riff.Chunk{ID: id, Content: content})
}

// Capture returns the current capture parameters and counters.
func (m *Muxer) Capture() Capture {
	return m.capture
}

// Finish assembles the file and writes it to path. It may be called once.
func (m *Muxer) Finish(path string) error {
	file, err := m.finish()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return &Error{Op: "write", Err: err}
	}
	if err := riff.WriteEntry(f, file); err != nil {
		f.Close()
		return &Error{Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Op: "write", Err: err}
	}
	return nil
}

// FinishTo is like Finish but writes the file to w.
func (m *Muxer) FinishTo(w io.Writer) error {
	file, err := m.finish()
	if err != nil {
		return err
	}
	if err := riff.WriteEntry(w, file); err != nil {
		return &Error{Op: "write", Err: err}
	}
	return nil
}

func (m *Muxer) finish() (riff.Chunk, error) {
	if err := m.expect(stateRecording, "finish"); err != nil {
		return riff.Chunk{}, err
	}
	m.state = stateFinished
	return m.assemble(), nil
}

func (m *Muxer) expect(want muxerState, op string) error {
	if m.state == want {
		return nil
	}
	switch m.state {
	case stateIdle:
		return &Error{Op: op, Err: ErrNotStarted}
	case stateFinished:
		return &Error{Op: op, Err: ErrFinished}
	}
	return &Error{Op: op, Err: fmt.Errorf("muxer is %s, want %s", m.state, want)}
}

// assemble builds the file bottom-up: header records, strl lists, hdrl,
// movi, then the RIFF chunk around all of them.
func (m *Muxer) assemble() riff.Chunk {
	flags := uint32(AVIFIsInterleaved | AVIFTrustCKType)
	if m.Index {
		flags |= AVIFHasIndex
	}

	hdrl := BuildHeaderList(m.capture, flags)
	movi := riff.List{Type: TagMovi, Content: m.movi}

	size := 4 + riff.SerializedSize(hdrl) + riff.SerializedSize(movi)
	var idx1 riff.Chunk
	if m.Index {
		idx1 = riff.Chunk{ID: TagIdx1, Content: encodeIndex(m.index)}
		size += riff.SerializedSize(idx1)
	}

	content := make([]byte, 0, size)
	content = append(content, FormAVI[:]...)
	content = riff.AppendList(content, hdrl)
	content = riff.AppendList(content, movi)
	if m.Index {
		content = riff.AppendChunk(content, idx1)
	}

	if len(content) != size {
		panic(fmt.Sprintf("avi: assembled %d bytes of RIFF content, expected %d", len(content), size))
	}
	return riff.Chunk{ID: riff.RIFF, Content: content}
}

func encodeIndex(entries []IndexEntry) []byte {
	b := make([]byte, 0, len(entries)*IndexEntrySize)
	for _, e := range entries {
		b = append(b, e.ChunkID[:]...)
		b = le.AppendUint32(b, e.Flags)
		b = le.AppendUint32(b, e.Offset)
		b = le.AppendUint32(b, e.Size)
	}
	return b
}

func decodeIndex(b []byte) ([]IndexEntry, error) {
	if len(b)%IndexEntrySize != 0 {
		return nil, fmt.Errorf("idx1 size %d is not a multiple of %d", len(b), IndexEntrySize)
	}
	entries := make([]IndexEntry, 0, len(b)/IndexEntrySize)
	for off := 0; off < len(b); off += IndexEntrySize {
		entries = append(entries, IndexEntry{
			ChunkID: riff.Decode(b[off : off+4]),
			Flags:   le.Uint32(b[off+4 : off+8]),
			Offset:  le.Uint32(b[off+8 : off+12]),
			Size:    le.Uint32(b[off+12 : off+16]),
		})
	}
	return entries, nil
}
