// parser.go - Diagnostic AVI reader: validation, header decoding, extraction.
package avi

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xob0t/clipforge/pkg/riff"
)

// Stream is one decoded strl list.
type Stream struct {
	Index  int
	Header StreamHeader

	// Video is set for vids streams.
	Video *BitmapInfoHeader
	// Audio is set for auds streams. Extensible reports whether the strf
	// record carried the WAVEFORMATEXTENSIBLE tail or only WAVEFORMATEX.
	Audio      *WaveFormatExtensible
	Extensible bool
}

// File is a parsed AVI file. Movi aliases the parsed buffer.
type File struct {
	Size    uint32
	Main    MainHeader
	Streams []Stream
	Movi    []byte
	Index   []IndexEntry
}

// ParseFile reads and parses the AVI file at path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "read", Err: err}
	}
	return Parse(data)
}

// Parse validates the RIFF envelope, decodes hdrl and locates movi.
// Any violated structural assumption is reported with the failing step.
func Parse(data []byte) (*File, error) {
	if len(data) < riff.HeaderSize || riff.Decode(data) != riff.RIFF {
		return nil, &Error{Op: "validate riff", Err: ErrNotRIFF}
	}
	size := le.Uint32(data[4:8])
	rest := data[riff.HeaderSize:]
	if uint64(size) != uint64(len(rest)) {
		return nil, &Error{Op: "validate riff", Err: fmt.Errorf("%w: declared %d, have %d", ErrSizeMismatch, size, len(rest))}
	}
	if len(rest) < 4 || riff.Decode(rest) != FormAVI {
		return nil, &Error{Op: "validate form", Err: ErrNotAVI}
	}

	f := &File{Size: size}
	r := riff.NewReader(rest[4:])

	entry, err := r.Next()
	if err == io.EOF {
		return nil, &Error{Op: "read hdrl", Err: fmt.Errorf("%w: hdrl", ErrMissingList)}
	}
	if err != nil {
		return nil, &Error{Op: "read hdrl", Err: err}
	}
	hdrl, ok := entry.(riff.List)
	if !ok || hdrl.Type != TagHdrl {
		return nil, &Error{Op: "read hdrl", Err: fmt.Errorf("%w: %s, want LIST hdrl", ErrUnexpectedChunk, entry.Tag())}
	}
	if err := f.parseHeaderList(hdrl.Content); err != nil {
		return nil, err
	}

	foundMovi := false
	for {
		entry, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &Error{Op: "read body", Err: err}
		}
		switch e := entry.(type) {
		case riff.List:
			if e.Type == TagMovi && !foundMovi {
				f.Movi = e.Content
				foundMovi = true
			}
		case riff.Chunk:
			if e.ID == TagIdx1 {
				idx, err := decodeIndex(e.Content)
				if err != nil {
					return nil, &Error{Op: "read idx1", Err: err}
				}
				f.Index = idx
			}
		}
	}
	if !foundMovi {
		return nil, &Error{Op: "read movi", Err: fmt.Errorf("%w: movi", ErrMissingList)}
	}
	return f, nil
}

func (f *File) parseHeaderList(content []byte) error {
	r := riff.NewReader(content)
	entry, err := r.Next()
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("%w: empty hdrl", ErrUnexpectedChunk)
		}
		return &Error{Op: "read avih", Err: err}
	}
	if _, ok := entry.(riff.Chunk); !ok || entry.Tag() != TagAvih {
		return &Error{Op: "read avih", Err: fmt.Errorf("%w: %s, want avih", ErrUnexpectedChunk, entry.Tag())}
	}
	if err := f.Main.UnmarshalBinary(entry.Payload()); err != nil {
		return &Error{Op: "read avih", Err: err}
	}

	for {
		entry, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &Error{Op: "read strl", Err: err}
		}
		l, ok := entry.(riff.List)
		if !ok || l.Type != TagStrl {
			continue
		}
		s, err := parseStreamList(l.Content, len(f.Streams))
		if err != nil {
			return err
		}
		f.Streams = append(f.Streams, s)
	}
}

func parseStreamList(content []byte, index int) (Stream, error) {
	s := Stream{Index: index}
	op := fmt.Sprintf("read stream %d", index)

	r := riff.NewReader(content)
	strh, err := nextChunk(r, TagStrh)
	if err != nil {
		return s, &Error{Op: op, Err: err}
	}
	if err := s.Header.UnmarshalBinary(strh.Content); err != nil {
		return s, &Error{Op: op, Err: err}
	}

	strf, err := nextChunk(r, TagStrf)
	if err != nil {
		return s, &Error{Op: op, Err: err}
	}
	switch s.Header.Type {
	case StreamVideo:
		var bih BitmapInfoHeader
		if err := bih.UnmarshalBinary(strf.Content); err != nil {
			return s, &Error{Op: op, Err: err}
		}
		s.Video = &bih
	case StreamAudio:
		var wfx WaveFormatExtensible
		if len(strf.Content) >= WaveFormatExtensibleSize {
			if err := wfx.UnmarshalBinary(strf.Content); err != nil {
				return s, &Error{Op: op, Err: err}
			}
			s.Extensible = wfx.Format.FormatTag == FormatTagExtensible
		} else if err := wfx.Format.UnmarshalBinary(strf.Content); err != nil {
			return s, &Error{Op: op, Err: err}
		}
		s.Audio = &wfx
	default:
		return s, &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrUnknownStream, s.Header.Type)}
	}
	return s, nil
}

func nextChunk(r *riff.Reader, want riff.FourCC) (riff.Chunk, error) {
	entry, err := r.Next()
	if err == io.EOF {
		return riff.Chunk{}, fmt.Errorf("%w: missing %s", ErrUnexpectedChunk, want)
	}
	if err != nil {
		return riff.Chunk{}, err
	}
	c, ok := entry.(riff.Chunk)
	if !ok || c.ID != want {
		return riff.Chunk{}, fmt.Errorf("%w: %s, want %s", ErrUnexpectedChunk, entry.Tag(), want)
	}
	return c, nil
}

// StreamOf returns the first stream of the given type.
func (f *File) StreamOf(typ riff.FourCC) (Stream, bool) {
	for _, s := range f.Streams {
		if s.Header.Type == typ {
			return s, true
		}
	}
	return Stream{}, false
}

// Chunks returns every movi chunk tagged id, in file order. Chunks nested in
// rec lists are included. The contents alias the parsed buffer.
func (f *File) Chunks(id riff.FourCC) ([]riff.Chunk, error) {
	var out []riff.Chunk
	err := walkMovi(f.Movi, func(c riff.Chunk) {
		if c.ID == id {
			out = append(out, c)
		}
	})
	if err != nil {
		return nil, &Error{Op: "read movi", Err: err}
	}
	return out, nil
}

func walkMovi(buf []byte, fn func(riff.Chunk)) error {
	for entry, err := range riff.Entries(buf) {
		if err != nil {
			return err
		}
		switch e := entry.(type) {
		case riff.Chunk:
			fn(e)
		case riff.List:
			if err := walkMovi(e.Content, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Extract concatenates the contents of every movi chunk matching each tag
// into one buffer per tag, preserving file order.
func (f *File) Extract(tags ...riff.FourCC) (map[riff.FourCC][]byte, error) {
	out := make(map[riff.FourCC][]byte, len(tags))
	for _, t := range tags {
		out[t] = []byte{}
	}
	err := walkMovi(f.Movi, func(c riff.Chunk) {
		if buf, ok := out[c.ID]; ok {
			out[c.ID] = append(buf, c.Content...)
		}
	})
	if err != nil {
		return nil, &Error{Op: "extract", Err: err}
	}
	return out, nil
}

// Dump prints the decoded headers and a per-tag chunk census of movi.
func (f *File) Dump(w io.Writer) error {
	p := &printer{w: w}
	p.line(0, "RIFF size=%d form=%s", f.Size, FormAVI)
	p.line(1, "avih")
	p.fields(2, f.Main.Fields())
	for _, s := range f.Streams {
		p.line(1, "strl #%d", s.Index)
		p.line(2, "strh")
		p.fields(3, s.Header.Fields())
		switch {
		case s.Video != nil:
			p.line(2, "strf BITMAPINFOHEADER")
			p.fields(3, s.Video.Fields())
		case s.Audio != nil && s.Extensible:
			p.line(2, "strf WAVEFORMATEXTENSIBLE")
			p.fields(3, s.Audio.Fields())
		case s.Audio != nil:
			p.line(2, "strf WAVEFORMATEX")
			p.fields(3, s.Audio.Format.Fields())
		}
	}

	p.line(1, "movi size=%d", len(f.Movi))
	counts := map[riff.FourCC]int{}
	var order []riff.FourCC
	err := walkMovi(f.Movi, func(c riff.Chunk) {
		if counts[c.ID] == 0 {
			order = append(order, c.ID)
		}
		counts[c.ID]++
	})
	if err != nil {
		return &Error{Op: "dump movi", Err: err}
	}
	for _, id := range order {
		p.line(2, "%s chunks=%d", id, counts[id])
	}
	if f.Index != nil {
		p.line(1, "idx1 entries=%d", len(f.Index))
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(level int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, strings.Repeat("  ", level)+format+"\n", args...)
}

func (p *printer) fields(level int, fields []Field) {
	for _, f := range fields {
		p.line(level, "%-22s %v", f.Name, f.Value)
	}
}
