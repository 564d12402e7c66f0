// reader.go - Lazy traversal of a RIFF node sequence.
package riff

import (
	"encoding/binary"
	"io"
	"iter"
)

// ParseNext decodes the first node of buf and returns it together with the
// rest of the buffer. Returned content slices alias buf.
//
// A chunk's pad byte is consumed but never exposed. A final chunk whose pad
// byte is missing at the very end of buf is accepted.
func ParseNext(buf []byte) (Entry, []byte, error) {
	if len(buf) < HeaderSize {
		return nil, buf, ErrShortHeader
	}
	id := Decode(buf[0:4])
	size := binary.LittleEndian.Uint32(buf[4:8])
	rest := buf[HeaderSize:]

	if id == LIST {
		if len(rest) < 4 {
			return nil, buf, ErrShortHeader
		}
		if size < 4 {
			return nil, buf, ErrListTooSmall
		}
		typ := Decode(rest[0:4])
		rest = rest[4:]
		n := uint64(size) - 4
		if uint64(len(rest)) < n {
			return nil, buf, ErrTruncated
		}
		return List{Type: typ, Content: rest[:n:n]}, rest[n:], nil
	}

	n := uint64(size)
	if uint64(len(rest)) < n {
		return nil, buf, ErrTruncated
	}
	chunk := Chunk{ID: id, Content: rest[:n:n]}
	skip := min(PaddedSize(size), uint64(len(rest)))
	return chunk, rest[skip:], nil
}

// Reader pulls nodes one at a time from an immutable buffer.
// A Reader is restartable only by creating a new one over the same buffer.
type Reader struct {
	buf    []byte
	offset int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Next returns the next node. It returns io.EOF once the buffer is exhausted
// and an *Error if the remaining bytes do not form a node.
func (r *Reader) Next() (Entry, error) {
	if len(r.buf) == 0 {
		return nil, io.EOF
	}
	entry, rest, err := ParseNext(r.buf)
	if err != nil {
		return nil, &Error{Op: "parse node", Offset: r.offset, Err: err}
	}
	r.offset += len(r.buf) - len(rest)
	r.buf = rest
	return entry, nil
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.offset
}

// Entries ranges over every node of buf. Iteration stops after the first error.
func Entries(buf []byte) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		r := NewReader(buf)
		for {
			entry, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

// ReadAll parses every node of buf.
func ReadAll(buf []byte) ([]Entry, error) {
	var entries []Entry
	for entry, err := range Entries(buf) {
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
