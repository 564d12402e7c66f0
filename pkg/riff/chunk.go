// Package riff reads and writes RIFF chunk/list trees.
//
// A tree is a byte buffer of nodes. A Chunk is a leaf: tag, size, content and
// one zero pad byte when the content length is odd. A List carries a type tag
// and a content that is itself a sequence of nodes; lists are never padded.
package riff

import (
	"errors"
	"fmt"
)

const (
	// HeaderSize is the tag plus the 32-bit size field.
	HeaderSize = 8
	// ListHeaderSize is HeaderSize plus the list type tag.
	ListHeaderSize = HeaderSize + 4
)

// Entry is a node of a RIFF tree: either a Chunk or a List.
type Entry interface {
	// Tag is the chunk id for a Chunk and the list type for a List.
	Tag() FourCC
	// Size is the value stored in the node's size field.
	Size() uint32
	// Payload is the node content, excluding headers and padding.
	Payload() []byte

	isEntry()
}

// Chunk is a leaf node.
type Chunk struct {
	ID      FourCC
	Content []byte
}

// Tag returns the chunk id.
func (c Chunk) Tag() FourCC { return c.ID }

// Size returns len(Content).
func (c Chunk) Size() uint32 { return uint32(len(c.Content)) }

// Payload returns the chunk content.
func (c Chunk) Payload() []byte { return c.Content }

func (Chunk) isEntry() {}

// List is a node whose content is a concatenation of serialized nodes.
type List struct {
	Type    FourCC
	Content []byte
}

// Tag returns the list type.
func (l List) Tag() FourCC { return l.Type }

// Size returns len(Content) plus the 4 bytes of the embedded type tag.
func (l List) Size() uint32 { return uint32(len(l.Content)) + 4 }

// Payload returns the list content.
func (l List) Payload() []byte { return l.Content }

func (List) isEntry() {}

// Entries returns a reader over the children of the list.
func (l List) Entries() *Reader { return NewReader(l.Content) }

// Parse errors.
var (
	ErrShortHeader  = errors.New("buffer shorter than node header")
	ErrTruncated    = errors.New("declared size exceeds buffer")
	ErrListTooSmall = errors.New("list size smaller than its type tag")
)

// Error describes where in a buffer parsing failed.
type Error struct {
	Op     string
	Offset int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("riff: %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PaddedSize rounds size up to the next even number.
func PaddedSize(size uint32) uint64 {
	return (uint64(size) + 1) &^ 1
}
