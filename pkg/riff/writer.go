// writer.go - Serialization of chunks and lists.
package riff

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// AppendChunk appends the serialized chunk to dst: id, size, content and a
// zero pad byte when the content length is odd.
func AppendChunk(dst []byte, c Chunk) []byte {
	if uint64(len(c.Content)) > math.MaxUint32 {
		panic(fmt.Sprintf("riff: chunk %s content of %d bytes overflows size field", c.ID, len(c.Content)))
	}
	dst = append(dst, c.ID[:]...)
	dst = binary.LittleEndian.AppendUint32(dst, c.Size())
	dst = append(dst, c.Content...)
	if len(c.Content)%2 != 0 {
		dst = append(dst, 0)
	}
	return dst
}

// AppendList appends the serialized list to dst: LIST, size, type and content.
func AppendList(dst []byte, l List) []byte {
	if uint64(len(l.Content)) > math.MaxUint32-4 {
		panic(fmt.Sprintf("riff: list %s content of %d bytes overflows size field", l.Type, len(l.Content)))
	}
	dst = append(dst, LIST[:]...)
	dst = binary.LittleEndian.AppendUint32(dst, l.Size())
	dst = append(dst, l.Type[:]...)
	return append(dst, l.Content...)
}

// AppendEntry appends a serialized Chunk or List to dst.
func AppendEntry(dst []byte, e Entry) []byte {
	switch e := e.(type) {
	case Chunk:
		return AppendChunk(dst, e)
	case List:
		return AppendList(dst, e)
	default:
		panic(fmt.Sprintf("riff: unknown entry type %T", e))
	}
}

// Serialize returns the bytes of a single node.
func Serialize(e Entry) []byte {
	return AppendEntry(make([]byte, 0, SerializedSize(e)), e)
}

// SerializedSize is the number of bytes Serialize produces for e.
func SerializedSize(e Entry) int {
	if _, ok := e.(List); ok {
		return ListHeaderSize + len(e.Payload())
	}
	return HeaderSize + int(PaddedSize(e.Size()))
}

// WriteEntry serializes e to w.
func WriteEntry(w io.Writer, e Entry) error {
	if _, err := w.Write(Serialize(e)); err != nil {
		return fmt.Errorf("write %s: %w", e.Tag(), err)
	}
	return nil
}

// NewList serializes the given children into the content of a list.
func NewList(typ FourCC, children ...Entry) List {
	size := 0
	for _, c := range children {
		size += SerializedSize(c)
	}
	content := make([]byte, 0, size)
	for _, c := range children {
		content = AppendEntry(content, c)
	}
	return List{Type: typ, Content: content}
}
