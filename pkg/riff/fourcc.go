// fourcc.go - Four-character codes used as chunk and list tags.
package riff

import (
	"encoding/binary"
	"fmt"
)

// FourCC is a 4-byte tag. Its integer view is little-endian, so the tag "RIFF"
// reads as 0x46464952.
type FourCC [4]byte

// Reserved tags of the RIFF container itself.
var (
	RIFF = FourCC{'R', 'I', 'F', 'F'}
	LIST = FourCC{'L', 'I', 'S', 'T'}
)

// Decode reads a FourCC from the first 4 bytes of b.
// It panics if b is shorter than 4 bytes.
func Decode(b []byte) FourCC {
	var f FourCC
	copy(f[:], b[:4])
	return f
}

// Encode returns the raw bytes of the tag.
func (f FourCC) Encode() [4]byte {
	return f
}

// FromUint32 builds a tag from its little-endian integer view.
func FromUint32(v uint32) FourCC {
	var f FourCC
	binary.LittleEndian.PutUint32(f[:], v)
	return f
}

// Uint32 returns the little-endian integer view of the tag.
func (f FourCC) Uint32() uint32 {
	return binary.LittleEndian.Uint32(f[:])
}

// ParseFourCC converts a 4-character string into a tag.
func ParseFourCC(s string) (FourCC, error) {
	if len(s) != 4 {
		return FourCC{}, fmt.Errorf("fourcc %q: want 4 bytes, got %d", s, len(s))
	}
	return Decode([]byte(s)), nil
}

// MustFourCC is like ParseFourCC but panics on malformed input.
// It is meant for package-level tag literals.
func MustFourCC(s string) FourCC {
	f, err := ParseFourCC(s)
	if err != nil {
		panic(err)
	}
	return f
}

// IsPrintable reports whether every byte of the tag is printable ASCII.
func (f FourCC) IsPrintable() bool {
	for _, b := range f {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// String returns the tag as text when printable, or its integer view in hex.
func (f FourCC) String() string {
	if f.IsPrintable() {
		return string(f[:])
	}
	return fmt.Sprintf("0x%08x", f.Uint32())
}
