// headers.go - Fixed-layout AVI header records, encoded field by field.
package avi

import (
	"encoding/binary"
	"fmt"

	"github.com/xob0t/clipforge/pkg/riff"
)

// Serialized sizes of the header records.
const (
	MainHeaderSize           = 56
	StreamHeaderSize         = 56
	BitmapInfoHeaderSize     = 40
	WaveFormatExSize         = 18
	GUIDSize                 = 16
	WaveFormatExtensibleSize = WaveFormatExSize + 2 + 4 + GUIDSize
)

var le = binary.LittleEndian

// Field is one named header value, used for diagnostic output.
type Field struct {
	Name  string
	Value any
}

func shortRecord(name string, want, got int) error {
	return fmt.Errorf("%s: need %d bytes, got %d", name, want, got)
}

// MainHeader is the avih record.
type MainHeader struct {
	MicroSecPerFrame    uint32
	MaxBytesPerSec      uint32
	PaddingGranularity  uint32
	Flags               uint32
	TotalFrames         uint32
	InitialFrames       uint32
	Streams             uint32
	SuggestedBufferSize uint32
	Width               uint32
	Height              uint32
	Reserved            [4]uint32
}

// MarshalBinary encodes the header in file order.
func (h MainHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, MainHeaderSize)
	le.PutUint32(b[0:4], h.MicroSecPerFrame)
	le.PutUint32(b[4:8], h.MaxBytesPerSec)
	le.PutUint32(b[8:12], h.PaddingGranularity)
	le.PutUint32(b[12:16], h.Flags)
	le.PutUint32(b[16:20], h.TotalFrames)
	le.PutUint32(b[20:24], h.InitialFrames)
	le.PutUint32(b[24:28], h.Streams)
	le.PutUint32(b[28:32], h.SuggestedBufferSize)
	le.PutUint32(b[32:36], h.Width)
	le.PutUint32(b[36:40], h.Height)
	for i, v := range h.Reserved {
		le.PutUint32(b[40+4*i:44+4*i], v)
	}
	return b, nil
}

// UnmarshalBinary decodes the header. Trailing bytes are ignored.
func (h *MainHeader) UnmarshalBinary(b []byte) error {
	if len(b) < MainHeaderSize {
		return shortRecord("avih", MainHeaderSize, len(b))
	}
	h.MicroSecPerFrame = le.Uint32(b[0:4])
	h.MaxBytesPerSec = le.Uint32(b[4:8])
	h.PaddingGranularity = le.Uint32(b[8:12])
	h.Flags = le.Uint32(b[12:16])
	h.TotalFrames = le.Uint32(b[16:20])
	h.InitialFrames = le.Uint32(b[20:24])
	h.Streams = le.Uint32(b[24:28])
	h.SuggestedBufferSize = le.Uint32(b[28:32])
	h.Width = le.Uint32(b[32:36])
	h.Height = le.Uint32(b[36:40])
	for i := range h.Reserved {
		h.Reserved[i] = le.Uint32(b[40+4*i : 44+4*i])
	}
	return nil
}

// Fields lists the header values in file order.
func (h MainHeader) Fields() []Field {
	return []Field{
		{"dwMicroSecPerFrame", h.MicroSecPerFrame},
		{"dwMaxBytesPerSec", h.MaxBytesPerSec},
		{"dwPaddingGranularity", h.PaddingGranularity},
		{"dwFlags", fmt.Sprintf("0x%x", h.Flags)},
		{"dwTotalFrames", h.TotalFrames},
		{"dwInitialFrames", h.InitialFrames},
		{"dwStreams", h.Streams},
		{"dwSuggestedBufferSize", h.SuggestedBufferSize},
		{"dwWidth", h.Width},
		{"dwHeight", h.Height},
		{"dwReserved", h.Reserved},
	}
}

// Rect is the frame rectangle of a stream header.
type Rect struct {
	Left, Top, Right, Bottom int16
}

// StreamHeader is the strh record. Rate/Scale is the stream time base.
type StreamHeader struct {
	Type                riff.FourCC
	Handler             riff.FourCC
	Flags               uint32
	Priority            uint16
	Language            uint16
	InitialFrames       uint32
	Scale               uint32
	Rate                uint32
	Start               uint32
	Length              uint32
	SuggestedBufferSize uint32
	Quality             uint32
	SampleSize          uint32
	Frame               Rect
}

// MarshalBinary encodes the header in file order.
func (h StreamHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, StreamHeaderSize)
	copy(b[0:4], h.Type[:])
	copy(b[4:8], h.Handler[:])
	le.PutUint32(b[8:12], h.Flags)
	le.PutUint16(b[12:14], h.Priority)
	le.PutUint16(b[14:16], h.Language)
	le.PutUint32(b[16:20], h.InitialFrames)
	le.PutUint32(b[20:24], h.Scale)
	le.PutUint32(b[24:28], h.Rate)
	le.PutUint32(b[28:32], h.Start)
	le.PutUint32(b[32:36], h.Length)
	le.PutUint32(b[36:40], h.SuggestedBufferSize)
	le.PutUint32(b[40:44], h.Quality)
	le.PutUint32(b[44:48], h.SampleSize)
	le.PutUint16(b[48:50], uint16(h.Frame.Left))
	le.PutUint16(b[50:52], uint16(h.Frame.Top))
	le.PutUint16(b[52:54], uint16(h.Frame.Right))
	le.PutUint16(b[54:56], uint16(h.Frame.Bottom))
	return b, nil
}

// UnmarshalBinary decodes the header. Trailing bytes are ignored.
func (h *StreamHeader) UnmarshalBinary(b []byte) error {
	if len(b) < StreamHeaderSize {
		return shortRecord("strh", StreamHeaderSize, len(b))
	}
	h.Type = riff.Decode(b[0:4])
	h.Handler = riff.Decode(b[4:8])
	h.Flags = le.Uint32(b[8:12])
	h.Priority = le.Uint16(b[12:14])
	h.Language = le.Uint16(b[14:16])
	h.InitialFrames = le.Uint32(b[16:20])
	h.Scale = le.Uint32(b[20:24])
	h.Rate = le.Uint32(b[24:28])
	h.Start = le.Uint32(b[28:32])
	h.Length = le.Uint32(b[32:36])
	h.SuggestedBufferSize = le.Uint32(b[36:40])
	h.Quality = le.Uint32(b[40:44])
	h.SampleSize = le.Uint32(b[44:48])
	h.Frame = Rect{
		Left:   int16(le.Uint16(b[48:50])),
		Top:    int16(le.Uint16(b[50:52])),
		Right:  int16(le.Uint16(b[52:54])),
		Bottom: int16(le.Uint16(b[54:56])),
	}
	return nil
}

// Fields lists the header values in file order.
func (h StreamHeader) Fields() []Field {
	return []Field{
		{"fccType", h.Type},
		{"fccHandler", h.Handler},
		{"dwFlags", h.Flags},
		{"wPriority", h.Priority},
		{"wLanguage", h.Language},
		{"dwInitialFrames", h.InitialFrames},
		{"dwScale", h.Scale},
		{"dwRate", h.Rate},
		{"dwStart", h.Start},
		{"dwLength", h.Length},
		{"dwSuggestedBufferSize", h.SuggestedBufferSize},
		{"dwQuality", fmt.Sprintf("0x%x", h.Quality)},
		{"dwSampleSize", h.SampleSize},
		{"rcFrame", fmt.Sprintf("{%d %d %d %d}", h.Frame.Left, h.Frame.Top, h.Frame.Right, h.Frame.Bottom)},
	}
}

// BitmapInfoHeader is the strf record of a video stream.
// A negative Height marks top-down row order.
type BitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// MarshalBinary encodes the header in file order.
func (h BitmapInfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, BitmapInfoHeaderSize)
	le.PutUint32(b[0:4], h.Size)
	le.PutUint32(b[4:8], uint32(h.Width))
	le.PutUint32(b[8:12], uint32(h.Height))
	le.PutUint16(b[12:14], h.Planes)
	le.PutUint16(b[14:16], h.BitCount)
	le.PutUint32(b[16:20], h.Compression)
	le.PutUint32(b[20:24], h.SizeImage)
	le.PutUint32(b[24:28], uint32(h.XPelsPerMeter))
	le.PutUint32(b[28:32], uint32(h.YPelsPerMeter))
	le.PutUint32(b[32:36], h.ClrUsed)
	le.PutUint32(b[36:40], h.ClrImportant)
	return b, nil
}

// UnmarshalBinary decodes the header. Trailing bytes (palettes) are ignored.
func (h *BitmapInfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < BitmapInfoHeaderSize {
		return shortRecord("BITMAPINFOHEADER", BitmapInfoHeaderSize, len(b))
	}
	h.Size = le.Uint32(b[0:4])
	h.Width = int32(le.Uint32(b[4:8]))
	h.Height = int32(le.Uint32(b[8:12]))
	h.Planes = le.Uint16(b[12:14])
	h.BitCount = le.Uint16(b[14:16])
	h.Compression = le.Uint32(b[16:20])
	h.SizeImage = le.Uint32(b[20:24])
	h.XPelsPerMeter = int32(le.Uint32(b[24:28]))
	h.YPelsPerMeter = int32(le.Uint32(b[28:32]))
	h.ClrUsed = le.Uint32(b[32:36])
	h.ClrImportant = le.Uint32(b[36:40])
	return nil
}

// Fields lists the header values in file order.
func (h BitmapInfoHeader) Fields() []Field {
	return []Field{
		{"biSize", h.Size},
		{"biWidth", h.Width},
		{"biHeight", h.Height},
		{"biPlanes", h.Planes},
		{"biBitCount", h.BitCount},
		{"biCompression", h.Compression},
		{"biSizeImage", h.SizeImage},
		{"biXPelsPerMeter", h.XPelsPerMeter},
		{"biYPelsPerMeter", h.YPelsPerMeter},
		{"biClrUsed", h.ClrUsed},
		{"biClrImportant", h.ClrImportant},
	}
}

// WaveFormatEx is the base audio format record.
type WaveFormatEx struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	ExtraSize      uint16
}

func (f WaveFormatEx) put(b []byte) {
	le.PutUint16(b[0:2], f.FormatTag)
	le.PutUint16(b[2:4], f.Channels)
	le.PutUint32(b[4:8], f.SamplesPerSec)
	le.PutUint32(b[8:12], f.AvgBytesPerSec)
	le.PutUint16(b[12:14], f.BlockAlign)
	le.PutUint16(b[14:16], f.BitsPerSample)
	le.PutUint16(b[16:18], f.ExtraSize)
}

// MarshalBinary encodes the record in file order.
func (f WaveFormatEx) MarshalBinary() ([]byte, error) {
	b := make([]byte, WaveFormatExSize)
	f.put(b)
	return b, nil
}

// UnmarshalBinary decodes the record. A 16-byte PCMWAVEFORMAT without the
// extra-size field is accepted.
func (f *WaveFormatEx) UnmarshalBinary(b []byte) error {
	if len(b) < WaveFormatExSize-2 {
		return shortRecord("WAVEFORMATEX", WaveFormatExSize, len(b))
	}
	f.FormatTag = le.Uint16(b[0:2])
	f.Channels = le.Uint16(b[2:4])
	f.SamplesPerSec = le.Uint32(b[4:8])
	f.AvgBytesPerSec = le.Uint32(b[8:12])
	f.BlockAlign = le.Uint16(b[12:14])
	f.BitsPerSample = le.Uint16(b[14:16])
	f.ExtraSize = 0
	if len(b) >= WaveFormatExSize {
		f.ExtraSize = le.Uint16(b[16:18])
	}
	return nil
}

// Fields lists the record values in file order.
func (f WaveFormatEx) Fields() []Field {
	return []Field{
		{"wFormatTag", fmt.Sprintf("0x%04x", f.FormatTag)},
		{"nChannels", f.Channels},
		{"nSamplesPerSec", f.SamplesPerSec},
		{"nAvgBytesPerSec", f.AvgBytesPerSec},
		{"nBlockAlign", f.BlockAlign},
		{"wBitsPerSample", f.BitsPerSample},
		{"cbSize", f.ExtraSize},
	}
}

// GUID is a Microsoft GUID with its mixed-endian layout.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

func (g GUID) put(b []byte) {
	le.PutUint32(b[0:4], g.Data1)
	le.PutUint16(b[4:6], g.Data2)
	le.PutUint16(b[6:8], g.Data3)
	copy(b[8:16], g.Data4[:])
}

func decodeGUID(b []byte) GUID {
	var g GUID
	g.Data1 = le.Uint32(b[0:4])
	g.Data2 = le.Uint16(b[4:6])
	g.Data3 = le.Uint16(b[6:8])
	copy(g.Data4[:], b[8:16])
	return g
}

func (g GUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%x-%x", g.Data1, g.Data2, g.Data3, g.Data4[:2], g.Data4[2:])
}

// WaveFormatExtensible is the strf record of the audio stream.
//
// Samples is one of wValidBitsPerSample, wSamplesPerBlock or wReserved; the
// file carries no discriminant, so the consumer picks the meaning.
type WaveFormatExtensible struct {
	Format      WaveFormatEx
	Samples     uint16
	ChannelMask uint32
	SubFormat   GUID
}

// MarshalBinary encodes the record in file order, without padding.
func (f WaveFormatExtensible) MarshalBinary() ([]byte, error) {
	b := make([]byte, WaveFormatExtensibleSize)
	f.Format.put(b[0:18])
	le.PutUint16(b[18:20], f.Samples)
	le.PutUint32(b[20:24], f.ChannelMask)
	f.SubFormat.put(b[24:40])
	return b, nil
}

// UnmarshalBinary decodes the record.
func (f *WaveFormatExtensible) UnmarshalBinary(b []byte) error {
	if len(b) < WaveFormatExtensibleSize {
		return shortRecord("WAVEFORMATEXTENSIBLE", WaveFormatExtensibleSize, len(b))
	}
	if err := f.Format.UnmarshalBinary(b[0:18]); err != nil {
		return err
	}
	f.Samples = le.Uint16(b[18:20])
	f.ChannelMask = le.Uint32(b[20:24])
	f.SubFormat = decodeGUID(b[24:40])
	return nil
}

// Fields lists the record values in file order.
func (f WaveFormatExtensible) Fields() []Field {
	return append(f.Format.Fields(),
		Field{"Samples", f.Samples},
		Field{"dwChannelMask", fmt.Sprintf("0x%x", f.ChannelMask)},
		Field{"SubFormat", f.SubFormat},
	)
}

// recordChunk wraps a marshaled header into a chunk.
func recordChunk(id riff.FourCC, rec interface{ MarshalBinary() ([]byte, error) }) riff.Chunk {
	b, err := rec.MarshalBinary()
	if err != nil {
		// Header records are fixed-size and never fail to encode.
		panic(fmt.Sprintf("avi: marshal %s: %v", id, err))
	}
	return riff.Chunk{ID: id, Content: b}
}
