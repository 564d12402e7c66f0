// capture.go - Fabrication of the hdrl header block from capture parameters.
package avi

import (
	"github.com/xob0t/clipforge/pkg/riff"
)

// Canonical capture configuration. Every file this package writes carries
// exactly two streams: raw 24-bit BGR video (stream 0) and mono 32-bit IEEE
// float audio at 48 kHz (stream 1).
const (
	StreamCount = 2

	VideoBitCount      = 24
	VideoBytesPerPixel = VideoBitCount / 8

	SampleRate         = 48000
	AudioChannels      = 1
	AudioSampleSize    = 4 // bytes per float32 sample
	AudioBitsPerSample = AudioSampleSize * 8
	AudioBlockAlign    = AudioChannels * AudioSampleSize

	// MainSuggestedBufferSize is the reader buffer hint of avih (1 MiB).
	MainSuggestedBufferSize = 1 << 20

	// QualityDefault asks players to use their default quality.
	QualityDefault = 0xFFFFFFFF

	// BIRGB marks uncompressed bitmap data.
	BIRGB = 0

	// FormatTagExtensible is WAVE_FORMAT_EXTENSIBLE.
	FormatTagExtensible = 0xFFFE
	// ExtensibleExtraSize is the cbSize of WAVEFORMATEXTENSIBLE.
	ExtensibleExtraSize = WaveFormatExtensibleSize - WaveFormatExSize
	// SpeakerFrontCenter is the channel mask of a mono stream.
	SpeakerFrontCenter = 0x4
)

// avih flags.
const (
	AVIFHasIndex      = 0x00000010
	AVIFIsInterleaved = 0x00000100
	AVIFTrustCKType   = 0x00000800
)

// AVIIFKeyframe marks an idx1 entry as a key frame.
const AVIIFKeyframe = 0x00000010

var (
	// VideoHandler is the fccHandler of the raw video stream (none).
	VideoHandler = riff.FourCC{}
	// AudioHandler is the fccHandler of the audio stream.
	AudioHandler = riff.FromUint32(1)

	// SubFormatIEEEFloat is KSDATAFORMAT_SUBTYPE_IEEE_FLOAT.
	SubFormatIEEEFloat = GUID{
		Data1: 0x00000003,
		Data2: 0x0000,
		Data3: 0x0010,
		Data4: [8]byte{0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71},
	}
)

// Capture holds the parameters the headers are derived from.
type Capture struct {
	Width   int
	Height  int
	FPS     int
	Frames  int // video chunks written
	Samples int // audio samples written
}

// FrameBytes is the size of one BGR24 frame.
func (c Capture) FrameBytes() int {
	return c.Width * c.Height * VideoBytesPerPixel
}

// SamplesPerFrame is the audio sample count delivered per video frame.
func (c Capture) SamplesPerFrame() int {
	if c.FPS <= 0 {
		return 0
	}
	return SampleRate / c.FPS
}

// AudioBytesPerSec is the audio data rate.
func (c Capture) AudioBytesPerSec() int {
	return SampleRate * AudioBlockAlign
}

// MaxBytesPerSec is the combined data rate of both streams.
func (c Capture) MaxBytesPerSec() int {
	return c.FrameBytes()*c.FPS + c.AudioBytesPerSec()
}

// MicroSecPerFrame is the frame period.
func (c Capture) MicroSecPerFrame() int {
	if c.FPS <= 0 {
		return 0
	}
	return 1000000 / c.FPS
}

// NewMainHeader builds the avih record.
func NewMainHeader(c Capture, flags uint32) MainHeader {
	return MainHeader{
		MicroSecPerFrame:    uint32(c.MicroSecPerFrame()),
		MaxBytesPerSec:      uint32(c.MaxBytesPerSec()),
		Flags:               flags,
		TotalFrames:         uint32(c.Frames),
		Streams:             StreamCount,
		SuggestedBufferSize: MainSuggestedBufferSize,
		Width:               uint32(c.Width),
		Height:              uint32(c.Height),
	}
}

// NewVideoStream builds the strh and strf records of the video stream.
func NewVideoStream(c Capture) (StreamHeader, BitmapInfoHeader) {
	strh := StreamHeader{
		Type:                StreamVideo,
		Handler:             VideoHandler,
		Scale:               1,
		Rate:                uint32(c.FPS),
		Length:              uint32(c.Frames),
		SuggestedBufferSize: uint32(c.FrameBytes()),
		Quality:             QualityDefault,
		Frame:               Rect{Right: int16(c.Width), Bottom: int16(c.Height)},
	}
	strf := BitmapInfoHeader{
		Size:        BitmapInfoHeaderSize,
		Width:       int32(c.Width),
		Height:      -int32(c.Height),
		Planes:      1,
		BitCount:    VideoBitCount,
		Compression: BIRGB,
		SizeImage:   uint32(c.FrameBytes()),
	}
	return strh, strf
}

// NewAudioStream builds the strh and strf records of the audio stream.
func NewAudioStream(c Capture) (StreamHeader, WaveFormatExtensible) {
	strh := StreamHeader{
		Type:                StreamAudio,
		Handler:             AudioHandler,
		Scale:               1,
		Rate:                SampleRate,
		Length:              uint32(c.Samples),
		SuggestedBufferSize: uint32(c.SamplesPerFrame() * AudioBlockAlign),
		Quality:             QualityDefault,
		SampleSize:          AudioSampleSize,
	}
	strf := WaveFormatExtensible{
		Format: WaveFormatEx{
			FormatTag:      FormatTagExtensible,
			Channels:       AudioChannels,
			SamplesPerSec:  SampleRate,
			AvgBytesPerSec: uint32(c.AudioBytesPerSec()),
			BlockAlign:     AudioBlockAlign,
			BitsPerSample:  AudioBitsPerSample,
			ExtraSize:      ExtensibleExtraSize,
		},
		Samples:     AudioBitsPerSample,
		ChannelMask: SpeakerFrontCenter,
		SubFormat:   SubFormatIEEEFloat,
	}
	return strh, strf
}

// BuildHeaderList assembles the hdrl list: avih, then one strl per stream in
// the order their chunks are tagged inside movi.
func BuildHeaderList(c Capture, flags uint32) riff.List {
	vStrh, vStrf := NewVideoStream(c)
	aStrh, aStrf := NewAudioStream(c)
	return riff.NewList(TagHdrl,
		recordChunk(TagAvih, NewMainHeader(c, flags)),
		riff.NewList(TagStrl,
			recordChunk(TagStrh, vStrh),
			recordChunk(TagStrf, vStrf),
		),
		riff.NewList(TagStrl,
			recordChunk(TagStrh, aStrh),
			recordChunk(TagStrf, aStrf),
		),
	)
}
