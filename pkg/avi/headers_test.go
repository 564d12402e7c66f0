package avi

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xob0t/clipforge/pkg/riff"
)

func TestHeaderSizes(t *testing.T) {
	cases := map[string]struct {
		rec  interface{ MarshalBinary() ([]byte, error) }
		size int
	}{
		"avih": {rec: MainHeader{}, size: 56},
		"strh": {rec: StreamHeader{}, size: 56},
		"bih":  {rec: BitmapInfoHeader{}, size: 40},
		"wfx":  {rec: WaveFormatEx{}, size: 18},
		"wfxe": {rec: WaveFormatExtensible{}, size: 40},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := tc.rec.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, b, tc.size)
		})
	}
}

func TestMainHeaderFieldOrder(t *testing.T) {
	h := MainHeader{
		MicroSecPerFrame: 1, MaxBytesPerSec: 2, PaddingGranularity: 3, Flags: 4,
		TotalFrames: 5, InitialFrames: 6, Streams: 7, SuggestedBufferSize: 8,
		Width: 9, Height: 10, Reserved: [4]uint32{11, 12, 13, 14},
	}
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	for i := 0; i < 14; i++ {
		require.Equal(t, uint32(i+1), le.Uint32(b[4*i:]), "field %d", i)
	}

	var got MainHeader
	require.NoError(t, got.UnmarshalBinary(b))
	require.Equal(t, h, got)
}

func TestStreamHeaderRoundTrip(t *testing.T) {
	h := StreamHeader{
		Type:     StreamVideo,
		Handler:  riff.MustFourCC("DIB "),
		Flags:    1,
		Priority: 2,
		Language: 3,
		Scale:    1,
		Rate:     30,
		Length:   99,
		Quality:  QualityDefault,
		Frame:    Rect{Left: -1, Top: 2, Right: 640, Bottom: 480},
	}
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, []byte("vids"), b[0:4])
	require.Equal(t, []byte{0xff, 0xff}, b[48:50])

	var got StreamHeader
	require.NoError(t, got.UnmarshalBinary(b))
	require.Equal(t, h, got)
}

func TestBitmapInfoHeaderNegativeHeight(t *testing.T) {
	h := BitmapInfoHeader{Size: 40, Width: 800, Height: -600, Planes: 1, BitCount: 24}
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, uint32(0xfffffda8), le.Uint32(b[8:12]))

	var got BitmapInfoHeader
	require.NoError(t, got.UnmarshalBinary(b))
	require.Equal(t, int32(-600), got.Height)
}

func TestWaveFormatExtensibleLayout(t *testing.T) {
	_, f := NewAudioStream(Capture{FPS: 60})
	b, err := f.MarshalBinary()
	require.NoError(t, err)

	want := []byte{
		0xfe, 0xff, // wFormatTag
		0x01, 0x00, // nChannels
		0x80, 0xbb, 0x00, 0x00, // nSamplesPerSec 48000
		0x00, 0xee, 0x02, 0x00, // nAvgBytesPerSec 192000
		0x04, 0x00, // nBlockAlign
		0x20, 0x00, // wBitsPerSample
		0x16, 0x00, // cbSize 22
		0x20, 0x00, // Samples
		0x04, 0x00, 0x00, 0x00, // dwChannelMask
		0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
		0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
	}
	require.Equal(t, want, b)

	var got WaveFormatExtensible
	require.NoError(t, got.UnmarshalBinary(b))
	require.Equal(t, f, got)
	require.Equal(t, "00000003-0000-0010-8000-00aa00389b71", got.SubFormat.String())
}

func TestUnmarshalShort(t *testing.T) {
	require.Error(t, (&MainHeader{}).UnmarshalBinary(make([]byte, 55)))
	require.Error(t, (&StreamHeader{}).UnmarshalBinary(make([]byte, 10)))
	require.Error(t, (&BitmapInfoHeader{}).UnmarshalBinary(nil))
	require.Error(t, (&WaveFormatExtensible{}).UnmarshalBinary(make([]byte, 18)))
	require.NoError(t, (&WaveFormatEx{}).UnmarshalBinary(make([]byte, 16)))
}

func TestFabricateCanonicalCapture(t *testing.T) {
	c := Capture{Width: 800, Height: 600, FPS: 60, Frames: 360, Samples: 360 * 800}

	main := NewMainHeader(c, AVIFIsInterleaved|AVIFTrustCKType)
	require.Equal(t, uint32(16666), main.MicroSecPerFrame)
	require.Equal(t, uint32(86592000), main.MaxBytesPerSec)
	require.Equal(t, uint32(360), main.TotalFrames)
	require.Equal(t, uint32(2), main.Streams)
	require.Equal(t, uint32(1048576), main.SuggestedBufferSize)
	require.Equal(t, uint32(800), main.Width)
	require.Equal(t, uint32(600), main.Height)

	vStrh, vStrf := NewVideoStream(c)
	require.Equal(t, StreamVideo, vStrh.Type)
	require.Equal(t, uint32(1), vStrh.Scale)
	require.Equal(t, uint32(60), vStrh.Rate)
	require.Equal(t, uint32(360), vStrh.Length)
	require.Equal(t, uint32(1440000), vStrh.SuggestedBufferSize)
	require.Equal(t, uint32(0xFFFFFFFF), vStrh.Quality)
	require.Equal(t, Rect{Right: 800, Bottom: 600}, vStrh.Frame)
	require.Equal(t, int32(-600), vStrf.Height)
	require.Equal(t, uint32(1440000), vStrf.SizeImage)

	aStrh, aStrf := NewAudioStream(c)
	require.Equal(t, StreamAudio, aStrh.Type)
	require.Equal(t, uint32(48000), aStrh.Rate)
	require.Equal(t, uint32(288000), aStrh.Length)
	require.Equal(t, uint32(4), aStrh.SampleSize)
	require.Equal(t, uint32(3200), aStrh.SuggestedBufferSize)
	require.Equal(t, uint16(1), aStrf.Format.Channels)
}

func TestBuildHeaderList(t *testing.T) {
	hdrl := BuildHeaderList(Capture{Width: 4, Height: 2, FPS: 25}, 0)
	require.Equal(t, TagHdrl, hdrl.Type)

	entries, err := riff.ReadAll(hdrl.Content)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, TagAvih, entries[0].Tag())
	require.Equal(t, uint32(MainHeaderSize), entries[0].Size())

	for i, want := range []riff.FourCC{StreamVideo, StreamAudio} {
		strl, ok := entries[i+1].(riff.List)
		require.True(t, ok)
		require.Equal(t, TagStrl, strl.Type)

		children, err := riff.ReadAll(strl.Content)
		require.NoError(t, err)
		require.Len(t, children, 2)
		require.Equal(t, TagStrh, children[0].Tag())
		require.Equal(t, TagStrf, children[1].Tag())
		require.Equal(t, want[:], children[0].Payload()[0:4])
	}
}
