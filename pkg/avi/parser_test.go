package avi

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xob0t/clipforge/pkg/riff"
)

// riffFile wraps entries into a RIFF file of the given form.
func riffFile(form riff.FourCC, entries ...riff.Entry) []byte {
	content := append([]byte{}, form[:]...)
	for _, e := range entries {
		content = riff.AppendEntry(content, e)
	}
	return riff.Serialize(riff.Chunk{ID: riff.RIFF, Content: content})
}

func testHeaderList() riff.List {
	return BuildHeaderList(Capture{Width: 2, Height: 2, FPS: 1}, 0)
}

func TestParseErrors(t *testing.T) {
	emptyMovi := riff.NewList(TagMovi)
	valid := riffFile(FormAVI, testHeaderList(), emptyMovi)

	avih := recordChunk(TagAvih, MainHeader{})
	strh := func(typ riff.FourCC) riff.Chunk {
		return recordChunk(TagStrh, StreamHeader{Type: typ})
	}
	strf := riff.Chunk{ID: TagStrf, Content: make([]byte, BitmapInfoHeaderSize)}

	cases := map[string]struct {
		data []byte
		want error
	}{
		"empty": {
			data: nil,
			want: ErrNotRIFF,
		},
		"wrongMagic": {
			data: append([]byte("RIFX"), valid[4:]...),
			want: ErrNotRIFF,
		},
		"trailingByte": {
			data: append(append([]byte{}, valid...), 0),
			want: ErrSizeMismatch,
		},
		"truncated": {
			data: valid[:len(valid)-1],
			want: ErrSizeMismatch,
		},
		"waveForm": {
			data: riffFile(riff.MustFourCC("WAVE"), testHeaderList(), emptyMovi),
			want: ErrNotAVI,
		},
		"noEntries": {
			data: riffFile(FormAVI),
			want: ErrMissingList,
		},
		"moviFirst": {
			data: riffFile(FormAVI, emptyMovi, testHeaderList()),
			want: ErrUnexpectedChunk,
		},
		"hdrlWithoutAvih": {
			data: riffFile(FormAVI, riff.NewList(TagHdrl, riff.NewList(TagStrl)), emptyMovi),
			want: ErrUnexpectedChunk,
		},
		"strlWithoutStrf": {
			data: riffFile(FormAVI, riff.NewList(TagHdrl, avih, riff.NewList(TagStrl, strh(StreamVideo))), emptyMovi),
			want: ErrUnexpectedChunk,
		},
		"textStream": {
			data: riffFile(FormAVI, riff.NewList(TagHdrl, avih, riff.NewList(TagStrl, strh(riff.MustFourCC("txts")), strf)), emptyMovi),
			want: ErrUnknownStream,
		},
		"noMovi": {
			data: riffFile(FormAVI, testHeaderList()),
			want: ErrMissingList,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.data)
			require.ErrorIs(t, err, tc.want)

			var aviErr *Error
			require.ErrorAs(t, err, &aviErr)
			require.NotEmpty(t, aviErr.Op)
		})
	}
}

func TestParseSkipsUnknownEntries(t *testing.T) {
	junk := riff.Chunk{ID: riff.MustFourCC("JUNK"), Content: []byte{1, 2, 3}}
	hdrl := testHeaderList()
	entries, err := riff.ReadAll(hdrl.Content)
	require.NoError(t, err)
	withJunk := riff.NewList(TagHdrl, entries[0], junk, entries[1], entries[2])

	movi := riff.NewList(TagMovi,
		riff.Chunk{ID: TagVideoFrame, Content: []byte{1, 2, 3}},
		riff.NewList(riff.MustFourCC("rec "),
			riff.Chunk{ID: TagVideoFrame, Content: []byte{4, 5, 6}},
		),
	)
	f, err := Parse(riffFile(FormAVI, withJunk, junk, movi))
	require.NoError(t, err)
	require.Len(t, f.Streams, 2)

	out, err := f.Extract(TagVideoFrame, TagAudioFrame)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, out[TagVideoFrame])
	require.Empty(t, out[TagAudioFrame])
}

func TestParsePlainWaveFormat(t *testing.T) {
	avih := recordChunk(TagAvih, MainHeader{Streams: 1})
	wfx := WaveFormatEx{FormatTag: 3, Channels: 2, SamplesPerSec: 44100, BlockAlign: 8, BitsPerSample: 32}
	hdrl := riff.NewList(TagHdrl, avih,
		riff.NewList(TagStrl,
			recordChunk(TagStrh, StreamHeader{Type: StreamAudio}),
			recordChunk(TagStrf, wfx),
		),
	)
	f, err := Parse(riffFile(FormAVI, hdrl, riff.NewList(TagMovi)))
	require.NoError(t, err)

	s, ok := f.StreamOf(StreamAudio)
	require.True(t, ok)
	require.False(t, s.Extensible)
	require.Equal(t, wfx, s.Audio.Format)

	_, ok = f.StreamOf(StreamVideo)
	require.False(t, ok)
}

func TestFileDump(t *testing.T) {
	m := NewMuxer()
	m.Index = true
	require.NoError(t, m.Start(2, 2, 30))
	for i := 0; i < 4; i++ {
		require.NoError(t, m.Frame(make([]uint32, 4), make([]float32, 1600)))
	}
	var file bytes.Buffer
	require.NoError(t, m.FinishTo(&file))

	f, err := Parse(file.Bytes())
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, f.Dump(&out))
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")

	require.Equal(t, "RIFF size="+strconv.Itoa(file.Len()-8)+" form=AVI ", lines[0])
	require.Contains(t, lines, "  avih")
	require.Contains(t, lines, "  strl #0")
	require.Contains(t, lines, "    strf BITMAPINFOHEADER")
	require.Contains(t, lines, "  strl #1")
	require.Contains(t, lines, "    strf WAVEFORMATEXTENSIBLE")
	require.Contains(t, lines, "    00dc chunks=4")
	require.Contains(t, lines, "    01wb chunks=4")
	require.Contains(t, lines, "  idx1 entries=8")
	require.Contains(t, out.String(), "dwTotalFrames")
	require.Contains(t, out.String(), "biHeight")
}
