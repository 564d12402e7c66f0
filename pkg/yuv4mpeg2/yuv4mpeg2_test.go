package yuv4mpeg2

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	require.Equal(t, "YUV4MPEG2 W800 H600 F60:1 Ip A1:1 C444\n", Header(800, 600, 60))
	require.Equal(t, 6+3*800*600, FrameSize(800, 600))
}

func TestByteAccounting(t *testing.T) {
	const w, h, frames = 3, 2, 7
	var buf bytes.Buffer
	m := NewMuxer()
	require.NoError(t, m.Start(&buf, w, h, 25))
	canvas := make([]uint32, w*h)
	for i := 0; i < frames; i++ {
		canvas[i%len(canvas)] = 0xffffff
		require.NoError(t, m.Frame(&buf, canvas))
	}

	header := Header(w, h, 25)
	require.Equal(t, len(header)+frames*(6+3*w*h), buf.Len())

	n, ok := FrameCount(int64(buf.Len()-len(header)), w, h)
	require.True(t, ok)
	require.Equal(t, int64(frames), n)
}

func TestPlaneOrder(t *testing.T) {
	var buf bytes.Buffer
	m := NewMuxer()
	require.NoError(t, m.Start(&buf, 2, 1, 1))
	// Pure blue, then black.
	require.NoError(t, m.Frame(&buf, []uint32{0x0000ff, 0x000000}))

	want := Header(2, 1, 1) + "FRAME\n"
	require.Equal(t, want, buf.String()[:len(want)])
	require.Equal(t, []byte{
		40, 16, // Y
		239, 128, // Cb
		109, 128, // Cr
	}, buf.Bytes()[len(want):])
}

func TestCallOrder(t *testing.T) {
	var buf bytes.Buffer
	m := NewMuxer()
	require.ErrorIs(t, m.Frame(&buf, nil), ErrNotStarted)
	require.ErrorIs(t, m.Start(&buf, 0, 1, 1), ErrInvalidSize)
	require.NoError(t, m.Start(&buf, 1, 1, 1))
	require.ErrorIs(t, m.Start(&buf, 1, 1, 1), ErrAlreadyStarted)
	require.ErrorIs(t, m.Frame(&buf, []uint32{1, 2}), ErrCanvasSize)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	m := NewMuxer()
	err := m.Start(failWriter{}, 1, 1, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "write header", e.Op)
}

func TestFrameCountPartial(t *testing.T) {
	n, ok := FrameCount(int64(2*FrameSize(4, 4)+5), 4, 4)
	require.False(t, ok)
	require.Equal(t, int64(2), n)

	_, ok = FrameCount(100, 0, 4)
	require.False(t, ok)
}

func TestReadHeader(t *testing.T) {
	cases := map[string]struct {
		input string
		want  StreamHeader
		err   bool
	}{
		"written": {
			input: Header(800, 600, 60) + "FRAME\n",
			want: StreamHeader{
				Width: 800, Height: 600, RateNum: 60, RateDen: 1,
				Interlace: "p", Aspect: "1:1", Chroma: "444",
				Len: len(Header(800, 600, 60)),
			},
		},
		"ntsc": {
			input: "YUV4MPEG2 W720 H480 F30000:1001 XYSCSS=420\n",
			want:  StreamHeader{Width: 720, Height: 480, RateNum: 30000, RateDen: 1001, Len: 43},
		},
		"badMagic":  {input: "YUV4MPEG W1 H1 F1:1\n", err: true},
		"noRate":    {input: "YUV4MPEG2 W1 H1\n", err: true},
		"badWidth":  {input: "YUV4MPEG2 Wx H1 F1:1\n", err: true},
		"badRate":   {input: "YUV4MPEG2 W1 H1 F25\n", err: true},
		"noNewline": {input: "YUV4MPEG2 W1 H1 F1:1", err: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h, err := ReadHeader(bufio.NewReader(strings.NewReader(tc.input)))
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, h)
		})
	}
}

func TestStreamHeaderFPS(t *testing.T) {
	require.Equal(t, 60, StreamHeader{RateNum: 60, RateDen: 1}.FPS())
	require.Equal(t, 0, StreamHeader{RateNum: 30000, RateDen: 1001}.FPS())
	require.Equal(t, 0, StreamHeader{}.FPS())
}
