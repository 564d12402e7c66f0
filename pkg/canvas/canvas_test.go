package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFillRectClips(t *testing.T) {
	c := New(4, 3)
	c.Fill(0x111111)
	c.FillRect(image.Rect(2, 1, 10, 10), 0xabcdef)

	require.Equal(t, []uint32{
		0x111111, 0x111111, 0x111111, 0x111111,
		0x111111, 0x111111, 0xabcdef, 0xabcdef,
		0x111111, 0x111111, 0xabcdef, 0xabcdef,
	}, c.Pix)

	c.FillRect(image.Rect(-5, -5, -1, -1), 0)
	require.Equal(t, uint32(0x111111), c.Pix[0])
}

func TestDrawImage(t *testing.T) {
	c := New(2, 2)
	draw.Draw(c, image.Rect(0, 0, 1, 2), &image.Uniform{C: color.RGBA{R: 0xff, A: 0xff}}, image.Point{}, draw.Src)

	require.Equal(t, []uint32{0xff0000, 0, 0xff0000, 0}, c.Pix)
	require.Equal(t, color.RGBA{R: 0xff, A: 0xff}, c.At(0, 1))
	require.Equal(t, color.RGBA{}, c.At(5, 5))

	c.Set(9, 9, color.White)
	require.Equal(t, []uint32{0xff0000, 0, 0xff0000, 0}, c.Pix)
}

func TestRGBA(t *testing.T) {
	c := New(2, 1)
	c.Pix[1] = Pack(1, 2, 3)
	img := c.RGBA()
	require.Equal(t, []uint8{0, 0, 0, 0xff, 1, 2, 3, 0xff}, img.Pix)
}

func TestParseColor(t *testing.T) {
	cases := map[string]struct {
		input string
		want  uint32
		err   bool
	}{
		"hash":     {input: "#181818", want: 0x181818},
		"bare":     {input: "FF0080", want: 0xff0080},
		"short":    {input: "#fff", err: true},
		"notHex":   {input: "#gg0000", err: true},
		"negative": {input: "-12345", err: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseColor(tc.input)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.want, mustParse(t, FormatColor(got)))
		})
	}

	p, err := ParseColor("random")
	require.NoError(t, err)
	require.LessOrEqual(t, p, uint32(0xffffff))
}

func mustParse(t *testing.T, s string) uint32 {
	t.Helper()
	p, err := ParseColor(s)
	require.NoError(t, err)
	return p
}
