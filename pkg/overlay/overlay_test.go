package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xob0t/clipforge/pkg/canvas"
)

func TestNewFontManager(t *testing.T) {
	junk := filepath.Join(t.TempDir(), "junk.ttf")
	require.NoError(t, os.WriteFile(junk, []byte("not a font"), 0o644))

	cases := map[string]struct {
		path     string
		fallback bool
		err      bool
	}{
		"default": {path: "", fallback: true},
		"missing": {path: filepath.Join(t.TempDir(), "nope.ttf"), fallback: true},
		"junk":    {path: junk, err: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fm, err := NewFontManager(tc.path)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.fallback, fm.Fallback)
		})
	}
}

func newCaption(t *testing.T, title string, counter bool) *Caption {
	t.Helper()
	fm, err := NewFontManager("")
	require.NoError(t, err)
	c, err := NewCaption(fm, title, counter, Style{Size: 16, Color: 0xffffff, Margin: 4})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCaptionLines(t *testing.T) {
	c := newCaption(t, "bouncing rectangles that split", true)

	require.Equal(t, []string{"bouncing rectangles that split", "3/10"}, c.Lines(2, 10, 1000))

	narrow := c.Lines(0, 1, 60)
	require.Greater(t, len(narrow), 2)
	require.Equal(t, "1/1", narrow[len(narrow)-1])
}

func TestCaptionDraw(t *testing.T) {
	c := newCaption(t, "Hi", false)
	dst := canvas.New(64, 32)
	c.Draw(dst, 0, 1)

	lit := 0
	for _, p := range dst.Pix {
		if p != 0 {
			lit++
		}
	}
	require.NotZero(t, lit)
	// Nothing is drawn right of the short title.
	for y := 0; y < dst.Height; y++ {
		require.Zero(t, dst.Pix[y*dst.Width+dst.Width-1])
	}
}

func TestNewCaptionRejectsSize(t *testing.T) {
	fm, err := NewFontManager("")
	require.NoError(t, err)
	_, err = NewCaption(fm, "x", false, Style{})
	require.Error(t, err)
}

func TestWrapTextEmpty(t *testing.T) {
	c := newCaption(t, "", false)
	require.Empty(t, c.Lines(0, 1, 100))
	require.Equal(t, []string{"a b"}, wrapText(" a   b ", 0, c.face))
}
