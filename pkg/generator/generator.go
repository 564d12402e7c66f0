// Package generator renders the simulation into the configured outputs.
//
// Every tick follows one pipeline: clear the canvas, paint the rectangles,
// draw the caption, mix the beeps, then hand the canvas and samples to each
// sink. Stills of the last frame are written after the sinks finish.
package generator

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/xob0t/clipforge/pkg/avi"
	"github.com/xob0t/clipforge/pkg/canvas"
	"github.com/xob0t/clipforge/pkg/config"
	"github.com/xob0t/clipforge/pkg/overlay"
	"github.com/xob0t/clipforge/pkg/sim"
)

// Result summarizes a finished render.
type Result struct {
	Frames  int
	Samples int
	// Files lists every written file in the order it was completed.
	Files []string
}

// Render runs the whole clip described by cfg. Progress lines go to
// progress, which may be nil. Output files of a failed render are left
// incomplete and must not be used.
func Render(cfg config.Config, progress io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if progress == nil {
		progress = io.Discard
	}
	bg, err := canvas.ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}

	caption, err := newCaption(cfg.Caption)
	if err != nil {
		return nil, err
	}
	if caption != nil {
		defer caption.Close()
	}

	sinks, err := openSinks(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, s := range sinks {
			s.Close()
		}
	}()

	var (
		frames  = cfg.Frames()
		dt      = 1 / float64(cfg.FPS)
		c       = canvas.New(cfg.Width, cfg.Height)
		samples = make([]float32, cfg.SamplesPerFrame(avi.SampleRate))
		state   = sim.New(cfg.Width, cfg.Height)
		res     = &Result{}
	)
	for i := 0; i < frames; i++ {
		c.Fill(bg)
		state.Render(c)
		if caption != nil {
			caption.Draw(c, i, frames)
		}
		state.Sound(samples, avi.SampleRate)

		for _, s := range sinks {
			if err := s.Frame(c, samples); err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
		}
		state.Update(dt)

		res.Frames++
		res.Samples += len(samples)
		pct := int(math.Round(float64(i+1) / float64(frames) * 100))
		fmt.Fprintf(progress, "Progress %d%%\r", pct)
	}
	fmt.Fprintln(progress)

	for _, s := range sinks {
		if err := s.Finish(); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, s.Path())
	}

	last := c.RGBA()
	if p := cfg.Output.Thumbnail; p != "" {
		if err := writePNG(p, Thumbnail(last, cfg.Output.ThumbnailWidth)); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, p)
	}
	if p := cfg.Output.Still; p != "" {
		if err := writeBMP(p, last); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, p)
	}
	return res, nil
}

func newCaption(cfg config.Caption) (*overlay.Caption, error) {
	if cfg.Title == "" && !cfg.Counter {
		return nil, nil
	}
	fg, err := canvas.ParseColor(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("caption color: %w", err)
	}
	fm, err := overlay.NewFontManager(cfg.Font)
	if err != nil {
		return nil, err
	}
	return overlay.NewCaption(fm, cfg.Title, cfg.Counter, overlay.Style{
		Size:   cfg.Size,
		Color:  fg,
		Margin: int(cfg.Size / 2),
	})
}

// openSinks creates the sinks of every configured output. On failure the
// sinks opened so far are closed.
func openSinks(cfg config.Config) ([]Sink, error) {
	var (
		sinks []Sink
		errs  []error
	)
	add := func(s Sink, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		sinks = append(sinks, s)
	}

	o := cfg.Output
	if o.Y4M != "" {
		add(newY4MSink(o.Y4M, cfg.Width, cfg.Height, cfg.FPS))
	}
	if o.AVI != "" {
		add(newAVISink(o.AVI, cfg.Width, cfg.Height, cfg.FPS, !o.NoIndex))
	}
	if o.PCM != "" {
		add(newPCMSink(o.PCM))
	}

	if err := errors.Join(errs...); err != nil {
		for _, s := range sinks {
			s.Close()
		}
		return nil, err
	}
	return sinks, nil
}
