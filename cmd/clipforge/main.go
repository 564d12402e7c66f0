// clipforge - Procedural clip renderer and AVI/RIFF inspection tool
//
// Usage:
//
//	clipforge render [-config clip.yaml] [options]
//	clipforge dump <file>
//	clipforge inspect <file.avi>
//	clipforge extract [-video out] [-audio out] <file.avi>
//	clipforge info <file.y4m>
//	clipforge init [-o clip.yaml]
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/xob0t/clipforge/pkg/avi"
	"github.com/xob0t/clipforge/pkg/config"
	"github.com/xob0t/clipforge/pkg/generator"
	"github.com/xob0t/clipforge/pkg/riff"
	"github.com/xob0t/clipforge/pkg/yuv4mpeg2"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		fmt.Fprintln(os.Stderr, "Error: subcommand expected")
		os.Exit(1)
	}

	var run func([]string) error
	switch os.Args[1] {
	case "render":
		run = runRender
	case "dump":
		run = runDump
	case "inspect":
		run = runInspect
	case "extract":
		run = runExtract
	case "info":
		run = runInfo
	case "init":
		run = runInit
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err := run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)

	var (
		configPath string
		o          config.Config
		noIndex    bool
	)
	fs.StringVar(&configPath, "config", "", "YAML config file")
	fs.IntVar(&o.Width, "width", 0, "Width in pixels (default 800)")
	fs.IntVar(&o.Height, "height", 0, "Height in pixels (default 600)")
	fs.IntVar(&o.FPS, "fps", 0, "Frames per second (default 60)")
	fs.Float64Var(&o.Duration, "duration", 0, "Duration in seconds (default 6)")
	fs.StringVar(&o.Background, "background", "", "Background color: hex or 'random'")
	fs.StringVar(&o.Caption.Title, "title", "", "Caption text")
	fs.BoolVar(&o.Caption.Counter, "counter", false, "Draw a frame counter")
	fs.StringVar(&o.Caption.Font, "font", "", "Caption TTF font path")
	fs.StringVar(&o.Output.Y4M, "o-y4m", "", "YUV4MPEG2 output path")
	fs.StringVar(&o.Output.AVI, "o-avi", "", "AVI output path")
	fs.StringVar(&o.Output.PCM, "o-pcm", "", "Raw float32 PCM output path")
	fs.StringVar(&o.Output.Thumbnail, "o-png", "", "PNG thumbnail of the last frame")
	fs.IntVar(&o.Output.ThumbnailWidth, "thumb-width", 0, "Thumbnail width in pixels")
	fs.StringVar(&o.Output.Still, "o-bmp", "", "BMP still of the last frame")
	fs.BoolVar(&noIndex, "no-index", false, "Omit the AVI idx1 index")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Flags given on the command line override the file.
	override := func(cfg *config.Config) {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "width":
				cfg.Width = o.Width
			case "height":
				cfg.Height = o.Height
			case "fps":
				cfg.FPS = o.FPS
			case "duration":
				cfg.Duration = o.Duration
			case "background":
				cfg.Background = o.Background
			case "title":
				cfg.Caption.Title = o.Caption.Title
			case "counter":
				cfg.Caption.Counter = o.Caption.Counter
			case "font":
				cfg.Caption.Font = o.Caption.Font
			case "o-y4m":
				cfg.Output.Y4M = o.Output.Y4M
			case "o-avi":
				cfg.Output.AVI = o.Output.AVI
			case "o-pcm":
				cfg.Output.PCM = o.Output.PCM
			case "o-png":
				cfg.Output.Thumbnail = o.Output.Thumbnail
			case "thumb-width":
				cfg.Output.ThumbnailWidth = o.Output.ThumbnailWidth
			case "o-bmp":
				cfg.Output.Still = o.Output.Still
			case "no-index":
				cfg.Output.NoIndex = noIndex
			}
		})
	}

	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath, override)
	} else {
		cfg, err = config.Parse(nil, override)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Rendering %dx%d @ %d fps, %d frames\n", cfg.Width, cfg.Height, cfg.FPS, cfg.Frames())
	res, err := generator.Render(cfg, os.Stdout)
	if err != nil {
		return err
	}
	for _, f := range res.Files {
		fmt.Printf("Generated %s\n", f)
	}
	return nil
}

func runDump(args []string) error {
	path, err := singleArg("dump", args)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return riff.Dump(os.Stdout, data)
}

func runInspect(args []string) error {
	path, err := singleArg("inspect", args)
	if err != nil {
		return err
	}
	f, err := avi.ParseFile(path)
	if err != nil {
		return err
	}
	return f.Dump(os.Stdout)
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	var videoOut, audioOut string
	fs.StringVar(&videoOut, "video", "extracted_video.bin", "Output path for raw 00dc payload")
	fs.StringVar(&audioOut, "audio", "extracted_audio.bin", "Output path for raw 01wb payload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := singleArg("extract", fs.Args())
	if err != nil {
		return err
	}

	f, err := avi.ParseFile(path)
	if err != nil {
		return err
	}
	out, err := f.Extract(avi.TagVideoFrame, avi.TagAudioFrame)
	if err != nil {
		return err
	}
	targets := []struct {
		tag riff.FourCC
		dst string
	}{
		{avi.TagVideoFrame, videoOut},
		{avi.TagAudioFrame, audioOut},
	}
	for _, t := range targets {
		if err := os.WriteFile(t.dst, out[t.tag], 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", t.dst, err)
		}
		fmt.Printf("Extracted %d bytes of %s into %s\n", len(out[t.tag]), t.tag, t.dst)
	}
	return nil
}

func runInfo(args []string) error {
	path, err := singleArg("info", args)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return err
	}

	h, err := yuv4mpeg2.ReadHeader(bufio.NewReader(f))
	if err != nil {
		return err
	}
	frames, exact := yuv4mpeg2.FrameCount(st.Size()-int64(h.Len), h.Width, h.Height)
	fmt.Printf("size:       %dx%d\n", h.Width, h.Height)
	fmt.Printf("frame rate: %d:%d\n", h.RateNum, h.RateDen)
	fmt.Printf("chroma:     %s\n", h.Chroma)
	fmt.Printf("frames:     %d\n", frames)
	if !exact {
		fmt.Println("Warning: trailing bytes do not form a whole frame; file is truncated")
	}
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var output string
	fs.StringVar(&output, "o", "clip.yaml", "Output path for the sample config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := os.Stat(output); err == nil {
		return fmt.Errorf("%s already exists", output)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(output, config.Example(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Created sample config: %s\n", output)
	fmt.Printf("You can now run: clipforge render -config %s\n", output)
	return nil
}

func singleArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s expects exactly one file argument, got %d", cmd, len(args))
	}
	return args[0], nil
}

func printUsage() {
	fmt.Println(`clipforge - Procedural clip renderer with RIFF/AVI tooling (Pure Go)

USAGE:
    clipforge render [options]
    clipforge dump <file>
    clipforge inspect <file.avi>
    clipforge extract [options] <file.avi>
    clipforge info <file.y4m>
    clipforge init [options]
    clipforge help

RENDER OPTIONS:
    -config <path>       YAML config file (see init)
    -width <pixels>      Width in pixels (default: 800)
    -height <pixels>     Height in pixels (default: 600)
    -fps <n>             Frames per second (default: 60)
    -duration <seconds>  Duration in seconds (default: 6)
    -background <color>  Background color: hex or 'random' (default: #181818)
    -title <text>        Caption text
    -counter             Draw a frame counter
    -font <path>         Caption TTF font (default: embedded Go Regular)
    -o-y4m <path>        YUV4MPEG2 output
    -o-avi <path>        AVI output
    -o-pcm <path>        Raw float32 PCM output
    -o-png <path>        PNG thumbnail of the last frame
    -thumb-width <px>    Thumbnail width
    -o-bmp <path>        BMP still of the last frame
    -no-index            Omit the AVI idx1 index

    When no output is given by the config or the flags, output.y4m, output.avi
    and output.pcm are written.

EXTRACT OPTIONS:
    -video <path>        Raw video payload (default: extracted_video.bin)
    -audio <path>        Raw audio payload (default: extracted_audio.bin)

INIT OPTIONS:
    -o <path>            Output path for the sample config (default: clip.yaml)

EXAMPLES:
    clipforge render
    clipforge render -duration 2 -title "hello" -o-png thumb.png
    clipforge inspect output.avi
    clipforge extract -video frames.bgr output.avi`)
}
