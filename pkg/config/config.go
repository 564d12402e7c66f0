// Package config loads the render configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/xob0t/clipforge/pkg/canvas"
)

// Defaults applied to zero values.
const (
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultFPS         = 60
	DefaultDuration    = 6.0
	DefaultBackground  = "#181818"
	DefaultCaptionSize = 24.0
	DefaultCaptionFG   = "#ffffff"
	DefaultY4M         = "output.y4m"
	DefaultAVI         = "output.avi"
	DefaultPCM         = "output.pcm"
)

// Config describes one render.
type Config struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	Duration   float64 `yaml:"duration"` // seconds
	Background string  `yaml:"background"`

	Caption Caption `yaml:"caption"`
	Output  Output  `yaml:"output"`
}

// Caption configures the text overlay. An empty Title without Counter draws
// nothing.
type Caption struct {
	Title   string  `yaml:"title"`
	Counter bool    `yaml:"counter"`
	Font    string  `yaml:"font"` // TTF path; empty uses the embedded font
	Size    float64 `yaml:"size"`
	Color   string  `yaml:"color"`
}

// Output lists the files to write. An empty path disables that output.
type Output struct {
	Y4M       string `yaml:"y4m"`
	AVI       string `yaml:"avi"`
	PCM       string `yaml:"pcm"`
	Thumbnail string `yaml:"thumbnail"` // PNG of the last frame
	Still     string `yaml:"still"`     // BMP of the last frame
	// NoIndex omits the idx1 chunk from the AVI.
	NoIndex bool `yaml:"noIndex"`
	// ThumbnailWidth scales the thumbnail; 0 keeps the frame width.
	ThumbnailWidth int `yaml:"thumbnailWidth"`
}

// ErrNoOutput is returned when every output path is empty.
var ErrNoOutput = errors.New("no output configured")

// Default returns a config with every default applied.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Parse decodes YAML, applies defaults and validates the result. Unknown keys
// are rejected. Overrides run after decoding and before defaults, so an
// output set by an override disables the default outputs like one set in the
// file does.
func Parse(data []byte, overrides ...func(*Config)) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	for _, o := range overrides {
		o(&c)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the file at path.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data, overrides...)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.Caption.Size == 0 {
		c.Caption.Size = DefaultCaptionSize
	}
	if c.Caption.Color == "" {
		c.Caption.Color = DefaultCaptionFG
	}
	o := &c.Output
	if o.Y4M == "" && o.AVI == "" && o.PCM == "" && o.Thumbnail == "" && o.Still == "" {
		o.Y4M, o.AVI, o.PCM = DefaultY4M, DefaultAVI, DefaultPCM
	}
}

// Validate checks ranges and colors.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > math.MaxInt16 || c.Height > math.MaxInt16 {
		return fmt.Errorf("invalid size %dx%d: each side must be in 1..%d", c.Width, c.Height, math.MaxInt16)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("invalid duration %v", c.Duration)
	}
	if c.Frames() == 0 {
		return fmt.Errorf("duration %vs is shorter than one frame at %d fps", c.Duration, c.FPS)
	}
	if _, err := canvas.ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := canvas.ParseColor(c.Caption.Color); err != nil {
		return fmt.Errorf("caption color: %w", err)
	}
	if c.Caption.Size < 0 {
		return fmt.Errorf("invalid caption size %v", c.Caption.Size)
	}
	if c.Output.ThumbnailWidth < 0 {
		return fmt.Errorf("invalid thumbnail width %d", c.Output.ThumbnailWidth)
	}
	o := c.Output
	if o.Y4M == "" && o.AVI == "" && o.PCM == "" && o.Thumbnail == "" && o.Still == "" {
		return ErrNoOutput
	}
	return nil
}

// Frames is the number of ticks rendered: floor(FPS * Duration).
func (c Config) Frames() int {
	return int(math.Floor(float64(c.FPS) * c.Duration))
}

// SamplesPerFrame is the audio sample count of one tick at sampleRate,
// rounded down.
func (c Config) SamplesPerFrame(sampleRate int) int {
	return sampleRate / c.FPS
}

// Example returns a commented starter config.
func Example() []byte {
	return []byte(`# clipforge render configuration
width: 800
height: 600
fps: 60
duration: 6 # seconds
background: "#181818" # or "random"

caption:
  title: ""
  counter: false
  font: "" # TTF path, empty for Go Regular
  size: 24
  color: "#ffffff"

output:
  y4m: output.y4m
  avi: output.avi
  pcm: output.pcm
  thumbnail: "" # PNG of the last frame
  thumbnailWidth: 0
  still: "" # BMP of the last frame
  noIndex: false
`)
}
