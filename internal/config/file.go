package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up relative to the working directory.
const DefaultPath = "config/glbasics.yaml"

// DefaultCanvasID is the canvas every chapter renders into.
const DefaultCanvasID = "webgl"

// Canvas describes a drawable surface the host can provide.
type Canvas struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// Config is the on-disk configuration.
type Config struct {
	Canvases      map[string]Canvas `yaml:"canvases"`
	FPSLimit      int               `yaml:"fps_limit"`
	MaxPixelRatio float32           `yaml:"max_pixel_ratio"`
	VSync         bool              `yaml:"vsync"`
	ClearColor    string            `yaml:"clear_color"`
	ClearAlpha    float32           `yaml:"clear_alpha"`
	LogLevel      string            `yaml:"log_level"`
}

// Default returns the built-in configuration: a single 900x600 "webgl" canvas.
func Default() *Config {
	return &Config{
		Canvases: map[string]Canvas{
			DefaultCanvasID: {Width: 900, Height: 600, Title: "glbasics", Resizable: true},
		},
		FPSLimit:      defaultFPSLimit,
		MaxPixelRatio: defaultMaxPixelRatio,
		ClearColor:    "#000000",
		ClearAlpha:    1,
	}
}

// Load reads the config at path. A missing file yields Default(); a file that
// exists but does not parse is an error. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes YAML data on top of c.
func Parse(data []byte, c *Config) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	// A canvases section replaces the defaults instead of merging into them.
	var declared struct {
		Canvases map[string]Canvas `yaml:"canvases"`
	}
	if err := yaml.Unmarshal(data, &declared); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if declared.Canvases != nil {
		c.Canvases = declared.Canvases
	}
	if c.MaxPixelRatio < 1 {
		c.MaxPixelRatio = 1
	}
	for id, cv := range c.Canvases {
		if cv.Width <= 0 || cv.Height <= 0 {
			return fmt.Errorf("parse config: canvas %q has invalid size %dx%d", id, cv.Width, cv.Height)
		}
	}
	return nil
}

// Canvas returns the canvas declared under id.
func (c *Config) Canvas(id string) (Canvas, bool) {
	cv, ok := c.Canvases[id]
	return cv, ok
}
