// Package config holds the settings of the drawing host. Settings come from an
// optional TOML file layered over built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/kkerchmar/LinearPerspectiveTool/toolbox"
)

type Window struct {
	Title  string `toml:"title"`
	Width  int32  `toml:"width"`
	Height int32  `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

type Render struct {
	ClearColor [4]float32 `toml:"clear_color"`
	LineWidth  float32    `toml:"line_width"`
}

type Tool struct {
	Default string `toml:"default"`
}

type Config struct {
	Window Window `toml:"window"`
	Render Render `toml:"render"`
	Tool   Tool   `toml:"tool"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "Linear Perspective Tool",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: Render{
			ClearColor: [4]float32{0.9, 0.9, 0.9, 1},
			LineWidth:  10,
		},
		Tool: Tool{
			Default: toolbox.Line.String(),
		},
	}
}

// Load reads the file at path over the defaults. An empty path or a missing
// file yields the defaults. Keys the Config does not know are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("config %s: unknown keys:\n%s", path, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return cfg, fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("Loaded config from %s", path)
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.LineWidth <= 0 {
		return fmt.Errorf("line width must be positive, got %g", c.Render.LineWidth)
	}
	for _, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear color components must be within [0, 1], got %v", c.Render.ClearColor)
		}
	}
	if _, err := toolbox.ParseTool(c.Tool.Default); err != nil {
		return fmt.Errorf("default tool: %w", err)
	}
	return nil
}

// DefaultTool returns the parsed tool the host starts with.
func (c Config) DefaultTool() toolbox.Tool {
	t, err := toolbox.ParseTool(c.Tool.Default)
	if err != nil {
		return toolbox.Line
	}
	return t
}
