// Package config loads shaderpad's optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/irfansharif/shaderpad/internal/harness"
)

// DefaultPath is looked up in the working directory when no path is given.
const DefaultPath = "shaderpad.toml"

// Config is the full configuration.
type Config struct {
	Window Window `toml:"window"`
	Shader Shader `toml:"shader"`
	Log    Log    `toml:"log"`
}

// Window configures the preview window.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// Shader configures the shader source and harness.
type Shader struct {
	Path        string `toml:"path"`         // file to load; empty for the built-in starter
	GLSLVersion string `toml:"glsl_version"` // #version line for both stages
	Watch       bool   `toml:"watch"`        // recompile when the file changes on disk
}

// Log configures terminal output.
type Log struct {
	Color string `toml:"color"` // auto, on, off
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:  1200,
			Height: 675,
			Title:  "shaderpad",
			VSync:  true,
		},
		Shader: Shader{
			GLSLVersion: harness.DefaultVersion,
			Watch:       true,
		},
		Log: Log{Color: "auto"},
	}
}

// Load reads the file at path over the defaults. A missing file at the
// default path isn't an error; a missing file that was asked for is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values we can't run with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if !strings.HasPrefix(strings.TrimSpace(c.Shader.GLSLVersion), "#version") {
		return fmt.Errorf("glsl_version must be a #version directive, got %q", c.Shader.GLSLVersion)
	}
	switch c.Log.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("log.color must be auto, on or off, got %q", c.Log.Color)
	}
	return nil
}
