// Package config loads the visualizer settings from a TOML file with
// sane defaults. CLI flags in cmd/pointdrift override individual fields.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/pointdrift/pointdrift/core"
)

type Config struct {
	// Window size at startup, in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Simulation population, fixed for the lifetime of the run.
	PointCount int `toml:"point_count"`

	// Billboard style.
	PointSize float32 `toml:"point_size"`
	Intensity float32 `toml:"intensity"`

	// Path to the background image. Required; loading fails fatally at
	// startup if it is missing or not decodable.
	Background string `toml:"background"`

	// Use the minimal hard-edged point renderer instead of the soft
	// billboards.
	BasicRenderer bool `toml:"basic_renderer"`

	Debug bool `toml:"debug"`
}

func Default() Config {
	return Config{
		Width:      1280,
		Height:     720,
		PointCount: core.DefaultPointCount,
		PointSize:  core.DefaultPointSize,
		Intensity:  core.DefaultIntensity,
	}
}

// Load reads the TOML file at path over the defaults. An empty path
// returns the defaults unchanged; a named but unreadable or invalid file
// is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.PointCount <= 0 {
		return fmt.Errorf("point_count must be positive, got %d", c.PointCount)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}
