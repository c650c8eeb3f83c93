// Package config holds settings for the batch conversion tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds configurable paths and conversion settings. The codec
// packages take no configuration; this only drives the cmd tools.
type Config struct {
	// InputDir is a directory of extracted field files (.tex, .hrc,
	// .rsd, .a).
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects the image output: webp, tga or png.
	Format string `json:"format" yaml:"format"`
	// Palette selects the sub-palette used when expanding paletted
	// textures.
	Palette int `json:"palette" yaml:"palette"`
	// ThumbnailSize caps the longer image side; 0 keeps full size.
	ThumbnailSize int `json:"thumbnail_size" yaml:"thumbnail_size"`
	Workers       int `json:"workers" yaml:"workers"`
}

// Load reads a JSON or YAML config file, chosen by extension. Fields
// not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Format    string
	Workers   int
}

// Resolve applies flag overrides and fills remaining empty fields with
// defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" && c.InputDir != "" {
		c.OutputDir = filepath.Join(c.InputDir, "converted")
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
