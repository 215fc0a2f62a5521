// Package config holds defaults for the command-line tools and reads them from YAML.
package config

import (
	"os"

	"github.com/nvr-ai/go-imaging/images"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the tool configuration.
type Config struct {
	Convert    ConvertConfig    `json:"convert" yaml:"convert"`
	Background BackgroundConfig `json:"background" yaml:"background"`
	Batch      BatchConfig      `json:"batch" yaml:"batch"`
	Watch      WatchConfig      `json:"watch" yaml:"watch"`
	// Verbose logs every progress checkpoint.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// ConvertConfig holds conversion defaults.
type ConvertConfig struct {
	Format         string `json:"format" yaml:"format"`
	Quality        int    `json:"quality" yaml:"quality"`
	MaxWidth       uint32 `json:"max_width" yaml:"max_width"`
	MaxHeight      uint32 `json:"max_height" yaml:"max_height"`
	PreserveAspect bool   `json:"preserve_aspect" yaml:"preserve_aspect"`
}

// BackgroundConfig holds background removal defaults.
type BackgroundConfig struct {
	KeyColor     string `json:"key_color" yaml:"key_color"`
	Tolerance    uint8  `json:"tolerance" yaml:"tolerance"`
	SoftenEdges  bool   `json:"soften_edges" yaml:"soften_edges"`
	SoftenRadius uint8  `json:"soften_radius" yaml:"soften_radius"`
}

// BatchConfig holds worker pool settings.
type BatchConfig struct {
	// Workers is the pool size; 0 uses one worker per CPU.
	Workers int `json:"workers" yaml:"workers"`
}

// WatchConfig holds hot folder settings.
type WatchConfig struct {
	// DebounceMillis waits for writes to settle before a file is processed.
	DebounceMillis int `json:"debounce_ms" yaml:"debounce_ms"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			Format:         "png",
			Quality:        images.DefaultQuality,
			PreserveAspect: true,
		},
		Background: BackgroundConfig{
			KeyColor:     "#FFFFFF",
			Tolerance:    30,
			SoftenRadius: 1,
		},
		Watch: WatchConfig{
			DebounceMillis: 500,
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
//
// Arguments:
// - filename: Path to the YAML file.
//
// Returns:
// - *Config: The merged configuration.
// - error: If the file cannot be read or parsed.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", filename)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// YAML returns c encoded as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	return data, errors.Wrap(err, "failed to marshal config")
}

// SaveConfig writes c as YAML to filename.
func (c *Config) SaveConfig(filename string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(filename, data, 0o644), "failed to write config")
}

// Validate checks values that cannot be caught by the field types.
func (c *Config) Validate() error {
	if _, err := images.ParseFormat(c.Convert.Format); err != nil {
		return errors.Wrap(err, "convert.format")
	}
	if c.Convert.Quality < 1 || c.Convert.Quality > 100 {
		return errors.Errorf("convert.quality must be in [1, 100], got %d", c.Convert.Quality)
	}
	if _, err := images.ParseHexColor(c.Background.KeyColor); err != nil {
		return errors.Wrap(err, "background.key_color")
	}
	if c.Batch.Workers < 0 {
		return errors.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	if c.Watch.DebounceMillis < 0 {
		return errors.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMillis)
	}
	return nil
}
