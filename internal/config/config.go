// Package config loads the flotsam CLI settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/flotsam/endian"
)

// Supported values for Config.Format.
const (
	FormatText = "text"
	FormatRaw  = "raw"
)

// Config holds CLI defaults. Command-line flags override these values.
type Config struct {
	// Width selects the codec: 64 (10 chars/value) or 32 (5 chars/value).
	Width int `yaml:"width"`
	// ByteOrder is used for raw binary input and output: little, big or native.
	ByteOrder string `yaml:"byte_order"`
	// Format of the numeric side of a conversion: text or raw.
	Format string `yaml:"format"`
	// Strict rejects decoded NaN/Inf bit patterns.
	Strict bool `yaml:"strict"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads and parses a config file. A missing file yields the defaults when
// optional is true.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses config from raw YAML bytes, applying defaults and validating.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	if c.Width != 32 && c.Width != 64 {
		return fmt.Errorf("width must be 32 or 64, got %d", c.Width)
	}

	if _, err := endian.Parse(c.ByteOrder); err != nil {
		return err
	}

	switch c.Format {
	case FormatText, FormatRaw:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatText, FormatRaw, c.Format)
	}

	return nil
}

// Engine returns the byte order engine for raw data.
func (c *Config) Engine() (endian.EndianEngine, error) {
	return endian.Parse(c.ByteOrder)
}

func applyDefaults(cfg *Config) {
	if cfg.Width == 0 {
		cfg.Width = 64
	}
	if cfg.ByteOrder == "" {
		cfg.ByteOrder = "little"
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
}
