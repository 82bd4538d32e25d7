// Package config loads and validates the mlmath configuration file
// (.mlmath.yml) with MLMATH_* environment overrides.
package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/mlmathbook/mlmath/internal/scroll"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MLMATH_*). Nested keys use underscores
// doubled as separators: MLMATH_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("MLMATH_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "MLMATH_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Scroll.DurationMS < 0 {
		return fmt.Errorf("scroll.duration_ms must be non-negative")
	}
	if c.Scroll.Easing != "" && !scroll.ValidEasing(c.Scroll.Easing) {
		return fmt.Errorf("unknown scroll.easing %q", c.Scroll.Easing)
	}

	if t := c.Visibility.MinVisibilityThreshold; t < 0 || t > 1 {
		return fmt.Errorf("visibility.min_visibility_threshold %v out of [0,1]", t)
	}
	w := c.Visibility.WeightFactors
	if sum := w.Visibility + w.Position + w.Size; sum != 0 && math.Abs(sum-1) > 0.01 {
		log.Printf("config: visibility weight factors sum to %.2f, not 1.0", sum)
	}
	if c.Visibility.HeaderOffset < 0 || c.Visibility.FooterOffset < 0 {
		return fmt.Errorf("visibility offsets must be non-negative")
	}

	if c.Observer.ThrottleMS < 0 || c.Observer.ScrollStopMS < 0 || c.Observer.RescanMS < 0 {
		return fmt.Errorf("observer timings must be non-negative")
	}

	return nil
}
