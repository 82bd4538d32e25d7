package config

import (
	"time"

	"github.com/mlmathbook/mlmath/internal/observer"
	"github.com/mlmathbook/mlmath/internal/scroll"
	"github.com/mlmathbook/mlmath/internal/visibility"
)

// Config is the top-level mlmath configuration, corresponding to .mlmath.yml.
type Config struct {
	Server     ServerConfig      `yaml:"server" koanf:"server"`
	ContentDir string            `yaml:"content_dir" koanf:"content_dir"`
	DataDir    string            `yaml:"data_dir" koanf:"data_dir"`
	OutputDir  string            `yaml:"output_dir" koanf:"output_dir"`
	Scroll     ScrollConfig      `yaml:"scroll" koanf:"scroll"`
	Visibility visibility.Config `yaml:"visibility" koanf:"visibility"`
	Observer   ObserverConfig    `yaml:"observer" koanf:"observer"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int    `yaml:"port" koanf:"port"`
	BaseURL  string `yaml:"base_url" koanf:"base_url"`
	AllowAll bool   `yaml:"allow_all" koanf:"allow_all"`
}

// ScrollConfig tunes the smooth scroll engine.
type ScrollConfig struct {
	DurationMS int           `yaml:"duration_ms" koanf:"duration_ms"`
	Offset     float64       `yaml:"offset" koanf:"offset"`
	Easing     scroll.Easing `yaml:"easing" koanf:"easing"`
}

// ObserverConfig tunes the section observer timers.
type ObserverConfig struct {
	ThrottleMS   int `yaml:"throttle_ms" koanf:"throttle_ms"`
	ScrollStopMS int `yaml:"scroll_stop_ms" koanf:"scroll_stop_ms"`
	RescanMS     int `yaml:"rescan_ms" koanf:"rescan_ms"`
}

// ScrollOptions converts the configured values into engine options.
func (c *Config) ScrollOptions() scroll.Options {
	return scroll.Options{
		Duration: time.Duration(c.Scroll.DurationMS) * time.Millisecond,
		Easing:   c.Scroll.Easing,
		Offset:   c.Scroll.Offset,
		Behavior: scroll.BehaviorSmooth,
	}
}

// ObserverOptions converts the configured values into observer timing.
func (c *Config) ObserverOptions() observer.Config {
	return observer.Config{
		Visibility:       c.Visibility,
		ThrottleInterval: time.Duration(c.Observer.ThrottleMS) * time.Millisecond,
		ScrollStopDelay:  time.Duration(c.Observer.ScrollStopMS) * time.Millisecond,
		RescanDelay:      time.Duration(c.Observer.RescanMS) * time.Millisecond,
	}
}
