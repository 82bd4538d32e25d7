package config

import (
	"github.com/mlmathbook/mlmath/internal/scroll"
	"github.com/mlmathbook/mlmath/internal/visibility"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    8080,
			BaseURL: "http://localhost:8080",
		},
		ContentDir: "content",
		DataDir:    ".mlmath",
		OutputDir:  "public",
		Scroll: ScrollConfig{
			DurationMS: 800,
			Offset:     80,
			Easing:     scroll.EasingSmooth,
		},
		Visibility: visibility.DefaultConfig(),
		Observer: ObserverConfig{
			ThrottleMS:   16,
			ScrollStopMS: 150,
			RescanMS:     100,
		},
	}
}
