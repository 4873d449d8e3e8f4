// Package config loads and persists the dog's configuration from a TOML
// file and serves live snapshots to the controller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MohinVinayak/Code-Dog/dog"
	"github.com/MohinVinayak/Code-Dog/parameter"
)

// Config is the on-disk configuration shape. Durations are milliseconds in
// the file; negative values are clamped to zero when consumed.
type Config struct {
	Size            string `toml:"size"` // small | medium | large
	IdleTimeoutMs   int    `toml:"idle_timeout_ms"`
	EnableBark      bool   `toml:"enable_bark"`
	BarkDelayMs     int    `toml:"bark_delay_ms"`
	DeathCooldownMs int    `toml:"death_cooldown_ms"`
	AssetDir        string `toml:"asset_dir"` // empty = built-in art
	Mute            bool   `toml:"mute"`
	DebugLog        bool   `toml:"debug_log"`
}

// Default returns the compiled-in defaults
func Default() Config {
	return Config{
		Size:            "medium",
		IdleTimeoutMs:   int(parameter.DefaultIdleTimeout / time.Millisecond),
		EnableBark:      true,
		BarkDelayMs:     int(parameter.DefaultBarkDelay / time.Millisecond),
		DeathCooldownMs: int(parameter.DefaultDeathCooldown / time.Millisecond),
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "code-dog", "config.toml")
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config: %w", err)
	}
	return cfg.normalized(), nil
}

// Save writes the config to path, creating parent directories
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// normalized clamps out-of-range values instead of rejecting them
func (c Config) normalized() Config {
	switch c.Size {
	case "small", "medium", "large":
	default:
		c.Size = "medium"
	}
	if c.IdleTimeoutMs < 0 {
		c.IdleTimeoutMs = 0
	}
	if c.BarkDelayMs < 0 {
		c.BarkDelayMs = 0
	}
	if c.DeathCooldownMs < 0 {
		c.DeathCooldownMs = 0
	}
	return c
}

// settings converts to the controller's consumption shape
func (c Config) settings() dog.Settings {
	return dog.Settings{
		Size:          c.Size,
		IdleTimeout:   time.Duration(c.IdleTimeoutMs) * time.Millisecond,
		EnableBark:    c.EnableBark,
		BarkDelay:     time.Duration(c.BarkDelayMs) * time.Millisecond,
		DeathCooldown: time.Duration(c.DeathCooldownMs) * time.Millisecond,
	}
}
