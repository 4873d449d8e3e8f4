package dog

import "time"

// Settings is the configuration surface the controller consumes. Values are
// re-read on every evaluation of the rule they affect; changes have no
// retroactive effect on in-flight timers.
type Settings struct {
	Size          string        // presentation-only, passed through to assets
	IdleTimeout   time.Duration // sustained inactivity before idle blinking
	EnableBark    bool
	BarkDelay     time.Duration
	DeathCooldown time.Duration
}

// SettingsSource supplies the current settings snapshot.
// Implementations must be safe for concurrent reads; the config package
// backs this with an atomically swapped snapshot under live reload.
type SettingsSource interface {
	Settings() Settings
}

// StaticSettings is a fixed SettingsSource for tests and defaults
type StaticSettings Settings

func (s StaticSettings) Settings() Settings { return Settings(s) }
