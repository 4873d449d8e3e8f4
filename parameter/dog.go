package parameter

import "time"

// Baseline & Activity
const (
	// WalkWindow is how long after the last edit the baseline stays Walk
	WalkWindow = 200 * time.Millisecond

	// ActivityWatchdog is the delay before the "stopped typing" check fires,
	// recreated on every edit
	ActivityWatchdog = 200 * time.Millisecond

	// IdleTick is the period of the sustained-inactivity sampler
	IdleTick = 500 * time.Millisecond
)

// Idle Blink
const (
	// BlinkProbability is the chance per idle tick of a spontaneous blink
	BlinkProbability = 0.30

	// BlinkDuration is how long a Blink override holds
	BlinkDuration = 400 * time.Millisecond

	// MaxIdleBlinks caps blinks per continuous idle episode
	MaxIdleBlinks = 3
)

// Temporary Overrides
const (
	// SniffDuration holds Sniff after a save
	SniffDuration = 900 * time.Millisecond

	// TrackingDuration holds Tracking after an editor switch or close
	TrackingDuration = 1500 * time.Millisecond

	// BiteDuration holds Bite after a large deletion
	BiteDuration = 1000 * time.Millisecond

	// BiteDeletionThreshold is the minimum deletion size that triggers Bite
	BiteDeletionThreshold = 10

	// BarkDuration holds Bark once the diagnostic gate fires
	BarkDuration = 1200 * time.Millisecond
)

// Bark Gate & Holds
const (
	// BarkCooldown is the minimum spacing between barks
	BarkCooldown = 30 * time.Second

	// SuccessHoldDuration keeps Run showing after a zero-exit completion
	SuccessHoldDuration = 10 * time.Second
)

// Config Defaults
const (
	// DefaultIdleTimeout is sustained inactivity before idle blinking may start
	DefaultIdleTimeout = 30 * time.Second

	// DefaultBarkDelay is the debounce between a diagnostic signal and the bark re-check
	DefaultBarkDelay = 5 * time.Second

	// DefaultDeathCooldown is how long the death lock holds
	DefaultDeathCooldown = 8 * time.Second
)
