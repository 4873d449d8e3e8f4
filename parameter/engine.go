package parameter

import "time"

// Engine & Queues
const (
	// SignalQueueSize is the inbound signal ring capacity (power of two)
	SignalQueueSize = 256

	// SignalBufferMask wraps ring indices
	SignalBufferMask = SignalQueueSize - 1

	// DispatchIdleWait bounds how long the dispatch loop sleeps when no
	// timer is due and no signal is pending
	DispatchIdleWait = 50 * time.Millisecond
)

// Render
const (
	// RenderFallbackInterval is used when an AnimationSpec carries a
	// non-positive frame interval
	RenderFallbackInterval = 150 * time.Millisecond

	// ClickSlopCells is the hit-test margin around the sprite for mouse clicks
	ClickSlopCells = 1
)

// Audio
const (
	AudioSampleRate = 44100

	// AudioBufferLen is the speaker buffer length in samples
	AudioBufferLen = 2048
)
