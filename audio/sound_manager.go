// Package audio plays procedural feedback sounds through beep. Every sound
// is generated, not sampled; a machine without a usable audio device
// degrades to silence rather than failing startup.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/MohinVinayak/Code-Dog/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager owns the speaker and mixes the dog's sounds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager; call Initialize before playing
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize sets up the audio system. A failed speaker init leaves the
// manager silent and is not an error for callers.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, parameter.AudioBufferLen); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.mixer.Clear()
	sm.initialized = false
}

// SetMuted toggles sound output
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// playable reports whether a sound should be mixed right now
func (sm *SoundManager) playable() bool {
	return sm.initialized && !sm.muted
}

// PlayBark plays the short yip
func (sm *SoundManager) PlayBark() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.playable() {
		return
	}
	n := sampleRate.N(250 * time.Millisecond)
	sm.mixer.Add(NewYipGenerator(sampleRate, n))
}

// PlayDeath plays the falling wail
func (sm *SoundManager) PlayDeath() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.playable() {
		return
	}
	n := sampleRate.N(800 * time.Millisecond)
	sm.mixer.Add(NewWailGenerator(sampleRate, n))
}

// PlaySuccess plays the rising chime
func (sm *SoundManager) PlaySuccess() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.playable() {
		return
	}
	n := sampleRate.N(400 * time.Millisecond)
	sm.mixer.Add(NewChimeGenerator(sampleRate, n))
}
