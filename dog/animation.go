package dog

import "time"

// AnimationName identifies one of the nine dog animations
type AnimationName int

const (
	AnimNone AnimationName = iota // no directive issued yet

	AnimBark
	AnimBite
	AnimBlink
	AnimDeath
	AnimIdleBlink
	AnimRun
	AnimSniff
	AnimTracking
	AnimWalk
)

var animationNames = map[AnimationName]string{
	AnimBark:      "bark",
	AnimBite:      "bite",
	AnimBlink:     "blink",
	AnimDeath:     "death",
	AnimIdleBlink: "idleblink",
	AnimRun:       "run",
	AnimSniff:     "sniff",
	AnimTracking:  "tracking",
	AnimWalk:      "walk",
}

func (n AnimationName) String() string {
	if s, ok := animationNames[n]; ok {
		return s
	}
	return "none"
}

// AllAnimations lists every animation in a stable order, for catalog
// validation and tests
func AllAnimations() []AnimationName {
	return []AnimationName{
		AnimBark, AnimBite, AnimBlink, AnimDeath, AnimIdleBlink,
		AnimRun, AnimSniff, AnimTracking, AnimWalk,
	}
}

// AnimationSpec is static playback configuration for one animation
type AnimationSpec struct {
	Interval time.Duration // frame interval
	Loop     bool          // false = hold last frame after one pass
}

// animationSpecs is the fixed playback table. Loop stays on for ambient
// animations; one-shot gestures hold their final frame inside the override
// window.
var animationSpecs = map[AnimationName]AnimationSpec{
	AnimBark:      {Interval: 150 * time.Millisecond, Loop: false},
	AnimBite:      {Interval: 120 * time.Millisecond, Loop: false},
	AnimBlink:     {Interval: 130 * time.Millisecond, Loop: false},
	AnimDeath:     {Interval: 200 * time.Millisecond, Loop: true},
	AnimIdleBlink: {Interval: 400 * time.Millisecond, Loop: true},
	AnimRun:       {Interval: 100 * time.Millisecond, Loop: true},
	AnimSniff:     {Interval: 150 * time.Millisecond, Loop: false},
	AnimTracking:  {Interval: 180 * time.Millisecond, Loop: true},
	AnimWalk:      {Interval: 150 * time.Millisecond, Loop: true},
}

// SpecFor returns the playback spec for an animation
func SpecFor(n AnimationName) AnimationSpec {
	return animationSpecs[n]
}

// FrameRef identifies a single animation frame in the asset catalog
// (typically a file path or embedded key)
type FrameRef string

// AssetCatalog resolves an animation to its ordered frame references.
// Implementations return an empty slice, never an error, when the source
// is absent or unreadable.
type AssetCatalog interface {
	Resolve(name AnimationName) []FrameRef
}

// Directive is the outbound presentation instruction for the renderer
type Directive struct {
	Name     AnimationName
	Frames   []FrameRef
	Interval time.Duration
	Loop     bool
}

// Renderer consumes presentation directives. The controller calls
// SetAnimation on its own dispatch turn; implementations must not call
// back into the controller synchronously.
type Renderer interface {
	SetAnimation(d Directive)
}
