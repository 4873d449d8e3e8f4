package audio

import (
	"github.com/MohinVinayak/Code-Dog/dog"
)

// DirectiveSounds is a renderer middleware that keys sound effects to
// directives before passing them on: Bark yips, Death wails, Run chimes.
type DirectiveSounds struct {
	Next    dog.Renderer
	Manager *SoundManager
}

// SetAnimation plays the matching sound and forwards the directive
func (ds *DirectiveSounds) SetAnimation(d dog.Directive) {
	switch d.Name {
	case dog.AnimBark:
		ds.Manager.PlayBark()
	case dog.AnimDeath:
		ds.Manager.PlayDeath()
	case dog.AnimRun:
		ds.Manager.PlaySuccess()
	}
	ds.Next.SetAnimation(d)
}
