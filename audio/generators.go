package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// YipGenerator produces a short rising chirp, the bark sound.
// Frequency sweeps up over the pulse with a fast attack/release envelope.
type YipGenerator struct {
	sr       beep.SampleRate
	pos      int
	duration int
}

// NewYipGenerator creates a bark chirp of the given duration in samples
func NewYipGenerator(sr beep.SampleRate, samples int) *YipGenerator {
	return &YipGenerator{sr: sr, duration: samples}
}

func (g *YipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.duration {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.duration)

		// 500 -> 950 Hz sweep
		freq := 500.0 + 450.0*progress
		v := math.Sin(2 * math.Pi * freq * t)

		// Fast attack, longer release
		env := 1.0
		if progress < 0.1 {
			env = progress / 0.1
		} else {
			env = 1.0 - (progress-0.1)/0.9
		}
		v *= env * 0.4

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *YipGenerator) Err() error { return nil }

// WailGenerator produces a long falling tone, the death sound
type WailGenerator struct {
	sr       beep.SampleRate
	pos      int
	duration int
}

// NewWailGenerator creates a death wail of the given duration in samples
func NewWailGenerator(sr beep.SampleRate, samples int) *WailGenerator {
	return &WailGenerator{sr: sr, duration: samples}
}

func (g *WailGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.duration {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.duration)

		// 440 -> 140 Hz slide
		freq := 440.0 - 300.0*progress
		v := math.Sin(2 * math.Pi * freq * t)

		// Slow fade out
		v *= (1.0 - progress) * 0.35

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *WailGenerator) Err() error { return nil }

// ChimeGenerator produces a quick two-note rising chime, the success sound
type ChimeGenerator struct {
	sr       beep.SampleRate
	pos      int
	duration int
}

// NewChimeGenerator creates a success chime of the given duration in samples
func NewChimeGenerator(sr beep.SampleRate, samples int) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, duration: samples}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	half := g.duration / 2
	for i := range samples {
		if g.pos >= g.duration {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		// C5 then G5
		freq := 523.25
		noteStart := 0
		if g.pos >= half {
			freq = 783.99
			noteStart = half
		}
		v := math.Sin(2 * math.Pi * freq * t)

		// Per-note decay
		noteProgress := float64(g.pos-noteStart) / float64(half)
		v *= (1.0 - noteProgress) * 0.3

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error { return nil }
