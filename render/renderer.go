// Package render draws the dog on a tcell screen. It consumes animation
// directives from the controller, owns frame playback timing, and feeds
// mouse interaction back as inbound signals.
package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/MohinVinayak/Code-Dog/asset"
	"github.com/MohinVinayak/Code-Dog/core"
	"github.com/MohinVinayak/Code-Dog/dog"
	"github.com/MohinVinayak/Code-Dog/parameter"
)

// playback is the renderer-side view of one directive: decoded frames and
// timing. Swapped atomically under mu when a new directive arrives.
type playback struct {
	name     dog.AnimationName
	frames   [][]string
	interval time.Duration
	loop     bool
	idx      int
	done     bool // one-shot animation finished, hold last frame
}

// Renderer implements dog.Renderer on a tcell screen
type Renderer struct {
	screen tcell.Screen
	loader asset.Loader
	log    *zap.Logger

	mu      sync.Mutex
	current playback
	posX    int
	posY    int

	// Frame art cache; directives repeat the same refs
	cache map[dog.FrameRef][]string

	changed  chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// OnClick fires when the sprite is clicked; OnQuit when the user exits.
	// Both are invoked from the input goroutine.
	OnClick func()
	OnQuit  func()
	OnMute  func()
}

// NewRenderer creates a renderer over an initialized screen
func NewRenderer(screen tcell.Screen, loader asset.Loader) *Renderer {
	return &Renderer{
		screen:   screen,
		loader:   loader,
		log:      core.Log(),
		cache:    make(map[dog.FrameRef][]string),
		changed:  make(chan struct{}, 1),
		stopChan: make(chan struct{}),
		posX:     4,
		posY:     2,
	}
}

// SetAnimation swaps the active playback. Never blocks the caller's
// dispatch turn; decoding uses the frame cache.
func (r *Renderer) SetAnimation(d dog.Directive) {
	frames := make([][]string, 0, len(d.Frames))
	for _, ref := range d.Frames {
		art, err := r.loadFrame(ref)
		if err != nil {
			r.log.Debug("frame load failed", zap.String("ref", string(ref)), zap.Error(err))
			continue
		}
		frames = append(frames, art)
	}
	if len(frames) == 0 {
		// Nothing to show; keep the prior animation on screen
		return
	}

	interval := d.Interval
	if interval <= 0 {
		interval = parameter.RenderFallbackInterval
	}

	r.mu.Lock()
	r.current = playback{
		name:     d.Name,
		frames:   frames,
		interval: interval,
		loop:     d.Loop,
	}
	r.mu.Unlock()

	select {
	case r.changed <- struct{}{}:
	default:
	}
}

func (r *Renderer) loadFrame(ref dog.FrameRef) ([]string, error) {
	r.mu.Lock()
	art, ok := r.cache[ref]
	r.mu.Unlock()
	if ok {
		return art, nil
	}
	art, err := r.loader.Load(ref)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cache[ref] = art
	r.mu.Unlock()
	return art, nil
}

// Start launches the draw and input loops
func (r *Renderer) Start() {
	r.wg.Add(2)
	core.Go(r.drawLoop)
	core.Go(r.inputLoop)
}

// Stop halts both loops. Idempotent. The screen is finalized by the caller.
func (r *Renderer) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
		// Unblock PollEvent so the input loop can exit
		r.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	r.wg.Wait()
}

// drawLoop advances and paints frames at the active animation's interval
func (r *Renderer) drawLoop() {
	defer r.wg.Done()

	timer := time.NewTimer(parameter.RenderFallbackInterval)
	defer timer.Stop()

	for {
		r.paint()

		r.mu.Lock()
		interval := r.current.interval
		r.mu.Unlock()
		if interval <= 0 {
			interval = parameter.RenderFallbackInterval
		}

		timer.Reset(interval)
		select {
		case <-r.stopChan:
			return
		case <-r.changed:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
			r.advance()
		}
	}
}

// advance steps the frame index, honoring loop vs hold-last semantics
func (r *Renderer) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &r.current
	if len(p.frames) == 0 || p.done {
		return
	}
	if p.idx+1 < len(p.frames) {
		p.idx++
		return
	}
	if p.loop {
		p.idx = 0
		return
	}
	p.done = true
}

// paint clears and redraws the sprite at its position
func (r *Renderer) paint() {
	r.mu.Lock()
	p := r.current
	x, y := r.posX, r.posY
	r.mu.Unlock()

	r.screen.Clear()
	if len(p.frames) > 0 {
		style := tcell.StyleDefault
		if p.name == dog.AnimDeath {
			style = style.Foreground(tcell.ColorRed)
		}
		drawArt(r.screen, x, y, p.frames[p.idx], style)
	}
	r.screen.Show()
}

// drawArt writes art lines starting at (x, y)
func drawArt(s tcell.Screen, x, y int, lines []string, style tcell.Style) {
	for dy, line := range lines {
		dx := 0
		for _, ch := range line {
			s.SetContent(x+dx, y+dy, ch, nil, style)
			dx++
		}
	}
}

// spriteBounds returns the current sprite bounding box with click slop
func (r *Renderer) spriteBounds() (x0, y0, x1, y1 int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, h := 0, 0
	if len(r.current.frames) > 0 {
		for _, line := range r.current.frames[r.current.idx] {
			if len([]rune(line)) > w {
				w = len([]rune(line))
			}
		}
		h = len(r.current.frames[r.current.idx])
	}
	slop := parameter.ClickSlopCells
	return r.posX - slop, r.posY - slop, r.posX + w + slop, r.posY + h + slop
}
