package render

import (
	"github.com/gdamore/tcell/v2"
)

// inputLoop translates terminal events: clicks on the sprite become
// signals, drag repositions the dog, q/Esc/Ctrl+C quits, m toggles mute
func (r *Renderer) inputLoop() {
	defer r.wg.Done()

	dragging := false
	dragOffX, dragOffY := 0, 0

	for {
		select {
		case <-r.stopChan:
			return
		default:
		}

		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			// Posted by Stop to unblock PollEvent
			continue

		case *tcell.EventResize:
			r.screen.Sync()
			r.clampPosition()

		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyEscape:
				r.quit()
				return
			case ev.Rune() == 'q':
				r.quit()
				return
			case ev.Rune() == 'm':
				if r.OnMute != nil {
					r.OnMute()
				}
			}

		case *tcell.EventMouse:
			mx, my := ev.Position()
			buttons := ev.Buttons()

			if buttons&tcell.Button1 != 0 {
				x0, y0, x1, y1 := r.spriteBounds()
				inside := mx >= x0 && mx <= x1 && my >= y0 && my <= y1
				if !dragging && inside {
					dragging = true
					r.mu.Lock()
					dragOffX = mx - r.posX
					dragOffY = my - r.posY
					r.mu.Unlock()
					if r.OnClick != nil {
						r.OnClick()
					}
				} else if dragging {
					r.mu.Lock()
					r.posX = mx - dragOffX
					r.posY = my - dragOffY
					r.mu.Unlock()
					r.clampPosition()
				}
			} else {
				dragging = false
			}
		}
	}
}

// clampPosition keeps the sprite on screen after resize or drag
func (r *Renderer) clampPosition() {
	w, h := r.screen.Size()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.posX < 0 {
		r.posX = 0
	}
	if r.posY < 0 {
		r.posY = 0
	}
	if r.posX >= w {
		r.posX = w - 1
	}
	if r.posY >= h {
		r.posY = h - 1
	}
}

func (r *Renderer) quit() {
	if r.OnQuit != nil {
		r.OnQuit()
	}
}
