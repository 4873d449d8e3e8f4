package dog

import (
	"time"

	"github.com/MohinVinayak/Code-Dog/events"
	"github.com/MohinVinayak/Code-Dog/parameter"
)

// onDiagnostics runs the debounced, cooldown-limited bark gate.
//
// pending and cooldown are independent: pending prevents duplicate
// scheduling while a check is in flight; cooldown blocks re-scheduling
// even when nothing is pending, so flapping diagnostics cannot retrigger
// barking inside the window.
func (c *Controller) onDiagnostics(now time.Time, payload any) {
	p, ok := payload.(*events.DiagnosticsChangedPayload)
	if !ok {
		return
	}
	c.diagHasIssue = p.HasError || p.HasWarning

	if !c.diagHasIssue {
		// Alert condition resolved before the delayed check fired
		c.barkTimer.Cancel()
		c.barkPending = false
		return
	}

	cfg := c.settings.Settings()
	if !cfg.EnableBark || c.deathLocked || c.successRunActive {
		return
	}
	if c.barkPending || now.Before(c.nextBarkAllowedAt) {
		return
	}

	delay := cfg.BarkDelay
	if delay < 0 {
		delay = 0
	}
	c.barkPending = true
	c.barkTimer = c.sched.After(delay, func(fireNow time.Time) {
		if c.disposed {
			return
		}
		c.barkPending = false
		// Re-query: the condition may have changed during the delay
		if !c.diagHasIssue {
			return
		}
		cfg := c.settings.Settings()
		if !cfg.EnableBark || c.deathLocked || c.successRunActive {
			return
		}
		c.playTemporary(fireNow, AnimBark, parameter.BarkDuration, nil)
		c.nextBarkAllowedAt = fireNow.Add(parameter.BarkCooldown)
		c.statBarks.Add(1)
	})
}

// onClick is the petting interaction: an immediate bark that settles back
// to IdleBlink. It bypasses the diagnostic cooldown but never the death
// lock.
func (c *Controller) onClick(now time.Time) {
	if c.deathLocked {
		return
	}
	c.statClicks.Add(1)
	c.playTemporary(now, AnimBark, parameter.BarkDuration, func(fireNow time.Time) {
		c.setAnimation(AnimIdleBlink, false)
	})
}
