package dog

import (
	"time"

	"github.com/MohinVinayak/Code-Dog/events"
	"github.com/MohinVinayak/Code-Dog/parameter"
)

// onEdit records activity and shows Walk while typing continues. A large
// deletion bites instead. The short watchdog, recreated on every edit,
// drops back to IdleBlink once edits stop arriving.
func (c *Controller) onEdit(now time.Time, payload any) {
	deletion := 0
	if p, ok := payload.(*events.EditChangedPayload); ok {
		deletion = p.DeletionSize
		if deletion < 0 {
			deletion = 0
		}
	}

	c.lastActivity = now
	c.idleBlinkCount = 0

	if deletion >= parameter.BiteDeletionThreshold {
		c.playTemporary(now, AnimBite, parameter.BiteDuration, nil)
		return
	}

	if !c.deathLocked && !c.overrideActive(now) && !c.successRunActive {
		c.setAnimation(AnimWalk, false)
	}

	c.watchdogTimer.Cancel()
	c.watchdogTimer = c.sched.After(parameter.ActivityWatchdog, func(fireNow time.Time) {
		if c.disposed || c.deathLocked || c.overrideActive(fireNow) || c.successRunActive {
			return
		}
		// The watchdog is recreated on every edit, so firing means no
		// further edits arrived during the window
		c.setAnimation(AnimIdleBlink, false)
	})
}

// idleTick samples sustained inactivity and occasionally blinks. The fixed
// per-tick probability makes blinking look organic rather than cyclic;
// the per-episode cap keeps it rare.
func (c *Controller) idleTick(now time.Time) {
	if c.disposed || c.deathLocked || c.overrideActive(now) || c.successRunActive {
		return
	}

	idleFor := now.Sub(c.lastActivity)
	timeout := c.settings.Settings().IdleTimeout
	if timeout < 0 {
		timeout = 0
	}
	if idleFor < timeout {
		return
	}
	if c.idleBlinkCount >= parameter.MaxIdleBlinks {
		return
	}
	if c.rng.Float64() >= parameter.BlinkProbability {
		return
	}

	c.idleBlinkCount++
	c.statBlinks.Add(1)
	c.playTemporary(now, AnimBlink, parameter.BlinkDuration, func(fireNow time.Time) {
		c.setAnimation(AnimIdleBlink, false)
	})
}
