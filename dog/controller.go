// Package dog decides what the dog shows. It maps inbound activity signals
// onto a single displayed animation through a fixed priority order: the
// death lock outranks everything, task/debug starts outrank overrides,
// temporary overrides outrank the success hold, and the baseline
// (Walk/IdleBlink) fills the rest.
package dog

import (
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/MohinVinayak/Code-Dog/core"
	"github.com/MohinVinayak/Code-Dog/engine"
	"github.com/MohinVinayak/Code-Dog/events"
	"github.com/MohinVinayak/Code-Dog/parameter"
	"github.com/MohinVinayak/Code-Dog/status"
)

// Controller is the single authority for which animation is showing.
//
// All state below is loop-confined: every mutation happens on the
// scheduler's dispatch goroutine, either inside HandleSignal or inside a
// timer callback. Producers only push signals; the renderer only receives
// directives. Timer callbacks revalidate against the flags and the
// override generation before touching presentation, since the world may
// have changed between scheduling and firing.
type Controller struct {
	sched    *engine.Scheduler
	clock    engine.Clock
	catalog  AssetCatalog
	renderer Renderer
	settings SettingsSource
	rng      *rand.Rand
	log      *zap.Logger

	// Presentation state
	current AnimationName

	// Temporary override state. overrideGen is the freshness token: each
	// scheduled expiry captures the generation at scheduling time and
	// no-ops on mismatch, which makes overlapping overrides safe without
	// canceling in-flight expiry timers.
	tempHoldUntil time.Time
	overrideGen   uint64

	// Exclusive locks and holds
	deathLocked      bool
	successRunActive bool

	// Activity tracking
	lastActivity   time.Time
	idleBlinkCount int

	// Diagnostic bark gate
	nextBarkAllowedAt time.Time
	barkPending       bool
	diagHasIssue      bool

	// Explicitly canceled timers (cancel discipline: outranking events
	// cancel these; override expiries rely on the generation token instead)
	deathTimer    *engine.TimerHandle
	successTimer  *engine.TimerHandle
	barkTimer     *engine.TimerHandle
	watchdogTimer *engine.TimerHandle
	idleTicker    *engine.TimerHandle

	disposed bool

	// Cached metric pointers
	statDirectives *atomic.Int64
	statBarks      *atomic.Int64
	statBlinks     *atomic.Int64
	statDeaths     *atomic.Int64
	statStale      *atomic.Int64
	statClicks     *atomic.Int64
}

// NewController wires the controller to its collaborators. rng must be a
// dedicated source so idle-blink behavior is reproducible under test.
func NewController(
	sched *engine.Scheduler,
	clock engine.Clock,
	catalog AssetCatalog,
	renderer Renderer,
	settings SettingsSource,
	rng *rand.Rand,
	reg *status.Registry,
) *Controller {
	c := &Controller{
		sched:          sched,
		clock:          clock,
		catalog:        catalog,
		renderer:       renderer,
		settings:       settings,
		rng:            rng,
		log:            core.Log(),
		lastActivity:   clock.Now(),
		statDirectives: reg.Ints.Get("dog.directives"),
		statBarks:      reg.Ints.Get("dog.barks"),
		statBlinks:     reg.Ints.Get("dog.blinks"),
		statDeaths:     reg.Ints.Get("dog.deaths"),
		statStale:      reg.Ints.Get("dog.stale_timers"),
		statClicks:     reg.Ints.Get("dog.clicks"),
	}
	return c
}

// Start issues the initial IdleBlink directive and arms the idle sampler.
// Call once the render surface is ready.
func (c *Controller) Start() {
	c.setAnimation(AnimIdleBlink, true)
	c.idleTicker = c.sched.Every(parameter.IdleTick, c.idleTick)
}

// Dispose cancels every outstanding timer so no callback acts on a
// destroyed state. Further signals are ignored.
func (c *Controller) Dispose() {
	c.disposed = true
	for _, h := range []*engine.TimerHandle{
		c.deathTimer, c.successTimer, c.barkTimer, c.watchdogTimer, c.idleTicker,
	} {
		h.Cancel()
	}
	c.overrideGen++ // invalidate in-flight override expiries
}

// SignalTypes registers the controller for every inbound signal
func (c *Controller) SignalTypes() []events.SignalType {
	return []events.SignalType{
		events.SignalEditChanged,
		events.SignalSaved,
		events.SignalEditorClosed,
		events.SignalActiveEditorChanged,
		events.SignalDiagnosticsChanged,
		events.SignalTaskStarted,
		events.SignalTaskEnded,
		events.SignalDebugStarted,
		events.SignalDebugEnded,
		events.SignalClicked,
	}
}

// HandleSignal applies the priority policy to one inbound signal.
// Runs on the dispatch goroutine only.
func (c *Controller) HandleSignal(now time.Time, sig events.Signal) {
	if c.disposed {
		return
	}

	switch sig.Type {
	case events.SignalEditChanged:
		c.onEdit(now, sig.Payload)
	case events.SignalSaved:
		c.playTemporary(now, AnimSniff, parameter.SniffDuration, nil)
	case events.SignalEditorClosed, events.SignalActiveEditorChanged:
		c.playTemporary(now, AnimTracking, parameter.TrackingDuration, nil)
	case events.SignalDiagnosticsChanged:
		c.onDiagnostics(now, sig.Payload)
	case events.SignalTaskStarted, events.SignalDebugStarted:
		c.onStart(now)
	case events.SignalTaskEnded:
		c.onTaskEnded(now, sig.Payload)
	case events.SignalDebugEnded:
		// No exit code: neither success hold nor death lock, just re-resolve
		c.applyResolved(now)
	case events.SignalClicked:
		c.onClick(now)
	}
}

// Current returns the animation last directed. Test-side accessor; reads
// are only meaningful on the dispatch goroutine.
func (c *Controller) Current() AnimationName {
	return c.current
}

// overrideActive reports whether a temporary override holds at now
func (c *Controller) overrideActive(now time.Time) bool {
	return !c.tempHoldUntil.IsZero() && c.tempHoldUntil.After(now)
}

// baseline picks the default animation purely from activity recency
func (c *Controller) baseline(now time.Time) AnimationName {
	if now.Sub(c.lastActivity) <= parameter.WalkWindow {
		return AnimWalk
	}
	return AnimIdleBlink
}

// applyResolved re-evaluates the full precedence order and issues whatever
// it dictates. Used when an exclusive state expires.
func (c *Controller) applyResolved(now time.Time) {
	switch {
	case c.deathLocked:
		c.setAnimation(AnimDeath, false)
	case c.overrideActive(now):
		// In-flight override keeps the screen
	case c.successRunActive:
		c.setAnimation(AnimRun, false)
	default:
		c.setAnimation(c.baseline(now), false)
	}
}

// setAnimation issues a directive unless it would be a redundant repeat.
// An unresolvable animation is skipped entirely: the prior animation stays
// visible and current is not updated.
func (c *Controller) setAnimation(name AnimationName, force bool) {
	if c.disposed {
		return
	}
	if name == c.current && !force {
		return
	}
	frames := c.catalog.Resolve(name)
	if len(frames) == 0 {
		c.log.Debug("no frames for animation, directive skipped",
			zap.String("animation", name.String()))
		return
	}
	spec := SpecFor(name)
	c.renderer.SetAnimation(Directive{
		Name:     name,
		Frames:   frames,
		Interval: spec.Interval,
		Loop:     spec.Loop,
	})
	c.current = name
	c.statDirectives.Add(1)
}

// playTemporary shows name exclusively for d, then reverts. onComplete, if
// non-nil, replaces the default baseline reversion. A newer override always
// preempts an in-flight one; the superseded expiry becomes a stale no-op
// via the generation token. Death outranks every override.
func (c *Controller) playTemporary(now time.Time, name AnimationName, d time.Duration, onComplete func(now time.Time)) {
	if c.disposed || c.deathLocked {
		return
	}
	if d < 0 {
		d = 0
	}

	c.setAnimation(name, true)
	c.overrideGen++
	gen := c.overrideGen
	c.tempHoldUntil = now.Add(d)

	c.sched.After(d, func(fireNow time.Time) {
		if c.disposed {
			return
		}
		if c.overrideGen != gen {
			// Superseded while in flight; must be a pure no-op
			c.statStale.Add(1)
			return
		}
		c.tempHoldUntil = time.Time{}
		if onComplete != nil {
			onComplete(fireNow)
			return
		}
		c.applyResolved(fireNow)
	})
}

// clearOverride invalidates any active override and its pending expiry
func (c *Controller) clearOverride() {
	c.overrideGen++
	c.tempHoldUntil = time.Time{}
}

// onStart handles task/debug launch: force Run and cancel the success hold
func (c *Controller) onStart(now time.Time) {
	if c.deathLocked {
		return
	}
	c.successTimer.Cancel()
	c.successRunActive = false
	c.clearOverride()
	c.setAnimation(AnimRun, true)
}

// onTaskEnded routes by exit code: zero arms the success hold, nonzero
// enters the death lock
func (c *Controller) onTaskEnded(now time.Time, payload any) {
	p, ok := payload.(*events.TaskEndedPayload)
	if !ok {
		return
	}
	if p.ExitCode == 0 {
		c.onSuccess(now)
		return
	}
	c.onFailure(now)
}

// onSuccess enters the post-success hold: Run shows for a fixed window and
// baseline reversion is suppressed. An active override keeps the screen
// (overrides outrank the hold) but the hold is still armed underneath it.
func (c *Controller) onSuccess(now time.Time) {
	if c.deathLocked {
		return
	}
	c.successTimer.Cancel()
	c.successRunActive = true
	if !c.overrideActive(now) {
		c.setAnimation(AnimRun, true)
	}
	c.successTimer = c.sched.After(parameter.SuccessHoldDuration, func(fireNow time.Time) {
		if c.disposed || !c.successRunActive {
			return
		}
		c.successRunActive = false
		if !c.overrideActive(fireNow) && !c.deathLocked {
			c.setAnimation(c.baseline(fireNow), false)
		}
	})
}

// onFailure enters the death lock: Death shows exclusively and every other
// transition is suppressed until the cooldown clears. Pending success and
// bark timers are canceled explicitly; override expiries go stale via the
// generation bump.
func (c *Controller) onFailure(now time.Time) {
	if c.deathLocked {
		return
	}
	c.setAnimation(AnimDeath, true)
	c.deathLocked = true
	c.statDeaths.Add(1)

	c.successTimer.Cancel()
	c.successRunActive = false
	c.barkTimer.Cancel()
	c.barkPending = false
	c.clearOverride()

	cooldown := c.settings.Settings().DeathCooldown
	if cooldown < 0 {
		cooldown = 0
	}
	c.deathTimer = c.sched.After(cooldown, func(fireNow time.Time) {
		if c.disposed {
			return
		}
		c.deathLocked = false
		if !c.overrideActive(fireNow) {
			c.applyResolved(fireNow)
		}
	})
}
