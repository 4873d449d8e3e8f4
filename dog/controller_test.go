package dog

import (
	"math/rand"
	"testing"
	"time"

	"github.com/MohinVinayak/Code-Dog/engine"
	"github.com/MohinVinayak/Code-Dog/events"
	"github.com/MohinVinayak/Code-Dog/parameter"
	"github.com/MohinVinayak/Code-Dog/status"
)

// recordingRenderer captures every directive in order
type recordingRenderer struct {
	directives []Directive
}

func (r *recordingRenderer) SetAnimation(d Directive) {
	r.directives = append(r.directives, d)
}

func (r *recordingRenderer) names() []AnimationName {
	out := make([]AnimationName, len(r.directives))
	for i, d := range r.directives {
		out[i] = d.Name
	}
	return out
}

func (r *recordingRenderer) last() AnimationName {
	if len(r.directives) == 0 {
		return AnimNone
	}
	return r.directives[len(r.directives)-1].Name
}

func (r *recordingRenderer) count(name AnimationName) int {
	n := 0
	for _, d := range r.directives {
		if d.Name == name {
			n++
		}
	}
	return n
}

// stubCatalog resolves two synthetic frames per animation unless the
// animation is marked missing
type stubCatalog struct {
	missing map[AnimationName]bool
}

func (c stubCatalog) Resolve(n AnimationName) []FrameRef {
	if c.missing[n] {
		return nil
	}
	return []FrameRef{
		FrameRef(n.String() + "_1"),
		FrameRef(n.String() + "_2"),
	}
}

// fixture drives the controller with a mocked clock and a manually pumped
// scheduler; no goroutines are started
type fixture struct {
	t     *testing.T
	clock *engine.MockTimeProvider
	sched *engine.Scheduler
	ctrl  *Controller
	rend  *recordingRenderer
	reg   *status.Registry
}

func defaultSettings() Settings {
	return Settings{
		Size:          "medium",
		IdleTimeout:   30 * time.Second,
		EnableBark:    true,
		BarkDelay:     5 * time.Second,
		DeathCooldown: 8 * time.Second,
	}
}

func newFixture(t *testing.T, settings Settings) *fixture {
	return newFixtureWithCatalog(t, settings, stubCatalog{})
}

func newFixtureWithCatalog(t *testing.T, settings Settings, catalog AssetCatalog) *fixture {
	t.Helper()
	clock := engine.NewMockTimeProvider(time.Unix(1000, 0))
	sched := engine.NewScheduler(clock, events.NewSignalQueue())
	rend := &recordingRenderer{}
	reg := status.NewRegistry()
	ctrl := NewController(
		sched, clock, catalog, rend,
		StaticSettings(settings),
		rand.New(rand.NewSource(7)),
		reg,
	)
	sched.RegisterHandler(ctrl)
	ctrl.Start()
	sched.Pump()
	return &fixture{t: t, clock: clock, sched: sched, ctrl: ctrl, rend: rend, reg: reg}
}

// push delivers a signal and runs the dispatch turn
func (f *fixture) push(st events.SignalType, payload any) {
	f.sched.Push(events.Signal{Type: st, Payload: payload})
	f.sched.Pump()
}

// advance moves mocked time forward in 50ms steps, pumping due timers at
// each step so callbacks observe realistic firing times
func (f *fixture) advance(d time.Duration) {
	const step = 50 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		remaining := d - elapsed
		if remaining < step {
			f.clock.Advance(remaining)
		} else {
			f.clock.Advance(step)
		}
		f.sched.Pump()
	}
}

func (f *fixture) expectCurrent(want AnimationName) {
	f.t.Helper()
	if f.ctrl.Current() != want {
		f.t.Fatalf("current animation = %v, want %v (directives: %v)",
			f.ctrl.Current(), want, f.rend.names())
	}
}

func TestInitialDirectiveIsIdleBlink(t *testing.T) {
	f := newFixture(t, defaultSettings())
	if len(f.rend.directives) != 1 {
		t.Fatalf("expected exactly one initial directive, got %v", f.rend.names())
	}
	f.expectCurrent(AnimIdleBlink)
	if !f.rend.directives[0].Loop {
		t.Error("IdleBlink should loop")
	}
	if len(f.rend.directives[0].Frames) == 0 {
		t.Error("directive carried no frames")
	}
}

func TestEditShowsWalkThenWatchdogRevertsToIdleBlink(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalEditChanged, &events.EditChangedPayload{})
	f.expectCurrent(AnimWalk)

	f.advance(parameter.ActivityWatchdog + 50*time.Millisecond)
	f.expectCurrent(AnimIdleBlink)
}

func TestContinuedTypingKeepsWalking(t *testing.T) {
	f := newFixture(t, defaultSettings())

	// Edits every 100ms keep resetting the watchdog
	for i := 0; i < 5; i++ {
		f.push(events.SignalEditChanged, &events.EditChangedPayload{})
		f.advance(100 * time.Millisecond)
		f.expectCurrent(AnimWalk)
	}

	f.advance(parameter.ActivityWatchdog)
	f.expectCurrent(AnimIdleBlink)
}

func TestRedundantDirectiveIsNoOp(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalEditChanged, &events.EditChangedPayload{})
	walks := f.rend.count(AnimWalk)

	f.push(events.SignalEditChanged, &events.EditChangedPayload{})
	if got := f.rend.count(AnimWalk); got != walks {
		t.Fatalf("second identical edit issued a directive: %d -> %d walks", walks, got)
	}
}

func TestSavedPlaysSniffThenRevertsToBaseline(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalSaved, nil)
	f.expectCurrent(AnimSniff)

	f.advance(parameter.SniffDuration)
	f.expectCurrent(AnimIdleBlink)
}

func TestEditorSwitchPlaysTracking(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalActiveEditorChanged, nil)
	f.expectCurrent(AnimTracking)

	f.advance(parameter.TrackingDuration)
	f.expectCurrent(AnimIdleBlink)
}

func TestLargeDeletionBites(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalEditChanged, &events.EditChangedPayload{DeletionSize: parameter.BiteDeletionThreshold})
	f.expectCurrent(AnimBite)

	f.advance(parameter.BiteDuration)
	f.expectCurrent(AnimIdleBlink)
}

func TestSmallDeletionWalks(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalEditChanged, &events.EditChangedPayload{DeletionSize: parameter.BiteDeletionThreshold - 1})
	f.expectCurrent(AnimWalk)
}

func TestNegativeDeletionClampsToZero(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalEditChanged, &events.EditChangedPayload{DeletionSize: -500})
	f.expectCurrent(AnimWalk)
}

func TestStaleOverrideTimerIsNoOp(t *testing.T) {
	f := newFixture(t, defaultSettings())
	f.advance(300 * time.Millisecond) // leave the post-start walk window
	now := f.clock.Now()

	// A holds 100ms, B supersedes at once with 50ms
	f.ctrl.playTemporary(now, AnimBite, 100*time.Millisecond, nil)
	f.ctrl.playTemporary(now, AnimSniff, 50*time.Millisecond, nil)
	f.expectCurrent(AnimSniff)

	// B's expiry reverts exactly once
	f.advance(50 * time.Millisecond)
	f.expectCurrent(AnimIdleBlink)
	reverts := len(f.rend.directives)

	// A's expiry at t=100 must be a pure no-op
	f.advance(60 * time.Millisecond)
	if len(f.rend.directives) != reverts {
		t.Fatalf("stale timer issued a directive: %v", f.rend.names())
	}
	if got := f.reg.Ints.Get("dog.stale_timers").Load(); got != 1 {
		t.Errorf("stale timer count = %d, want 1", got)
	}
}

func TestFailureEntersDeathLock(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 1})
	f.expectCurrent(AnimDeath)
	if !f.ctrl.deathLocked {
		t.Fatal("deathLocked not set")
	}

	// Everything is ignored while locked
	n := len(f.rend.directives)
	f.push(events.SignalSaved, nil)
	f.push(events.SignalClicked, nil)
	f.push(events.SignalTaskStarted, nil)
	f.push(events.SignalEditChanged, &events.EditChangedPayload{})
	if len(f.rend.directives) != n {
		t.Fatalf("directive issued during death lock: %v", f.rend.names())
	}
	f.expectCurrent(AnimDeath)

	// Cooldown clears the lock and reverts to baseline
	f.advance(defaultSettings().DeathCooldown)
	if f.ctrl.deathLocked {
		t.Fatal("deathLocked not cleared after cooldown")
	}
	f.expectCurrent(AnimIdleBlink)
}

func TestDeathCancelsSuccessHoldAndPendingBark(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 0})
	f.push(events.SignalDiagnosticsChanged, &events.DiagnosticsChangedPayload{HasError: true})

	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 2})
	f.expectCurrent(AnimDeath)
	if f.ctrl.successRunActive {
		t.Error("success hold survived death")
	}
	if f.ctrl.barkPending {
		t.Error("pending bark survived death")
	}

	// Neither canceled timer may act later
	f.advance(15 * time.Second)
	if f.rend.count(AnimBark) != 0 {
		t.Errorf("bark fired after death canceled it: %v", f.rend.names())
	}
}

func TestSuccessHoldsRunThenReverts(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 0})
	f.expectCurrent(AnimRun)
	if !f.ctrl.successRunActive {
		t.Fatal("successRunActive not set")
	}

	// Baseline reversion is suppressed during the hold
	f.push(events.SignalEditChanged, &events.EditChangedPayload{})
	f.expectCurrent(AnimRun)

	f.advance(parameter.SuccessHoldDuration)
	if f.ctrl.successRunActive {
		t.Fatal("successRunActive not cleared")
	}
	f.expectCurrent(AnimIdleBlink)
}

func TestStartSignalCancelsSuccessHold(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 0})
	runs := f.rend.count(AnimRun)

	f.advance(1 * time.Second)
	f.push(events.SignalTaskStarted, nil)
	if got := f.rend.count(AnimRun); got != runs+1 {
		t.Fatalf("start signal did not re-force Run: %d -> %d", runs, got)
	}
	if f.ctrl.successRunActive {
		t.Fatal("start signal did not clear the success hold")
	}

	// The canceled hold timer must not revert at its original boundary
	f.advance(parameter.SuccessHoldDuration)
	f.expectCurrent(AnimRun)
}

func TestSuccessDuringOverrideArmsHoldWithoutPreempting(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalSaved, nil)
	f.expectCurrent(AnimSniff)

	f.advance(100 * time.Millisecond)
	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 0})
	// Override outranks the hold on screen
	f.expectCurrent(AnimSniff)
	if !f.ctrl.successRunActive {
		t.Fatal("success hold not armed under the override")
	}

	// Override expiry resolves to the armed hold
	f.advance(parameter.SniffDuration)
	f.expectCurrent(AnimRun)
}

func TestDebugLifecycle(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalDebugStarted, nil)
	f.expectCurrent(AnimRun)

	f.advance(300 * time.Millisecond)
	f.push(events.SignalDebugEnded, nil)
	f.expectCurrent(AnimIdleBlink)
}

func TestClickBarksAndSettlesToIdleBlink(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalClicked, nil)
	f.expectCurrent(AnimBark)

	f.advance(parameter.BarkDuration)
	f.expectCurrent(AnimIdleBlink)
	if got := f.reg.Ints.Get("dog.clicks").Load(); got != 1 {
		t.Errorf("click count = %d, want 1", got)
	}
}

func TestUnresolvableAnimationSkipsDirective(t *testing.T) {
	f := newFixtureWithCatalog(t, defaultSettings(),
		stubCatalog{missing: map[AnimationName]bool{AnimSniff: true}})

	f.push(events.SignalSaved, nil)
	// Prior animation stays; current is not updated
	f.expectCurrent(AnimIdleBlink)
	if f.rend.count(AnimSniff) != 0 {
		t.Fatal("directive issued for unresolvable animation")
	}
}

func TestMalformedPayloadIsIgnored(t *testing.T) {
	f := newFixture(t, defaultSettings())
	n := len(f.rend.directives)

	f.push(events.SignalTaskEnded, nil)
	f.push(events.SignalTaskEnded, "not a payload")
	f.push(events.SignalDiagnosticsChanged, nil)

	if len(f.rend.directives) != n {
		t.Fatalf("malformed payloads issued directives: %v", f.rend.names())
	}
}

func TestDisposeCancelsEverything(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalSaved, nil)
	f.push(events.SignalDiagnosticsChanged, &events.DiagnosticsChangedPayload{HasError: true})
	f.ctrl.Dispose()

	n := len(f.rend.directives)
	f.advance(time.Minute)
	f.push(events.SignalEditChanged, &events.EditChangedPayload{})
	if len(f.rend.directives) != n {
		t.Fatalf("directives issued after dispose: %v", f.rend.names())
	}
}
