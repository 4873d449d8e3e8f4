package dog

import (
	"testing"
	"time"

	"github.com/MohinVinayak/Code-Dog/events"
	"github.com/MohinVinayak/Code-Dog/parameter"
)

func pushDiag(f *fixture, hasError, hasWarning bool) {
	f.push(events.SignalDiagnosticsChanged, &events.DiagnosticsChangedPayload{
		HasError:   hasError,
		HasWarning: hasWarning,
	})
}

func TestBarkFiresAfterDelay(t *testing.T) {
	f := newFixture(t, defaultSettings())

	pushDiag(f, true, false)
	if f.rend.count(AnimBark) != 0 {
		t.Fatal("bark fired before the delay elapsed")
	}

	f.advance(defaultSettings().BarkDelay)
	f.expectCurrent(AnimBark)
	if got := f.reg.Ints.Get("dog.barks").Load(); got != 1 {
		t.Errorf("bark count = %d, want 1", got)
	}

	f.advance(parameter.BarkDuration)
	f.expectCurrent(AnimIdleBlink)
}

func TestWarningAloneTriggersBark(t *testing.T) {
	f := newFixture(t, defaultSettings())

	pushDiag(f, false, true)
	f.advance(defaultSettings().BarkDelay)
	if f.rend.count(AnimBark) != 1 {
		t.Fatalf("warning did not bark: %v", f.rend.names())
	}
}

func TestClearedDiagnosticsCancelPendingBark(t *testing.T) {
	f := newFixture(t, defaultSettings())

	pushDiag(f, true, false)
	f.advance(2 * time.Second)
	pushDiag(f, false, false)
	if f.ctrl.barkPending {
		t.Fatal("barkPending survived the clear")
	}

	f.advance(10 * time.Second)
	if f.rend.count(AnimBark) != 0 {
		t.Fatalf("bark fired after the condition cleared: %v", f.rend.names())
	}
}

func TestBarkCooldownBlocksRetrigger(t *testing.T) {
	f := newFixture(t, defaultSettings())

	pushDiag(f, true, false)
	f.advance(defaultSettings().BarkDelay + parameter.BarkDuration)
	if f.rend.count(AnimBark) != 1 {
		t.Fatalf("expected first bark, got %v", f.rend.names())
	}

	// Flapping diagnostics inside the cooldown window must not re-bark
	pushDiag(f, false, false)
	pushDiag(f, true, false)
	f.advance(10 * time.Second)
	if f.rend.count(AnimBark) != 1 {
		t.Fatalf("bark retriggered inside cooldown: %v", f.rend.names())
	}

	// Past the cooldown a fresh signal barks again
	f.advance(parameter.BarkCooldown)
	pushDiag(f, false, false)
	pushDiag(f, true, false)
	f.advance(defaultSettings().BarkDelay)
	if f.rend.count(AnimBark) != 2 {
		t.Fatalf("bark did not fire after cooldown: %v", f.rend.names())
	}
}

func TestBarkDisabledBySettings(t *testing.T) {
	s := defaultSettings()
	s.EnableBark = false
	f := newFixture(t, s)

	pushDiag(f, true, false)
	f.advance(15 * time.Second)
	if f.rend.count(AnimBark) != 0 {
		t.Fatalf("bark fired while disabled: %v", f.rend.names())
	}
}

func TestBarkSuppressedDuringSuccessHold(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 0})
	pushDiag(f, true, false)
	if f.ctrl.barkPending {
		t.Fatal("bark scheduled during success hold")
	}

	f.advance(20 * time.Second)
	if f.rend.count(AnimBark) != 0 {
		t.Fatalf("bark fired during or after success hold: %v", f.rend.names())
	}
}

func TestClickBypassesBarkCooldownButNotDeathLock(t *testing.T) {
	f := newFixture(t, defaultSettings())

	// Burn the cooldown with a diagnostic bark
	pushDiag(f, true, false)
	f.advance(defaultSettings().BarkDelay + parameter.BarkDuration)
	if f.rend.count(AnimBark) != 1 {
		t.Fatalf("setup bark missing: %v", f.rend.names())
	}

	// A click still barks inside the cooldown window
	f.push(events.SignalClicked, nil)
	if f.rend.count(AnimBark) != 2 {
		t.Fatalf("click was gated by the cooldown: %v", f.rend.names())
	}
	f.advance(parameter.BarkDuration)

	// But never while dead
	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 1})
	f.push(events.SignalClicked, nil)
	if f.rend.count(AnimBark) != 2 {
		t.Fatalf("click barked during death lock: %v", f.rend.names())
	}
}

func TestDeathPreemptsActiveOverride(t *testing.T) {
	f := newFixture(t, defaultSettings())

	f.push(events.SignalSaved, nil)
	f.expectCurrent(AnimSniff)

	f.push(events.SignalTaskEnded, &events.TaskEndedPayload{ExitCode: 1})
	f.expectCurrent(AnimDeath)

	// The superseded sniff expiry must not repaint over Death
	f.advance(parameter.SniffDuration)
	f.expectCurrent(AnimDeath)
	if got := f.reg.Ints.Get("dog.stale_timers").Load(); got != 1 {
		t.Errorf("stale timer count = %d, want 1", got)
	}
}
