package events

import (
	"time"
)

// SignalType identifies an inbound activity signal
type SignalType int

const (
	// SignalEditChanged marks document edits, including deletions
	// Trigger: EventSource on buffer change
	// Consumer: Controller | Payload: *EditChangedPayload
	SignalEditChanged SignalType = iota

	// SignalSaved marks a document save
	// Trigger: EventSource on save | Payload: nil
	SignalSaved

	// SignalEditorClosed marks an editor/tab close
	// Trigger: EventSource | Payload: nil
	SignalEditorClosed

	// SignalActiveEditorChanged marks focus moving to another editor
	// Trigger: EventSource | Payload: nil
	SignalActiveEditorChanged

	// SignalDiagnosticsChanged marks a diagnostics update for the active context
	// Trigger: EventSource on lint/compile results
	// Consumer: Controller (bark gate) | Payload: *DiagnosticsChangedPayload
	SignalDiagnosticsChanged

	// SignalTaskStarted marks a task launch
	// Trigger: EventSource / task runner | Payload: nil
	SignalTaskStarted

	// SignalTaskEnded marks task completion with its exit code
	// Trigger: EventSource / task runner
	// Consumer: Controller (death lock / success hold) | Payload: *TaskEndedPayload
	SignalTaskEnded

	// SignalDebugStarted marks a debug session launch
	// Trigger: EventSource | Payload: nil
	SignalDebugStarted

	// SignalDebugEnded marks a debug session end (no exit code)
	// Trigger: EventSource | Payload: nil
	SignalDebugEnded

	// SignalClicked marks a mouse click on the dog sprite
	// Trigger: Renderer hit-test | Payload: nil
	SignalClicked
)

// Signal is a single inbound activity signal with metadata
type Signal struct {
	Type      SignalType
	Payload   any
	Timestamp time.Time
}
