package events

// EditChangedPayload carries the size of a deletion, when the edit removed
// text. Zero for insertions and replacements.
type EditChangedPayload struct {
	DeletionSize int
}

// DiagnosticsChangedPayload carries the severity summary for the active context
type DiagnosticsChangedPayload struct {
	HasError   bool
	HasWarning bool
}

// TaskEndedPayload carries the process exit code
type TaskEndedPayload struct {
	ExitCode int
}
