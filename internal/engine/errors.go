package engine

import "fmt"

// ValidationError indicates a caller mistake: a missing required field or
// an operation invoked in a state that does not permit it. It is surfaced
// immediately, never retried, and mutates nothing.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// NoResponsesError indicates finalize was invoked with an empty ledger.
// The operation aborts before any network call.
type NoResponsesError struct {
	SessionID string
}

func (e *NoResponsesError) Error() string {
	return fmt.Sprintf("no responses recorded for session %s", e.SessionID)
}

func invalidTransition(from, to Status) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf("cannot move from %s to %s", from, to)}
}
