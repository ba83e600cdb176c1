package gateway

import (
	"encoding/json"
	"fmt"
)

// ErrNetwork indicates a remote call failed or returned non-success.
// StatusCode is 0 for transport-level failures.
type ErrNetwork struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ErrNetwork) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: remote returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrNetwork) Unwrap() error { return e.Err }

// ErrInvalidPayload indicates the service returned a result payload that
// does not conform to the expected schema.
type ErrInvalidPayload struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid result payload: %v", e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }
