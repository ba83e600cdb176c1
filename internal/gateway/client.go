// Package gateway is the client for the remote assessment service: session
// creation, question data, response submission, and result calculation.
// The engine consumes the Client interface; the HTTP implementation can be
// swapped for the Mock in tests.
package gateway

import (
	"context"

	"github.com/abhisek/persona/internal/ledger"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/result"
)

// Client is the remote surface the session engine depends on. All calls
// are suspension points; any non-success outcome is an *ErrNetwork.
type Client interface {
	// CreateSession registers a new assessment attempt and returns its
	// identifiers.
	CreateSession(ctx context.Context, user UserData) (*SessionInfo, error)

	// ValidateSession checks that sessionID is still known to the service.
	ValidateSession(ctx context.Context, sessionID string) (*SessionInfo, error)

	// FetchSections loads the questionnaire, localized for lang.
	FetchSections(ctx context.Context, lang string) ([]quiz.Section, error)

	// SubmitResponse sends one answer.
	SubmitResponse(ctx context.Context, sessionID string, resp ledger.Response) error

	// SubmitBulk sends all buffered answers in one call.
	SubmitBulk(ctx context.Context, sessionID string, responses []ledger.Response, lang string) error

	// CalculateResults asks the service to score sessionID and returns the
	// validated result payload.
	CalculateResults(ctx context.Context, sessionID string, input CalculateInput) (*result.Payload, error)
}

// UserData is the optional profile sent when creating a session.
type UserData struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Language string `json:"language,omitempty"`
}

// SessionInfo identifies a session on the remote service.
type SessionInfo struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Status    string `json:"status,omitempty"`
}

// CalculateInput carries the demographics and language context for scoring.
type CalculateInput struct {
	Demographics map[string]string `json:"demographics,omitempty"`
	Language     string            `json:"language,omitempty"`
}
