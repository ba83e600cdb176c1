package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/persona/internal/ledger"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/result"
)

// Mock is a deterministic Client for testing. It serves canned data,
// records every call, and can be armed to fail specific operations.
type Mock struct {
	mu sync.Mutex

	// Sections is returned by FetchSections.
	Sections []quiz.Section

	// Payload is returned by CalculateResults.
	Payload *result.Payload

	// Calls records operation names in invocation order.
	Calls []string

	// Created records every CreateSession argument.
	Created []UserData

	// Bulk records every SubmitBulk response batch.
	Bulk [][]ledger.Response

	// LastCalculate is the most recent CalculateResults input.
	LastCalculate CalculateInput

	failures map[string]error
}

// NewMock creates a Mock with no canned data armed.
func NewMock() *Mock {
	return &Mock{failures: make(map[string]error)}
}

// FailWith arms op ("createSession", "validateSession", "fetchSections",
// "submitResponse", "submitBulk", "calculateResults") to return err.
func (m *Mock) FailWith(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// Recover clears a previously armed failure.
func (m *Mock) Recover(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failures, op)
}

func (m *Mock) CreateSession(_ context.Context, user UserData) (*SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "createSession")
	if err := m.failures["createSession"]; err != nil {
		return nil, err
	}
	m.Created = append(m.Created, user)
	return &SessionInfo{
		SessionID: "sess-" + uuid.NewString(),
		UserID:    "user-" + uuid.NewString(),
		Status:    "active",
	}, nil
}

func (m *Mock) ValidateSession(_ context.Context, sessionID string) (*SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "validateSession")
	if err := m.failures["validateSession"]; err != nil {
		return nil, err
	}
	return &SessionInfo{SessionID: sessionID, UserID: "user-" + uuid.NewString(), Status: "active"}, nil
}

func (m *Mock) FetchSections(_ context.Context, _ string) ([]quiz.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "fetchSections")
	if err := m.failures["fetchSections"]; err != nil {
		return nil, err
	}
	return m.Sections, nil
}

func (m *Mock) SubmitResponse(_ context.Context, _ string, _ ledger.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "submitResponse")
	return m.failures["submitResponse"]
}

func (m *Mock) SubmitBulk(_ context.Context, _ string, responses []ledger.Response, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "submitBulk")
	if err := m.failures["submitBulk"]; err != nil {
		return err
	}
	m.Bulk = append(m.Bulk, responses)
	return nil
}

func (m *Mock) CalculateResults(_ context.Context, _ string, input CalculateInput) (*result.Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "calculateResults")
	if err := m.failures["calculateResults"]; err != nil {
		return nil, err
	}
	m.LastCalculate = input
	if m.Payload != nil {
		return m.Payload, nil
	}
	return &result.Payload{Type: "INTJ", NormalizedScores: map[string]float64{}}, nil
}

// CallCount returns the number of calls made to op.
func (m *Mock) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}
