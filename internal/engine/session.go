package engine

import (
	"time"

	"github.com/abhisek/persona/internal/result"
)

// Demographics is the optional profile captured once per completion flow.
type Demographics struct {
	Name       string `json:"name"`
	Gender     string `json:"gender,omitempty"`
	AgeBracket string `json:"ageBracket,omitempty"`
	Industry   string `json:"industry,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// toMap flattens the record for the scoring request, dropping empty fields.
func (d Demographics) toMap() map[string]string {
	m := make(map[string]string)
	set := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	set("name", d.Name)
	set("gender", d.Gender)
	set("ageBracket", d.AgeBracket)
	set("industry", d.Industry)
	set("email", d.Email)
	set("phone", d.Phone)
	return m
}

// Session is the canonical session record. Callers receive copies; the
// engine mutates its own instance only through named operations.
type Session struct {
	SessionID string
	UserID    string
	Status    Status

	// TotalQuestions is set once question data loads.
	TotalQuestions int

	// Progress is derived from the ledger, in [0,100]. Never set directly.
	Progress float64

	// CurrentQuestionIndex is the count of distinct answered questions.
	CurrentQuestionIndex int

	Demographics *Demographics
	Language     string

	// LastActivity is updated on every mutating operation.
	LastActivity time.Time

	// Result is present only once Status is StatusCompleted.
	Result *result.View

	// Err is the last failure descriptor, present while Status is
	// StatusError.
	Err error
}
