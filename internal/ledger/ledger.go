// Package ledger buffers raw answers for one session until they are
// flushed to the scoring service. Entries are keyed by question so a
// re-answered question replaces its earlier value.
package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/abhisek/persona/internal/kvstore"
)

// keyPrefix scopes ledger entries so ledgers for different sessions never
// share storage keys.
const keyPrefix = "responses:"

// Response is one recorded answer.
type Response struct {
	QuestionID     int       `json:"questionId"`
	Answer         int       `json:"answer"` // 1..4 on the discrete scale
	Category       string    `json:"category"`
	LeftType       string    `json:"leftType"`
	RightType      string    `json:"rightType"`
	SectionID      int       `json:"sectionId"`
	Timestamp      time.Time `json:"timestamp"`
	ResponseTimeMs int       `json:"responseTimeMs"`
}

// Ledger persists per-session response maps through a kvstore.Store.
type Ledger struct {
	store kvstore.Store
}

// New creates a Ledger backed by store. Wrap the store in
// kvstore.NewFallback when degraded-durability behavior is wanted.
func New(store kvstore.Store) *Ledger {
	return &Ledger{store: store}
}

// Key returns the storage key for sessionID's ledger.
func Key(sessionID string) string {
	return keyPrefix + sessionID
}

// Record upserts resp into sessionID's ledger. Recording the same question
// twice replaces the earlier entry.
func (l *Ledger) Record(sessionID string, resp Response) error {
	responses, err := l.Load(sessionID)
	if err != nil {
		return err
	}
	responses[resp.QuestionID] = resp
	return l.save(sessionID, responses)
}

// Remove deletes the response for questionID, if present.
func (l *Ledger) Remove(sessionID string, questionID int) error {
	responses, err := l.Load(sessionID)
	if err != nil {
		return err
	}
	if _, ok := responses[questionID]; !ok {
		return nil
	}
	delete(responses, questionID)
	return l.save(sessionID, responses)
}

// Load returns sessionID's buffered responses. An absent or corrupt ledger
// yields an empty map; corrupt individual entries are discarded silently.
func (l *Ledger) Load(sessionID string) (map[int]Response, error) {
	responses := make(map[int]Response)

	raw, ok, err := l.store.Get(Key(sessionID))
	if err != nil {
		return responses, fmt.Errorf("load ledger: %w", err)
	}
	if !ok {
		return responses, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Whole blob is unreadable. Treat as absent.
		return responses, nil
	}
	for key, entry := range entries {
		// The map key is authoritative for identity; the embedded
		// questionId field is carried for the wire format only.
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		var resp Response
		if err := json.Unmarshal(entry, &resp); err != nil {
			continue
		}
		resp.QuestionID = id
		responses[id] = resp
	}
	return responses, nil
}

// Clear removes sessionID's persisted ledger. Called after a successful
// bulk submission or an explicit reset.
func (l *Ledger) Clear(sessionID string) error {
	return l.store.Remove(Key(sessionID))
}

// Count returns the number of distinct answered questions.
func (l *Ledger) Count(sessionID string) (int, error) {
	responses, err := l.Load(sessionID)
	if err != nil {
		return 0, err
	}
	return len(responses), nil
}

// Sorted returns sessionID's responses ordered by question ID, the order
// the bulk submission endpoint expects.
func (l *Ledger) Sorted(sessionID string) ([]Response, error) {
	responses, err := l.Load(sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(responses))
	for _, r := range responses {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out, nil
}

func (l *Ledger) save(sessionID string, responses map[int]Response) error {
	raw, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := l.store.Set(Key(sessionID), raw); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}
