package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/persona/internal/ledger"
)

// snapshotKey is the single per-install snapshot entry.
const snapshotKey = "session"

// StaleAfter is the cutoff beyond which a persisted snapshot is discarded
// rather than restored.
const StaleAfter = 24 * time.Hour

// snapshotData is the persisted session shape. The computed result is
// deliberately excluded; a restored session re-finalizes if needed.
type snapshotData struct {
	SessionID    string                  `json:"sessionId"`
	UserID       string                  `json:"userId"`
	Responses    map[int]ledger.Response `json:"responses"`
	Demographics *Demographics           `json:"demographics,omitempty"`
	Language     string                  `json:"language,omitempty"`
	LastActivity time.Time               `json:"lastActivity"`
}

// saveSnapshot persists the current session, best-effort. A write failure
// is already absorbed and logged by the fallback store; a marshal failure
// is logged here and ignored.
func (e *Engine) saveSnapshot() {
	if e.session.SessionID == "" {
		return
	}

	responses, err := e.ledger.Load(e.session.SessionID)
	if err != nil {
		responses = map[int]ledger.Response{}
	}
	snap := snapshotData{
		SessionID:    e.session.SessionID,
		UserID:       e.session.UserID,
		Responses:    responses,
		Demographics: e.session.Demographics,
		Language:     e.session.Language,
		LastActivity: e.session.LastActivity,
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to marshal session snapshot: %v\n", err)
		return
	}
	_ = e.store.Set(snapshotKey, raw)
}

// Restore loads the persisted snapshot, invoked once at startup. An
// absent, corrupt, or stale snapshot leaves the engine idle; stale and
// corrupt snapshots are purged. Staleness is never reported as an error.
func (e *Engine) Restore() (Session, error) {
	if e.session.Status != StatusIdle {
		return e.session, &ValidationError{Reason: "restore is only valid on an idle session"}
	}

	raw, ok, err := e.store.Get(snapshotKey)
	if err != nil || !ok {
		return e.session, nil
	}

	var snap snapshotData
	if err := json.Unmarshal(raw, &snap); err != nil || snap.SessionID == "" {
		_ = e.store.Remove(snapshotKey)
		return e.session, nil
	}

	if e.now().Sub(snap.LastActivity) > StaleAfter {
		_ = e.store.Remove(snapshotKey)
		_ = e.ledger.Clear(snap.SessionID)
		return e.session, nil
	}

	// Repopulate the ledger from the snapshot when the ledger entry was
	// lost; an existing ledger entry is the fresher copy and wins.
	existing, err := e.ledger.Load(snap.SessionID)
	if err == nil && len(existing) == 0 {
		for _, resp := range snap.Responses {
			_ = e.ledger.Record(snap.SessionID, resp)
		}
	}

	e.session = Session{
		SessionID:    snap.SessionID,
		UserID:       snap.UserID,
		Status:       StatusActive,
		Demographics: snap.Demographics,
		Language:     snap.Language,
		LastActivity: snap.LastActivity,
	}
	e.recomputeProgress()
	return e.session, nil
}
