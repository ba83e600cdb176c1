// Package engine is the session state store: the single source of truth
// for an assessment attempt, reachable only through named transition
// operations. It is written for the single-tab cooperative model: no two
// operations run concurrently on one Engine, and suspension happens only
// at gateway calls.
package engine

import (
	"context"
	"time"

	"github.com/abhisek/persona/internal/gateway"
	"github.com/abhisek/persona/internal/kvstore"
	"github.com/abhisek/persona/internal/ledger"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/result"
)

// DefaultBulkResponseTimeMs stamps responses submitted in bulk that carry
// no measured per-question time. Single-response recording measures the
// real gap; the bulk path keeps the original constant fallback. Whether
// precise timing is required everywhere is an open product question, so
// the two paths are deliberately not unified.
const DefaultBulkResponseTimeMs = 3000

// Engine coordinates the ledger, navigator, store, and gateway around one
// Session record.
type Engine struct {
	store  kvstore.Store
	ledger *ledger.Ledger
	client gateway.Client
	nav    *quiz.Navigator
	now    func() time.Time

	session Session

	// generation is bumped by Start and Reset. Gateway calls capture it
	// before suspending; a completion whose generation no longer matches
	// is stale and must be discarded, not applied.
	generation int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source. Tests use this to exercise the
// staleness rule.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine persisting through store and calling the remote
// service through client. The store is wrapped for degraded-durability
// handling, so storage failures never surface to callers.
func New(store kvstore.Store, client gateway.Client, opts ...Option) *Engine {
	fb := kvstore.NewFallback(store)
	e := &Engine{
		store:   fb,
		ledger:  ledger.New(fb),
		client:  client,
		now:     time.Now,
		session: Session{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns a copy of the current session record.
func (e *Engine) Session() Session {
	return e.session
}

// Navigator returns the section navigator, or nil before LoadSections.
func (e *Engine) Navigator() *quiz.Navigator {
	return e.nav
}

// Start creates a new remote session and activates it. On gateway failure
// the status becomes StatusError with the failure recorded; no partial
// session is left behind.
func (e *Engine) Start(ctx context.Context, user gateway.UserData) (Session, error) {
	if !canTransition(e.session.Status, StatusActive) {
		return e.session, invalidTransition(e.session.Status, StatusActive)
	}

	gen := e.generation
	info, err := e.client.CreateSession(ctx, user)
	if gen != e.generation {
		// The session context changed while the call was in flight.
		return e.session, nil
	}
	if err != nil {
		e.session.Status = StatusError
		e.session.Err = err
		e.session.SessionID = ""
		e.session.UserID = ""
		return e.session, err
	}

	e.generation++
	lang := e.session.Language
	if user.Language != "" {
		lang = user.Language
	}
	e.session = Session{
		SessionID:      info.SessionID,
		UserID:         info.UserID,
		Status:         StatusActive,
		Language:       lang,
		TotalQuestions: e.session.TotalQuestions,
	}
	e.touch()
	e.recomputeProgress()
	e.saveSnapshot()
	return e.session, nil
}

// LoadSections fetches the questionnaire and builds the navigator.
// TotalQuestions is set here, once.
func (e *Engine) LoadSections(ctx context.Context) error {
	sections, err := e.client.FetchSections(ctx, e.session.Language)
	if err != nil {
		return err
	}
	e.nav = quiz.NewNavigator(sections)
	e.session.TotalQuestions = e.nav.TotalQuestions()
	e.recomputeProgress()
	return nil
}

// RecordAnswer upserts an answer for q into the ledger and recomputes
// progress. The per-question response time is the gap since the last
// mutating operation.
func (e *Engine) RecordAnswer(q quiz.Question, answer int) (Session, error) {
	if e.session.Status != StatusActive {
		return e.session, &ValidationError{Reason: "cannot record answers on a " + e.session.Status.String() + " session"}
	}
	if answer < 1 || answer > 4 {
		return e.session, &ValidationError{Reason: "answer must be on the 1-4 scale"}
	}

	now := e.now()
	resp := ledger.Response{
		QuestionID:     q.ID,
		Answer:         answer,
		Category:       q.Category,
		LeftType:       q.LeftType,
		RightType:      q.RightType,
		SectionID:      q.SectionID,
		Timestamp:      now,
		ResponseTimeMs: e.elapsedMs(now),
	}
	if err := e.ledger.Record(e.session.SessionID, resp); err != nil {
		return e.session, err
	}

	e.touch()
	e.recomputeProgress()
	e.saveSnapshot()
	return e.session, nil
}

// RemoveAnswer deletes the response for questionID and recomputes
// progress downward.
func (e *Engine) RemoveAnswer(questionID int) (Session, error) {
	if e.session.Status != StatusActive {
		return e.session, &ValidationError{Reason: "cannot remove answers on a " + e.session.Status.String() + " session"}
	}
	if err := e.ledger.Remove(e.session.SessionID, questionID); err != nil {
		return e.session, err
	}

	e.touch()
	e.recomputeProgress()
	e.saveSnapshot()
	return e.session, nil
}

// SetDemographics stores the demographic record. Name is required; a
// completed session no longer accepts demographics.
func (e *Engine) SetDemographics(d Demographics) (Session, error) {
	if e.session.Status == StatusCompleted || e.session.Status == StatusCompleting {
		return e.session, &ValidationError{Reason: "demographics are fixed once completion begins"}
	}
	if d.Name == "" {
		return e.session, &ValidationError{Reason: "demographics require a name"}
	}

	e.session.Demographics = &d
	e.touch()
	e.saveSnapshot()
	return e.session, nil
}

// SetLanguage records the locale preference. Language never affects
// session invariants.
func (e *Engine) SetLanguage(lang string) Session {
	e.session.Language = lang
	e.touch()
	e.saveSnapshot()
	return e.session
}

// Advance asks the navigator to move forward one section, gated on the
// ledger's answered set.
func (e *Engine) Advance() (quiz.AdvanceResult, error) {
	if e.nav == nil {
		return quiz.AdvanceResult{}, &ValidationError{Reason: "question data not loaded"}
	}
	answered, err := e.answeredSet()
	if err != nil {
		return quiz.AdvanceResult{}, err
	}
	return e.nav.Advance(answered), nil
}

// Retreat moves back one section. At the first section it reports false.
func (e *Engine) Retreat() bool {
	if e.nav == nil {
		return false
	}
	return e.nav.Retreat()
}

// Validate confirms the current session is still known to the remote
// service, refreshing the stored UserID. Typically called after Restore.
// A stale result is discarded if the session changed while suspended.
func (e *Engine) Validate(ctx context.Context) error {
	if e.session.SessionID == "" {
		return &ValidationError{Reason: "no session to validate"}
	}

	sessionID := e.session.SessionID
	gen := e.generation
	info, err := e.client.ValidateSession(ctx, sessionID)
	if gen != e.generation || e.session.SessionID != sessionID {
		return nil
	}
	if err != nil {
		return err
	}
	if info.UserID != "" {
		e.session.UserID = info.UserID
	}
	return nil
}

// FinalizeOptions lets a caller override the session identity, recovering
// a session without waiting for a state refresh.
type FinalizeOptions struct {
	SessionID string
	User      *gateway.UserData
}

// Finalize flushes the ledger to the scoring service, requests
// calculation, and completes the session. Any gateway failure moves the
// session to StatusError with the ledger intact, so Finalize can be
// retried without re-answering.
func (e *Engine) Finalize(ctx context.Context, opts FinalizeOptions) (Session, error) {
	if !canTransition(e.session.Status, StatusCompleting) {
		return e.session, invalidTransition(e.session.Status, StatusCompleting)
	}

	sessionID := e.session.SessionID
	if opts.SessionID != "" {
		sessionID = opts.SessionID
	}
	if sessionID == "" {
		return e.session, &ValidationError{Reason: "no session to finalize"}
	}

	responses, err := e.ledger.Sorted(sessionID)
	if err != nil {
		return e.session, err
	}
	if len(responses) == 0 {
		return e.session, &NoResponsesError{SessionID: sessionID}
	}
	for i := range responses {
		if responses[i].ResponseTimeMs == 0 {
			responses[i].ResponseTimeMs = DefaultBulkResponseTimeMs
		}
	}

	e.session.Status = StatusCompleting
	gen := e.generation

	input := gateway.CalculateInput{Language: e.session.Language}
	if e.session.Demographics != nil {
		input.Demographics = e.session.Demographics.toMap()
	} else if opts.User != nil {
		// Override user data stands in for demographics the stored state
		// never received, the same precedence rule as the session id.
		input.Demographics = map[string]string{}
		if opts.User.Name != "" {
			input.Demographics["name"] = opts.User.Name
		}
		if opts.User.Email != "" {
			input.Demographics["email"] = opts.User.Email
		}
		if opts.User.Language != "" {
			input.Language = opts.User.Language
		}
	}

	payload, err := e.finalizeRemote(ctx, sessionID, responses, input)
	if gen != e.generation {
		// Reset or a new start happened while the calls were in flight;
		// this completion belongs to a dead session. Discard it.
		return e.session, nil
	}
	if err != nil {
		e.session.Status = StatusError
		e.session.Err = err
		return e.session, err
	}

	view := result.Transform(*payload)
	e.session.Result = &view
	e.session.Status = StatusCompleted
	e.session.Err = nil
	e.touch()

	_ = e.ledger.Clear(sessionID)
	// Report the progress the answers earned, not the cleared ledger's.
	e.session.CurrentQuestionIndex = len(responses)
	e.session.Progress = progressOf(len(responses), e.session.TotalQuestions)
	e.saveSnapshot()
	return e.session, nil
}

// finalizeRemote runs the two dependent gateway calls in order: the bulk
// submission must finish before calculation is requested.
func (e *Engine) finalizeRemote(ctx context.Context, sessionID string, responses []ledger.Response, input gateway.CalculateInput) (*result.Payload, error) {
	if err := e.client.SubmitBulk(ctx, sessionID, responses, input.Language); err != nil {
		return nil, err
	}
	return e.client.CalculateResults(ctx, sessionID, input)
}

// Reset clears the ledger, the persisted snapshot, and returns the engine
// to idle, preserving only the language preference.
func (e *Engine) Reset() Session {
	if e.session.SessionID != "" {
		_ = e.ledger.Clear(e.session.SessionID)
	}
	_ = e.store.Remove(snapshotKey)

	e.generation++
	e.session = Session{
		Status:   StatusIdle,
		Language: e.session.Language,
	}
	return e.session
}

// answeredSet returns the set of answered question IDs for the active
// session.
func (e *Engine) answeredSet() (map[int]bool, error) {
	responses, err := e.ledger.Load(e.session.SessionID)
	if err != nil {
		return nil, err
	}
	answered := make(map[int]bool, len(responses))
	for id := range responses {
		answered[id] = true
	}
	return answered, nil
}

// recomputeProgress rederives Progress and CurrentQuestionIndex from the
// ledger. Progress is clamped to [0,100].
func (e *Engine) recomputeProgress() {
	count, err := e.ledger.Count(e.session.SessionID)
	if err != nil {
		return
	}
	e.session.CurrentQuestionIndex = count
	e.session.Progress = progressOf(count, e.session.TotalQuestions)
}

func progressOf(answered, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := 100 * float64(answered) / float64(total)
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}

// elapsedMs measures the gap since the last mutating operation, the
// single-response timing rule.
func (e *Engine) elapsedMs(now time.Time) int {
	if e.session.LastActivity.IsZero() {
		return 0
	}
	ms := int(now.Sub(e.session.LastActivity).Milliseconds())
	if ms < 0 {
		return 0
	}
	return ms
}

func (e *Engine) touch() {
	e.session.LastActivity = e.now()
}
