package survey

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbolis/foncier-survey/model"
)

// SessionState tracks where one fill-in session is in its lifecycle.
type SessionState string

const (
	StateInProgress SessionState = "in-progress"
	StateSubmitting SessionState = "submitting"
	StateSubmitted  SessionState = "submitted"
	StateAbandoned  SessionState = "abandoned"
)

var (
	// ErrMissingStage means the gating step was skipped: there is no stage to
	// resolve visibility against. Callers redirect back to the gating flow.
	ErrMissingStage = errors.New("session: no stage reached")

	ErrSessionNotFound = errors.New("session: not found")
	ErrNotEditable     = errors.New("session: not editable")
	ErrLastStep        = errors.New("session: already on last step")
	ErrFirstStep       = errors.New("session: already on first step")
	ErrNotLastStep     = errors.New("session: submit only from last step")
)

// FormSession is the whole durable state of one in-progress fill-in.
// VisibleSteps is persisted for inspection but never trusted on load; the
// engine recomputes it from the stored answers every time.
type FormSession struct {
	ID               string             `json:"id"`
	Email            string             `json:"email"`
	Answers          model.SurveyAnswer `json:"answers"`
	CurrentStepIndex int                `json:"currentStepIndex"`
	VisibleSteps     []StepKey          `json:"visibleSteps"`
	State            SessionState       `json:"state"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// CurrentStep returns the section the respondent is on.
func (s *FormSession) CurrentStep() StepKey {
	return s.VisibleSteps[s.CurrentStepIndex]
}

func (s *FormSession) onLastStep() bool {
	return s.CurrentStepIndex == len(s.VisibleSteps)-1
}

// refresh recomputes the visible sequence from the authoritative inputs and
// clamps the step pointer back into range.
func (s *FormSession) refresh() {
	s.VisibleSteps = ResolveVisibleSteps(s.Answers.StageReached, s.Answers.AffichageHasOpposition)
	if s.CurrentStepIndex < 0 {
		s.CurrentStepIndex = 0
	}
	if s.CurrentStepIndex > len(s.VisibleSteps)-1 {
		s.CurrentStepIndex = len(s.VisibleSteps) - 1
	}
}

// SessionStore is the durable storage boundary. All session keys live and
// die together: Save persists the whole session, Delete removes every trace.
type SessionStore interface {
	Load(ctx context.Context, id string) (*FormSession, error)
	Save(ctx context.Context, session *FormSession) error
	Delete(ctx context.Context, id string) error
}

// Engine owns every FormSession transition. Handlers never touch a session
// or the store directly, so the rehydrate-recompute rule and the synchronous
// save-before-return rule hold in exactly one place.
type Engine struct {
	store SessionStore
	now   func() time.Time
}

func NewEngine(store SessionStore) *Engine {
	return &Engine{store: store, now: time.Now}
}

// Create opens a session for a respondent who passed the gating step. An
// empty stageReached is a precondition failure, not a validation error.
func (e *Engine) Create(ctx context.Context, email, stageReached string) (*FormSession, error) {
	if strings.TrimSpace(stageReached) == "" {
		return nil, ErrMissingStage
	}

	session := &FormSession{
		ID:    uuid.NewString(),
		Email: email,
		State: StateInProgress,
	}
	session.Answers.StageReached = stageReached
	session.Answers.Email = email
	session.Answers.HasFiled = model.True
	session.refresh()

	return session, e.save(ctx, session)
}

// Load rehydrates a session, recomputing visibility from the stored answers
// and clamping the step pointer. A stored VisibleSteps list is discarded.
func (e *Engine) Load(ctx context.Context, id string) (*FormSession, error) {
	session, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(session.Answers.StageReached) == "" {
		return nil, ErrMissingStage
	}

	session.refresh()
	return session, e.save(ctx, session)
}

// UpdateAnswers replaces the answer set with the client's current values.
// The stage and email are pinned: mid-session they only change through
// ChangeStage or not at all.
func (e *Engine) UpdateAnswers(ctx context.Context, session *FormSession, answers model.SurveyAnswer) error {
	if session.State != StateInProgress {
		return ErrNotEditable
	}

	answers.StageReached = session.Answers.StageReached
	answers.Email = session.Email
	session.Answers = answers
	session.refresh()

	return e.save(ctx, session)
}

// ChangeStage is the explicit "modify stage" action. Downstream answers are
// kept in storage; only the visible sequence changes.
func (e *Engine) ChangeStage(ctx context.Context, session *FormSession, stageReached string) error {
	if session.State != StateInProgress {
		return ErrNotEditable
	}
	if strings.TrimSpace(stageReached) == "" {
		return ErrMissingStage
	}

	session.Answers.StageReached = stageReached
	session.refresh()

	return e.save(ctx, session)
}

// Next advances one step. It returns the current step's field errors when
// the validator blocks the move; in that case the session is unchanged.
func (e *Engine) Next(ctx context.Context, session *FormSession) ([]FieldError, error) {
	if session.State != StateInProgress {
		return nil, ErrNotEditable
	}
	if session.onLastStep() {
		return nil, ErrLastStep
	}
	if errs := ValidateStep(session.CurrentStep(), &session.Answers); len(errs) > 0 {
		return errs, nil
	}

	session.CurrentStepIndex++
	return nil, e.save(ctx, session)
}

// Previous steps back without validating; going back never loses data.
func (e *Engine) Previous(ctx context.Context, session *FormSession) error {
	if session.State != StateInProgress {
		return ErrNotEditable
	}
	if session.CurrentStepIndex == 0 {
		return ErrFirstStep
	}

	session.CurrentStepIndex--
	return e.save(ctx, session)
}

// Reset abandons the session and clears every stored key.
func (e *Engine) Reset(ctx context.Context, session *FormSession) error {
	session.State = StateAbandoned
	return e.store.Delete(ctx, session.ID)
}

// Submit drives the pipeline from the last step. While the request is in
// flight the session is locked in "submitting"; on any failure the exact
// pre-call state is restored so the respondent can retry, and on success the
// stored session is destroyed.
func (e *Engine) Submit(ctx context.Context, session *FormSession, pipeline *Pipeline) (string, []FieldError, error) {
	if session.State != StateInProgress {
		return "", nil, ErrNotEditable
	}
	if !session.onLastStep() {
		return "", nil, ErrNotLastStep
	}

	session.State = StateSubmitting
	if err := e.save(ctx, session); err != nil {
		session.State = StateInProgress
		return "", nil, err
	}

	caseID, verrs, err := pipeline.Submit(ctx, session.Answers, session.Email)
	if err != nil || len(verrs) > 0 {
		session.State = StateInProgress
		if saveErr := e.save(ctx, session); saveErr != nil && err == nil {
			err = saveErr
		}
		return "", verrs, err
	}

	session.State = StateSubmitted
	return caseID, nil, e.store.Delete(ctx, session.ID)
}

func (e *Engine) save(ctx context.Context, session *FormSession) error {
	session.UpdatedAt = e.now()
	return e.store.Save(ctx, session)
}
