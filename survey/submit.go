package survey

import (
	"context"
	"fmt"
	"time"

	"github.com/mbolis/foncier-survey/log"
	"github.com/mbolis/foncier-survey/model"
)

// RecordStore is the persistence boundary for submitted surveys.
// FindByEmail matches case-insensitively and returns nil when no record
// exists for the address.
type RecordStore interface {
	FindByEmail(ctx context.Context, email string) (*model.SubmittedRecord, error)
	Create(ctx context.Context, record *model.SubmittedRecord) error
	Update(ctx context.Context, record *model.SubmittedRecord) error
	CountYear(ctx context.Context, year int) (int, error)
}

// Notifier delivers the confirmation message for a persisted record.
// Fire-and-forget from the pipeline's perspective.
type Notifier interface {
	Send(ctx context.Context, record *model.SubmittedRecord) (string, error)
}

// DefaultCasePrefix starts every generated case identifier.
const DefaultCasePrefix = "DOSS"

// Pipeline turns a finished answer set into a durable SubmittedRecord.
type Pipeline struct {
	records RecordStore
	notify  Notifier
	prefix  string
	now     func() time.Time
}

func NewPipeline(records RecordStore, notify Notifier, prefix string) *Pipeline {
	if prefix == "" {
		prefix = DefaultCasePrefix
	}
	return &Pipeline{
		records: records,
		notify:  notify,
		prefix:  prefix,
		now:     time.Now,
	}
}

// Submit validates, persists and notifies.
//
// Validation failures come back as field errors, never as an error value.
// Persistence is upsert-by-email: a prior record for the same address
// (typically a PENDING partial) is overwritten in place and promoted to
// SENT, so each email ends up with at most one durable record. Notification
// failures are logged and swallowed; the submission already succeeded.
//
// The year-scoped sequence behind new case ids is a plain count. Two
// concurrent first-time submissions can race it; the store's uniqueness
// constraints are the only guard. Known limitation, kept as documented
// behavior.
func (p *Pipeline) Submit(ctx context.Context, answers model.SurveyAnswer, email string) (string, []FieldError, error) {
	answers.Email = email
	if verrs := ValidateAll(&answers); len(verrs) > 0 {
		return "", verrs, nil
	}

	record, err := p.persist(ctx, answers, email)
	if err != nil {
		return "", nil, err
	}

	if p.notify != nil {
		if _, err := p.notify.Send(ctx, record); err != nil {
			log.Warnf("submit.notify: %s", err)
		}
	}

	return record.CaseID, nil, nil
}

func (p *Pipeline) persist(ctx context.Context, answers model.SurveyAnswer, email string) (*model.SubmittedRecord, error) {
	now := p.now()

	existing, err := p.records.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("submit.find_record: %w", err)
	}

	if existing != nil {
		existing.Answers = answers
		existing.Status = model.StatusSent
		existing.UpdatedAt = now
		if err := p.records.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("submit.update_record: %w", err)
		}
		return existing, nil
	}

	caseID, err := p.nextCaseID(ctx, now)
	if err != nil {
		return nil, err
	}

	record := &model.SubmittedRecord{
		CaseID:    caseID,
		Email:     email,
		Status:    model.StatusSent,
		Answers:   answers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("submit.create_record: %w", err)
	}
	return record, nil
}

func (p *Pipeline) nextCaseID(ctx context.Context, now time.Time) (string, error) {
	year := now.Year()
	count, err := p.records.CountYear(ctx, year)
	if err != nil {
		return "", fmt.Errorf("submit.count_year: %w", err)
	}
	return fmt.Sprintf("%s-%d-%03d", p.prefix, year, count+1), nil
}
