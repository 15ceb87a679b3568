package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mbolis/foncier-survey/model"
)

// RecordStore persists SubmittedRecords in the submission table. The answer
// set travels as one JSON column; satisfaction lists and tri-state answers
// are encoded only here, never upstream.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db}
}

func (s *RecordStore) FindByEmail(ctx context.Context, email string) (*model.SubmittedRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, case_id, email, status, step_progress, answers, created_at, updated_at
		FROM submission
		WHERE lower(email) = lower(?)
		ORDER BY updated_at DESC
		LIMIT 1`,
		email,
	)
	return scanRecord(row)
}

func (s *RecordStore) FindByCaseID(ctx context.Context, caseID string) (*model.SubmittedRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, case_id, email, status, step_progress, answers, created_at, updated_at
		FROM submission
		WHERE case_id = ?`,
		caseID,
	)
	return scanRecord(row)
}

func (s *RecordStore) Create(ctx context.Context, record *model.SubmittedRecord) error {
	answers, err := json.Marshal(record.Answers)
	if err != nil {
		return fmt.Errorf("record.encode: %w", err)
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO submission (case_id, email, status, step_progress, answers, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		record.CaseID,
		record.Email,
		record.Status,
		record.StepProgress,
		string(answers),
		record.CreatedAt,
		record.UpdatedAt,
	).Scan(&record.ID)
}

func (s *RecordStore) Update(ctx context.Context, record *model.SubmittedRecord) error {
	answers, err := json.Marshal(record.Answers)
	if err != nil {
		return fmt.Errorf("record.encode: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE submission
		SET
			email = ?,
			status = ?,
			step_progress = ?,
			answers = ?,
			updated_at = ?
		WHERE id = ?`,
		record.Email,
		record.Status,
		record.StepProgress,
		string(answers),
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n < 1 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *RecordStore) UpdateStepProgress(ctx context.Context, caseID, step string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE submission
		SET step_progress = ?
		WHERE case_id = ?`,
		step,
		caseID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n < 1 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *RecordStore) CountYear(ctx context.Context, year int) (count int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT count(*) FROM submission
		WHERE strftime('%Y', created_at) = ?`,
		fmt.Sprintf("%04d", year),
	).Scan(&count)
	return
}

func (s *RecordStore) List(ctx context.Context) ([]model.SubmittedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, case_id, email, status, step_progress, answers, created_at, updated_at
		FROM submission
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.SubmittedRecord{}
	for rows.Next() {
		r := model.SubmittedRecord{}
		var answers string
		err = rows.Scan(&r.ID, &r.CaseID, &r.Email, &r.Status, &r.StepProgress, &answers, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, err
		}
		err = json.Unmarshal([]byte(answers), &r.Answers)
		if err != nil {
			return nil, fmt.Errorf("record.decode: %w", err)
		}

		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRecord(row *sql.Row) (*model.SubmittedRecord, error) {
	r := model.SubmittedRecord{}
	var answers string
	err := row.Scan(&r.ID, &r.CaseID, &r.Email, &r.Status, &r.StepProgress, &answers, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal([]byte(answers), &r.Answers)
	if err != nil {
		return nil, fmt.Errorf("record.decode: %w", err)
	}
	return &r, nil
}
