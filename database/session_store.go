package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mbolis/foncier-survey/survey"
)

// SessionStore keeps in-progress form sessions in the form_session table.
// One row is one session; deleting the row clears every stored key at once.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db}
}

func (s *SessionStore) Load(ctx context.Context, id string) (*survey.FormSession, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM form_session
		WHERE id = ?`,
		id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, survey.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	session := survey.FormSession{}
	err = json.Unmarshal([]byte(payload), &session)
	if err != nil {
		return nil, fmt.Errorf("session.decode: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Save(ctx context.Context, session *survey.FormSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session.encode: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO form_session (id, email, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		session.ID,
		session.Email,
		string(payload),
		session.UpdatedAt,
	)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM form_session WHERE id = ?`,
		id,
	)
	return err
}
