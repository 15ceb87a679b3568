package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/foncier-survey/config"
	"github.com/mbolis/foncier-survey/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(config.Config{DBUrl: filepath.Join(t.TempDir(), "test.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecord(caseID, email string, status model.Status, at time.Time) *model.SubmittedRecord {
	return &model.SubmittedRecord{
		CaseID: caseID,
		Email:  email,
		Status: status,
		Answers: model.SurveyAnswer{
			StageReached:        "enquete",
			Email:               email,
			DepositCity:         "Douala",
			EnqueteSatisfaction: model.Rating{4},
			EnqueteHasReceipt:   model.False,
		},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestRecordStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(openTestDB(t))
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	rec := testRecord("DOSS-2026-001", "Someone@Example.org", model.StatusSent, at)
	require.NoError(t, store.Create(ctx, rec))
	assert.NotZero(t, rec.ID)

	t.Run("by email, case-insensitive", func(t *testing.T) {
		found, err := store.FindByEmail(ctx, "someone@example.org")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "DOSS-2026-001", found.CaseID)
		assert.Equal(t, model.StatusSent, found.Status)
		assert.Equal(t, "enquete", found.Answers.StageReached)
		assert.Equal(t, 4, found.Answers.EnqueteSatisfaction.First())
		assert.Equal(t, model.False, found.Answers.EnqueteHasReceipt, "explicit no survives the JSON column")
	})

	t.Run("by case id", func(t *testing.T) {
		found, err := store.FindByCaseID(ctx, "DOSS-2026-001")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Someone@Example.org", found.Email)
	})

	t.Run("missing records come back nil", func(t *testing.T) {
		found, err := store.FindByEmail(ctx, "nobody@example.org")
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = store.FindByCaseID(ctx, "DOSS-0000-000")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestRecordStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(openTestDB(t))
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	rec := testRecord("DOSS-2026-001", "a@example.org", model.StatusPending, at)
	require.NoError(t, store.Create(ctx, rec))

	rec.Status = model.StatusSent
	rec.Answers.EnqueteSatisfaction = model.Rating{2}
	rec.UpdatedAt = at.Add(time.Hour)
	require.NoError(t, store.Update(ctx, rec))

	found, err := store.FindByCaseID(ctx, "DOSS-2026-001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, found.Status)
	assert.Equal(t, 2, found.Answers.EnqueteSatisfaction.First())
}

func TestRecordStore_SentUniquePerEmail(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(openTestDB(t))
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, testRecord("DOSS-2026-001", "a@example.org", model.StatusSent, at)))

	err := store.Create(ctx, testRecord("DOSS-2026-002", "A@EXAMPLE.ORG", model.StatusSent, at))
	assert.Error(t, err, "second SENT record for the same address must hit the unique index")
}

func TestRecordStore_CountYear(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(openTestDB(t))

	require.NoError(t, store.Create(ctx, testRecord("DOSS-2025-001", "a@example.org", model.StatusSent,
		time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))))
	require.NoError(t, store.Create(ctx, testRecord("DOSS-2026-001", "b@example.org", model.StatusSent,
		time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC))))
	require.NoError(t, store.Create(ctx, testRecord("DOSS-2026-002", "c@example.org", model.StatusPending,
		time.Date(2026, 6, 1, 1, 0, 0, 0, time.UTC))))

	count, err := store.CountYear(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.CountYear(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecordStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(openTestDB(t))

	require.NoError(t, store.Create(ctx, testRecord("DOSS-2026-001", "a@example.org", model.StatusSent,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.Create(ctx, testRecord("DOSS-2026-002", "b@example.org", model.StatusSent,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "DOSS-2026-002", records[0].CaseID, "most recent first")
}

func TestRecordStore_UpdateStepProgress(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(openTestDB(t))

	rec := testRecord("DOSS-2026-001", "a@example.org", model.StatusSent,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Create(ctx, rec))

	require.NoError(t, store.UpdateStepProgress(ctx, "DOSS-2026-001", "bornage"))

	found, err := store.FindByCaseID(ctx, "DOSS-2026-001")
	require.NoError(t, err)
	assert.Equal(t, "bornage", found.StepProgress)

	err = store.UpdateStepProgress(ctx, "DOSS-0000-000", "bornage")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
