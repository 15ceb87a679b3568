package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/foncier-survey/model"
	"github.com/mbolis/foncier-survey/survey"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(openTestDB(t))

	session := &survey.FormSession{
		ID:    "11111111-2222-3333-4444-555555555555",
		Email: "a@example.org",
		Answers: model.SurveyAnswer{
			StageReached: "bornage",
			DepositCity:  "Douala",
		},
		CurrentStepIndex: 2,
		VisibleSteps:     survey.ResolveVisibleSteps("bornage", model.Unset),
		State:            survey.StateInProgress,
		UpdatedAt:        time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Load(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Answers, loaded.Answers)
	assert.Equal(t, 2, loaded.CurrentStepIndex)
	assert.Equal(t, survey.StateInProgress, loaded.State)

	// saving again overwrites in place
	session.CurrentStepIndex = 3
	require.NoError(t, store.Save(ctx, session))

	loaded, err = store.Load(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.CurrentStepIndex)
}

func TestSessionStore_LoadMissing(t *testing.T) {
	store := NewSessionStore(openTestDB(t))

	_, err := store.Load(context.Background(), "absent")
	assert.ErrorIs(t, err, survey.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(openTestDB(t))

	session := &survey.FormSession{ID: "gone", State: survey.StateInProgress, UpdatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, "gone"))

	_, err := store.Load(ctx, "gone")
	assert.ErrorIs(t, err, survey.ErrSessionNotFound)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, "gone"))
}

func TestDescriptorStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewDescriptorStore(openTestDB(t))

	descriptors, err := store.List(ctx, "payment-mode")
	require.NoError(t, err)
	require.NotEmpty(t, descriptors, "seeded by migrations")

	values := make([]string, len(descriptors))
	for i, d := range descriptors {
		values[i] = d.Value
	}
	assert.Contains(t, values, model.OtherOption)

	empty, err := store.List(ctx, "no-such-type")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
