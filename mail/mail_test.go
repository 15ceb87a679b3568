package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/foncier-survey/model"
)

func record(stage string, opposition model.TriState) *model.SubmittedRecord {
	return &model.SubmittedRecord{
		CaseID: "DOSS-2026-007",
		Email:  "someone@example.org",
		Status: model.StatusSent,
		Answers: model.SurveyAnswer{
			StageReached:           stage,
			AffichageHasOpposition: opposition,
			DepositCity:            "Douala",
			DepotEvaluation:        "satisfaisant",
			EnqueteSatisfaction:    model.Rating{4},
			OppositionNature:       "limites",
			DecisionDelay:          "plus-12-mois",
		},
	}
}

func TestSummary_StageGated(t *testing.T) {
	body := Summary(record("enquete", model.False))

	assert.Contains(t, body, "DOSS-2026-007")
	assert.Contains(t, body, "Enquête foncière")
	assert.Contains(t, body, "Douala")
	assert.Contains(t, body, "4/5")

	// sections past the reached stage never leak into the mail
	assert.NotContains(t, body, "Décision")
	assert.NotContains(t, body, "plus-12-mois")
	assert.NotContains(t, body, "Litiges")
}

func TestSummary_IncludesDisputesOnOpposition(t *testing.T) {
	body := Summary(record("affichage", model.True))
	assert.Contains(t, body, "Litiges et oppositions")
	assert.Contains(t, body, "limites")
}

func TestSummary_SkipsEmptySections(t *testing.T) {
	rec := record("decision", model.Unset)
	rec.Answers = model.SurveyAnswer{StageReached: "decision"}

	body := Summary(rec)
	assert.False(t, strings.Contains(body, "=="), "no section header without answers:\n%s", body)
}

func TestLogNotifierNeverFails(t *testing.T) {
	id, err := LogNotifier{}.Send(context.Background(), record("depot", model.Unset))
	require.NoError(t, err)
	assert.Equal(t, "log-DOSS-2026-007", id)
}
