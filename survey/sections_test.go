package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/foncier-survey/model"
)

func TestSections_FollowVisibility(t *testing.T) {
	a := completeAnswers("affichage")
	sections := Sections(&a)

	steps := make([]StepKey, len(sections))
	for i, s := range sections {
		steps[i] = s.Step
	}
	assert.Equal(t, ResolveVisibleSteps("affichage", model.False), steps)
}

func TestSections_ValuesRendered(t *testing.T) {
	a := completeAnswers("depot")
	sections := Sections(&a)

	byStep := map[StepKey]Section{}
	for _, s := range sections {
		byStep[s.Step] = s
	}

	depot, ok := byStep[StepDepot]
	require.True(t, ok)
	assert.Equal(t, "Dépôt du dossier", depot.Title)
	assert.Contains(t, depot.Fields, SectionField{Label: "Accusé de réception", Value: "Oui"})
	assert.Contains(t, depot.Fields, SectionField{Label: "Montant payé", Value: "25000"})

	global := byStep[StepGlobal]
	assert.Contains(t, global.Fields, SectionField{Label: "Satisfaction générale", Value: "4/5"})
}

func TestSections_OtherPaymentModeShowsFreeText(t *testing.T) {
	a := completeAnswers("depot")
	a.DepotPaymentMode = model.OtherOption
	a.DepotOtherPaymentMode = "mandat postal"

	for _, s := range Sections(&a) {
		if s.Step != StepDepot {
			continue
		}
		assert.Contains(t, s.Fields, SectionField{Label: "Mode de paiement", Value: "mandat postal"})
		return
	}
	t.Fatal("depot section missing")
}

func TestSections_UnansweredFieldsOmitted(t *testing.T) {
	a := model.SurveyAnswer{StageReached: "depot"}

	for _, s := range Sections(&a) {
		assert.Empty(t, s.Fields, "section %s of an empty answer set", s.Step)
	}
}
