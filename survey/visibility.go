package survey

import "github.com/mbolis/foncier-survey/model"

// ResolveVisibleSteps computes the ordered questionnaire sections applicable
// to a respondent who got as far as stageReached. The same function backs the
// live form stepper, the admin read-only detail and the confirmation mail
// summary, so the three can never drift apart.
//
// An unknown or empty stageReached fails open: every section is shown,
// disputes included. Hiding sections on a bad stage value would silently drop
// required answers.
//
// The disputes section is driven solely by hadOpposition: omitted while the
// question is unanswered, shown once answered yes, hidden again if the answer
// becomes no.
func ResolveVisibleSteps(stageReached string, hadOpposition model.TriState) []StepKey {
	idx, ok := StageIndex(stageReached)
	if !ok {
		return allSteps()
	}

	steps := make([]StepKey, 0, idx+5)
	steps = append(steps, StepProfile)
	steps = append(steps, StageKeysUpTo(idx)...)
	steps = append(steps, StepGovernance)
	if hadOpposition == model.True {
		steps = append(steps, StepDisputes)
	}
	steps = append(steps, StepGlobal)
	return steps
}

func allSteps() []StepKey {
	steps := make([]StepKey, 0, len(Catalog)+4)
	steps = append(steps, StepProfile)
	for _, d := range Catalog {
		steps = append(steps, d.Key)
	}
	steps = append(steps, StepGovernance, StepDisputes, StepGlobal)
	return steps
}
