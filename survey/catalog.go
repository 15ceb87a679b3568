package survey

// StepKey identifies one section of the questionnaire. Three bookends
// (profile, governance, global) are always present, disputes is conditional,
// and the seven stage-named steps are gated by how far the respondent got in
// the administrative procedure.
type StepKey string

const (
	StepProfile    StepKey = "profile"
	StepDepot      StepKey = "depot"
	StepEnquete    StepKey = "enquete"
	StepEtatLieux  StepKey = "etat-lieux"
	StepAffichage  StepKey = "affichage"
	StepBornage    StepKey = "bornage"
	StepEvaluation StepKey = "evaluation"
	StepDecision   StepKey = "decision"
	StepGovernance StepKey = "governance"
	StepDisputes   StepKey = "disputes"
	StepGlobal     StepKey = "global"
)

// StageDescriptor is one entry of the ordered procedure catalog.
type StageDescriptor struct {
	Key   StepKey
	Order int
	Label string
}

// Catalog lists the seven procedure stages in the order the administration
// runs them. Immutable reference data; the Order values are the slice
// indexes.
var Catalog = []StageDescriptor{
	{StepDepot, 0, "Dépôt du dossier"},
	{StepEnquete, 1, "Enquête foncière"},
	{StepEtatLieux, 2, "État des lieux"},
	{StepAffichage, 3, "Affichage public"},
	{StepBornage, 4, "Bornage"},
	{StepEvaluation, 5, "Rapport d'évaluation"},
	{StepDecision, 6, "Décision"},
}

// StageIndex returns the catalog position of a stage key. The second return
// is false for anything that is not one of the seven stages; callers must
// treat that as "unrestricted" rather than hiding steps.
func StageIndex(key string) (int, bool) {
	for _, d := range Catalog {
		if string(d.Key) == key {
			return d.Order, true
		}
	}
	return 0, false
}

// StageKeysUpTo returns the stage keys with order <= index, in catalog order.
func StageKeysUpTo(index int) []StepKey {
	if index < 0 {
		return nil
	}
	if index >= len(Catalog) {
		index = len(Catalog) - 1
	}
	keys := make([]StepKey, 0, index+1)
	for _, d := range Catalog[:index+1] {
		keys = append(keys, d.Key)
	}
	return keys
}

// StageLabel returns the display label of a stage key, or the key itself when
// it is not in the catalog.
func StageLabel(key string) string {
	for _, d := range Catalog {
		if string(d.Key) == key {
			return d.Label
		}
	}
	return key
}
