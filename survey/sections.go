package survey

import (
	"strconv"

	"github.com/mbolis/foncier-survey/model"
)

// Section is the read-only rendering of one questionnaire step: a title plus
// label/value pairs. The admin detail view returns sections as JSON, the
// confirmation mail flattens them to text. Both go through ResolveVisibleSteps,
// so a record always renders with exactly the sections that were asked.
type Section struct {
	Step   StepKey        `json:"step"`
	Title  string         `json:"title"`
	Fields []SectionField `json:"fields"`
}

type SectionField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var sectionTitles = map[StepKey]string{
	StepProfile:    "Profil du demandeur",
	StepGovernance: "Gouvernance",
	StepDisputes:   "Litiges et oppositions",
	StepGlobal:     "Appréciation globale",
}

// Sections renders the stage-gated view of an answer set.
func Sections(a *model.SurveyAnswer) []Section {
	steps := ResolveVisibleSteps(a.StageReached, a.AffichageHasOpposition)
	sections := make([]Section, 0, len(steps))
	for _, step := range steps {
		sections = append(sections, Section{
			Step:   step,
			Title:  sectionTitle(step),
			Fields: sectionFields(step, a),
		})
	}
	return sections
}

func sectionTitle(step StepKey) string {
	if title, ok := sectionTitles[step]; ok {
		return title
	}
	return StageLabel(string(step))
}

func sectionFields(step StepKey, a *model.SurveyAnswer) []SectionField {
	var b fieldBuilder
	switch step {
	case StepProfile:
		b.add("Ville de dépôt", a.DepositCity)
		b.add("Ville de régularisation", a.RegularizationCity)
		b.add("Ville de résidence", a.ResidenceCity)
		b.add("Type d'usager", a.UserType)
		b.add("Nationalité", a.Nationality)
		b.add("Qualité juridique", a.LegalEntity)
	case StepDepot:
		b.add("Appréciation du dépôt", a.DepotEvaluation)
		b.tri("Accusé de réception", a.DepotHasAcknowledgment)
		b.add("Mode de paiement", choiceLabel(a.DepotPaymentMode, a.DepotOtherPaymentMode))
		b.add("Montant payé", a.DepotAmountPaid)
		b.tri("Reçu délivré", a.DepotHasReceipt)
	case StepEnquete:
		b.add("Délai", a.EnqueteDelay)
		b.add("Mode de paiement", choiceLabel(a.EnquetePaymentMode, a.EnqueteOtherPaymentMode))
		b.add("Frais", a.EnqueteFees)
		b.tri("Reçu délivré", a.EnqueteHasReceipt)
		b.rating("Satisfaction", a.EnqueteSatisfaction)
	case StepEtatLieux:
		b.add("Compréhension de l'étape", a.EtatLieuxUnderstanding)
		b.add("Mode de paiement", choiceLabel(a.EtatLieuxPaymentMode, a.EtatLieuxOtherPaymentMode))
		b.add("Frais", a.EtatLieuxFees)
		b.tri("Reçu délivré", a.EtatLieuxHasReceipt)
		b.rating("Satisfaction", a.EtatLieuxSatisfaction)
	case StepAffichage:
		b.tri("Affichage dans les délais", a.AffichageInTime)
		b.tri("Informé de l'affichage", a.AffichageWasInformed)
		b.add("Canal d'information", a.AffichageInformationChannel)
		b.tri("Délai suffisant", a.AffichageSufficientDelay)
		b.tri("Opposition reçue", a.AffichageHasOpposition)
		b.add("Frais", a.AffichageFees)
		b.tri("Reçu délivré", a.AffichageHasReceipt)
		b.rating("Satisfaction", a.AffichageSatisfaction)
	case StepBornage:
		b.add("Délai", a.BornageDelay)
		b.add("Mode de paiement", choiceLabel(a.BornagePaymentMode, a.BornageOtherPaymentMode))
		b.add("Frais", a.BornageFees)
		b.tri("Reçu délivré", a.BornageHasReceipt)
		b.rating("Satisfaction", a.BornageSatisfaction)
	case StepEvaluation:
		b.add("Délai", a.EvaluationDelay)
		b.add("Mode de paiement", choiceLabel(a.EvaluationPaymentMode, a.EvaluationOtherPaymentMode))
		b.add("Frais", a.EvaluationFees)
		b.tri("Reçu délivré", a.EvaluationHasReceipt)
		b.rating("Satisfaction", a.EvaluationSatisfaction)
	case StepDecision:
		b.add("Délai", a.DecisionDelay)
		b.add("Mode de paiement", choiceLabel(a.DecisionPaymentMode, a.DecisionOtherPaymentMode))
		b.tri("Reçu délivré", a.DecisionHasReceipt)
		b.tri("Décision transmise", a.DecisionWasTransmitted)
		b.tri("Acte de cession", a.DecisionHasActeCession)
		b.tri("Titre de propriété", a.DecisionHasTitrePropriete)
		b.rating("Satisfaction", a.DecisionSatisfaction)
	case StepGovernance:
		b.tri("Paiement non officiel", a.HasUnofficialPayment)
		b.tri("Favoritisme constaté", a.HasFavoritism)
		b.rating("Confiance et transparence", a.TrustTransparency)
	case StepDisputes:
		b.add("Date de l'opposition", a.OppositionDate)
		b.add("Nature de l'opposition", choiceLabel(a.OppositionNature, a.OppositionOtherNature))
		b.add("Délai de traitement", a.LitigeDelay)
		b.tri("Frais de litige payés", a.PaidLitigeFees)
		b.add("Mode de paiement", a.LitigePaymentMode)
		b.add("Montant payé", a.LitigePaymentAmount)
		b.tri("Reçu délivré", a.LitigeHasReceipt)
		b.tri("Informé de la procédure", a.WasInformedProcedure)
		b.tri("Courrier formel envoyé", a.SentFormalLetter)
		b.add("Référence du courrier", a.LetterReference)
		b.add("Cause du litige", choiceLabel(a.LitigeCause, a.LitigeOtherCause))
		b.rating("Satisfaction", a.LitigeSatisfaction)
		b.add("Issue du litige", a.LitigeOutcome)
	case StepGlobal:
		b.rating("Satisfaction générale", a.GlobalSatisfaction)
		b.add("Recommandation", a.Recommendation)
	}
	return b.fields
}

type fieldBuilder struct {
	fields []SectionField
}

func (b *fieldBuilder) add(label, value string) {
	if value == "" {
		return
	}
	b.fields = append(b.fields, SectionField{Label: label, Value: value})
}

func (b *fieldBuilder) tri(label string, t model.TriState) {
	switch t {
	case model.True:
		b.add(label, "Oui")
	case model.False:
		b.add(label, "Non")
	}
}

func (b *fieldBuilder) rating(label string, r model.Rating) {
	if v := r.First(); v > 0 {
		b.add(label, strconv.Itoa(v)+"/5")
	}
}

func choiceLabel(value, other string) string {
	if value == model.OtherOption && other != "" {
		return other
	}
	return value
}
