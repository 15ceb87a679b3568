package survey

import (
	"strings"

	"github.com/mbolis/foncier-survey/model"
)

// FieldError is one user-correctable validation failure. Validation never
// throws: callers get the full list and decide how to surface it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

const (
	msgRequired   = "required"
	msgUnanswered = "answer yes or no"
	msgNotRated   = "rating required"
	msgRatingSpan = "rating out of range"
)

type checker struct {
	errs []FieldError
}

func (c *checker) fail(field, msg string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: msg})
}

func (c *checker) text(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.fail(field, msgRequired)
	}
}

func (c *checker) answered(field string, t model.TriState) {
	if !t.Answered() {
		c.fail(field, msgUnanswered)
	}
}

func (c *checker) rated(field string, r model.Rating) {
	if r.First() == 0 {
		c.fail(field, msgNotRated)
	}
}

func (c *checker) ratedBetween(field string, r model.Rating, lo, hi int) {
	v := r.First()
	if v == 0 {
		c.fail(field, msgNotRated)
		return
	}
	if v < lo || v > hi {
		c.fail(field, msgRatingSpan)
	}
}

// payment checks a payment mode select plus its conditional free-text twin.
func (c *checker) payment(modeField, mode, otherField, other string) {
	c.text(modeField, mode)
	if mode == model.OtherOption {
		c.text(otherField, other)
	}
}

var stepValidators = map[StepKey]func(*model.SurveyAnswer, *checker){
	StepProfile:    validateProfile,
	StepDepot:      validateDepot,
	StepEnquete:    validateEnquete,
	StepEtatLieux:  validateEtatLieux,
	StepAffichage:  validateAffichage,
	StepBornage:    validateBornage,
	StepEvaluation: validateEvaluation,
	StepDecision:   validateDecision,
	StepGovernance: validateGovernance,
	StepDisputes:   validateDisputes,
	StepGlobal:     validateGlobal,
}

// ValidateStep runs the rules of a single section and returns every failure.
func ValidateStep(step StepKey, a *model.SurveyAnswer) []FieldError {
	validate, ok := stepValidators[step]
	if !ok {
		return nil
	}
	c := &checker{}
	validate(a, c)
	return c.errs
}

// StepComplete is the navigation gate: true when the section has everything
// it needs and the respondent may advance past it.
func StepComplete(step StepKey, a *model.SurveyAnswer) bool {
	return len(ValidateStep(step, a)) == 0
}

// ValidateAll is the authoritative server-side gate. It resolves the visible
// sections for the answer set and validates exactly those; answers belonging
// to sections outside the visible set are ignored, present or not.
//
// Reading is fail-open on an unrecognized stage, persisting is not: a
// record only ever reaches the store with one of the catalog stages.
func ValidateAll(a *model.SurveyAnswer) []FieldError {
	var errs []FieldError
	if _, ok := StageIndex(a.StageReached); !ok {
		errs = append(errs, FieldError{Field: "stageReached", Message: "unknown stage"})
	}
	for _, step := range ResolveVisibleSteps(a.StageReached, a.AffichageHasOpposition) {
		errs = append(errs, ValidateStep(step, a)...)
	}
	return errs
}

func validateProfile(a *model.SurveyAnswer, c *checker) {
	c.text("depositCity", a.DepositCity)
	c.text("regularizationCity", a.RegularizationCity)
	c.text("residenceCity", a.ResidenceCity)
	c.text("userType", a.UserType)
	c.text("nationality", a.Nationality)
	c.text("legalEntity", a.LegalEntity)
}

func validateDepot(a *model.SurveyAnswer, c *checker) {
	c.text("depotEvaluation", a.DepotEvaluation)
	c.answered("depotHasAcknowledgment", a.DepotHasAcknowledgment)
	c.payment("depotPaymentMode", a.DepotPaymentMode, "depotOtherPaymentMode", a.DepotOtherPaymentMode)
	c.text("depotAmountPaid", a.DepotAmountPaid)
	c.answered("depotHasReceipt", a.DepotHasReceipt)
}

func validateEnquete(a *model.SurveyAnswer, c *checker) {
	c.text("enqueteDelay", a.EnqueteDelay)
	c.payment("enquetePaymentMode", a.EnquetePaymentMode, "enqueteOtherPaymentMode", a.EnqueteOtherPaymentMode)
	c.text("enqueteFees", a.EnqueteFees)
	c.answered("enqueteHasReceipt", a.EnqueteHasReceipt)
	c.rated("enqueteSatisfaction", a.EnqueteSatisfaction)
}

func validateEtatLieux(a *model.SurveyAnswer, c *checker) {
	c.text("etatLieuxUnderstanding", a.EtatLieuxUnderstanding)
	c.payment("etatLieuxPaymentMode", a.EtatLieuxPaymentMode, "etatLieuxOtherPaymentMode", a.EtatLieuxOtherPaymentMode)
	c.text("etatLieuxFees", a.EtatLieuxFees)
	c.answered("etatLieuxHasReceipt", a.EtatLieuxHasReceipt)
	c.rated("etatLieuxSatisfaction", a.EtatLieuxSatisfaction)
}

func validateAffichage(a *model.SurveyAnswer, c *checker) {
	c.answered("affichageInTime", a.AffichageInTime)
	c.answered("affichageWasInformed", a.AffichageWasInformed)
	if a.AffichageWasInformed == model.True {
		c.text("affichageInformationChannel", a.AffichageInformationChannel)
	}
	c.answered("affichageSufficientDelay", a.AffichageSufficientDelay)
	c.answered("affichageHasOpposition", a.AffichageHasOpposition)
	c.text("affichageFees", a.AffichageFees)
	c.answered("affichageHasReceipt", a.AffichageHasReceipt)
	c.rated("affichageSatisfaction", a.AffichageSatisfaction)
}

func validateBornage(a *model.SurveyAnswer, c *checker) {
	c.text("bornageDelay", a.BornageDelay)
	c.payment("bornagePaymentMode", a.BornagePaymentMode, "bornageOtherPaymentMode", a.BornageOtherPaymentMode)
	c.text("bornageFees", a.BornageFees)
	c.answered("bornageHasReceipt", a.BornageHasReceipt)
	c.rated("bornageSatisfaction", a.BornageSatisfaction)
}

func validateEvaluation(a *model.SurveyAnswer, c *checker) {
	c.text("evaluationDelay", a.EvaluationDelay)
	c.payment("evaluationPaymentMode", a.EvaluationPaymentMode, "evaluationOtherPaymentMode", a.EvaluationOtherPaymentMode)
	c.text("evaluationFees", a.EvaluationFees)
	c.answered("evaluationHasReceipt", a.EvaluationHasReceipt)
	c.rated("evaluationSatisfaction", a.EvaluationSatisfaction)
}

func validateDecision(a *model.SurveyAnswer, c *checker) {
	c.text("decisionDelay", a.DecisionDelay)
	c.payment("decisionPaymentMode", a.DecisionPaymentMode, "decisionOtherPaymentMode", a.DecisionOtherPaymentMode)
	c.answered("decisionHasReceipt", a.DecisionHasReceipt)
	c.answered("decisionWasTransmitted", a.DecisionWasTransmitted)
	c.answered("decisionHasActeCession", a.DecisionHasActeCession)
	c.answered("decisionHasTitrePropriete", a.DecisionHasTitrePropriete)
	c.rated("decisionSatisfaction", a.DecisionSatisfaction)
}

func validateGovernance(a *model.SurveyAnswer, c *checker) {
	c.answered("hasUnofficialPayment", a.HasUnofficialPayment)
	c.answered("hasFavoritism", a.HasFavoritism)
	c.ratedBetween("trustTransparency", a.TrustTransparency, 2, 4)
}

func validateDisputes(a *model.SurveyAnswer, c *checker) {
	// Without an opposition there is nothing to report; stored litige answers
	// are retained but ignored.
	if a.AffichageHasOpposition != model.True {
		return
	}
	c.text("oppositionDate", a.OppositionDate)
	c.text("oppositionNature", a.OppositionNature)
	if a.OppositionNature == model.OtherOption {
		c.text("oppositionOtherNature", a.OppositionOtherNature)
	}
	c.text("litigeDelay", a.LitigeDelay)
	c.answered("paidLitigeFees", a.PaidLitigeFees)
	if a.PaidLitigeFees == model.True {
		c.text("litigePaymentMode", a.LitigePaymentMode)
		c.text("litigePaymentAmount", a.LitigePaymentAmount)
		c.answered("litigeHasReceipt", a.LitigeHasReceipt)
	}
	c.answered("wasInformedProcedure", a.WasInformedProcedure)
	c.answered("sentFormalLetter", a.SentFormalLetter)
	if a.SentFormalLetter == model.True {
		c.text("letterReference", a.LetterReference)
	}
	c.text("litigeCause", a.LitigeCause)
	if a.LitigeCause == model.OtherOption {
		c.text("litigeOtherCause", a.LitigeOtherCause)
	}
	c.rated("litigeSatisfaction", a.LitigeSatisfaction)
	c.text("litigeOutcome", a.LitigeOutcome)
}

func validateGlobal(a *model.SurveyAnswer, c *checker) {
	c.rated("globalSatisfaction", a.GlobalSatisfaction)
	c.text("recommendation", a.Recommendation)
}
