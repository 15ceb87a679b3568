package model

import "time"

// Rating holds the value captured by a slider widget. The UI submits it as a
// list, but only the first element is meaningful; zero means "not rated".
type Rating []int

func (r Rating) First() int {
	if len(r) == 0 {
		return 0
	}
	return r[0]
}

// SurveyAnswer is the full answer set of one survey fill-in. Every field is
// optional at the type level; the survey package decides which ones are
// required depending on the stage the respondent reached.
type SurveyAnswer struct {
	StageReached string   `json:"stageReached,omitempty"`
	Email        string   `json:"email,omitempty"`
	HasFiled     TriState `json:"hasFiled,omitempty"`

	// profile
	DepositCity        string `json:"depositCity,omitempty"`
	RegularizationCity string `json:"regularizationCity,omitempty"`
	ResidenceCity      string `json:"residenceCity,omitempty"`
	UserType           string `json:"userType,omitempty"`
	Nationality        string `json:"nationality,omitempty"`
	LegalEntity        string `json:"legalEntity,omitempty"`

	// depot
	DepotEvaluation        string   `json:"depotEvaluation,omitempty"`
	DepotHasAcknowledgment TriState `json:"depotHasAcknowledgment,omitempty"`
	DepotPaymentMode       string   `json:"depotPaymentMode,omitempty"`
	DepotOtherPaymentMode  string   `json:"depotOtherPaymentMode,omitempty"`
	DepotAmountPaid        string   `json:"depotAmountPaid,omitempty"`
	DepotHasReceipt        TriState `json:"depotHasReceipt,omitempty"`

	// enquete
	EnqueteDelay            string   `json:"enqueteDelay,omitempty"`
	EnquetePaymentMode      string   `json:"enquetePaymentMode,omitempty"`
	EnqueteOtherPaymentMode string   `json:"enqueteOtherPaymentMode,omitempty"`
	EnqueteFees             string   `json:"enqueteFees,omitempty"`
	EnqueteHasReceipt       TriState `json:"enqueteHasReceipt,omitempty"`
	EnqueteSatisfaction     Rating   `json:"enqueteSatisfaction,omitempty"`

	// etat-lieux
	EtatLieuxUnderstanding    string   `json:"etatLieuxUnderstanding,omitempty"`
	EtatLieuxPaymentMode      string   `json:"etatLieuxPaymentMode,omitempty"`
	EtatLieuxOtherPaymentMode string   `json:"etatLieuxOtherPaymentMode,omitempty"`
	EtatLieuxFees             string   `json:"etatLieuxFees,omitempty"`
	EtatLieuxHasReceipt       TriState `json:"etatLieuxHasReceipt,omitempty"`
	EtatLieuxSatisfaction     Rating   `json:"etatLieuxSatisfaction,omitempty"`

	// affichage
	AffichageInTime             TriState `json:"affichageInTime,omitempty"`
	AffichageWasInformed        TriState `json:"affichageWasInformed,omitempty"`
	AffichageInformationChannel string   `json:"affichageInformationChannel,omitempty"`
	AffichageSufficientDelay    TriState `json:"affichageSufficientDelay,omitempty"`
	AffichageHasOpposition      TriState `json:"affichageHasOpposition,omitempty"`
	AffichageFees               string   `json:"affichageFees,omitempty"`
	AffichageHasReceipt         TriState `json:"affichageHasReceipt,omitempty"`
	AffichageSatisfaction       Rating   `json:"affichageSatisfaction,omitempty"`

	// bornage
	BornageDelay            string   `json:"bornageDelay,omitempty"`
	BornagePaymentMode      string   `json:"bornagePaymentMode,omitempty"`
	BornageOtherPaymentMode string   `json:"bornageOtherPaymentMode,omitempty"`
	BornageFees             string   `json:"bornageFees,omitempty"`
	BornageHasReceipt       TriState `json:"bornageHasReceipt,omitempty"`
	BornageSatisfaction     Rating   `json:"bornageSatisfaction,omitempty"`

	// evaluation
	EvaluationDelay            string   `json:"evaluationDelay,omitempty"`
	EvaluationPaymentMode      string   `json:"evaluationPaymentMode,omitempty"`
	EvaluationOtherPaymentMode string   `json:"evaluationOtherPaymentMode,omitempty"`
	EvaluationFees             string   `json:"evaluationFees,omitempty"`
	EvaluationHasReceipt       TriState `json:"evaluationHasReceipt,omitempty"`
	EvaluationSatisfaction     Rating   `json:"evaluationSatisfaction,omitempty"`

	// decision
	DecisionDelay             string   `json:"decisionDelay,omitempty"`
	DecisionPaymentMode       string   `json:"decisionPaymentMode,omitempty"`
	DecisionOtherPaymentMode  string   `json:"decisionOtherPaymentMode,omitempty"`
	DecisionHasReceipt        TriState `json:"decisionHasReceipt,omitempty"`
	DecisionWasTransmitted    TriState `json:"decisionWasTransmitted,omitempty"`
	DecisionHasActeCession    TriState `json:"decisionHasActeCession,omitempty"`
	DecisionHasTitrePropriete TriState `json:"decisionHasTitrePropriete,omitempty"`
	DecisionSatisfaction      Rating   `json:"decisionSatisfaction,omitempty"`

	// governance
	HasUnofficialPayment TriState `json:"hasUnofficialPayment,omitempty"`
	HasFavoritism        TriState `json:"hasFavoritism,omitempty"`
	TrustTransparency    Rating   `json:"trustTransparency,omitempty"`

	// disputes
	OppositionDate        string   `json:"oppositionDate,omitempty"`
	OppositionNature      string   `json:"oppositionNature,omitempty"`
	OppositionOtherNature string   `json:"oppositionOtherNature,omitempty"`
	LitigeDelay           string   `json:"litigeDelay,omitempty"`
	PaidLitigeFees        TriState `json:"paidLitigeFees,omitempty"`
	LitigePaymentMode     string   `json:"litigePaymentMode,omitempty"`
	LitigePaymentAmount   string   `json:"litigePaymentAmount,omitempty"`
	LitigeHasReceipt      TriState `json:"litigeHasReceipt,omitempty"`
	WasInformedProcedure  TriState `json:"wasInformedProcedure,omitempty"`
	SentFormalLetter      TriState `json:"sentFormalLetter,omitempty"`
	LetterReference       string   `json:"letterReference,omitempty"`
	LitigeCause           string   `json:"litigeCause,omitempty"`
	LitigeOtherCause      string   `json:"litigeOtherCause,omitempty"`
	LitigeSatisfaction    Rating   `json:"litigeSatisfaction,omitempty"`
	LitigeOutcome         string   `json:"litigeOutcome,omitempty"`

	// global
	GlobalSatisfaction Rating `json:"globalSatisfaction,omitempty"`
	Recommendation     string `json:"recommendation,omitempty"`
}

// OtherOption is the select value that unlocks the paired free-text field
// (payment modes, opposition nature, litige cause).
const OtherOption = "autre"

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
)

// SubmittedRecord is the persisted result of one submission. At most one
// record per email reaches SENT status; resubmitting overwrites in place.
type SubmittedRecord struct {
	ID           int          `json:"id,omitempty"`
	CaseID       string       `json:"caseId"`
	Email        string       `json:"email"`
	Status       Status       `json:"status"`
	StepProgress string       `json:"stepProgress,omitempty"`
	Answers      SurveyAnswer `json:"answers"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Descriptor is one externally supplied reference tuple, e.g. a city or a
// payment mode, looked up by type.
type Descriptor struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}
