package routes

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/foncier-survey/app"
	"github.com/mbolis/foncier-survey/httpx"
	"github.com/mbolis/foncier-survey/log"
	"github.com/mbolis/foncier-survey/model"
	"github.com/mbolis/foncier-survey/survey"
)

type submissionSummary struct {
	CaseID       string       `json:"caseId"`
	Email        string       `json:"email"`
	Status       model.Status `json:"status"`
	StageReached string       `json:"stageReached"`
	StepProgress string       `json:"stepProgress,omitempty"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

func ListSubmissions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := app.Records.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_submissions", err)
			return
		}

		summaries := make([]submissionSummary, 0, len(records))
		for _, rec := range records {
			summaries = append(summaries, submissionSummary{
				CaseID:       rec.CaseID,
				Email:        rec.Email,
				Status:       rec.Status,
				StageReached: rec.Answers.StageReached,
				StepProgress: rec.StepProgress,
				CreatedAt:    rec.CreatedAt.Format("2006-01-02 15:04:05"),
				UpdatedAt:    rec.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		render.JSON(w, r, map[string]any{
			"submissions": summaries,
		})
	}
}

// GetSubmissionByCaseId renders one record as the same stage-gated sections
// the respondent saw while filling in; the detail view never shows sections
// past the stage the record declares.
func GetSubmissionByCaseId(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseId := chi.URLParam(r, "caseId")

		record, err := app.Records.FindByCaseID(r.Context(), caseId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_submission", err)
			return
		}
		if record == nil {
			httpx.LogNotFound(w, "get_submission", caseId)
			return
		}

		render.JSON(w, r, map[string]any{
			"caseId":       record.CaseID,
			"email":        record.Email,
			"status":       record.Status,
			"stageReached": record.Answers.StageReached,
			"stageLabel":   survey.StageLabel(record.Answers.StageReached),
			"stepProgress": record.StepProgress,
			"createdAt":    record.CreatedAt,
			"updatedAt":    record.UpdatedAt,
			"sections":     survey.Sections(&record.Answers),
		})
	}
}

type stepProgressRequest struct {
	Step string `json:"step"`
}

func UpdateStepProgress(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseId := chi.URLParam(r, "caseId")

		req := stepProgressRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if _, ok := survey.StageIndex(req.Step); !ok {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel,
				"request.step_progress", "unknown stage %q", req.Step)
			return
		}

		err = app.Records.UpdateStepProgress(r.Context(), caseId, req.Step)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogNotFound(w, "update_step_progress", caseId)
			} else {
				httpx.LogInternalError(w, "db.update_step_progress", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type stageStats struct {
	Stage        survey.StepKey `json:"stage"`
	Label        string         `json:"label"`
	Count        int            `json:"count"`
	Satisfaction float64        `json:"satisfaction"`
}

// GetStats aggregates SENT records per stage reached: how many respondents
// stopped there and the mean satisfaction of the stage-specific rating.
func GetStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := app.Records.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_submissions", err)
			return
		}

		counts := map[survey.StepKey]int{}
		satTotal := map[survey.StepKey]int{}
		satCount := map[survey.StepKey]int{}
		globalTotal, globalCount, total := 0, 0, 0

		for i := range records {
			rec := &records[i]
			if rec.Status != model.StatusSent {
				continue
			}
			total++
			counts[survey.StepKey(rec.Answers.StageReached)]++

			for step, rating := range stageRatings(&rec.Answers) {
				if v := rating.First(); v > 0 {
					satTotal[step] += v
					satCount[step]++
				}
			}
			if v := rec.Answers.GlobalSatisfaction.First(); v > 0 {
				globalTotal += v
				globalCount++
			}
		}

		byStage := make([]stageStats, 0, len(survey.Catalog))
		for _, d := range survey.Catalog {
			byStage = append(byStage, stageStats{
				Stage:        d.Key,
				Label:        d.Label,
				Count:        counts[d.Key],
				Satisfaction: mean(satTotal[d.Key], satCount[d.Key]),
			})
		}

		render.JSON(w, r, map[string]any{
			"total":              total,
			"byStage":            byStage,
			"globalSatisfaction": mean(globalTotal, globalCount),
		})
	}
}

func stageRatings(a *model.SurveyAnswer) map[survey.StepKey]model.Rating {
	return map[survey.StepKey]model.Rating{
		survey.StepEnquete:    a.EnqueteSatisfaction,
		survey.StepEtatLieux:  a.EtatLieuxSatisfaction,
		survey.StepAffichage:  a.AffichageSatisfaction,
		survey.StepBornage:    a.BornageSatisfaction,
		survey.StepEvaluation: a.EvaluationSatisfaction,
		survey.StepDecision:   a.DecisionSatisfaction,
	}
}

func mean(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
