package routes

import (
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

type createSessionRequest struct {
	Email        string `json:"email"`
	StageReached string `json:"stageReached"`
}

func CreateSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := createSessionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		session, err := app.Engine.Create(r.Context(), req.Email, req.StageReached)
		if err != nil {
			writeSessionError(w, r, "session.create", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, session)
	}
}

func GetSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := app.Engine.Load(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, r, "session.load", err)
			return
		}

		render.JSON(w, r, session)
	}
}

func UpdateSessionAnswers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		answers := model.SurveyAnswer{}
		err := render.DecodeJSON(r.Body, &answers)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		session, err := app.Engine.Load(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, r, "session.load", err)
			return
		}

		err = app.Engine.UpdateAnswers(r.Context(), session, answers)
		if err != nil {
			writeSessionError(w, r, "session.update_answers", err)
			return
		}

		render.JSON(w, r, session)
	}
}

type changeStageRequest struct {
	StageReached string `json:"stageReached"`
}

func ChangeSessionStage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := changeStageRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		session, err := app.Engine.Load(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, r, "session.load", err)
			return
		}

		err = app.Engine.ChangeStage(r.Context(), session, req.StageReached)
		if err != nil {
			writeSessionError(w, r, "session.change_stage", err)
			return
		}

		render.JSON(w, r, session)
	}
}

func NextStep(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := app.Engine.Load(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, r, "session.load", err)
			return
		}

		verrs, err := app.Engine.Next(r.Context(), session)
		if err != nil {
			writeSessionError(w, r, "session.next", err)
			return
		}
		if len(verrs) > 0 {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, httpx.Fail(fieldErrorMessages(verrs)...))
			return
		}

		render.JSON(w, r, session)
	}
}

func PreviousStep(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := app.Engine.Load(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, r, "session.load", err)
			return
		}

		err = app.Engine.Previous(r.Context(), session)
		if err != nil {
			writeSessionError(w, r, "session.previous", err)
			return
		}

		render.JSON(w, r, session)
	}
}

func ResetSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := app.Engine.Load(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, r, "session.load", err)
			return
		}

		err = app.Engine.Reset(r.Context(), session)
		if err != nil {
			httpx.LogInternalError(w, "session.reset", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SubmitSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := app.Engine.Load(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, r, "session.load", err)
			return
		}

		caseId, verrs, err := app.Engine.Submit(r.Context(), session, app.Pipeline)
		if err != nil {
			writeSessionError(w, r, "session.submit", err)
			return
		}
		if len(verrs) > 0 {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, httpx.Fail(fieldErrorMessages(verrs)...))
			return
		}

		render.JSON(w, r, httpx.OK(map[string]any{
			"caseId": caseId,
		}))
	}
}

func fieldErrorMessages(verrs []survey.FieldError) []string {
	msgs := make([]string, len(verrs))
	for i, e := range verrs {
		msgs[i] = e.String()
	}
	return msgs
}

func writeSessionError(w http.ResponseWriter, r *http.Request, code string, err error) {
	switch {
	case errors.Is(err, survey.ErrSessionNotFound):
		httpx.LogNotFound(w, code, chi.URLParam(r, "id"))
	case errors.Is(err, survey.ErrMissingStage):
		// fatal precondition: the client must route back to the gating flow
		render.Status(r, http.StatusPreconditionFailed)
		render.JSON(w, r, httpx.Fail("stageReached: missing, restart from the gating step"))
	case errors.Is(err, survey.ErrNotEditable),
		errors.Is(err, survey.ErrLastStep),
		errors.Is(err, survey.ErrFirstStep),
		errors.Is(err, survey.ErrNotLastStep):
		httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, code, "%s", err)
	default:
		httpx.LogInternalError(w, code, err)
	}
}
