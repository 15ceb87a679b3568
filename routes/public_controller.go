package routes

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/render"

	"github.com/mbolis/foncier-survey/app"
	"github.com/mbolis/foncier-survey/httpx"
	"github.com/mbolis/foncier-survey/log"
	"github.com/mbolis/foncier-survey/model"
	"github.com/mbolis/foncier-survey/survey"
)

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type participationRequest struct {
	HasFiledFlag bool   `json:"hasFiledFlag"`
	Email        string `json:"email"`
	StageReached string `json:"stageReached"`
}

// ValidateStageSelection is the gating step of the survey: it checks that the
// respondent filed a request, reached a known stage and is not resubmitting.
// An address that already holds a SENT record is a terminal outcome of its
// own, routed apart from field errors.
func ValidateStageSelection(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := participationRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		req.Email = strings.TrimSpace(req.Email)

		var errs []string
		if !req.HasFiledFlag {
			errs = append(errs, "hasFiledFlag: a filed request is required to take the survey")
		}
		if req.Email == "" {
			errs = append(errs, "email: required")
		} else if !reEmail.MatchString(req.Email) {
			errs = append(errs, "email: invalid address")
		}
		if req.StageReached == "" {
			errs = append(errs, "stageReached: required")
		} else if _, ok := survey.StageIndex(req.StageReached); !ok {
			errs = append(errs, "stageReached: unknown stage")
		}
		if len(errs) > 0 {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, httpx.Fail(errs...))
			return
		}

		record, err := app.Records.FindByEmail(r.Context(), req.Email)
		if err != nil {
			httpx.LogInternalError(w, "db.find_submission", err)
			return
		}
		if record != nil && record.Status == model.StatusSent {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, httpx.AlreadySubmitted())
			return
		}

		render.JSON(w, r, httpx.OK(map[string]any{
			"stageReached": req.StageReached,
			"email":        req.Email,
		}))
	}
}

func ListDescriptors(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := r.URL.Query().Get("type")
		if typ == "" {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.type")
			return
		}

		descriptors, err := app.Descriptors.List(r.Context(), typ)
		if err != nil {
			httpx.LogInternalError(w, "db.get_descriptors", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"descriptors": descriptors,
		})
	}
}
