package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbolis/foncier-survey/app"
	"github.com/mbolis/foncier-survey/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.TokenSecret)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// gating + reference data
	api.Post("/participation", ValidateStageSelection(app))
	api.Get("/descriptors", ListDescriptors(app))

	// form state engine
	api.Route("/sessions", func(r chi.Router) {
		r.Post("/", CreateSession(app))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", GetSession(app))
			r.Delete("/", ResetSession(app))
			r.Put("/answers", UpdateSessionAnswers(app))
			r.Put("/stage", ChangeSessionStage(app))
			r.Post("/next", NextStep(app))
			r.Post("/previous", PreviousStep(app))
			r.Post("/submit", SubmitSession(app))
		})
	})

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		r.Get("/submissions", ListSubmissions(app))
		r.Get("/submissions/{caseId}", GetSubmissionByCaseId(app))
		r.Put("/submissions/{caseId}/step-progress", UpdateStepProgress(app))
		r.Get("/stats", GetStats(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
