package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/mbolis/foncier-survey/app"
	"github.com/mbolis/foncier-survey/config"
	"github.com/mbolis/foncier-survey/database"
	"github.com/mbolis/foncier-survey/httpx"
	"github.com/mbolis/foncier-survey/log"
	"github.com/mbolis/foncier-survey/mail"
	"github.com/mbolis/foncier-survey/routes"
	"github.com/mbolis/foncier-survey/survey"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	records := database.NewRecordStore(db)
	sessions := database.NewSessionStore(db)
	descriptors := database.NewDescriptorStore(db)

	var notifier survey.Notifier = mail.LogNotifier{}
	if cfg.SMTPAddr != "" {
		notifier = &mail.SMTPNotifier{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom}
	}

	app := app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Engine:       survey.NewEngine(sessions),
		Pipeline:     survey.NewPipeline(records, notifier, cfg.CasePrefix),
		Records:      records,
		Descriptors:  descriptors,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
