package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/mbolis/foncier-survey/config"
	"github.com/mbolis/foncier-survey/database"
	"github.com/mbolis/foncier-survey/survey"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config

	Engine      *survey.Engine
	Pipeline    *survey.Pipeline
	Records     *database.RecordStore
	Descriptors *database.DescriptorStore
}
