package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/foncier-survey/app"
	"github.com/mbolis/foncier-survey/config"
	"github.com/mbolis/foncier-survey/database"
	"github.com/mbolis/foncier-survey/httpx"
	"github.com/mbolis/foncier-survey/mail"
	"github.com/mbolis/foncier-survey/model"
	"github.com/mbolis/foncier-survey/survey"
)

func newTestApp(t *testing.T) app.App {
	t.Helper()

	cfg := config.Config{
		DBUrl:       filepath.Join(t.TempDir(), "test.sqlite"),
		TokenSecret: "test-secret",
		CasePrefix:  "DOSS",
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	records := database.NewRecordStore(db)
	return app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Engine:       survey.NewEngine(database.NewSessionStore(db)),
		Pipeline:     survey.NewPipeline(records, mail.LogNotifier{}, cfg.CasePrefix),
		Records:      records,
		Descriptors:  database.NewDescriptorStore(db),
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(Wire(newTestApp(t)))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	return doJSON(t, http.MethodPost, url, body)
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	// non-JSON bodies (plain-text error statuses) just yield an empty map
	decoded := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func validAnswers(stage string) model.SurveyAnswer {
	return model.SurveyAnswer{
		StageReached: stage,

		DepositCity:        "Douala",
		RegularizationCity: "Douala",
		ResidenceCity:      "Yaoundé",
		UserType:           "particulier",
		Nationality:        "camerounaise",
		LegalEntity:        "physique",

		DepotEvaluation:        "satisfaisant",
		DepotHasAcknowledgment: model.True,
		DepotPaymentMode:       "especes",
		DepotAmountPaid:        "25000",
		DepotHasReceipt:        model.True,

		HasUnofficialPayment: model.False,
		HasFavoritism:        model.False,
		TrustTransparency:    model.Rating{3},

		GlobalSatisfaction: model.Rating{4},
		Recommendation:     "oui",
	}
}

func TestParticipation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid request echoes the gating data", func(t *testing.T) {
		resp, body := postJSON(t, srv.URL+"/api/participation", map[string]any{
			"hasFiledFlag": true,
			"email":        "a@example.org",
			"stageReached": "depot",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])

		data := body["data"].(map[string]any)
		assert.Equal(t, "depot", data["stageReached"])
		assert.Equal(t, "a@example.org", data["email"])
	})

	t.Run("field errors", func(t *testing.T) {
		resp, body := postJSON(t, srv.URL+"/api/participation", map[string]any{
			"hasFiledFlag": false,
			"email":        "not-an-email",
			"stageReached": "litigieux",
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Len(t, body["errors"], 3)
		assert.Nil(t, body["alreadySubmitted"], "field errors never carry the duplicate flag")
	})
}

func TestSurveyFlow(t *testing.T) {
	srv := newTestServer(t)

	// gate in
	resp, _ := postJSON(t, srv.URL+"/api/participation", map[string]any{
		"hasFiledFlag": true,
		"email":        "flow@example.org",
		"stageReached": "depot",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// open a session
	resp, session := postJSON(t, srv.URL+"/api/sessions", map[string]any{
		"email":        "flow@example.org",
		"stageReached": "depot",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := session["id"].(string)
	require.NotEmpty(t, id)
	require.Len(t, session["visibleSteps"], 4) // profile, depot, governance, global

	sessionURL := srv.URL + "/api/sessions/" + id

	// premature submit is rejected
	resp, _ = postJSON(t, sessionURL+"/submit", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// fill in and walk to the end
	resp, _ = doJSON(t, http.MethodPut, sessionURL+"/answers", validAnswers("depot"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for i := 0; i < 3; i++ {
		resp, _ = postJSON(t, sessionURL+"/next", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// submit
	resp, body := postJSON(t, sessionURL+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.True(t, strings.HasPrefix(data["caseId"].(string), "DOSS-"), "case id carries the prefix")

	// the session is gone
	req, _ := http.NewRequest(http.MethodGet, sessionURL, nil)
	getResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)

	// and the address is now terminal at the gate
	resp, body = postJSON(t, srv.URL+"/api/participation", map[string]any{
		"hasFiledFlag": true,
		"email":        "FLOW@example.org",
		"stageReached": "depot",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, true, body["alreadySubmitted"])
}

func TestSessionNextBlockedByValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, session := postJSON(t, srv.URL+"/api/sessions", map[string]any{
		"email":        "blocked@example.org",
		"stageReached": "depot",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, srv.URL+"/api/sessions/"+session["id"].(string)+"/next", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, body["errors"])
}

func TestCreateSessionWithoutStage(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/sessions", map[string]any{
		"email": "lost@example.org",
	})
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
}

func TestListDescriptors(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/descriptors?type=payment-mode")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := map[string][]model.Descriptor{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["descriptors"])
}
