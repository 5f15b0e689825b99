package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appplan "github.com/mealkit/v1/internal/application/plan"
	"github.com/mealkit/v1/internal/domain/plan"
	"github.com/mealkit/v1/internal/infrastructure/config"
	"github.com/mealkit/v1/internal/infrastructure/http/apiserver"
	"github.com/mealkit/v1/internal/ports/inbound"
	"github.com/mealkit/v1/pkg/healthcheck"
	"github.com/mealkit/v1/test/testutils"
)

type apiEnv struct {
	router *chi.Mux
	repo   *testutils.MemoryPlanRepository
	stub   *testutils.StubCompletionService
}

func newAPIEnv(t *testing.T, useFallback bool) *apiEnv {
	t.Helper()

	repo := testutils.NewMemoryPlanRepository()
	stub := &testutils.StubCompletionService{Err: plan.ErrNoCompletion}
	svc := appplan.NewPlannerService(repo, stub, useFallback, zap.NewNop())

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
	}
	server := apiserver.NewAPIServer(cfg, zap.NewNop(), svc, healthcheck.New("test", zap.NewNop()))

	return &apiEnv{router: server.Router(), repo: repo, stub: stub}
}

func (e *apiEnv) do(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func generateBody(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"age":               33,
		"gender":            "female",
		"weightInLbs":       145,
		"fitnessGoal":       "Strength",
		"dietaryPreference": "vegetarian",
		"startDate":         "2026-03-02T00:00:00Z",
	})
	require.NoError(t, err)
	return raw
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func seedPlan(t *testing.T, env *apiEnv) *plan.Document {
	t.Helper()
	doc := testutils.NewPlanFactory(9).Document()
	require.NoError(t, env.repo.Insert(context.Background(), doc))
	return doc
}

func TestHealthEndpoints(t *testing.T) {
	env := newAPIEnv(t, true)

	for _, path := range []string{"/health", "/health/live", "/api/v1/health"} {
		rec := env.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestListPlans(t *testing.T) {
	env := newAPIEnv(t, true)
	doc := seedPlan(t, env)

	rec := env.do(http.MethodGet, "/api/v1/plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeResponse(t, rec)
	assert.Equal(t, true, payload["success"])

	data, ok := payload["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	summary := data[0].(map[string]any)
	assert.Equal(t, doc.ID.String(), summary["id"])
	assert.Equal(t, float64(plan.DaysPerPlan), summary["dayCount"])
}

func TestGetPlan(t *testing.T) {
	env := newAPIEnv(t, true)
	doc := seedPlan(t, env)

	t.Run("Found", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/plans/"+doc.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		payload := decodeResponse(t, rec)
		data := payload["data"].(map[string]any)
		assert.Equal(t, doc.Title, data["title"])
	})

	t.Run("UnknownID", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/plans/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MalformedID", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/plans/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		payload := decodeResponse(t, rec)
		assert.Equal(t, "Invalid meal plan id", payload["error"])
	})
}

func TestGeneratePlan(t *testing.T) {
	t.Run("CreatedWithLocation", func(t *testing.T) {
		env := newAPIEnv(t, true)

		rec := env.do(http.MethodPost, "/api/v1/plans/generate", generateBody(t))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		payload := decodeResponse(t, rec)
		data := payload["data"].(map[string]any)
		id := data["id"].(string)
		assert.Equal(t, fmt.Sprintf("/api/v1/plans/%s", id), rec.Header().Get("Location"))

		stored, err := env.repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		env := newAPIEnv(t, true)

		rec := env.do(http.MethodPost, "/api/v1/plans/generate", []byte("{not json"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		payload := decodeResponse(t, rec)
		assert.Equal(t, "Invalid request body", payload["error"])
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		env := newAPIEnv(t, true)

		raw, err := json.Marshal(map[string]any{
			"age":         8,
			"weightInLbs": 145,
		})
		require.NoError(t, err)

		rec := env.do(http.MethodPost, "/api/v1/plans/generate", raw)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		payload := decodeResponse(t, rec)
		assert.Equal(t, "Validation failed", payload["error"])
		assert.Contains(t, payload["message"], "Age")
	})

	t.Run("ModelDownFallbackDisabled", func(t *testing.T) {
		env := newAPIEnv(t, false)

		rec := env.do(http.MethodPost, "/api/v1/plans/generate", generateBody(t))
		require.Equal(t, http.StatusBadGateway, rec.Code)

		payload := decodeResponse(t, rec)
		assert.Equal(t, "Unable to build a meal plan right now. Try again shortly.", payload["error"])
	})

	t.Run("RejectsNonJSONContentType", func(t *testing.T) {
		env := newAPIEnv(t, true)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/plans/generate", bytes.NewReader(generateBody(t)))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestUpdatePlan(t *testing.T) {
	env := newAPIEnv(t, true)
	doc := seedPlan(t, env)

	raw, err := json.Marshal(inbound.UpdatePlanCommand{Title: "Adjusted Week"})
	require.NoError(t, err)

	rec := env.do(http.MethodPut, "/api/v1/plans/"+doc.ID.String(), raw)
	require.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := env.repo.FindByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Adjusted Week", stored.Title)

	rec = env.do(http.MethodPut, "/api/v1/plans/"+uuid.NewString(), raw)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePlan(t *testing.T) {
	env := newAPIEnv(t, true)
	doc := seedPlan(t, env)

	rec := env.do(http.MethodDelete, "/api/v1/plans/"+doc.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodDelete, "/api/v1/plans/"+doc.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
