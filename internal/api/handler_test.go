package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntexier-belenos/Sistema-Cloud/config"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/data"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter wires the full stack over an isolated in-memory database: a
// fixture-seeded store with the simulator disabled, a refreshed data façade
// and the production router. The rate limit is raised so tests never trip it.
func setupRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()

	db, err := persist.Init(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)

	ctx := context.Background()
	s := store.Open(ctx, persist.NewAdapter(db), netsim.New(netsim.Config{}), store.DefaultFixtures())
	d := data.New(s)
	require.NoError(t, d.RefreshAll(ctx))

	cfg := config.Default()
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000

	return NewRouter(cfg, NewHandler(d, s)), s
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRootAndHealth(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sistema-Cloud")

	w = doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestProjectEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("list seeded projects", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/projects", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var projects []model.Project
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
		assert.Len(t, projects, 3)
	})

	var createdID string
	t.Run("create", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/projects", gin.H{
			"name":        "Ligne pilote",
			"description": "Essai",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Project
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Ligne pilote", created.Name)
		createdID = created.ID
	})

	t.Run("create without name is a bad request", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/projects", gin.H{"description": "no name"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/projects/"+createdID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/projects/no-such-id", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/projects/"+createdID, gin.H{"name": "Ligne pilote 2"})
		require.Equal(t, http.StatusOK, w.Code)

		var updated model.Project
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Ligne pilote 2", updated.Name)

		w = doJSON(t, router, http.MethodPut, "/api/projects/no-such-id", gin.H{"name": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/projects/"+createdID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, http.MethodDelete, "/api/projects/"+createdID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMachineEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("filter by project", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/machines?project_id=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var machines []model.Machine
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &machines))
		assert.Len(t, machines, 2)
	})

	t.Run("nested machine list under project", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/projects/1/machines", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var machines []model.Machine
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &machines))
		assert.Len(t, machines, 2)
	})

	t.Run("dangling project reference is unprocessable", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/machines", gin.H{
			"projectId": "no-such-project",
			"name":      "Orphan",
			"status":    "operational",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid status is a bad request", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/machines", gin.H{
			"projectId": "1",
			"name":      "Bad status",
			"status":    "exploded",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create and fetch", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/machines", gin.H{
			"projectId":    "2",
			"name":         "Presse hydraulique",
			"status":       "operational",
			"manufacturer": "PressCo",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Machine
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(t, router, http.MethodGet, "/api/machines/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSafetyFunctionEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("nested lists", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/machines/1/safety-functions", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var functions []model.SafetyFunction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &functions))
		assert.Len(t, functions, 2)

		w = doJSON(t, router, http.MethodGet, "/api/safety-functions/1/sub-components", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var subComponents []model.SubComponent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subComponents))
		assert.Len(t, subComponents, 3)
	})

	t.Run("invalid required PL is a bad request", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/safety-functions", gin.H{
			"machineId":  "1",
			"name":       "Bad PL",
			"plRequired": "f",
			"status":     "draft",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create and update", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/safety-functions", gin.H{
			"machineId":  "4",
			"name":       "Verrouillage capot",
			"plRequired": "c",
			"status":     "draft",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.SafetyFunction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Nil(t, created.PLAchieved)

		w = doJSON(t, router, http.MethodPut, "/api/safety-functions/"+created.ID, gin.H{
			"plAchieved": "d",
			"status":     "validated",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var updated model.SafetyFunction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		require.NotNil(t, updated.PLAchieved)
		assert.Equal(t, "d", *updated.PLAchieved)
		assert.Equal(t, model.SFStatusValidated, updated.Status)
	})
}

func TestSubComponentEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("filter by safety function", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/sub-components?safety_function_id=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var subComponents []model.SubComponent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subComponents))
		assert.Len(t, subComponents, 3)
	})

	t.Run("create with reliability parameters", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/sub-components", gin.H{
			"safetyFunctionId": "3",
			"name":             "Barrière immatérielle",
			"type":             "sensor",
			"mttfd":            75.0,
			"dcavg":            95.0,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.SubComponent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.NotNil(t, created.MTTFd)
		assert.Equal(t, 75.0, *created.MTTFd)
		assert.Nil(t, created.CCF)
	})

	t.Run("invalid type is a bad request", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/sub-components", gin.H{
			"safetyFunctionId": "1",
			"name":             "Bad type",
			"type":             "hydraulic",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("login", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "admin@example.com",
			"password": "password",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var session model.Session
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
		assert.Contains(t, session.AccessToken, "mock-")
		assert.Equal(t, "bearer", session.TokenType)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "admin@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("register", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
			"email":     "pierre.durand@example.com",
			"password":  "longenough",
			"firstName": "Pierre",
			"lastName":  "Durand",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
			"email":     "admin@example.com",
			"password":  "longenough",
			"firstName": "Dup",
			"lastName":  "Licate",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDashboardStatusAndRefresh(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Projects.Total)
	assert.Equal(t, 2, stats.SafetyFunctions.ByStatus.Compliant)

	w = doJSON(t, router, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"initializing":false`)

	w = doJSON(t, router, http.MethodPost, "/api/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status data.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.AnyError())
}

func TestDevtoolsNetworkEndpoints(t *testing.T) {
	router, s := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/devtools/network", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg netsim.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.False(t, cfg.Enabled)

	w = doJSON(t, router, http.MethodPut, "/api/devtools/network", gin.H{
		"latency": gin.H{"enabled": true, "minMs": 10, "maxMs": 20},
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.False(t, cfg.Enabled, "untouched master switch keeps its value")
	assert.True(t, cfg.Latency.Enabled)
	assert.Equal(t, 10, cfg.Latency.MinMs)
	assert.Equal(t, 20, cfg.Latency.MaxMs)

	assert.Equal(t, cfg, s.Simulator().Snapshot())
}

func TestDevtoolsConsistencyAndReset(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/devtools/consistency", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clean":true`)

	// Delete a project, leaving its machines dangling.
	w = doJSON(t, router, http.MethodDelete, "/api/projects/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/devtools/consistency", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clean":false`)

	// Reset restores the fixtures and refreshes the façade.
	w = doJSON(t, router, http.MethodPost, "/api/devtools/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var projects []model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(t, projects, 3)
}
