package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/bootstrap"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/config"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/services"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func memoryConfig() config.Config {
	return config.Config{
		StorageBackend:      config.StorageMemory,
		TaskPoolBackend:     "memory",
		JWTIssuer:           "kanso-weekly-engine",
		JWTTTL:              time.Hour,
		TimezoneOffsetHours: -5,
	}
}

func postgresConfig() config.Config {
	cfg := memoryConfig()
	cfg.StorageBackend = config.StoragePostgres
	cfg.DBDriver = envOr("DB_DRIVER", "pgx")
	cfg.DBHost = envOr("DB_HOST", "localhost")
	cfg.DBPort = envOr("DB_PORT", "5432")
	cfg.DBUser = envOr("DB_USER", "kanso_user")
	cfg.DBPassword = envOr("DB_PASSWORD", "secret")
	cfg.DBName = envOr("DB_NAME", "kanso_db")
	return cfg
}

func call(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// runRoutineLifecycle walks a full day over the API: import a routine,
// work through it and check the history it leaves behind.
func runRoutineLifecycle(t *testing.T, router http.Handler) {
	sequence := map[string]any{
		"tasks": []map[string]any{
			{"id": "e2e_ejercicio", "name": "Ejercicio", "order": 0, "behavior": "generic"},
			{
				"id": "e2e_leer", "name": "Leer", "order": 1, "behavior": "generic",
				"historyType": "Book", "subtaskRotation": "weekly",
				"subtasks": []map[string]any{
					{"id": "e2e_kindle", "name": "Kindle", "title": "Dune", "order": 0},
					{"id": "e2e_fisico", "name": "Libro físico", "order": 1},
				},
			},
		},
	}

	w := call(t, router, http.MethodPut, "/api/v1/weekly/tasks", sequence)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, router, http.MethodPost, "/api/v1/weekly/day/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, router, http.MethodPost, "/api/v1/weekly/day/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, router, http.MethodPut, "/api/v1/weekly/timer", map[string]any{"elapsedSeconds": 600, "state": "running"})
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, router, http.MethodPost, "/api/v1/weekly/day/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result services.CompletionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.HistoryItem)
	assert.Equal(t, domain.ItemBook, result.HistoryItem.Type)
	assert.Equal(t, "Dune", result.HistoryItem.Name)
	require.NotNil(t, result.HistoryItem.TimeSpent)
	assert.Equal(t, int64(600), *result.HistoryItem.TimeSpent)

	w = call(t, router, http.MethodGet, "/api/v1/weekly/day", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data domain.WeeklyData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.True(t, data.DailyState.DayCompleted)
	assert.Equal(t, []string{"e2e_ejercicio", "e2e_leer"}, data.DailyState.CompletedTasks)

	w = call(t, router, http.MethodGet, "/api/v1/history?type=Book&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []domain.CompletedItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, result.HistoryItem.ID, items[0].ID)
}

func TestEndToEnd_MemoryBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.New(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer app.Close()

	runRoutineLifecycle(t, newRouter(app, time.Now()))
}

func TestEndToEnd_PostgresBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres e2e in short mode")
	}
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.New(context.Background(), postgresConfig())
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	defer app.Close()

	_, err = app.DB.Exec("DELETE FROM weekly_state")
	require.NoError(t, err)

	router := newRouter(app, time.Now())
	runRoutineLifecycle(t, router)

	w := call(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
