package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/coursegrid/scheduler/internal/model"
	"github.com/coursegrid/scheduler/internal/solve"
	"github.com/coursegrid/scheduler/pkg/config"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env: config.EnvDevelopment,
		Solver: config.SolverConfig{
			Backend:          "gophersat",
			DefaultTimeLimit: 10 * time.Second,
			MaxTimeLimit:     30 * time.Second,
			Encoding:         "period",
		},
	}
	metrics := NewMetrics()
	scheduler := model.NewScheduler(solve.NewGophersatSolver(), model.Config{})
	handler := NewHandler(scheduler, cfg, metrics, zap.NewNop())

	return NewRouter(cfg, zap.NewNop(), metrics, handler)
}

func TestHealthEndpoint(t *testing.T) {
	// Arrange
	router := testRouter(t)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/health", nil)

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status": "healthy", "message": "Schedule API is running"}`, recorder.Body.String())
}

func TestGenerateSchedule(t *testing.T) {
	router := testRouter(t)

	t.Run("rejects a payload without courses", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/generate-schedule",
			strings.NewReader(`{"rooms": [{"id": "A", "capacity": 30}]}`))
		request.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body ErrorResponse
		assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "Courses data is required", body.Message)
	})

	t.Run("rejects an unknown day pattern", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/generate-schedule",
			strings.NewReader(`{"courses": [{"code": "CS101", "day_pattern": "weekend"}]}`))
		request.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("schedules a valid request", func(t *testing.T) {
		payload := `{
			"courses": [
				{"code": "CS101", "name": "Intro", "teacher": "Dr. Smith", "day_pattern": "MWF", "priority": 5},
				{"code": "MATH101", "name": "Calculus", "teacher": "Dr. Johnson", "day_pattern": "TTh", "priority": 4}
			],
			"rooms": [{"id": "Room A", "capacity": 40}],
			"time_limit_seconds": 10
		}`
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/generate-schedule", strings.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var outcome model.Outcome
		assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &outcome))
		assert.True(t, outcome.Success)
		assert.Equal(t, "OPTIMAL", outcome.Status)
		assert.Equal(t, 2, outcome.ScheduledCount)
		assert.Equal(t, 2, outcome.TotalCount)
		assert.ElementsMatch(t, []string{"CS101", "MATH101"}, outcome.Scheduled)
	})
}

func TestSampleSchedule(t *testing.T) {
	router := testRouter(t)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/examples/sample-schedule", nil)

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var outcome model.Outcome
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &outcome))
	assert.True(t, outcome.Success)
	assert.Equal(t, 5, outcome.TotalCount)
	assert.Len(t, outcome.Scheduled, 5)
}

func TestRouterFallbacks(t *testing.T) {
	router := testRouter(t)

	t.Run("unknown endpoint", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `{"success": false, "message": "Endpoint not found"}`, recorder.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/generate-schedule", nil)

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "goroutines_total")
}
