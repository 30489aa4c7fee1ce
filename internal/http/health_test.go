package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/notehammer/internal/database"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRouter(RouterConfig{Database: db, Version: "test"})
}

// stubSchedulerStatus reports a fixed scheduler state to the status API.
type stubSchedulerStatus struct {
	running   bool
	exporting bool
	next      *time.Time
}

func (s *stubSchedulerStatus) IsRunning() bool            { return s.running }
func (s *stubSchedulerStatus) IsExporting() bool          { return s.exporting }
func (s *stubSchedulerStatus) GetNextRunTime() *time.Time { return s.next }

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, "ok", health.Database)
	assert.Equal(t, "disabled", health.Scheduler)
}

func TestHealthEndpoint_SchedulerStates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		scheduler SchedulerStatus
		want      string
	}{
		{"idle", &stubSchedulerStatus{running: true}, "idle"},
		{"exporting", &stubSchedulerStatus{running: true, exporting: true}, "exporting"},
		{"stopped", &stubSchedulerStatus{}, "stopped"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := NewRouter(RouterConfig{Scheduler: tc.scheduler, Version: "test"})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/health", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var health HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
			assert.Equal(t, "healthy", health.Status)
			assert.Equal(t, "not configured", health.Database)
			assert.Equal(t, tc.want, health.Scheduler)
		})
	}
}

func TestPingEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
