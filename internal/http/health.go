package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/notehammer/internal/database"
)

// HealthResponse reports the daemon's liveness: the run-history database
// and the export scheduler, the two long-lived pieces the daemon owns.
type HealthResponse struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	Version   string `json:"version,omitempty"`
	Database  string `json:"database"`
	Scheduler string `json:"scheduler"`
}

type HealthController struct {
	db        *database.Database
	scheduler SchedulerStatus
	version   string
}

func NewHealthController(db *database.Database, scheduler SchedulerStatus, version string) *HealthController {
	return &HealthController{
		db:        db,
		scheduler: scheduler,
		version:   version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:    "healthy",
		Time:      time.Now().Format(time.RFC3339),
		Version:   h.version,
		Database:  h.databaseState(),
		Scheduler: h.schedulerState(),
	}

	statusCode := http.StatusOK
	if health.Database != "ok" && health.Database != "not configured" {
		health.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// databaseState pings the run-history store. Running without one is a
// supported configuration, not a degraded state.
func (h *HealthController) databaseState() string {
	if h.db == nil {
		return "not configured"
	}
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

// schedulerState summarizes the export scheduler. A stopped scheduler is
// informational: manual runs through the CLI stay available either way.
func (h *HealthController) schedulerState() string {
	if h.scheduler == nil {
		return "disabled"
	}
	if h.scheduler.IsExporting() {
		return "exporting"
	}
	if h.scheduler.IsRunning() {
		return "idle"
	}
	return "stopped"
}
