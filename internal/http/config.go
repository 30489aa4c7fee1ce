package http

import (
	"time"

	"github.com/mrlokans/notehammer/internal/database"
)

// SchedulerStatus is what the status API needs to know about the export
// scheduler. *scheduler.ExportScheduler satisfies it.
type SchedulerStatus interface {
	IsRunning() bool
	IsExporting() bool
	GetNextRunTime() *time.Time
}

// RouterConfig holds all dependencies for the HTTP router.
// The API is read-only on purpose: runs are started by the CLI or the
// scheduler, never by an HTTP request.
type RouterConfig struct {
	Database  *database.Database
	Scheduler SchedulerStatus
	Version   string
}
