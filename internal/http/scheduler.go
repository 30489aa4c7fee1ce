package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SchedulerController reports the export scheduler's state.
type SchedulerController struct {
	scheduler SchedulerStatus
}

func NewSchedulerController(scheduler SchedulerStatus) *SchedulerController {
	return &SchedulerController{scheduler: scheduler}
}

func (sc *SchedulerController) GetStatus(c *gin.Context) {
	resp := gin.H{
		"enabled":   sc.scheduler.IsRunning(),
		"exporting": sc.scheduler.IsExporting(),
	}
	if next := sc.scheduler.GetNextRunTime(); next != nil {
		resp["next_run"] = next.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
