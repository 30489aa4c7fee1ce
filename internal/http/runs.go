package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/notehammer/internal/database"
)

// RunsController exposes the run history read-only.
type RunsController struct {
	db *database.Database
}

func NewRunsController(db *database.Database) *RunsController {
	return &RunsController{db: db}
}

// GetRecentRuns returns the latest runs, newest first. The optional limit
// query parameter caps the number of runs returned.
func (rc *RunsController) GetRecentRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	runs, err := rc.db.RecentRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun returns a single run with its per-book outcomes.
func (rc *RunsController) GetRun(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "run id must be an integer"})
		return
	}

	run, err := rc.db.GetRun(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}
