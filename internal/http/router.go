// Package http exposes the daemon's status API: health, run history, and
// scheduler state. Every endpoint is read-only.
package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Scheduler, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.Database != nil {
		runsController := NewRunsController(cfg.Database)
		router.GET("/api/runs", runsController.GetRecentRuns)
		router.GET("/api/runs/:id", runsController.GetRun)
	}

	if cfg.Scheduler != nil {
		schedulerController := NewSchedulerController(cfg.Scheduler)
		router.GET("/api/scheduler/status", schedulerController.GetStatus)
	}

	return router
}
