// Package entrypoint wires and runs the daemon: the status API plus the
// optional scheduled export runs.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/notehammer/internal/adb"
	"github.com/mrlokans/notehammer/internal/audit"
	"github.com/mrlokans/notehammer/internal/automation"
	"github.com/mrlokans/notehammer/internal/config"
	"github.com/mrlokans/notehammer/internal/database"
	http_controllers "github.com/mrlokans/notehammer/internal/http"
	"github.com/mrlokans/notehammer/internal/notes"
	"github.com/mrlokans/notehammer/internal/orchestrator"
	"github.com/mrlokans/notehammer/internal/retry"
	"github.com/mrlokans/notehammer/internal/scheduler"
	"github.com/mrlokans/notehammer/internal/syncwatch"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting NoteHammer daemon v%s", version)

	// Check the sync watch folder exists before any run can depend on it.
	if cfg.Sync.WatchDir == "" {
		log.Fatalf("Sync watch folder is not set")
	}
	if _, err := os.Stat(cfg.Sync.WatchDir); os.IsNotExist(err) {
		log.Fatalf("Sync watch folder %s does not exist", cfg.Sync.WatchDir)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	orch := buildOrchestrator(cfg, db)

	var exportScheduler *scheduler.ExportScheduler
	if cfg.Schedule.Enabled {
		exportScheduler = scheduler.NewExportScheduler(orch, cfg.Schedule.Spec)
		if err := exportScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start export scheduler: %v", err)
		}
	} else {
		log.Printf("Export scheduler: disabled (set SCHEDULE_ENABLED=true to enable)")
	}

	routerCfg := http_controllers.RouterConfig{
		Database: db,
		Version:  version,
	}
	if exportScheduler != nil {
		routerCfg.Scheduler = exportScheduler
	}
	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if exportScheduler != nil {
			exportScheduler.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}

// buildOrchestrator assembles the pipeline the scheduler runs.
func buildOrchestrator(cfg *config.Config, db *database.Database) *orchestrator.Orchestrator {
	driver := adb.NewClient()
	labels := automation.DefaultLabels().Merge(automation.OverridesFromCSV(map[automation.Action]string{
		automation.ActionLibrary:     cfg.Labels.Library,
		automation.ActionCollections: cfg.Labels.Collections,
		automation.ActionNotes:       cfg.Labels.Notes,
		automation.ActionShare:       cfg.Labels.Share,
		automation.ActionCloudTarget: cfg.Labels.CloudTarget,
	}))
	policy := retry.NewPolicy(cfg.Automation.MaxRetries, cfg.Automation.RetryDelay)

	navigator := automation.NewNavigator(
		driver, labels, policy,
		cfg.Automation.UIWait, cfg.Automation.MaxScrolls,
		config.KindlePackage,
	)
	exporter := automation.NewExportController(
		driver, labels,
		cfg.Automation.UIWait, cfg.Automation.ExportDelay,
	)
	waiter := syncwatch.NewWaiter(cfg.Sync.WatchDir, cfg.Sync.PollInterval, cfg.Sync.Timeout)
	converter := notes.NewConverter(cfg.Output.NotesDir, cfg.Output.BackupDir)

	orch := orchestrator.New(
		driver, cfg.Device.Serial, cfg.Collection.Name,
		navigator, exporter, waiter, converter,
	).WithStore(db)

	if cfg.Audit.Dir != "" {
		orch.WithAuditor(audit.NewAuditor(cfg.Audit.Dir))
	}
	return orch
}
