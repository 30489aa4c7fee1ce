// Package cli implements the command-line commands. Each command owns its
// flag set and wires the pipeline pieces it needs; long-lived wiring for
// the daemon lives in the entrypoint package instead.
package cli

import (
	"log"

	"github.com/mrlokans/notehammer/internal/adb"
	"github.com/mrlokans/notehammer/internal/audit"
	"github.com/mrlokans/notehammer/internal/automation"
	"github.com/mrlokans/notehammer/internal/config"
	"github.com/mrlokans/notehammer/internal/database"
	"github.com/mrlokans/notehammer/internal/notes"
	"github.com/mrlokans/notehammer/internal/orchestrator"
	"github.com/mrlokans/notehammer/internal/retry"
	"github.com/mrlokans/notehammer/internal/syncwatch"
)

// buildOrchestrator assembles the full pipeline from the effective
// configuration. The returned cleanup closes the run-history database and
// must be called after the run.
func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, func(), error) {
	driver := adb.NewClient()
	labels := labelsFor(cfg)
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
	)

	cleanup := func() {}
	if cfg.Database.Path != "" {
		db, err := database.NewDatabase(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		orch.WithStore(db)
		cleanup = func() {
			if err := db.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}
	}
	if cfg.Audit.Dir != "" {
		orch.WithAuditor(audit.NewAuditor(cfg.Audit.Dir))
	}

	return orch, cleanup, nil
}

// labelsFor applies configured screen-text overrides to the default table.
func labelsFor(cfg *config.Config) automation.Labels {
	return automation.DefaultLabels().Merge(automation.OverridesFromCSV(map[automation.Action]string{
		automation.ActionLibrary:     cfg.Labels.Library,
		automation.ActionCollections: cfg.Labels.Collections,
		automation.ActionNotes:       cfg.Labels.Notes,
		automation.ActionShare:       cfg.Labels.Share,
		automation.ActionCloudTarget: cfg.Labels.CloudTarget,
	}))
}
