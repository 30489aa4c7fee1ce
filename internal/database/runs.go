package database

import (
	"fmt"
	"time"

	"github.com/mrlokans/notehammer/internal/entities"
)

// CreateRun records the start of a pipeline invocation.
func (d *Database) CreateRun(collection, device string) (*entities.Run, error) {
	run := &entities.Run{
		Collection: collection,
		Device:     device,
		StartedAt:  time.Now(),
		Status:     entities.RunStatusRunning,
	}
	if err := d.DB.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// AddOutcome appends a per-book outcome to a run.
func (d *Database) AddOutcome(runID uint, outcome *entities.BookOutcome) error {
	outcome.RunID = runID
	if err := d.DB.Create(outcome).Error; err != nil {
		return fmt.Errorf("failed to record outcome for %q: %w", outcome.Title, err)
	}
	return nil
}

// FinishRun closes out a run with its final status and counts.
func (d *Database) FinishRun(run *entities.Run) error {
	run.FinishedAt = time.Now()
	if err := d.DB.Save(run).Error; err != nil {
		return fmt.Errorf("failed to finish run %d: %w", run.ID, err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first, outcomes included.
func (d *Database) RecentRuns(limit int) ([]entities.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []entities.Run
	err := d.DB.Preload("Outcomes").
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a single run with its outcomes.
func (d *Database) GetRun(id uint) (*entities.Run, error) {
	var run entities.Run
	err := d.DB.Preload("Outcomes").First(&run, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	return &run, nil
}
