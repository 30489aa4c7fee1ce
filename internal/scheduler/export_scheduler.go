// Package scheduler runs the export pipeline on a cron schedule. The
// pipeline holds the only UI automation session, so overlapping runs are
// impossible: a tick that fires while a run is still going is skipped.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/notehammer/internal/orchestrator"
)

// Runner executes one full pipeline run. *orchestrator.Orchestrator
// satisfies it.
type Runner interface {
	Run(ctx context.Context) (*orchestrator.RunResult, error)
}

// ExportScheduler manages periodic pipeline runs.
type ExportScheduler struct {
	runner   Runner
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	exporting  bool
	cancelFunc context.CancelFunc
}

func NewExportScheduler(runner Runner, schedule string) *ExportScheduler {
	return &ExportScheduler{
		runner:   runner,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *ExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runPipeline()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	if entry := s.cron.Entry(entryID); !entry.Next.IsZero() {
		log.Printf("Export scheduler: started with schedule '%s'. Next run: %v", s.schedule, entry.Next)
	}

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running export to
// finish.
func (s *ExportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Export scheduler: stopped")
}

// RunNow triggers an immediate pipeline run.
func (s *ExportScheduler) RunNow() {
	go s.runPipeline()
}

// IsRunning returns whether the scheduler is active.
func (s *ExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsExporting returns whether a pipeline run is in progress right now.
func (s *ExportScheduler) IsExporting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exporting
}

// GetNextRunTime returns when the next scheduled run will occur.
func (s *ExportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entries := s.cron.Entries()
	for _, entry := range entries {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runPipeline performs one run, skipping the tick entirely when the
// previous run has not finished.
func (s *ExportScheduler) runPipeline() {
	s.mu.Lock()
	if s.exporting {
		s.mu.Unlock()
		log.Printf("Export scheduler: previous run still in progress, skipping this tick")
		return
	}
	s.exporting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}()

	log.Printf("Export scheduler: starting scheduled run")
	startTime := time.Now()

	result, err := s.runner.Run(context.Background())
	if err != nil {
		log.Printf("Export scheduler: run failed: %v", err)
		return
	}

	duration := time.Since(startTime)
	log.Printf("Export scheduler: run finished in %v (%d succeeded, %d skipped, %d failed)",
		duration.Round(time.Millisecond), result.Succeeded, result.Skipped, result.Failed)
}
