// Package orchestrator sequences a full pipeline run: device session,
// collection navigation, then the export-await-convert loop over every
// book. Books are processed strictly one at a time; a per-book failure is
// recorded and the run moves on, only session-level faults abort it.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/notehammer/internal/adb"
	"github.com/mrlokans/notehammer/internal/automation"
	"github.com/mrlokans/notehammer/internal/device"
	"github.com/mrlokans/notehammer/internal/entities"
	"github.com/mrlokans/notehammer/internal/syncwatch"
)

// Navigator opens the named collection and lists its books.
type Navigator interface {
	Open(collectionName string) ([]automation.Book, error)
}

// Exporter triggers the share-to-cloud sequence for one book.
type Exporter interface {
	ExportNotes(book automation.Book) error
}

// ArtifactWaiter blocks until an export artifact newer than since arrives.
type ArtifactWaiter interface {
	AwaitArtifact(since time.Time) (*syncwatch.Artifact, error)
}

// NoteConverter turns a raw artifact into a canonical note document.
type NoteConverter interface {
	Convert(path string) (*entities.NoteDocument, string, error)
}

// RunStore persists run history. *database.Database satisfies it.
type RunStore interface {
	CreateRun(collection, deviceSerial string) (*entities.Run, error)
	AddOutcome(runID uint, outcome *entities.BookOutcome) error
	FinishRun(run *entities.Run) error
}

// Auditor saves the full run result as a standalone record.
type Auditor interface {
	SaveJSON(data any) (string, error)
}

// RunResult is the complete account of one pipeline invocation.
type RunResult struct {
	Collection string                 `json:"collection"`
	Device     string                 `json:"device,omitempty"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	Status     entities.RunStatus     `json:"status"`
	Error      string                 `json:"error,omitempty"`
	Books      []entities.BookOutcome `json:"books"`
	Succeeded  int                    `json:"succeeded"`
	Skipped    int                    `json:"skipped"`
	Failed     int                    `json:"failed"`
}

// Orchestrator wires the pipeline stages together for a single collection.
type Orchestrator struct {
	driver     adb.Driver
	serial     string
	collection string

	navigator Navigator
	exporter  Exporter
	waiter    ArtifactWaiter
	converter NoteConverter

	// store and auditor are optional; a nil value disables persistence.
	store   RunStore
	auditor Auditor

	now func() time.Time
}

func New(driver adb.Driver, serial, collection string, navigator Navigator, exporter Exporter, waiter ArtifactWaiter, converter NoteConverter) *Orchestrator {
	return &Orchestrator{
		driver:     driver,
		serial:     serial,
		collection: collection,
		navigator:  navigator,
		exporter:   exporter,
		waiter:     waiter,
		converter:  converter,
		now:        time.Now,
	}
}

// WithStore enables run-history persistence.
func (o *Orchestrator) WithStore(store RunStore) *Orchestrator {
	o.store = store
	return o
}

// WithAuditor enables audit records of every run result.
func (o *Orchestrator) WithAuditor(auditor Auditor) *Orchestrator {
	o.auditor = auditor
	return o
}

// Run executes the full pipeline for the configured collection. Session
// faults (no device, collection missing, app unresponsive) return an error
// alongside the partial result; per-book failures never do. Cancellation is
// honored between books, never inside a book's export-await-convert cycle.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		Collection: o.collection,
		StartedAt:  o.now(),
		Status:     entities.RunStatusRunning,
	}

	run := o.beginRecord()

	session, err := device.Connect(o.driver, o.serial)
	if err != nil {
		return o.finish(result, run, fmt.Errorf("device session: %w", err))
	}
	defer session.Close()
	result.Device = session.Serial
	if run != nil {
		run.Device = session.Serial
	}

	books, err := o.navigator.Open(o.collection)
	if err != nil {
		return o.finish(result, run, fmt.Errorf("collection %q: %w", o.collection, err))
	}
	if len(books) == 0 {
		log.Printf("Collection %q is empty, nothing to export", o.collection)
		return o.finish(result, run, nil)
	}

	for _, book := range books {
		if ctx.Err() != nil {
			log.Printf("Run cancelled after %d of %d books", len(result.Books), len(books))
			result.Status = entities.RunStatusAborted
			return o.finish(result, run, ctx.Err())
		}

		outcome := o.processBook(book)
		o.record(result, run, outcome)
	}

	return o.finish(result, run, nil)
}

// processBook runs one book through export, artifact wait, and conversion.
func (o *Orchestrator) processBook(book automation.Book) entities.BookOutcome {
	outcome := entities.BookOutcome{
		Position: book.Position,
		Title:    book.Title,
	}

	// The arrival cutoff is taken before the export is triggered, so an
	// artifact written at any point during the attempt qualifies.
	since := o.now()

	if err := o.exporter.ExportNotes(book); err != nil {
		if errors.Is(err, automation.ErrNoNotes) {
			log.Printf("Skipping %q: no notes to export", book.Title)
			outcome.Outcome = entities.OutcomeSkipped
			outcome.Stage = entities.StageExport
			outcome.ErrorMsg = err.Error()
			return outcome
		}
		log.Printf("Export failed for %q: %v", book.Title, err)
		outcome.Outcome = entities.OutcomeFailed
		outcome.Stage = entities.StageExport
		outcome.ErrorMsg = err.Error()
		return outcome
	}

	artifact, err := o.waiter.AwaitArtifact(since)
	if err != nil {
		log.Printf("No artifact arrived for %q: %v", book.Title, err)
		outcome.Outcome = entities.OutcomeFailed
		outcome.Stage = entities.StageSync
		outcome.ErrorMsg = err.Error()
		return outcome
	}
	outcome.ArtifactFile = artifact.Path
	if !artifact.MatchesTitle(book.Title) {
		log.Printf("Artifact %s does not name %q, attributing by arrival time", artifact.Path, book.Title)
	}

	doc, notePath, err := o.converter.Convert(artifact.Path)
	if err != nil {
		log.Printf("Conversion failed for %q (%s): %v", book.Title, artifact.Path, err)
		outcome.Outcome = entities.OutcomeFailed
		outcome.Stage = entities.StageConvert
		outcome.ErrorMsg = err.Error()
		return outcome
	}

	log.Printf("Converted %q: %d highlights -> %s", doc.Title, len(doc.Highlights), notePath)
	outcome.Outcome = entities.OutcomeSuccess
	outcome.NotePath = notePath
	return outcome
}

// record appends the outcome to the result and persists it when a store is
// configured. Persistence failures are logged, never fatal to the run.
func (o *Orchestrator) record(result *RunResult, run *entities.Run, outcome entities.BookOutcome) {
	result.Books = append(result.Books, outcome)
	switch outcome.Outcome {
	case entities.OutcomeSuccess:
		result.Succeeded++
	case entities.OutcomeSkipped:
		result.Skipped++
	default:
		result.Failed++
	}

	if o.store != nil && run != nil {
		saved := outcome
		if err := o.store.AddOutcome(run.ID, &saved); err != nil {
			log.Printf("Failed to persist outcome for %q: %v", outcome.Title, err)
		}
	}
}

// beginRecord opens the run-history row if a store is configured.
func (o *Orchestrator) beginRecord() *entities.Run {
	if o.store == nil {
		return nil
	}
	run, err := o.store.CreateRun(o.collection, o.serial)
	if err != nil {
		log.Printf("Failed to record run start: %v", err)
		return nil
	}
	return run
}

// finish closes out the result, persists it, and writes the audit record.
func (o *Orchestrator) finish(result *RunResult, run *entities.Run, fatal error) (*RunResult, error) {
	result.FinishedAt = o.now()
	if fatal != nil {
		result.Error = fatal.Error()
		if result.Status != entities.RunStatusAborted {
			result.Status = entities.RunStatusFailed
		}
	} else {
		result.Status = entities.RunStatusCompleted
	}

	if o.store != nil && run != nil {
		run.Status = result.Status
		run.Succeeded = result.Succeeded
		run.Skipped = result.Skipped
		run.Failed = result.Failed
		run.ErrorMsg = result.Error
		if err := o.store.FinishRun(run); err != nil {
			log.Printf("Failed to record run end: %v", err)
		}
	}

	if o.auditor != nil {
		if name, err := o.auditor.SaveJSON(result); err != nil {
			log.Printf("Failed to save audit record: %v", err)
		} else {
			log.Printf("Audit record saved as %s", name)
		}
	}

	log.Printf("Run finished: %d succeeded, %d skipped, %d failed (status %s)",
		result.Succeeded, result.Skipped, result.Failed, result.Status)
	return result, fatal
}
