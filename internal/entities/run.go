package entities

import "time"

// Stage identifies where in the per-book pipeline an outcome was decided.
type Stage string

const (
	StageConnect  Stage = "connect"
	StageNavigate Stage = "navigate"
	StageExport   Stage = "export"
	StageSync     Stage = "sync"
	StageConvert  Stage = "convert"
)

// Outcome classifies the result for a single book.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusAborted   RunStatus = "aborted"
)

// Run records one pipeline invocation in the run-history store.
type Run struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Collection string    `gorm:"size:256" json:"collection"`
	Device     string    `gorm:"size:128" json:"device,omitempty"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Status     RunStatus `gorm:"size:20;index" json:"status"`
	Succeeded  int       `json:"succeeded"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	ErrorMsg   string    `gorm:"size:500" json:"error_msg,omitempty"`

	Outcomes []BookOutcome `gorm:"foreignKey:RunID" json:"outcomes,omitempty"`
}

func (Run) TableName() string {
	return "runs"
}

// BookOutcome records the result for one book within a run, in the order
// the collection navigator reported the books.
type BookOutcome struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	RunID    uint    `gorm:"index" json:"run_id"`
	Position int     `json:"position"`
	Title    string  `gorm:"size:512" json:"title"`
	Outcome  Outcome `gorm:"size:20;index" json:"outcome"`
	Stage    Stage   `gorm:"size:20" json:"stage,omitempty"`
	ErrorMsg string  `gorm:"size:500" json:"error_msg,omitempty"`
	// ArtifactFile and NotePath are best-effort: artifact to book
	// attribution relies on arrival timing, not an explicit identifier.
	ArtifactFile string `gorm:"size:1024" json:"artifact_file,omitempty"`
	NotePath     string `gorm:"size:1024" json:"note_path,omitempty"`
}

func (BookOutcome) TableName() string {
	return "book_outcomes"
}
