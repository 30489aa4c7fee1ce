package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/notehammer/internal/config"
	"github.com/mrlokans/notehammer/internal/database"
	"github.com/mrlokans/notehammer/internal/entities"
)

// HistoryCommand prints past runs from the run-history database.
type HistoryCommand struct {
	DatabasePath string
	Limit        int
	RunID        uint
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)

	var runID uint64
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the run-history database")
	fs.IntVar(&cmd.Limit, "limit", 10, "Number of runs to show")
	fs.Uint64Var(&runID, "run", 0, "Show per-book detail for one run ID")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s history [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show past pipeline runs and their per-book outcomes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.RunID = uint(runID)
	return nil
}

func (cmd *HistoryCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer db.Close()

	if cmd.RunID != 0 {
		return cmd.printRun(db)
	}
	return cmd.printRecent(db)
}

func (cmd *HistoryCommand) printRecent(db *database.Database) error {
	runs, err := db.RecentRuns(cmd.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	fmt.Println("Recent Runs")
	fmt.Println("===========")
	for _, run := range runs {
		fmt.Printf("#%d  %s  %q  %s  ok=%d skip=%d fail=%d\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Collection,
			run.Status,
			run.Succeeded, run.Skipped, run.Failed)
		if run.ErrorMsg != "" {
			fmt.Printf("    error: %s\n", run.ErrorMsg)
		}
	}
	fmt.Printf("\nUse '%s history -run <id>' for per-book detail.\n", os.Args[0])
	return nil
}

func (cmd *HistoryCommand) printRun(db *database.Database) error {
	run, err := db.GetRun(cmd.RunID)
	if err != nil {
		return err
	}

	fmt.Printf("Run #%d  %q on %s\n", run.ID, run.Collection, run.Device)
	fmt.Printf("Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Finished: %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Status:   %s\n", run.Status)
	if run.ErrorMsg != "" {
		fmt.Printf("Error:    %s\n", run.ErrorMsg)
	}

	fmt.Println("\nBooks:")
	for _, outcome := range run.Outcomes {
		marker := "[OK]"
		switch outcome.Outcome {
		case entities.OutcomeSkipped:
			marker = "[SKIP]"
		case entities.OutcomeFailed:
			marker = "[FAIL]"
		}
		fmt.Printf("  %s %s\n", marker, outcome.Title)
		if outcome.NotePath != "" {
			fmt.Printf("       note: %s\n", outcome.NotePath)
		}
		if outcome.ErrorMsg != "" {
			fmt.Printf("       %s: %s\n", outcome.Stage, outcome.ErrorMsg)
		}
	}
	return nil
}
