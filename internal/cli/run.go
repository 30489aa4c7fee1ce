package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrlokans/notehammer/internal/adb"
	"github.com/mrlokans/notehammer/internal/automation"
	"github.com/mrlokans/notehammer/internal/config"
	"github.com/mrlokans/notehammer/internal/device"
	"github.com/mrlokans/notehammer/internal/entities"
	"github.com/mrlokans/notehammer/internal/orchestrator"
	"github.com/mrlokans/notehammer/internal/retry"
)

// RunCommand drives the full pipeline once: export every book in the
// collection and convert the resulting artifacts.
type RunCommand struct {
	Collection  string
	Serial      string
	WatchDir    string
	NotesDir    string
	BackupDir   string
	ExportDelay time.Duration
	SyncTimeout time.Duration
	DryRun      bool

	cfg *config.Config
}

func NewRunCommand() *RunCommand {
	return &RunCommand{}
}

func (cmd *RunCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("run", flag.ExitOnError)

	fs.StringVar(&cmd.Collection, "collection", cfg.Collection.Name, "Collection whose books are exported")
	fs.StringVar(&cmd.Serial, "serial", cfg.Device.Serial, "ADB serial of the target device (defaults to the only attached one)")
	fs.StringVar(&cmd.WatchDir, "watch", cfg.Sync.WatchDir, "Folder the cloud-sync client delivers exports into")
	fs.StringVar(&cmd.NotesDir, "notes", cfg.Output.NotesDir, "Output directory for markdown note documents")
	fs.StringVar(&cmd.BackupDir, "backup", cfg.Output.BackupDir, "Directory consumed export artifacts are moved to")
	fs.DurationVar(&cmd.ExportDelay, "export-delay", cfg.Automation.ExportDelay, "Delay between books, a deliberate UI rate limit")
	fs.DurationVar(&cmd.SyncTimeout, "sync-timeout", cfg.Sync.Timeout, "Per-book upper bound on sync latency")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Open the collection and list its books without exporting")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s run [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export notes for every book in a collection and convert the exports\n")
		fmt.Fprintf(os.Stderr, "into markdown note documents.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Export the default collection using the only attached device:\n")
		fmt.Fprintf(os.Stderr, "  %s run\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Export a named collection from a specific device:\n")
		fmt.Fprintf(os.Stderr, "  %s run -collection \"History\" -serial emulator-5554\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # See which books would be processed:\n")
		fmt.Fprintf(os.Stderr, "  %s run -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Collection == "" {
		return fmt.Errorf("collection name must not be empty")
	}

	cfg.Collection.Name = cmd.Collection
	cfg.Device.Serial = cmd.Serial
	cfg.Sync.WatchDir = cmd.WatchDir
	cfg.Sync.Timeout = cmd.SyncTimeout
	cfg.Output.NotesDir = cmd.NotesDir
	cfg.Output.BackupDir = cmd.BackupDir
	cfg.Automation.ExportDelay = cmd.ExportDelay
	cmd.cfg = cfg

	return nil
}

func (cmd *RunCommand) Run() error {
	fmt.Println("Notes Export")
	fmt.Println("============")
	fmt.Printf("Collection: %s\n", cmd.Collection)

	if cmd.DryRun {
		return cmd.listBooks()
	}

	orch, cleanup, err := buildOrchestrator(cmd.cfg)
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}
	defer cleanup()

	// Ctrl-C aborts at the next book boundary; the book in flight finishes.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := orch.Run(ctx)
	if result != nil {
		printResult(result)
	}
	return err
}

// listBooks connects and navigates but triggers no exports.
func (cmd *RunCommand) listBooks() error {
	fmt.Println("DRY RUN MODE - no exports will be triggered")
	fmt.Println()

	driver := adb.NewClient()
	session, err := device.Connect(driver, cmd.Serial)
	if err != nil {
		return err
	}
	defer session.Close()

	cfg := cmd.cfg
	navigator := automation.NewNavigator(
		driver, labelsFor(cfg),
		retry.NewPolicy(cfg.Automation.MaxRetries, cfg.Automation.RetryDelay),
		cfg.Automation.UIWait, cfg.Automation.MaxScrolls,
		config.KindlePackage,
	)
	books, err := navigator.Open(cmd.Collection)
	if err != nil {
		return err
	}

	fmt.Printf("Collection %q contains %d books:\n", cmd.Collection, len(books))
	for _, book := range books {
		fmt.Printf("  %d. %s\n", book.Position+1, book.Title)
	}
	return nil
}

func printResult(result *orchestrator.RunResult) {
	fmt.Println("\n=== Run Summary ===")
	for _, book := range result.Books {
		marker := "[OK]"
		switch book.Outcome {
		case entities.OutcomeSkipped:
			marker = "[SKIP]"
		case entities.OutcomeFailed:
			marker = "[FAIL]"
		}
		line := fmt.Sprintf("  %s %s", marker, book.Title)
		if book.Outcome == entities.OutcomeSuccess {
			line += fmt.Sprintf(" -> %s", book.NotePath)
		} else if book.ErrorMsg != "" {
			line += fmt.Sprintf(" (%s: %s)", book.Stage, book.ErrorMsg)
		}
		fmt.Println(line)
	}
	fmt.Printf("\nSucceeded: %d  Skipped: %d  Failed: %d\n",
		result.Succeeded, result.Skipped, result.Failed)
	if result.Error != "" {
		fmt.Printf("Run ended early: %s\n", result.Error)
	}
}
