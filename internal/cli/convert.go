package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mrlokans/notehammer/internal/config"
	"github.com/mrlokans/notehammer/internal/notes"
)

// ConvertCommand converts already-synced export artifacts without touching
// any device: everything in -input is parsed, written as markdown and
// archived, exactly as the full pipeline would.
type ConvertCommand struct {
	InputPath string
	NotesDir  string
	BackupDir string
	Verbose   bool
}

func NewConvertCommand() *ConvertCommand {
	return &ConvertCommand{}
}

func (cmd *ConvertCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	fs.StringVar(&cmd.InputPath, "input", cfg.Sync.WatchDir, "Export artifact file or a directory of them")
	fs.StringVar(&cmd.NotesDir, "notes", cfg.Output.NotesDir, "Output directory for markdown note documents")
	fs.StringVar(&cmd.BackupDir, "backup", cfg.Output.BackupDir, "Directory converted artifacts are moved to")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s convert [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert export artifacts that already arrived through the sync folder\n")
		fmt.Fprintf(os.Stderr, "into markdown note documents. No device is needed.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Convert everything waiting in the sync folder:\n")
		fmt.Fprintf(os.Stderr, "  %s convert\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Convert a single export file:\n")
		fmt.Fprintf(os.Stderr, "  %s convert -input \"Thinking Fast and Slow - Notebook.md\"\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.InputPath == "" {
		return fmt.Errorf("required flag -input not provided")
	}
	return nil
}

func (cmd *ConvertCommand) Run() error {
	fmt.Println("Artifact Conversion")
	fmt.Println("===================")

	paths, err := cmd.collectArtifacts()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No export artifacts found")
		return nil
	}
	fmt.Printf("Found %d artifacts\n\n", len(paths))

	converter := notes.NewConverter(cmd.NotesDir, cmd.BackupDir)

	var converted, failed int
	for _, path := range paths {
		doc, notePath, err := converter.Convert(path)
		if err != nil {
			failed++
			fmt.Printf("  [FAIL] %s: %v\n", filepath.Base(path), err)
			continue
		}
		converted++
		if cmd.Verbose {
			fmt.Printf("  [OK] %q (%d highlights) -> %s\n", doc.Title, len(doc.Highlights), notePath)
		} else {
			fmt.Printf("  [OK] %s\n", filepath.Base(notePath))
		}
	}

	fmt.Printf("\nConverted: %d  Failed: %d\n", converted, failed)
	if failed > 0 {
		fmt.Println("Failed artifacts were left in place for inspection.")
	}
	return nil
}

// collectArtifacts resolves -input into a sorted list of artifact files.
func (cmd *ConvertCommand) collectArtifacts() ([]string, error) {
	info, err := os.Stat(cmd.InputPath)
	if err != nil {
		return nil, fmt.Errorf("input not found: %s", cmd.InputPath)
	}
	if !info.IsDir() {
		return []string{cmd.InputPath}, nil
	}

	entries, err := os.ReadDir(cmd.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isArtifactName(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(cmd.InputPath, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func isArtifactName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".txt", ".html":
		return true
	}
	return false
}
