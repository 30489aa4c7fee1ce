package notes

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/notehammer/internal/entities"
	"github.com/mrlokans/notehammer/internal/utils"
)

// Writer persists NoteDocuments as markdown files in the output note
// directory. The filename is derived from the source title with
// filesystem-unsafe characters replaced; re-processing the same source
// overwrites the same file, keeping the output stable across runs.
type Writer struct {
	OutputDir string
}

func NewWriter(outputDir string) *Writer {
	return &Writer{OutputDir: outputDir}
}

// Write renders the document and writes it, returning the file path.
func (w *Writer) Write(doc *entities.NoteDocument) (string, error) {
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.OutputDir, utils.SanitizeFilename(doc.Title)+".md")
	if err := os.WriteFile(path, []byte(Render(doc)), 0644); err != nil {
		return "", fmt.Errorf("failed to write note: %w", err)
	}
	return path, nil
}
