package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/notehammer/internal/backupstore"
	"github.com/mrlokans/notehammer/internal/entities"
)

// Converter owns an export artifact from hand-off until it is either
// converted and archived, or marked failed. Failed artifacts are left in
// place for manual inspection; successful ones are moved to the backup
// store so the watch folder drains as the run progresses.
type Converter struct {
	parser *Parser
	writer *Writer
	backup *backupstore.Store
}

func NewConverter(outputDir, backupDir string) *Converter {
	return &Converter{
		parser: NewParser(),
		writer: NewWriter(outputDir),
		backup: backupstore.NewStore(backupDir),
	}
}

// Convert parses the artifact at path, writes the canonical note document
// and archives the original. Returns the document and the note file path.
func (c *Converter) Convert(path string) (*entities.NoteDocument, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open artifact: %w", err)
	}

	doc, err := c.parser.Parse(f)
	f.Close()
	if err != nil {
		return nil, "", err
	}

	if doc.Title == "" {
		doc.Title = titleFromFilename(path)
	}

	notePath, err := c.writer.Write(doc)
	if err != nil {
		return nil, "", err
	}

	if _, err := c.backup.Archive(path); err != nil {
		return nil, "", err
	}

	return doc, notePath, nil
}

// titleFromFilename recovers a usable title from the artifact name when the
// export header carries none. The share mechanism names files
// "<Title> - Notebook.<ext>".
func titleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, " - Notebook")
	return strings.TrimSpace(base)
}
