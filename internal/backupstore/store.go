// Package backupstore archives consumed export artifacts. Originals are
// moved, never copied, and never overwritten: a name collision gets a
// numeric suffix instead.
package backupstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is a directory receiving processed artifacts keyed by their
// original filename.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Archive moves the file at path into the store and returns the
// destination. Collisions resolve as name-1.ext, name-2.ext, ... with a
// monotonically increasing counter; existing entries are never replaced.
func (s *Store) Archive(path string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	dest := filepath.Join(s.Dir, base)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(s.Dir, fmt.Sprintf("%s-%d%s", stem, counter, ext))
	}

	if err := moveFile(path, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", base, err)
	}
	return dest, nil
}

// moveFile renames, falling back to copy-and-remove when the store lives
// on a different filesystem than the sync folder.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
