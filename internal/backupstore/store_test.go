package backupstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStore_Archive(t *testing.T) {
	srcDir := t.TempDir()
	store := NewStore(t.TempDir())

	src := writeFile(t, srcDir, "Book - Notebook.md", "content")

	dest, err := store.Archive(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir, "Book - Notebook.md"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "original must be moved, not copied")
}

func TestStore_Archive_CollisionKeepsBoth(t *testing.T) {
	srcDir := t.TempDir()
	store := NewStore(t.TempDir())

	first := writeFile(t, srcDir, "Book - Notebook.md", "first run")
	firstDest, err := store.Archive(first)
	require.NoError(t, err)

	second := writeFile(t, srcDir, "Book - Notebook.md", "second run")
	secondDest, err := store.Archive(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstDest, secondDest)
	assert.Equal(t, filepath.Join(store.Dir, "Book - Notebook-1.md"), secondDest)

	kept, err := os.ReadFile(firstDest)
	require.NoError(t, err)
	assert.Equal(t, "first run", string(kept), "earlier archive entry must never be replaced")

	added, err := os.ReadFile(secondDest)
	require.NoError(t, err)
	assert.Equal(t, "second run", string(added))
}

func TestStore_Archive_CreatesDirectory(t *testing.T) {
	srcDir := t.TempDir()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "backup"))

	src := writeFile(t, srcDir, "Book.md", "content")

	dest, err := store.Archive(src)
	require.NoError(t, err)

	_, err = os.Stat(dest)
	assert.NoError(t, err)
}
