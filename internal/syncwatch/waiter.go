// Package syncwatch waits for export artifacts to arrive through the
// cloud-sync folder. Sync latency is variable and unbounded in the worst
// case, so arrival is a bounded-timeout wait, never a blocking guarantee.
package syncwatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrSyncTimeout means no qualifying artifact arrived within the timeout.
// Callers treat this as a per-book failure, not fatal to the run.
var ErrSyncTimeout = errors.New("timed out waiting for export artifact")

// artifactExtensions are the export file types the waiter recognizes.
var artifactExtensions = []string{".md", ".txt", ".html"}

// Artifact is a raw export file observed in the watch folder.
type Artifact struct {
	Path         string
	ModTime      time.Time
	DiscoveredAt time.Time
}

// MatchesTitle reports whether the artifact's filename plausibly belongs to
// the given book title. Attribution is heuristic (timing plus filename
// correlation); it is recorded for reporting but never trusted for
// correctness.
func (a *Artifact) MatchesTitle(title string) bool {
	name := strings.ToLower(filepath.Base(a.Path))
	return strings.Contains(name, strings.ToLower(strings.TrimSpace(title)))
}

// Waiter polls a watch folder for newly arrived export artifacts.
type Waiter struct {
	watchDir     string
	pollInterval time.Duration
	timeout      time.Duration

	// swappable in tests
	now   func() time.Time
	sleep func(time.Duration)
}

func NewWaiter(watchDir string, pollInterval, timeout time.Duration) *Waiter {
	return &Waiter{
		watchDir:     watchDir,
		pollInterval: pollInterval,
		timeout:      timeout,
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

// AwaitArtifact polls the watch folder at the fixed interval for a file
// newer than since. Sync services may deliver files non-monotonically, so
// within a single poll cycle the newest modification time wins over
// first-seen. Returns ErrSyncTimeout once the deadline passes.
func (w *Waiter) AwaitArtifact(since time.Time) (*Artifact, error) {
	deadline := w.now().Add(w.timeout)

	for {
		candidate, err := w.scan(since)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			return candidate, nil
		}

		if !w.now().Before(deadline) {
			return nil, fmt.Errorf("%w: nothing newer than %s in %s after %s",
				ErrSyncTimeout, since.Format(time.RFC3339), w.watchDir, w.timeout)
		}
		w.sleep(w.pollInterval)
	}
}

// scan reads the watch folder once and returns the qualifying file with
// the newest modification time, or nil when none qualifies.
func (w *Waiter) scan(since time.Time) (*Artifact, error) {
	entries, err := os.ReadDir(w.watchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch folder: %w", err)
	}

	var newest *Artifact
	for _, entry := range entries {
		if entry.IsDir() || !isArtifactFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Filesystems with second-granularity mtimes can stamp an artifact
		// with exactly the trigger time, so equal counts as arrived.
		if info.ModTime().Before(since) {
			continue
		}
		if newest == nil || info.ModTime().After(newest.ModTime) {
			newest = &Artifact{
				Path:         filepath.Join(w.watchDir, entry.Name()),
				ModTime:      info.ModTime(),
				DiscoveredAt: w.now(),
			}
		}
	}
	return newest, nil
}

func isArtifactFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range artifactExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
