package automation

import "errors"

var (
	// ErrCollectionNotFound means the named collection could not be located
	// within the retry budget. Session-fatal.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrAppNotResponding means the application stopped answering UI
	// queries beyond the retry budget. Session-fatal.
	ErrAppNotResponding = errors.New("application not responding")

	// ErrExportActionFailed means the share-to-cloud sequence broke for a
	// single book. Per-book recoverable.
	ErrExportActionFailed = errors.New("export action failed")

	// ErrNoNotes means the book offers no notes view at all: there is
	// nothing to export and the book is skipped, not failed.
	ErrNoNotes = errors.New("book has no notes to export")
)
