package automation

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/notehammer/internal/adb"
)

// ExportController drives the per-book share sequence: open the book's
// notes view and trigger the share-to-cloud action. It never writes files
// itself; the application's own share mechanism produces the artifact.
//
// Every failure here is per-book: the controller backs out to the
// collection view and reports, it never aborts the run.
type ExportController struct {
	driver      adb.Driver
	labels      Labels
	uiWait      time.Duration
	exportDelay time.Duration

	// sleep is swappable in tests
	sleep func(time.Duration)
}

func NewExportController(driver adb.Driver, labels Labels, uiWait, exportDelay time.Duration) *ExportController {
	return &ExportController{
		driver:      driver,
		labels:      labels,
		uiWait:      uiWait,
		exportDelay: exportDelay,
		sleep:       time.Sleep,
	}
}

// WithSleep returns the controller using the given sleep function.
func (c *ExportController) WithSleep(sleep func(time.Duration)) *ExportController {
	c.sleep = sleep
	return c
}

// ExportNotes runs the share sequence for one book. The configured
// inter-book delay is applied after every attempt, success or failure: a
// deliberate rate limit on the automated application's UI thread.
func (c *ExportController) ExportNotes(book Book) error {
	defer c.sleep(c.exportDelay)

	log.Printf("Exporting notes for %q", book.Title)

	if err := c.openNotesView(book); err != nil {
		c.backOut()
		return err
	}

	if err := c.tapStep(ActionShare, book); err != nil {
		c.backOut()
		return err
	}

	if err := c.tapStep(ActionCloudTarget, book); err != nil {
		c.backOut()
		return err
	}

	// Let the share target take over before navigating away.
	c.sleep(c.uiWait / 2)
	c.backOut()

	log.Printf("Export accepted for %q", book.Title)
	return nil
}

// openNotesView long-presses the book for its context menu; if no notes
// entry shows up it opens the book normally and looks again.
func (c *ExportController) openNotesView(book Book) error {
	if err := c.driver.LongPress(book.Element); err != nil {
		return fmt.Errorf("%w: long-press %q: %v", ErrExportActionFailed, book.Title, err)
	}

	el, err := c.findStep(ActionNotes)
	if err == nil {
		return c.tap(el, ActionNotes, book)
	}
	if !errors.Is(err, adb.ErrElementNotFound) {
		return fmt.Errorf("%w: %q: %v", ErrExportActionFailed, book.Title, err)
	}

	// Context menu had no notes entry; open the book itself.
	if err := c.driver.Tap(book.Element); err != nil {
		return fmt.Errorf("%w: open %q: %v", ErrExportActionFailed, book.Title, err)
	}

	el, err = c.findStep(ActionNotes)
	if err != nil {
		if errors.Is(err, adb.ErrElementNotFound) {
			return fmt.Errorf("%w: %q", ErrNoNotes, book.Title)
		}
		return fmt.Errorf("%w: %q: %v", ErrExportActionFailed, book.Title, err)
	}
	return c.tap(el, ActionNotes, book)
}

func (c *ExportController) findStep(action Action) (adb.Element, error) {
	return c.labels.Resolve(action, c.driver, c.uiWait)
}

func (c *ExportController) tapStep(action Action, book Book) error {
	el, err := c.findStep(action)
	if err != nil {
		if errors.Is(err, adb.ErrElementNotFound) {
			return fmt.Errorf("book %q, step %q: %w", book.Title, action, err)
		}
		return fmt.Errorf("%w: book %q, step %q: %v", ErrExportActionFailed, book.Title, action, err)
	}
	return c.tap(el, action, book)
}

func (c *ExportController) tap(el adb.Element, action Action, book Book) error {
	if err := c.driver.Tap(el); err != nil {
		return fmt.Errorf("%w: book %q, step %q: %v", ErrExportActionFailed, book.Title, action, err)
	}
	return nil
}

// backOut best-effort returns to the collection view so the next book
// starts from a known screen. Errors are ignored: the next book's own
// lookups will surface a broken state.
func (c *ExportController) backOut() {
	_ = c.driver.PressBack()
	_ = c.driver.PressBack()
}
