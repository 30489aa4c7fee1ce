package automation

import (
	"errors"
	"testing"
	"time"

	"github.com/mrlokans/notehammer/internal/adb"
)

func testBook() Book {
	return Book{Title: "Thinking Fast and Slow", Position: 0, Element: adb.Element{X: 100, Y: 300, Text: "Thinking Fast and Slow"}}
}

func newTestExporter(driver *fakeDriver) (*ExportController, *[]time.Duration) {
	var slept []time.Duration
	controller := NewExportController(driver, DefaultLabels(), time.Second, 3*time.Second).
		WithSleep(func(d time.Duration) {
			slept = append(slept, d)
		})
	return controller, &slept
}

func TestExportController_ExportNotes(t *testing.T) {
	driver := &fakeDriver{
		elements: screenOf("Notes", "Share", "OneDrive"),
	}

	controller, slept := newTestExporter(driver)
	if err := controller.ExportNotes(testBook()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(driver.longPressed) != 1 || driver.longPressed[0] != "Thinking Fast and Slow" {
		t.Errorf("book not long-pressed: %v", driver.longPressed)
	}

	wantTaps := []string{"Notes", "Share", "OneDrive"}
	if len(driver.tapped) != len(wantTaps) {
		t.Fatalf("expected taps %v, got %v", wantTaps, driver.tapped)
	}
	for i, want := range wantTaps {
		if driver.tapped[i] != want {
			t.Errorf("tap %d: expected %q, got %q", i, want, driver.tapped[i])
		}
	}

	if driver.backs != 2 {
		t.Errorf("expected 2 back presses to return to the collection, got %d", driver.backs)
	}

	// The inter-book delay applies after the attempt.
	found := false
	for _, d := range *slept {
		if d == 3*time.Second {
			found = true
		}
	}
	if !found {
		t.Errorf("inter-book delay not applied, slept: %v", *slept)
	}
}

func TestExportController_ExportNotes_NoNotesEntry(t *testing.T) {
	driver := &fakeDriver{
		elements: screenOf("Share", "OneDrive"),
	}

	controller, _ := newTestExporter(driver)
	err := controller.ExportNotes(testBook())
	if !errors.Is(err, ErrNoNotes) {
		t.Fatalf("expected ErrNoNotes, got %v", err)
	}

	// Fallback path: the book itself was opened before giving up.
	if len(driver.tapped) != 1 || driver.tapped[0] != "Thinking Fast and Slow" {
		t.Errorf("expected the book to be opened as a fallback, taps: %v", driver.tapped)
	}
	if driver.backs == 0 {
		t.Error("controller must back out after a failed attempt")
	}
}

func TestExportController_ExportNotes_ShareMissing(t *testing.T) {
	driver := &fakeDriver{
		elements: screenOf("Notes", "OneDrive"),
	}

	controller, _ := newTestExporter(driver)
	err := controller.ExportNotes(testBook())
	if !errors.Is(err, adb.ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
	if driver.backs == 0 {
		t.Error("controller must back out after a failed attempt")
	}
}

func TestExportController_ExportNotes_DelayAppliedOnFailure(t *testing.T) {
	driver := &fakeDriver{
		elements: screenOf(),
	}

	controller, slept := newTestExporter(driver)
	if err := controller.ExportNotes(testBook()); err == nil {
		t.Fatal("expected an error")
	}

	found := false
	for _, d := range *slept {
		if d == 3*time.Second {
			found = true
		}
	}
	if !found {
		t.Errorf("inter-book delay must apply on failure too, slept: %v", *slept)
	}
}
