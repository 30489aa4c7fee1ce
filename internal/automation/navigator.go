package automation

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/notehammer/internal/adb"
	"github.com/mrlokans/notehammer/internal/retry"
)

// Book is one entry discovered in the collection view. Books are transient:
// discovered at navigation time, identified by display title, never
// persisted by the pipeline.
type Book struct {
	Title    string
	Position int
	Element  adb.Element
}

// Navigator locates and opens a named collection and discovers the books
// inside it. All element lookups go through the label table and the
// injected retry policy.
type Navigator struct {
	driver     adb.Driver
	labels     Labels
	policy     retry.Policy
	uiWait     time.Duration
	maxScrolls int
	appPackage string
}

func NewNavigator(driver adb.Driver, labels Labels, policy retry.Policy, uiWait time.Duration, maxScrolls int, appPackage string) *Navigator {
	if maxScrolls < 1 {
		maxScrolls = 1
	}
	return &Navigator{
		driver:     driver,
		labels:     labels,
		policy:     policy,
		uiWait:     uiWait,
		maxScrolls: maxScrolls,
		appPackage: appPackage,
	}
}

// findAction resolves a logical action to a screen element through the
// label table.
func (n *Navigator) findAction(action Action) (adb.Element, error) {
	return n.labels.Resolve(action, n.driver, n.uiWait)
}

// tapAction finds and taps an action's element under the retry policy.
func (n *Navigator) tapAction(action Action) error {
	return n.policy.Do(func() error {
		el, err := n.findAction(action)
		if err != nil {
			return err
		}
		return n.driver.Tap(el)
	})
}

// Open navigates to the named collection and returns its books in display
// order. The returned order is the processing order for the run; it is
// captured once and never re-read even if the UI re-renders.
func (n *Navigator) Open(collectionName string) ([]Book, error) {
	log.Printf("Navigating to collection %q", collectionName)

	if err := n.driver.StartApp(n.appPackage); err != nil {
		return nil, fmt.Errorf("%w: failed to launch app: %v", ErrAppNotResponding, err)
	}

	if err := n.tapAction(ActionLibrary); err != nil {
		return nil, fmt.Errorf("%w: library view unreachable: %v", ErrAppNotResponding, err)
	}

	// Some layouts list collections directly under Library; the Collections
	// tab is tapped only when present.
	if el, err := n.findAction(ActionCollections); err == nil {
		if err := n.driver.Tap(el); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAppNotResponding, err)
		}
	} else if !errors.Is(err, adb.ErrElementNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrAppNotResponding, err)
	}

	el, err := n.locateCollection(collectionName)
	if err != nil {
		return nil, err
	}
	if err := n.driver.Tap(el); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAppNotResponding, err)
	}

	books, err := n.listBooks(collectionName)
	if err != nil {
		return nil, err
	}

	log.Printf("Found %d books in collection %q", len(books), collectionName)
	return books, nil
}

// locateCollection searches for the collection entry, scrolling a bounded
// number of times before escalating to ErrCollectionNotFound.
func (n *Navigator) locateCollection(name string) (adb.Element, error) {
	var el adb.Element

	err := n.policy.Do(func() error {
		for scroll := 0; scroll < n.maxScrolls; scroll++ {
			found, err := n.driver.FindByText(name, n.uiWait)
			if err == nil {
				el = found
				return nil
			}
			if !errors.Is(err, adb.ErrElementNotFound) {
				return fmt.Errorf("%w: %v", ErrAppNotResponding, err)
			}
			if err := n.driver.ScrollDown(); err != nil {
				return fmt.Errorf("%w: %v", ErrAppNotResponding, err)
			}
		}
		return fmt.Errorf("%w: %q after %d scrolls", ErrCollectionNotFound, name, n.maxScrolls)
	})
	if err != nil {
		if errors.Is(err, ErrAppNotResponding) || errors.Is(err, ErrCollectionNotFound) {
			return adb.Element{}, err
		}
		return adb.Element{}, fmt.Errorf("%w: %q: %v", ErrCollectionNotFound, name, err)
	}
	return el, nil
}

// listBooks reads the opened collection view once and returns the entries
// that look like book titles, in hierarchy order.
func (n *Navigator) listBooks(collectionName string) ([]Book, error) {
	elements, err := n.driver.FindAllByText("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAppNotResponding, err)
	}

	var books []Book
	seen := make(map[string]bool)
	for _, el := range elements {
		if !n.looksLikeBookTitle(el.Text, collectionName) {
			continue
		}
		if seen[el.Text] {
			continue
		}
		seen[el.Text] = true
		books = append(books, Book{
			Title:    el.Text,
			Position: len(books),
			Element:  el,
		})
	}
	return books, nil
}

// looksLikeBookTitle filters out view chrome: known action labels, the
// collection's own header, and very short strings (tab captions, counters).
func (n *Navigator) looksLikeBookTitle(text, collectionName string) bool {
	if len(text) <= 5 || text == collectionName {
		return false
	}
	for _, candidates := range n.labels {
		for _, label := range candidates {
			if text == label {
				return false
			}
		}
	}
	return true
}
