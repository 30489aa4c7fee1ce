package automation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/notehammer/internal/adb"
)

// Action is a logical UI action resolved to concrete screen text at
// runtime. Screen labels are locale- and app-version-dependent, so the
// navigation code never contains literal label strings; drift in the UI
// text is a configuration change, not a code change.
type Action string

const (
	ActionHome        Action = "home"
	ActionLibrary     Action = "library"
	ActionCollections Action = "collections"
	ActionNotes       Action = "notes"
	ActionShare       Action = "share"
	ActionCloudTarget Action = "cloud_target"
)

// Labels maps each logical action to candidate screen labels, tried in
// order. Multiple candidates cover locale variants.
type Labels map[Action][]string

// DefaultLabels returns the label table for an English-locale Kindle app
// sharing to OneDrive.
func DefaultLabels() Labels {
	return Labels{
		ActionHome:        {"Home"},
		ActionLibrary:     {"Library"},
		ActionCollections: {"Collections"},
		ActionNotes:       {"Notes", "Notes & Highlights"},
		ActionShare:       {"Share", "Export"},
		ActionCloudTarget: {"OneDrive"},
	}
}

// OverridesFromCSV builds a label table from comma-separated candidate
// lists, for overriding screen text from configuration. Empty values and
// blank entries are skipped.
func OverridesFromCSV(values map[Action]string) Labels {
	overrides := make(Labels)
	for action, csv := range values {
		var candidates []string
		for _, part := range strings.Split(csv, ",") {
			if part = strings.TrimSpace(part); part != "" {
				candidates = append(candidates, part)
			}
		}
		if len(candidates) > 0 {
			overrides[action] = candidates
		}
	}
	return overrides
}

// Resolve locates the screen element for a logical action, trying each
// candidate label in order. Only ErrElementNotFound moves on to the next
// candidate; any other driver failure is returned as is.
func (l Labels) Resolve(action Action, driver adb.Driver, wait time.Duration) (adb.Element, error) {
	candidates := l[action]
	if len(candidates) == 0 {
		return adb.Element{}, fmt.Errorf("%w: no labels configured for action %q", adb.ErrElementNotFound, action)
	}

	for _, label := range candidates {
		el, err := driver.FindByText(label, wait)
		if err == nil {
			return el, nil
		}
		if !errors.Is(err, adb.ErrElementNotFound) {
			return adb.Element{}, err
		}
	}
	return adb.Element{}, fmt.Errorf("%w: action %q (tried %v)", adb.ErrElementNotFound, action, candidates)
}

// Merge overlays non-empty entries from overrides onto the receiver and
// returns the result. The receiver is not modified.
func (l Labels) Merge(overrides Labels) Labels {
	merged := make(Labels, len(l))
	for action, candidates := range l {
		merged[action] = candidates
	}
	for action, candidates := range overrides {
		if len(candidates) > 0 {
			merged[action] = candidates
		}
	}
	return merged
}
