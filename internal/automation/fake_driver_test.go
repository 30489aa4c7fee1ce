package automation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/notehammer/internal/adb"
)

// fakeDriver serves a scripted screen of elements and records every
// interaction.
type fakeDriver struct {
	elements    []adb.Element
	afterScroll []adb.Element

	started     []string
	tapped      []string
	longPressed []string
	backs       int
	scrolls     int

	tapErr error
}

func (f *fakeDriver) ListDevices() ([]string, error) { return []string{"test-device"}, nil }
func (f *fakeDriver) Use(serial string)              {}
func (f *fakeDriver) IsConnected() bool              { return true }

func (f *fakeDriver) StartApp(pkg string) error {
	f.started = append(f.started, pkg)
	return nil
}

func (f *fakeDriver) FindByText(label string, timeout time.Duration) (adb.Element, error) {
	for _, el := range f.elements {
		if strings.Contains(el.Text, label) {
			return el, nil
		}
	}
	return adb.Element{}, fmt.Errorf("%w: %q", adb.ErrElementNotFound, label)
}

func (f *fakeDriver) FindAllByText(label string) ([]adb.Element, error) {
	var matches []adb.Element
	for _, el := range f.elements {
		if strings.Contains(el.Text, label) {
			matches = append(matches, el)
		}
	}
	return matches, nil
}

func (f *fakeDriver) Tap(el adb.Element) error {
	if f.tapErr != nil {
		return f.tapErr
	}
	f.tapped = append(f.tapped, el.Text)
	return nil
}

func (f *fakeDriver) LongPress(el adb.Element) error {
	f.longPressed = append(f.longPressed, el.Text)
	return nil
}

func (f *fakeDriver) PressBack() error {
	f.backs++
	return nil
}

func (f *fakeDriver) ScrollDown() error {
	f.scrolls++
	if f.afterScroll != nil {
		f.elements = f.afterScroll
		f.afterScroll = nil
	}
	return nil
}

func screenOf(texts ...string) []adb.Element {
	elements := make([]adb.Element, len(texts))
	for i, text := range texts {
		elements[i] = adb.Element{X: 100, Y: 100 * (i + 1), Text: text}
	}
	return elements
}
