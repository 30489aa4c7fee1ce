// Package adb drives the UI of an application running on a USB-attached
// Android device. Navigation code depends only on the Driver interface;
// the concrete implementation shells out to the adb binary and discovers
// screen elements by their visible text in a uiautomator hierarchy dump.
package adb

import (
	"errors"
	"time"
)

// ErrElementNotFound is returned when no on-screen element matching the
// requested label appears within the bounded wait.
var ErrElementNotFound = errors.New("ui element not found")

// Element is an actionable screen element, addressed by the center of its
// bounding box.
type Element struct {
	X    int
	Y    int
	Text string
}

// Driver is the automation capability surface the pipeline depends on.
type Driver interface {
	// ListDevices returns the serials of attached automation-capable devices.
	ListDevices() ([]string, error)
	// Use binds all subsequent commands to the device with the given serial.
	Use(serial string)
	// IsConnected reports whether the bound device is still reachable.
	IsConnected() bool

	// StartApp launches the application with the given package name.
	StartApp(pkg string) error
	// FindByText waits up to timeout for an element whose text contains
	// label and returns the first match, or ErrElementNotFound.
	FindByText(label string, timeout time.Duration) (Element, error)
	// FindAllByText returns every currently visible element whose text
	// contains label, in hierarchy order.
	FindAllByText(label string) ([]Element, error)

	Tap(el Element) error
	LongPress(el Element) error
	PressBack() error
	// ScrollDown scrolls the current view towards later content.
	ScrollDown() error
}
