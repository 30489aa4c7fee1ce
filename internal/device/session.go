// Package device establishes the automation session with exactly one
// attached device. Ambiguity is a configuration error surfaced to the
// caller, never resolved by picking a device silently.
package device

import (
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/notehammer/internal/adb"
)

var (
	// ErrNoDevice means no automation-capable device is attached, or the
	// designated serial is not among the attached devices.
	ErrNoDevice = errors.New("no automation-capable device found")

	// ErrAmbiguousDevice means several devices are attached and none was
	// explicitly designated.
	ErrAmbiguousDevice = errors.New("multiple devices attached, designate one with a serial")
)

// Session owns the device handle for the duration of a run.
type Session struct {
	Driver adb.Driver
	Serial string

	closed bool
}

// Connect verifies connectivity and binds the driver to exactly one device.
// If serial is empty the single attached device is used; more than one
// attached device without a designation fails with ErrAmbiguousDevice.
func Connect(driver adb.Driver, serial string) (*Session, error) {
	serials, err := driver.ListDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to query attached devices: %w", err)
	}

	switch {
	case len(serials) == 0:
		return nil, ErrNoDevice
	case serial == "" && len(serials) > 1:
		return nil, fmt.Errorf("%w (attached: %v)", ErrAmbiguousDevice, serials)
	case serial == "":
		serial = serials[0]
	default:
		found := false
		for _, s := range serials {
			if s == serial {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: serial %q not attached (attached: %v)", ErrNoDevice, serial, serials)
		}
	}

	driver.Use(serial)
	if !driver.IsConnected() {
		return nil, fmt.Errorf("%w: device %q did not answer", ErrNoDevice, serial)
	}

	log.Printf("Connected to device %s", serial)
	return &Session{Driver: driver, Serial: serial}, nil
}

// Close releases the session. Idempotent; the orchestrator defers it so the
// handle is released at run end regardless of outcome.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	log.Printf("Released device %s", s.Serial)
}
