package device

import (
	"errors"
	"testing"
	"time"

	"github.com/mrlokans/notehammer/internal/adb"
)

// fakeDriver records the serial it was bound to.
type fakeDriver struct {
	devices   []string
	listErr   error
	connected bool
	usedWith  string
}

func (f *fakeDriver) ListDevices() ([]string, error)       { return f.devices, f.listErr }
func (f *fakeDriver) Use(serial string)                    { f.usedWith = serial }
func (f *fakeDriver) IsConnected() bool                    { return f.connected }
func (f *fakeDriver) StartApp(pkg string) error            { return nil }
func (f *fakeDriver) Tap(el adb.Element) error             { return nil }
func (f *fakeDriver) LongPress(el adb.Element) error       { return nil }
func (f *fakeDriver) PressBack() error                     { return nil }
func (f *fakeDriver) ScrollDown() error                    { return nil }
func (f *fakeDriver) FindByText(label string, timeout time.Duration) (adb.Element, error) {
	return adb.Element{}, adb.ErrElementNotFound
}
func (f *fakeDriver) FindAllByText(label string) ([]adb.Element, error) {
	return nil, nil
}

func TestConnect_SingleDevice(t *testing.T) {
	driver := &fakeDriver{devices: []string{"emulator-5554"}, connected: true}

	session, err := Connect(driver, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Serial != "emulator-5554" {
		t.Errorf("unexpected serial: %s", session.Serial)
	}
	if driver.usedWith != "emulator-5554" {
		t.Errorf("driver not bound to the device: %q", driver.usedWith)
	}
}

func TestConnect_NoDevices(t *testing.T) {
	driver := &fakeDriver{}

	_, err := Connect(driver, "")
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
}

func TestConnect_MultipleDevicesWithoutDesignation(t *testing.T) {
	driver := &fakeDriver{devices: []string{"a", "b"}, connected: true}

	_, err := Connect(driver, "")
	if !errors.Is(err, ErrAmbiguousDevice) {
		t.Errorf("expected ErrAmbiguousDevice, got %v", err)
	}
}

func TestConnect_DesignatedSerial(t *testing.T) {
	driver := &fakeDriver{devices: []string{"a", "b"}, connected: true}

	session, err := Connect(driver, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Serial != "b" {
		t.Errorf("unexpected serial: %s", session.Serial)
	}
}

func TestConnect_DesignatedSerialNotAttached(t *testing.T) {
	driver := &fakeDriver{devices: []string{"a"}, connected: true}

	_, err := Connect(driver, "missing")
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
}

func TestConnect_DeviceNotAnswering(t *testing.T) {
	driver := &fakeDriver{devices: []string{"a"}, connected: false}

	_, err := Connect(driver, "")
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
}

func TestSession_CloseIdempotent(t *testing.T) {
	driver := &fakeDriver{devices: []string{"a"}, connected: true}

	session, err := Connect(driver, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session.Close()
	session.Close()
}
