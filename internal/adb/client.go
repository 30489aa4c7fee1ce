package adb

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// dumpPath is where uiautomator writes the hierarchy on the device.
	dumpPath = "/sdcard/notehammer_ui_dump.xml"

	// pollInterval between hierarchy dumps while waiting for an element.
	pollInterval = time.Second

	// tapSettle is the pause after a tap so the UI thread can react.
	tapSettle = 500 * time.Millisecond
)

var screenSizePattern = regexp.MustCompile(`Physical size: (\d+)x(\d+)`)

var _ Driver = (*Client)(nil)

// Client is the adb-backed Driver implementation.
type Client struct {
	serial string

	// screen dimensions, resolved lazily for swipe coordinates
	width  int
	height int
}

// NewClient creates a Client not yet bound to a device.
func NewClient() *Client {
	return &Client{}
}

// WithSerial returns the client bound to a specific device serial.
func (c *Client) WithSerial(serial string) *Client {
	c.serial = serial
	return c
}

// Use binds subsequent commands to the device with the given serial.
func (c *Client) Use(serial string) {
	c.serial = serial
}

// run executes an adb command against the bound device and returns stdout.
func (c *Client) run(args ...string) (string, error) {
	full := args
	if c.serial != "" {
		full = append([]string{"-s", c.serial}, args...)
	}

	out, err := exec.Command("adb", full...).Output()
	if err != nil {
		return "", fmt.Errorf("adb %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ListDevices returns the serials reported by `adb devices` in "device"
// state. Unauthorized or offline devices are not automation-capable and
// are left out.
func (c *Client) ListDevices() ([]string, error) {
	out, err := c.run("devices")
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	var serials []string
	lines := strings.Split(out, "\n")
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == "device" {
			serials = append(serials, fields[0])
		}
	}
	return serials, nil
}

// IsConnected reports whether the bound device still answers.
func (c *Client) IsConnected() bool {
	out, err := c.run("get-state")
	return err == nil && out == "device"
}

// StartApp launches the application with the given package name via the
// activity manager and waits for the app to come up.
func (c *Client) StartApp(pkg string) error {
	if _, err := c.run("shell", "monkey", "-p", pkg, "-c", "android.intent.category.LAUNCHER", "1"); err != nil {
		return fmt.Errorf("failed to start %s: %w", pkg, err)
	}
	time.Sleep(3 * time.Second)
	return nil
}

// dumpHierarchy asks uiautomator for the current screen hierarchy.
func (c *Client) dumpHierarchy() (string, error) {
	if _, err := c.run("shell", "uiautomator", "dump", dumpPath); err != nil {
		return "", fmt.Errorf("failed to dump ui hierarchy: %w", err)
	}
	return c.run("shell", "cat", dumpPath)
}

// FindAllByText returns every visible element whose text contains label.
func (c *Client) FindAllByText(label string) ([]Element, error) {
	dump, err := c.dumpHierarchy()
	if err != nil {
		return nil, err
	}

	var matches []Element
	for _, el := range parseDump(dump) {
		if strings.Contains(el.Text, label) {
			matches = append(matches, el)
		}
	}
	return matches, nil
}

// FindByText polls the hierarchy until an element with the label appears
// or the timeout expires.
func (c *Client) FindByText(label string, timeout time.Duration) (Element, error) {
	deadline := time.Now().Add(timeout)
	for {
		matches, err := c.FindAllByText(label)
		if err != nil {
			return Element{}, err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
		if time.Now().After(deadline) {
			return Element{}, fmt.Errorf("%w: %q after %s", ErrElementNotFound, label, timeout)
		}
		time.Sleep(pollInterval)
	}
}

func (c *Client) Tap(el Element) error {
	if _, err := c.run("shell", "input", "tap", strconv.Itoa(el.X), strconv.Itoa(el.Y)); err != nil {
		return err
	}
	time.Sleep(tapSettle)
	return nil
}

// LongPress holds a touch on the element, opening context menus.
func (c *Client) LongPress(el Element) error {
	x, y := strconv.Itoa(el.X), strconv.Itoa(el.Y)
	if _, err := c.run("shell", "input", "swipe", x, y, x, y, "1000"); err != nil {
		return err
	}
	time.Sleep(tapSettle)
	return nil
}

func (c *Client) PressBack() error {
	if _, err := c.run("shell", "input", "keyevent", "KEYCODE_BACK"); err != nil {
		return err
	}
	time.Sleep(tapSettle)
	return nil
}

// ScrollDown swipes from 70% to 30% of screen height along the center line.
func (c *Client) ScrollDown() error {
	w, h, err := c.screenSize()
	if err != nil {
		return err
	}

	x := strconv.Itoa(w / 2)
	from := strconv.Itoa(h * 7 / 10)
	to := strconv.Itoa(h * 3 / 10)
	if _, err := c.run("shell", "input", "swipe", x, from, x, to, "300"); err != nil {
		return err
	}
	time.Sleep(tapSettle)
	return nil
}

func (c *Client) screenSize() (width, height int, err error) {
	if c.width > 0 && c.height > 0 {
		return c.width, c.height, nil
	}

	out, err := c.run("shell", "wm", "size")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read screen size: %w", err)
	}

	m := screenSizePattern.FindStringSubmatch(out)
	if m == nil {
		return 0, 0, fmt.Errorf("unexpected wm size output: %q", out)
	}

	c.width, _ = strconv.Atoi(m[1])
	c.height, _ = strconv.Atoi(m[2])
	return c.width, c.height, nil
}
