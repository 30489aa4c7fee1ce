package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/notehammer/internal/adb"
	"github.com/mrlokans/notehammer/internal/device"
)

// DeviceCheckCommand verifies that a usable automation device is attached
// before an actual run is attempted.
type DeviceCheckCommand struct {
	Serial string
}

func NewDeviceCheckCommand() *DeviceCheckCommand {
	return &DeviceCheckCommand{}
}

func (cmd *DeviceCheckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("device-check", flag.ExitOnError)

	fs.StringVar(&cmd.Serial, "serial", "", "ADB serial to check (defaults to the only attached one)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s device-check [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List attached devices and verify one can be used for automation.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *DeviceCheckCommand) Run() error {
	driver := adb.NewClient()

	serials, err := driver.ListDevices()
	if err != nil {
		return fmt.Errorf("failed to query attached devices: %w", err)
	}

	fmt.Printf("Attached devices: %d\n", len(serials))
	for _, serial := range serials {
		fmt.Printf("  %s\n", serial)
	}

	session, err := device.Connect(driver, cmd.Serial)
	if err != nil {
		return err
	}
	defer session.Close()

	fmt.Printf("\nDevice %s is ready for automation.\n", session.Serial)
	return nil
}
