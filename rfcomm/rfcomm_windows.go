//go:build windows

package rfcomm

import (
	"context"
	"strings"

	"golang.org/x/sys/windows/registry"

	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

// pairedDevices lists Bluetooth COM ports from the serial device map. A
// paired SPP printer shows up as a BTHMODEM entry.
func (t *Transport) pairedDevices(ctx context.Context) ([]thermalprinter.Device, error) {
	const op = "PairedDevices"

	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `HARDWARE\DEVICEMAP\SERIALCOMM`, registry.READ)
	if err != nil {
		return nil, &thermalprinter.Error{Kind: thermalprinter.KindTransportFailure, Op: op, Err: err}
	}
	defer key.Close()

	names, err := key.ReadValueNames(0)
	if err != nil {
		return nil, &thermalprinter.Error{Kind: thermalprinter.KindTransportFailure, Op: op, Err: err}
	}

	var devices []thermalprinter.Device
	for _, name := range names {
		if !strings.Contains(strings.ToUpper(name), "BTHMODEM") {
			continue
		}

		port, _, err := key.GetStringValue(name)
		if err != nil {
			continue
		}
		devices = append(devices, thermalprinter.Device{
			Name:    name,
			Address: port,
		})
	}
	return devices, nil
}

// dial opens the COM port Windows assigned to the paired printer. The port
// name is the device address on this platform.
func (t *Transport) dial(ctx context.Context, address string) (thermalprinter.Conn, error) {
	if !strings.HasPrefix(strings.ToUpper(address), "COM") {
		return nil, &thermalprinter.Error{Kind: thermalprinter.KindInvalidAddress, Op: "Connect"}
	}

	device := thermalprinter.Device{
		Name:    address,
		Address: address,
	}
	return t.openPort(address, device, nil)
}
