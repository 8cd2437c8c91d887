package rfcomm

import (
	"strings"

	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

// parsePairedDevices parses `bluetoothctl devices Paired` output. Each
// entry has the form "Device XX:XX:XX:XX:XX:XX Name".
func parsePairedDevices(out string) []thermalprinter.Device {
	var devices []thermalprinter.Device
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Device ") {
			continue
		}

		parts := strings.SplitN(strings.TrimPrefix(line, "Device "), " ", 2)
		if len(parts) != 2 {
			continue
		}

		devices = append(devices, thermalprinter.Device{
			Name:    parts[1],
			Address: parts[0],
		})
	}
	return devices
}
