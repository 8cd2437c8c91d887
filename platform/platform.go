// Package platform selects the printer capability module for the current
// host, once, at process start.
package platform

import (
	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

// Detect returns the capability module for this platform. Hosts without a
// supported Bluetooth stack get the Unsupported fallback, which declines
// every device I/O operation.
func Detect(opts ...thermalprinter.Option) thermalprinter.Printer {
	return detect(opts...)
}
