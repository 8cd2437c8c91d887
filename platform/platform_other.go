//go:build !linux && !windows

package platform

import (
	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

func detect(opts ...thermalprinter.Option) thermalprinter.Printer {
	return thermalprinter.Unsupported{}
}
