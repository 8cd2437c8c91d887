//go:build linux || windows

package platform

import (
	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
	"github.com/fahrudina/smart-laundry-pos-sub004/rfcomm"
)

func detect(opts ...thermalprinter.Option) thermalprinter.Printer {
	return thermalprinter.NewSession(rfcomm.New(), opts...)
}
