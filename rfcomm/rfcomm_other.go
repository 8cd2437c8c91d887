//go:build !linux && !windows

package rfcomm

import (
	"context"

	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

func (t *Transport) pairedDevices(ctx context.Context) ([]thermalprinter.Device, error) {
	return nil, &thermalprinter.Error{
		Kind: thermalprinter.KindCapabilityUnavailable,
		Op:   "PairedDevices",
	}
}

func (t *Transport) dial(ctx context.Context, address string) (thermalprinter.Conn, error) {
	return nil, &thermalprinter.Error{
		Kind: thermalprinter.KindCapabilityUnavailable,
		Op:   "Connect",
	}
}
