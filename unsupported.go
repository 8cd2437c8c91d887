package thermalprinter

import "context"

// Unsupported is the fallback capability module for hosts without a usable
// Bluetooth stack. Permission checks succeed so callers can probe the
// capability; every device I/O operation fails with
// KindCapabilityUnavailable naming the operation.
type Unsupported struct{}

var _ Printer = Unsupported{}

func (Unsupported) RequestPermissions(ctx context.Context) (bool, error) {
	return true, nil
}

func (Unsupported) PairedDevices(ctx context.Context) ([]Device, error) {
	return nil, errUnavailable("PairedDevices")
}

func (Unsupported) Connect(ctx context.Context, address string) (Device, error) {
	return Device{}, errUnavailable("Connect")
}

func (Unsupported) Disconnect() error {
	return errUnavailable("Disconnect")
}

func (Unsupported) Status() (Device, bool, error) {
	return Device{}, false, errUnavailable("Status")
}

func (Unsupported) PrintRaw(ctx context.Context, data []byte) (int, error) {
	return 0, errUnavailable("PrintRaw")
}

func (Unsupported) PrintText(ctx context.Context, text string) error {
	return errUnavailable("PrintText")
}
