package thermalprinter

import (
	"context"
	"io"
)

// Device describes a printer reachable over the host's Bluetooth stack.
// Address is the stable identifier used for Connect; Name is informational
// and not guaranteed to be unique.
type Device struct {
	Name    string
	Address string
}

// Printer is the capability module behind a print surface in the host
// application. A Session backed by a platform Transport implements it for
// hosts with a usable Bluetooth stack; Unsupported implements it
// everywhere else. Callers must treat a KindCapabilityUnavailable failure
// as "disable printing here" rather than a crash.
type Printer interface {
	// RequestPermissions asks the host platform for permission to use the
	// wireless transport. On platforms without a runtime permission model
	// it reports granted without prompting.
	RequestPermissions(ctx context.Context) (bool, error)

	// PairedDevices returns the devices already paired at the operating
	// system level. It is not a live scan.
	PairedDevices(ctx context.Context) ([]Device, error)

	// Connect establishes a session with the printer at address and
	// returns the resolved device. Connecting while a session is active
	// replaces the existing session.
	Connect(ctx context.Context, address string) (Device, error)

	// Disconnect tears down the active session. It is idempotent.
	Disconnect() error

	// Status reports whether a session is active and, if so, for which
	// device.
	Status() (Device, bool, error)

	// PrintRaw transmits a fully formatted command stream (e.g. ESC/POS)
	// to the printer and returns the number of bytes sent. A partial
	// write is a failure, not a partial success.
	PrintRaw(ctx context.Context, data []byte) (int, error)

	// PrintText encodes text as a standalone print job and transmits it.
	PrintText(ctx context.Context, text string) error
}

// Transport is the host-specific backend a Session drives: permission
// acquisition, paired-device enumeration and dialing.
type Transport interface {
	RequestPermissions(ctx context.Context) (bool, error)
	PairedDevices(ctx context.Context) ([]Device, error)
	Dial(ctx context.Context, address string) (Conn, error)
}

// Conn is one live link to a printer. Write is not safe for concurrent
// use; the owning Session serializes access to it.
type Conn interface {
	io.Writer
	Device() Device
	Alive() bool
	Close() error
}
