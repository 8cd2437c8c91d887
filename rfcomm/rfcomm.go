// Package rfcomm drives classic Bluetooth SPP thermal printers through the
// host's RFCOMM plumbing: bluez device nodes on Linux, virtual COM ports on
// Windows. Other platforms report the capability as unavailable.
package rfcomm

import (
	"context"
	"sync/atomic"

	"go.bug.st/serial"

	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

type Transport struct {
	opts Options
}

var _ thermalprinter.Transport = (*Transport)(nil)

func New(opts ...Option) *Transport {
	o := Options{
		channel:  DefaultChannel,
		baudRate: DefaultBaudRate,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Transport{opts: o}
}

// RequestPermissions reports granted unconditionally; desktop hosts have
// no runtime permission prompt for Bluetooth serial ports.
func (t *Transport) RequestPermissions(ctx context.Context) (bool, error) {
	return true, nil
}

func (t *Transport) PairedDevices(ctx context.Context) ([]thermalprinter.Device, error) {
	return t.pairedDevices(ctx)
}

func (t *Transport) Dial(ctx context.Context, address string) (thermalprinter.Conn, error) {
	return t.dial(ctx, address)
}

// openPort opens the serial device node backing the printer link. release,
// if non-nil, runs after the port closes to give back OS resources.
func (t *Transport) openPort(path string, device thermalprinter.Device, release func()) (thermalprinter.Conn, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: t.opts.baudRate,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	})
	if err != nil {
		if release != nil {
			release()
		}
		return nil, &thermalprinter.Error{
			Kind: thermalprinter.KindTransportFailure,
			Op:   "Connect",
			Err:  err,
		}
	}

	c := &conn{
		port:    port,
		device:  device,
		release: release,
	}
	c.alive.Store(true)
	return c, nil
}

type conn struct {
	port    serial.Port
	device  thermalprinter.Device
	release func()
	alive   atomic.Bool
}

var _ thermalprinter.Conn = (*conn)(nil)

func (c *conn) Write(p []byte) (int, error) {
	n, err := c.port.Write(p)
	if err != nil {
		c.alive.Store(false)
	}
	return n, err
}

func (c *conn) Device() thermalprinter.Device {
	return c.device
}

func (c *conn) Alive() bool {
	return c.alive.Load()
}

func (c *conn) Close() error {
	if !c.alive.CompareAndSwap(true, false) {
		return nil
	}
	err := c.port.Close()
	if c.release != nil {
		c.release()
	}
	return err
}
