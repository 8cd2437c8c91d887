package bluetooth

import (
	"sync/atomic"

	"tinygo.org/x/bluetooth"

	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

type conn struct {
	device thermalprinter.Device
	dev    bluetooth.Device
	ch     bluetooth.DeviceCharacteristic
	chunk  int
	alive  atomic.Bool
}

var _ thermalprinter.Conn = (*conn)(nil)

// Write sends p in chunks no larger than the configured write size. BLE
// characteristics reject writes beyond the negotiated ATT payload.
func (c *conn) Write(p []byte) (int, error) {
	var sent int
	for _, chunk := range split(p, c.chunk) {
		if _, err := c.ch.Write(chunk); err != nil {
			c.alive.Store(false)
			return sent, err
		}
		sent += len(chunk)
	}
	return sent, nil
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
	return c.dev.Disconnect()
}

func split(p []byte, size int) [][]byte {
	var chunks [][]byte
	for len(p) > 0 {
		n := min(len(p), size)
		chunks = append(chunks, p[:n])
		p = p[n:]
	}
	return chunks
}
