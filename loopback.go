package thermalprinter

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Loopback is an in-memory Transport. It backs the tests in this package
// and lets print surfaces be exercised on development machines with no
// printer attached.
type Loopback struct {
	mu         sync.Mutex
	devices    []Device
	dialErr    error
	writeErr   error
	dialDelay  time.Duration
	writeDelay time.Duration
	shortWrite int
	conns      map[string]*loopbackConn
	written    map[string][]byte
}

var _ Transport = (*Loopback)(nil)

func NewLoopback(devices ...Device) *Loopback {
	return &Loopback{
		devices: devices,
		conns:   make(map[string]*loopbackConn),
		written: make(map[string][]byte),
	}
}

func (l *Loopback) RequestPermissions(ctx context.Context) (bool, error) {
	return true, nil
}

func (l *Loopback) PairedDevices(ctx context.Context) ([]Device, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.devices), nil
}

func (l *Loopback) Dial(ctx context.Context, address string) (Conn, error) {
	l.mu.Lock()
	delay := l.dialDelay
	dialErr := l.dialErr
	l.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, &Error{Kind: KindTransportFailure, Op: "Connect", Err: ctx.Err()}
		case <-time.After(delay):
		}
	}
	if dialErr != nil {
		return nil, dialErr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, d := range l.devices {
		if strings.EqualFold(d.Address, address) {
			conn := &loopbackConn{
				lb:     l,
				device: Device{Name: d.Name, Address: address},
			}
			conn.alive.Store(true)
			l.conns[address] = conn
			return conn, nil
		}
	}
	return nil, &Error{Kind: KindInvalidAddress, Op: "Connect"}
}

// FailDials makes subsequent Dial calls fail with err.
func (l *Loopback) FailDials(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dialErr = err
}

// DelayDials makes subsequent Dial calls sleep for d before completing.
func (l *Loopback) DelayDials(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dialDelay = d
}

// FailWrites makes subsequent writes fail with err.
func (l *Loopback) FailWrites(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeErr = err
}

// DelayWrites makes subsequent writes sleep for d before completing.
func (l *Loopback) DelayWrites(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeDelay = d
}

// ShortWrites caps how many bytes each write accepts.
func (l *Loopback) ShortWrites(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shortWrite = n
}

// DropLink simulates transport-detected loss of the connection to address.
func (l *Loopback) DropLink(address string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if conn, ok := l.conns[address]; ok {
		conn.alive.Store(false)
	}
}

// Written returns everything written to the device at address so far.
func (l *Loopback) Written(address string) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.written[address])
}

type loopbackConn struct {
	lb     *Loopback
	device Device
	alive  atomic.Bool
}

var _ Conn = (*loopbackConn)(nil)

func (c *loopbackConn) Write(p []byte) (int, error) {
	c.lb.mu.Lock()
	delay := c.lb.writeDelay
	werr := c.lb.writeErr
	short := c.lb.shortWrite
	c.lb.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if !c.alive.Load() {
		return 0, io.ErrClosedPipe
	}
	if werr != nil {
		return 0, werr
	}

	n := len(p)
	if short > 0 && short < n {
		n = short
	}

	c.lb.mu.Lock()
	c.lb.written[c.device.Address] = append(c.lb.written[c.device.Address], p[:n]...)
	c.lb.mu.Unlock()
	return n, nil
}

func (c *loopbackConn) Device() Device {
	return c.device
}

func (c *loopbackConn) Alive() bool {
	return c.alive.Load()
}

func (c *loopbackConn) Close() error {
	c.alive.Store(false)
	return nil
}
