package thermalprinter

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/kellegous/poop"

	"github.com/fahrudina/smart-laundry-pos-sub004/escpos"
)

const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
)

type Options struct {
	connectTimeout time.Duration
	writeTimeout   time.Duration
	encodeText     func(string) []byte
}

type Option func(*Options)

// WithConnectTimeout bounds how long Connect waits for the transport to
// establish a link.
func WithConnectTimeout(d time.Duration) Option {
	return func(opts *Options) {
		opts.connectTimeout = d
	}
}

// WithWriteTimeout bounds how long PrintRaw and PrintText wait for the
// transport to accept the full payload.
func WithWriteTimeout(d time.Duration) Option {
	return func(opts *Options) {
		opts.writeTimeout = d
	}
}

// WithTextEncoder replaces the encoder PrintText uses to turn text into
// the device's native command format. The default produces ESC/POS.
func WithTextEncoder(fn func(string) []byte) Option {
	return func(opts *Options) {
		opts.encodeText = fn
	}
}

// Session mediates all interaction with one physical printer over a
// host-specific Transport. Operations on the same session are serialized;
// concurrent callers queue rather than interleave on the wireless link.
type Session struct {
	tx     Transport
	opts   Options
	events *EventHub

	mu   sync.Mutex
	conn Conn
}

var _ Printer = (*Session)(nil)

func NewSession(tx Transport, opts ...Option) *Session {
	o := Options{
		connectTimeout: DefaultConnectTimeout,
		writeTimeout:   DefaultWriteTimeout,
		encodeText:     escpos.EncodeText,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		tx:     tx,
		opts:   o,
		events: NewEventHub(),
	}
}

// Events returns the hub publishing this session's state transitions.
func (s *Session) Events() *EventHub {
	return s.events
}

func (s *Session) RequestPermissions(ctx context.Context) (bool, error) {
	granted, err := s.tx.RequestPermissions(ctx)
	if err != nil {
		return false, poop.Chain(err)
	}
	return granted, nil
}

func (s *Session) PairedDevices(ctx context.Context) ([]Device, error) {
	devices, err := s.tx.PairedDevices(ctx)
	if err != nil {
		return nil, poop.Chain(err)
	}
	return devices, nil
}

// Connect establishes a session with the printer at address. An existing
// session is torn down first, the same way the original host plugin
// re-points at a new device. Dialing is bounded by the connect timeout;
// an abandoned dial releases the half-open link.
func (s *Session) Connect(ctx context.Context, address string) (Device, error) {
	const op = "Connect"

	address = strings.TrimSpace(address)
	if address == "" {
		return Device{}, &Error{Kind: KindInvalidAddress, Op: op}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dropLocked(); err != nil {
		return Device{}, poop.Chain(err)
	}

	dctx, cancel := context.WithTimeout(ctx, s.opts.connectTimeout)
	defer cancel()

	type result struct {
		conn Conn
		err  error
	}
	ch := make(chan result)
	go func() {
		conn, err := s.tx.Dial(dctx, address)
		select {
		case ch <- result{conn: conn, err: err}:
		case <-dctx.Done():
			if conn != nil {
				conn.Close()
			}
		}
	}()

	select {
	case <-dctx.Done():
		return Device{}, &Error{Kind: KindTransportFailure, Op: op, Err: dctx.Err()}
	case res := <-ch:
		if res.err != nil {
			return Device{}, poop.Chain(res.err)
		}
		s.conn = res.conn
		s.events.Publish(Event{Code: EventConnected, Device: res.conn.Device()})
		return res.conn.Device(), nil
	}
}

// Disconnect tears down the active session. Calling it with no session is
// not an error.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropLocked()
}

// dropLocked closes the active connection, if any. Callers must hold mu.
func (s *Session) dropLocked() error {
	if s.conn == nil {
		return nil
	}

	conn := s.conn
	s.conn = nil
	err := conn.Close()
	s.events.Publish(Event{Code: EventDisconnected, Device: conn.Device()})

	if err != nil {
		return &Error{Kind: KindTransportFailure, Op: "Disconnect", Err: err}
	}
	return nil
}

// Status reports whether a session is active. A link the transport has
// already lost counts as disconnected and is dropped here.
func (s *Session) Status() (Device, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return Device{}, false, nil
	}
	if !s.conn.Alive() {
		_ = s.dropLocked()
		return Device{}, false, nil
	}
	return s.conn.Device(), true, nil
}

func (s *Session) PrintRaw(ctx context.Context, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(ctx, "PrintRaw", data)
}

func (s *Session) PrintText(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.writeLocked(ctx, "PrintText", s.opts.encodeText(text))
	return err
}

func (s *Session) writeLocked(ctx context.Context, op string, data []byte) (int, error) {
	conn := s.conn
	if conn == nil {
		return 0, &Error{Kind: KindNotConnected, Op: op}
	}
	if !conn.Alive() {
		_ = s.dropLocked()
		return 0, &Error{Kind: KindNotConnected, Op: op}
	}

	wctx, cancel := context.WithTimeout(ctx, s.opts.writeTimeout)
	defer cancel()

	type result struct {
		n   int
		err error
	}
	ch := make(chan result)
	go func() {
		n, err := conn.Write(data)
		select {
		case ch <- result{n: n, err: err}:
		case <-wctx.Done():
		}
	}()

	select {
	case <-wctx.Done():
		// A write abandoned mid-stream leaves the link in an unknown
		// state, so the session is torn down rather than reused.
		_ = s.dropLocked()
		return 0, &Error{Kind: KindTransportFailure, Op: op, Err: wctx.Err()}
	case res := <-ch:
		if res.err != nil {
			return res.n, &Error{Kind: KindTransportFailure, Op: op, Err: res.err}
		}
		if res.n != len(data) {
			return res.n, &Error{Kind: KindTransportFailure, Op: op, Err: io.ErrShortWrite}
		}
		return res.n, nil
	}
}
