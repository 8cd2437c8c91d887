package thermalprinter

import (
	"bytes"
	"errors"
	"iter"
	"testing"
	"time"
)

var stubPrinter = Device{Name: "Stub Printer", Address: "AA:BB:CC:DD:EE:FF"}

func TestUnsupported(t *testing.T) {
	ctx := t.Context()
	var p Printer = Unsupported{}

	granted, err := p.RequestPermissions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !granted {
		t.Fatal("expected permissions to be granted")
	}

	checks := []struct {
		Name string
		Op   func() error
	}{
		{
			Name: "PairedDevices",
			Op: func() error {
				_, err := p.PairedDevices(ctx)
				return err
			},
		},
		{
			Name: "Connect",
			Op: func() error {
				_, err := p.Connect(ctx, stubPrinter.Address)
				return err
			},
		},
		{
			Name: "Disconnect",
			Op: func() error {
				return p.Disconnect()
			},
		},
		{
			Name: "Status",
			Op: func() error {
				_, _, err := p.Status()
				return err
			},
		},
		{
			Name: "PrintRaw",
			Op: func() error {
				_, err := p.PrintRaw(ctx, []byte{0x1B, '@'})
				return err
			},
		},
		{
			Name: "PrintText",
			Op: func() error {
				return p.PrintText(ctx, "Hello")
			},
		},
	}

	for _, check := range checks {
		t.Run(check.Name, func(t *testing.T) {
			err := check.Op()
			if !HasKind(err, KindCapabilityUnavailable) {
				t.Fatalf("expected CapabilityUnavailable, got %v", err)
			}

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if perr.Op != check.Name {
				t.Fatalf("expected op %q, got %q", check.Name, perr.Op)
			}
		})
	}
}

func TestConnect(t *testing.T) {
	ctx := t.Context()
	session := NewSession(NewLoopback(stubPrinter))

	device, err := session.Connect(ctx, stubPrinter.Address)
	if err != nil {
		t.Fatal(err)
	}
	if device != stubPrinter {
		t.Fatalf("expected %+v, got %+v", stubPrinter, device)
	}

	got, connected, err := session.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !connected {
		t.Fatal("expected to be connected")
	}
	if got.Address != stubPrinter.Address {
		t.Fatalf("expected address %q, got %q", stubPrinter.Address, got.Address)
	}
}

func TestConnectInvalidAddress(t *testing.T) {
	ctx := t.Context()
	session := NewSession(NewLoopback(stubPrinter))

	for _, address := range []string{"", "   "} {
		if _, err := session.Connect(ctx, address); !HasKind(err, KindInvalidAddress) {
			t.Fatalf("expected InvalidAddress for %q, got %v", address, err)
		}
	}
}

func TestConnectUnknownAddress(t *testing.T) {
	ctx := t.Context()
	session := NewSession(NewLoopback(stubPrinter))

	if _, err := session.Connect(ctx, "11:22:33:44:55:66"); !HasKind(err, KindInvalidAddress) {
		t.Fatalf("expected InvalidAddress, got %v", err)
	}

	if _, connected, _ := session.Status(); connected {
		t.Fatal("expected to remain disconnected")
	}
}

func TestConnectReplacesExisting(t *testing.T) {
	ctx := t.Context()

	other := Device{Name: "Backup Printer", Address: "11:22:33:44:55:66"}
	session := NewSession(NewLoopback(stubPrinter, other))

	if _, err := session.Connect(ctx, stubPrinter.Address); err != nil {
		t.Fatal(err)
	}
	if _, err := session.Connect(ctx, other.Address); err != nil {
		t.Fatal(err)
	}

	device, connected, err := session.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !connected || device.Address != other.Address {
		t.Fatalf("expected to be connected to %q, got %+v", other.Address, device)
	}
}

func TestConnectTimeout(t *testing.T) {
	ctx := t.Context()

	lb := NewLoopback(stubPrinter)
	lb.DelayDials(time.Second)

	session := NewSession(lb, WithConnectTimeout(10*time.Millisecond))

	if _, err := session.Connect(ctx, stubPrinter.Address); !HasKind(err, KindTransportFailure) {
		t.Fatalf("expected TransportFailure, got %v", err)
	}
	if _, connected, _ := session.Status(); connected {
		t.Fatal("expected to remain disconnected")
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	ctx := t.Context()
	session := NewSession(NewLoopback(stubPrinter))

	if _, err := session.Connect(ctx, stubPrinter.Address); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := session.Disconnect(); err != nil {
			t.Fatalf("disconnect %d: %v", i, err)
		}
	}

	device, connected, err := session.Status()
	if err != nil {
		t.Fatal(err)
	}
	if connected {
		t.Fatal("expected to be disconnected")
	}
	if device != (Device{}) {
		t.Fatalf("expected no device, got %+v", device)
	}
}

func TestPrintRawNotConnected(t *testing.T) {
	ctx := t.Context()
	session := NewSession(NewLoopback(stubPrinter))

	n, err := session.PrintRaw(ctx, []byte{0x1B, '@'})
	if !HasKind(err, KindNotConnected) {
		t.Fatalf("expected NotConnected, got %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 bytes sent, got %d", n)
	}
}

func TestPrintRaw(t *testing.T) {
	ctx := t.Context()

	lb := NewLoopback(stubPrinter)
	session := NewSession(lb)

	if _, err := session.Connect(ctx, stubPrinter.Address); err != nil {
		t.Fatal(err)
	}

	data := []byte{0x1B, '@', 'H', 'i', 0x0A, 0x1D, 'V', 'B', 0}
	n, err := session.PrintRaw(ctx, data)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("expected %d bytes sent, got %d", len(data), n)
	}
	if got := lb.Written(stubPrinter.Address); !bytes.Equal(got, data) {
		t.Fatalf("expected %v on the wire, got %v", data, got)
	}
}

func TestPrintRawShortWrite(t *testing.T) {
	ctx := t.Context()

	lb := NewLoopback(stubPrinter)
	lb.ShortWrites(3)

	session := NewSession(lb)

	if _, err := session.Connect(ctx, stubPrinter.Address); err != nil {
		t.Fatal(err)
	}

	n, err := session.PrintRaw(ctx, []byte("hello"))
	if !HasKind(err, KindTransportFailure) {
		t.Fatalf("expected TransportFailure, got %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 bytes sent, got %d", n)
	}
}

func TestPrintRawWriteTimeout(t *testing.T) {
	ctx := t.Context()

	lb := NewLoopback(stubPrinter)
	session := NewSession(lb, WithWriteTimeout(10*time.Millisecond))

	if _, err := session.Connect(ctx, stubPrinter.Address); err != nil {
		t.Fatal(err)
	}

	lb.DelayWrites(time.Second)

	if _, err := session.PrintRaw(ctx, []byte("hello")); !HasKind(err, KindTransportFailure) {
		t.Fatalf("expected TransportFailure, got %v", err)
	}

	// An abandoned write tears the session down.
	if _, connected, _ := session.Status(); connected {
		t.Fatal("expected to be disconnected")
	}
}

func TestTransportLoss(t *testing.T) {
	ctx := t.Context()

	lb := NewLoopback(stubPrinter)
	session := NewSession(lb)

	if _, err := session.Connect(ctx, stubPrinter.Address); err != nil {
		t.Fatal(err)
	}

	lb.DropLink(stubPrinter.Address)

	if _, connected, _ := session.Status(); connected {
		t.Fatal("expected loss of connection to surface")
	}
	if _, err := session.PrintRaw(ctx, []byte("hello")); !HasKind(err, KindNotConnected) {
		t.Fatalf("expected NotConnected, got %v", err)
	}
}

func TestPrintText(t *testing.T) {
	ctx := t.Context()

	lb := NewLoopback(stubPrinter)
	session := NewSession(lb)

	if _, err := session.Connect(ctx, stubPrinter.Address); err != nil {
		t.Fatal(err)
	}

	if err := session.PrintText(ctx, "Hello"); err != nil {
		t.Fatal(err)
	}

	expected := []byte{
		0x1B, '@',
		'H', 'e', 'l', 'l', 'o', 0x0A,
		0x1B, 'd', 3,
		0x1D, 'V', 'B', 0,
	}
	if got := lb.Written(stubPrinter.Address); !bytes.Equal(got, expected) {
		t.Fatalf("expected %v on the wire, got %v", expected, got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := t.Context()
	session := NewSession(NewLoopback(stubPrinter))

	device, err := session.Connect(ctx, "AA:BB:CC:DD:EE:FF")
	if err != nil {
		t.Fatal(err)
	}
	if device.Name != "Stub Printer" || device.Address != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("unexpected device: %+v", device)
	}

	if err := session.PrintText(ctx, "Hello"); err != nil {
		t.Fatal(err)
	}

	if err := session.Disconnect(); err != nil {
		t.Fatal(err)
	}

	got, connected, err := session.Status()
	if err != nil {
		t.Fatal(err)
	}
	if connected {
		t.Fatal("expected to be disconnected")
	}
	if got != (Device{}) {
		t.Fatalf("expected no device, got %+v", got)
	}
}

func TestSessionEvents(t *testing.T) {
	ctx := t.Context()

	other := Device{Name: "Backup Printer", Address: "11:22:33:44:55:66"}
	session := NewSession(NewLoopback(stubPrinter, other))

	next, stop := iter.Pull2(
		session.Events().Subscribe(ctx, EventConnected, EventDisconnected),
	)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := session.Connect(ctx, stubPrinter.Address); err != nil {
			t.Error(err)
		}
		if _, err := session.Connect(ctx, other.Address); err != nil {
			t.Error(err)
		}
		if err := session.Disconnect(); err != nil {
			t.Error(err)
		}
	}()

	expected := []Event{
		{Code: EventConnected, Device: stubPrinter},
		{Code: EventDisconnected, Device: stubPrinter},
		{Code: EventConnected, Device: other},
		{Code: EventDisconnected, Device: other},
	}

	for _, want := range expected {
		event, err, ok := next()
		if !ok {
			t.Fatal("event stream ended early")
		}
		if err != nil {
			t.Fatal(err)
		}
		if event != want {
			t.Fatalf("expected %+v, got %+v", want, event)
		}
	}

	<-done
}
