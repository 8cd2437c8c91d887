// Package bluetooth drives BLE thermal printers that expose the common
// 0x18F0 print service.
package bluetooth

import (
	"context"
	"iter"
	"strings"

	"github.com/kellegous/poop"
	"tinygo.org/x/bluetooth"

	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

var (
	printService = mustParseUUID("000018F0-0000-1000-8000-00805F9B34FB")
	printChar    = mustParseUUID("00002AF1-0000-1000-8000-00805F9B34FB")
)

func mustParseUUID(s string) bluetooth.UUID {
	uuid, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return uuid
}

type Transport struct {
	adapter *bluetooth.Adapter
	opts    Options
}

var _ thermalprinter.Transport = (*Transport)(nil)

func New(adapter *bluetooth.Adapter, opts ...Option) (*Transport, error) {
	o := Options{
		writeChunkSize: DefaultWriteChunkSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := adapter.Enable(); err != nil {
		return nil, poop.Chain(err)
	}
	return &Transport{adapter: adapter, opts: o}, nil
}

// RequestPermissions reports granted unconditionally. On the platforms
// this transport supports, access is implied by the enabled adapter.
func (t *Transport) RequestPermissions(ctx context.Context) (bool, error) {
	return true, nil
}

// PairedDevices is unavailable over BLE; the adapter API exposes no bond
// table. Use Discover to find printers in range.
func (t *Transport) PairedDevices(ctx context.Context) ([]thermalprinter.Device, error) {
	return nil, &thermalprinter.Error{
		Kind: thermalprinter.KindCapabilityUnavailable,
		Op:   "PairedDevices",
	}
}

func isPrinter(result *bluetooth.ScanResult) bool {
	return result.HasServiceUUID(printService)
}

// Discover scans for printers in range until ctx is done or the caller
// stops iterating.
func (t *Transport) Discover(ctx context.Context) iter.Seq2[thermalprinter.Device, error] {
	return func(yield func(thermalprinter.Device, error) bool) {
		seen := make(map[string]bool)

		go func() {
			<-ctx.Done()
			t.adapter.StopScan()
		}()

		if err := t.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !isPrinter(&result) || seen[result.Address.String()] {
				return
			}

			seen[result.Address.String()] = true
			device := thermalprinter.Device{
				Name:    result.LocalName(),
				Address: result.Address.String(),
			}
			if !yield(device, nil) {
				t.adapter.StopScan()
			}
		}); err != nil {
			yield(thermalprinter.Device{}, poop.Chain(err))
		}
	}
}

// Dial scans for the printer with the given address and connects to it.
// The scan runs until the device shows up or ctx is done, so callers must
// bound ctx.
func (t *Transport) Dial(ctx context.Context, address string) (thermalprinter.Conn, error) {
	const op = "Connect"

	target, err := t.find(ctx, address)
	if err != nil {
		return nil, err
	}

	device, err := t.adapter.Connect(target.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, &thermalprinter.Error{Kind: thermalprinter.KindTransportFailure, Op: op, Err: err}
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{printService})
	if err != nil {
		device.Disconnect()
		return nil, &thermalprinter.Error{Kind: thermalprinter.KindTransportFailure, Op: op, Err: err}
	}
	if len(services) != 1 {
		device.Disconnect()
		return nil, &thermalprinter.Error{
			Kind: thermalprinter.KindTransportFailure,
			Op:   op,
			Err:  poop.Newf("expected 1 service, got %d", len(services)),
		}
	}

	characteristics, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{printChar})
	if err != nil {
		device.Disconnect()
		return nil, &thermalprinter.Error{Kind: thermalprinter.KindTransportFailure, Op: op, Err: err}
	}
	if len(characteristics) != 1 {
		device.Disconnect()
		return nil, &thermalprinter.Error{
			Kind: thermalprinter.KindTransportFailure,
			Op:   op,
			Err:  poop.Newf("expected 1 characteristic, got %d", len(characteristics)),
		}
	}

	c := &conn{
		device: thermalprinter.Device{
			Name:    target.LocalName(),
			Address: address,
		},
		dev:   device,
		ch:    characteristics[0],
		chunk: t.opts.writeChunkSize,
	}
	c.alive.Store(true)
	return c, nil
}

func (t *Transport) find(ctx context.Context, address string) (*bluetooth.ScanResult, error) {
	var found *bluetooth.ScanResult

	go func() {
		<-ctx.Done()
		t.adapter.StopScan()
	}()

	if err := t.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		if strings.EqualFold(result.Address.String(), address) {
			r := result
			found = &r
			t.adapter.StopScan()
		}
	}); err != nil {
		return nil, &thermalprinter.Error{
			Kind: thermalprinter.KindTransportFailure,
			Op:   "Connect",
			Err:  err,
		}
	}

	if found == nil {
		return nil, &thermalprinter.Error{
			Kind: thermalprinter.KindInvalidAddress,
			Op:   "Connect",
			Err:  ctx.Err(),
		}
	}
	return found, nil
}
