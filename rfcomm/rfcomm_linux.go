//go:build linux

package rfcomm

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kellegous/poop"

	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
)

func (t *Transport) pairedDevices(ctx context.Context) ([]thermalprinter.Device, error) {
	out, err := exec.CommandContext(ctx, "bluetoothctl", "devices", "Paired").Output()
	if err != nil {
		return nil, &thermalprinter.Error{
			Kind: thermalprinter.KindTransportFailure,
			Op:   "PairedDevices",
			Err:  err,
		}
	}
	return parsePairedDevices(string(out)), nil
}

// dial binds a free rfcomm device node to the printer's MAC address and
// opens it as a serial port. Opening the node is what triggers the actual
// Bluetooth connection.
func (t *Transport) dial(ctx context.Context, address string) (thermalprinter.Conn, error) {
	const op = "Connect"

	if _, err := net.ParseMAC(address); err != nil {
		return nil, &thermalprinter.Error{Kind: thermalprinter.KindInvalidAddress, Op: op, Err: err}
	}

	node, err := freeNode()
	if err != nil {
		return nil, err
	}

	if out, err := exec.CommandContext(
		ctx,
		"rfcomm", "bind", node, address, fmt.Sprintf("%d", t.opts.channel),
	).CombinedOutput(); err != nil {
		return nil, &thermalprinter.Error{
			Kind: thermalprinter.KindTransportFailure,
			Op:   op,
			Err:  poop.Newf("rfcomm bind: %v: %s", err, strings.TrimSpace(string(out))),
		}
	}

	release := func() {
		exec.Command("rfcomm", "release", node).Run()
	}

	if err := waitForNode(ctx, node); err != nil {
		release()
		return nil, err
	}

	device := thermalprinter.Device{
		Name:    t.resolveName(ctx, address),
		Address: address,
	}
	return t.openPort(node, device, release)
}

// resolveName looks the device's display name up in the paired table. The
// address itself is the fallback.
func (t *Transport) resolveName(ctx context.Context, address string) string {
	devices, err := t.pairedDevices(ctx)
	if err != nil {
		return address
	}
	for _, d := range devices {
		if strings.EqualFold(d.Address, address) {
			return d.Name
		}
	}
	return address
}

func freeNode() (string, error) {
	for i := 0; i < 10; i++ {
		node := fmt.Sprintf("/dev/rfcomm%d", i)
		if _, err := os.Stat(node); os.IsNotExist(err) {
			return node, nil
		}
	}
	return "", &thermalprinter.Error{
		Kind: thermalprinter.KindTransportFailure,
		Op:   "Connect",
		Err:  poop.New("no free rfcomm device nodes"),
	}
}

func waitForNode(ctx context.Context, node string) error {
	for {
		if _, err := os.Stat(node); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return &thermalprinter.Error{
				Kind: thermalprinter.KindTransportFailure,
				Op:   "Connect",
				Err:  ctx.Err(),
			}
		case <-time.After(100 * time.Millisecond):
		}
	}
}
