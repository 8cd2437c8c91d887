package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kellegous/poop"

	"github.com/fahrudina/smart-laundry-pos-sub004/platform"
)

func main() {
	if err := run(context.Background()); err != nil {
		poop.HitFan(err)
	}
}

func run(ctx context.Context) error {
	var list bool
	flag.BoolVar(
		&list,
		"list",
		false,
		"list paired devices and exit",
	)
	flag.Parse()

	printer := platform.Detect()

	granted, err := printer.RequestPermissions(ctx)
	if err != nil {
		return poop.Chain(err)
	}
	if !granted {
		return poop.New("bluetooth permission denied")
	}

	if list {
		devices, err := printer.PairedDevices(ctx)
		if err != nil {
			return poop.Chain(err)
		}
		for _, device := range devices {
			fmt.Printf("%s\t%s\n", device.Address, device.Name)
		}
		return nil
	}

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <address> <text>\n", os.Args[0])
		os.Exit(1)
	}

	device, err := printer.Connect(ctx, flag.Arg(0))
	if err != nil {
		return poop.Chain(err)
	}
	defer printer.Disconnect()

	fmt.Printf("connected: %s (%s)\n", device.Name, device.Address)

	if err := printer.PrintText(ctx, flag.Arg(1)); err != nil {
		return poop.Chain(err)
	}

	return nil
}
