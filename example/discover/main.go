package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/kellegous/poop"
	"tinygo.org/x/bluetooth"

	thermal_bluetooth "github.com/fahrudina/smart-laundry-pos-sub004/bluetooth"
)

func main() {
	if err := run(context.Background()); err != nil {
		poop.HitFan(err)
	}
}

func run(ctx context.Context) error {
	var timeout time.Duration
	flag.DurationVar(
		&timeout,
		"timeout",
		30*time.Second,
		"how long to scan for printers",
	)
	flag.Parse()

	tx, err := thermal_bluetooth.New(bluetooth.DefaultAdapter)
	if err != nil {
		return poop.Chain(err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for device, err := range tx.Discover(ctx) {
		if err != nil {
			return poop.Chain(err)
		}
		fmt.Printf("%s\t%s\n", device.Address, device.Name)
	}

	return nil
}
