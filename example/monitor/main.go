package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kellegous/poop"
	"golang.org/x/sync/errgroup"

	thermalprinter "github.com/fahrudina/smart-laundry-pos-sub004"
	"github.com/fahrudina/smart-laundry-pos-sub004/rfcomm"
)

func main() {
	if err := run(context.Background()); err != nil {
		poop.HitFan(err)
	}
}

func run(ctx context.Context) error {
	var interval time.Duration
	flag.DurationVar(
		&interval,
		"interval",
		10*time.Second,
		"how often to print a status line",
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s <address>\n", os.Args[0])
		os.Exit(1)
	}

	session := thermalprinter.NewSession(rfcomm.New())
	defer session.Events().Shutdown()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events := session.Events().Subscribe(
			ctx,
			thermalprinter.EventConnected,
			thermalprinter.EventDisconnected,
		)
		for event, err := range events {
			if errors.Is(err, context.Canceled) || errors.Is(err, thermalprinter.ErrShutdown) {
				return nil
			} else if err != nil {
				return poop.Chain(err)
			}
			fmt.Printf("%s: %s (%s)\n", event.Code, event.Device.Name, event.Device.Address)
		}
		return nil
	})

	g.Go(func() error {
		defer session.Disconnect()

		if _, err := session.Connect(ctx, flag.Arg(0)); err != nil {
			return poop.Chain(err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case t := <-ticker.C:
				line := fmt.Sprintf("status %s", t.Format(time.RFC3339))
				if err := session.PrintText(ctx, line); err != nil {
					return poop.Chain(err)
				}
			}
		}
	})

	return g.Wait()
}
