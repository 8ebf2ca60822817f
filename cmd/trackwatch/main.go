// README: Terminal watcher; tracks one order and prints every view as a JSON line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ordertrack/internal/app"
	"ordertrack/internal/config"
	"ordertrack/internal/infra"
	"ordertrack/internal/modules/tracking"
	"ordertrack/internal/types"
)

func main() {
	orderID := flag.String("order", "", "order id to track")
	confirm := flag.Bool("confirm", false, "confirm receipt once the order awaits confirmation")
	frames := flag.Bool("frames", false, "print animation frames too")
	flag.Parse()
	if *orderID == "" {
		fmt.Fprintln(os.Stderr, "usage: trackwatch -order <id> [-confirm] [-frames]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	logger := infra.NewLogger("trackwatch", cfg.LogLevel)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Error("config_invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("wiring_failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := run(ctx, a, types.ID(*orderID), *confirm, *frames); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("trackwatch_failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, id types.ID, confirm, frames bool) error {
	s := tracking.NewSession(a.Deps, a.Config)
	views, cancel := s.Subscribe()
	defer cancel()
	if err := s.Start(ctx, id); err != nil {
		return err
	}
	defer s.Stop()

	enc := json.NewEncoder(os.Stdout)
	var last summary
	confirmed := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-views:
			if !ok {
				return nil
			}
			if cur := summarize(v); frames || cur != last {
				last = cur
				if err := enc.Encode(v); err != nil {
					return err
				}
			}
			if confirm && !confirmed && v.Phase == tracking.PhaseAwaitingConfirmation {
				confirmed = true
				if err := s.ConfirmReceipt(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "confirm receipt: %v\n", err)
				}
			}
			if v.Phase == tracking.PhaseTerminal {
				return nil
			}
		}
	}
}

// summary holds the fields that change outside animation frames.
type summary struct {
	phase      tracking.Phase
	stage      string
	connection string
	degraded   bool
	target     types.Point
	routeAt    int64
	eta        string
}

func summarize(v tracking.View) summary {
	sm := summary{
		phase:      v.Phase,
		stage:      string(v.Stage),
		connection: string(v.Connection),
		degraded:   v.Degraded,
	}
	if v.Target != nil {
		sm.target = v.Target.Point
	}
	if v.Route != nil {
		sm.routeAt = v.Route.ComputedAt.UnixNano()
	}
	if v.ETA != nil {
		sm.eta = v.ETA.Text
	}
	return sm
}
