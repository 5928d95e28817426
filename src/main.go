package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/jonboulle/clockwork"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"elevsim/src/config"
	"elevsim/src/dispatcher"
	"elevsim/src/elev"
	"elevsim/src/eventlog"
	"elevsim/src/logging"
	"elevsim/src/sim"
	"elevsim/src/telemetry"
)

const eventLogTail = 20

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	envPath := flag.String("env", config.DefaultConfigEnv, "Path to a .env file with ELEVSIM_ overrides")
	flag.Parse()

	if err := run(*configPath, *envPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, envPath string) (err error) {
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return err
	}

	provider, reader := telemetry.Setup()
	defer closeInto(&err, "shut down metrics", func() error { return provider.Shutdown(context.Background()) })
	inst, err := telemetry.New(provider.Meter(telemetry.ScopeName))
	if err != nil {
		return err
	}

	events := eventlog.NewStore(cfg.EventLogSize, clockwork.NewRealClock())
	logger, closer, err := logging.Setup(cfg, os.Stdout, events.Handler(slog.LevelInfo))
	if err != nil {
		return err
	}
	defer closeInto(&err, "close log file", closer.Close)

	fleet, err := elev.NewFleet(cfg, elev.WithLogger(logger), elev.WithInstruments(inst))
	if err != nil {
		return err
	}
	defer elev.CloseAll(fleet)

	disp, err := dispatcher.New(cfg, dispatcher.FromFleet(fleet),
		dispatcher.WithLogger(logger), dispatcher.WithInstruments(inst))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = sim.New(cfg, disp, sim.WithLogger(logger), sim.WithEventLog(events)).Run(ctx)
	stop()
	if err != nil {
		return err
	}

	// A second interrupt skips the drain.
	drainCtx, stopDrain := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopDrain()
	logger.Info("Waiting for elevators to finish their requests")
	if err := elev.WaitAll(drainCtx, fleet); err != nil {
		logger.Warn("Stopped before all requests were served", "error", err)
	}

	printEvents(events)
	return printSummary(reader)
}

// closeInto runs fn and joins its error into *err.
func closeInto(err *error, what string, fn func() error) {
	if closeErr := fn(); closeErr != nil {
		*err = errors.Join(*err, fmt.Errorf("failed to %s: %w", what, closeErr))
	}
}

func printEvents(events *eventlog.Store) {
	entries := events.Entries()
	if len(entries) > eventLogTail {
		entries = entries[:eventLogTail]
	}
	slices.Reverse(entries)

	fmt.Printf("\nLast %d of %d events:\n", len(entries), events.Len())
	for _, e := range entries {
		fmt.Println(" ", e)
	}
}

func printSummary(reader sdkmetric.Reader) error {
	summary, err := telemetry.Summary(context.Background(), reader)
	if err != nil {
		return err
	}
	fmt.Println("\nTotals:")
	for _, name := range []string{
		telemetry.CallsAssignedName,
		telemetry.CallsDroppedName,
		telemetry.FloorsTravelledName,
		telemetry.StopsServedName,
	} {
		fmt.Printf("  %-26s %d\n", name, summary[name])
	}
	return nil
}
