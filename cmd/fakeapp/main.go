// Command fakeapp demonstrates flag-driven behavior against Flagsmith.
//
// Usage:
//
//	fakeapp run [-name NAME] [-at TIME]
//	fakeapp serve
//	fakeapp version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itlightning/dateparse"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	fakeapp "github.com/Flagsmith/fakeapp-go"
	"github.com/Flagsmith/fakeapp-go/internal/app"
	"github.com/Flagsmith/fakeapp-go/internal/config"
	"github.com/Flagsmith/fakeapp-go/internal/flagsource"
	"github.com/Flagsmith/fakeapp-go/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	command := "run"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "version":
		fmt.Fprintln(stdout, fakeapp.UserAgent())
		return 0
	case "run", "serve":
	default:
		fmt.Fprintf(stderr, "unknown command %q (want run, serve or version)\n", command)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		return report(stderr, err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	if command == "serve" {
		err = serve(ctx, cfg, logger)
	} else {
		err = runOnce(ctx, cfg, logger, args, stdout, stderr)
	}
	if err != nil {
		return report(stderr, err)
	}
	return 0
}

func runOnce(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("name", "", "add a personalized greeting for this user")
	at := fs.String("at", "", "add a time-based greeting for this time, e.g. \"2024-05-01 09:30\"")
	total := fs.Float64("total", app.DefaultCartTotal, "cart total for the sample checkout")
	if err := fs.Parse(args); err != nil {
		return fakeapp.NewInvalidInputError("%v", err)
	}

	options := []app.Option{
		app.WithLogger(logger),
		app.WithOutput(stdout),
		app.WithUserName(*name),
		app.WithCartTotal(*total),
	}
	if *at != "" {
		t, err := dateparse.ParseAny(*at)
		if err != nil {
			return fakeapp.NewInvalidInputError("cannot parse time %q: %v", *at, err)
		}
		options = append(options, app.WithTime(t))
	}

	src, err := newSource(cfg, logger, nil)
	if err != nil {
		return err
	}
	return app.New(src, options...).Run(ctx)
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	src, err := newSource(cfg, logger, flagsource.NewMetrics(registry))
	if err != nil {
		return err
	}

	readyCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if _, err := flagsource.WaitReady(readyCtx, src, logger); err != nil {
		return fmt.Errorf("waiting for flags: %w", err)
	}

	srv := server.New(src,
		server.WithLogger(logger),
		server.WithRegistry(registry),
		server.WithShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)
	return srv.Run(ctx, cfg.HTTP.Addr)
}

// newSource wires the SDK client behind logging, optional metrics and the
// circuit breaker.
func newSource(cfg config.Config, logger *slog.Logger, metrics *flagsource.Metrics) (flagsource.Source, error) {
	client, err := flagsource.NewFlagsmithClient(cfg.Flagsmith)
	if err != nil {
		return nil, err
	}
	mws := []flagsource.Middleware{
		flagsource.Breaker(cfg.Breaker.Failures, cfg.Breaker.Timeout, logger),
	}
	if metrics != nil {
		mws = append(mws, metrics.Instrumented())
	}
	mws = append(mws, flagsource.Logging(logger))
	return flagsource.Chain(flagsource.NewFlagsmith(client), mws...), nil
}

// report prints err for the user. A missing environment key exits cleanly;
// any other error, malformed configuration included, exits 1.
func report(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, config.ErrMissingEnvironmentKey) {
		return 0
	}
	return 1
}
