// Package app runs the console demo: greet, branch on quantum_mode and
// process a sample checkout.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	fakeapp "github.com/Flagsmith/fakeapp-go"
	"github.com/Flagsmith/fakeapp-go/internal/flagsource"
)

// DefaultCartTotal is the sample checkout amount.
const DefaultCartTotal = 99.99

type App struct {
	source    flagsource.Source
	logger    *slog.Logger
	out       io.Writer
	rng       fakeapp.Rand
	userName  string
	at        time.Time
	cartTotal float64
}

func New(source flagsource.Source, options ...Option) *App {
	a := &App{
		source:    source,
		out:       os.Stdout,
		cartTotal: DefaultCartTotal,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.rng == nil {
		a.rng = fakeapp.DefaultRand
	}
	return a
}

// Run takes one snapshot and drives every demo step from it.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With(slog.String("run_id", uuid.NewString()))

	flags, err := a.source.Flags(ctx)
	if err != nil {
		return fmt.Errorf("loading flags: %w", err)
	}
	logger.DebugContext(ctx, "snapshot loaded", slog.Int("flags", len(flags.AllFlags())))

	if err := a.greet(flags); err != nil {
		return err
	}
	if err := a.quantum(flags); err != nil {
		return err
	}

	a.printf("\n💳 Processing checkout...\n")
	result, err := fakeapp.ProcessCheckout(flags, a.cartTotal)
	if err != nil {
		return err
	}
	switch result.Flow {
	case fakeapp.FlowCheckoutV2:
		a.printf("  → Using checkout_v2 flow (new experience)\n")
	default:
		a.printf("  → Using legacy checkout flow\n")
	}
	a.printf("Checkout result: %s\n", FormatResult(result))
	logger.InfoContext(ctx, "checkout processed", slog.String("flow", result.Flow), slog.Float64("amount", a.cartTotal))
	return nil
}

func (a *App) greet(flags fakeapp.FlagProvider) error {
	greeting, err := fakeapp.Greeting(flags)
	if err != nil {
		return err
	}
	a.printf("%s\n", greeting)

	if a.userName != "" {
		personalized, err := fakeapp.PersonalizedGreeting(flags, a.userName)
		if err != nil {
			return err
		}
		a.printf("%s\n", personalized)
	}
	if !a.at.IsZero() {
		timed, err := fakeapp.TimeBasedGreeting(flags, a.at.Hour())
		if err != nil {
			return err
		}
		a.printf("%s\n", timed)
	}
	return nil
}

func (a *App) quantum(flags fakeapp.FlagProvider) error {
	experiment, err := fakeapp.RunQuantumExperiment(flags, a.rng)
	if errors.Is(err, fakeapp.ErrQuantumDisabled) {
		a.printf("\n📊 Running in classical mode.\n")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("\n🔬 Quantum Mode is ACTIVE!\n")
	a.printf("  → Initializing quantum simulation...\n")
	a.printf("  → Quantum state collapsed to: %s\n", experiment.State)
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// FormatResult renders a result as "success=.. flow=.. key=value..." with
// payload keys sorted.
func FormatResult(result fakeapp.DispatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "success=%t flow=%s", result.Success, result.Flow)
	keys := maps.Keys(result.Payload)
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, result.Payload[key])
	}
	return b.String()
}
