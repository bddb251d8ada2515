package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fakeapp "github.com/Flagsmith/fakeapp-go"
	"github.com/Flagsmith/fakeapp-go/internal/app"
	"github.com/Flagsmith/fakeapp-go/internal/flagsource"
)

type firstRand struct{}

func (firstRand) IntN(int) int     { return 0 }
func (firstRand) Float64() float64 { return 0.5 }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunClassicalLegacy(t *testing.T) {
	// Given
	var out bytes.Buffer
	a := app.New(flagsource.Static(fakeapp.NewFlags(nil)), app.WithOutput(&out), app.WithLogger(quietLogger()))

	// When
	err := a.Run(context.Background())

	// Then
	require.NoError(t, err)
	expected := "Welcome to Fake App!\n" +
		"\n📊 Running in classical mode.\n" +
		"\n💳 Processing checkout...\n" +
		"  → Using legacy checkout flow\n" +
		"Checkout result: success=true flow=legacy amount=99.99 features=[basic_checkout]\n"
	assert.Equal(t, expected, out.String())
}

func TestRunQuantumV2WithGreetings(t *testing.T) {
	// Given
	var out bytes.Buffer
	flags := fakeapp.NewFlags(map[string]fakeapp.Flag{
		fakeapp.FlagCheckoutV2:  fakeapp.Enabled(),
		fakeapp.FlagQuantumMode: fakeapp.Enabled(),
		fakeapp.FlagGreeting:    fakeapp.WithValue(true, "Hi there"),
	})
	a := app.New(flagsource.Static(flags),
		app.WithOutput(&out),
		app.WithLogger(quietLogger()),
		app.WithRand(firstRand{}),
		app.WithUserName("Ada"),
		app.WithTime(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)),
	)

	// When
	err := a.Run(context.Background())

	// Then
	require.NoError(t, err)
	expected := "🎉 Hi there\n" +
		"Hi there, Ada!\n" +
		"Good morning! Hi there\n" +
		"\n🔬 Quantum Mode is ACTIVE!\n" +
		"  → Initializing quantum simulation...\n" +
		"  → Quantum state collapsed to: spin_up\n" +
		"\n💳 Processing checkout...\n" +
		"  → Using checkout_v2 flow (new experience)\n" +
		"Checkout result: success=true flow=v2 amount=99.99 features=[express_checkout real_time_validation saved_cards]\n"
	assert.Equal(t, expected, out.String())
}

func TestRunPropagatesSourceError(t *testing.T) {
	// Given
	down := errors.New("down")
	var out bytes.Buffer
	src := flagsource.SourceFunc(func(context.Context) (*fakeapp.Flags, error) {
		return nil, fakeapp.NewProviderUnavailableError("fetching environment flags", down)
	})
	a := app.New(src, app.WithOutput(&out), app.WithLogger(quietLogger()))

	// When
	err := a.Run(context.Background())

	// Then
	assert.ErrorIs(t, err, down)
	var unavailable *fakeapp.ProviderUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Empty(t, out.String(), "no flag-dependent work on failure")
}

func TestFormatResultSortsPayloadKeys(t *testing.T) {
	got := app.FormatResult(fakeapp.DispatchResult{
		Success: true,
		Flow:    "quantum",
		Payload: map[string]any{"solution_quality": 0.95, "algorithm": "quantum_annealing", "iterations": 300},
	})

	assert.Equal(t, "success=true flow=quantum algorithm=quantum_annealing iterations=300 solution_quality=0.95", got)
}
