package app

import (
	"io"
	"log/slog"
	"time"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

type Option func(a *App)

var _ = []Option{
	WithLogger(nil),
	WithOutput(nil),
	WithRand(nil),
	WithUserName(""),
	WithTime(time.Time{}),
	WithCartTotal(0),
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithOutput sets where the demo prints. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

func WithRand(rng fakeapp.Rand) Option {
	return func(a *App) {
		a.rng = rng
	}
}

// WithUserName adds a personalized greeting for name.
func WithUserName(name string) Option {
	return func(a *App) {
		a.userName = name
	}
}

// WithTime adds a time-based greeting for the hour of t.
func WithTime(t time.Time) Option {
	return func(a *App) {
		a.at = t
	}
}

func WithCartTotal(total float64) Option {
	return func(a *App) {
		a.cartTotal = total
	}
}
