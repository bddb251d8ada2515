package flagsource

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

// Breaker returns a Middleware that stops calling the wrapped Source after
// failures consecutive errors and retries it once timeout has passed.
// While open it fails fast with a ProviderUnavailableError. Cancelled
// contexts do not count as failures.
func Breaker(failures uint32, timeout time.Duration, logger *slog.Logger) Middleware {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "flagsmith",
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return func(next Source) Source {
		return SourceFunc(func(ctx context.Context) (*fakeapp.Flags, error) {
			res, err := cb.Execute(func() (interface{}, error) { return next.Flags(ctx) })
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return nil, fakeapp.NewProviderUnavailableError("flagsmith circuit open", err)
			}
			if err != nil {
				return nil, err
			}
			return res.(*fakeapp.Flags), nil
		})
	}
}
