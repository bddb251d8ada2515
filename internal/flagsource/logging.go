package flagsource

import (
	"context"
	"log/slog"
	"time"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

// Logging returns a Middleware that logs each fetch with its duration.
func Logging(logger *slog.Logger) Middleware {
	logger = logger.WithGroup("flagsmith")
	return func(next Source) Source {
		return SourceFunc(func(ctx context.Context) (*fakeapp.Flags, error) {
			startTime := time.Now()
			flags, err := next.Flags(ctx)

			fetchLogger := logger.With(slog.Duration("duration", time.Since(startTime)))
			if err != nil {
				fetchLogger.ErrorContext(ctx, "fetch failed", slog.Any("error", err))
				return nil, err
			}
			fetchLogger.DebugContext(ctx, "fetched flags", slog.Int("count", len(flags.AllFlags())))
			return flags, nil
		})
	}
}
