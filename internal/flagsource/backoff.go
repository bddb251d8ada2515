package flagsource

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 30 * time.Second
)

// backoff handles exponential backoff with jitter
type backoff struct {
	current time.Duration
}

func newBackoff() *backoff {
	return &backoff{
		current: initialBackoff,
	}
}

// next returns the next backoff duration and updates the current backoff
func (b *backoff) next() time.Duration {
	// up to 50% jitter on top of the current step
	backoff := b.current + rand.N(b.current/2+1)

	if b.current < maxBackoff {
		b.current = min(b.current*2, maxBackoff)
	}

	return backoff
}

func (b *backoff) reset() {
	b.current = initialBackoff
}

// wait waits for the current backoff time, or until ctx is done
func (b *backoff) wait(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(b.next()):
	}
}

// WaitReady fetches from src until a snapshot is returned or ctx ends,
// backing off between attempts. It returns the first snapshot.
func WaitReady(ctx context.Context, src Source, logger *slog.Logger) (*fakeapp.Flags, error) {
	b := newBackoff()
	for attempt := 1; ; attempt++ {
		flags, err := src.Flags(ctx)
		if err == nil {
			return flags, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		logger.WarnContext(ctx, "flags not ready", slog.Int("attempt", attempt), slog.Any("error", err))
		b.wait(ctx)
		if ctx.Err() != nil {
			return nil, err
		}
	}
}
