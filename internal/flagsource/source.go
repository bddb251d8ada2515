// Package flagsource fetches flag snapshots from Flagsmith and decorates the
// fetch with logging, metrics and a circuit breaker.
package flagsource

import (
	"context"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

// Source returns a fresh point-in-time snapshot on every call.
type Source interface {
	Flags(ctx context.Context) (*fakeapp.Flags, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) (*fakeapp.Flags, error)

func (f SourceFunc) Flags(ctx context.Context) (*fakeapp.Flags, error) {
	return f(ctx)
}

// Static always returns the same snapshot.
func Static(flags *fakeapp.Flags) Source {
	return SourceFunc(func(context.Context) (*fakeapp.Flags, error) {
		return flags, nil
	})
}

// Middleware decorates a Source.
type Middleware func(Source) Source

// Chain applies middlewares so that the first one is outermost.
func Chain(src Source, mws ...Middleware) Source {
	for i := len(mws) - 1; i >= 0; i-- {
		src = mws[i](src)
	}
	return src
}
