package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

type Option func(s *Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry sets where request metrics are registered and which registry
// /metrics exposes.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

func WithRand(rng fakeapp.Rand) Option {
	return func(s *Server) {
		s.rng = rng
	}
}

// WithClock sets the clock used when a time-based greeting has no hour.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}
