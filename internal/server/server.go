// Package server exposes the demo over HTTP. Every request takes its own
// flag snapshot; only the cached greeting outlives a request.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fakeapp "github.com/Flagsmith/fakeapp-go"
	"github.com/Flagsmith/fakeapp-go/internal/flagsource"
)

type Server struct {
	source          flagsource.Source
	greetings       *fakeapp.MemoizingLookup
	logger          *slog.Logger
	registry        *prometheus.Registry
	rng             fakeapp.Rand
	now             func() time.Time
	shutdownTimeout time.Duration
	flows           *prometheus.CounterVec
}

func New(source flagsource.Source, options ...Option) *Server {
	s := &Server{
		source:          source,
		greetings:       fakeapp.NewMemoizingLookup(),
		rng:             fakeapp.DefaultRand,
		now:             time.Now,
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.flows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fakeapp",
		Name:      "flows_total",
		Help:      "Dispatched flows by route and strategy.",
	}, []string{"route", "flow"})
	s.registry.MustRegister(s.flows)
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, s.accessLog)

	r.Get("/healthz", s.health)
	r.Get("/readyz", s.ready)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/greeting", func(r chi.Router) {
		r.Get("/", s.greeting)
		r.Get("/cached", s.cachedGreeting)
	})
	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", s.checkout)
		r.Get("/eligibility", s.eligibility)
	})
	r.Route("/quantum", func(r chi.Router) {
		r.Get("/optimize", s.optimize)
		r.Post("/process", s.process)
		r.Get("/experiment", s.experiment)
	})
	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("server started", slog.String("addr", addr))

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown failed", slog.Any("error", err))
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return runErr
	}
	s.logger.Info("server stopped")
	return nil
}
