package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

const defaultLocale = "en"

// maxProblemSize keeps size*1000 iterations well inside int range.
const maxProblemSize = 1_000_000

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "version": fakeapp.Version()})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if _, err := s.source.Flags(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) greeting(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := fakeapp.ModePlain
	if raw := q.Get("mode"); raw != "" {
		var err error
		if mode, err = fakeapp.ParseMode(raw); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	params := fakeapp.Params{Name: q.Get("name"), Hour: s.now().Hour()}
	if raw := q.Get("hour"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, fakeapp.NewInvalidInputError("hour %q is not a number", raw))
			return
		}
		params.Hour = hour
	}
	if mode == fakeapp.ModePersonalized && params.Name == "" {
		s.writeError(w, r, fakeapp.NewInvalidInputError("name is required for personalized greetings"))
		return
	}

	flags, err := s.source.Flags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	message, err := fakeapp.Render(flags, fakeapp.FlagGreeting, mode, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]string{"mode": string(mode), "message": message})
}

func (s *Server) cachedGreeting(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = defaultLocale
	}
	flags, err := s.source.Flags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	message, err := s.greetings.Get(flags, fakeapp.FlagGreeting, locale)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]string{"locale": locale, "message": message})
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	total := 99.99
	if raw := r.URL.Query().Get("total"); raw != "" {
		var err error
		if total, err = strconv.ParseFloat(raw, 64); err != nil || math.IsNaN(total) || math.IsInf(total, 0) {
			s.writeError(w, r, fakeapp.NewInvalidInputError("total %q is not a finite number", raw))
			return
		}
	}
	flags, err := s.source.Flags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := fakeapp.ProcessCheckout(flags, total)
	s.writeResult(w, r, "checkout", result, err)
}

func (s *Server) eligibility(w http.ResponseWriter, r *http.Request) {
	flags, err := s.source.Flags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	eligibility, err := fakeapp.ValidateCheckoutEligibility(flags, r.URL.Query().Get("user"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, eligibility)
}

func (s *Server) optimize(w http.ResponseWriter, r *http.Request) {
	size := 1
	if raw := r.URL.Query().Get("size"); raw != "" {
		var err error
		if size, err = strconv.Atoi(raw); err != nil {
			s.writeError(w, r, fakeapp.NewInvalidInputError("size %q is not a number", raw))
			return
		}
		if size < 0 || size > maxProblemSize {
			s.writeError(w, r, fakeapp.NewInvalidInputError("size %d out of range 0-%d", size, maxProblemSize))
			return
		}
	}
	flags, err := s.source.Flags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := fakeapp.RunQuantumOptimization(flags, size)
	s.writeResult(w, r, "optimize", result, err)
}

func (s *Server) process(w http.ResponseWriter, r *http.Request) {
	var data []float64
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.writeError(w, r, fakeapp.NewInvalidInputError("body must be a JSON array of numbers"))
		return
	}
	flags, err := s.source.Flags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	processor, err := fakeapp.NewQuantumProcessor(flags)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeResult(w, r, "process", processor.Process(data), nil)
}

func (s *Server) experiment(w http.ResponseWriter, r *http.Request) {
	flags, err := s.source.Flags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	experiment, err := fakeapp.RunQuantumExperiment(flags, s.rng)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, experiment)
}

func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, route string, result fakeapp.DispatchResult, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.writeJSON(w, r, http.StatusOK, result) {
		s.flows.WithLabelValues(route, result.Flow).Inc()
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid     *fakeapp.InvalidInputError
		unavailable *fakeapp.ProviderUnavailableError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
	case errors.Is(err, fakeapp.ErrQuantumDisabled):
		status = http.StatusConflict
	case errors.As(err, &unavailable):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.Any("error", err),
		)
	}
	s.writeJSON(w, r, status, map[string]string{"error": err.Error()})
}

// writeJSON encodes v before committing the status, so an unencodable body
// turns into a 500 instead of an empty 200. It reports whether v was sent.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) bool {
	var buf bytes.Buffer
	sent := true
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "encoding response failed",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.Any("error", err),
		)
		buf.Reset()
		buf.WriteString(`{"error":"encoding response"}` + "\n")
		status = http.StatusInternalServerError
		sent = false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return sent
}
