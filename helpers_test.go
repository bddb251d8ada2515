package fakeapp_test

import (
	"errors"
	"sync"
	"sync/atomic"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

var errProviderDown = errors.New("flagsmith unreachable")

// stubProvider counts calls and can be reprogrammed between them.
type stubProvider struct {
	mu      sync.Mutex
	enabled map[string]bool
	values  map[string]string
	err     error

	enabledCalls atomic.Int32
	valueCalls   atomic.Int32
}

func newStubProvider() *stubProvider {
	return &stubProvider{enabled: map[string]bool{}, values: map[string]string{}}
}

func (s *stubProvider) IsEnabled(key string) (bool, error) {
	s.enabledCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.enabled[key], nil
}

func (s *stubProvider) GetValue(key string) (string, bool, error) {
	s.valueCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *stubProvider) setValue(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *stubProvider) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

var _ fakeapp.FlagProvider = (*stubProvider)(nil)
