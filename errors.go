package fakeapp

import (
	"errors"
	"fmt"
)

// ErrQuantumDisabled is returned by experiments that need quantum_mode.
var ErrQuantumDisabled = errors.New("quantum mode is not enabled")

// ConfigurationError reports missing or malformed process configuration.
type ConfigurationError struct {
	msg string
	err error
}

// InvalidInputError reports a caller-supplied argument outside its contract.
type InvalidInputError struct {
	msg string
}

// ProviderUnavailableError wraps a failure of the flag provider.
type ProviderUnavailableError struct {
	msg string
	err error
}

func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// WrapConfigurationError reports err as a ConfigurationError while keeping
// it reachable through errors.Is.
func WrapConfigurationError(err error) *ConfigurationError {
	return &ConfigurationError{msg: err.Error(), err: err}
}

func NewInvalidInputError(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{msg: fmt.Sprintf(format, args...)}
}

func NewProviderUnavailableError(msg string, err error) *ProviderUnavailableError {
	return &ProviderUnavailableError{msg: msg, err: err}
}

func (e ConfigurationError) Error() string {
	return e.msg
}

func (e ConfigurationError) Unwrap() error {
	return e.err
}

func (e InvalidInputError) Error() string {
	return e.msg
}

func (e ProviderUnavailableError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e ProviderUnavailableError) Unwrap() error {
	return e.err
}
