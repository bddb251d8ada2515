package fakeapp

// FlagProvider is a read-only view of flag state.
//
// Implementations may perform I/O on every call. Errors are returned to the
// caller of the core operation untouched.
type FlagProvider interface {
	// IsEnabled reports whether the flag is on. Unknown flags are disabled.
	IsEnabled(key string) (bool, error)
	// GetValue returns the flag's value and whether one is set.
	GetValue(key string) (string, bool, error)
}

// Flag keys used by the demo.
const (
	FlagCheckoutV2  = "checkout_v2"
	FlagQuantumMode = "quantum_mode"
	FlagGreeting    = "greeting"
)
