package fakeapp

import "fmt"

// Mode selects how Render composes a flag value.
type Mode string

const (
	ModePlain        Mode = "plain"
	ModePersonalized Mode = "personalized"
	ModeTimeBased    Mode = "time_based"
)

// PlainFallback is shown by ModePlain when the flag carries no value.
const PlainFallback = "Welcome to Fake App!"

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePlain, ModePersonalized, ModeTimeBased:
		return m, nil
	}
	return "", NewInvalidInputError("unknown greeting mode %q", s)
}

// Params are the caller-supplied inputs to Render. Name is used by
// ModePersonalized, Hour by ModeTimeBased.
type Params struct {
	Name string
	Hour int
}

// Render composes the value of valueKey into user-facing text.
func Render(flags FlagProvider, valueKey string, mode Mode, params Params) (string, error) {
	var label string
	switch mode {
	case ModePlain, ModePersonalized:
	case ModeTimeBased:
		// validated before touching the provider
		var err error
		if label, err = TimeOfDay(params.Hour); err != nil {
			return "", err
		}
	default:
		return "", NewInvalidInputError("unknown greeting mode %q", mode)
	}

	value, ok, err := lookupValue(flags, valueKey)
	if err != nil {
		return "", err
	}

	switch mode {
	case ModePlain:
		if ok {
			return "🎉 " + value, nil
		}
		return PlainFallback, nil
	case ModePersonalized:
		if ok {
			return fmt.Sprintf("%s, %s!", value, params.Name), nil
		}
		return fmt.Sprintf("Hello, %s!", params.Name), nil
	default:
		if ok {
			return label + "! " + value, nil
		}
		return label + "!", nil
	}
}

// TimeOfDay buckets an hour of the day into a greeting label. Hours outside
// 0-23 are an InvalidInputError.
func TimeOfDay(hour int) (string, error) {
	switch {
	case hour < 0 || hour > 23:
		return "", NewInvalidInputError("hour %d out of range 0-23", hour)
	case hour >= 5 && hour < 12:
		return "Good morning", nil
	case hour >= 12 && hour < 17:
		return "Good afternoon", nil
	case hour >= 17 && hour < 21:
		return "Good evening", nil
	default:
		return "Hello", nil
	}
}

// Greeting renders the greeting flag in ModePlain.
func Greeting(flags FlagProvider) (string, error) {
	return Render(flags, FlagGreeting, ModePlain, Params{})
}

// PersonalizedGreeting renders the greeting flag for name.
func PersonalizedGreeting(flags FlagProvider, name string) (string, error) {
	return Render(flags, FlagGreeting, ModePersonalized, Params{Name: name})
}

// TimeBasedGreeting renders the greeting flag for an hour of the day.
func TimeBasedGreeting(flags FlagProvider, hour int) (string, error) {
	return Render(flags, FlagGreeting, ModeTimeBased, Params{Hour: hour})
}

// GreetingService serves the greeting flag through a per-locale cache.
type GreetingService struct {
	flags FlagProvider
	cache *MemoizingLookup
}

func NewGreetingService(flags FlagProvider) *GreetingService {
	return &GreetingService{flags: flags, cache: NewMemoizingLookup()}
}

// CachedGreeting returns the greeting first seen for locale, "en" if empty.
func (s *GreetingService) CachedGreeting(locale string) (string, error) {
	if locale == "" {
		locale = "en"
	}
	return s.cache.Get(s.flags, FlagGreeting, locale)
}
