package fakeapp

type Flag struct {
	Enabled bool    `json:"enabled"`
	Value   *string `json:"value"`
}

// Flags is an immutable in-memory snapshot of flag state.
type Flags struct {
	flags map[string]Flag
}

var _ FlagProvider = (*Flags)(nil)

// NewFlags returns a snapshot holding a copy of flags.
func NewFlags(flags map[string]Flag) *Flags {
	copied := make(map[string]Flag, len(flags))
	for name, flag := range flags {
		if flag.Value != nil {
			v := *flag.Value
			flag.Value = &v
		}
		copied[name] = flag
	}
	return &Flags{flags: copied}
}

// Enabled is shorthand for a flag that is on and carries no value.
func Enabled() Flag {
	return Flag{Enabled: true}
}

// WithValue is shorthand for a flag carrying value.
func WithValue(enabled bool, value string) Flag {
	return Flag{Enabled: enabled, Value: &value}
}

func (f *Flags) IsEnabled(key string) (bool, error) {
	return f.flags[key].Enabled, nil
}

func (f *Flags) GetValue(key string) (string, bool, error) {
	flag, ok := f.flags[key]
	if !ok || flag.Value == nil {
		return "", false, nil
	}
	return *flag.Value, true, nil
}

// AllFlags returns a copy of every flag in the snapshot.
func (f *Flags) AllFlags() map[string]Flag {
	all := make(map[string]Flag, len(f.flags))
	for name, flag := range f.flags {
		all[name] = flag
	}
	return all
}

// lookupValue reads a value and folds empty strings into "absent".
func lookupValue(flags FlagProvider, key string) (string, bool, error) {
	value, ok, err := flags.GetValue(key)
	if err != nil {
		return "", false, err
	}
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}
