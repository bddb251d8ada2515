package fakeapp

// DispatchResult describes which strategy ran and what it produced.
type DispatchResult struct {
	Success bool           `json:"success"`
	Flow    string         `json:"flow"`
	Payload map[string]any `json:"payload"`
}

// Strategy is one of the two code paths a Dispatcher can take. Run must not
// read flags itself.
type Strategy[C any] struct {
	Name string
	Run  func(C) map[string]any
}

// Dispatcher routes to Enhanced when FlagKey is on and to Baseline otherwise.
type Dispatcher[C any] struct {
	FlagKey  string
	Enhanced Strategy[C]
	Baseline Strategy[C]
}

// Dispatch evaluates the flag exactly once and runs the selected strategy.
// The context is passed through unvalidated.
func (d Dispatcher[C]) Dispatch(flags FlagProvider, context C) (DispatchResult, error) {
	enabled, err := flags.IsEnabled(d.FlagKey)
	if err != nil {
		return DispatchResult{}, err
	}

	strategy := d.Baseline
	if enabled {
		strategy = d.Enhanced
	}
	return DispatchResult{
		Success: true,
		Flow:    strategy.Name,
		Payload: strategy.Run(context),
	}, nil
}
