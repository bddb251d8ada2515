package fakeapp

import "math/rand/v2"

const (
	FlowQuantum   = "quantum"
	FlowClassical = "classical"
)

// QuantumStates are the outcomes an experiment can collapse to.
var QuantumStates = []string{"spin_up", "spin_down", "entangled", "superposition"}

// Rand is the randomness an experiment draws from. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Experiment is the result of a simulated state collapse.
type Experiment struct {
	State           string  `json:"state"`
	Probability     float64 `json:"probability"`
	CoherenceTimeMs int     `json:"coherence_time_ms"`
}

// ProcessDispatcher transforms a list of numbers: doubled on the quantum
// pipeline, incremented on the classical one. The result is under "data".
var ProcessDispatcher = Dispatcher[[]float64]{
	FlagKey: FlagQuantumMode,
	Enhanced: Strategy[[]float64]{
		Name: FlowQuantum,
		Run: func(data []float64) map[string]any {
			return map[string]any{"data": mapFloats(data, func(x float64) float64 { return x * 2 })}
		},
	},
	Baseline: Strategy[[]float64]{
		Name: FlowClassical,
		Run: func(data []float64) map[string]any {
			return map[string]any{"data": mapFloats(data, func(x float64) float64 { return x + 1 })}
		},
	},
}

// OptimizationDispatcher picks an annealing algorithm for a problem size.
// The size is not checked; callers bound it so size*1000 fits in an int.
var OptimizationDispatcher = Dispatcher[int]{
	FlagKey: FlagQuantumMode,
	Enhanced: Strategy[int]{
		Name: FlowQuantum,
		Run: func(size int) map[string]any {
			return map[string]any{
				"algorithm":        "quantum_annealing",
				"iterations":       size * 100,
				"solution_quality": 0.95,
			}
		},
	},
	Baseline: Strategy[int]{
		Name: FlowClassical,
		Run: func(size int) map[string]any {
			return map[string]any{
				"algorithm":        "simulated_annealing",
				"iterations":       size * 1000,
				"solution_quality": 0.80,
			}
		},
	},
}

// QuantumAvailable reports whether quantum_mode is on.
func QuantumAvailable(flags FlagProvider) (bool, error) {
	return flags.IsEnabled(FlagQuantumMode)
}

// RunQuantumOptimization runs the optimizer selected by quantum_mode.
func RunQuantumOptimization(flags FlagProvider, problemSize int) (DispatchResult, error) {
	return OptimizationDispatcher.Dispatch(flags, problemSize)
}

// RunQuantumExperiment simulates a collapse using rng. It returns
// ErrQuantumDisabled when quantum_mode is off.
func RunQuantumExperiment(flags FlagProvider, rng Rand) (Experiment, error) {
	enabled, err := flags.IsEnabled(FlagQuantumMode)
	if err != nil {
		return Experiment{}, err
	}
	if !enabled {
		return Experiment{}, ErrQuantumDisabled
	}
	return Experiment{
		State:           QuantumStates[rng.IntN(len(QuantumStates))],
		Probability:     rng.Float64(),
		CoherenceTimeMs: rng.IntN(100) + 1,
	}, nil
}

// QuantumProcessor pins quantum_mode at construction for Process. Mode
// re-reads the flag every call, so the two can disagree once the flag flips.
type QuantumProcessor struct {
	flags   FlagProvider
	enabled bool
}

func NewQuantumProcessor(flags FlagProvider) (*QuantumProcessor, error) {
	enabled, err := flags.IsEnabled(FlagQuantumMode)
	if err != nil {
		return nil, err
	}
	return &QuantumProcessor{flags: flags, enabled: enabled}, nil
}

// Process runs data through the pipeline chosen at construction.
func (p *QuantumProcessor) Process(data []float64) DispatchResult {
	// pinnedFlag never fails
	result, _ := ProcessDispatcher.Dispatch(pinnedFlag{key: FlagQuantumMode, enabled: p.enabled}, data)
	return result
}

// Mode returns "quantum" or "classical" from the current flag state.
func (p *QuantumProcessor) Mode() (string, error) {
	enabled, err := p.flags.IsEnabled(FlagQuantumMode)
	if err != nil {
		return "", err
	}
	if enabled {
		return FlowQuantum, nil
	}
	return FlowClassical, nil
}

type pinnedFlag struct {
	key     string
	enabled bool
}

func (p pinnedFlag) IsEnabled(key string) (bool, error) {
	return key == p.key && p.enabled, nil
}

func (p pinnedFlag) GetValue(string) (string, bool, error) {
	return "", false, nil
}

func mapFloats(data []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(data))
	for i, x := range data {
		out[i] = fn(x)
	}
	return out
}

// DefaultRand draws from math/rand/v2's global source and is safe for
// concurrent use.
var DefaultRand Rand = globalRand{}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }
