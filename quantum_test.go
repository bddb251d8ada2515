package fakeapp_test

import (
	"testing"

	fakeapp "github.com/Flagsmith/fakeapp-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns scripted values.
type fixedRand struct {
	ints  []int
	float float64
}

func (r *fixedRand) IntN(n int) int {
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func (r *fixedRand) Float64() float64 {
	return r.float
}

func quantumFlags(enabled bool) *fakeapp.Flags {
	return fakeapp.NewFlags(map[string]fakeapp.Flag{fakeapp.FlagQuantumMode: {Enabled: enabled}})
}

func TestRunQuantumExperimentUsesInjectedRand(t *testing.T) {
	// Given
	rng := &fixedRand{ints: []int{2, 41}, float: 0.25}

	// When
	got, err := fakeapp.RunQuantumExperiment(quantumFlags(true), rng)

	// Then
	require.NoError(t, err)
	assert.Equal(t, fakeapp.Experiment{State: "entangled", Probability: 0.25, CoherenceTimeMs: 42}, got)
}

func TestRunQuantumExperimentDisabled(t *testing.T) {
	_, err := fakeapp.RunQuantumExperiment(quantumFlags(false), &fixedRand{})

	assert.ErrorIs(t, err, fakeapp.ErrQuantumDisabled)
}

func TestRunQuantumOptimization(t *testing.T) {
	result, err := fakeapp.RunQuantumOptimization(quantumFlags(true), 3)
	require.NoError(t, err)
	assert.Equal(t, "quantum", result.Flow)
	assert.Equal(t, "quantum_annealing", result.Payload["algorithm"])
	assert.Equal(t, 300, result.Payload["iterations"])
	assert.Equal(t, 0.95, result.Payload["solution_quality"])

	result, err = fakeapp.RunQuantumOptimization(quantumFlags(false), 3)
	require.NoError(t, err)
	assert.Equal(t, "classical", result.Flow)
	assert.Equal(t, "simulated_annealing", result.Payload["algorithm"])
	assert.Equal(t, 3000, result.Payload["iterations"])
	assert.Equal(t, 0.80, result.Payload["solution_quality"])
}

func TestQuantumProcessorPinsModeAtConstruction(t *testing.T) {
	// Given
	provider := newStubProvider()
	provider.enabled[fakeapp.FlagQuantumMode] = true
	processor, err := fakeapp.NewQuantumProcessor(provider)
	require.NoError(t, err)

	// When the flag flips after construction
	provider.mu.Lock()
	provider.enabled[fakeapp.FlagQuantumMode] = false
	provider.mu.Unlock()
	result := processor.Process([]float64{1, 2, 3})
	mode, err := processor.Mode()

	// Then
	require.NoError(t, err)
	assert.Equal(t, "quantum", result.Flow)
	assert.Equal(t, []float64{2, 4, 6}, result.Payload["data"])
	assert.Equal(t, "classical", mode)
}

func TestQuantumProcessorClassical(t *testing.T) {
	processor, err := fakeapp.NewQuantumProcessor(quantumFlags(false))
	require.NoError(t, err)

	result := processor.Process([]float64{1, 2, 3})

	assert.Equal(t, "classical", result.Flow)
	assert.Equal(t, []float64{2, 3, 4}, result.Payload["data"])
}

func TestQuantumAvailable(t *testing.T) {
	ok, err := fakeapp.QuantumAvailable(quantumFlags(true))
	require.NoError(t, err)
	assert.True(t, ok)

	provider := newStubProvider()
	provider.setErr(errProviderDown)
	_, err = fakeapp.QuantumAvailable(provider)
	assert.ErrorIs(t, err, errProviderDown)
}
