package fakeapp_test

import (
	"sync"
	"testing"

	fakeapp "github.com/Flagsmith/fakeapp-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoizingLookupReturnsFirstObservedValue(t *testing.T) {
	// Given
	provider := newStubProvider()
	provider.setValue("greeting", "first")
	lookup := fakeapp.NewMemoizingLookup()

	// When
	first, err := lookup.Get(provider, "greeting", "en")
	require.NoError(t, err)
	provider.setValue("greeting", "second")
	second, err := lookup.Get(provider, "greeting", "en")
	require.NoError(t, err)

	// Then
	assert.Equal(t, "first", first)
	assert.Equal(t, "first", second)
	assert.EqualValues(t, 1, provider.valueCalls.Load())
}

func TestMemoizingLookupCachesPerKey(t *testing.T) {
	// Given
	provider := newStubProvider()
	provider.setValue("greeting", "Hola")
	lookup := fakeapp.NewMemoizingLookup()

	// When
	es, err := lookup.Get(provider, "greeting", "es")
	require.NoError(t, err)
	provider.setValue("greeting", "Bonjour")
	fr, err := lookup.Get(provider, "greeting", "fr")
	require.NoError(t, err)

	// Then
	assert.Equal(t, "Hola", es)
	assert.Equal(t, "Bonjour", fr)
	assert.Equal(t, 2, lookup.Len())
	assert.EqualValues(t, 2, provider.valueCalls.Load())
}

func TestMemoizingLookupStoresFallback(t *testing.T) {
	// Given
	provider := newStubProvider()
	lookup := fakeapp.NewMemoizingLookup()

	// When
	got, err := lookup.Get(provider, "greeting", "en")
	require.NoError(t, err)
	provider.setValue("greeting", "late value")
	again, err := lookup.Get(provider, "greeting", "en")
	require.NoError(t, err)

	// Then
	assert.Equal(t, "Welcome!", got)
	assert.Equal(t, "Welcome!", again)
}

func TestMemoizingLookupDoesNotCacheErrors(t *testing.T) {
	// Given
	provider := newStubProvider()
	provider.setErr(errProviderDown)
	lookup := fakeapp.NewMemoizingLookup()

	// When
	_, err := lookup.Get(provider, "greeting", "en")

	// Then
	assert.ErrorIs(t, err, errProviderDown)
	assert.Equal(t, 0, lookup.Len())

	// When the provider recovers
	provider.setErr(nil)
	provider.setValue("greeting", "back")
	got, err := lookup.Get(provider, "greeting", "en")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "back", got)
}

func TestMemoizingLookupQueriesOnceUnderConcurrency(t *testing.T) {
	// Given
	provider := newStubProvider()
	provider.setValue("greeting", "Hi")
	lookup := fakeapp.NewMemoizingLookup()

	// When
	var wg sync.WaitGroup
	results := make([]string, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := lookup.Get(provider, "greeting", "en")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	// Then
	assert.EqualValues(t, 1, provider.valueCalls.Load())
	for _, v := range results {
		assert.Equal(t, "Hi", v)
	}
}

func TestGreetingServiceDefaultsLocale(t *testing.T) {
	// Given
	provider := newStubProvider()
	provider.setValue("greeting", "Hi")
	service := fakeapp.NewGreetingService(provider)

	// When
	def, err := service.CachedGreeting("")
	require.NoError(t, err)
	provider.setValue("greeting", "Changed")
	en, err := service.CachedGreeting("en")
	require.NoError(t, err)

	// Then
	assert.Equal(t, "Hi", def)
	assert.Equal(t, "Hi", en)
}
