package fakeapp

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachedFallback is stored when the provider has no value for the key.
const CachedFallback = "Welcome!"

// MemoizingLookup remembers the first value observed for each cache key for
// the lifetime of the instance. Entries are never evicted or refreshed, so a
// later change of the flag is not seen by keys that are already cached.
//
// It is safe for concurrent use and queries the provider at most once per
// cache key: concurrent misses for the same key share one provider call. A
// failed call stores nothing and the next Get retries.
type MemoizingLookup struct {
	group singleflight.Group
	mu    sync.RWMutex
	store map[string]string
}

func NewMemoizingLookup() *MemoizingLookup {
	return &MemoizingLookup{store: make(map[string]string)}
}

// Get returns the cached value for cacheKey, reading valueKey from flags on
// the first call for that key.
func (m *MemoizingLookup) Get(flags FlagProvider, valueKey, cacheKey string) (string, error) {
	if v, ok := m.load(cacheKey); ok {
		return v, nil
	}

	v, err, _ := m.group.Do(cacheKey, func() (any, error) {
		// a caller that just missed the previous flight lands here
		if v, ok := m.load(cacheKey); ok {
			return v, nil
		}
		value, ok, err := lookupValue(flags, valueKey)
		if err != nil {
			return "", err
		}
		if !ok {
			value = CachedFallback
		}
		m.mu.Lock()
		m.store[cacheKey] = value
		m.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len reports the number of cached keys.
func (m *MemoizingLookup) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

func (m *MemoizingLookup) load(cacheKey string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[cacheKey]
	return v, ok
}
