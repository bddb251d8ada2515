package fakeapp

// This file exports internal functions for testing purposes only.
// It is compiled only when running tests (no build tags needed).

// NormalizeVersionForTest exposes normalizeVersion for external tests.
func NormalizeVersionForTest(raw string) string {
	return normalizeVersion(raw)
}
