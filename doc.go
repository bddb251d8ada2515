// Package fakeapp shows how application code consumes feature flags.
//
// Everything here works against a [FlagProvider], a point-in-time view of
// flag state supplied by the caller. Three building blocks sit on top of it:
//
//   - [Dispatcher] reads one boolean flag and runs one of two strategies.
//   - [Render] composes a flag value with caller parameters into text.
//   - [MemoizingLookup] caches a flag value per key for its lifetime.
//
// None of these log, retry or swallow provider errors; they are returned to
// the caller unchanged.
package fakeapp
