package watcher

import "errors"

// Common errors returned by the watcher.
var (
	// ErrWatcherClosed is returned when attempting to use a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrAlreadyStarted is returned when Start is called on a running watcher.
	ErrAlreadyStarted = errors.New("watcher already started")

	// ErrNotStarted is returned when Stop is called on a non-running watcher.
	ErrNotStarted = errors.New("watcher not started")

	// ErrNoRoots is returned when Start is called without any root.
	ErrNoRoots = errors.New("no watch roots given")

	// ErrCircuitBreakerOpen is reported when the notification source keeps
	// failing.
	ErrCircuitBreakerOpen = errors.New("circuit breaker open")

	// ErrEventPathCount is reported when a raw event does not carry exactly
	// one path.
	ErrEventPathCount = errors.New("raw event does not carry exactly one path")
)
