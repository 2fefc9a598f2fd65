package runner

import "errors"

// Common errors returned by the runner.
var (
	// ErrNoArgs is returned when Run is called without an executable.
	ErrNoArgs = errors.New("no command to run")

	// ErrSpawn wraps failures to start the child process.
	ErrSpawn = errors.New("failed to spawn process")

	// ErrWait wraps failures while waiting for the child process.
	ErrWait = errors.New("process crashed")
)
