// Package runner executes one resolved command at a time in the foreground.
//
// Before each run the terminal is either cleared or separated from the
// previous output by a blank line, and a header naming the command is
// printed. The child inherits the standard streams and the runner blocks
// until it exits. A non-zero exit is reported but is not an error.
package runner

import (
	"io"
	"time"
)

// Status classifies the outcome of one run.
type Status string

// Run outcomes.
const (
	// StatusOK means the child exited with code 0.
	StatusOK Status = "ok"

	// StatusFailed means the child exited with a non-zero code.
	StatusFailed Status = "failed"

	// StatusSpawnError means the child could not be started.
	StatusSpawnError Status = "spawn_error"

	// StatusWaitError means waiting for the child failed, or the child
	// was terminated by a signal.
	StatusWaitError Status = "wait_error"
)

// Result describes one completed invocation.
type Result struct {
	Args     []string
	Started  time.Time
	Duration time.Duration

	// ExitCode is the child's exit code, or -1 when it has none.
	ExitCode int

	Status Status
	Err    error
}

// Terminal abstracts the terminal control the runner and the CLI need.
type Terminal interface {
	// Clear erases the whole display and moves the cursor to the origin.
	Clear()

	// Width returns the terminal width in columns, or 0 if unknown.
	Width() int

	// EnterAltScreen switches to the alternate screen buffer.
	EnterAltScreen()

	// ExitAltScreen restores the main screen buffer.
	ExitAltScreen()
}

// Config contains runner configuration.
type Config struct {
	// Stdin, Stdout and Stderr are handed to the child and receive the
	// runner's own messages. Default: os.Stdin, os.Stdout, os.Stderr.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Terminal is used to clear the screen and query its width.
	// Default: a terminal bound to Stdout.
	Terminal Terminal

	// Color enables header styling.
	Color bool

	// Hostname returns the name shown in the header. Default: os.Hostname.
	Hostname func() (string, error)

	// Now returns the current time. Default: time.Now.
	Now func() time.Time
}
