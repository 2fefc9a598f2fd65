package dispatch

import "errors"

var (
	// ErrSourceClosed is returned when the batch channel closes while the
	// loop is watching.
	ErrSourceClosed = errors.New("change source closed")

	// ErrNoRoots is returned when the loop is built without watched roots.
	ErrNoRoots = errors.New("no watched roots")

	// ErrNilTemplate is returned when the loop is built without a command.
	ErrNilTemplate = errors.New("command template is nil")
)
