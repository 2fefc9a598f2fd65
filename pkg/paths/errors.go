package paths

import "errors"

// Common errors returned by the paths package.
var (
	// ErrNotExist is returned when a user path does not exist.
	ErrNotExist = errors.New("path does not exist")

	// ErrNotFileOrDir is returned when a path is neither a regular file nor
	// a directory (socket, device, fifo).
	ErrNotFileOrDir = errors.New("path is neither a directory nor a file")

	// ErrOutsideRoots is returned when a changed path has no ancestor in the
	// watched roots. This means the notification source reported an event
	// outside its registered scope.
	ErrOutsideRoots = errors.New("event detected outside of watched roots")
)
