package history

import "errors"

// Common errors returned by history stores.
var (
	// ErrStoreClosed is returned when using a closed store.
	ErrStoreClosed = errors.New("history store is closed")

	// ErrNilRecord is returned when appending a nil record.
	ErrNilRecord = errors.New("record cannot be nil")

	// ErrNoDBPath is returned when Open is called without a database path.
	ErrNoDBPath = errors.New("history database path is empty")
)
