// Package watcher turns raw file system notifications into debounced
// batches of content changes.
//
// Every root is watched recursively with fsnotify. Raw events are filtered
// down to content modifications, collected until the file system has been
// quiet for the debounce interval, and delivered as one Batch. Batches are
// queued without bound, so a slow consumer never stalls the notification
// source.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    DebounceInterval: 500 * time.Millisecond,
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Start(ctx, roots); err != nil {
//	    log.Fatal(err)
//	}
//
//	for batch := range w.Batches() {
//	    for _, event := range batch {
//	        fmt.Println(event.Path)
//	    }
//	}
package watcher

import (
	"context"
	"time"
)

// Op describes a file operation type.
type Op uint32

// File operation types.
const (
	OpCreate Op = 1 << iota // File created
	OpWrite                 // File content modified
	OpRemove                // File deleted
	OpRename                // File renamed/moved
	OpChmod                 // File metadata changed
)

// String returns a human-readable operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// Event is one debounced content change.
type Event struct {
	// Path is the absolute path of the changed file.
	Path string

	// Op is always OpWrite for delivered events.
	Op Op

	// Timestamp is when the first raw event for Path in the batch arrived.
	Timestamp time.Time
}

// Batch is the ordered set of events from one debounce cycle.
// A path appears at most once, at the position of its first raw event.
type Batch []Event

// Paths returns the event paths in batch order.
func (b Batch) Paths() []string {
	paths := make([]string, len(b))
	for i, event := range b {
		paths[i] = event.Path
	}
	return paths
}

// Watcher provides debounced file system monitoring.
type Watcher interface {
	// Start registers recursive watches on every root and begins
	// processing notifications in the background.
	//
	// Returns an error if any root cannot be watched; nothing is
	// delivered in that case.
	Start(ctx context.Context, roots []string) error

	// Stop halts event processing. Batches is closed afterwards.
	Stop() error

	// Batches returns the channel of debounced batches, in production
	// order. It is closed when the watcher stops.
	Batches() <-chan Batch

	// Errors returns fatal failures of the notification source. At most
	// one error is sent. The channel is never closed.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// DebounceInterval is the quiet period required before a batch is
	// delivered. Every accepted raw event restarts the interval.
	// Default: 500ms.
	DebounceInterval time.Duration

	// CircuitBreakerThreshold is the number of consecutive notification
	// errors tolerated before the watcher reports ErrCircuitBreakerOpen.
	// Default: 5.
	CircuitBreakerThreshold int
}
