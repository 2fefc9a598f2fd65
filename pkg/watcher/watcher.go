package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/0xmhha/onchange/pkg/logger"
)

// watcher implements the Watcher interface using fsnotify.
type watcher struct {
	fsw    *fsnotify.Watcher
	logger logger.Logger
	config Config

	// raw carries batches from flush to pump; batches carries them from
	// pump to the consumer.
	raw     chan Batch
	batches chan Batch
	errors  chan error

	mu       sync.RWMutex
	running  bool
	stopped  bool
	closed   bool
	stopChan chan struct{}
	stopOnce sync.Once

	// Debouncing state.
	debounced func(f func())
	pending   Batch
	seen      map[string]struct{}
	pendingMu sync.Mutex
	flushMu   sync.Mutex

	// Circuit breaker state, owned by the processing goroutine.
	failureCount int

	fatalOnce sync.Once
}

// New creates a new file system watcher.
//
// Parameters:
//   - cfg: Watcher configuration
//   - log: Logger instance
//
// Returns:
//   - Configured Watcher
//   - Error if the notification source cannot be created
func New(cfg Config, log logger.Logger) (Watcher, error) {
	return newWatcher(cfg, log)
}

func newWatcher(cfg Config, log logger.Logger) (*watcher, error) {
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = 500 * time.Millisecond
	}
	if cfg.CircuitBreakerThreshold <= 0 {
		cfg.CircuitBreakerThreshold = 5
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &watcher{
		fsw:       fsw,
		logger:    log.With("component", "watcher"),
		config:    cfg,
		raw:       make(chan Batch),
		batches:   make(chan Batch),
		errors:    make(chan error, 1),
		stopChan:  make(chan struct{}),
		debounced: debounce.New(cfg.DebounceInterval),
		seen:      make(map[string]struct{}),
	}

	go w.pump()

	w.logger.Debug("file watcher created",
		"debounce_interval", cfg.DebounceInterval,
		"circuit_breaker_threshold", cfg.CircuitBreakerThreshold)

	return w, nil
}

// Start implements Watcher.Start.
func (w *watcher) Start(ctx context.Context, roots []string) error {
	if len(roots) == 0 {
		return ErrNoRoots
	}

	w.mu.Lock()
	if w.closed || w.stopped {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.running = true
	w.mu.Unlock()

	for _, root := range roots {
		if err := w.addPathRecursive(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	w.logger.Info("watcher started",
		"roots", roots,
		"root_count", len(roots))

	go w.processEvents(ctx)

	return nil
}

// Stop implements Watcher.Stop.
func (w *watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	if !w.running {
		w.mu.Unlock()
		return ErrNotStarted
	}
	w.running = false
	w.stopped = true
	w.mu.Unlock()

	w.halt()

	w.logger.Info("watcher stopped")
	return nil
}

// Batches implements Watcher.Batches.
func (w *watcher) Batches() <-chan Batch {
	return w.batches
}

// Errors implements Watcher.Errors.
func (w *watcher) Errors() <-chan error {
	return w.errors
}

// Close implements Watcher.Close.
func (w *watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.running = false
	w.mu.Unlock()

	w.halt()

	if err := w.fsw.Close(); err != nil {
		w.logger.Error("failed to close fsnotify watcher", "error", err)
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	w.logger.Debug("watcher closed")
	return nil
}

// halt signals every background goroutine to exit.
func (w *watcher) halt() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
}

// processEvents handles events from fsnotify.
func (w *watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("event processing stopped", "reason", "context cancelled")
			return

		case <-w.stopChan:
			w.logger.Debug("event processing stopped", "reason", "stop signal")
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				w.logger.Warn("fsnotify events channel closed")
				return
			}

			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				w.logger.Warn("fsnotify errors channel closed")
				return
			}

			w.handleError(err)
		}
	}
}

// handleEvent filters one raw event and feeds content changes to the
// debouncer.
func (w *watcher) handleEvent(event fsnotify.Event) {
	if event.Name == "" {
		w.fail(fmt.Errorf("%w: %s event without a path", ErrEventPathCount, event.Op))
		return
	}
	w.failureCount = 0

	if event.Has(fsnotify.Create) {
		w.watchNewDirectory(event.Name)
	}

	op := classify(event.Op)
	if op != OpWrite {
		w.logger.Debug("ignoring event", "op", op, "path", event.Name)
		return
	}

	w.enqueue(Event{
		Path:      event.Name,
		Op:        op,
		Timestamp: time.Now(),
	})
}

// classify maps an fsnotify op to the Op reported for it. A content write
// takes precedence when several bits are set.
func classify(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Write):
		return OpWrite
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	case op.Has(fsnotify.Chmod):
		return OpChmod
	default:
		return 0
	}
}

// enqueue adds event to the pending batch and restarts the debounce timer.
func (w *watcher) enqueue(event Event) {
	w.pendingMu.Lock()
	if _, dup := w.seen[event.Path]; !dup {
		w.seen[event.Path] = struct{}{}
		w.pending = append(w.pending, event)
	}
	w.pendingMu.Unlock()

	w.debounced(w.flush)
}

// flush hands the pending batch to the pump. flushMu keeps batches in the
// order they were cut even if two timers fire close together.
func (w *watcher) flush() {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.pendingMu.Lock()
	batch := w.pending
	w.pending = nil
	w.seen = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(batch) == 0 {
		return
	}

	select {
	case w.raw <- batch:
		w.logger.Debug("batch delivered", "events", len(batch))
	case <-w.stopChan:
	}
}

// pump moves batches from raw to batches through an unbounded queue.
func (w *watcher) pump() {
	defer close(w.batches)

	var queue []Batch
	for {
		var out chan Batch
		var next Batch
		if len(queue) > 0 {
			out = w.batches
			next = queue[0]
		}

		select {
		case batch := <-w.raw:
			queue = append(queue, batch)
		case out <- next:
			queue[0] = nil
			queue = queue[1:]
		case <-w.stopChan:
			return
		}
	}
}

// handleError processes fsnotify errors with circuit breaker pattern.
func (w *watcher) handleError(err error) {
	w.failureCount++

	w.logger.Error("fsnotify error",
		"error", err,
		"failure_count", w.failureCount)

	if w.failureCount >= w.config.CircuitBreakerThreshold {
		w.logger.Error("circuit breaker opened",
			"threshold", w.config.CircuitBreakerThreshold)
		w.fail(fmt.Errorf("%w: %v", ErrCircuitBreakerOpen, err))
	}
}

// fail reports a fatal error once.
func (w *watcher) fail(err error) {
	w.fatalOnce.Do(func() {
		w.logger.Error("watcher failed", "error", err)
		w.errors <- err
	})
}

// watchNewDirectory adds watches for a directory created under a root.
func (w *watcher) watchNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	if err := w.addPathRecursive(path); err != nil {
		w.logger.Warn("failed to watch new directory",
			"path", path,
			"error", err)
	}
}

// addPathRecursive adds a path and all subdirectories to the watcher.
// Only a failure on path itself is returned.
func (w *watcher) addPathRecursive(path string) error {
	if err := w.fsw.Add(path); err != nil {
		return fmt.Errorf("failed to add path: %w", err)
	}

	w.logger.Debug("added watch path", "path", path)

	return filepath.Walk(path, func(subPath string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warn("error walking path",
				"path", subPath,
				"error", err)
			return nil // Skip but continue walking.
		}

		if !info.IsDir() || subPath == path {
			return nil
		}

		if addErr := w.fsw.Add(subPath); addErr != nil {
			w.logger.Warn("failed to add subdirectory",
				"path", subPath,
				"error", addErr)
			return nil
		}

		w.logger.Debug("added watch subdirectory", "path", subPath)
		return nil
	})
}
