// Package dispatch drives command runs from file changes.
//
// A Loop first primes: it runs the command once (or once per watched root
// for single-path templates) before the source starts watching. It then consumes
// debounced batches and runs the command once per changed path, strictly
// one run at a time.
package dispatch

import (
	"context"

	"github.com/0xmhha/onchange/pkg/runner"
	"github.com/0xmhha/onchange/pkg/watcher"
)

// State is the loop's lifecycle stage.
type State int32

const (
	// StatePriming covers the runs issued before any change is processed.
	StatePriming State = iota

	// StateWatching is the steady state of consuming change batches.
	StateWatching
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePriming:
		return "priming"
	case StateWatching:
		return "watching"
	default:
		return "unknown"
	}
}

// Runner runs one resolved command in the foreground.
type Runner interface {
	Run(args []string, clean bool) runner.Result
}

// Source delivers change batches and fatal source errors.
//
// Start registers the watches. The loop calls it once, after the priming
// runs, so files written while priming never produce a batch.
type Source interface {
	Start(ctx context.Context, roots []string) error
	Batches() <-chan watcher.Batch
	Errors() <-chan error
}

// Invocation is everything needed to resolve and start one run.
type Invocation struct {
	// Roots are the watched roots, in user order.
	Roots []string

	// Current is the path substituted for a single-path placeholder.
	// Empty when the template does not use one.
	Current string

	// Clean clears the terminal before the run.
	Clean bool

	// Trigger is the changed path that caused the run; empty while priming.
	Trigger string
}

// Config contains loop configuration.
type Config struct {
	// Recursive substitutes the changed file itself for a single-path
	// placeholder instead of the watched root containing it.
	Recursive bool
}
