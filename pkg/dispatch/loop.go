package dispatch

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/0xmhha/onchange/pkg/command"
	"github.com/0xmhha/onchange/pkg/history"
	"github.com/0xmhha/onchange/pkg/logger"
	"github.com/0xmhha/onchange/pkg/paths"
	"github.com/0xmhha/onchange/pkg/watcher"
)

// Loop runs a command template on every change reported by a Source.
type Loop struct {
	config   Config
	template *command.Template
	roots    []string
	source   Source
	runner   Runner
	store    history.Store
	logger   logger.Logger

	state atomic.Int32
}

// New creates a dispatch loop.
//
// Parameters:
//   - cfg: Loop configuration
//   - tmpl: Parsed command template
//   - roots: Canonical watched roots, in user order
//   - src: Change source, usually an unstarted watcher
//   - run: Process runner
//   - store: Run history; nil disables recording
//   - log: Logger instance
//
// Returns:
//   - Configured Loop in the priming state
//   - Error if the template or roots are missing
func New(cfg Config, tmpl *command.Template, roots []string, src Source, run Runner, store history.Store, log logger.Logger) (*Loop, error) {
	if tmpl == nil {
		return nil, ErrNilTemplate
	}
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	return &Loop{
		config:   cfg,
		template: tmpl,
		roots:    append([]string(nil), roots...),
		source:   src,
		runner:   run,
		store:    store,
		logger:   log.With("component", "dispatch"),
	}, nil
}

// State returns the current lifecycle stage.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Run primes and then processes batches until ctx is done.
//
// The source is started only after the priming runs have finished. It
// returns nil on cancellation. Any other return is fatal: a failed source
// start, a source error, ErrSourceClosed, or an invariant violation such
// as paths.ErrOutsideRoots. A failing command is never an error.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Debug("priming",
		"case", l.template.Case(),
		"roots", l.roots)

	for _, inv := range l.primingInvocations() {
		if err := l.invoke(inv); err != nil {
			return err
		}
	}

	if err := l.source.Start(ctx, l.roots); err != nil {
		return err
	}

	l.state.Store(int32(StateWatching))
	l.logger.Debug("watching", "recursive", l.config.Recursive)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-l.source.Errors():
			return fmt.Errorf("watcher failed: %w", err)

		case batch, ok := <-l.source.Batches():
			if !ok {
				return ErrSourceClosed
			}

			if err := l.handleBatch(ctx, batch); err != nil {
				return err
			}
		}
	}
}

// primingInvocations returns the runs issued before watching starts.
func (l *Loop) primingInvocations() []Invocation {
	if l.template.Case() != command.OnePath {
		return []Invocation{{Roots: l.roots, Clean: true}}
	}

	invs := make([]Invocation, len(l.roots))
	for i, root := range l.roots {
		invs[i] = Invocation{
			Roots:   l.roots,
			Current: root,
			Clean:   i == 0,
		}
	}
	return invs
}

// handleBatch runs the command for each event in order.
func (l *Loop) handleBatch(ctx context.Context, batch watcher.Batch) error {
	l.logger.Debug("batch received", "events", len(batch))

	for _, event := range batch {
		if ctx.Err() != nil {
			return nil
		}

		inv, err := l.watchingInvocation(event.Path)
		if err != nil {
			return err
		}

		if err := l.invoke(inv); err != nil {
			return err
		}
	}

	return nil
}

// watchingInvocation builds the run for one changed path.
func (l *Loop) watchingInvocation(changed string) (Invocation, error) {
	inv := Invocation{
		Roots:   l.roots,
		Clean:   true,
		Trigger: changed,
	}

	switch {
	case l.template.Case() != command.OnePath:
		// Every root is substituted whichever one changed.
	case l.config.Recursive:
		inv.Current = changed
	default:
		root, err := paths.NearestRoot(changed, l.roots)
		if err != nil {
			return Invocation{}, err
		}
		inv.Current = root
	}

	return inv, nil
}

// invoke resolves and runs one invocation, then records it.
func (l *Loop) invoke(inv Invocation) error {
	args, err := l.template.Resolve(inv.Roots, inv.Current)
	if err != nil {
		return fmt.Errorf("failed to resolve command: %w", err)
	}

	result := l.runner.Run(args, inv.Clean)

	if l.store == nil {
		return nil
	}

	rec := &history.Record{
		Started:  result.Started,
		Duration: result.Duration,
		Args:     result.Args,
		ExitCode: result.ExitCode,
		Status:   string(result.Status),
		Trigger:  inv.Trigger,
	}
	if result.Err != nil {
		rec.Error = result.Err.Error()
	}

	if err := l.store.Append(rec); err != nil {
		l.logger.Warn("failed to record run", "error", err)
	}

	return nil
}
