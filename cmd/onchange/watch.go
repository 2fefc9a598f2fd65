package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/0xmhha/onchange/pkg/command"
	"github.com/0xmhha/onchange/pkg/config"
	"github.com/0xmhha/onchange/pkg/dispatch"
	"github.com/0xmhha/onchange/pkg/history"
	"github.com/0xmhha/onchange/pkg/logger"
	"github.com/0xmhha/onchange/pkg/paths"
	"github.com/0xmhha/onchange/pkg/runner"
	"github.com/0xmhha/onchange/pkg/watcher"
)

// watch runs the command on every change until interrupted or a fatal
// error occurs.
func watch(opts *options, cfg *config.Config, log logger.Logger) error {
	roots, err := paths.CanonicalizeAll(opts.paths)
	if err != nil {
		return err
	}

	tmpl, err := command.Parse(opts.command)
	if err != nil {
		return err
	}

	log.Debug("starting",
		"command", tmpl.String(),
		"case", tmpl.Case(),
		"roots", roots,
		"recursive", cfg.Watch.Recursive)

	store := openHistory(cfg, log)
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Error("failed to close history", "error", closeErr)
		}
	}()

	w, err := watcher.New(watcher.Config{
		DebounceInterval:        cfg.Watch.Debounce,
		CircuitBreakerThreshold: cfg.Watch.CircuitBreakerThreshold,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize watcher: %w", err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			log.Error("failed to close watcher", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	term := runner.NewTerminal(os.Stdout)

	stopInterrupt := handleInterrupt(term, cfg.Display.AltScreen, os.Exit)
	defer stopInterrupt()

	if cfg.Display.AltScreen {
		term.EnterAltScreen()
		defer term.ExitAltScreen()
	}

	r := runner.New(runner.Config{
		Terminal: term,
		Color:    cfg.Display.Color,
	}, log)

	loop, err := dispatch.New(dispatch.Config{
		Recursive: cfg.Watch.Recursive,
	}, tmpl, roots, w, r, store, log)
	if err != nil {
		return err
	}

	return loop.Run(ctx)
}

// openHistory returns the configured run history. A database that cannot
// be opened degrades to an in-memory history so watching still works.
func openHistory(cfg *config.Config, log logger.Logger) history.Store {
	if !cfg.History.Enabled {
		return history.NewMemoryStore(cfg.History.MaxRecords)
	}

	store, err := history.Open(history.Config{
		DBPath:     cfg.History.DBPath,
		MaxRecords: cfg.History.MaxRecords,
	}, log)
	if err != nil {
		log.Warn("history unavailable, runs will not be persisted",
			"db_path", cfg.History.DBPath,
			"error", err)
		return history.NewMemoryStore(cfg.History.MaxRecords)
	}

	return store
}

// handleInterrupt registers one callback for SIGINT and SIGTERM that
// restores the main screen and exits with status 0. A command that is
// still running is neither waited for nor killed, so it may outlive
// onchange.
//
// The returned function unregisters the handler.
func handleInterrupt(term runner.Terminal, altScreen bool, exit func(code int)) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			if altScreen {
				term.ExitAltScreen()
			}
			exit(0)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
