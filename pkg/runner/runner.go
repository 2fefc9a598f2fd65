package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/0xmhha/onchange/pkg/logger"
)

// Runner spawns commands in the foreground, one at a time.
type Runner struct {
	config Config
	styles headerStyles
	logger logger.Logger
}

// New creates a runner.
//
// Parameters:
//   - cfg: Runner configuration; unset fields get their defaults
//   - log: Logger instance
//
// Returns a configured Runner.
func New(cfg Config, log logger.Logger) *Runner {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Terminal == nil {
		cfg.Terminal = NewTerminal(cfg.Stdout)
	}
	if cfg.Hostname == nil {
		cfg.Hostname = os.Hostname
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Runner{
		config: cfg,
		styles: newHeaderStyles(cfg.Stdout, cfg.Color),
		logger: log.With("component", "runner"),
	}
}

// Run prepares the terminal, prints the header and runs args[0] with the
// remaining arguments until it exits.
//
// With clean set the screen is cleared and the header carries the host
// name and local time; otherwise a blank line separates the run from the
// previous output. Failures are printed and reported through the Result;
// Run never aborts the caller.
func (r *Runner) Run(args []string, clean bool) Result {
	result := Result{
		Args:     append([]string(nil), args...),
		ExitCode: -1,
	}

	if len(args) == 0 {
		result.Status = StatusSpawnError
		result.Err = ErrNoArgs
		r.report("Failed to spawn process", result.Err)
		return result
	}

	r.prepare(args, clean)

	cmd := exec.Command(args[0], args[1:]...) // nolint:gosec // Args come from the user.
	cmd.Stdin = r.config.Stdin
	cmd.Stdout = r.config.Stdout
	cmd.Stderr = r.config.Stderr

	result.Started = r.config.Now()
	start := time.Now()

	if err := cmd.Start(); err != nil {
		result.Duration = time.Since(start)
		result.Status = StatusSpawnError
		result.Err = fmt.Errorf("%w: %v", ErrSpawn, err)
		r.report("Failed to spawn process", err)
		return result
	}

	r.logger.Debug("process started", "pid", cmd.Process.Pid, "args", args)

	err := cmd.Wait()
	result.Duration = time.Since(start)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
		result.Status = StatusOK

	case errors.As(err, &exitErr) && exitErr.ExitCode() >= 0:
		result.ExitCode = exitErr.ExitCode()
		result.Status = StatusFailed
		fmt.Fprintf(r.config.Stdout, "Exit code: %d\n", result.ExitCode)

	default:
		// Killed by a signal or an OS-level wait failure.
		result.Status = StatusWaitError
		result.Err = fmt.Errorf("%w: %v", ErrWait, err)
		r.report("Process crashed", err)
	}

	r.logger.Debug("process finished",
		"args", args,
		"status", result.Status,
		"exit_code", result.ExitCode,
		"duration", result.Duration)

	return result
}

// prepare clears or separates the output and prints the header.
func (r *Runner) prepare(args []string, clean bool) {
	if !clean {
		fmt.Fprintln(r.config.Stdout)
		fmt.Fprintln(r.config.Stdout, formatHeader(r.styles, args, "", 0))
		return
	}

	r.config.Terminal.Clear()

	hostname, err := r.config.Hostname()
	if err != nil {
		r.logger.Warn("failed to get hostname", "error", err)
		hostname = "unknown"
	}

	right := fmt.Sprintf("%s: %s", hostname, r.config.Now().Format(timestampLayout))
	fmt.Fprintln(r.config.Stdout,
		formatHeader(r.styles, args, right, r.config.Terminal.Width()))
}

func (r *Runner) report(msg string, err error) {
	r.logger.Warn(msg, "error", err)
	fmt.Fprintln(r.config.Stderr, msg)
	fmt.Fprintf(r.config.Stderr, "Error: %v\n", err)
}
