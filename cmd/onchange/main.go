// Package main provides the onchange CLI application.
//
// onchange watches files and directories and re-runs a command whenever
// their content changes, substituting the changed or watched paths into
// the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/0xmhha/onchange/pkg/config"
	"github.com/0xmhha/onchange/pkg/display"
	"github.com/0xmhha/onchange/pkg/logger"
)

// version is set during build time.
var version = "dev"

// errUsage reports missing positional arguments.
var errUsage = errors.New("usage: onchange [flags] COMMAND PATH...")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	command     string
	paths       []string
	configPath  string
	recursive   bool
	debounce    time.Duration
	noAltScreen bool
	history     bool
	stats       bool
	groupBy     []string
	limit       int
	format      string
	version     bool
	help        bool

	// Flags the user set explicitly; only these override the config.
	setRecursive bool
	setDebounce  bool
}

// newFlagSet defines every flag on a fresh set bound to opts.
func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("onchange", pflag.ContinueOnError)
	fs.SortFlags = false

	fs.BoolVarP(&opts.recursive, "recursive", "r", false, "substitute the changed file, not its watched root, for {}")
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to configuration file")
	fs.DurationVarP(&opts.debounce, "debounce", "d", 0, "quiet period before running (default from config, 500ms)")
	fs.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "do not switch to the alternate screen")
	fs.BoolVar(&opts.history, "history", false, "print recent runs and exit")
	fs.BoolVar(&opts.stats, "stats", false, "print run statistics and exit")
	fs.StringSliceVar(&opts.groupBy, "group-by", nil, "group --stats by dimensions (command, trigger, status, date)")
	fs.IntVarP(&opts.limit, "limit", "n", 20, "number of runs printed with --history, 0 for all")
	fs.StringVar(&opts.format, "format", string(display.FormatTable), "history output format (table, json, simple)")
	fs.BoolVarP(&opts.version, "version", "V", false, "show version information")
	fs.BoolVarP(&opts.help, "help", "h", false, "show this help message")

	return fs
}

// parseArgs parses the command line into options.
func parseArgs(args []string) (*options, error) {
	opts := &options{}
	fs := newFlagSet(opts)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.setRecursive = fs.Changed("recursive")
	opts.setDebounce = fs.Changed("debounce")

	if opts.help || opts.version || opts.history || opts.stats {
		return opts, nil
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return nil, errUsage
	}
	opts.command = rest[0]
	opts.paths = rest[1:]

	return opts, nil
}

// run executes the main application logic.
func run(args []string, stdout io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	if opts.help {
		showUsage(stdout)
		return nil
	}

	if opts.version {
		fmt.Fprintf(stdout, "onchange %s\n", version)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer func() {
		if closeErr := log.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close log: %v\n", closeErr)
		}
	}()

	if opts.history || opts.stats {
		return showHistory(stdout, opts, cfg, log)
	}

	return watch(opts, cfg, log)
}

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.NewLoader(opts.configPath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.setRecursive {
		cfg.Watch.Recursive = opts.recursive
	}
	if opts.setDebounce {
		cfg.Watch.Debounce = opts.debounce
	}
	if opts.noAltScreen {
		cfg.Display.AltScreen = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// showUsage displays usage information.
func showUsage(w io.Writer) {
	fmt.Fprint(w, `onchange - run a command whenever files change

Usage:
  onchange [flags] COMMAND PATH...
  onchange --history [-n N] [--format FORMAT]
  onchange --stats [--group-by DIMS] [--format FORMAT]

COMMAND is split with shell quoting rules. The first argument holding a
placeholder decides what is substituted for it:
  {}    the watched root containing the change (with -r: the changed file)
  %%    every watched path, joined into one argument
  %     every watched path, one argument each

Flags:
`)

	fs := newFlagSet(&options{})
	fs.SetOutput(w)
	fs.PrintDefaults()

	fmt.Fprint(w, `
Examples:
  # Re-run the tests of whichever package changed
  onchange "go test ./{}/..." pkg/config pkg/watcher

  # Lint every watched directory on any change
  onchange "golangci-lint run %" cmd pkg

  # Show the last 10 runs as JSON
  onchange --history -n 10 --format json

  # Show success rates per command
  onchange --stats --group-by command
`)
}
