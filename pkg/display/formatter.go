package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/0xmhha/onchange/pkg/aggregator"
	"github.com/0xmhha/onchange/pkg/history"
)

// timeLayout is used for run start times.
const timeLayout = "2006-01-02 15:04:05"

// New creates a new formatter based on configuration.
//
// Parameters:
//   - cfg: Formatter configuration
//
// Returns a configured Formatter.
func New(cfg Config) Formatter {
	if cfg.Format == "" {
		cfg.Format = FormatTable
	}

	switch cfg.Format {
	case FormatJSON:
		return &jsonFormatter{config: cfg}
	case FormatSimple:
		return &simpleFormatter{config: cfg}
	case FormatTable:
		fallthrough
	default:
		return &tableFormatter{config: cfg}
	}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatTable, FormatJSON, FormatSimple:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json or simple)", name)
	}
}

// formatDuration rounds d for display.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}

// formatExit renders an exit code, or "-" when the run has none.
func formatExit(rec history.Record) string {
	if rec.ExitCode < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", rec.ExitCode)
}

// formatTrigger names what started the run.
func formatTrigger(rec history.Record) string {
	if rec.Trigger == "" {
		return "(start)"
	}
	return rec.Trigger
}

// formatPercent formats a ratio in [0, 1] as a percentage.
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// validateDimensions validates dimension names.
func validateDimensions(dimensions []string) error {
	if len(dimensions) == 0 {
		return fmt.Errorf("no dimensions specified")
	}
	return nil
}

// sortedKeys returns the group keys in lexical order.
func sortedKeys(grouped map[string]aggregator.Statistics) []string {
	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// writeHeader writes a section header.
func writeHeader(w io.Writer, title string, compact bool) error {
	if compact {
		_, err := fmt.Fprintf(w, "%s\n", title)
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	return err
}
