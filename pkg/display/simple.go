package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/0xmhha/onchange/pkg/aggregator"
	"github.com/0xmhha/onchange/pkg/history"
)

// simpleFormatter formats output as simple text.
type simpleFormatter struct {
	config Config
}

// FormatRuns implements Formatter.FormatRuns.
func (f *simpleFormatter) FormatRuns(w io.Writer, records []history.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded")
		return err
	}

	for _, rec := range records {
		if _, err := fmt.Fprintf(w, "#%d %s %s (exit %s, %s) %s <- %s\n",
			rec.Seq,
			rec.Started.Local().Format(timeLayout),
			rec.Status,
			formatExit(rec),
			formatDuration(rec.Duration),
			strings.Join(rec.Args, " "),
			formatTrigger(rec)); err != nil {
			return err
		}
	}

	return nil
}

// FormatStats implements Formatter.FormatStats.
func (f *simpleFormatter) FormatStats(w io.Writer, stats aggregator.Statistics) error {
	_, err := fmt.Fprintf(w, "Runs: %d | OK: %d | Failed: %d | Errors: %d | Success: %s | Avg: %s | Max: %s\n",
		stats.Count,
		stats.OK,
		stats.Failed,
		stats.SpawnErrors+stats.WaitErrors,
		formatPercent(stats.SuccessRate),
		formatDuration(stats.AvgDuration),
		formatDuration(stats.MaxDuration))
	return err
}

// FormatGroupedStats implements Formatter.FormatGroupedStats.
func (f *simpleFormatter) FormatGroupedStats(w io.Writer, grouped map[string]aggregator.Statistics, dimensions []string) error {
	if err := validateDimensions(dimensions); err != nil {
		return err
	}

	for _, key := range sortedKeys(grouped) {
		stats := grouped[key]
		if _, err := fmt.Fprintf(w, "%s: %d runs, %d failed (avg: %s)\n",
			key,
			stats.Count,
			stats.Failed+stats.SpawnErrors+stats.WaitErrors,
			formatDuration(stats.AvgDuration)); err != nil {
			return err
		}
	}

	return nil
}
