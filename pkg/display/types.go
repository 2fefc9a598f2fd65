// Package display formats recorded runs and run statistics for the
// terminal.
//
// It supports multiple output formats (table, JSON, simple text).
package display

import (
	"io"

	"github.com/0xmhha/onchange/pkg/aggregator"
	"github.com/0xmhha/onchange/pkg/history"
)

// Format represents an output format.
type Format string

const (
	// FormatTable displays runs in an aligned table.
	FormatTable Format = "table"

	// FormatJSON displays runs as a JSON array.
	FormatJSON Format = "json"

	// FormatSimple displays one line per run.
	FormatSimple Format = "simple"
)

// Formatter formats and displays run history.
type Formatter interface {
	// FormatRuns writes records in the order given.
	//
	// Parameters:
	//   - w: Output writer
	//   - records: Runs to format
	//
	// Returns error if writing fails.
	FormatRuns(w io.Writer, records []history.Record) error

	// FormatStats formats overall run statistics.
	//
	// Parameters:
	//   - w: Output writer
	//   - stats: Statistics to format
	//
	// Returns error if formatting fails.
	FormatStats(w io.Writer, stats aggregator.Statistics) error

	// FormatGroupedStats formats grouped run statistics.
	//
	// Parameters:
	//   - w: Output writer
	//   - grouped: Grouped statistics to format
	//   - dimensions: Dimension names for display
	//
	// Returns error if formatting fails.
	FormatGroupedStats(w io.Writer, grouped map[string]aggregator.Statistics, dimensions []string) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatTable.
	Format Format

	// Compact enables compact output (less whitespace).
	// Default: false.
	Compact bool

	// Color styles the table header when the writer supports it.
	// Default: false.
	Color bool
}
