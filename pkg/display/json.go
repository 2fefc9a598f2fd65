package display

import (
	"encoding/json"
	"io"

	"github.com/0xmhha/onchange/pkg/aggregator"
	"github.com/0xmhha/onchange/pkg/history"
)

// jsonFormatter formats output as JSON.
type jsonFormatter struct {
	config Config
}

// FormatRuns implements Formatter.FormatRuns.
func (f *jsonFormatter) FormatRuns(w io.Writer, records []history.Record) error {
	if records == nil {
		records = []history.Record{}
	}

	return f.encode(w, records)
}

// FormatStats implements Formatter.FormatStats.
func (f *jsonFormatter) FormatStats(w io.Writer, stats aggregator.Statistics) error {
	return f.encode(w, stats)
}

// FormatGroupedStats implements Formatter.FormatGroupedStats.
func (f *jsonFormatter) FormatGroupedStats(w io.Writer, grouped map[string]aggregator.Statistics, dimensions []string) error {
	if err := validateDimensions(dimensions); err != nil {
		return err
	}

	return f.encode(w, grouped)
}

func (f *jsonFormatter) encode(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(v)
}
