package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/0xmhha/onchange/pkg/aggregator"
	"github.com/0xmhha/onchange/pkg/config"
	"github.com/0xmhha/onchange/pkg/display"
	"github.com/0xmhha/onchange/pkg/history"
	"github.com/0xmhha/onchange/pkg/logger"
)

// errHistoryDisabled is returned by --history when history is turned off.
var errHistoryDisabled = errors.New("run history is disabled (history.enabled: false)")

// showHistory prints the most recent runs, or statistics over every
// recorded run when --stats is set.
func showHistory(w io.Writer, opts *options, cfg *config.Config, log logger.Logger) error {
	format, err := display.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	dimensions, err := parseDimensions(opts.groupBy)
	if err != nil {
		return err
	}

	if !cfg.History.Enabled {
		return errHistoryDisabled
	}

	store, err := history.Open(history.Config{
		DBPath:     cfg.History.DBPath,
		MaxRecords: cfg.History.MaxRecords,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Error("failed to close history", "error", closeErr)
		}
	}()

	limit := opts.limit
	if opts.stats {
		limit = 0
	}

	records, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	formatter := display.New(display.Config{
		Format: format,
		Color:  cfg.Display.Color,
	})

	if !opts.stats {
		return formatter.FormatRuns(w, records)
	}

	agg := aggregator.New(aggregator.Config{
		GroupBy:          dimensions,
		TrackPercentiles: true,
	})
	for _, rec := range records {
		agg.Add(rec)
	}

	if len(dimensions) == 0 {
		return formatter.FormatStats(w, agg.Stats())
	}

	names := make([]string, len(dimensions))
	for i, dim := range dimensions {
		names[i] = string(dim)
	}

	return formatter.FormatGroupedStats(w, agg.GroupedStats(), names)
}

// parseDimensions validates --group-by values.
func parseDimensions(values []string) ([]aggregator.Dimension, error) {
	dimensions := make([]aggregator.Dimension, 0, len(values))

	for _, value := range values {
		dim, ok := aggregator.ParseDimension(strings.TrimSpace(value))
		if !ok {
			return nil, fmt.Errorf("invalid dimension: %s (want command, trigger, status or date)", value)
		}
		dimensions = append(dimensions, dim)
	}

	return dimensions, nil
}
