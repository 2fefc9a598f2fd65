// Package aggregator summarizes recorded runs.
//
// It computes counts per outcome and run duration statistics, overall and
// grouped by command, trigger, status or day.
//
// Example usage:
//
//	agg := aggregator.New(aggregator.Config{
//	    GroupBy:          []aggregator.Dimension{aggregator.DimCommand},
//	    TrackPercentiles: true,
//	})
//
//	for _, rec := range records {
//	    agg.Add(rec)
//	}
//
//	stats := agg.Stats()
//	fmt.Printf("Runs: %d, failed: %d\n", stats.Count, stats.Failed)
package aggregator

import (
	"time"

	"github.com/0xmhha/onchange/pkg/history"
)

// Dimension represents an aggregation dimension.
type Dimension string

const (
	// DimCommand aggregates by the resolved command line.
	DimCommand Dimension = "command"

	// DimTrigger aggregates by the changed path that caused the run.
	DimTrigger Dimension = "trigger"

	// DimStatus aggregates by run outcome.
	DimStatus Dimension = "status"

	// DimDate aggregates by start date (YYYY-MM-DD).
	DimDate Dimension = "date"
)

// Aggregator computes run statistics.
type Aggregator interface {
	// Add adds a run record to the aggregator.
	Add(rec history.Record)

	// Stats returns statistics across all records.
	Stats() Statistics

	// GroupedStats returns statistics grouped by configured dimensions.
	//
	// Keys join the dimension values with "|" in GroupBy order.
	GroupedStats() map[string]Statistics

	// Reset clears all aggregated data.
	Reset()
}

// Statistics contains aggregated run statistics.
type Statistics struct {
	// Count is the number of runs.
	Count int `json:"count"`

	// OK, Failed, SpawnErrors and WaitErrors count runs per outcome.
	OK          int `json:"ok"`
	Failed      int `json:"failed"`
	SpawnErrors int `json:"spawn_errors"`
	WaitErrors  int `json:"wait_errors"`

	// SuccessRate is OK / Count, in the range [0, 1].
	SuccessRate float64 `json:"success_rate"`

	// TotalDuration is the sum of all run durations.
	TotalDuration time.Duration `json:"total_duration"`

	// AvgDuration is the average run duration.
	AvgDuration time.Duration `json:"avg_duration"`

	// MinDuration and MaxDuration bound the run durations.
	MinDuration time.Duration `json:"min_duration"`
	MaxDuration time.Duration `json:"max_duration"`

	// Duration percentiles. Zero unless percentiles are tracked.
	P50Duration time.Duration `json:"p50_duration"`
	P95Duration time.Duration `json:"p95_duration"`
	P99Duration time.Duration `json:"p99_duration"`

	// FirstSeen is the start time of the earliest run.
	FirstSeen time.Time `json:"first_seen"`

	// LastSeen is the start time of the latest run.
	LastSeen time.Time `json:"last_seen"`
}

// Config contains aggregator configuration.
type Config struct {
	// GroupBy specifies aggregation dimensions.
	//
	// Examples:
	//   - [DimCommand] - aggregate by command line
	//   - [DimCommand, DimStatus] - aggregate by command and outcome
	//
	// Default: no grouping (overall stats only).
	GroupBy []Dimension

	// TrackPercentiles enables percentile calculation.
	//
	// Percentile calculation keeps every duration in memory.
	TrackPercentiles bool
}

// ParseDimension validates a dimension name.
func ParseDimension(name string) (Dimension, bool) {
	switch d := Dimension(name); d {
	case DimCommand, DimTrigger, DimStatus, DimDate:
		return d, true
	default:
		return "", false
	}
}
