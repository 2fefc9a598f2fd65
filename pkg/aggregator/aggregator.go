package aggregator

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/0xmhha/onchange/pkg/history"
)

// Run statuses as recorded in history.
const (
	statusOK         = "ok"
	statusFailed     = "failed"
	statusSpawnError = "spawn_error"
	statusWaitError  = "wait_error"
)

// noTrigger labels runs that were not caused by a change.
const noTrigger = "(start)"

// aggregator implements the Aggregator interface.
type aggregator struct {
	config Config

	mu        sync.RWMutex
	durations []time.Duration   // All durations for percentile calculation
	stats     Statistics        // Overall statistics
	groups    map[string]*group // Grouped statistics
}

// group holds statistics for a specific dimension combination.
type group struct {
	durations []time.Duration
	stats     Statistics
}

// New creates a new aggregator.
//
// Parameters:
//   - cfg: Aggregator configuration
//
// Returns a configured Aggregator.
func New(cfg Config) Aggregator {
	return &aggregator{
		config: cfg,
		groups: make(map[string]*group),
	}
}

// Add implements Aggregator.Add.
func (a *aggregator) Add(rec history.Record) {
	a.mu.Lock()
	defer a.mu.Unlock()

	updateStats(&a.stats, rec)

	if a.config.TrackPercentiles {
		a.durations = append(a.durations, rec.Duration)
	}

	if len(a.config.GroupBy) == 0 {
		return
	}

	key := a.dimensionKey(rec)
	g, exists := a.groups[key]
	if !exists {
		g = &group{}
		a.groups[key] = g
	}

	updateStats(&g.stats, rec)

	if a.config.TrackPercentiles {
		g.durations = append(g.durations, rec.Duration)
	}
}

// Stats implements Aggregator.Stats.
func (a *aggregator) Stats() Statistics {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.withPercentiles(a.stats, a.durations)
}

// GroupedStats implements Aggregator.GroupedStats.
func (a *aggregator) GroupedStats() map[string]Statistics {
	a.mu.RLock()
	defer a.mu.RUnlock()

	result := make(map[string]Statistics, len(a.groups))
	for key, g := range a.groups {
		result[key] = a.withPercentiles(g.stats, g.durations)
	}

	return result
}

// Reset implements Aggregator.Reset.
func (a *aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.durations = nil
	a.stats = Statistics{}
	a.groups = make(map[string]*group)
}

// withPercentiles fills the percentile fields of stats from durations.
func (a *aggregator) withPercentiles(stats Statistics, durations []time.Duration) Statistics {
	if !a.config.TrackPercentiles || len(durations) == 0 {
		return stats
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	stats.P50Duration = percentile(sorted, 50)
	stats.P95Duration = percentile(sorted, 95)
	stats.P99Duration = percentile(sorted, 99)

	return stats
}

// updateStats updates statistics with a new record.
func updateStats(stats *Statistics, rec history.Record) {
	stats.Count++

	switch rec.Status {
	case statusOK:
		stats.OK++
	case statusFailed:
		stats.Failed++
	case statusSpawnError:
		stats.SpawnErrors++
	case statusWaitError:
		stats.WaitErrors++
	}
	stats.SuccessRate = float64(stats.OK) / float64(stats.Count)

	stats.TotalDuration += rec.Duration
	stats.AvgDuration = stats.TotalDuration / time.Duration(stats.Count)

	if stats.Count == 1 {
		stats.MinDuration = rec.Duration
		stats.MaxDuration = rec.Duration
	} else {
		if rec.Duration < stats.MinDuration {
			stats.MinDuration = rec.Duration
		}
		if rec.Duration > stats.MaxDuration {
			stats.MaxDuration = rec.Duration
		}
	}

	if stats.FirstSeen.IsZero() || rec.Started.Before(stats.FirstSeen) {
		stats.FirstSeen = rec.Started
	}
	if stats.LastSeen.IsZero() || rec.Started.After(stats.LastSeen) {
		stats.LastSeen = rec.Started
	}
}

// dimensionKey creates a unique key for the configured dimensions.
func (a *aggregator) dimensionKey(rec history.Record) string {
	parts := make([]string, len(a.config.GroupBy))

	for i, dim := range a.config.GroupBy {
		switch dim {
		case DimCommand:
			parts[i] = strings.Join(rec.Args, " ")
		case DimTrigger:
			parts[i] = rec.Trigger
			if parts[i] == "" {
				parts[i] = noTrigger
			}
		case DimStatus:
			parts[i] = rec.Status
		case DimDate:
			parts[i] = rec.Started.Local().Format("2006-01-02")
		}
	}

	return strings.Join(parts, "|")
}

// percentile calculates the nth percentile of a sorted slice.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	// Linear interpolation between closest ranks.
	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[lower]
	}

	fraction := rank - float64(lower)
	return time.Duration(float64(sorted[lower])*(1-fraction) + float64(sorted[upper])*fraction)
}
