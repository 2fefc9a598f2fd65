// Package history records completed command runs.
//
// Each run is stored as a Record keyed by a monotonically increasing
// sequence number. The bbolt-backed store keeps at most MaxRecords runs,
// dropping the oldest first. History is an audit log only: it is never
// used to restore watch state.
package history

import "time"

// Record is one completed run.
type Record struct {
	// Seq is assigned by the store on Append.
	Seq uint64 `json:"seq"`

	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Args     []string      `json:"args"`
	ExitCode int           `json:"exit_code"`
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`

	// Trigger is the changed path that caused the run; empty for
	// priming runs.
	Trigger string `json:"trigger,omitempty"`
}

// Store persists run records.
type Store interface {
	// Append assigns rec.Seq and stores the record.
	Append(rec *Record) error

	// Recent returns up to n of the newest records, oldest first.
	// n <= 0 returns every record.
	Recent(n int) ([]Record, error)

	// Close releases the store.
	Close() error
}

// Config contains history store configuration.
type Config struct {
	// DBPath is the database file. A leading ~ is expanded.
	DBPath string

	// MaxRecords caps the number of stored records.
	// Default: 1000.
	MaxRecords int

	// Timeout bounds the wait for the database file lock.
	// Default: 1s.
	Timeout time.Duration
}
