package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/0xmhha/onchange/pkg/logger"
	"github.com/0xmhha/onchange/pkg/paths"
)

// Bucket names.
var (
	bucketRuns = []byte("runs") // Seq -> Record
)

// boltStore implements Store using BoltDB.
//
// The database file is opened for each operation and closed right after,
// so a long-running watcher never keeps other processes from reading or
// appending to the same history.
type boltStore struct {
	path   string
	logger logger.Logger
	config Config

	mu     sync.Mutex
	closed bool
}

// Open opens or creates the history database.
//
// Parameters:
//   - cfg: Store configuration
//   - log: Logger instance
//
// Returns:
//   - Configured Store
//   - Error if the database cannot be created or is locked
func Open(cfg Config, log logger.Logger) (Store, error) {
	if cfg.DBPath == "" {
		return nil, ErrNoDBPath
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Second
	}

	s := &boltStore{
		path:   paths.ExpandHome(cfg.DBPath),
		logger: log.With("component", "history"),
		config: cfg,
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := s.update(func(tx *bolt.Tx) error {
		if _, createErr := tx.CreateBucketIfNotExists(bucketRuns); createErr != nil {
			return fmt.Errorf("failed to create runs bucket: %w", createErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Debug("history store opened",
		"db_path", s.path,
		"max_records", cfg.MaxRecords)

	return s, nil
}

// Append implements Store.Append.
func (s *boltStore) Append(rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)

		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}
		rec.Seq = seq

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		if putErr := b.Put(seqKey(seq), data); putErr != nil {
			return fmt.Errorf("failed to store record: %w", putErr)
		}

		return s.prune(b, seq)
	})
}

// prune deletes the oldest records beyond MaxRecords. Keys are contiguous
// because records are only ever removed from the front, so the count
// follows from the first and last sequence numbers.
func (s *boltStore) prune(b *bolt.Bucket, last uint64) error {
	c := b.Cursor()

	first, _ := c.First()
	if first == nil {
		return nil
	}

	count := last - binary.BigEndian.Uint64(first) + 1
	if count <= uint64(s.config.MaxRecords) {
		return nil
	}
	excess := int(count - uint64(s.config.MaxRecords))

	stale := make([][]byte, 0, excess)
	for k := first; k != nil && len(stale) < excess; k, _ = c.Next() {
		stale = append(stale, append([]byte(nil), k...))
	}

	for _, k := range stale {
		if err := b.Delete(k); err != nil {
			return fmt.Errorf("failed to prune record: %w", err)
		}
	}

	s.logger.Debug("pruned history", "removed", len(stale))
	return nil
}

// Recent implements Store.Recent.
func (s *boltStore) Recent(n int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var records []Record

	err := s.view(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if n > 0 && len(records) >= n {
				break
			}

			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal record %d: %w",
					binary.BigEndian.Uint64(k), err)
			}
			records = append(records, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	reverse(records)
	return records, nil
}

// Close implements Store.Close.
func (s *boltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// update runs fn in a read-write transaction on a freshly opened database.
func (s *boltStore) update(fn func(tx *bolt.Tx) error) error {
	return s.withDB(false, func(db *bolt.DB) error {
		return db.Update(fn)
	})
}

// view runs fn in a read-only transaction on a freshly opened database.
func (s *boltStore) view(fn func(tx *bolt.Tx) error) error {
	return s.withDB(true, func(db *bolt.DB) error {
		return db.View(fn)
	})
}

func (s *boltStore) withDB(readOnly bool, fn func(db *bolt.DB) error) (err error) {
	db, err := bolt.Open(s.path, 0600, &bolt.Options{
		Timeout:  s.config.Timeout,
		ReadOnly: readOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	return fn(db)
}

// seqKey encodes seq so keys sort in insertion order.
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func reverse(records []Record) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
