// Package history keeps completed run summaries in a small BoltDB file so
// earlier runs can be compared without digging through result files.
package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/daryltucker/gateway-probe/internal/model"
)

var bucketRuns = []byte("runs")

// Store wraps a BoltDB instance holding run summaries keyed by run ID.
type Store struct {
	db *bolt.DB
}

// Entry is the listing view of one recorded run.
type Entry struct {
	RunID       string
	BaseURL     string
	Timestamp   time.Time
	Total       int
	Successful  int
	SuccessRate float64
}

// Open opens (or creates) the database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying DB handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a summary under its run ID.
func (s *Store) Record(sum *model.RunSummary) error {
	if sum.RunID == "" {
		return errors.New("summary has no run id")
	}
	data, err := json.Marshal(sum)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(sum.RunID), data)
	})
}

// Get returns a full summary, if present.
func (s *Store) Get(runID string) (*model.RunSummary, bool, error) {
	var sum *model.RunSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get([]byte(runID))
		if data == nil {
			return nil
		}
		sum = &model.RunSummary{}
		return json.Unmarshal(data, sum)
	})
	if err != nil {
		return nil, false, err
	}
	return sum, sum != nil, nil
}

// Recent returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(_, v []byte) error {
			var sum model.RunSummary
			if err := json.Unmarshal(v, &sum); err != nil {
				return err
			}
			entries = append(entries, Entry{
				RunID:       sum.RunID,
				BaseURL:     sum.BaseURL,
				Timestamp:   sum.Timestamp,
				Total:       sum.Summary.Total,
				Successful:  sum.Summary.Successful,
				SuccessRate: sum.Summary.SuccessRate,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
