// Package bbolt implements the ports.BundleStore interface using bbolt
// (embedded B+ tree). The bundle's pair sequence and its metadata live
// in separate keys of one bucket. Writes are transactional — a crash
// mid-write cannot corrupt a previously committed bundle.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/camille/redite/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key names
var (
	bucketLexicon = []byte("lexicon")
	keyVersion    = []byte("version")
	keyTimestamp  = []byte("timestamp")
	keyEntries    = []byte("entries")
)

// Store implements ports.BundleStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBundle persists the bundle, overwriting any prior one.
func (s *Store) SaveBundle(b *ports.Bundle) error {
	if b == nil {
		return fmt.Errorf("nil bundle")
	}

	entriesJSON, err := json.Marshal(b.Entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		lb, err := tx.CreateBucketIfNotExists(bucketLexicon)
		if err != nil {
			return err
		}
		if err := lb.Put(keyVersion, []byte(b.Version)); err != nil {
			return err
		}
		if err := lb.Put(keyTimestamp, []byte(b.Timestamp)); err != nil {
			return err
		}
		return lb.Put(keyEntries, entriesJSON)
	})
}

// LoadBundle retrieves the stored bundle.
// Returns nil, nil if none has been saved yet.
func (s *Store) LoadBundle() (*ports.Bundle, error) {
	var version, timestamp, entriesJSON []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		lb := tx.Bucket(bucketLexicon)
		if lb == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := lb.Get(keyVersion); v != nil {
			version = make([]byte, len(v))
			copy(version, v)
		}
		if v := lb.Get(keyTimestamp); v != nil {
			timestamp = make([]byte, len(v))
			copy(timestamp, v)
		}
		if v := lb.Get(keyEntries); v != nil {
			entriesJSON = make([]byte, len(v))
			copy(entriesJSON, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if version == nil && timestamp == nil && entriesJSON == nil {
		return nil, nil
	}

	b := &ports.Bundle{
		Version:   string(version),
		Timestamp: string(timestamp),
	}
	if entriesJSON != nil {
		if err := json.Unmarshal(entriesJSON, &b.Entries); err != nil {
			return nil, fmt.Errorf("unmarshal entries: %w", err)
		}
	}
	return b, nil
}

// DeleteBundle removes the stored bundle. Idempotent.
func (s *Store) DeleteBundle() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketLexicon); err == bolt.ErrBucketNotFound {
			return nil // idempotent
		} else {
			return err
		}
	})
}
