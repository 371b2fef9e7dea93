// Package mirrorstate persists HTTP cache validators (ETag and
// Last-Modified) per URL in a BoltDB file, so mirror runs can send
// If-None-Match across process restarts.
package mirrorstate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	"github.com/samvad-hq/samvad-fetch/pkg/fetch"
)

const validatorBucket = "validators"

// entry is the stored value for one URL.
type entry struct {
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// Store is a BoltDB-backed validator cache.
type Store struct {
	db *bolt.DB
}

var _ fetch.ValidatorStore = (*Store)(nil)

// Open initializes the store at path, creating parent directories and
// the validators bucket as needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("mirror state path is empty")
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create mirror state directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(validatorBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Validators returns the remembered ETag and Last-Modified for url.
// A missing or unreadable record reports ok=false.
func (s *Store) Validators(url string) (etag, lastModified string, ok bool) {
	if s == nil || s.db == nil {
		return "", "", false
	}

	var e entry
	var found bool
	_ = s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(validatorBucket))
		if bucket == nil {
			return nil
		}
		value := bucket.Get([]byte(url))
		if value == nil {
			return nil
		}
		if err := json.Unmarshal(value, &e); err != nil {
			// corrupt record, treat as absent
			return nil
		}
		found = true
		return nil
	})
	return e.ETag, e.LastModified, found
}

// SaveValidators records the validators for url. Saving two empty
// validators removes the record instead.
func (s *Store) SaveValidators(url, etag, lastModified string) error {
	if s == nil || s.db == nil {
		return nil
	}

	if etag == "" && lastModified == "" {
		return s.db.Update(func(tx *bolt.Tx) error {
			bucket := tx.Bucket([]byte(validatorBucket))
			if bucket == nil {
				return fmt.Errorf("validator bucket missing")
			}
			return bucket.Delete([]byte(url))
		})
	}

	encoded, err := json.Marshal(entry{ETag: etag, LastModified: lastModified})
	if err != nil {
		return fmt.Errorf("encode validator entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(validatorBucket))
		if bucket == nil {
			return fmt.Errorf("validator bucket missing")
		}
		return bucket.Put([]byte(url), encoded)
	})
}
