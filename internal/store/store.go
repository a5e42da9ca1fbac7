package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cinelog-app/cinelog/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key names
var (
	bucketWatched = []byte("watched")
	keyList       = []byte("list")
)

// dbFileName is the bbolt file created inside the data directory
const dbFileName = "cinelog.db"

// WatchedStore implements domain.WatchedRepository using BoltDB.
// The watched list is one JSON array stored under a single key and rewritten
// wholesale on every save.
type WatchedStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory snapshot

	// Last saved snapshot; the only copy in memory-only mode
	snapshot []byte
}

// NewWatchedStore opens (or creates) the store in dataDir.
// An empty dataDir gives a memory-only store with no persistence.
func NewWatchedStore(dataDir string) (*WatchedStore, error) {
	if dataDir == "" {
		return &WatchedStore{}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWatched)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &WatchedStore{db: db}, nil
}

// Path returns the database file path, or "" in memory-only mode
func (s *WatchedStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

func (s *WatchedStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadWatched returns the stored list, or an empty list if nothing was saved yet
func (s *WatchedStore) LoadWatched() ([]domain.WatchedEntry, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []domain.WatchedEntry{}, nil
	}

	var entries []domain.WatchedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode watched list: %w", err)
	}
	if entries == nil {
		entries = []domain.WatchedEntry{}
	}
	return entries, nil
}

// SaveWatched replaces the stored list with entries
func (s *WatchedStore) SaveWatched(entries []domain.WatchedEntry) error {
	if entries == nil {
		entries = []domain.WatchedEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode watched list: %w", err)
	}

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketWatched)
			return b.Put(keyList, data)
		})
		if err != nil {
			return fmt.Errorf("failed to write watched list: %w", err)
		}
	}

	s.mu.Lock()
	s.snapshot = data
	s.mu.Unlock()
	return nil
}

func (s *WatchedStore) read() ([]byte, error) {
	s.mu.RLock()
	if s.snapshot != nil {
		data := s.snapshot
		s.mu.RUnlock()
		return data, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWatched)
		if b == nil {
			return nil
		}
		if v := b.Get(keyList); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read watched list: %w", err)
	}

	if data != nil {
		s.mu.Lock()
		s.snapshot = data
		s.mu.Unlock()
	}
	return data, nil
}
