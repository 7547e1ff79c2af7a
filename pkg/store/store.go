// Package store is a row store backed by a bbolt database. Rows are strings
// numbered by an increasing sequence number, and can be fetched by position
// for display.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.cellview.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

var initDB = map[string]func(*bolt.Tx) error{}

// Store is the row store.
type Store struct {
	db *bolt.DB
}

// NewStore opens the database file, creating it if needed.
func NewStore(dbname string) (*Store, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbname, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("opened", dbname)
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
