package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

var sessionBucket = []byte("session")

type boltSessionStore struct {
	db *bolt.DB
}

// NewBoltSessionStore keeps the session in a single bbolt file.
func NewBoltSessionStore(dbPath string) (repository.SessionStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "create db directory")
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open bolt")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create session bucket")
	}

	return &boltSessionStore{db: db}, nil
}

func (s *boltSessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(sessionBucket).Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	return value, found, err
}

func (s *boltSessionStore) Set(ctx context.Context, key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(key), []byte(value))
	})
}

func (s *boltSessionStore) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(key))
	})
}

func (s *boltSessionStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

func (s *boltSessionStore) Close() error {
	return s.db.Close()
}
