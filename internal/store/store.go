// Package store persists ledger records in a bbolt database.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write would break a uniqueness or state rule.
	ErrConflict = errors.New("conflict")
)

// Bucket names.
const (
	BucketAccounts       = "accounts"
	BucketTransactions   = "transactions"
	BucketVendors        = "vendors"
	BucketPurchaseOrders = "purchase_orders"
)

var buckets = []string{BucketAccounts, BucketTransactions, BucketVendors, BucketPurchaseOrders}

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// New creates a new Store instance and initializes buckets.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *Tx) error) error {
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// Update runs fn in a read-write transaction. Nothing fn wrote is kept
// when it returns an error.
func (s *Store) Update(fn func(tx *Tx) error) error {
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// NewGUID returns a fresh record identifier.
func NewGUID() string {
	return uuid.NewString()
}

// Tx is a bbolt transaction with typed accessors for ledger records.
type Tx struct {
	tx *bolt.Tx
}

func (t *Tx) bucket(name string) (*bolt.Bucket, error) {
	b := t.tx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("bucket %s not found", name)
	}
	return b, nil
}

// NextSequence returns the next value of a bucket's sequence.
func (t *Tx) NextSequence(bucketName string) (uint64, error) {
	b, err := t.bucket(bucketName)
	if err != nil {
		return 0, err
	}
	return b.NextSequence()
}

// put stores value as JSON under key.
func (t *Tx) put(bucketName, key string, value any) error {
	b, err := t.bucket(bucketName)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return b.Put([]byte(key), data)
}

// get decodes the JSON stored under key into value.
func (t *Tx) get(bucketName, key string, value any) error {
	b, err := t.bucket(bucketName)
	if err != nil {
		return err
	}

	data := b.Get([]byte(key))
	if data == nil {
		return ErrNotFound
	}

	return json.Unmarshal(data, value)
}

// delete removes key, returning ErrNotFound when it is absent.
func (t *Tx) delete(bucketName, key string) error {
	b, err := t.bucket(bucketName)
	if err != nil {
		return err
	}

	if b.Get([]byte(key)) == nil {
		return ErrNotFound
	}
	return b.Delete([]byte(key))
}

// each calls fn with every value of a bucket. The slice is only valid
// during the call.
func (t *Tx) each(bucketName string, fn func(data []byte) error) error {
	b, err := t.bucket(bucketName)
	if err != nil {
		return err
	}

	return b.ForEach(func(_, v []byte) error {
		return fn(v)
	})
}

// list decodes every value of a bucket.
func list[T any](t *Tx, bucketName string) ([]*T, error) {
	var results []*T
	err := t.each(bucketName, func(data []byte) error {
		v := new(T)
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal %s record: %w", bucketName, err)
		}
		results = append(results, v)
		return nil
	})
	return results, err
}
