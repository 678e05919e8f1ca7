// Package kvstore implements the persistence contract over a single
// embedded key-value file. Each logical table is stored as one
// JSON-encoded array under its table name plus one decimal-string
// counter under "<table>_counter", and every mutation rewrites the
// whole collection. That is O(n) per write, which is fine at
// single-location retail scale.
package kvstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"dispensary-pos/internal/store"
)

var bucketTables = []byte("tables")

// Store is a record store backed by a bbolt file.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the store file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTables)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}

// nextID advances the table's counter and returns the new value. The
// counter only ever grows, so ids are never reused after deletion.
func nextID(b *bolt.Bucket, table string) (uint, error) {
	key := []byte(table + "_counter")
	var current uint64
	if raw := b.Get(key); raw != nil {
		n, err := strconv.ParseUint(string(raw), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupt counter for %s: %w", table, err)
		}
		current = n
	}
	next := current + 1
	if err := b.Put(key, []byte(strconv.FormatUint(next, 10))); err != nil {
		return 0, err
	}
	return uint(next), nil
}

func readAll[T any](b *bolt.Bucket, table string) ([]T, error) {
	raw := b.Get([]byte(table))
	if raw == nil {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode table %s: %w", table, err)
	}
	return records, nil
}

func writeAll[T any](b *bolt.Bucket, table string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode table %s: %w", table, err)
	}
	return b.Put([]byte(table), raw)
}

// insert appends a new record, stamping it with a fresh id and the
// insert time, and rewrites the collection.
func insert[T any](s *Store, table string, rec *T, stamp func(*T, uint, time.Time)) (store.Result, error) {
	var res store.Result
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTables)
		records, err := readAll[T](b, table)
		if err != nil {
			return err
		}
		id, err := nextID(b, table)
		if err != nil {
			return err
		}
		stamp(rec, id, time.Now().UTC())
		records = append(records, *rec)
		if err := writeAll(b, table, records); err != nil {
			return err
		}
		res = store.Result{InsertedID: id, Changed: true}
		return nil
	})
	return res, err
}

// list returns the whole collection in stored (insertion) order. A
// table that has never been written reads back as empty.
func list[T any](s *Store, table string) ([]T, error) {
	var records []T
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		records, err = readAll[T](tx.Bucket(bucketTables), table)
		return err
	})
	return records, err
}

func getByID[T any](s *Store, table string, id uint, idOf func(T) uint) (*T, error) {
	records, err := list[T](s, table)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if idOf(records[i]) == id {
			return &records[i], nil
		}
	}
	return nil, store.ErrNotFound
}

// update merges a patch into the matching record via apply. A missing
// id is a no-op reported as Changed false.
func update[T any](s *Store, table string, id uint, idOf func(T) uint, apply func(*T, time.Time)) (store.Result, error) {
	var res store.Result
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTables)
		records, err := readAll[T](b, table)
		if err != nil {
			return err
		}
		for i := range records {
			if idOf(records[i]) != id {
				continue
			}
			apply(&records[i], time.Now().UTC())
			if err := writeAll(b, table, records); err != nil {
				return err
			}
			res = store.Result{InsertedID: id, Changed: true}
			return nil
		}
		return nil
	})
	return res, err
}

// remove drops the matching record. A missing id is a no-op reported
// as Changed false.
func remove[T any](s *Store, table string, id uint, idOf func(T) uint) (store.Result, error) {
	var res store.Result
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTables)
		records, err := readAll[T](b, table)
		if err != nil {
			return err
		}
		kept := records[:0:0]
		for _, rec := range records {
			if idOf(rec) != id {
				kept = append(kept, rec)
			}
		}
		if len(kept) == len(records) {
			return nil
		}
		if err := writeAll(b, table, kept); err != nil {
			return err
		}
		res = store.Result{InsertedID: id, Changed: true}
		return nil
	})
	return res, err
}
