// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"github.com/staranto/curl2py/internal/cacheutil"
	"github.com/staranto/curl2py/internal/log"
)

const (
	// FileName is the bbolt database created inside the cache directory.
	FileName = "memo.db"

	bucketName = "memo"
)

// Entry is a single stored value. Entries are msgpack encoded on disk.
type Entry struct {
	StoredAt  time.Time `msgpack:"stored_at"`
	ExpiresAt time.Time `msgpack:"expires_at"`
	Value     []byte    `msgpack:"value"`
}

// Expired reports whether the entry is past its expiry at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Store is a persistent key/value cache backed by a single bbolt file.
// Keys are hashed before they reach the database.
type Store struct {
	db   *bolt.DB
	path string
	now  func() time.Time
}

// Open opens (creating as needed) the store inside dir.
func Open(dir string) (*Store, error) {
	if err := cacheutil.EnsureDir(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, FileName)
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second}) //nolint:mnd
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache %s: %w", path, err)
	}

	log.Get("cache").Debugf("opened cache %s", path)
	return &Store{db: db, path: path, now: time.Now}, nil
}

// Path is the location of the database file.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the live entry stored under key. Missing and expired entries
// both report false.
func (s *Store) Get(key string) (Entry, bool, error) {
	var (
		e     Entry
		found bool
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		bs := tx.Bucket([]byte(bucketName)).Get([]byte(cacheutil.EncodeKey(key)))
		if bs == nil {
			return nil
		}
		if err := msgpack.Unmarshal(bs, &e); err != nil {
			return fmt.Errorf("failed to decode cache entry: %w", err)
		}
		found = true
		return nil
	})
	if err != nil {
		return Entry{}, false, err
	}

	if !found || e.Expired(s.now()) {
		return Entry{}, false, nil
	}
	return e, true, nil
}

// Set stores value under key. A ttl <= 0 never expires.
func (s *Store) Set(key string, value []byte, ttl time.Duration) error {
	now := s.now()
	e := Entry{StoredAt: now, Value: value}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}

	bs, err := msgpack.Marshal(&e)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(cacheutil.EncodeKey(key)), bs)
	})
}

// Purge removes expired entries and entries stored longer than maxAge ago.
// A maxAge <= 0 only removes expired entries. Undecodable entries are removed
// too. Returns the number of entries removed.
func (s *Store) Purge(maxAge time.Duration) (int, error) {
	now := s.now()
	removed := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		var stale [][]byte
		c := b.Cursor()
		for k, bs := c.First(); k != nil; k, bs = c.Next() {
			var e Entry
			if err := msgpack.Unmarshal(bs, &e); err != nil {
				stale = append(stale, append([]byte(nil), k...))
				continue
			}
			if e.Expired(now) || (maxAge > 0 && now.Sub(e.StoredAt) > maxAge) {
				stale = append(stale, append([]byte(nil), k...))
			}
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}

	log.Get("cache").Debugf("purged %d cache entries", removed)
	return removed, nil
}

// Len counts stored entries, expired ones included.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketName)).Stats().KeyN
		return nil
	})
	return n, err
}
