// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/staranto/curl2py/internal/log"
)

// DefaultTTL is used when a Memo has no TTL of its own.
const DefaultTTL = 24 * time.Hour

// Args holds the named arguments of a memoized call.
type Args map[string]any

// Memo names the arguments that control caching of a wrapped function.
type Memo struct {
	// KeyArg names the argument holding the cache key. An absent or nil key
	// bypasses the cache.
	KeyArg string
	// EnableArg names an optional bool argument. Absent means enabled.
	EnableArg string
	TTL       time.Duration
}

// DefaultMemo uses "cache_key" and "cache" as argument names.
func DefaultMemo() Memo {
	return Memo{KeyArg: "cache_key", EnableArg: "cache", TTL: DefaultTTL}
}

// Wrap returns fn memoized through s. Results are stored msgpack encoded
// under name plus the key argument, and only successful results are stored.
// A nil store calls fn directly.
func Wrap[T any](s *Store, m Memo, name string, fn func(Args) (T, error)) func(Args) (T, error) {
	logger := log.Get("cache")
	ttl := m.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return func(args Args) (T, error) {
		var zero T

		if s == nil {
			return fn(args)
		}

		enabled := true
		if v, ok := args[m.EnableArg]; ok && m.EnableArg != "" {
			b, ok := v.(bool)
			if !ok {
				return zero, fmt.Errorf("cache argument %q must be a bool, got %T", m.EnableArg, v)
			}
			enabled = b
		}

		k, ok := args[m.KeyArg]
		if !enabled || !ok || k == nil {
			return fn(args)
		}
		key := fmt.Sprintf("%s:%v", name, k)

		e, hit, err := s.Get(key)
		if err != nil {
			logger.WithError(err).Warnf("cache read failed for %s", name)
		}
		if hit {
			var v T
			if err := msgpack.Unmarshal(e.Value, &v); err == nil {
				logger.Debugf("cache hit for %s, stored %s", name, humanize.Time(e.StoredAt))
				return v, nil
			}
			logger.Warnf("discarding undecodable cache entry for %s", name)
		}

		v, err := fn(args)
		if err != nil {
			return zero, err
		}

		bs, err := msgpack.Marshal(v)
		if err != nil {
			logger.WithError(err).Warnf("cannot cache result of %s", name)
			return v, nil
		}
		if err := s.Set(key, bs, ttl); err != nil {
			logger.WithError(err).Warnf("cache write failed for %s", name)
		}

		return v, nil
	}
}
