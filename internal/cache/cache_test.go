// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_WritesIgnoreFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	b, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "*", string(b))
	assert.Equal(t, filepath.Join(dir, FileName), s.Path())
}

func TestStore_GetSet(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", []byte("v"), time.Hour))

	e, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), e.Value)
	assert.True(t, e.ExpiresAt.After(e.StoredAt))
}

func TestStore_Expiry(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set("k", []byte("v"), time.Minute))

	now = now.Add(59 * time.Second)
	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, err = s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Purge(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set("old", []byte("1"), 0))
	require.NoError(t, s.Set("short", []byte("2"), time.Minute))
	now = now.Add(2 * time.Hour)
	require.NoError(t, s.Set("fresh", []byte("3"), 0))

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	removed, err := s.Purge(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, ok, _ := s.Get("fresh")
	assert.True(t, ok)
	_, ok, _ = s.Get("old")
	assert.False(t, ok)

	n, err = s.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_PurgeExpiredOnly(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set("forever", []byte("1"), 0))
	require.NoError(t, s.Set("short", []byte("2"), time.Minute))
	now = now.Add(24 * time.Hour)

	removed, err := s.Purge(0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestWrap(t *testing.T) {
	s := openTestStore(t)
	calls := 0
	square := func(a Args) (int, error) {
		calls++
		return a["n"].(int) * a["n"].(int), nil
	}
	memo := Memo{KeyArg: "key", EnableArg: "cache", TTL: time.Hour}
	cached := Wrap(s, memo, "square", square)

	v, err := cached(Args{"key": 3, "n": 3})
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	v, err = cached(Args{"key": 3, "n": 3})
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.Equal(t, 1, calls, "second call should be served from the cache")

	_, err = cached(Args{"key": 4, "n": 4})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWrap_Bypass(t *testing.T) {
	s := openTestStore(t)
	calls := 0
	fn := func(Args) (string, error) {
		calls++
		return "x", nil
	}
	cached := Wrap(s, DefaultMemo(), "fn", fn)

	tests := []struct {
		name string
		args Args
	}{
		{"no key", Args{}},
		{"nil key", Args{"cache_key": nil}},
		{"disabled", Args{"cache_key": "k", "cache": false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := calls
			for i := 0; i < 2; i++ {
				v, err := cached(tt.args)
				require.NoError(t, err)
				assert.Equal(t, "x", v)
			}
			assert.Equal(t, before+2, calls)
		})
	}
}

func TestWrap_NonBoolEnable(t *testing.T) {
	s := openTestStore(t)
	cached := Wrap(s, DefaultMemo(), "fn", func(Args) (string, error) { return "x", nil })

	_, err := cached(Args{"cache_key": "k", "cache": "yes"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a bool")
}

func TestWrap_ErrorsNotCached(t *testing.T) {
	s := openTestStore(t)
	calls := 0
	boom := errors.New("boom")
	cached := Wrap(s, DefaultMemo(), "fn", func(Args) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "ok", nil
	})

	_, err := cached(Args{"cache_key": "k"})
	assert.ErrorIs(t, err, boom)

	v, err := cached(Args{"cache_key": "k"})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestWrap_ExpiredRecomputes(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	calls := 0
	cached := Wrap(s, Memo{KeyArg: "k", TTL: time.Minute}, "fn", func(Args) (int, error) {
		calls++
		return calls, nil
	})

	v, _ := cached(Args{"k": "a"})
	assert.Equal(t, 1, v)
	v, _ = cached(Args{"k": "a"})
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	v, _ = cached(Args{"k": "a"})
	assert.Equal(t, 2, v)
}

func TestWrap_NilStore(t *testing.T) {
	calls := 0
	cached := Wrap(nil, DefaultMemo(), "fn", func(Args) (int, error) {
		calls++
		return 1, nil
	})

	_, _ = cached(Args{"cache_key": "k"})
	_, _ = cached(Args{"cache_key": "k"})
	assert.Equal(t, 2, calls)
}

func TestWrap_DefaultTTL(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	cached := Wrap(s, Memo{KeyArg: "k"}, "fn", func(Args) (string, error) { return "v", nil })
	_, err := cached(Args{"k": "a"})
	require.NoError(t, err)

	e, ok, err := s.Get("fn:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, DefaultTTL, e.ExpiresAt.Sub(e.StoredAt))
}
